package toc

import (
	"context"
	"fmt"
)

// fakeRenderer is an in-memory PageRenderer for tests.
type fakeRenderer struct {
	total  int
	text   map[int]string
	plain  map[int]string
	images map[int][]byte
}

func (r *fakeRenderer) PageCount() int { return r.total }

func (r *fakeRenderer) PageText(_ context.Context, page int) (string, error) {
	if text, ok := r.text[page]; ok {
		return text, nil
	}
	return "", nil
}

func (r *fakeRenderer) PlainPageText(_ context.Context, page int) (string, error) {
	if text, ok := r.plain[page]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no plain text for page %d", page)
}

func (r *fakeRenderer) PageImage(_ context.Context, page int) ([]byte, error) {
	if img, ok := r.images[page]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("no image for page %d", page)
}
