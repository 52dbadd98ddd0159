package toc

import (
	"context"
	"fmt"
	"strings"
)

// Extractor is one extraction tier. Extract returns the tier's candidate,
// ErrNotApplicable when the tier does not apply to the input, or an error
// describing why the tier failed.
type Extractor interface {
	Tier() Tier
	Extract(ctx context.Context, in *Input) (*Candidate, error)
}

// StructuredExtractor parses the layout-preserving text rendering of the
// detected region with the ordered pattern set. It is the cheapest tier
// and runs first.
type StructuredExtractor struct {
	MinEntries int
}

func (e *StructuredExtractor) Tier() Tier { return TierStructured }

func (e *StructuredExtractor) Extract(ctx context.Context, in *Input) (*Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, _ := ParseLines(in.Region.Lines, e.minEntries())
	if entries == nil {
		return nil, fmt.Errorf("no pattern matched %d region lines", len(in.Region.Lines))
	}
	return NewCandidate(TierStructured, entries), nil
}

func (e *StructuredExtractor) minEntries() int {
	if e.MinEntries > 0 {
		return e.MinEntries
	}
	return 3
}

// FallbackExtractor re-renders the region's pages through the alternate
// plain-text path, which applies no table structuring, and parses that.
// Some documents whose structured rendering mangles the TOC layout come
// out clean here.
type FallbackExtractor struct {
	MinEntries int
}

func (e *FallbackExtractor) Tier() Tier { return TierFallbackText }

func (e *FallbackExtractor) Extract(ctx context.Context, in *Input) (*Candidate, error) {
	var lines []string
	for _, page := range in.Region.Pages {
		text, err := in.Renderer.PlainPageText(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("plain text render of page %d: %w", page, err)
		}
		for _, line := range strings.Split(text, "\n") {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("plain text rendering produced no lines")
	}

	entries, _ := ParseLines(lines, e.minEntries())
	if entries == nil {
		return nil, fmt.Errorf("no pattern matched plain text rendering")
	}
	return NewCandidate(TierFallbackText, entries), nil
}

func (e *FallbackExtractor) minEntries() int {
	if e.MinEntries > 0 {
		return e.MinEntries
	}
	return 3
}
