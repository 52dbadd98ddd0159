package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stratadocs/strata/internal/classify"
	"github.com/stratadocs/strata/internal/config"
	"github.com/stratadocs/strata/internal/providers"
	"github.com/stratadocs/strata/internal/store"
	"github.com/stratadocs/strata/internal/toc"
)

// fakeRenderer is an in-memory renderer for pipeline tests.
type fakeRenderer struct {
	total  int
	text   map[int]string
	plain  map[int]string
	images map[int][]byte
}

func (r *fakeRenderer) PageCount() int { return r.total }

func (r *fakeRenderer) PageText(_ context.Context, page int) (string, error) {
	return r.text[page], nil
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

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &Pipeline{
		Config:     config.DefaultConfig(),
		Registry:   providers.NewRegistry(),
		Store:      s,
		Classifier: classify.New(nil, nil, nil),
	}
}

func TestProcessRendered(t *testing.T) {
	ctx := context.Background()

	t.Run("structured document end to end", func(t *testing.T) {
		p := newTestPipeline(t)
		renderer := &fakeRenderer{
			total: 25,
			text: map[int]string{
				1: "WELL COMPLETION REPORT",
				2: "Contents\n1. Introduction ..... 3\n2. Drilling Operations ..... 8\n2.1 General ..... 10\n3. Appendix A Charts ..... 20",
				3: "Introduction body text.",
				8: "Operations commenced at dawn.",
				9: "More operations text.",
				20: "Chart data.",
			},
		}

		result, err := p.ProcessRendered(ctx, "doc-1", "a.pdf", renderer)
		if err != nil {
			t.Fatalf("ProcessRendered: %v", err)
		}
		if !result.StructureAvailable {
			t.Fatal("expected structure to be available")
		}
		if result.Tier != toc.TierStructured {
			t.Errorf("Tier = %s, want structured", result.Tier)
		}
		if result.Confidence != 1.0 {
			t.Errorf("Confidence = %v, want 1.0", result.Confidence)
		}
		if result.EntryCount != 4 {
			t.Errorf("EntryCount = %d, want 4", result.EntryCount)
		}

		entries, err := p.Store.GetEntries(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetEntries: %v", err)
		}
		if entries[1].Category != "operations" {
			t.Errorf("entry 1 category = %q, want operations", entries[1].Category)
		}
		// "General" inherits its parent's category.
		if entries[2].Category != "operations" {
			t.Errorf("entry 2 category = %q, want inherited operations", entries[2].Category)
		}

		chunks, err := p.Store.GetChunks(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetChunks: %v", err)
		}
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
		for _, c := range chunks {
			if c.SourcePage == 8 && c.Metadata.SectionNumber != "2" {
				t.Errorf("page 8 chunk owned by %q, want 2", c.Metadata.SectionNumber)
			}
			if c.Metadata.StructureUnavailable {
				t.Error("structured document must not produce degraded chunks")
			}
		}
	})

	t.Run("no toc degrades instead of failing", func(t *testing.T) {
		p := newTestPipeline(t)
		renderer := &fakeRenderer{
			total: 5,
			text: map[int]string{
				1: "scanned page with no structure",
				2: "more scanned prose",
			},
		}

		result, err := p.ProcessRendered(ctx, "doc-2", "b.pdf", renderer)
		if err != nil {
			t.Fatalf("ProcessRendered: %v", err)
		}
		if result.StructureAvailable {
			t.Error("expected degraded mode")
		}

		chunks, err := p.Store.GetChunks(ctx, "doc-2")
		if err != nil {
			t.Fatalf("GetChunks: %v", err)
		}
		if len(chunks) != 2 {
			t.Fatalf("got %d chunks, want 2", len(chunks))
		}
		for _, c := range chunks {
			if !c.Metadata.StructureUnavailable {
				t.Error("degraded chunks must carry the structure-unavailable tag")
			}
			if len(c.Metadata.SectionTitles) != 0 {
				t.Errorf("no-TOC document should carry an empty title list, got %v", c.Metadata.SectionTitles)
			}
			if c.Metadata.SectionNumber != "" {
				t.Error("degraded mode must never assign a section")
			}
		}
	})

	t.Run("scrambled toc reconstructed by language model tier", func(t *testing.T) {
		p := newTestPipeline(t)

		mock := providers.NewMockClient()
		mock.ResponseJSON = []byte(`{"entries": [
			{"section_number": "1", "title": "Introduction", "page": 3},
			{"section_number": "2", "title": "Operations", "page": 8},
			{"section_number": "3", "title": "Summary", "page": 15}
		]}`)
		p.Registry.RegisterLLM("openrouter", mock)
		// Vision provider intentionally unregistered: the chain should
		// skip straight to reconstruction.

		// Multi-column OCR read left-to-right: two entries kept their
		// inline shape, the page column came out as stranded numbers.
		scrambled := "Contents\n1 Introduction\n2 Operations\n3\n8\n15\n18\n"
		renderer := &fakeRenderer{
			total: 20,
			text:  map[int]string{2: scrambled, 3: "Body text."},
			plain: map[int]string{2: scrambled}, // alternate renderer no better here
		}

		result, err := p.ProcessRendered(ctx, "doc-3", "c.pdf", renderer)
		if err != nil {
			t.Fatalf("ProcessRendered: %v", err)
		}
		if result.Tier != toc.TierLanguageModel {
			t.Errorf("Tier = %s, want language-model", result.Tier)
		}
		if result.EntryCount != 3 {
			t.Errorf("EntryCount = %d, want 3", result.EntryCount)
		}
	})
}

func TestProcessAllRespectsWorkerLimit(t *testing.T) {
	p := newTestPipeline(t)
	// Nonexistent paths fail fast in Process; the point here is that every
	// job still gets a result slot.
	jobs := []Job{
		{DocumentID: "a", Path: "/nonexistent/a.pdf"},
		{DocumentID: "b", Path: "/nonexistent/b.pdf"},
		{DocumentID: "c", Path: "/nonexistent/c.pdf"},
	}
	results := p.ProcessAll(context.Background(), jobs, 2)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("job %d: expected error for nonexistent file", i)
		}
		if r.Job.DocumentID != jobs[i].DocumentID {
			t.Errorf("job %d: result order mismatch", i)
		}
	}
}
