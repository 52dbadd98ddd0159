package store

import (
	"context"
	"testing"

	"github.com/stratadocs/strata/internal/structure"
	"github.com/stratadocs/strata/internal/toc"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDocumentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := Document{
		ID:                 "doc-1",
		Path:               "/reports/well-a.pdf",
		PageCount:          50,
		Tier:               string(toc.TierStructured),
		Confidence:         1.0,
		StructureAvailable: true,
	}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	loaded, err := s.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if loaded.PageCount != 50 || loaded.Tier != "structured" || !loaded.StructureAvailable {
		t.Errorf("loaded = %+v", loaded)
	}

	t.Run("upsert updates in place", func(t *testing.T) {
		doc.Confidence = 0.5
		if err := s.SaveDocument(ctx, doc); err != nil {
			t.Fatalf("SaveDocument: %v", err)
		}
		docs, err := s.ListDocuments(ctx)
		if err != nil {
			t.Fatalf("ListDocuments: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("got %d documents, want 1", len(docs))
		}
		if docs[0].Confidence != 0.5 {
			t.Errorf("Confidence = %v, want 0.5", docs[0].Confidence)
		}
	})

	t.Run("missing document errors", func(t *testing.T) {
		if _, err := s.GetDocument(ctx, "nope"); err == nil {
			t.Error("expected error for missing document")
		}
	})
}

func TestEntriesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveDocument(ctx, Document{ID: "doc-1", Path: "a.pdf", PageCount: 20}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	entries := []toc.Entry{
		{Number: "1", Title: "Introduction", Page: toc.ExactPage(5), Category: "technical-summary"},
		{Number: "6", Title: "Operations", Page: toc.ExactPage(18), Category: "operations"},
		{Number: "6.3", Title: "Incidents", Page: toc.RangePage(18, 20), Category: "safety"},
		{Number: "7", Title: "Lost Section", Page: toc.UnknownPage()},
	}
	if err := s.SaveEntries(ctx, "doc-1", entries); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	loaded, err := s.GetEntries(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetEntries: %v", err)
	}
	if len(loaded) != 4 {
		t.Fatalf("got %d entries, want 4", len(loaded))
	}
	if loaded[0].Page.State != toc.PageExact || loaded[0].Page.Page != 5 {
		t.Errorf("entry 0 page = %+v", loaded[0].Page)
	}
	if loaded[2].Page.State != toc.PageRange || loaded[2].Page.Lo != 18 || loaded[2].Page.Hi != 20 {
		t.Errorf("entry 2 page = %+v", loaded[2].Page)
	}
	if loaded[3].Page.State != toc.PageUnknown {
		t.Errorf("entry 3 page = %+v", loaded[3].Page)
	}
	if loaded[2].Category != "safety" {
		t.Errorf("entry 2 category = %q", loaded[2].Category)
	}

	t.Run("save replaces previous entries", func(t *testing.T) {
		if err := s.SaveEntries(ctx, "doc-1", entries[:2]); err != nil {
			t.Fatalf("SaveEntries: %v", err)
		}
		loaded, err := s.GetEntries(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetEntries: %v", err)
		}
		if len(loaded) != 2 {
			t.Errorf("got %d entries, want 2", len(loaded))
		}
	})
}

func TestChunksRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveDocument(ctx, Document{ID: "doc-1", Path: "a.pdf", PageCount: 20}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	chunks := []structure.Chunk{
		{
			Text:       "drilling commenced at 0600",
			SourcePage: 13,
			Metadata: structure.ChunkMetadata{
				SectionNumber:   "2",
				SectionTitle:    "Methods",
				SectionCategory: "operations",
				IsSplit:         true,
				SubIndex:        1,
			},
		},
		{
			Text:       "unstructured scan content",
			SourcePage: 3,
			Metadata: structure.ChunkMetadata{
				StructureUnavailable: true,
				SectionTitles:        []string{"Introduction", "Methods"},
			},
		},
	}
	if err := s.AppendChunks(ctx, "doc-1", chunks); err != nil {
		t.Fatalf("AppendChunks: %v", err)
	}

	loaded, err := s.GetChunks(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetChunks: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d chunks, want 2", len(loaded))
	}
	if !loaded[0].Metadata.IsSplit || loaded[0].Metadata.SubIndex != 1 {
		t.Errorf("chunk 0 metadata = %+v", loaded[0].Metadata)
	}
	if loaded[0].Metadata.SectionCategory != "operations" {
		t.Errorf("chunk 0 category = %q", loaded[0].Metadata.SectionCategory)
	}
	if !loaded[1].Metadata.StructureUnavailable {
		t.Error("chunk 1 should be structure-unavailable")
	}
	if len(loaded[1].Metadata.SectionTitles) != 2 {
		t.Errorf("chunk 1 titles = %v", loaded[1].Metadata.SectionTitles)
	}

	t.Run("append accumulates", func(t *testing.T) {
		if err := s.AppendChunks(ctx, "doc-1", chunks[:1]); err != nil {
			t.Fatalf("AppendChunks: %v", err)
		}
		loaded, err := s.GetChunks(ctx, "doc-1")
		if err != nil {
			t.Fatalf("GetChunks: %v", err)
		}
		if len(loaded) != 3 {
			t.Errorf("got %d chunks, want 3", len(loaded))
		}
	})
}
