package classify

import (
	"testing"

	"github.com/stratadocs/strata/internal/toc"
)

func testTable(t *testing.T) *LookupTable {
	t.Helper()
	table, err := NewLookupTable([]TableEntry{
		{DocumentID: "doc-1", Number: "1", Title: "Well Identification", Category: "identification"},
		{DocumentID: "doc-1", Number: "2", Title: "Drilling Operations", Category: "operations"},
		{DocumentID: "doc-1", Number: "2", Title: "Drilling Operations Summary Report", Category: "technical-summary"},
		{DocumentID: "doc-1", Number: "6", Title: "Safety", Category: "safety"},
	})
	if err != nil {
		t.Fatalf("NewLookupTable: %v", err)
	}
	return table
}

func TestClassify(t *testing.T) {
	c := New(testTable(t), nil, nil)

	t.Run("exact lookup", func(t *testing.T) {
		category, ok := c.Classify("doc-1", "1", "Well Identification")
		if !ok || category != CategoryIdentification {
			t.Errorf("got (%s, %v), want (identification, true)", category, ok)
		}
	})

	t.Run("exact lookup normalizes punctuation and case", func(t *testing.T) {
		category, ok := c.Classify("doc-1", "1.", "WELL  IDENTIFICATION:")
		if !ok || category != CategoryIdentification {
			t.Errorf("got (%s, %v), want (identification, true)", category, ok)
		}
	})

	t.Run("fuzzy lookup via substring", func(t *testing.T) {
		// "Drilling Operations (continued)" normalizes to a superstring of
		// the table row title.
		category, ok := c.Classify("doc-1", "2", "Drilling Operations (continued)")
		if !ok {
			t.Fatal("expected fuzzy hit")
		}
		if category != CategoryOperations {
			t.Errorf("category = %s, want operations", category)
		}
	})

	t.Run("fuzzy tie breaks on longest row title", func(t *testing.T) {
		category, ok := c.Classify("doc-1", "2", "Complete Drilling Operations Summary Report 2024")
		if !ok {
			t.Fatal("expected fuzzy hit")
		}
		if category != CategoryTechnicalSummary {
			t.Errorf("category = %s, want technical-summary (longest row title)", category)
		}
	})

	t.Run("keyword fallback for unknown document", func(t *testing.T) {
		category, ok := c.Classify("doc-unknown", "4", "Directional Survey Data")
		if !ok || category != CategoryDirectional {
			t.Errorf("got (%s, %v), want (directional, true)", category, ok)
		}
	})

	t.Run("keyword rule order is deterministic", func(t *testing.T) {
		// "Appendix B: Pressure Test Charts" hits both appendix and testing
		// keywords; appendix is the earlier rule.
		category, ok := c.Classify("doc-unknown", "", "Appendix B: Pressure Test Charts")
		if !ok || category != CategoryAppendix {
			t.Errorf("got (%s, %v), want (appendix, true)", category, ok)
		}
	})

	t.Run("no match yields null", func(t *testing.T) {
		if category, ok := c.Classify("doc-unknown", "9", "Zygomorphic Considerations"); ok {
			t.Errorf("expected miss, got %s", category)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first, ok1 := c.Classify("doc-1", "2", "Drilling Operations")
		second, ok2 := c.Classify("doc-1", "2", "Drilling Operations")
		if first != second || ok1 != ok2 {
			t.Errorf("classification not idempotent: (%s, %v) vs (%s, %v)", first, ok1, second, ok2)
		}
	})
}

func TestClassifyEntries(t *testing.T) {
	c := New(testTable(t), nil, nil)

	t.Run("generic title inherits parent category", func(t *testing.T) {
		entries := []toc.Entry{
			{Number: "6", Title: "Safety"},
			{Number: "6.1", Title: "General"},
		}
		out := c.ClassifyEntries("doc-1", entries)
		if out[0].Category != "safety" {
			t.Errorf("parent category = %q, want safety", out[0].Category)
		}
		if out[1].Category != "safety" {
			t.Errorf("generic child category = %q, want inherited safety", out[1].Category)
		}
	})

	t.Run("generic title with unresolved parent stays null", func(t *testing.T) {
		entries := []toc.Entry{
			{Number: "9", Title: "Zygomorphic Considerations"},
			{Number: "9.1", Title: "General"},
		}
		out := c.ClassifyEntries("doc-unknown", entries)
		if out[1].Category != "" {
			t.Errorf("category = %q, want empty", out[1].Category)
		}
	})

	t.Run("input order resolves ancestors first", func(t *testing.T) {
		entries := []toc.Entry{
			{Number: "2", Title: "Drilling Operations"},
			{Number: "2.1", Title: "General"},
			{Number: "2.2", Title: "Directional Survey"},
		}
		out := c.ClassifyEntries("doc-1", entries)
		if out[1].Category != "operations" {
			t.Errorf("2.1 category = %q, want operations", out[1].Category)
		}
		if out[2].Category != "directional" {
			t.Errorf("2.2 category = %q, want directional", out[2].Category)
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		entries := []toc.Entry{{Number: "6", Title: "Safety"}}
		_ = c.ClassifyEntries("doc-1", entries)
		if entries[0].Category != "" {
			t.Errorf("input mutated: %q", entries[0].Category)
		}
	})
}

func TestLookupTableValidation(t *testing.T) {
	_, err := NewLookupTable([]TableEntry{
		{DocumentID: "doc-1", Number: "1", Title: "Intro", Category: "not-a-category"},
	})
	if err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Well Identification  ", "well identification"},
		{"DRILLING  OPERATIONS", "drilling operations"},
		{"Appendix B: Charts", "appendix b charts"},
		{"General.", "general"},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
