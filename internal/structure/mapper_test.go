package structure

import (
	"testing"

	"github.com/stratadocs/strata/internal/toc"
)

func validatedEntries() []toc.Entry {
	return []toc.Entry{
		{Number: "1", Title: "Introduction", Page: toc.ExactPage(5), Category: "technical-summary"},
		{Number: "2", Title: "Methods", Page: toc.ExactPage(12), Category: "operations"},
		{Number: "2.1", Title: "Data", Page: toc.ExactPage(14), Category: "operations"},
		{Number: "2.2", Title: "Calibration", Page: toc.RangePage(14, 20), Category: "testing"},
		{Number: "3", Title: "Results", Page: toc.ExactPage(20), Category: "technical-summary"},
	}
}

func TestOwnerForPage(t *testing.T) {
	m := NewMapper(validatedEntries())

	cases := []struct {
		page  int
		want  string
		owned bool
	}{
		{1, "", false},  // before the first boundary
		{4, "", false},
		{5, "1", true},
		{11, "1", true},
		{12, "2", true},
		{13, "2", true},
		{14, "2.1", true}, // range-state 2.2 claims nothing
		{19, "2.1", true},
		{20, "3", true},
		{999, "3", true}, // last section runs to document end
	}
	for _, tc := range cases {
		owner, ok := m.OwnerForPage(tc.page)
		if ok != tc.owned {
			t.Errorf("page %d: owned = %v, want %v", tc.page, ok, tc.owned)
			continue
		}
		if ok && owner.Number != tc.want {
			t.Errorf("page %d: owner = %s, want %s", tc.page, owner.Number, tc.want)
		}
	}
}

func TestTag(t *testing.T) {
	m := NewMapper(validatedEntries())

	t.Run("chunks get value-copied metadata", func(t *testing.T) {
		chunks := []Chunk{
			{Text: "drilling commenced", SourcePage: 13},
			{Text: "sample results", SourcePage: 21},
		}
		tagged := m.Tag(chunks)
		if tagged[0].Metadata.SectionNumber != "2" || tagged[0].Metadata.SectionCategory != "operations" {
			t.Errorf("chunk 0 metadata = %+v", tagged[0].Metadata)
		}
		if tagged[1].Metadata.SectionNumber != "3" {
			t.Errorf("chunk 1 metadata = %+v", tagged[1].Metadata)
		}
		// Originals stay untouched.
		if chunks[0].Metadata.SectionNumber != "" {
			t.Error("input chunk mutated")
		}
	})

	t.Run("unowned pages stay untagged", func(t *testing.T) {
		tagged := m.Tag([]Chunk{{Text: "cover page", SourcePage: 1}})
		if tagged[0].Metadata.SectionNumber != "" {
			t.Errorf("unowned chunk got section %q", tagged[0].Metadata.SectionNumber)
		}
	})
}

func TestTagUnavailable(t *testing.T) {
	t.Run("degraded mode carries title list only", func(t *testing.T) {
		chunks := []Chunk{{Text: "content", SourcePage: 3}}
		titles := []string{"Introduction", "Methods"}
		tagged := TagUnavailable(chunks, titles)
		if !tagged[0].Metadata.StructureUnavailable {
			t.Error("expected structure-unavailable flag")
		}
		if len(tagged[0].Metadata.SectionTitles) != 2 {
			t.Errorf("titles = %v", tagged[0].Metadata.SectionTitles)
		}
		if tagged[0].Metadata.SectionNumber != "" {
			t.Error("degraded mode must not assign a section")
		}
	})

	t.Run("no structure at all means empty title list", func(t *testing.T) {
		tagged := TagUnavailable([]Chunk{{Text: "content", SourcePage: 1}}, nil)
		if !tagged[0].Metadata.StructureUnavailable {
			t.Error("expected structure-unavailable flag")
		}
		if len(tagged[0].Metadata.SectionTitles) != 0 {
			t.Errorf("titles = %v, want empty", tagged[0].Metadata.SectionTitles)
		}
	})
}

func TestMapperAvailable(t *testing.T) {
	if NewMapper(nil).Available() {
		t.Error("empty mapper should not be available")
	}
	onlyRanges := []toc.Entry{{Number: "1", Title: "A", Page: toc.RangePage(1, 5)}}
	if NewMapper(onlyRanges).Available() {
		t.Error("range-only entries provide no ownership boundaries")
	}
}
