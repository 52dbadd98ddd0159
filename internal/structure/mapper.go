package structure

import (
	"sort"

	"github.com/stratadocs/strata/internal/toc"
)

// boundary is one section's page range start.
type boundary struct {
	startPage int
	entry     toc.Entry
}

// Mapper resolves which section owns a given page. It reads the validated
// entry list and never modifies it: entries with an exact page are sorted
// ascending, and entry i owns [page_i, page_{i+1}) up to the next exact
// entry or document end.
type Mapper struct {
	boundaries []boundary
}

// NewMapper builds a mapper from validated entries. Entries without an
// exact page carry no ownership boundary; they are still part of the
// document's structure but cannot claim pages.
func NewMapper(entries []toc.Entry) *Mapper {
	m := &Mapper{}
	for _, e := range entries {
		if e.Page.State != toc.PageExact {
			continue
		}
		m.boundaries = append(m.boundaries, boundary{startPage: e.Page.Page, entry: e})
	}
	sort.SliceStable(m.boundaries, func(i, j int) bool {
		return m.boundaries[i].startPage < m.boundaries[j].startPage
	})
	return m
}

// Available reports whether the mapper has any ownership boundaries.
func (m *Mapper) Available() bool {
	return len(m.boundaries) > 0
}

// OwnerForPage returns the section owning the page: the last entry whose
// range start is <= page. Pages before the first boundary have no owner.
func (m *Mapper) OwnerForPage(page int) (toc.Entry, bool) {
	idx := sort.Search(len(m.boundaries), func(i int) bool {
		return m.boundaries[i].startPage > page
	})
	if idx == 0 {
		return toc.Entry{}, false
	}
	return m.boundaries[idx-1].entry, true
}

// Tag assigns each chunk a value copy of its owning section's metadata.
// Chunks on unowned pages are left untagged rather than given invented
// values. The input slice is not modified.
func (m *Mapper) Tag(chunks []Chunk) []Chunk {
	out := make([]Chunk, len(chunks))
	copy(out, chunks)
	for i := range out {
		owner, ok := m.OwnerForPage(out[i].SourcePage)
		if !ok {
			continue
		}
		out[i].Metadata.SectionNumber = owner.Number
		out[i].Metadata.SectionTitle = owner.Title
		out[i].Metadata.SectionCategory = owner.Category
	}
	return out
}

// TagUnavailable tags every chunk in the degraded structure-unavailable
// mode, carrying only the raw title set. Used when no usable structure
// exists for a document; it must never fall back to inventing per-chunk
// section assignments.
func TagUnavailable(chunks []Chunk, titles []string) []Chunk {
	out := make([]Chunk, len(chunks))
	copy(out, chunks)
	for i := range out {
		out[i].Metadata = ChunkMetadata{
			StructureUnavailable: true,
			SectionTitles:        titles,
			SubIndex:             out[i].Metadata.SubIndex,
			IsSplit:              out[i].Metadata.IsSplit,
		}
	}
	return out
}

// Titles returns the raw title list of an entry set, in document order.
func Titles(entries []toc.Entry) []string {
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Title != "" {
			titles = append(titles, e.Title)
		}
	}
	return titles
}
