// Package structure turns a validated, categorized entry list into page
// ownership: which section owns which page, and how content units get
// tagged with their owning section.
package structure

// ChunkMetadata is the section tag attached to a content chunk. Chunks own
// a value copy so they stay valid even if the document's structure is
// rebuilt later.
type ChunkMetadata struct {
	SectionNumber   string `json:"section_number,omitempty"`
	SectionTitle    string `json:"section_title,omitempty"`
	SectionCategory string `json:"section_category,omitempty"`
	IsSplit         bool   `json:"is_split"`
	SubIndex        int    `json:"sub_index"`

	// StructureUnavailable marks chunks from documents with no usable
	// structure. SectionTitles then carries the raw title set for
	// free-text search boosting, possibly empty.
	StructureUnavailable bool     `json:"structure_unavailable,omitempty"`
	SectionTitles        []string `json:"section_titles,omitempty"`
}

// Chunk is one bounded content unit. Created once at indexing time,
// immutable afterwards.
type Chunk struct {
	Text       string        `json:"text"`
	SourcePage int           `json:"source_page"`
	Metadata   ChunkMetadata `json:"metadata"`
}
