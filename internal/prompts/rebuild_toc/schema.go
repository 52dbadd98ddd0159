package rebuild_toc

// ReconstructionSchema is the JSON schema for TOC reconstruction output.
var ReconstructionSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "toc_reconstruction",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"entries": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"section_number": map[string]any{
								"type":        "string",
								"description": "Dot-hierarchy section number as printed ('2', '2.1', '2.1.3')",
							},
							"title": map[string]any{
								"type":        "string",
								"description": "Entry title without the number prefix",
							},
							"page": map[string]any{
								"type":        []string{"integer", "null"},
								"description": "Page number paired with this entry, or null when not determinable",
							},
						},
						"required":             []string{"section_number", "title", "page"},
						"additionalProperties": false,
					},
					"description": "All reconstructed entries in original order",
				},
			},
			"required":             []string{"entries"},
			"additionalProperties": false,
		},
	},
}

// Entry is one reconstructed TOC entry.
type Entry struct {
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Page          *int   `json:"page"`
}

// Result is the parsed reconstruction output.
type Result struct {
	Entries []Entry `json:"entries"`
}
