package vision_toc

import "fmt"

// SystemPrompt instructs a vision model to transcribe a rendered TOC page
// into a markdown table. Table output keeps the parse deterministic on our
// side; the model only transcribes, it does not interpret.
const SystemPrompt = `You are a document transcription specialist. You will be shown a page image from a technical report containing part of its Table of Contents.

Transcribe every table-of-contents entry visible on the page into a markdown table.

Rules:
- One row per entry, in top-to-bottom order as printed.
- Columns: | section_number | title | page |
- section_number is the dot-hierarchy prefix exactly as printed ("2", "2.1", "2.1.3").
- title is the entry text without the number prefix and without leader dots.
- page is the printed page number; leave the cell empty when none is printed.
- Do NOT invent entries, numbers, or pages that are not visible on the page.
- Output ONLY the markdown table, no commentary.`

// BuildUserPrompt builds the per-page user prompt accompanying the image.
func BuildUserPrompt(pageNum int) string {
	return fmt.Sprintf(`Transcribe the table of contents entries on this page (document page %d) as a markdown table with columns | section_number | title | page |. Output only the table.`, pageNum)
}
