package rebuild_toc

import "fmt"

// SystemPrompt instructs a language model to reconstruct a TOC whose text
// rendering scrambled column order (titles and page numbers interleaved
// out of position).
const SystemPrompt = `You are a Table of Contents reconstruction specialist. You will be given the raw text of a table of contents whose rendering scrambled the column layout: section numbers, titles, and page numbers may appear on separate lines or out of order.

Reconstruct the original entries.

Rules:
- Use ONLY the text provided. Every section number, title, and page number in your output must appear somewhere in the input.
- Pair each section number with its title and, where determinable, its page number.
- Preserve the original top-to-bottom entry order.
- When a page number cannot be confidently paired with an entry, return null for that entry's page. Never guess.
- section_number uses dot hierarchy as printed ("2", "2.1", "2.1.3").`

// BuildUserPrompt wraps the scrambled region text for reconstruction.
func BuildUserPrompt(regionText string) string {
	return fmt.Sprintf(`<task>
Reconstruct the table of contents entries from this scrambled text. Return every entry you can recover, in order.
</task>

<scrambled_toc>
%s
</scrambled_toc>

Return JSON matching the required schema. Use null pages rather than guessed pages.`, regionText)
}
