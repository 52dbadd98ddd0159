// Package chunker splits oversized content units at semantic boundaries.
package chunker

import (
	"strings"
	"unicode"

	"github.com/stratadocs/strata/internal/structure"
)

// DefaultMaxChars is the chunk size ceiling when none is configured.
const DefaultMaxChars = 10000

// Split cuts text into pieces of at most maxChars characters, preferring
// semantic boundaries: paragraph break, then line break, then
// sentence-ending punctuation, then a hard cut. Concatenating the pieces
// reproduces the input exactly.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if len(text) <= maxChars {
		return []string{text}
	}

	var pieces []string
	remaining := text
	for len(remaining) > maxChars {
		cut := splitPoint(remaining, maxChars)
		pieces = append(pieces, remaining[:cut])
		remaining = remaining[cut:]
	}
	pieces = append(pieces, remaining)
	return pieces
}

// splitPoint finds the best cut position within (0, maxChars].
func splitPoint(text string, maxChars int) int {
	window := text[:maxChars]

	// Paragraph break: cut after the blank line.
	if idx := strings.LastIndex(window, "\n\n"); idx > 0 {
		return idx + 2
	}

	// Line break: cut after the newline.
	if idx := strings.LastIndex(window, "\n"); idx > 0 {
		return idx + 1
	}

	// Sentence boundary: cut after punctuation followed by whitespace.
	for i := maxChars - 1; i > 0; i-- {
		c := window[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && unicode.IsSpace(rune(text[i+1])) {
			return i + 1
		}
	}

	// Hard cut.
	return maxChars
}

// SplitChunk splits an oversized chunk into sub-chunks, each carrying the
// parent's full metadata plus a sub-index. Chunks within the ceiling are
// returned as-is.
func SplitChunk(chunk structure.Chunk, maxChars int) []structure.Chunk {
	pieces := Split(chunk.Text, maxChars)
	if len(pieces) == 1 {
		return []structure.Chunk{chunk}
	}

	out := make([]structure.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		sub := chunk
		sub.Text = piece
		sub.Metadata.IsSplit = true
		sub.Metadata.SubIndex = i
		out = append(out, sub)
	}
	return out
}

// SplitAll applies SplitChunk across a chunk list, preserving order.
func SplitAll(chunks []structure.Chunk, maxChars int) []structure.Chunk {
	var out []structure.Chunk
	for _, chunk := range chunks {
		out = append(out, SplitChunk(chunk, maxChars)...)
	}
	return out
}
