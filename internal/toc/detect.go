package toc

import (
	"context"
	"regexp"
	"strings"

	"github.com/stratadocs/strata/internal/render"
)

// tocKeywords are the headings that mark a TOC region. Matched against
// lowercased, trimmed lines.
var tocKeywords = []string{
	"table of contents",
	"contents",
	"index",
}

// numberedLineRe matches a "leading number + text" shape: "2.1 Data ...".
var numberedLineRe = regexp.MustCompile(`^\s*\d+(?:\.\d+)*\.?\s+\S`)

// minStructuredRun is the run length of numbered lines accepted as a TOC
// region when no keyword heading is present.
const minStructuredRun = 3

// maxRegionGap is how many consecutive non-matching lines are tolerated
// inside a region before it is considered closed.
const maxRegionGap = 2

// Region is a candidate TOC region within a document's leading text.
type Region struct {
	StartLine int      // index into the scanned lines, inclusive
	EndLine   int      // inclusive
	Lines     []string // the region's lines
	Pages     []int    // document pages the region spans, in order
}

// Text returns the region joined back into a single string.
func (r Region) Text() string {
	return strings.Join(r.Lines, "\n")
}

// DetectRegion locates the TOC region in the given lines. It returns
// false, not an error, when nothing qualifies.
func DetectRegion(lines []string) (Region, bool) {
	// Keyword pass: a heading line anchors the region, which then extends
	// while lines keep the numbered shape.
	for i, line := range lines {
		if !isKeywordLine(line) {
			continue
		}
		end := extendRegion(lines, i+1)
		if end > i {
			return makeRegion(lines, i, end), true
		}
	}

	// Structural pass: a bare run of numbered lines is accepted on its own.
	runStart := -1
	runLen := 0
	for i, line := range lines {
		if numberedLineRe.MatchString(line) {
			if runStart < 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runLen >= minStructuredRun {
			end := extendRegion(lines, runStart)
			return makeRegion(lines, runStart, end), true
		}
		runStart = -1
		runLen = 0
	}
	if runLen >= minStructuredRun {
		end := extendRegion(lines, runStart)
		return makeRegion(lines, runStart, end), true
	}

	return Region{}, false
}

func isKeywordLine(line string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	if normalized == "" || len(normalized) > 60 {
		return false
	}
	for _, kw := range tocKeywords {
		if normalized == kw || strings.HasPrefix(normalized, kw) {
			return true
		}
	}
	return false
}

// extendRegion walks forward from start while lines keep matching the
// numbered shape, tolerating small gaps. Returns the last matching index.
func extendRegion(lines []string, start int) int {
	end := start - 1
	gap := 0
	for i := start; i < len(lines); i++ {
		if numberedLineRe.MatchString(lines[i]) || looksLikeContinuation(lines[i]) {
			end = i
			gap = 0
			continue
		}
		if strings.TrimSpace(lines[i]) == "" {
			gap++
			if gap > maxRegionGap {
				break
			}
			continue
		}
		break
	}
	return end
}

// looksLikeContinuation matches dotted leader lines and page-only lines
// that belong to a multi-line TOC entry.
func looksLikeContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if regexp.MustCompile(`^\.{2,}\s*\d*$`).MatchString(trimmed) {
		return true
	}
	return regexp.MustCompile(`^\d{1,4}$`).MatchString(trimmed)
}

func makeRegion(lines []string, start, end int) Region {
	region := Region{StartLine: start, EndLine: end}
	region.Lines = append(region.Lines, lines[start:end+1]...)
	return region
}

// Input carries everything the extraction tiers need for one document.
type Input struct {
	Renderer   render.PageRenderer
	Region     Region
	TotalPages int
}

// FindRegion scans the leading pages of a document and returns extraction
// input for the detected TOC region. Returns ErrRegionNotFound when the
// leading pages contain no recognizable region.
func FindRegion(ctx context.Context, renderer render.PageRenderer, leadingPages int) (*Input, error) {
	total := renderer.PageCount()
	if leadingPages <= 0 || leadingPages > total {
		leadingPages = total
	}

	var lines []string
	var linePages []int
	for page := 1; page <= leadingPages; page++ {
		text, err := renderer.PageText(ctx, page)
		if err != nil {
			// A single unreadable page must not sink detection.
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			lines = append(lines, line)
			linePages = append(linePages, page)
		}
	}

	region, ok := DetectRegion(lines)
	if !ok {
		return nil, ErrRegionNotFound
	}

	// Record which document pages the region spans.
	seen := make(map[int]bool)
	for i := region.StartLine; i <= region.EndLine; i++ {
		page := linePages[i]
		if !seen[page] {
			seen[page] = true
			region.Pages = append(region.Pages, page)
		}
	}

	return &Input{
		Renderer:   renderer,
		Region:     region,
		TotalPages: total,
	}, nil
}
