package toc

import (
	"regexp"
	"strconv"
	"strings"
)

// A pattern turns region lines into entries. Patterns are tried in order;
// the first one yielding enough (number, title) pairs wins. Page capture
// is optional per entry.
type pattern struct {
	name  string
	parse func(lines []string) []Entry
}

// linePatterns is the ordered matcher set for text-tier extraction.
var linePatterns = []pattern{
	{name: "adaptive-table", parse: parseAdaptiveTable},
	{name: "multi-line-dotted", parse: parseMultiLineDotted},
	{name: "single-line-dotted", parse: parseSingleLineDotted},
	{name: "space-separated", parse: parseSpaceSeparated},
}

var (
	sectionNumberRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?$`)
	pageNumberRe    = regexp.MustCompile(`^\d{1,4}$`)

	singleDottedRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(.+?)\s*\.{2,}\s*(\d{1,4})?\s*$`)
	spaceSepRe     = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(\S.*?)(?:\s{2,}(\d{1,4}))?\s*$`)
	numberTitleRe  = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(\S.*?)\s*$`)
	leaderPageRe   = regexp.MustCompile(`^\s*\.{2,}\s*(\d{1,4})?\s*$`)
)

// ParseLines applies the ordered pattern set and returns the entries from
// the first pattern producing at least minEntries pairs, plus the pattern
// name. Returns nil when nothing matches well enough.
func ParseLines(lines []string, minEntries int) ([]Entry, string) {
	for _, p := range linePatterns {
		entries := p.parse(lines)
		if len(entries) >= minEntries {
			return entries, p.name
		}
	}
	return nil, ""
}

// parseAdaptiveTable handles pipe-delimited rows produced by table-aware
// rendering. Row arity varies, so cells are classified by shape instead of
// position: the first section-number cell, the longest text cell, and the
// first page-number cell after the title.
func parseAdaptiveTable(lines []string) []Entry {
	var entries []Entry
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, "|") {
			continue
		}
		if entry, ok := parseTableRow(trimmed); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseTableRow classifies a single pipe-delimited row by cell shape.
func parseTableRow(row string) (Entry, bool) {
	cells := splitCells(row)
	if len(cells) < 2 {
		return Entry{}, false
	}

	// Separator rows (---) carry no content.
	allDashes := true
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			allDashes = false
			break
		}
	}
	if allDashes {
		return Entry{}, false
	}

	entry := Entry{Page: UnknownPage()}
	numberIdx, titleIdx := -1, -1

	for i, cell := range cells {
		if numberIdx < 0 && sectionNumberRe.MatchString(cell) {
			entry.Number = strings.TrimSuffix(cell, ".")
			numberIdx = i
			continue
		}
		// A cell may carry "2.1 Data" combined.
		if numberIdx < 0 && titleIdx < 0 {
			if m := numberTitleRe.FindStringSubmatch(cell); m != nil && !pageNumberRe.MatchString(cell) {
				entry.Number = m[1]
				entry.Title = m[2]
				numberIdx = i
				titleIdx = i
				continue
			}
		}
		if titleIdx < 0 && !pageNumberRe.MatchString(cell) && cell != "" {
			entry.Title = cell
			titleIdx = i
		}
	}

	if entry.Number == "" || entry.Title == "" {
		return Entry{}, false
	}

	// First page-number cell after the title is the page; later page
	// columns (duplicate page listings from the visual layout) are ignored.
	for i := titleIdx + 1; i < len(cells); i++ {
		if pageNumberRe.MatchString(cells[i]) {
			page, _ := strconv.Atoi(cells[i])
			entry.Page = ExactPage(page)
			break
		}
	}

	return entry, true
}

func splitCells(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// parseMultiLineDotted handles entries whose dotted leader and page landed
// on the line after the number and title.
func parseMultiLineDotted(lines []string) []Entry {
	var entries []Entry
	for i := 0; i < len(lines); i++ {
		m := numberTitleRe.FindStringSubmatch(lines[i])
		if m == nil || strings.Contains(lines[i], "..") {
			continue
		}
		if i+1 >= len(lines) {
			continue
		}
		leader := leaderPageRe.FindStringSubmatch(lines[i+1])
		if leader == nil {
			continue
		}
		entry := Entry{
			Number: m[1],
			Title:  strings.TrimSpace(m[2]),
			Page:   UnknownPage(),
		}
		if leader[1] != "" {
			page, _ := strconv.Atoi(leader[1])
			entry.Page = ExactPage(page)
		}
		entries = append(entries, entry)
		i++
	}
	return entries
}

// parseSingleLineDotted handles the classic "2.1  Data ..... 14" shape.
func parseSingleLineDotted(lines []string) []Entry {
	var entries []Entry
	for _, line := range lines {
		m := singleDottedRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entry := Entry{
			Number: m[1],
			Title:  strings.TrimSpace(m[2]),
			Page:   UnknownPage(),
		}
		if m[3] != "" {
			page, _ := strconv.Atoi(m[3])
			entry.Page = ExactPage(page)
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseSpaceSeparated handles "2.1  Data   14" with no leader dots. The
// page is only taken from a clearly separated trailing column.
func parseSpaceSeparated(lines []string) []Entry {
	var entries []Entry
	for _, line := range lines {
		if strings.Contains(line, "..") || strings.Contains(line, "|") {
			continue
		}
		m := spaceSepRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		entry := Entry{
			Number: m[1],
			Title:  title,
			Page:   UnknownPage(),
		}
		if m[3] != "" {
			page, _ := strconv.Atoi(m[3])
			entry.Page = ExactPage(page)
		}
		entries = append(entries, entry)
	}
	return entries
}
