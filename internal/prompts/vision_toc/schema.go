package vision_toc

import (
	"regexp"
	"strconv"
	"strings"
)

// Row is one transcribed TOC entry from a vision model table.
type Row struct {
	Number string
	Title  string
	Page   *int
}

var (
	numberCellRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?$`)
	pageCellRe   = regexp.MustCompile(`^\d{1,4}$`)
)

// ParseTable parses a markdown pipe table from model output into rows.
// The parse is arity-agnostic: models emit varying column counts, so cells
// are classified by shape. When several cells look like a page number, the
// first one after the title wins.
func ParseTable(content string) []Row {
	var rows []Row
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") && !strings.Contains(line, "|") {
			continue
		}
		cells := splitCells(line)
		if len(cells) < 2 || isSeparatorRow(cells) || isHeaderRow(cells) {
			continue
		}
		if row, ok := classifyCells(cells); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func splitCells(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(cells []string) bool {
	for _, c := range cells {
		switch strings.ToLower(c) {
		case "section_number", "section", "number", "title", "page", "no", "no.":
		default:
			return false
		}
	}
	return true
}

func classifyCells(cells []string) (Row, bool) {
	var row Row
	titleIdx := -1

	for i, cell := range cells {
		if cell == "" {
			continue
		}
		if row.Number == "" && numberCellRe.MatchString(cell) {
			row.Number = strings.TrimSuffix(cell, ".")
			continue
		}
		if titleIdx < 0 && !pageCellRe.MatchString(cell) {
			row.Title = strings.Trim(cell, ". ")
			titleIdx = i
		}
	}

	if row.Number == "" || row.Title == "" {
		return Row{}, false
	}

	for i := titleIdx + 1; i < len(cells); i++ {
		if pageCellRe.MatchString(cells[i]) {
			page, _ := strconv.Atoi(cells[i])
			row.Page = &page
			break
		}
	}

	return row, true
}
