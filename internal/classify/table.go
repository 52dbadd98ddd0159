package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// TableEntry is one row of the static category lookup table.
type TableEntry struct {
	DocumentID string `yaml:"document_id"`
	Number     string `yaml:"number"`
	Title      string `yaml:"title"`
	Category   string `yaml:"category"`
}

// tableFile is the on-disk shape of the lookup table.
type tableFile struct {
	Entries []TableEntry `yaml:"entries"`
}

// tableRow is a loaded, normalized row. Order preserves file position for
// deterministic fuzzy tie-breaking.
type tableRow struct {
	title    string
	category Category
	order    int
}

// LookupTable is the static (document_id, number, title) -> category map.
// Built offline, loaded once, read-only afterwards.
type LookupTable struct {
	exact map[string]Category   // doc \x00 number \x00 title
	byKey map[string][]tableRow // doc \x00 number, in file order
}

// NewLookupTable builds a table from entries. Rows with an unknown
// category are rejected so a typo in the offline table surfaces at load.
func NewLookupTable(entries []TableEntry) (*LookupTable, error) {
	t := &LookupTable{
		exact: make(map[string]Category),
		byKey: make(map[string][]tableRow),
	}
	for i, e := range entries {
		category := Category(e.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("table entry %d: unknown category %q", i, e.Category)
		}
		doc := strings.TrimSpace(e.DocumentID)
		number := NormalizeNumber(e.Number)
		title := NormalizeTitle(e.Title)

		t.exact[tableKey(doc, number, title)] = category
		key := tableKey(doc, number)
		t.byKey[key] = append(t.byKey[key], tableRow{title: title, category: category, order: i})
	}
	return t, nil
}

// LoadTable reads a YAML lookup table from disk.
func LoadTable(path string) (*LookupTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup table: %w", err)
	}
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lookup table: %w", err)
	}
	return NewLookupTable(file.Entries)
}

// Exact returns the category for a normalized (doc, number, title) triple.
func (t *LookupTable) Exact(doc, number, title string) (Category, bool) {
	c, ok := t.exact[tableKey(doc, number, title)]
	return c, ok
}

// Rows returns the table rows for a (doc, number) pair in file order.
func (t *LookupTable) Rows(doc, number string) []tableRow {
	return t.byKey[tableKey(doc, number)]
}

func tableKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}

var whitespaceRe = regexp.MustCompile(`\s+`)
var titleStripRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// NormalizeTitle lowercases, strips punctuation, and collapses whitespace.
func NormalizeTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = titleStripRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeNumber trims whitespace and a trailing dot ("2.1." -> "2.1").
func NormalizeNumber(number string) string {
	return strings.TrimSuffix(strings.TrimSpace(number), ".")
}
