package classify

import (
	"log/slog"
	"strings"

	"github.com/stratadocs/strata/internal/toc"
)

// genericTitles are bare non-descriptive subsection titles that say
// nothing about content. Keyword-matching them would be noise, so they
// inherit the parent's category instead.
var genericTitles = map[string]bool{
	"general":       true,
	"miscellaneous": true,
	"other":         true,
}

// Classifier resolves section categories. It is deterministic and total:
// the same input always yields the same output, and a miss yields no
// category, never an error.
type Classifier struct {
	table  *LookupTable
	rules  []KeywordRule
	logger *slog.Logger
}

// New builds a classifier. A nil table means table lookups always miss;
// nil rules fall back to the built-in set.
func New(table *LookupTable, rules []KeywordRule, logger *slog.Logger) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{table: table, rules: rules, logger: logger}
}

// Classify resolves one (document, number, title) triple through the
// cascade: exact table lookup, fuzzy title lookup, keyword rules.
// Returns false when nothing matches.
func (c *Classifier) Classify(documentID, number, title string) (Category, bool) {
	number = NormalizeNumber(number)
	normTitle := NormalizeTitle(title)

	if category, ok := c.lookupExact(documentID, number, normTitle); ok {
		return category, true
	}
	if category, ok := c.lookupFuzzy(documentID, number, normTitle); ok {
		return category, true
	}
	return c.matchKeywords(normTitle)
}

// ClassifyEntries resolves every entry in document order, writing the
// Category field. Bare generic titles ("General") inherit the nearest
// resolved ancestor's category; entry order matters because ancestors
// resolve first. Misses are logged for offline rule improvement.
func (c *Classifier) ClassifyEntries(documentID string, entries []toc.Entry) []toc.Entry {
	out := make([]toc.Entry, len(entries))
	copy(out, entries)

	for i := range out {
		number := NormalizeNumber(out[i].Number)
		normTitle := NormalizeTitle(out[i].Title)

		if category, ok := c.lookupExact(documentID, number, normTitle); ok {
			out[i].Category = string(category)
			continue
		}
		if category, ok := c.lookupFuzzy(documentID, number, normTitle); ok {
			out[i].Category = string(category)
			continue
		}
		if genericTitles[normTitle] {
			if parent := nearestResolvedAncestor(out, i); parent >= 0 {
				out[i].Category = out[parent].Category
				continue
			}
		}
		if category, ok := c.matchKeywords(normTitle); ok {
			out[i].Category = string(category)
			continue
		}
		c.logger.Debug("section category unresolved",
			"document_id", documentID, "number", out[i].Number, "title", out[i].Title)
	}
	return out
}

func (c *Classifier) lookupExact(documentID, number, normTitle string) (Category, bool) {
	if c.table == nil {
		return "", false
	}
	return c.table.Exact(documentID, number, normTitle)
}

// lookupFuzzy matches against same-(document, number) rows whose
// normalized titles are substrings of one another. Among multiple hits
// the longest row title wins; remaining ties break on file order.
func (c *Classifier) lookupFuzzy(documentID, number, normTitle string) (Category, bool) {
	if c.table == nil || normTitle == "" {
		return "", false
	}

	best := -1
	var bestCategory Category
	for _, row := range c.table.Rows(documentID, number) {
		if row.title == "" {
			continue
		}
		if !strings.Contains(normTitle, row.title) && !strings.Contains(row.title, normTitle) {
			continue
		}
		if best < 0 || len(row.title) > best {
			best = len(row.title)
			bestCategory = row.category
		}
	}
	if best < 0 {
		return "", false
	}
	return bestCategory, true
}

func (c *Classifier) matchKeywords(normTitle string) (Category, bool) {
	if normTitle == "" {
		return "", false
	}
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normTitle, keyword) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

// nearestResolvedAncestor finds the closest earlier entry that is an
// ancestor of entry i and already has a category.
func nearestResolvedAncestor(entries []toc.Entry, i int) int {
	for j := i - 1; j >= 0; j-- {
		if toc.IsChildOf(entries[i].Number, entries[j].Number) && entries[j].Category != "" {
			return j
		}
	}
	return -1
}
