// Package toc recovers the hierarchical table of contents of a technical
// report from unreliable renderings: structured text, plain fallback text,
// vision model output, and language-model reconstruction, arbitrated by
// confidence and repaired into honest page bounds.
package toc

import (
	"strings"
)

// PageState describes how much is known about an entry's page location.
type PageState string

const (
	// PageExact means the page number came directly from a tier's raw output.
	PageExact PageState = "exact"
	// PageRange means the page is bounded but not exactly known.
	PageRange PageState = "range"
	// PageUnknown means no trustworthy page information exists.
	PageUnknown PageState = "unknown"
)

// PageRef is an entry's page location. Exactly one state applies.
// A range is an honest bounded estimate, never a fabricated exact page.
type PageRef struct {
	State PageState
	Page  int // valid when State == PageExact
	Lo    int // valid when State == PageRange
	Hi    int // valid when State == PageRange
}

// ExactPage returns a PageRef with a known page.
func ExactPage(n int) PageRef {
	return PageRef{State: PageExact, Page: n}
}

// RangePage returns a PageRef bounded by [lo, hi].
func RangePage(lo, hi int) PageRef {
	return PageRef{State: PageRange, Lo: lo, Hi: hi}
}

// UnknownPage returns a PageRef with no page information.
func UnknownPage() PageRef {
	return PageRef{State: PageUnknown}
}

// LowerBound returns the lowest page this ref can refer to,
// and false when nothing is known.
func (p PageRef) LowerBound() (int, bool) {
	switch p.State {
	case PageExact:
		return p.Page, true
	case PageRange:
		return p.Lo, true
	default:
		return 0, false
	}
}

// Entry is one table-of-contents entry. Number uses dot hierarchy
// ("2.1.3"); ordering reflects document appearance, not numeric sort.
type Entry struct {
	Number   string
	Title    string
	Page     PageRef
	Category string // assigned by the classifier; empty when unresolved
}

// Depth returns the hierarchy depth of the entry (1 for "2", 3 for "2.1.3").
func (e Entry) Depth() int {
	if e.Number == "" {
		return 1
	}
	return strings.Count(e.Number, ".") + 1
}

// IsTopLevel reports whether the entry is a top-level section.
func (e Entry) IsTopLevel() bool {
	return e.Depth() == 1
}

// ParentNumber returns the dot-hierarchy parent of a section number,
// or "" for top-level numbers ("2.1.3" -> "2.1", "2" -> "").
func ParentNumber(number string) string {
	idx := strings.LastIndex(number, ".")
	if idx < 0 {
		return ""
	}
	return number[:idx]
}

// IsChildOf reports whether number is a strict descendant of parent
// in the dot hierarchy.
func IsChildOf(number, parent string) bool {
	if parent == "" || number == parent {
		return false
	}
	return strings.HasPrefix(number, parent+".")
}

// Tier identifies one extraction strategy in the escalation chain.
type Tier string

const (
	TierStructured    Tier = "structured"
	TierFallbackText  Tier = "fallback-text"
	TierVision        Tier = "vision"
	TierLanguageModel Tier = "language-model"
)

// IsModelTier reports whether the tier's page extraction comes from a
// model rather than a deterministic parser.
func (t Tier) IsModelTier() bool {
	return t == TierVision || t == TierLanguageModel
}

// Candidate is the tagged result of one extraction tier.
type Candidate struct {
	Tier       Tier
	Entries    []Entry
	Confidence float64
}

// NewCandidate builds a candidate, computing confidence as the fraction
// of entries with an exact page.
func NewCandidate(tier Tier, entries []Entry) *Candidate {
	c := &Candidate{Tier: tier, Entries: entries}
	if len(entries) == 0 {
		return c
	}
	exact := 0
	for _, e := range entries {
		if e.Page.State == PageExact {
			exact++
		}
	}
	c.Confidence = float64(exact) / float64(len(entries))
	return c
}
