package toc

// Validate repairs an accepted candidate's entries against the document's
// page count. Rules apply in order:
//
//  1. Pages outside [1, totalPages] become unknown.
//  2. A subsection's page must be >= its nearest preceding ancestor's
//     lower bound; violations become unknown, never a guessed value.
//  3. An unknown-page subsection that is the last child of its parent is
//     assigned the range [ancestor's lower bound, next top-level section's
//     page or document end].
//
// After validation every entry's page state is exactly one of exact, range,
// or unknown. The input slice is not modified.
func Validate(entries []Entry, totalPages int) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	for i := range out {
		if out[i].Page.State == PageExact {
			if out[i].Page.Page < 1 || out[i].Page.Page > totalPages {
				out[i].Page = UnknownPage()
			}
		}
	}

	for i := range out {
		if out[i].Page.State != PageExact {
			continue
		}
		ancestor := nearestPrecedingAncestor(out, i)
		if ancestor < 0 {
			continue
		}
		if lo, ok := out[ancestor].Page.LowerBound(); ok && out[i].Page.Page < lo {
			out[i].Page = UnknownPage()
		}
	}

	for i := range out {
		if out[i].Page.State != PageUnknown || out[i].IsTopLevel() {
			continue
		}
		if !isLastChild(out, i) {
			continue
		}
		ancestor := nearestPrecedingAncestor(out, i)
		if ancestor < 0 {
			continue
		}
		lo, ok := out[ancestor].Page.LowerBound()
		if !ok {
			continue
		}
		hi := totalPages
		for j := i + 1; j < len(out); j++ {
			if !out[j].IsTopLevel() {
				continue
			}
			if p, ok := out[j].Page.LowerBound(); ok {
				hi = p
				break
			}
		}
		if lo <= hi {
			out[i].Page = RangePage(lo, hi)
		}
	}

	return out
}

// nearestPrecedingAncestor returns the index of the closest earlier entry
// whose number is an ancestor of entry i's number, or -1.
func nearestPrecedingAncestor(entries []Entry, i int) int {
	for j := i - 1; j >= 0; j-- {
		if IsChildOf(entries[i].Number, entries[j].Number) {
			return j
		}
	}
	return -1
}

// isLastChild reports whether no later entry shares entry i's direct
// parent number.
func isLastChild(entries []Entry, i int) bool {
	parent := ParentNumber(entries[i].Number)
	if parent == "" {
		return false
	}
	for j := i + 1; j < len(entries); j++ {
		if ParentNumber(entries[j].Number) == parent {
			return false
		}
	}
	return true
}
