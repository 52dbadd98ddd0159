// Package classify assigns sections of a technical report to a closed
// category taxonomy. Resolution cascades from an exact lookup table to
// fuzzy title matching to keyword rules; an unresolvable section gets no
// category rather than a guessed one.
package classify

// Category is one value of the closed section taxonomy. The set is
// extended only by adding static rules, never at runtime.
type Category string

const (
	CategoryAdministrative   Category = "administrative"
	CategoryIdentification   Category = "identification"
	CategoryTechnicalSummary Category = "technical-summary"
	CategoryDirectional      Category = "directional"
	CategoryStructural       Category = "structural"
	CategoryOperations       Category = "operations"
	CategoryGeological       Category = "geological"
	CategoryCompletion       Category = "completion"
	CategorySafety           Category = "safety"
	CategoryTesting          Category = "testing"
	CategoryIntervention     Category = "intervention"
	CategoryAppendix         Category = "appendix"
)

// AllCategories lists every taxonomy value.
var AllCategories = []Category{
	CategoryAdministrative,
	CategoryIdentification,
	CategoryTechnicalSummary,
	CategoryDirectional,
	CategoryStructural,
	CategoryOperations,
	CategoryGeological,
	CategoryCompletion,
	CategorySafety,
	CategoryTesting,
	CategoryIntervention,
	CategoryAppendix,
}

// Valid reports whether c is a taxonomy value.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
