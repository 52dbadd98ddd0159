package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordRule maps a category to its trigger keywords. Rules are applied
// in order against the normalized title; the first rule with a matching
// keyword wins, so specific rules must precede broad ones.
type KeywordRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type rulesFile struct {
	Rules []KeywordRule `yaml:"rules"`
}

// DefaultRules is the built-in keyword rule set for well and completion
// reports. A rules file, when configured, replaces it entirely.
func DefaultRules() []KeywordRule {
	return []KeywordRule{
		{Category: CategoryAppendix, Keywords: []string{
			"appendix", "attachment", "annex", "enclosure",
		}},
		{Category: CategoryIdentification, Keywords: []string{
			"well identification", "well data", "location", "coordinates", "identification",
		}},
		{Category: CategoryDirectional, Keywords: []string{
			"directional", "deviation", "trajectory", "inclination", "azimuth", "survey",
		}},
		{Category: CategoryGeological, Keywords: []string{
			"geology", "geological", "formation", "lithology", "stratigraphy", "reservoir",
		}},
		{Category: CategoryStructural, Keywords: []string{
			"casing", "tubing", "wellhead", "liner", "cement", "schematic", "wellbore diagram",
		}},
		{Category: CategoryCompletion, Keywords: []string{
			"completion", "perforation", "stimulation", "frac", "gravel pack",
		}},
		{Category: CategoryIntervention, Keywords: []string{
			"workover", "intervention", "wireline", "coiled tubing", "fishing",
		}},
		{Category: CategorySafety, Keywords: []string{
			"safety", "hse", "incident", "hazard", "emergency",
		}},
		{Category: CategoryTesting, Keywords: []string{
			"pressure test", "flow test", "well test", "testing", "sampling", "test",
		}},
		{Category: CategoryTechnicalSummary, Keywords: []string{
			"summary", "abstract", "overview", "conclusion", "introduction",
		}},
		{Category: CategoryAdministrative, Keywords: []string{
			"approval", "signature", "distribution", "revision", "document control", "abbreviations",
		}},
		{Category: CategoryOperations, Keywords: []string{
			"operations", "drilling", "daily report", "activity", "procedure", "mobilization", "time breakdown",
		}},
	}
}

// LoadRules reads an ordered keyword rule list from a YAML file.
func LoadRules(path string) ([]KeywordRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword rules: %w", err)
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keyword rules: %w", err)
	}
	for i, rule := range file.Rules {
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, rule.Category)
		}
	}
	return file.Rules, nil
}
