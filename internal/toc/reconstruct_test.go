package toc

import (
	"context"
	"errors"
	"testing"

	"github.com/stratadocs/strata/internal/providers"
)

func TestDetectScrambling(t *testing.T) {
	t.Run("stranded page numbers", func(t *testing.T) {
		lines := []string{
			"Introduction",
			"Methods",
			"Data",
			"Results",
			"5",
			"12",
			"14",
			"20",
		}
		if !DetectScrambling(lines) {
			t.Error("expected scrambling to be detected")
		}
	})

	t.Run("clean dotted text is not scrambled", func(t *testing.T) {
		lines := []string{
			"1. Introduction ..... 5",
			"2. Methods ..... 12",
			"2.1 Data ..... 14",
		}
		if DetectScrambling(lines) {
			t.Error("clean text should not be flagged as scrambled")
		}
	})

	t.Run("few bare numbers are tolerated", func(t *testing.T) {
		lines := []string{
			"1. Introduction ..... 5",
			"2. Methods ..... 12",
			"3. Results ..... 20",
			"14",
		}
		if DetectScrambling(lines) {
			t.Error("a single stray number should not flag scrambling")
		}
	})
}

func TestReconstructExtractor(t *testing.T) {
	scrambled := Region{Lines: []string{
		"1",
		"2",
		"2.1",
		"Introduction",
		"Methods",
		"Data",
		"5",
		"12",
		"14",
	}}

	t.Run("not applicable on clean text", func(t *testing.T) {
		in := &Input{Region: Region{Lines: []string{
			"1. Introduction ..... 5",
			"2. Methods ..... 12",
			"2.1 Data ..... 14",
		}}}
		ex := &ReconstructExtractor{Client: providers.NewMockClient()}
		_, err := ex.Extract(context.Background(), in)
		if !errors.Is(err, ErrNotApplicable) {
			t.Errorf("err = %v, want ErrNotApplicable", err)
		}
	})

	t.Run("reconstructs from model JSON", func(t *testing.T) {
		client := providers.NewMockClient()
		client.ResponseJSON = []byte(`{"entries": [
			{"section_number": "1", "title": "Introduction", "page": 5},
			{"section_number": "2", "title": "Methods", "page": 12},
			{"section_number": "2.1", "title": "Data", "page": null}
		]}`)

		in := &Input{Region: scrambled, TotalPages: 50}
		ex := &ReconstructExtractor{Client: client}
		candidate, err := ex.Extract(context.Background(), in)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if candidate.Tier != TierLanguageModel {
			t.Errorf("Tier = %s, want %s", candidate.Tier, TierLanguageModel)
		}
		if len(candidate.Entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(candidate.Entries))
		}
		if candidate.Entries[2].Page.State != PageUnknown {
			t.Errorf("null page should stay unknown, got %+v", candidate.Entries[2].Page)
		}
		if want := 2.0 / 3.0; candidate.Confidence != want {
			t.Errorf("Confidence = %v, want %v", candidate.Confidence, want)
		}
	})

	t.Run("unparseable model output fails the tier", func(t *testing.T) {
		client := providers.NewMockClient()
		client.ResponseText = "Sorry, I cannot reconstruct this."

		in := &Input{Region: scrambled, TotalPages: 50}
		ex := &ReconstructExtractor{Client: client}
		if _, err := ex.Extract(context.Background(), in); err == nil {
			t.Error("expected failure on unparseable output")
		}
	})

	t.Run("model error fails the tier", func(t *testing.T) {
		client := providers.NewMockClient()
		client.ShouldFail = true

		in := &Input{Region: scrambled, TotalPages: 50}
		ex := &ReconstructExtractor{Client: client}
		if _, err := ex.Extract(context.Background(), in); err == nil {
			t.Error("expected failure when model errors")
		}
	})
}
