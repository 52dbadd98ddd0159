package toc

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stratadocs/strata/internal/prompts/rebuild_toc"
	"github.com/stratadocs/strata/internal/providers"
)

var bareNumberLineRe = regexp.MustCompile(`^\d{1,4}$`)

// minScrambledBareLines is how many bare-number lines must appear before a
// region counts as scrambled.
const minScrambledBareLines = 3

// DetectScrambling reports whether a region's text rendering scrambled the
// column layout: page numbers stranded on their own lines, outnumbering
// lines where the number stayed inline with its title.
func DetectScrambling(lines []string) bool {
	bare := 0
	inline := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if bareNumberLineRe.MatchString(trimmed) {
			bare++
			continue
		}
		if numberedLineRe.MatchString(line) {
			inline++
		}
	}
	return bare >= minScrambledBareLines && bare > inline
}

// ReconstructExtractor is the last-resort tier: a language model re-pairs
// numbers, titles, and pages from a scrambled rendering. It only applies
// when the region actually looks scrambled; on clean text the earlier
// tiers are strictly more trustworthy.
type ReconstructExtractor struct {
	Client  providers.LLMClient
	Model   string
	Timeout time.Duration
}

func (e *ReconstructExtractor) Tier() Tier { return TierLanguageModel }

func (e *ReconstructExtractor) Extract(ctx context.Context, in *Input) (*Candidate, error) {
	if !DetectScrambling(in.Region.Lines) {
		return nil, ErrNotApplicable
	}
	if e.Client == nil {
		return nil, fmt.Errorf("no language model client configured")
	}

	req := rebuild_toc.CreateRequest(rebuild_toc.Input{RegionText: in.Region.Text()})
	req.Model = e.Model
	req.Timeout = e.Timeout
	req.RequestID = "rebuild-toc"

	result, err := e.Client.Chat(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reconstruction request: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("reconstruction request: %s", result.ErrorMessage)
	}

	parsedJSON := result.ParsedJSON
	if parsedJSON == nil {
		parsedJSON, err = providers.ParseStructuredJSON(result.Content)
		if err != nil {
			return nil, fmt.Errorf("reconstruction output: %w", err)
		}
	}

	parsed, err := rebuild_toc.ParseResult(parsedJSON)
	if err != nil {
		return nil, fmt.Errorf("reconstruction output did not match schema: %w", err)
	}
	if len(parsed.Entries) == 0 {
		return nil, fmt.Errorf("reconstruction produced no entries")
	}

	entries := make([]Entry, 0, len(parsed.Entries))
	for _, pe := range parsed.Entries {
		entry := Entry{
			Number: strings.TrimSuffix(strings.TrimSpace(pe.SectionNumber), "."),
			Title:  strings.TrimSpace(pe.Title),
			Page:   UnknownPage(),
		}
		if entry.Number == "" || entry.Title == "" {
			continue
		}
		if pe.Page != nil {
			entry.Page = ExactPage(*pe.Page)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("reconstruction entries were all empty")
	}

	return NewCandidate(TierLanguageModel, entries), nil
}
