package toc

import (
	"context"
	"fmt"
	"time"

	"github.com/stratadocs/strata/internal/prompts/vision_toc"
	"github.com/stratadocs/strata/internal/providers"
)

// VisionExtractor rasterizes the region's pages and asks a vision model to
// transcribe each one into a markdown table. Transcription failures on a
// single page fail the whole tier; a partial TOC is worse than escalating.
type VisionExtractor struct {
	Client  providers.LLMClient
	Model   string
	Timeout time.Duration
}

func (e *VisionExtractor) Tier() Tier { return TierVision }

func (e *VisionExtractor) Extract(ctx context.Context, in *Input) (*Candidate, error) {
	if e.Client == nil {
		return nil, fmt.Errorf("no vision client configured")
	}

	var entries []Entry
	seen := make(map[string]bool)

	for _, page := range in.Region.Pages {
		image, err := in.Renderer.PageImage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", page, err)
		}

		req := vision_toc.CreateRequest(vision_toc.Input{PageNum: page, PageImage: image})
		req.Model = e.Model
		req.Timeout = e.Timeout
		req.RequestID = fmt.Sprintf("vision-toc-p%d", page)

		result, err := e.Client.Chat(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("vision request for page %d: %w", page, err)
		}
		if !result.Success {
			return nil, fmt.Errorf("vision request for page %d: %s", page, result.ErrorMessage)
		}

		rows := vision_toc.ParseTable(result.Content)
		if len(rows) == 0 {
			return nil, fmt.Errorf("vision output for page %d contained no table rows", page)
		}

		// Pages can overlap at render boundaries; the first occurrence
		// of a section number wins.
		for _, row := range rows {
			if seen[row.Number] {
				continue
			}
			seen[row.Number] = true
			entry := Entry{Number: row.Number, Title: row.Title, Page: UnknownPage()}
			if row.Page != nil {
				entry.Page = ExactPage(*row.Page)
			}
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("vision transcription produced no entries")
	}
	return NewCandidate(TierVision, entries), nil
}
