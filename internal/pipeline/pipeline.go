// Package pipeline orchestrates structure extraction for documents: region
// detection, tiered extraction, validation, classification, page mapping,
// chunk splitting, and persistence. Per-document pipelines are independent;
// the only shared state is the read-only classifier and the store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stratadocs/strata/internal/chunker"
	"github.com/stratadocs/strata/internal/classify"
	"github.com/stratadocs/strata/internal/config"
	"github.com/stratadocs/strata/internal/providers"
	"github.com/stratadocs/strata/internal/render"
	"github.com/stratadocs/strata/internal/store"
	"github.com/stratadocs/strata/internal/structure"
	"github.com/stratadocs/strata/internal/toc"
)

// Pipeline processes documents into validated structure and tagged chunks.
type Pipeline struct {
	Config     *config.Config
	Registry   *providers.Registry
	Store      *store.Store
	Classifier *classify.Classifier
	Logger     *slog.Logger
}

// Result summarizes one processed document.
type Result struct {
	DocumentID         string
	PageCount          int
	StructureAvailable bool
	Tier               toc.Tier
	Confidence         float64
	EntryCount         int
	ChunkCount         int
}

// Process opens the document at path and runs the full pipeline.
func (p *Pipeline) Process(ctx context.Context, documentID, path string) (*Result, error) {
	renderer, err := render.NewPDFRenderer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return p.ProcessRendered(ctx, documentID, path, renderer)
}

// ProcessRendered runs the pipeline against an already-open renderer.
func (p *Pipeline) ProcessRendered(ctx context.Context, documentID, path string, renderer render.PageRenderer) (*Result, error) {
	logger := p.logger().With("document_id", documentID)
	total := renderer.PageCount()

	result := &Result{DocumentID: documentID, PageCount: total}

	var validated []toc.Entry
	candidate, err := p.extractStructure(ctx, renderer, logger)
	switch {
	case err == nil:
		validated = toc.Validate(candidate.Entries, total)
		validated = p.Classifier.ClassifyEntries(documentID, validated)
		result.StructureAvailable = true
		result.Tier = candidate.Tier
		result.Confidence = candidate.Confidence
		result.EntryCount = len(validated)
	case errors.Is(err, toc.ErrRegionNotFound), errors.Is(err, toc.ErrNoUsableCandidate):
		// Degraded mode: the document is still indexed, just untagged.
		logger.Info("no usable structure, continuing in degraded mode", "reason", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, err
	}

	if err := p.Store.SaveDocument(ctx, store.Document{
		ID:                 documentID,
		Path:               path,
		PageCount:          total,
		Tier:               string(result.Tier),
		Confidence:         result.Confidence,
		StructureAvailable: result.StructureAvailable,
	}); err != nil {
		return nil, err
	}
	if result.StructureAvailable {
		if err := p.Store.SaveEntries(ctx, documentID, validated); err != nil {
			return nil, err
		}
	}

	chunks, err := p.buildChunks(ctx, renderer, validated, result.StructureAvailable)
	if err != nil {
		return nil, err
	}
	if err := p.Store.AppendChunks(ctx, documentID, chunks); err != nil {
		return nil, err
	}
	result.ChunkCount = len(chunks)

	if !result.StructureAvailable && len(chunks) == 0 {
		// The one condition warranting operator attention: nothing usable
		// came out of any tier or the degraded path. Likely a document
		// format we do not support yet.
		logger.Error("document yielded zero usable content", "path", path, "pages", total)
	}

	return result, nil
}

// extractStructure locates the TOC region and arbitrates the tiers.
func (p *Pipeline) extractStructure(ctx context.Context, renderer render.PageRenderer, logger *slog.Logger) (*toc.Candidate, error) {
	extraction := p.Config.Extraction

	in, err := toc.FindRegion(ctx, renderer, extraction.LeadingPages)
	if err != nil {
		return nil, err
	}
	logger.Debug("toc region detected",
		"pages", in.Region.Pages, "lines", len(in.Region.Lines))

	arbitrator := &toc.Arbitrator{
		Extractors:         p.buildExtractors(logger),
		MinEntries:         extraction.MinEntries,
		MinModelConfidence: extraction.MinModelConfidence,
		Logger:             logger,
	}
	return arbitrator.Run(ctx, in)
}

// buildExtractors assembles the escalation chain. Model tiers are only
// included when their provider is configured and registered.
func (p *Pipeline) buildExtractors(logger *slog.Logger) []toc.Extractor {
	extraction := p.Config.Extraction
	timeout := time.Duration(extraction.ModelTimeoutSeconds) * time.Second

	extractors := []toc.Extractor{
		&toc.StructuredExtractor{MinEntries: extraction.MinEntries},
		&toc.FallbackExtractor{MinEntries: extraction.MinEntries},
	}

	if client, model, ok := p.lookupProvider(p.Config.Defaults.VisionProvider); ok {
		extractors = append(extractors, &toc.VisionExtractor{
			Client:  client,
			Model:   model,
			Timeout: timeout,
		})
	} else {
		logger.Debug("vision tier unavailable", "provider", p.Config.Defaults.VisionProvider)
	}

	if client, model, ok := p.lookupProvider(p.Config.Defaults.LLMProvider); ok {
		extractors = append(extractors, &toc.ReconstructExtractor{
			Client:  client,
			Model:   model,
			Timeout: timeout,
		})
	} else {
		logger.Debug("language model tier unavailable", "provider", p.Config.Defaults.LLMProvider)
	}

	return extractors
}

func (p *Pipeline) lookupProvider(name string) (providers.LLMClient, string, bool) {
	if name == "" || p.Registry == nil {
		return nil, "", false
	}
	client, err := p.Registry.GetLLM(name)
	if err != nil {
		return nil, "", false
	}
	model := ""
	if cfg, ok := p.Config.GetLLMProvider(name); ok {
		model = cfg.Model
	}
	return client, model, true
}

// buildChunks renders every page into a content chunk, tags each with its
// owning section (or the degraded structure-unavailable tag), and splits
// oversized chunks.
func (p *Pipeline) buildChunks(ctx context.Context, renderer render.PageRenderer, validated []toc.Entry, available bool) ([]structure.Chunk, error) {
	total := renderer.PageCount()

	var chunks []structure.Chunk
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := renderer.PageText(ctx, page)
		if err != nil {
			p.logger().Warn("page render failed, skipping", "page", page, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, structure.Chunk{Text: text, SourcePage: page})
	}

	// A structure whose entries carry no exact pages cannot own pages
	// either; it degrades to the title-list tag rather than inventing
	// per-chunk assignments.
	mapper := structure.NewMapper(validated)
	if available && mapper.Available() {
		chunks = mapper.Tag(chunks)
	} else {
		chunks = structure.TagUnavailable(chunks, structure.Titles(validated))
	}

	maxChars := p.Config.Chunking.MaxChunkChars
	if maxChars <= 0 {
		maxChars = chunker.DefaultMaxChars
	}
	return chunker.SplitAll(chunks, maxChars), nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
