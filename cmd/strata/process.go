package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stratadocs/strata/internal/pipeline"
	"github.com/stratadocs/strata/internal/render"
)

var processDocID string

var processCmd = &cobra.Command{
	Use:   "process <pdf> [<pdf>...]",
	Short: "Extract structure from documents and index their chunks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Store.Close()

		if processDocID != "" && len(args) > 1 {
			return fmt.Errorf("--id can only be used with a single document")
		}

		cfg := services.Config.Get()
		p := &pipeline.Pipeline{
			Config:     cfg,
			Registry:   services.Registry,
			Store:      services.Store,
			Classifier: services.Classifier,
			Logger:     services.Logger,
		}

		ctx := cmd.Context()
		failed := 0
		for _, path := range args {
			docID := processDocID
			if docID == "" {
				docID = documentID(path)
			}

			renderer, err := render.NewPDFRenderer(path)
			if err != nil {
				services.Logger.Error("failed to open document", "path", path, "error", err)
				failed++
				continue
			}
			if err := services.Home.EnsurePageImagesDir(docID); err == nil {
				renderer.SetImageCacheDir(services.Home.PageImagesDir(docID))
			}

			result, err := p.ProcessRendered(ctx, docID, path, renderer)
			if err != nil {
				services.Logger.Error("processing failed", "document_id", docID, "error", err)
				failed++
				continue
			}
			printResult(result)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processDocID, "id", "", "document ID (default: derived from filename)")
}

// documentID derives a stable, readable ID from the filename, suffixed to
// stay unique across repeated ingests of same-named files.
func documentID(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8])
}

func printResult(result *pipeline.Result) {
	printOutput(map[string]any{
		"document_id":         result.DocumentID,
		"page_count":          result.PageCount,
		"structure_available": result.StructureAvailable,
		"tier":                string(result.Tier),
		"confidence":          result.Confidence,
		"entry_count":         result.EntryCount,
		"chunk_count":         result.ChunkCount,
	})
}
