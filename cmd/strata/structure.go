package main

import (
	"github.com/spf13/cobra"

	"github.com/stratadocs/strata/internal/toc"
)

var structureCmd = &cobra.Command{
	Use:   "structure [<document-id>]",
	Short: "Show extracted document structure",
	Long: `Without arguments, lists all processed documents. With a document ID,
prints the validated, categorized entry list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Store.Close()
		ctx := cmd.Context()

		if len(args) == 0 {
			docs, err := services.Store.ListDocuments(ctx)
			if err != nil {
				return err
			}
			out := make([]map[string]any, 0, len(docs))
			for _, d := range docs {
				out = append(out, map[string]any{
					"document_id":         d.ID,
					"path":                d.Path,
					"page_count":          d.PageCount,
					"structure_available": d.StructureAvailable,
					"tier":                d.Tier,
					"confidence":          d.Confidence,
				})
			}
			printOutput(out)
			return nil
		}

		entries, err := services.Store.GetEntries(ctx, args[0])
		if err != nil {
			return err
		}
		out := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			row := map[string]any{
				"number":   e.Number,
				"title":    e.Title,
				"category": e.Category,
			}
			switch e.Page.State {
			case toc.PageExact:
				row["page"] = e.Page.Page
			case toc.PageRange:
				row["page"] = map[string]int{"lo": e.Page.Lo, "hi": e.Page.Hi}
			default:
				row["page"] = nil
			}
			out = append(out, row)
		}
		printOutput(out)
		return nil
	},
}
