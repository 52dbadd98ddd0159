package main

import (
	"github.com/spf13/cobra"
)

var chunksFullText bool

var chunksCmd = &cobra.Command{
	Use:   "chunks <document-id>",
	Short: "Show a document's tagged content chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Store.Close()

		chunks, err := services.Store.GetChunks(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := make([]map[string]any, 0, len(chunks))
		for _, c := range chunks {
			row := map[string]any{
				"source_page": c.SourcePage,
				"chars":       len(c.Text),
			}
			if c.Metadata.StructureUnavailable {
				row["structure_unavailable"] = true
				row["section_titles"] = c.Metadata.SectionTitles
			} else {
				row["section_number"] = c.Metadata.SectionNumber
				row["section_title"] = c.Metadata.SectionTitle
				row["section_category"] = c.Metadata.SectionCategory
			}
			if c.Metadata.IsSplit {
				row["sub_index"] = c.Metadata.SubIndex
			}
			if chunksFullText {
				row["text"] = c.Text
			}
			out = append(out, row)
		}
		printOutput(out)
		return nil
	},
}

func init() {
	chunksCmd.Flags().BoolVar(&chunksFullText, "text", false, "include full chunk text")
}
