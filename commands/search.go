package commands

import (
	"fmt"
	"strings"

	"github.com/c360studio/docgraph/embed"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command: rank documents against a
// query using the embedding index.
func NewSearchCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		topK       int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents by lexical similarity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath}
			artifacts, err := pipeline.Run()
			if err != nil {
				return err
			}

			index := embed.NewIndex(embed.NewHashingEmbedder(0))
			for _, id := range artifacts.Registry.IDs() {
				doc := artifacts.Registry.Docs[id]
				if doc.Error != "" {
					continue
				}
				text := doc.Title + " " + doc.Metadata.Docstring
				for _, h := range doc.Sections {
					text += " " + h.Text
				}
				if err := index.Add(id, text); err != nil {
					return err
				}
			}

			results, err := index.Search(strings.Join(args, " "), topK)
			if err != nil {
				return err
			}

			for _, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%.3f  %s\n", result.Score, result.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to process")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().IntVarP(&topK, "top", "k", 10, "Number of results to return")

	return cmd
}
