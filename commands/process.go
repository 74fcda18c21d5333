package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProcessCmd creates the process command: build the document
// registry and relationship map and write both artifacts.
func NewProcessCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Build the document registry and relationship map",
		Long: `Process walks the repository, extracts metadata from every matching
file, classifies documents into taxonomy layers, and derives the typed
relationship graph. It writes the document registry and relationship
map artifacts to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath, OutputDir: outputDir}
			artifacts, err := pipeline.Run()
			if err != nil {
				return err
			}

			if err := artifacts.WriteCore(outputDir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d documents, %d relationships (%d rejected)\n",
				len(artifacts.Registry.Docs), len(artifacts.Graph.Edges), artifacts.Graph.Rejected)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to process")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "docs/nlu", "Directory for output artifacts")

	return cmd
}
