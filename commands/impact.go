package commands

import (
	"fmt"

	"github.com/c360studio/docgraph/impact"
	"github.com/spf13/cobra"
)

// NewImpactCmd creates the impact command: analyze which documents are
// affected by a change to the given document.
func NewImpactCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		maxDepth   int
	)

	cmd := &cobra.Command{
		Use:   "impact <document-id>",
		Short: "Analyze the downstream impact of changing a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath}
			artifacts, err := pipeline.Run()
			if err != nil {
				return err
			}

			analysis, err := impact.Analyze(artifacts.Graph, args[0], maxDepth)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), analysis.Render(artifacts.Registry))
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to process")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().IntVar(&maxDepth, "depth", impact.DefaultMaxDepth, "Maximum traversal depth")

	return cmd
}
