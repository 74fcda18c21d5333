package commands

import (
	"fmt"
	"path/filepath"

	"github.com/c360studio/docgraph/export"
	"github.com/c360studio/docgraph/synthesis"
	"github.com/spf13/cobra"
)

// NewSynthesizeCmd creates the synthesize command: render the summary
// reports and the graph-exchange file.
func NewSynthesizeCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		outputDir  string
		report     string
	)

	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Generate synthesis reports and the knowledge graph export",
		Long: `Synthesize rebuilds the registry and relationship graph, then renders
the system overview, cross-reference index, gap analysis, and the
graph-exchange JSON consumed by the external viewer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath, OutputDir: outputDir}
			artifacts, err := pipeline.Run()
			if err != nil {
				return err
			}

			reg, g := artifacts.Registry, artifacts.Graph
			outputs := map[string]func() error{
				"overview": func() error {
					return writeText(filepath.Join(outputDir, OverviewFile), synthesis.Overview(reg, g))
				},
				"xref": func() error {
					return writeText(filepath.Join(outputDir, CrossReferenceFile), synthesis.CrossReference(reg, g))
				},
				"gaps": func() error {
					return writeText(filepath.Join(outputDir, GapsFile), synthesis.Gaps(reg, g))
				},
				"graph": func() error {
					return export.Build(reg, g).Save(filepath.Join(outputDir, KnowledgeGraphFile))
				},
			}

			if report != "all" {
				write, ok := outputs[report]
				if !ok {
					return fmt.Errorf("unknown report: %s (want all, overview, xref, gaps, or graph)", report)
				}
				return write()
			}
			for _, name := range []string{"overview", "xref", "gaps", "graph"} {
				if err := outputs[name](); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synthesis reports written to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to process")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "docs/nlu", "Directory for output artifacts")
	cmd.Flags().StringVar(&report, "report", "all", "Report to generate (all, overview, xref, gaps, graph)")

	return cmd
}
