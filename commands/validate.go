package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/validate"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command: score every document
// against the completeness schema and write the validation report.
// A failing aggregate verdict makes the command exit non-zero.
func NewValidateCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		schemaPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate documentation completeness",
		Long: `Validate rebuilds the registry and relationship graph, evaluates every
document against the completeness schema, and writes the validation
report. The coverage thresholds in the schema drive a pass/fail
verdict; a failing verdict exits non-zero.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.LoadSchema(schemaPath)
			if err != nil {
				return err
			}

			pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath, OutputDir: outputDir}
			artifacts, err := pipeline.Run()
			if err != nil {
				return err
			}

			validator := validate.NewValidator(schema)
			result := validator.ValidateAll(artifacts.Registry, artifacts.Graph)

			report := validate.RenderReport(result)
			if err := writeText(filepath.Join(outputDir, ValidationFile), report); err != nil {
				return err
			}

			if !result.Coverage.Pass {
				return fmt.Errorf("validation failed: %s; see %s",
					strings.Join(result.Coverage.FailureReasons(), "; "),
					filepath.Join(outputDir, ValidationFile))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d documents, %d skipped\n",
				result.Coverage.ValidatedDocuments, result.Coverage.SkippedDocuments)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to process")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "completeness.yaml", "Completeness schema path (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "docs/nlu", "Directory for output artifacts")

	return cmd
}
