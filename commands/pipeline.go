// Package commands implements the docgraph CLI commands. Each command
// wraps one pipeline entry point: process, validate, synthesize,
// impact, search, watch.
package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
)

// Output artifact filenames, relative to the output directory.
const (
	RegistryFile          = "document_registry.json"
	RelationshipMapFile   = "relationship_map.json"
	RelationshipEdgesFile = "relationship_edges.json"
	ValidationFile        = "validation_report.md"
	OverviewFile          = "system_overview.md"
	CrossReferenceFile    = "cross_reference_index.md"
	GapsFile              = "documentation_gaps.md"
	KnowledgeGraphFile    = "knowledge_graph.json"
)

// Pipeline bundles the inputs shared by every command.
type Pipeline struct {
	// Root is the repository root to process.
	Root string

	// ConfigPath optionally points at an explicit processor config.
	ConfigPath string

	// OutputDir receives the pipeline artifacts.
	OutputDir string

	// Logger receives progress and warning events.
	Logger *slog.Logger
}

// Artifacts is the in-memory result of one pipeline run. Everything is
// built before anything is written, so a fatal error never leaves a
// partial output set behind.
type Artifacts struct {
	Config   *config.Config
	Registry *registry.Registry
	Graph    *graph.Graph
}

// Run executes the processing pass: load config, build the registry,
// extract the relationship graph.
func (p *Pipeline) Run() (*Artifacts, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve repo path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat repo path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	cfg, err := config.NewLoader(logger).Load(root, p.ConfigPath)
	if err != nil {
		return nil, err
	}

	builder, err := registry.NewBuilder(root, cfg, logger)
	if err != nil {
		return nil, err
	}
	reg, err := builder.Build()
	if err != nil {
		return nil, err
	}

	extractor := graph.NewExtractor(reg.Docs, logger)
	if len(cfg.RelationshipTypes) > 0 {
		types := make([]graph.RelType, 0, len(cfg.RelationshipTypes))
		for _, t := range cfg.RelationshipTypes {
			types = append(types, graph.RelType(t))
		}
		extractor.SetAllowedTypes(types)
	}
	g := extractor.Extract()

	logger.Info("Pipeline run complete",
		slog.Int("documents", len(reg.Docs)),
		slog.Int("edges", len(g.Edges)),
		slog.Int("warnings", len(reg.Warnings)+len(g.Warnings)))

	return &Artifacts{Config: cfg, Registry: reg, Graph: g}, nil
}

// WriteCore writes the registry and relationship artifacts: the
// per-document type-to-targets map and the flat edge list. The edge
// list is the only artifact carrying edge labels, so both shapes are
// persisted.
func (a *Artifacts) WriteCore(outputDir string) error {
	if err := a.Registry.Save(filepath.Join(outputDir, RegistryFile)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, RelationshipMapFile), a.Graph.RelationshipMap()); err != nil {
		return err
	}
	return writeJSON(filepath.Join(outputDir, RelationshipEdgesFile), a.Graph.Edges)
}

// writeJSON serializes a value as indented JSON, written whole with the
// parent directory created as needed.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeText writes a rendered report, creating the parent directory as
// needed.
func writeText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
