// Package config provides configuration loading for the docgraph pipeline:
// the processor configuration (taxonomy, extensions, extraction patterns)
// and the completeness schema consumed by the validator.
package config

import (
	"fmt"
	"os"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/source/parser"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the default processor config filename, looked up in the
// repository root.
const ConfigFile = "docgraph.yaml"

// Config is the processor configuration. Downstream correctness depends
// on a fully specified configuration, so an invalid config aborts the
// run before any output is produced.
type Config struct {
	// Extensions is the file-extension allowlist. Files outside the
	// list are silently excluded from the registry.
	Extensions []string `yaml:"extensions"`

	// Ignore lists glob patterns for paths to skip entirely.
	Ignore []string `yaml:"ignore"`

	// Taxonomy is the ordered layer-to-path-prefix mapping. Prefix
	// ties at equal length break by declaration order, first wins.
	Taxonomy []TaxonomyLayer `yaml:"taxonomy"`

	// Extraction holds per-type extraction patterns for code files,
	// keyed by file-type tag. Types absent here use built-in rules.
	Extraction map[string]ExtractionRules `yaml:"extraction"`

	// RelationshipTypes enumerates the edge types the extractor may
	// emit. Empty means all known types.
	RelationshipTypes []string `yaml:"relationship_types"`
}

// TaxonomyLayer maps one taxonomy layer to its path prefixes.
type TaxonomyLayer struct {
	// Name is the layer name (config, prompts, code, docs, audit).
	Name string `yaml:"name"`

	// Paths lists the path prefixes assigned to this layer.
	Paths []string `yaml:"paths"`
}

// ExtractionRules holds the regex patterns for one code file type.
// Each pattern captures the extracted value in its first group.
type ExtractionRules struct {
	Docstring string `yaml:"docstring"`
	Class     string `yaml:"class"`
	Function  string `yaml:"function"`
}

// DefaultConfig returns the built-in processor configuration.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".md", ".py", ".js", ".ts", ".yaml", ".yml", ".json"},
		Ignore: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/__pycache__/**",
			"**/venv/**",
			"**/.DS_Store",
		},
		Taxonomy: []TaxonomyLayer{
			{Name: "config", Paths: []string{"README.md", "AGENTS.md", "execution-budget.yaml"}},
			{Name: "prompts", Paths: []string{"prompt-library/", "modules/"}},
			{Name: "code", Paths: []string{"src/", "tests/"}},
			{Name: "docs", Paths: []string{"docs/"}},
			{Name: "audit", Paths: []string{"audits/", ".github/workflows/"}},
		},
	}
}

// knownLayers is the fixed layer enumeration.
var knownLayers = map[string]bool{
	string(source.LayerConfig):  true,
	string(source.LayerPrompts): true,
	string(source.LayerCode):    true,
	string(source.LayerDocs):    true,
	string(source.LayerAudit):   true,
}

// Validate checks that the configuration is fully specified and
// internally consistent.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions list is empty")
	}
	for _, ext := range c.Extensions {
		if _, ok := parser.TypeFromExtension(ext); !ok {
			return fmt.Errorf("unsupported extension: %s", ext)
		}
	}
	if len(c.Taxonomy) == 0 {
		return fmt.Errorf("taxonomy is empty")
	}
	for _, layer := range c.Taxonomy {
		if !knownLayers[layer.Name] {
			return fmt.Errorf("unknown taxonomy layer: %s", layer.Name)
		}
		if len(layer.Paths) == 0 {
			return fmt.Errorf("taxonomy layer %s has no paths", layer.Name)
		}
	}
	for tag, rules := range c.Extraction {
		ft := source.FileType(tag)
		if _, err := parser.NewCodeExtractor(ft, parser.CodeRules(rules)); err != nil {
			return fmt.Errorf("extraction rules: %w", err)
		}
	}
	for _, rt := range c.RelationshipTypes {
		if !graph.ValidRelType(graph.RelType(rt)) {
			return fmt.Errorf("unknown relationship type: %s", rt)
		}
	}
	return nil
}

// BuildParserRegistry constructs the extraction registry, overlaying
// configured code patterns on the defaults.
func (c *Config) BuildParserRegistry() (*parser.Registry, error) {
	reg := parser.NewRegistry()
	for tag, rules := range c.Extraction {
		ex, err := parser.NewCodeExtractor(source.FileType(tag), parser.CodeRules(rules))
		if err != nil {
			return nil, fmt.Errorf("extraction rules for %s: %w", tag, err)
		}
		reg.Register(ex)
	}
	return reg, nil
}

// LoadFromFile loads a processor configuration from a YAML file. Fields
// absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}
