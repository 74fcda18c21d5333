package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/c360studio/docgraph/source"
	"gopkg.in/yaml.v3"
)

// Schema is the declarative completeness schema: per-class required and
// recommended criteria plus repository-wide coverage thresholds. It is
// externally authored and required by the validator; a missing or
// invalid schema aborts the run.
type Schema struct {
	// Classes lists document classes in declaration order. The first
	// matching class applies; documents matching no class are skipped
	// from scoring and reported as a coverage gap.
	Classes []ClassSchema `yaml:"classes"`

	// Coverage holds the repository-wide thresholds.
	Coverage CoverageThresholds `yaml:"coverage"`
}

// ClassSchema declares the completeness criteria for one document class.
type ClassSchema struct {
	// Name identifies the class in reports.
	Name string `yaml:"name"`

	// Paths matches documents by id prefix (explicit path match).
	Paths []string `yaml:"paths"`

	// Types matches documents by file-type tag when no path matches.
	Types []string `yaml:"types"`

	// RequiredFields lists front-matter fields that must be present
	// and non-empty. Each miss is a critical issue.
	RequiredFields []string `yaml:"required_fields"`

	// RecommendedFields lists fields whose absence is a warning.
	RecommendedFields []string `yaml:"recommended_fields"`

	// RequiredSections lists headings that must appear. Matching is
	// case-insensitive and partial on heading text.
	RequiredSections []string `yaml:"required_sections"`

	// RecommendedSections lists headings whose absence is a warning.
	RecommendedSections []string `yaml:"recommended_sections"`
}

// Matches reports whether this class applies to the given document.
// Explicit path prefixes take precedence over type matching.
func (c *ClassSchema) Matches(doc *source.DocumentRecord) bool {
	for _, p := range c.Paths {
		if doc.ID == p || strings.HasPrefix(doc.ID, p) {
			return true
		}
	}
	for _, t := range c.Types {
		if string(doc.Type) == t {
			return true
		}
	}
	return false
}

// CoverageThresholds declares the repository-level pass/fail criteria.
type CoverageThresholds struct {
	// MinReferences is the minimum relationship count a document needs
	// to count as connected.
	MinReferences int `yaml:"min_references"`

	// MaxOrphans is the highest acceptable count of documents with no
	// inbound and no outbound edges.
	MaxOrphans int `yaml:"max_orphans"`

	// Categories holds per-category completeness percentage targets.
	Categories []CategoryTarget `yaml:"categories"`
}

// CategoryTarget is one per-category percentage threshold.
type CategoryTarget struct {
	// Name identifies the category in the report.
	Name string `yaml:"name"`

	// Layer selects the documents counted for this category.
	Layer string `yaml:"layer"`

	// MinPercent is the minimum fraction (0-100) of category documents
	// that must be fully complete.
	MinPercent float64 `yaml:"min_percent"`
}

// Validate checks the schema for internal consistency.
func (s *Schema) Validate() error {
	seen := make(map[string]bool)
	for _, class := range s.Classes {
		if class.Name == "" {
			return fmt.Errorf("schema class with empty name")
		}
		if seen[class.Name] {
			return fmt.Errorf("duplicate schema class: %s", class.Name)
		}
		seen[class.Name] = true
		if len(class.Paths) == 0 && len(class.Types) == 0 {
			return fmt.Errorf("schema class %s matches nothing: no paths or types", class.Name)
		}
	}
	if s.Coverage.MaxOrphans < 0 {
		return fmt.Errorf("coverage.max_orphans must not be negative")
	}
	if s.Coverage.MinReferences < 0 {
		return fmt.Errorf("coverage.min_references must not be negative")
	}
	for _, cat := range s.Coverage.Categories {
		if cat.MinPercent < 0 || cat.MinPercent > 100 {
			return fmt.Errorf("coverage category %s: min_percent must be between 0 and 100", cat.Name)
		}
		if !knownLayers[cat.Layer] {
			return fmt.Errorf("coverage category %s: unknown layer %s", cat.Name, cat.Layer)
		}
	}
	return nil
}

// ClassFor returns the first schema class matching the document, in
// declaration order. The second return is false when no class applies.
func (s *Schema) ClassFor(doc *source.DocumentRecord) (*ClassSchema, bool) {
	for i := range s.Classes {
		if s.Classes[i].Matches(doc) {
			return &s.Classes[i], true
		}
	}
	return nil, false
}

// LoadSchema loads and validates a completeness schema from a YAML
// file. Any failure here is fatal to the run.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return &schema, nil
}
