// Package validate evaluates document records against the declarative
// completeness schema and computes the repository-wide coverage verdict.
package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is one human-readable validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the completeness result for one document. Reports are
// computed fresh on each validation run and never mutated afterward.
type Report struct {
	// ID is the validated document id.
	ID string `json:"id"`

	// Class is the matched schema class name.
	Class string `json:"class"`

	// RequiredMissing lists required fields and sections that are
	// absent or empty.
	RequiredMissing []string `json:"required_missing,omitempty"`

	// RecommendedMissing lists absent recommended fields and sections.
	RecommendedMissing []string `json:"recommended_missing,omitempty"`

	// Score is the completeness percentage in [0, 100]. A document
	// with zero applicable criteria scores 100 (vacuously complete).
	Score int `json:"score"`

	// Issues lists the findings in evaluation order.
	Issues []Issue `json:"issues,omitempty"`
}

// Complete reports whether every applicable criterion is satisfied.
func (r *Report) Complete() bool {
	return len(r.RequiredMissing) == 0 && len(r.RecommendedMissing) == 0
}

// Result is the outcome of a full validation run.
type Result struct {
	// Reports holds per-document reports sorted by id.
	Reports []*Report

	// Skipped lists ids with no matching schema class, sorted. These
	// documents are not penalized; the gap is reported as coverage.
	Skipped []string

	// Coverage is the aggregate repository-level result.
	Coverage *CoverageReport

	// Warnings aggregates recoverable pipeline problems for the
	// report's warnings section.
	Warnings []string
}

// Validator validates documents against a completeness schema.
type Validator struct {
	schema *config.Schema
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema *config.Schema) *Validator {
	return &Validator{schema: schema}
}

// ValidateDocument computes the completeness report for one document.
// The second return is false when no schema class matches; such
// documents are skipped from scoring.
func (v *Validator) ValidateDocument(doc *source.DocumentRecord) (*Report, bool) {
	class, ok := v.schema.ClassFor(doc)
	if !ok {
		return nil, false
	}

	report := &Report{ID: doc.ID, Class: class.Name}
	if doc.Error != "" {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("degraded record (%s), criteria evaluated against empty content", doc.Error),
		})
	}

	requiredTotal := 0
	requiredPresent := 0
	for _, field := range class.RequiredFields {
		requiredTotal++
		if _, present := doc.Metadata.Field(field); present {
			requiredPresent++
			continue
		}
		report.RequiredMissing = append(report.RequiredMissing, field)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("missing field: %s", field),
		})
	}
	for _, section := range class.RequiredSections {
		requiredTotal++
		if doc.HasSection(section) {
			requiredPresent++
			continue
		}
		report.RequiredMissing = append(report.RequiredMissing, section)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("missing section: %s", section),
		})
	}

	recommendedTotal := 0
	recommendedPresent := 0
	for _, field := range class.RecommendedFields {
		recommendedTotal++
		if _, present := doc.Metadata.Field(field); present {
			recommendedPresent++
			continue
		}
		report.RecommendedMissing = append(report.RecommendedMissing, field)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("missing recommended field: %s", field),
		})
	}
	for _, section := range class.RecommendedSections {
		recommendedTotal++
		if doc.HasSection(section) {
			recommendedPresent++
			continue
		}
		report.RecommendedMissing = append(report.RecommendedMissing, section)
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("missing recommended section: %s", section),
		})
	}

	report.Score = score(requiredPresent+recommendedPresent, requiredTotal+recommendedTotal)
	return report, true
}

// ValidateAll validates every registry document and computes the
// aggregate coverage verdict over the relationship graph.
func (v *Validator) ValidateAll(reg *registry.Registry, g *graph.Graph) *Result {
	result := &Result{}

	for _, id := range reg.IDs() {
		report, ok := v.ValidateDocument(reg.Docs[id])
		if !ok {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		result.Reports = append(result.Reports, report)
	}
	sort.Strings(result.Skipped)

	result.Coverage = v.coverage(reg, g, result)

	result.Warnings = append(result.Warnings, reg.Warnings...)
	result.Warnings = append(result.Warnings, g.Warnings...)

	return result
}

// score computes the completeness percentage, rounded to the nearest
// integer. Zero applicable criteria is vacuously complete.
func score(present, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(present) / float64(total)))
}
