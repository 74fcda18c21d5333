package validate

import (
	"fmt"
	"math"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
)

// CoverageReport is the aggregate, repository-level validation result.
// The verdict is driven by the orphan threshold and the per-category
// percentage targets; the connectivity fraction is informational.
type CoverageReport struct {
	// TotalDocuments is the registry size.
	TotalDocuments int `json:"total_documents"`

	// ValidatedDocuments counts documents matched by a schema class.
	ValidatedDocuments int `json:"validated_documents"`

	// SkippedDocuments counts documents with no schema class. This is
	// a coverage gap, not a validation failure.
	SkippedDocuments int `json:"skipped_documents"`

	// OrphanCount is the number of documents with no inbound and no
	// outbound edges.
	OrphanCount int `json:"orphan_count"`

	// MaxOrphans is the configured threshold.
	MaxOrphans int `json:"max_orphans"`

	// OrphansPass reports whether OrphanCount <= MaxOrphans.
	OrphansPass bool `json:"orphans_pass"`

	// MinReferences is the configured minimum relationship count.
	MinReferences int `json:"min_references"`

	// ConnectedCount counts documents meeting MinReferences.
	ConnectedCount int `json:"connected_count"`

	// ConnectedPercent is the connected fraction in [0, 100].
	ConnectedPercent float64 `json:"connected_percent"`

	// RejectedEdges is the dangling-edge tally from extraction.
	RejectedEdges int `json:"rejected_edges"`

	// Categories holds the per-category percentage results.
	Categories []CategoryResult `json:"categories,omitempty"`

	// Pass is the overall verdict.
	Pass bool `json:"pass"`
}

// CategoryResult is one per-category completeness measurement.
type CategoryResult struct {
	Name       string  `json:"name"`
	Layer      string  `json:"layer"`
	Total      int     `json:"total"`
	Complete   int     `json:"complete"`
	Percent    float64 `json:"percent"`
	MinPercent float64 `json:"min_percent"`
	Pass       bool    `json:"pass"`
}

// coverage computes the aggregate pass over the whole registry.
func (v *Validator) coverage(reg *registry.Registry, g *graph.Graph, result *Result) *CoverageReport {
	thresholds := v.schema.Coverage

	cov := &CoverageReport{
		TotalDocuments:     len(reg.Docs),
		ValidatedDocuments: len(result.Reports),
		SkippedDocuments:   len(result.Skipped),
		MaxOrphans:         thresholds.MaxOrphans,
		MinReferences:      thresholds.MinReferences,
		RejectedEdges:      g.Rejected,
	}

	cov.OrphanCount = len(g.Orphans())
	cov.OrphansPass = cov.OrphanCount <= thresholds.MaxOrphans

	for _, id := range reg.IDs() {
		if g.Degree(id) >= thresholds.MinReferences {
			cov.ConnectedCount++
		}
	}
	cov.ConnectedPercent = percent(cov.ConnectedCount, cov.TotalDocuments)

	complete := make(map[string]bool, len(result.Reports))
	for _, report := range result.Reports {
		complete[report.ID] = report.Score == 100
	}

	for _, target := range thresholds.Categories {
		cat := CategoryResult{
			Name:       target.Name,
			Layer:      target.Layer,
			MinPercent: target.MinPercent,
		}
		for _, id := range reg.IDs() {
			doc := reg.Docs[id]
			if doc.Layer != source.Layer(target.Layer) {
				continue
			}
			done, validated := complete[id]
			if !validated {
				// Documents with no schema class are a coverage gap,
				// not a denominator entry.
				continue
			}
			cat.Total++
			if done {
				cat.Complete++
			}
		}
		cat.Percent = percent(cat.Complete, cat.Total)
		cat.Pass = cat.Total == 0 || cat.Percent >= target.MinPercent
		cov.Categories = append(cov.Categories, cat)
	}

	cov.Pass = cov.OrphansPass
	for _, cat := range cov.Categories {
		if !cat.Pass {
			cov.Pass = false
		}
	}
	return cov
}

// FailureReasons lists the thresholds a failing verdict tripped on,
// one human-readable entry per failed gate.
func (c *CoverageReport) FailureReasons() []string {
	var reasons []string
	if !c.OrphansPass {
		reasons = append(reasons,
			fmt.Sprintf("%d orphan documents exceed max %d", c.OrphanCount, c.MaxOrphans))
	}
	for _, cat := range c.Categories {
		if !cat.Pass {
			reasons = append(reasons,
				fmt.Sprintf("category %s at %.1f%% below target %.1f%%", cat.Name, cat.Percent, cat.MinPercent))
		}
	}
	return reasons
}

// percent returns 100*n/total rounded to one decimal, with an empty
// denominator counting as fully covered.
func percent(n, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(1000*float64(n)/float64(total)) / 10
}
