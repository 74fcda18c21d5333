// Package impact analyzes the downstream consequences of changing a
// document by traversing inbound relationships in the graph.
package impact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
)

// DefaultMaxDepth bounds the traversal when no depth is given.
const DefaultMaxDepth = 3

// Affected is one document reachable from the change target.
type Affected struct {
	// ID is the affected document id.
	ID string `json:"id"`

	// Distance is the traversal depth, 1 for direct dependents.
	Distance int `json:"distance"`

	// Severity is direct for distance 1, indirect beyond.
	Severity string `json:"severity"`
}

// Analysis is the impact result for one change target.
type Analysis struct {
	// Target is the changed document id.
	Target string `json:"target"`

	// Affected lists reachable documents ordered by distance, then id.
	Affected []Affected `json:"affected"`
}

// Analyze walks inbound forward edges from the target up to maxDepth,
// collecting the documents whose content depends on it. Traversal is
// breadth-first over sorted ids, so results are deterministic.
func Analyze(g *graph.Graph, target string, maxDepth int) (*Analysis, error) {
	if !hasNode(g, target) {
		return nil, fmt.Errorf("document not in registry: %s", target)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	analysis := &Analysis{Target: target}
	visited := map[string]bool{target: true}
	frontier := []string{target}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, dep := range dependents(g, id) {
				if visited[dep] {
					continue
				}
				visited[dep] = true
				severity := "indirect"
				if depth == 1 {
					severity = "direct"
				}
				analysis.Affected = append(analysis.Affected, Affected{
					ID:       dep,
					Distance: depth,
					Severity: severity,
				})
				next = append(next, dep)
			}
		}
		sort.Strings(next)
		frontier = next
	}

	sort.Slice(analysis.Affected, func(i, j int) bool {
		if analysis.Affected[i].Distance != analysis.Affected[j].Distance {
			return analysis.Affected[i].Distance < analysis.Affected[j].Distance
		}
		return analysis.Affected[i].ID < analysis.Affected[j].ID
	})
	return analysis, nil
}

// dependents returns the sources of forward edges arriving at id: the
// documents that reference, depend on, test, or document it. Inverse
// edges are skipped so each relationship is traversed once.
func dependents(g *graph.Graph, id string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, e := range g.Inbound(id) {
		if !e.Type.IsForward() || seen[e.From] {
			continue
		}
		seen[e.From] = true
		deps = append(deps, e.From)
	}
	sort.Strings(deps)
	return deps
}

func hasNode(g *graph.Graph, id string) bool {
	for _, n := range g.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

// Render formats the analysis as a Markdown report.
func (a *Analysis) Render(reg *registry.Registry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Impact Analysis: %s\n\n", a.Target)

	if len(a.Affected) == 0 {
		sb.WriteString("No documents depend on this document.\n")
		return sb.String()
	}

	direct := 0
	for _, aff := range a.Affected {
		if aff.Severity == "direct" {
			direct++
		}
	}
	fmt.Fprintf(&sb, "%d affected documents (%d direct, %d indirect).\n",
		len(a.Affected), direct, len(a.Affected)-direct)

	currentDepth := 0
	for _, aff := range a.Affected {
		if aff.Distance != currentDepth {
			currentDepth = aff.Distance
			fmt.Fprintf(&sb, "\n## Distance %d\n\n", currentDepth)
		}
		title := aff.ID
		if doc, ok := reg.Docs[aff.ID]; ok && doc.Title != "" {
			title = doc.Title
		}
		fmt.Fprintf(&sb, "- **%s** (`%s`): %s\n", title, aff.ID, aff.Severity)
	}

	return sb.String()
}
