package synthesis

import (
	"fmt"
	"strings"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
)

// CrossReference renders the cross-reference listing grouped by
// relationship type. Edges within each group keep their (from, to)
// sort order from the graph.
func CrossReference(reg *registry.Registry, g *graph.Graph) string {
	var sb strings.Builder

	sb.WriteString("# Document Cross-Reference Index\n\n")
	sb.WriteString("Relationships between documents, grouped by relationship type.\n")

	byType := make(map[graph.RelType][]graph.Edge)
	for _, e := range g.Edges {
		byType[e.Type] = append(byType[e.Type], e)
	}

	for _, relType := range graph.AllRelTypes() {
		edges := byType[relType]
		if len(edges) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", title(string(relType)))
		for _, e := range edges {
			fmt.Fprintf(&sb, "- **%s** (`%s`) → **%s** (`%s`)\n",
				docTitle(reg, e.From), e.From, docTitle(reg, e.To), e.To)
		}
	}

	return sb.String()
}
