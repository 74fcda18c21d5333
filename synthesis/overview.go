// Package synthesis renders the registry and relationship graph into
// human-readable summary reports.
package synthesis

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
)

// topReferencedLimit bounds the key-documents ranking.
const topReferencedLimit = 10

// Overview renders the aggregate system-overview report: counts per
// layer and relationship type, the top-referenced documents, and the
// orphan list. Output is deterministic: sorted keys, in-degree ranking
// tie-broken by id.
func Overview(reg *registry.Registry, g *graph.Graph) string {
	var sb strings.Builder

	sb.WriteString("# System Overview\n\n")
	sb.WriteString("## Repository Statistics\n\n")
	fmt.Fprintf(&sb, "Total documents: %d\n\n", len(reg.Docs))

	sb.WriteString("### Documents by Taxonomy Layer\n\n")
	layerCounts := make(map[string]int)
	for _, doc := range reg.Docs {
		layerCounts[string(doc.Layer)]++
	}
	for _, layer := range sortedKeys(layerCounts) {
		fmt.Fprintf(&sb, "- **%s**: %d documents\n", title(layer), layerCounts[layer])
	}

	sb.WriteString("\n### Relationship Statistics\n\n")
	typeCounts := make(map[string]int)
	for _, e := range g.Edges {
		typeCounts[string(e.Type)]++
	}
	for _, relType := range sortedKeys(typeCounts) {
		fmt.Fprintf(&sb, "- **%s**: %d connections\n", title(relType), typeCounts[relType])
	}

	sb.WriteString("\n## Key Documents\n\n")
	for _, entry := range topReferenced(reg, g) {
		fmt.Fprintf(&sb, "- **%s** (`%s`): %d inbound references\n",
			entry.title, entry.id, entry.inDegree)
	}

	orphans := g.Orphans()
	if len(orphans) > 0 {
		sb.WriteString("\n## Orphaned Documents\n\n")
		sb.WriteString("These documents have no relationships with other documents:\n\n")
		for _, id := range orphans {
			fmt.Fprintf(&sb, "- **%s** (`%s`)\n", docTitle(reg, id), id)
		}
	}

	return sb.String()
}

type rankedDoc struct {
	id       string
	title    string
	inDegree int
}

// topReferenced ranks documents by inbound-edge count descending, ties
// broken by id lexicographic order.
func topReferenced(reg *registry.Registry, g *graph.Graph) []rankedDoc {
	degrees := g.InDegrees()

	var ranked []rankedDoc
	for _, id := range reg.IDs() {
		if degrees[id] == 0 {
			continue
		}
		ranked = append(ranked, rankedDoc{
			id:       id,
			title:    docTitle(reg, id),
			inDegree: degrees[id],
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].inDegree != ranked[j].inDegree {
			return ranked[i].inDegree > ranked[j].inDegree
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > topReferencedLimit {
		ranked = ranked[:topReferencedLimit]
	}
	return ranked
}

func docTitle(reg *registry.Registry, id string) string {
	if doc, ok := reg.Docs[id]; ok && doc.Title != "" {
		return doc.Title
	}
	return id
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// title renders an identifier for display: underscores become spaces
// and words are capitalized.
func title(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
