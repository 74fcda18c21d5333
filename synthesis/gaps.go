package synthesis

import (
	"fmt"
	"strings"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
)

// Gaps renders the documentation gap report: code without documentation,
// code without tests, and prompt modules without implementations.
func Gaps(reg *registry.Registry, g *graph.Graph) string {
	var undocumented, untested, unimplemented []string

	for _, id := range reg.IDs() {
		doc := reg.Docs[id]
		switch doc.Layer {
		case source.LayerCode:
			if !hasOutbound(g, id, graph.RelDocumentedBy) {
				undocumented = append(undocumented, id)
			}
			if !hasOutbound(g, id, graph.RelTestedBy) {
				untested = append(untested, id)
			}
		case source.LayerPrompts:
			if !hasOutbound(g, id, graph.RelImplementedBy) {
				unimplemented = append(unimplemented, id)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("# Documentation Gap Analysis\n")

	writeGapSection(&sb, reg, "Undocumented Code",
		"The following code files have no associated documentation:", undocumented)
	writeGapSection(&sb, reg, "Untested Code",
		"The following code files have no associated tests:", untested)
	writeGapSection(&sb, reg, "Unimplemented Prompt Modules",
		"The following prompt modules have no associated implementation:", unimplemented)

	if len(undocumented) == 0 && len(untested) == 0 && len(unimplemented) == 0 {
		sb.WriteString("\n## No Significant Gaps Found\n\n")
		sb.WriteString("No documentation or testing gaps were identified in the repository.\n")
	}

	return sb.String()
}

func writeGapSection(sb *strings.Builder, reg *registry.Registry, heading, intro string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n\n%s\n\n", heading, intro)
	for _, id := range ids {
		fmt.Fprintf(sb, "- **%s** (`%s`)\n", docTitle(reg, id), id)
	}
}

// hasOutbound reports whether the document has an outgoing edge of the
// given type. Inverse types recorded as outbound edges express inbound
// relationships, so documented_by and tested_by are checked this way.
func hasOutbound(g *graph.Graph, id string, relType graph.RelType) bool {
	for _, e := range g.Outbound(id) {
		if e.Type == relType {
			return true
		}
	}
	return false
}
