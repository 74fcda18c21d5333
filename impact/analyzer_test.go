package impact

import (
	"testing"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds base <- mid <- leaf dependency edges plus their
// inverses, the shape the extractor produces.
func chainGraph() *graph.Graph {
	g := graph.NewGraph([]string{"base.md", "mid.md", "leaf.md", "island.md"})
	g.Add(graph.Edge{From: "mid.md", To: "base.md", Type: graph.RelDependsOn})
	g.Add(graph.Edge{From: "base.md", To: "mid.md", Type: graph.RelDependedOnBy})
	g.Add(graph.Edge{From: "leaf.md", To: "mid.md", Type: graph.RelDependsOn})
	g.Add(graph.Edge{From: "mid.md", To: "leaf.md", Type: graph.RelDependedOnBy})
	g.Sort()
	return g
}

func TestAnalyze_TransitiveDependents(t *testing.T) {
	analysis, err := Analyze(chainGraph(), "base.md", 3)
	require.NoError(t, err)

	require.Len(t, analysis.Affected, 2)
	assert.Equal(t, Affected{ID: "mid.md", Distance: 1, Severity: "direct"}, analysis.Affected[0])
	assert.Equal(t, Affected{ID: "leaf.md", Distance: 2, Severity: "indirect"}, analysis.Affected[1])
}

func TestAnalyze_DepthLimit(t *testing.T) {
	analysis, err := Analyze(chainGraph(), "base.md", 1)
	require.NoError(t, err)

	require.Len(t, analysis.Affected, 1)
	assert.Equal(t, "mid.md", analysis.Affected[0].ID)
}

func TestAnalyze_NoDependents(t *testing.T) {
	analysis, err := Analyze(chainGraph(), "island.md", 3)
	require.NoError(t, err)
	assert.Empty(t, analysis.Affected)
}

func TestAnalyze_UnknownTarget(t *testing.T) {
	_, err := Analyze(chainGraph(), "ghost.md", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.md")
}

func TestAnalyze_CycleTerminates(t *testing.T) {
	g := graph.NewGraph([]string{"a.md", "b.md"})
	g.Add(graph.Edge{From: "a.md", To: "b.md", Type: graph.RelDependsOn})
	g.Add(graph.Edge{From: "b.md", To: "a.md", Type: graph.RelDependsOn})
	g.Sort()

	analysis, err := Analyze(g, "a.md", 10)
	require.NoError(t, err)
	require.Len(t, analysis.Affected, 1)
	assert.Equal(t, "b.md", analysis.Affected[0].ID)
}

func TestRender(t *testing.T) {
	reg := &registry.Registry{Docs: map[string]*source.DocumentRecord{
		"mid.md": {ID: "mid.md", Title: "Middle"},
	}}

	analysis, err := Analyze(chainGraph(), "base.md", 3)
	require.NoError(t, err)

	out := analysis.Render(reg)
	assert.Contains(t, out, "# Impact Analysis: base.md")
	assert.Contains(t, out, "2 affected documents (1 direct, 1 indirect)")
	assert.Contains(t, out, "## Distance 1")
	assert.Contains(t, out, "**Middle** (`mid.md`)")
	assert.Contains(t, out, "## Distance 2")
}

func TestRender_NoDependents(t *testing.T) {
	analysis, err := Analyze(chainGraph(), "island.md", 3)
	require.NoError(t, err)

	out := analysis.Render(&registry.Registry{})
	assert.Contains(t, out, "No documents depend on this document.")
}
