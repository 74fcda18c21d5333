package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() (*registry.Registry, *graph.Graph) {
	reg := &registry.Registry{Docs: map[string]*source.DocumentRecord{
		"modules/planner.md": {ID: "modules/planner.md", Layer: source.LayerPrompts, Type: source.TypeMarkdown, Title: "Planner"},
		"src/planner.py":     {ID: "src/planner.py", Layer: source.LayerCode, Type: source.TypePython},
	}}
	g := graph.NewGraph(reg.IDs())
	g.Add(graph.Edge{From: "src/planner.py", To: "modules/planner.md", Type: graph.RelImplements, Label: "Module_Planner"})
	g.Add(graph.Edge{From: "modules/planner.md", To: "src/planner.py", Type: graph.RelImplementedBy, Label: "Module_Planner"})
	g.Sort()
	return reg, g
}

func TestBuild_ForwardEdgesOnly(t *testing.T) {
	reg, g := exportFixture()
	file := Build(reg, g)

	require.Len(t, file.Nodes, 2)
	assert.Equal(t, Node{ID: "modules/planner.md", Label: "Planner", Group: "prompts", Type: "markdown"}, file.Nodes[0])
	// Untitled documents fall back to their id as label.
	assert.Equal(t, "src/planner.py", file.Nodes[1].Label)

	require.Len(t, file.Edges, 1)
	assert.Equal(t, Edge{From: "src/planner.py", To: "modules/planner.md", Type: "implements", Label: "Module_Planner"}, file.Edges[0])
}

func TestBuild_EdgeLabelDefaultsToType(t *testing.T) {
	reg := &registry.Registry{Docs: map[string]*source.DocumentRecord{
		"a.md": {ID: "a.md"},
		"b.md": {ID: "b.md"},
	}}
	g := graph.NewGraph(reg.IDs())
	g.Add(graph.Edge{From: "a.md", To: "b.md", Type: graph.RelReferences})
	g.Sort()

	file := Build(reg, g)
	require.Len(t, file.Edges, 1)
	assert.Equal(t, "references", file.Edges[0].Label)
}

func TestGraphFile_FieldNamesAreStable(t *testing.T) {
	reg, g := exportFixture()
	data, err := json.Marshal(Build(reg, g))
	require.NoError(t, err)

	var decoded struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.NotEmpty(t, decoded.Nodes)
	for _, key := range []string{"id", "label", "group", "type"} {
		assert.Contains(t, decoded.Nodes[0], key)
	}
	require.NotEmpty(t, decoded.Edges)
	for _, key := range []string{"from", "to", "type", "label"} {
		assert.Contains(t, decoded.Edges[0], key)
	}
}

func TestGraphFile_Save(t *testing.T) {
	reg, g := exportFixture()
	file := Build(reg, g)

	path := filepath.Join(t.TempDir(), "nlu", "knowledge_graph.json")
	require.NoError(t, file.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded GraphFile
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, file.Nodes, loaded.Nodes)
	assert.Equal(t, file.Edges, loaded.Edges)
}
