// Package export renders the relationship graph into the graph-exchange
// format consumed by the external browser-based viewer. The node and
// edge field names are a hard contract with that renderer.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
)

// Node is one graph-exchange node. Field names must not change.
type Node struct {
	// ID is the document id.
	ID string `json:"id"`

	// Label is the display title.
	Label string `json:"label"`

	// Group is the taxonomy layer, used for visual clustering.
	Group string `json:"group"`

	// Type is the file-format tag.
	Type string `json:"type"`
}

// Edge is one graph-exchange edge. Field names must not change.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// GraphFile is the graph-exchange document.
type GraphFile struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build converts the registry and graph into the exchange structure.
// Only forward edge types are exported; the viewer renders direction
// itself, so inverse edges would only duplicate every line. Nodes and
// edges keep the sorted order of their sources.
func Build(reg *registry.Registry, g *graph.Graph) *GraphFile {
	file := &GraphFile{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	for _, id := range reg.IDs() {
		doc := reg.Docs[id]
		label := doc.Title
		if label == "" {
			label = id
		}
		file.Nodes = append(file.Nodes, Node{
			ID:    id,
			Label: label,
			Group: string(doc.Layer),
			Type:  string(doc.Type),
		})
	}

	for _, e := range g.Edges {
		if !e.Type.IsForward() {
			continue
		}
		label := e.Label
		if label == "" {
			label = string(e.Type)
		}
		file.Edges = append(file.Edges, Edge{
			From:  e.From,
			To:    e.To,
			Type:  string(e.Type),
			Label: label,
		})
	}

	return file
}

// Save writes the graph-exchange file, creating the parent directory
// if needed.
func (f *GraphFile) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph file: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write graph file %s: %w", path, err)
	}
	return nil
}
