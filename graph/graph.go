package graph

import "sort"

// Graph is the edge set over the document registry plus a neighbor
// index for fast lookup by id. It is derived entirely from registry
// content at build time and rebuilt whole on each run.
type Graph struct {
	// Nodes lists every registry document id, sorted.
	Nodes []string

	// Edges is the deduplicated edge set, sorted by (from, to, type).
	Edges []Edge

	// Rejected counts candidate edges dropped for referencing an id
	// absent from the registry.
	Rejected int

	// Warnings records recoverable extraction problems in order.
	Warnings []string

	out  map[string][]Edge
	in   map[string][]Edge
	seen map[edgeKey]bool
}

type edgeKey struct {
	from, to string
	relType  RelType
}

// NewGraph creates an empty graph over the given node ids.
func NewGraph(nodes []string) *Graph {
	sorted := make([]string, len(nodes))
	copy(sorted, nodes)
	sort.Strings(sorted)

	return &Graph{
		Nodes: sorted,
		out:   make(map[string][]Edge),
		in:    make(map[string][]Edge),
		seen:  make(map[edgeKey]bool),
	}
}

// Add inserts an edge unless it is a self-loop or a duplicate of an
// existing (from, to, type) triple. It reports whether the edge was
// added.
func (g *Graph) Add(e Edge) bool {
	if e.From == e.To {
		return false
	}
	key := edgeKey{e.From, e.To, e.Type}
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], e)
	g.in[e.To] = append(g.in[e.To], e)
	return true
}

// Sort orders the edge set by (from, to, type) so that repeated runs
// over unchanged input serialize identically.
func (g *Graph) Sort() {
	less := func(edges []Edge) func(i, j int) bool {
		return func(i, j int) bool {
			if edges[i].From != edges[j].From {
				return edges[i].From < edges[j].From
			}
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			return edges[i].Type < edges[j].Type
		}
	}
	sort.Slice(g.Edges, less(g.Edges))
	for _, m := range []map[string][]Edge{g.out, g.in} {
		for _, edges := range m {
			sort.Slice(edges, less(edges))
		}
	}
}

// Outbound returns the edges leaving the given document.
func (g *Graph) Outbound(id string) []Edge {
	return g.out[id]
}

// Inbound returns the edges arriving at the given document.
func (g *Graph) Inbound(id string) []Edge {
	return g.in[id]
}

// Degree returns the total relationship count for a document.
func (g *Graph) Degree(id string) int {
	return len(g.out[id]) + len(g.in[id])
}

// Orphans returns the sorted ids of documents with no inbound and no
// outbound edges.
func (g *Graph) Orphans() []string {
	var orphans []string
	for _, id := range g.Nodes {
		if len(g.out[id]) == 0 && len(g.in[id]) == 0 {
			orphans = append(orphans, id)
		}
	}
	return orphans
}

// InDegrees returns the inbound-edge count per document id.
func (g *Graph) InDegrees() map[string]int {
	degrees := make(map[string]int, len(g.Nodes))
	for _, id := range g.Nodes {
		degrees[id] = len(g.in[id])
	}
	return degrees
}

// RelationshipMap renders the graph as a per-document mapping from
// relationship type to sorted target ids, covering every type for
// every node. This is the shape of the relationship-map artifact.
func (g *Graph) RelationshipMap() map[string]map[string][]string {
	result := make(map[string]map[string][]string, len(g.Nodes))
	for _, id := range g.Nodes {
		byType := make(map[string][]string)
		for _, t := range AllRelTypes() {
			byType[string(t)] = []string{}
		}
		for _, e := range g.out[id] {
			byType[string(e.Type)] = append(byType[string(e.Type)], e.To)
		}
		for _, targets := range byType {
			sort.Strings(targets)
		}
		result[id] = byType
	}
	return result
}
