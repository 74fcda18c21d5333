package graph

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/c360studio/docgraph/source"
)

// Extractor derives the relationship edge set from a document registry.
type Extractor struct {
	docs    map[string]*source.DocumentRecord
	logger  *slog.Logger
	allowed map[RelType]bool
}

// NewExtractor creates a relationship extractor over the registry.
func NewExtractor(docs map[string]*source.DocumentRecord, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{docs: docs, logger: logger}
}

// SetAllowedTypes restricts the forward edge types the extractor emits.
// Inverse edges follow their forward type. Nil or empty means all.
func (e *Extractor) SetAllowedTypes(types []RelType) {
	if len(types) == 0 {
		e.allowed = nil
		return
	}
	e.allowed = make(map[RelType]bool, len(types))
	for _, t := range types {
		e.allowed[t] = true
	}
}

func (e *Extractor) emits(t RelType) bool {
	return e.allowed == nil || e.allowed[t]
}

// Extract builds the full edge set: explicit references, declared
// dependencies, path-convention heuristics, and the synthesized inverse
// of every forward edge. The result is deduplicated and sorted.
func (e *Extractor) Extract() *Graph {
	ids := make([]string, 0, len(e.docs))
	for id := range e.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := NewGraph(ids)

	for _, id := range ids {
		doc := e.docs[id]
		if doc.Error != "" {
			// Degraded records stay registry entries but take no part
			// in the edge graph.
			continue
		}
		e.extractReferences(g, doc)
		e.extractDependencies(g, doc)
		e.extractTests(g, doc)
		e.extractDocuments(g, doc)
		e.extractImplements(g, doc)
	}

	e.synthesizeInverses(g)
	g.Sort()

	e.logger.Debug("Relationship extraction complete",
		slog.Int("edges", len(g.Edges)),
		slog.Int("rejected", g.Rejected))

	return g
}

// extractReferences turns markdown links resolving to known document
// ids into references edges. Links that resolve to nothing in the
// registry are plain external links, not candidate edges, and are
// skipped silently.
func (e *Extractor) extractReferences(g *Graph, doc *source.DocumentRecord) {
	if !e.emits(RelReferences) {
		return
	}
	for _, ref := range doc.References {
		target, ok := e.resolve(ref, doc.ID)
		if !ok {
			continue
		}
		g.Add(Edge{From: doc.ID, To: target, Type: RelReferences})
	}
}

// extractDependencies turns front-matter dependency declarations into
// depends_on edges. Declared dependencies name documents explicitly,
// so an unresolvable entry is dropped with a warning and counted in
// the rejected tally.
func (e *Extractor) extractDependencies(g *Graph, doc *source.DocumentRecord) {
	if !e.emits(RelDependsOn) {
		return
	}
	for _, dep := range doc.Metadata.Dependencies {
		target, ok := e.resolve(dep, doc.ID)
		if !ok {
			g.Rejected++
			g.Warnings = append(g.Warnings,
				fmt.Sprintf("%s: dependency %q does not resolve to a known document", doc.ID, dep))
			continue
		}
		g.Add(Edge{From: doc.ID, To: target, Type: RelDependsOn, Label: dep})
	}
}

// extractTests links a test document to the code document whose stem
// matches its stripped stem: tests/foo_test.py or tests/test_foo.py
// yields a tests edge to the document with stem foo.
func (e *Extractor) extractTests(g *Graph, doc *source.DocumentRecord) {
	if !e.emits(RelTests) {
		return
	}
	stem, ok := testStem(doc)
	if !ok {
		return
	}
	for _, target := range e.docsByStem(stem, source.LayerCode) {
		if target.ID == doc.ID {
			continue
		}
		if isTestDocument(target) {
			continue
		}
		g.Add(Edge{From: doc.ID, To: target.ID, Type: RelTests})
	}
}

// extractDocuments links a docs-layer document to code or prompt
// documents sharing its stem.
func (e *Extractor) extractDocuments(g *Graph, doc *source.DocumentRecord) {
	if !e.emits(RelDocuments) {
		return
	}
	if doc.Layer != source.LayerDocs {
		return
	}
	stem := doc.Stem()
	for _, layer := range []source.Layer{source.LayerCode, source.LayerPrompts} {
		for _, target := range e.docsByStem(stem, layer) {
			g.Add(Edge{From: doc.ID, To: target.ID, Type: RelDocuments})
		}
	}
}

// extractImplements links code documents to the prompt modules they
// implement, matched on the module name declared in front matter.
func (e *Extractor) extractImplements(g *Graph, doc *source.DocumentRecord) {
	if !e.emits(RelImplements) {
		return
	}
	if doc.Layer != source.LayerPrompts {
		return
	}
	name := doc.Metadata.Name
	if name == "" {
		return
	}
	core := strings.ToLower(strings.TrimPrefix(name, "Module_"))
	if core == "" {
		return
	}
	for _, id := range e.sortedIDs() {
		impl := e.docs[id]
		if impl.Layer != source.LayerCode || impl.Error != "" || isTestDocument(impl) {
			continue
		}
		stem := impl.Stem()
		if stem == core || strings.Contains(stem, core) || strings.Contains(core, stem) {
			g.Add(Edge{From: impl.ID, To: doc.ID, Type: RelImplements, Label: name})
		}
	}
}

// synthesizeInverses adds the inverse-type edge for every forward edge
// so the graph is navigable in both directions without a second index
// pass. Forward labels describe the forward direction only and are not
// copied onto inverses.
func (e *Extractor) synthesizeInverses(g *Graph) {
	forward := make([]Edge, len(g.Edges))
	copy(forward, g.Edges)
	for _, edge := range forward {
		inv, ok := edge.Type.Inverse()
		if !ok {
			continue
		}
		g.Add(Edge{From: edge.To, To: edge.From, Type: inv})
	}
}

// resolve normalizes a raw reference against the registry: first
// relative to the referencing document's directory, then as a
// repo-root-relative path. Error-flagged records never resolve, so
// degraded files cannot appear as edge endpoints.
func (e *Extractor) resolve(ref, fromID string) (string, bool) {
	candidates := []string{
		path.Clean(path.Join(path.Dir(fromID), ref)),
		path.Clean(strings.TrimPrefix(ref, "./")),
	}
	for _, c := range candidates {
		if c == "." || c == "" {
			continue
		}
		if doc, ok := e.docs[c]; ok && doc.Error == "" {
			return c, true
		}
	}
	return "", false
}

// docsByStem returns the non-degraded documents of a layer with the
// given stem, in id order.
func (e *Extractor) docsByStem(stem string, layer source.Layer) []*source.DocumentRecord {
	var matches []*source.DocumentRecord
	for _, id := range e.sortedIDs() {
		doc := e.docs[id]
		if doc.Layer != layer || doc.Error != "" {
			continue
		}
		if doc.Stem() == stem {
			matches = append(matches, doc)
		}
	}
	return matches
}

func (e *Extractor) sortedIDs() []string {
	ids := make([]string, 0, len(e.docs))
	for id := range e.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// testStem extracts the implementation stem from a test document name.
// The second return is false when the document is not a test.
func testStem(doc *source.DocumentRecord) (string, bool) {
	if !isTestDocument(doc) {
		return "", false
	}
	stem := doc.Stem()
	switch {
	case strings.HasPrefix(stem, "test_"):
		return strings.TrimPrefix(stem, "test_"), true
	case strings.HasSuffix(stem, "_test"):
		return strings.TrimSuffix(stem, "_test"), true
	case strings.HasSuffix(stem, ".test"):
		return strings.TrimSuffix(stem, ".test"), true
	default:
		return stem, true
	}
}

// isTestDocument reports whether a document lives under a tests path or
// carries a test naming convention.
func isTestDocument(doc *source.DocumentRecord) bool {
	if strings.HasPrefix(doc.ID, "tests/") || strings.Contains(doc.ID, "/tests/") {
		return true
	}
	stem := doc.Stem()
	return strings.HasPrefix(stem, "test_") ||
		strings.HasSuffix(stem, "_test") ||
		strings.HasSuffix(stem, ".test")
}
