// Package graph builds the typed relationship graph between documents.
package graph

// RelType is a typed, directed relationship between two documents.
type RelType string

const (
	RelReferences    RelType = "references"
	RelReferencedBy  RelType = "referenced_by"
	RelImplements    RelType = "implements"
	RelImplementedBy RelType = "implemented_by"
	RelTests         RelType = "tests"
	RelTestedBy      RelType = "tested_by"
	RelDocuments     RelType = "documents"
	RelDocumentedBy  RelType = "documented_by"
	RelDependsOn     RelType = "depends_on"
	RelDependedOnBy  RelType = "depended_on_by"
)

// inverses maps every forward type to its inverse.
var inverses = map[RelType]RelType{
	RelReferences: RelReferencedBy,
	RelImplements: RelImplementedBy,
	RelTests:      RelTestedBy,
	RelDocuments:  RelDocumentedBy,
	RelDependsOn:  RelDependedOnBy,
}

// Inverse returns the inverse relationship type. The second return is
// false for types that are already inverses.
func (t RelType) Inverse() (RelType, bool) {
	inv, ok := inverses[t]
	return inv, ok
}

// IsForward reports whether this is a forward relationship type.
func (t RelType) IsForward() bool {
	_, ok := inverses[t]
	return ok
}

// ValidRelType reports whether t is a known relationship type.
func ValidRelType(t RelType) bool {
	if _, ok := inverses[t]; ok {
		return true
	}
	for _, inv := range inverses {
		if inv == t {
			return true
		}
	}
	return false
}

// AllRelTypes returns every relationship type, forward types first,
// in a stable order.
func AllRelTypes() []RelType {
	return []RelType{
		RelReferences, RelReferencedBy,
		RelImplements, RelImplementedBy,
		RelTests, RelTestedBy,
		RelDocuments, RelDocumentedBy,
		RelDependsOn, RelDependedOnBy,
	}
}

// Edge is a directed, typed link between two document ids. Both
// endpoints resolve to registry entries; the extractor drops dangling
// candidates instead of inventing placeholder nodes.
type Edge struct {
	// From is the source document id.
	From string `json:"from"`

	// To is the target document id.
	To string `json:"to"`

	// Type is the relationship type.
	Type RelType `json:"type"`

	// Label is an optional human-readable annotation.
	Label string `json:"label,omitempty"`
}
