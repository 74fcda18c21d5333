// Package source provides the document record model and extraction types
// shared by the registry builder, relationship extractor, and validator.
package source

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Layer is a coarse taxonomy category assigned to every document by
// path convention.
type Layer string

const (
	LayerConfig  Layer = "config"
	LayerPrompts Layer = "prompts"
	LayerCode    Layer = "code"
	LayerDocs    Layer = "docs"
	LayerAudit   Layer = "audit"

	// LayerUnclassified is assigned when no taxonomy prefix matches.
	LayerUnclassified Layer = "unclassified"
)

// FileType tags the file format of a document, derived from its extension.
type FileType string

const (
	TypeMarkdown   FileType = "markdown"
	TypePython     FileType = "python"
	TypeJavaScript FileType = "javascript"
	TypeTypeScript FileType = "typescript"
	TypeYAML       FileType = "yaml"
	TypeJSON       FileType = "json"
)

// Heading is one markdown heading in document order.
type Heading struct {
	// Level is the heading depth (1-6).
	Level int `json:"level"`

	// Text is the heading text with the marker stripped.
	Text string `json:"text"`
}

// Metadata holds extracted document metadata. Well-known front-matter
// fields are pulled out explicitly; everything else lands in Extra.
type Metadata struct {
	// Name is the front-matter name field.
	Name string `json:"name,omitempty"`

	// Version is the front-matter version field.
	Version string `json:"version,omitempty"`

	// Marker is the coherence marker tag (feat, fix, docs, ...).
	Marker string `json:"marker,omitempty"`

	// Dependencies lists front-matter declared dependency paths.
	Dependencies []string `json:"dependencies,omitempty"`

	// Docstring is the module docstring for code files.
	Docstring string `json:"docstring,omitempty"`

	// Classes lists class names declared in code files.
	Classes []string `json:"classes,omitempty"`

	// Functions lists function names declared in code files.
	Functions []string `json:"functions,omitempty"`

	// TopLevelKeys summarizes YAML/JSON documents by their leading keys.
	TopLevelKeys []string `json:"top_level_keys,omitempty"`

	// Extra holds remaining front-matter fields as strings.
	Extra map[string]string `json:"extra,omitempty"`
}

// IsEmpty reports whether no metadata was extracted at all.
func (m Metadata) IsEmpty() bool {
	return m.Name == "" && m.Version == "" && m.Marker == "" &&
		len(m.Dependencies) == 0 && m.Docstring == "" &&
		len(m.Classes) == 0 && len(m.Functions) == 0 &&
		len(m.TopLevelKeys) == 0 && len(m.Extra) == 0
}

// Field returns a named front-matter field, checking the well-known
// fields first and falling back to Extra.
func (m Metadata) Field(name string) (string, bool) {
	switch name {
	case "name":
		if m.Name != "" {
			return m.Name, true
		}
	case "version":
		if m.Version != "" {
			return m.Version, true
		}
	case "marker":
		if m.Marker != "" {
			return m.Marker, true
		}
	case "dependencies":
		if len(m.Dependencies) > 0 {
			return strings.Join(m.Dependencies, ","), true
		}
	case "docstring":
		if m.Docstring != "" {
			return m.Docstring, true
		}
	}
	v, ok := m.Extra[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// RawStats carries size counters used for coverage math.
type RawStats struct {
	SizeBytes int64 `json:"size_bytes"`
	Lines     int   `json:"lines"`
}

// DocumentRecord is the registry entry for one processed file.
// Records are immutable once written to the registry; the registry is
// fully rebuilt on each pipeline run.
type DocumentRecord struct {
	// ID is the repository-relative path, unique across the registry.
	ID string `json:"id"`

	// Layer is the taxonomy layer assigned by path-prefix match.
	Layer Layer `json:"layer"`

	// Type is the file-format tag.
	Type FileType `json:"type"`

	// Title is the best-effort human title.
	Title string `json:"title"`

	// Metadata holds extracted front-matter or code structure.
	Metadata Metadata `json:"metadata"`

	// Sections lists markdown headings in document order.
	Sections []Heading `json:"sections,omitempty"`

	// References lists raw link targets found in the content. The
	// relationship extractor resolves these against the registry.
	References []string `json:"references,omitempty"`

	// Stats carries raw size counters.
	Stats RawStats `json:"raw_stats"`

	// Error flags a file that could not be read or decoded. Degraded
	// records stay in the registry but carry no extracted content.
	Error string `json:"error,omitempty"`
}

// HasSection reports whether a heading matching the given name is
// present. Matching is case-insensitive and partial on heading text.
func (d *DocumentRecord) HasSection(name string) bool {
	needle := strings.ToLower(name)
	for _, h := range d.Sections {
		if strings.Contains(strings.ToLower(h.Text), needle) {
			return true
		}
	}
	return false
}

// Stem returns the filename stem of the document id, lowercased. The
// path-convention relationship heuristics match on stems.
func (d *DocumentRecord) Stem() string {
	base := filepath.Base(d.ID)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Fragment is the uniform intermediate record produced by per-type
// extraction. Fields that do not apply to a file type stay zero.
type Fragment struct {
	// FrontMatter is the parsed front-matter mapping, nil when absent.
	FrontMatter map[string]any

	// Headings lists markdown headings in document order.
	Headings []Heading

	// Docstring is the leading docstring for code files.
	Docstring string

	// Classes lists extracted class names.
	Classes []string

	// Functions lists extracted function names.
	Functions []string

	// TopLevelKeys lists leading top-level keys for data files.
	TopLevelKeys []string

	// References lists raw link or path references found in content.
	References []string

	// Title is the content-derived title, empty when none was found.
	Title string

	// Warnings records recoverable extraction problems, for example
	// unparsable front matter. They never abort a run.
	Warnings []string
}

// TitleFromPath derives a fallback title from a path: the filename stem
// with separators replaced by spaces and words title-cased.
func TitleFromPath(id string) string {
	base := filepath.Base(id)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	words := strings.Fields(stem)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
