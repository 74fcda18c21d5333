// Package parser implements the extraction rule engine: per-file-type
// extractors that turn raw content into uniform record fragments.
package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/c360studio/docgraph/source"
)

// Extractor defines the interface for per-type content extractors.
type Extractor interface {
	// Extract produces a record fragment from raw file content.
	// Extraction never fails: malformed input degrades to an empty
	// fragment carrying warnings.
	Extract(content []byte) *source.Fragment

	// FileType returns the file-type tag this extractor handles.
	FileType() source.FileType
}

// Registry dispatches content to extractors by file-type tag.
type Registry struct {
	mu         sync.RWMutex
	extractors map[source.FileType]Extractor
}

// NewRegistry creates a registry with the default extractors.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[source.FileType]Extractor),
	}

	r.Register(NewMarkdownExtractor())
	r.Register(NewDataExtractor(source.TypeYAML))
	r.Register(NewDataExtractor(source.TypeJSON))

	for _, ft := range []source.FileType{source.TypePython, source.TypeJavaScript, source.TypeTypeScript} {
		ex, err := NewCodeExtractor(ft, DefaultCodeRules(ft))
		if err != nil {
			// Default rules are compile-time constants; a failure here
			// is a programming error.
			panic(fmt.Sprintf("default code rules for %s: %v", ft, err))
		}
		r.Register(ex)
	}

	return r
}

// Register adds an extractor to the registry, replacing any existing
// extractor for the same file type.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.FileType()] = e
}

// Get returns the extractor for a file type, or nil when the type is
// not handled.
func (r *Registry) Get(ft source.FileType) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extractors[ft]
}

// Extract runs the extractor for the given file type. The second return
// is false when no extractor handles the type; such files are skipped
// by the registry builder rather than treated as errors.
func (r *Registry) Extract(ft source.FileType, content []byte) (*source.Fragment, bool) {
	e := r.Get(ft)
	if e == nil {
		return nil, false
	}
	return e.Extract(content), true
}

// ListTypes returns all registered file types.
func (r *Registry) ListTypes() []source.FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]source.FileType, 0, len(r.extractors))
	for ft := range r.extractors {
		types = append(types, ft)
	}
	return types
}

// TypeFromExtension maps a file extension to its file-type tag. The
// second return is false for extensions outside the known set.
func TypeFromExtension(ext string) (source.FileType, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "md", "markdown":
		return source.TypeMarkdown, true
	case "py":
		return source.TypePython, true
	case "js":
		return source.TypeJavaScript, true
	case "ts":
		return source.TypeTypeScript, true
	case "yaml", "yml":
		return source.TypeYAML, true
	case "json":
		return source.TypeJSON, true
	default:
		return "", false
	}
}
