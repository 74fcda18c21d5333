// Package registry walks a repository tree and assembles the document
// registry: one DocumentRecord per matching file, keyed by path.
package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/source/parser"
)

// Registry is the primary pipeline artifact: the full document record
// set plus the recoverable warnings gathered while building it.
type Registry struct {
	// Docs maps document id (repository-relative path) to its record.
	Docs map[string]*source.DocumentRecord

	// Warnings lists recoverable per-file problems in processing order.
	Warnings []string
}

// IDs returns the registry document ids in lexicographic order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Docs))
	for id := range r.Docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Builder assembles a Registry from a repository root and a processor
// configuration.
type Builder struct {
	root    string
	cfg     *config.Config
	parsers *parser.Registry
	logger  *slog.Logger
}

// NewBuilder creates a registry builder. Construction fails when the
// configured extraction patterns do not compile.
func NewBuilder(root string, cfg *config.Config, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	parsers, err := cfg.BuildParserRegistry()
	if err != nil {
		return nil, err
	}
	return &Builder{
		root:    root,
		cfg:     cfg,
		parsers: parsers,
		logger:  logger,
	}, nil
}

// Build enumerates matching files, classifies each by taxonomy layer,
// runs extraction, and assembles the registry. Files are processed in
// lexicographic path order so repeated runs over unchanged input
// produce identical registries. One unreadable file degrades to an
// error-flagged record; it never aborts the pass.
func (b *Builder) Build() (*Registry, error) {
	paths, err := b.enumerate()
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", b.root, err)
	}
	sort.Strings(paths)

	b.logger.Info("Processing repository",
		slog.String("root", b.root),
		slog.Int("files", len(paths)))

	reg := &Registry{Docs: make(map[string]*source.DocumentRecord, len(paths))}
	for _, rel := range paths {
		record, warnings := b.process(rel)
		// Re-processing the same path overwrites, never duplicates.
		reg.Docs[record.ID] = record
		reg.Warnings = append(reg.Warnings, warnings...)
	}

	return reg, nil
}

// enumerate walks the tree and returns the repository-relative paths of
// files matching the extension allowlist and not matching any ignore
// pattern.
func (b *Builder) enumerate() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(b.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(b.root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if b.ignored(rel + "/_") {
				// The sentinel suffix lets directory-content patterns
				// like **/.git/** prune the subtree.
				return filepath.SkipDir
			}
			return nil
		}

		if b.ignored(rel) {
			return nil
		}
		if !b.allowedExtension(filepath.Ext(rel)) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (b *Builder) ignored(rel string) bool {
	for _, pattern := range b.cfg.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (b *Builder) allowedExtension(ext string) bool {
	for _, allowed := range b.cfg.Extensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// process builds the record for one file. Read and decode failures
// produce a degraded record with the error flag set.
func (b *Builder) process(rel string) (*source.DocumentRecord, []string) {
	ft, _ := parser.TypeFromExtension(filepath.Ext(rel))
	record := &source.DocumentRecord{
		ID:    rel,
		Layer: classify(rel, b.cfg.Taxonomy),
		Type:  ft,
		Title: source.TitleFromPath(rel),
	}

	content, err := os.ReadFile(filepath.Join(b.root, rel))
	if err != nil {
		record.Error = fmt.Sprintf("read: %v", err)
		b.logger.Warn("Failed to read file", slog.String("path", rel), slog.String("error", err.Error()))
		return record, []string{fmt.Sprintf("%s: %s", rel, record.Error)}
	}
	if !utf8.Valid(content) {
		record.Error = "invalid UTF-8 encoding"
		b.logger.Warn("Skipping undecodable file", slog.String("path", rel))
		return record, []string{fmt.Sprintf("%s: %s", rel, record.Error)}
	}

	record.Stats = source.RawStats{
		SizeBytes: int64(len(content)),
		Lines:     countLines(content),
	}

	frag, ok := b.parsers.Extract(ft, content)
	if !ok {
		// Extension allowlist and extractor set are validated together,
		// so this only happens with a hand-built registry.
		return record, nil
	}

	applyFragment(record, frag)

	var warnings []string
	for _, w := range frag.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %s", rel, w))
	}
	return record, warnings
}

// applyFragment folds an extraction fragment into the record, pulling
// the well-known front-matter fields out of the generic mapping.
func applyFragment(record *source.DocumentRecord, frag *source.Fragment) {
	record.Sections = frag.Headings
	record.References = frag.References
	record.Metadata.Docstring = frag.Docstring
	record.Metadata.Classes = frag.Classes
	record.Metadata.Functions = frag.Functions
	record.Metadata.TopLevelKeys = frag.TopLevelKeys

	for key, value := range frag.FrontMatter {
		switch key {
		case "name":
			record.Metadata.Name = stringify(value)
		case "version":
			record.Metadata.Version = stringify(value)
		case "marker":
			record.Metadata.Marker = stringify(value)
		case "dependencies":
			record.Metadata.Dependencies = stringList(value)
		default:
			if record.Metadata.Extra == nil {
				record.Metadata.Extra = make(map[string]string)
			}
			record.Metadata.Extra[key] = stringify(value)
		}
	}

	// Title precedence: first level-1 heading or content title, then
	// front-matter name, then the filename fallback already set.
	if frag.Title != "" {
		record.Title = frag.Title
	} else if record.Metadata.Name != "" {
		record.Title = record.Metadata.Name
	}
}

// classify assigns the taxonomy layer by longest matching path prefix.
// Ties at equal prefix length break by declaration order, first wins;
// no match yields the unclassified layer.
func classify(id string, taxonomy []config.TaxonomyLayer) source.Layer {
	best := source.LayerUnclassified
	bestLen := -1
	for _, layer := range taxonomy {
		for _, prefix := range layer.Paths {
			if id != prefix && !strings.HasPrefix(id, prefix) {
				continue
			}
			if len(prefix) > bestLen {
				bestLen = len(prefix)
				best = source.Layer(layer.Name)
			}
		}
	}
	return best
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := strings.Count(string(content), "\n")
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
