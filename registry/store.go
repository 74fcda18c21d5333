package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/docgraph/source"
)

// Save serializes the registry to a JSON file: a mapping from document
// id to record, keys sorted, written whole. The parent directory is
// created if needed.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r.Docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write registry %s: %w", path, err)
	}
	return nil
}

// Load reads a registry artifact back from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}

	docs := make(map[string]*source.DocumentRecord)
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &Registry{Docs: docs}, nil
}
