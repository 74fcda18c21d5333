package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/c360studio/docgraph/source"
	"gopkg.in/yaml.v3"
)

// maxTopLevelKeys bounds the key summary for data documents.
const maxTopLevelKeys = 5

// DataExtractor extracts a key summary and title from YAML and JSON
// documents.
type DataExtractor struct {
	fileType source.FileType
}

// NewDataExtractor creates an extractor for a data file type.
func NewDataExtractor(ft source.FileType) *DataExtractor {
	return &DataExtractor{fileType: ft}
}

// FileType returns the data file-type tag this extractor handles.
func (e *DataExtractor) FileType() source.FileType {
	return e.fileType
}

// Extract parses the document and records its leading top-level keys.
// A name or title field becomes the fragment title. Unparsable content
// degrades to an empty fragment plus a warning.
func (e *DataExtractor) Extract(content []byte) *source.Fragment {
	frag := &source.Fragment{}

	var doc map[string]any
	var err error
	if e.fileType == source.TypeJSON {
		err = json.Unmarshal(content, &doc)
	} else {
		err = yaml.Unmarshal(content, &doc)
	}
	if err != nil {
		frag.Warnings = append(frag.Warnings, fmt.Sprintf("parse %s: %v", e.fileType, err))
		return frag
	}
	if doc == nil {
		return frag
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxTopLevelKeys {
		keys = keys[:maxTopLevelKeys]
	}
	frag.TopLevelKeys = keys

	if name, ok := doc["name"].(string); ok && name != "" {
		frag.Title = name
	} else if title, ok := doc["title"].(string); ok && title != "" {
		frag.Title = title
	}

	return frag
}
