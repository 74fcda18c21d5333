package parser

import (
	"testing"

	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
)

func TestDataExtractor_YAML(t *testing.T) {
	e := NewDataExtractor(source.TypeYAML)

	content := `name: pipeline-config
stages:
  - extract
  - validate
output: docs/nlu
`

	frag := e.Extract([]byte(content))

	assert.Equal(t, []string{"name", "output", "stages"}, frag.TopLevelKeys)
	assert.Equal(t, "pipeline-config", frag.Title)
	assert.Empty(t, frag.Warnings)
}

func TestDataExtractor_JSON(t *testing.T) {
	e := NewDataExtractor(source.TypeJSON)

	frag := e.Extract([]byte(`{"title": "Settings", "debug": true}`))

	assert.Equal(t, []string{"debug", "title"}, frag.TopLevelKeys)
	assert.Equal(t, "Settings", frag.Title)
}

func TestDataExtractor_KeyLimit(t *testing.T) {
	e := NewDataExtractor(source.TypeYAML)

	frag := e.Extract([]byte("a: 1\nb: 2\nc: 3\nd: 4\ne: 5\nf: 6\ng: 7\n"))

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, frag.TopLevelKeys)
}

func TestDataExtractor_InvalidContent(t *testing.T) {
	e := NewDataExtractor(source.TypeJSON)

	frag := e.Extract([]byte("{not json"))

	assert.Empty(t, frag.TopLevelKeys)
	assert.Len(t, frag.Warnings, 1)
}

func TestDataExtractor_EmptyDocument(t *testing.T) {
	e := NewDataExtractor(source.TypeYAML)

	frag := e.Extract([]byte(""))

	assert.Empty(t, frag.TopLevelKeys)
	assert.Empty(t, frag.Warnings)
}
