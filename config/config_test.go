package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejectsUnknownExtension(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions = append(cfg.Extensions, ".exe")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".exe")
}

func TestConfig_ValidateRejectsUnknownLayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Taxonomy = append(cfg.Taxonomy, TaxonomyLayer{Name: "mystery", Paths: []string{"x/"}})

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestConfig_ValidateRejectsBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extraction = map[string]ExtractionRules{
		"python": {Class: `(unclosed`},
	}

	require.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsUnknownRelationshipType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RelationshipTypes = []string{"references", "mentions"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mentions")
}

func TestLoadFromFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	content := `extensions:
  - .md
  - .py
taxonomy:
  - name: prompts
    paths:
      - library/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".md", ".py"}, cfg.Extensions)
	require.Len(t, cfg.Taxonomy, 1)
	assert.Equal(t, "prompts", cfg.Taxonomy[0].Name)
	// Fields absent from the file keep their defaults.
	assert.NotEmpty(t, cfg.Ignore)
}

func TestLoader_ExplicitPathMustExist(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(t.TempDir(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoader_FallsBackToDefaults(t *testing.T) {
	loader := NewLoader(nil)

	cfg, err := loader.Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_PicksUpRootConfigFile(t *testing.T) {
	root := t.TempDir()
	content := `extensions:
  - .md
taxonomy:
  - name: docs
    paths:
      - docs/
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644))

	cfg, err := NewLoader(nil).Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
}

func TestBuildParserRegistry_OverlaysConfiguredRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extraction = map[string]ExtractionRules{
		"python": {Function: `(?m)^async def (\w+)`},
	}

	reg, err := cfg.BuildParserRegistry()
	require.NoError(t, err)

	frag, ok := reg.Extract(source.TypePython, []byte("async def handler():\n    pass\n"))
	require.True(t, ok)
	assert.Equal(t, []string{"handler"}, frag.Functions)
}
