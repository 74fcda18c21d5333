package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	root := fixtureRepo(t)
	reg := buildFixture(t, root)

	out := filepath.Join(t.TempDir(), "nlu", "document_registry.json")
	require.NoError(t, reg.Save(out))

	loaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, reg.Docs, loaded.Docs)
}

func TestRegistry_SaveIsByteStable(t *testing.T) {
	root := fixtureRepo(t)
	reg := buildFixture(t, root)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, reg.Save(first))
	require.NoError(t, reg.Save(second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
