package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_SearchRanksByRelevance(t *testing.T) {
	ix := NewIndex(NewHashingEmbedder(512))

	require.NoError(t, ix.Add("modules/planner.md", "planner module prompt planning"))
	require.NoError(t, ix.Add("docs/setup.md", "installation setup instructions"))
	require.NoError(t, ix.Add("src/planner.py", "planner implementation"))
	assert.Equal(t, 3, ix.Len())

	results, err := ix.Search("planner planning", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "modules/planner.md", results[0].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestIndex_SearchTieBreaksByID(t *testing.T) {
	ix := NewIndex(NewHashingEmbedder(128))
	require.NoError(t, ix.Add("b.md", "shared text"))
	require.NoError(t, ix.Add("a.md", "shared text"))

	results, err := ix.Search("shared text", 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "a.md", results[0].ID)
	assert.Equal(t, "b.md", results[1].ID)
	assert.Equal(t, results[0].Score, results[1].Score)
}

func TestIndex_AddReplaces(t *testing.T) {
	ix := NewIndex(NewHashingEmbedder(64))
	require.NoError(t, ix.Add("a.md", "old text"))
	require.NoError(t, ix.Add("a.md", "new text"))
	assert.Equal(t, 1, ix.Len())
}
