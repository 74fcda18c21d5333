package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)

	a, err := e.Embed("planner module prompt")
	require.NoError(t, err)
	b, err := e.Embed("planner module prompt")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashingEmbedder_Normalized(t *testing.T) {
	e := NewHashingEmbedder(0)
	assert.Equal(t, DefaultDimension, e.Dimension())

	vec, err := e.Embed("graph extraction pipeline")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-6)
}

func TestHashingEmbedder_EmptyText(t *testing.T) {
	e := NewHashingEmbedder(32)

	vec, err := e.Embed("")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestCosine(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	_, err = Cosine([]float32{1}, []float32{1, 2})
	require.Error(t, err)
}

func TestCosine_ZeroVector(t *testing.T) {
	sim, err := Cosine([]float32{0, 0}, []float32{1, 1})
	require.NoError(t, err)
	assert.Zero(t, sim)
}
