// Package embed defines the embedding collaborator interface used for
// semantic search over the registry, plus a deterministic local
// embedder so the pipeline works without an external model.
package embed

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Embedder turns text into a fixed-dimension vector. The pipeline
// treats the model as opaque; implementations may call out to an
// external service or compute vectors locally.
type Embedder interface {
	// Embed returns the vector for the given text.
	Embed(text string) ([]float32, error)

	// Dimension returns the vector length every Embed call produces.
	Dimension() int
}

// DefaultDimension is the vector size of the local embedder.
const DefaultDimension = 256

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// HashingEmbedder is a deterministic term-frequency embedder: tokens
// hash into a fixed number of buckets and the resulting vector is
// L2-normalized. It has no semantic model behind it but gives stable,
// offline-computable vectors for lexical similarity.
type HashingEmbedder struct {
	dimension int
}

// NewHashingEmbedder creates a local embedder. A non-positive dimension
// falls back to DefaultDimension.
func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashingEmbedder{dimension: dimension}
}

// Dimension returns the configured vector size.
func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

// Embed tokenizes the text, hashes each token into a bucket, and
// normalizes the bucket counts.
func (e *HashingEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, e.dimension)

	for _, token := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		vec[fnv32(token)%uint32(e.dimension)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// fnv32 is the FNV-1a hash over a token.
func fnv32(s string) uint32 {
	const (
		offset = 2166136261
		prime  = 16777619
	)
	h := uint32(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// Cosine returns the cosine similarity of two vectors of equal length.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d != %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
