package embed

import (
	"fmt"
	"sort"
)

// Result is one ranked search hit.
type Result struct {
	// ID is the matched document id.
	ID string `json:"id"`

	// Score is the cosine similarity to the query in [-1, 1].
	Score float64 `json:"score"`
}

// Index is an in-memory vector index over document ids. It is rebuilt
// alongside the registry on each run and holds no cross-run state.
type Index struct {
	embedder Embedder
	vectors  map[string][]float32
}

// NewIndex creates an index backed by the given embedder.
func NewIndex(embedder Embedder) *Index {
	return &Index{
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}
}

// Add embeds the text and stores the vector under the document id,
// replacing any previous entry.
func (ix *Index) Add(id, text string) error {
	vec, err := ix.embedder.Embed(text)
	if err != nil {
		return fmt.Errorf("embed %s: %w", id, err)
	}
	ix.vectors[id] = vec
	return nil
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Search embeds the query and returns the k nearest documents by
// cosine similarity, ties broken by id for deterministic ranking.
func (ix *Index) Search(query string, k int) ([]Result, error) {
	qvec, err := ix.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := make([]Result, 0, len(ix.vectors))
	for id, vec := range ix.vectors {
		score, err := Cosine(qvec, vec)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", id, err)
		}
		results = append(results, Result{ID: id, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}
