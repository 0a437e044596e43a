// Package vectorindex provides an immutable in-memory nearest-neighbor
// index over precedent clause embeddings. The index is built once from a
// fixed entry set and answers top-k cosine-similarity queries; because there
// are no mutations after construction, concurrent queries require no
// locking.
package vectorindex

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one precedent clause registered at build time. The index owns the
// vector for its lifetime; callers must not mutate it after Build.
type Entry struct {
	ID         string
	ClauseType string
	Text       string
	Vector     []float64
}

// Match is a retrieval result: a precedent and its cosine similarity to the
// query, carried with the precedent text for downstream prompt composition.
type Match struct {
	ID         string  `json:"precedent_id"`
	ClauseType string  `json:"clause_type"`
	Text       string  `json:"text"`
	Score      float64 `json:"similarity_score"`
}

// Index answers top-k nearest-neighbor queries over a fixed precedent set.
type Index struct {
	dimension int
	entries   []Entry
	norms     []float64
}

// Build constructs an index of the given dimensionality from a fixed entry
// set. Build is O(n); every entry vector must have exactly dimension
// elements or Build fails with ErrDimensionMismatch. An empty entry set is
// valid and yields an index that answers every query with no matches.
func Build(dimension int, entries []Entry) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidDimension, dimension)
	}

	ix := &Index{
		dimension: dimension,
		entries:   make([]Entry, len(entries)),
		norms:     make([]float64, len(entries)),
	}

	for i, e := range entries {
		if len(e.Vector) != dimension {
			return nil, fmt.Errorf(
				"%w: entry %s has %d elements, index dimension is %d",
				ErrDimensionMismatch, e.ID, len(e.Vector), dimension,
			)
		}
		ix.entries[i] = e
		ix.norms[i] = norm(e.Vector)
	}

	return ix, nil
}

// Dimension returns the fixed vector dimensionality of the index.
func (ix *Index) Dimension() int {
	return ix.dimension
}

// Len returns the number of registered precedents.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns the k precedents most similar to query, ranked by cosine
// similarity descending with ties broken by insertion order (the earlier
// registered precedent wins). Fewer than k precedents yields all of them; an
// empty index yields an empty slice, not an error. A query of the wrong
// length fails with ErrDimensionMismatch.
func (ix *Index) Search(query []float64, k int) ([]Match, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf(
			"%w: query has %d elements, index dimension is %d",
			ErrDimensionMismatch, len(query), ix.dimension,
		)
	}
	if k <= 0 || ix.Len() == 0 {
		return []Match{}, nil
	}

	queryNorm := norm(query)

	scored := make([]Match, len(ix.entries))
	order := make([]int, len(ix.entries))
	for i, e := range ix.entries {
		scored[i] = Match{
			ID:         e.ID,
			ClauseType: e.ClauseType,
			Text:       e.Text,
			Score:      cosine(query, e.Vector, queryNorm, ix.norms[i]),
		}
		order[i] = i
	}

	// stable sort preserves insertion order among equal scores
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Score > scored[order[b]].Score
	})

	if k > len(order) {
		k = len(order)
	}

	results := make([]Match, k)
	for i := range k {
		results[i] = scored[order[i]]
	}
	return results, nil
}

// cosine computes dot(a,b)/(‖a‖·‖b‖). A zero-norm operand yields 0 rather
// than propagating NaN.
func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
