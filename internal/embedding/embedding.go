// Package embedding defines the text-to-vector gateway contract and an
// OpenAI-compatible HTTP client implementation. The gateway is modeled as a
// capability interface so pipeline logic can be tested with deterministic
// stubs, decoupled from any live embedding service.
package embedding

import (
	"context"
	"math"
)

// Gateway converts text into a fixed-length embedding vector. Gateways are
// idempotent and side-effect free from the pipeline's perspective, so
// bounded retries never duplicate work.
type Gateway interface {
	// Embed returns the embedding vector for text. The vector length always
	// equals Dimension.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimension returns the fixed vector length this gateway produces.
	Dimension() int
}

// NormalizeL2 scales v to unit length in place and returns it. A zero
// vector is returned unchanged so cosine scoring stays defined downstream.
func NormalizeL2(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}

	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}
