package precedents

import (
	"context"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/vectorindex"
	"github.com/openclause/gavel/pkg/lifecycle"
)

// System defines the public contract for precedent domain operations.
// It also serves as the retrieval index source for the analysis pipeline.
type System interface {
	Handler() *Handler

	// Start registers a startup hook that builds the retrieval index from
	// stored precedent rows.
	Start(lc *lifecycle.Coordinator) error

	List(ctx context.Context, contractType string) ([]Precedent, error)
	Find(ctx context.Context, id uuid.UUID) (*Precedent, error)
	Create(ctx context.Context, cmd CreateCommand) (*Precedent, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Search embeds query text and returns the k most similar precedent
	// clauses. It fails with ErrIndexUnavailable until the startup index
	// build has completed.
	Search(ctx context.Context, query string, k int) ([]vectorindex.Match, error)

	// Rebuild reconstructs the retrieval index from the current corpus and
	// atomically swaps it in for subsequent searches.
	Rebuild(ctx context.Context) error

	// Index returns the current retrieval index, or nil if it has not been
	// built yet.
	Index() *vectorindex.Index
}
