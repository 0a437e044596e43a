package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/risk"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler() *Handler

	// Analyze runs the full pipeline over a stored contract and persists
	// the resulting report.
	Analyze(ctx context.Context, contractID uuid.UUID) (*Report, error)

	// Preview runs the pipeline over raw text without persisting anything.
	Preview(ctx context.Context, cmd PreviewCommand) (*risk.ContractReport, error)

	List(ctx context.Context, contractID uuid.UUID) ([]Report, error)
	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
