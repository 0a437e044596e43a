package contracts

import (
	"context"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/pipeline"
)

// ClauseExtractor segments and classifies normalized contract text. The
// analysis pipeline supplies the implementation at wiring time.
type ClauseExtractor func(text string) ([]pipeline.Clause, error)

// System defines the public contract for contract domain operations.
type System interface {
	Handler(extract ClauseExtractor, maxUploadSize int64, contractTypes []string) *Handler

	List(ctx context.Context, contractType string) ([]Contract, error)
	Find(ctx context.Context, id uuid.UUID) (*Contract, error)
	Create(ctx context.Context, cmd CreateCommand) (*Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Text downloads the stored document and returns its normalized text
	// content, ready for segmentation.
	Text(ctx context.Context, id uuid.UUID) (string, error)

	// MarkAnalyzed transitions a contract to the analyzed status after a
	// report has been stored for it.
	MarkAnalyzed(ctx context.Context, id uuid.UUID) error
}
