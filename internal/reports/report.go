// Package reports implements the risk report domain for Gavel. It drives
// the analysis pipeline over stored contracts, persists the resulting
// reports, and serves ad hoc previews over raw text.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/risk"
)

// Report is a persisted risk analysis outcome for a contract.
type Report struct {
	ID         uuid.UUID           `json:"id"`
	ContractID uuid.UUID           `json:"contract_id"`
	Report     risk.ContractReport `json:"report"`
	CreatedAt  time.Time           `json:"created_at"`
}

// PreviewCommand carries raw contract text for an ad hoc analysis that is
// not persisted.
type PreviewCommand struct {
	ContractType string `json:"contract_type"`
	Text         string `json:"text"`
}
