// Package precedents implements the precedent clause corpus for Gavel.
// It provides types, data access, and the in-memory retrieval index built
// from stored precedent rows at startup.
package precedents

import (
	"time"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/classify"
)

// Precedent is a reference clause from the corpus, stored alongside its
// embedding vector. InsertedSeq records insertion order so index rebuilds
// stay deterministic.
type Precedent struct {
	ID           uuid.UUID     `json:"id"`
	ContractType string        `json:"contract_type"`
	ClauseType   classify.Type `json:"clause_type"`
	Text         string        `json:"text"`
	InsertedSeq  int64         `json:"inserted_seq"`
	CreatedAt    time.Time     `json:"created_at"`
}

// CreateCommand carries the data needed to register a new precedent clause.
// The embedding is computed server-side from Text.
type CreateCommand struct {
	ContractType string        `json:"contract_type" yaml:"contract_type"`
	ClauseType   classify.Type `json:"clause_type"   yaml:"clause_type"`
	Text         string        `json:"text"          yaml:"text"`
}

func (cmd CreateCommand) validate() error {
	if cmd.ContractType == "" || cmd.Text == "" {
		return ErrInvalidPrecedent
	}
	if !cmd.ClauseType.Valid() {
		return ErrInvalidPrecedent
	}
	return nil
}
