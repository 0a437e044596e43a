// Package contracts implements the contract document domain for Gavel.
// It provides types, data access, and business logic for contract upload,
// metadata management, blob storage integration, and text retrieval for the
// analysis pipeline.
package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Contract statuses track the analysis lifecycle of an uploaded document.
const (
	StatusUploaded = "uploaded"
	StatusAnalyzed = "analyzed"
)

// Contract represents an uploaded contract document with its metadata and
// blob storage reference.
type Contract struct {
	ID           uuid.UUID `json:"id"`
	ContractType string    `json:"contract_type"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	PageCount    *int      `json:"page_count"`
	StorageKey   string    `json:"storage_key"`
	Status       string    `json:"status"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// contract. Data holds the raw file bytes. PageCount is optional and may be
// extracted by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data         []byte
	Filename     string
	ContentType  string
	ContractType string
	PageCount    *int
}
