package reports

import (
	"errors"
	"net/http"

	"github.com/openclause/gavel/internal/contracts"
	"github.com/openclause/gavel/internal/pipeline"
)

// Domain errors for report operations.
var (
	ErrNotFound       = errors.New("report not found")
	ErrDuplicate      = errors.New("report already exists")
	ErrInvalidRequest = errors.New("invalid report request")
)

// MapHTTPStatus maps report domain errors to appropriate HTTP status codes.
// Contract lookup and pipeline errors surface through report operations, so
// both taxonomies are covered here.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, contracts.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, pipeline.ErrEmptyDocument) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, pipeline.ErrRunFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
