package contracts

import (
	"errors"
	"net/http"
)

// Domain errors for contract operations.
var (
	ErrNotFound            = errors.New("contract not found")
	ErrDuplicate           = errors.New("contract already exists")
	ErrFileTooLarge        = errors.New("file exceeds maximum upload size")
	ErrInvalidFile         = errors.New("invalid file")
	ErrUnknownContractType = errors.New("unknown contract type")
)

// MapHTTPStatus maps contract domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnknownContractType) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
