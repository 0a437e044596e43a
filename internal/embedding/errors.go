package embedding

import "errors"

// Sentinel errors for embedding gateway operations.
var (
	ErrEmptyText   = errors.New("cannot embed empty text")
	ErrUnavailable = errors.New("embedding gateway unavailable")
	ErrBadResponse = errors.New("malformed embedding response")
)
