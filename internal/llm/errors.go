package llm

import "errors"

// Sentinel errors for LLM gateway operations.
var (
	ErrUnavailable = errors.New("llm gateway unavailable")
	ErrBadResponse = errors.New("malformed llm response")
)
