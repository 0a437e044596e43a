package extract

import "errors"

// Sentinel errors for text extraction.
var (
	ErrEmptyDocument   = errors.New("document contains no text")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrExtractFailed   = errors.New("text extraction failed")
)
