package vectorindex

import "errors"

// Sentinel errors for index construction and queries. A dimension mismatch
// indicates caller misuse, not a recoverable runtime condition.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrInvalidDimension  = errors.New("invalid index dimension")
)
