// Package pipeline sequences contract analysis: segmentation and
// classification, per-clause precedent retrieval and LLM assessment on a
// bounded worker pool, and final risk aggregation. A run is a state machine
// over {Extracting, Classifying, Retrieving, Assessing, Aggregating, Done,
// Failed}; outside strict mode a single clause's gateway failure degrades
// that clause instead of failing the run.
package pipeline

import "errors"

// Sentinel errors for pipeline runs.
var (
	ErrEmptyDocument = errors.New("document contains no text")
	ErrRunFailed     = errors.New("analysis run failed")
)
