package pipeline

import (
	"context"
	"log/slog"
)

// State identifies a phase of a contract analysis run.
type State string

// Run states in execution order, plus the terminal outcomes.
const (
	StateExtracting  State = "Extracting"
	StateClassifying State = "Classifying"
	StateRetrieving  State = "Retrieving"
	StateAssessing   State = "Assessing"
	StateAggregating State = "Aggregating"
	StateDone        State = "Done"
	StateFailed      State = "Failed"
)

// run tracks the state machine for one contract analysis.
type run struct {
	state  State
	logger *slog.Logger
}

func newRun(logger *slog.Logger) *run {
	return &run{state: StateExtracting, logger: logger}
}

func (r *run) to(ctx context.Context, next State) {
	r.logger.InfoContext(
		ctx, "run transition",
		"from", string(r.state),
		"to", string(next),
	)
	r.state = next
}
