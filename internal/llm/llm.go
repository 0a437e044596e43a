// Package llm defines the risk-verdict gateway contract and a
// chat-completions HTTP client implementation. The gateway receives a clause
// and its retrieved precedents and answers with a risk level and short
// explanation; verdict values outside the Low/Medium/High taxonomy are the
// caller's responsibility to reject.
package llm

import (
	"context"

	"github.com/openclause/gavel/internal/vectorindex"
)

// Verdict is the raw gateway response for one clause. RiskLevel is carried
// as a string because the gateway may return out-of-taxonomy values; the
// risk aggregator validates it.
type Verdict struct {
	RiskLevel   string `json:"risk_level"`
	Explanation string `json:"explanation"`
}

// AssessRequest carries one clause and its retrieved precedent context.
type AssessRequest struct {
	ContractType string
	Title        string
	ClauseText   string
	Precedents   []vectorindex.Match
}

// TipsRequest summarizes a finished analysis for negotiation guidance.
type TipsRequest struct {
	ContractType   string
	ClauseSummary  []ClauseLine
	MissingClauses []string
}

// ClauseLine is one row of the tips prompt's clause risk table.
type ClauseLine struct {
	Title     string
	RiskLevel string
}

// Gateway produces risk verdicts and negotiation guidance. Implementations
// are idempotent and side-effect free, so bounded retries never duplicate
// work.
type Gateway interface {
	// Assess compares a clause against its precedents and returns a risk
	// verdict with a concise explanation.
	Assess(ctx context.Context, req AssessRequest) (*Verdict, error)

	// Tips produces a short negotiation summary for a completed analysis.
	Tips(ctx context.Context, req TipsRequest) (string, error)
}
