package risk

import (
	"github.com/openclause/gavel/internal/classify"
)

// ClauseReport is one clause entry in the final report.
type ClauseReport struct {
	Title       string `json:"title"`
	RiskLevel   Level  `json:"risk_level"`
	Explanation string `json:"explanation"`
}

// ContractReport is the terminal artifact of a contract analysis run. It is
// assembled once and never mutated afterward.
type ContractReport struct {
	ContractType     string          `json:"contract_type"`
	MissingClauses   []classify.Type `json:"missing_clauses"`
	Clauses          []ClauseReport  `json:"clauses"`
	OverallRiskIndex float64         `json:"overall_risk_index"`
	RiskDistribution map[Level]int   `json:"risk_distribution"`
	NegotiationTips  string          `json:"negotiation_tips,omitempty"`

	// Flagged marks a report whose overall index is undefined because the
	// document yielded no clauses.
	Flagged bool `json:"flagged,omitempty"`
}

// AssessedClause pairs one clause's identity with its validated verdict,
// in clause ordinal order.
type AssessedClause struct {
	Title      string
	ClauseType classify.Type
	Assessment Assessment
}

// Assemble builds the final ContractReport from assessed clauses. The clause
// list preserves the given order; a zero-clause contract produces a flagged
// report with an empty clause list rather than a division error.
func Assemble(policy Policy, contractType string, clauses []AssessedClause) *ContractReport {
	present := make([]classify.Type, len(clauses))
	scores := make([]int, len(clauses))
	assessments := make([]Assessment, len(clauses))
	entries := make([]ClauseReport, len(clauses))

	for i, c := range clauses {
		present[i] = c.ClauseType
		scores[i] = c.Assessment.Score
		assessments[i] = c.Assessment
		entries[i] = ClauseReport{
			Title:       c.Title,
			RiskLevel:   c.Assessment.Level,
			Explanation: c.Assessment.Explanation,
		}
	}

	index, defined := OverallIndex(scores)

	return &ContractReport{
		ContractType:     contractType,
		MissingClauses:   policy.Missing(contractType, present),
		Clauses:          entries,
		OverallRiskIndex: index,
		RiskDistribution: Distribution(assessments),
		Flagged:          !defined,
	}
}
