// Package risk implements the risk aggregation stage: numeric mapping of
// risk levels, missing-clause detection against per-contract-type required
// sets, the overall risk index, and final report assembly. Every function is
// pure over already-computed state.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/openclause/gavel/internal/classify"
)

// Level is a categorical clause risk verdict.
type Level string

// Risk levels in ascending severity.
const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// ParseLevel validates a raw gateway risk level against the taxonomy.
func ParseLevel(raw string) (Level, error) {
	switch Level(raw) {
	case Low, Medium, High:
		return Level(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedRiskLevel, raw)
	}
}

// Score maps a risk level to its numeric scale: Low 1, Medium 2, High 3.
func (l Level) Score() (int, error) {
	switch l {
	case Low:
		return 1, nil
	case Medium:
		return 2, nil
	case High:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedRiskLevel, l)
	}
}

// Assessment is the validated per-clause risk verdict. ClauseIndex refers
// back to the clause's ordinal position in the contract.
type Assessment struct {
	ClauseIndex int    `json:"clause_index"`
	Level       Level  `json:"risk_level"`
	Score       int    `json:"numeric_score"`
	Explanation string `json:"explanation"`
}

// NewAssessment validates a raw verdict into an Assessment. An
// out-of-taxonomy level fails with ErrUnrecognizedRiskLevel.
func NewAssessment(clauseIndex int, rawLevel, explanation string) (Assessment, error) {
	level, err := ParseLevel(rawLevel)
	if err != nil {
		return Assessment{}, err
	}

	score, _ := level.Score()
	return Assessment{
		ClauseIndex: clauseIndex,
		Level:       level,
		Score:       score,
		Explanation: explanation,
	}, nil
}

// OverallIndex computes the arithmetic mean of numeric scores, rounded to
// two decimal places. The second return is false when there are no scores;
// callers report that as "no clauses detected" instead of dividing by zero.
func OverallIndex(scores []int) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}

	mean := float64(sum) / float64(len(scores))
	return math.Round(mean*100) / 100, true
}

// Distribution counts assessments per risk level.
func Distribution(assessments []Assessment) map[Level]int {
	dist := make(map[Level]int)
	for _, a := range assessments {
		dist[a.Level]++
	}
	return dist
}

// Policy maps a contract type to its required clause types. Lookup of an
// unknown contract type yields an empty required set, not an error.
type Policy map[string][]classify.Type

// DefaultPolicy returns the built-in required-clause tables.
func DefaultPolicy() Policy {
	return Policy{
		"Employment": {
			classify.Termination,
			classify.Confidentiality,
			classify.Payment,
			classify.Notice,
			classify.GoverningLaw,
		},
		"NDA": {
			classify.Confidentiality,
			classify.Termination,
			classify.GoverningLaw,
		},
		"Service": {
			classify.Payment,
			classify.Liability,
			classify.Confidentiality,
			classify.Termination,
			classify.GoverningLaw,
			classify.Notice,
		},
		"Vendor": {
			classify.Payment,
			classify.Liability,
			classify.IntellectualProperty,
			classify.Termination,
			classify.GoverningLaw,
		},
		"Lease": {
			classify.Payment,
			classify.Termination,
			classify.Liability,
			classify.GoverningLaw,
		},
	}
}

// ContractTypes returns the contract types the policy covers, sorted for
// deterministic output.
func (p Policy) ContractTypes() []string {
	types := make([]string, 0, len(p))
	for t := range p {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Required returns the required clause types for a contract type. Unknown
// contract types have no requirements.
func (p Policy) Required(contractType string) []classify.Type {
	return p[contractType]
}

// Missing computes required minus present, preserving the required set's
// declaration order for deterministic output. Presence is checked against
// the clause list's type multiset, so duplicates never mask a gap.
func (p Policy) Missing(contractType string, present []classify.Type) []classify.Type {
	found := make(map[classify.Type]bool, len(present))
	for _, t := range present {
		found[t] = true
	}

	missing := make([]classify.Type, 0)
	for _, required := range p.Required(contractType) {
		if !found[required] {
			missing = append(missing, required)
		}
	}
	return missing
}
