package pipeline

import (
	"strings"

	"github.com/openclause/gavel/internal/classify"
	"github.com/openclause/gavel/internal/extract"
	"github.com/openclause/gavel/internal/segment"
)

// Clause is one segmented and classified contract provision. Clauses are
// immutable once produced and owned by the pipeline run that created them.
type Clause struct {
	// Number is the 1-based ordinal position of the clause.
	Number int `json:"clause_number"`

	// RawText is the clause segment as it appears in the source document.
	RawText string `json:"clause_text"`

	// Text is the flattened single-line form used for embedding and
	// assessment.
	Text string `json:"-"`

	// Title is the extracted heading line, or the clause type's display
	// title when the clause carried no heading.
	Title string `json:"title"`

	ClauseType classify.Type `json:"clause_type"`
	Confidence float64       `json:"confidence_score"`
}

// ExtractClauses normalizes contract text, segments it into clause
// candidates, and classifies each candidate. The empty slice result means
// the document yielded no clauses; an entirely empty document is an input
// error instead.
func ExtractClauses(text string, cfg segment.Config) ([]Clause, error) {
	normalized := extract.Normalize(text)
	if strings.TrimSpace(normalized) == "" {
		return nil, ErrEmptyDocument
	}

	candidates := segment.Split(normalized, cfg)

	clauses := make([]Clause, len(candidates))
	for i, cand := range candidates {
		flat := strings.Join(strings.Fields(cand.Text), " ")
		result := classify.Classify(flat)

		title := strings.TrimSpace(cand.Heading)
		if title == "" {
			title = result.Type.Title()
		}

		clauses[i] = Clause{
			Number:     i + 1,
			RawText:    cand.Text,
			Text:       flat,
			Title:      title,
			ClauseType: result.Type,
			Confidence: result.Confidence,
		}
	}

	return clauses, nil
}
