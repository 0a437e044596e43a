package llm

import (
	"fmt"
	"strings"
)

const assessSystem = "You are a legal contract risk analysis assistant. You output only valid JSON."

const tipsSystem = "You are a contract lawyer. You are concise and practical."

// assessPrompt composes the per-clause risk analysis prompt: the clause, its
// retrieved precedents, and the required JSON response contract.
func assessPrompt(req AssessRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Contract Type: %s\n\n", req.ContractType)
	fmt.Fprintf(&sb, "Clause: %s\n", req.Title)
	fmt.Fprintf(&sb, "Text: %s\n\n", req.ClauseText)

	sb.WriteString("Relevant Precedents:\n")
	if len(req.Precedents) == 0 {
		sb.WriteString("No similar precedent clauses found.\n")
	}
	for _, p := range req.Precedents {
		fmt.Fprintf(&sb, "- %s (similarity: %.4f)\n", p.Text, p.Score)
	}

	sb.WriteString(`
Compare the clause with its precedents. Identify deviations that increase
legal or financial risk. Assign a risk level and provide a concise
explanation of at most two sentences.

Return ONLY a valid JSON object with this exact structure:
{"risk_level": "Low" | "Medium" | "High", "explanation": "short explanation"}
`)

	return sb.String()
}

// tipsPrompt composes the negotiation guidance prompt from the finished
// per-clause verdicts and detected gaps.
func tipsPrompt(req TipsRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Contract type: %s\n\nClause risks:\n", req.ContractType)
	for _, c := range req.ClauseSummary {
		fmt.Fprintf(&sb, "- %s (%s)\n", c.Title, c.RiskLevel)
	}

	sb.WriteString("\nMissing clauses:\n")
	if len(req.MissingClauses) == 0 {
		sb.WriteString("none\n")
	}
	for _, m := range req.MissingClauses {
		fmt.Fprintf(&sb, "- %s\n", m)
	}

	sb.WriteString(`
Provide:
1. A 3 bullet summary of overall risk posture.
2. 3-5 practical negotiation improvements.
Keep concise.
`)

	return sb.String()
}
