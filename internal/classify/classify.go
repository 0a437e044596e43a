package classify

import "strings"

// rule binds a clause type to its trigger phrases. Triggers are matched as
// case-insensitive substrings, so a stem like "indemnif" covers both
// "indemnify" and "indemnification".
type rule struct {
	clauseType Type
	triggers   []string
}

// rules is the immutable classification table, ordered by tie-break
// priority. Other carries no triggers and acts as the fallback.
var rules = []rule{
	{Termination, []string{"terminate", "termination", "expiry", "expiration"}},
	{Confidentiality, []string{"confidential", "non-disclosure", "nondisclosure", "proprietary information"}},
	{Liability, []string{"liability", "liable", "indemnif", "damages"}},
	{IntellectualProperty, []string{"intellectual property", "ip rights", "copyright", "trademark", "patent"}},
	{GoverningLaw, []string{"governing law", "governed by", "jurisdiction", "venue"}},
	{Notice, []string{"notice", "notify", "notification"}},
	{Assignment, []string{"assignment", "assign ", "assignee", "delegate"}},
	{Payment, []string{"payment", "salary", "fee", "compensation", "invoice", "amount"}},
}

// Result is the outcome of classifying one clause.
type Result struct {
	Type       Type
	Confidence float64
}

// Classify assigns a clause type and confidence to normalized clause text.
// Confidence is the fraction of the winning type's triggers present in the
// text, clamped to [0,1]. Text matching no triggers classifies as Other with
// confidence 0.
func Classify(text string) Result {
	lower := strings.ToLower(text)

	best := Result{Type: Other, Confidence: 0}
	bestCount := 0

	for _, r := range rules {
		count := 0
		for _, trigger := range r.triggers {
			if strings.Contains(lower, trigger) {
				count++
			}
		}
		// strictly greater, so earlier rules win ties
		if count > bestCount {
			bestCount = count
			best = Result{
				Type:       r.clauseType,
				Confidence: confidence(count, len(r.triggers)),
			}
		}
	}

	return best
}

func confidence(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	c := float64(matched) / float64(total)
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}
