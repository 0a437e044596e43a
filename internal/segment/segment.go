// Package segment splits normalized contract text into ordered clause
// candidates. Boundaries are blank lines and numbered headings (1., 2.3,
// 7.1.2) at line start; a heading opens a new clause even without a
// preceding blank line. Segmentation is deterministic: no randomness, no
// external calls.
package segment

import (
	"regexp"
	"strings"
)

// headingPattern matches numbered section headings at line start: "1.",
// "2.3", "7.1.2 Termination". The trailing dot is optional on multi-level
// numbers.
var headingPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?(\s|$)`)

// Config controls clause boundary handling.
type Config struct {
	// MinClauseLength is the minimum rune count for a standalone clause.
	// Shorter fragments, such as a stray heading with no body, merge into
	// the following clause instead of being emitted.
	MinClauseLength int `toml:"min_clause_length"`

	// KeepPreamble attaches boilerplate preceding the first numbered
	// heading to the first clause. When false that text is dropped.
	KeepPreamble bool `toml:"keep_preamble"`
}

// DefaultConfig returns the segmentation defaults: 50-rune minimum clause
// length with preamble retained.
func DefaultConfig() Config {
	return Config{MinClauseLength: 50, KeepPreamble: true}
}

// Candidate is one raw clause segment in document order.
type Candidate struct {
	// Heading is the numbered heading line that opened the clause, empty
	// when the clause was delimited by blank lines only.
	Heading string

	// Text is the raw clause text, heading line included.
	Text string
}

// Split segments normalized contract text into ordered clause candidates.
// Consecutive blank lines collapse to a single boundary.
func Split(text string, cfg Config) []Candidate {
	blocks := splitBlocks(text)
	blocks = applyPreamblePolicy(blocks, cfg)
	return mergeShort(blocks, cfg.MinClauseLength)
}

type block struct {
	heading string
	lines   []string
}

func (b block) text() string {
	return strings.Join(b.lines, "\n")
}

func (b block) empty() bool {
	return len(b.lines) == 0
}

func splitBlocks(text string) []block {
	var (
		blocks  []block
		current block
	)

	flush := func() {
		if !current.empty() {
			blocks = append(blocks, current)
		}
		current = block{}
	}

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case headingPattern.MatchString(line):
			flush()
			current.heading = line
			current.lines = append(current.lines, line)
		default:
			current.lines = append(current.lines, line)
		}
	}
	flush()

	return blocks
}

// applyPreamblePolicy resolves blocks ahead of the first numbered heading.
// When the document contains no headings at all, blank-line blocks stand as
// clauses on their own and the policy does not apply.
func applyPreamblePolicy(blocks []block, cfg Config) []block {
	first := firstHeading(blocks)
	if first <= 0 {
		return blocks
	}

	if !cfg.KeepPreamble {
		return blocks[first:]
	}

	merged := blocks[0]
	for _, b := range blocks[1 : first+1] {
		merged.heading = b.heading
		merged.lines = append(merged.lines, b.lines...)
	}
	return append([]block{merged}, blocks[first+1:]...)
}

func firstHeading(blocks []block) int {
	for i, b := range blocks {
		if b.heading != "" {
			return i
		}
	}
	return -1
}

// mergeShort folds fragments below the length threshold into the clause that
// follows them; a short trailing fragment folds backward instead so no text
// is lost.
func mergeShort(blocks []block, minLen int) []Candidate {
	var out []Candidate

	var pending *block
	for i := range blocks {
		b := blocks[i]
		if pending != nil {
			if b.heading == "" {
				b.heading = pending.heading
			}
			b.lines = append(append([]string{}, pending.lines...), b.lines...)
			pending = nil
		}

		if len([]rune(strings.TrimSpace(b.text()))) < minLen && i < len(blocks)-1 {
			pending = &b
			continue
		}

		out = append(out, Candidate{Heading: b.heading, Text: b.text()})
	}

	if len(out) >= 2 {
		last := len(out) - 1
		if len([]rune(strings.TrimSpace(out[last].Text))) < minLen {
			out[last-1].Text += "\n" + out[last].Text
			out = out[:last]
		}
	}

	return out
}
