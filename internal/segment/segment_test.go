package segment_test

import (
	"strings"
	"testing"

	"github.com/openclause/gavel/internal/segment"
)

const contract = `This Agreement is made between the parties identified below.

1. Termination
Either party may terminate this agreement with sixty days written notice to the other party.

2. Confidentiality
The receiving party shall not disclose confidential information to any third party during the term.`

func TestSplitHeadings(t *testing.T) {
	got := segment.Split(contract, segment.DefaultConfig())

	if len(got) != 2 {
		t.Fatalf("clauses: got %d, want 2", len(got))
	}

	if got[0].Heading != "1. Termination" {
		t.Errorf("heading: got %q", got[0].Heading)
	}
	if got[1].Heading != "2. Confidentiality" {
		t.Errorf("heading: got %q", got[1].Heading)
	}

	// preamble attaches to the first clause by default
	if !strings.Contains(got[0].Text, "This Agreement is made") {
		t.Errorf("preamble missing from first clause: %q", got[0].Text)
	}
}

func TestSplitDropPreamble(t *testing.T) {
	cfg := segment.DefaultConfig()
	cfg.KeepPreamble = false

	got := segment.Split(contract, cfg)

	if len(got) != 2 {
		t.Fatalf("clauses: got %d, want 2", len(got))
	}
	if strings.Contains(got[0].Text, "This Agreement is made") {
		t.Errorf("preamble retained despite KeepPreamble=false: %q", got[0].Text)
	}
}

func TestSplitContentPreserved(t *testing.T) {
	got := segment.Split(contract, segment.DefaultConfig())

	var joined strings.Builder
	for _, c := range got {
		joined.WriteString(c.Text)
		joined.WriteString("\n")
	}

	for _, want := range []string{
		"sixty days written notice",
		"shall not disclose confidential information",
		"This Agreement is made between the parties",
	} {
		if !strings.Contains(joined.String(), want) {
			t.Errorf("content lost after segmentation: %q", want)
		}
	}
}

func TestSplitBlankLineBoundaries(t *testing.T) {
	text := "The provider shall maintain insurance coverage for the duration of the engagement period.\n\n\n" +
		"All invoices are payable within forty five days of receipt by the customer's accounting team."

	got := segment.Split(text, segment.DefaultConfig())

	if len(got) != 2 {
		t.Fatalf("clauses: got %d, want 2", len(got))
	}
	for _, c := range got {
		if c.Heading != "" {
			t.Errorf("unexpected heading without numbered lines: %q", c.Heading)
		}
	}
}

func TestSplitHeadingWithoutBlankLine(t *testing.T) {
	text := "1. Payment\nAll fees are due within thirty days of the invoice date without deduction or setoff.\n" +
		"2. Notices\nAny notice under this agreement must be delivered in writing to the registered address."

	got := segment.Split(text, segment.DefaultConfig())

	if len(got) != 2 {
		t.Fatalf("clauses: got %d, want 2", len(got))
	}
}

func TestSplitMergesShortFragments(t *testing.T) {
	text := "7.1\n\nThe contractor shall indemnify the client against all third party claims arising from negligence."

	got := segment.Split(text, segment.DefaultConfig())

	if len(got) != 1 {
		t.Fatalf("clauses: got %d, want 1", len(got))
	}
	if got[0].Heading != "7.1" {
		t.Errorf("heading: got %q, want 7.1", got[0].Heading)
	}
	if !strings.Contains(got[0].Text, "indemnify the client") {
		t.Errorf("merged body missing: %q", got[0].Text)
	}
}

func TestSplitShortTrailingFoldsBackward(t *testing.T) {
	text := "1. Term\nThis agreement remains in force for a period of two years from the effective date stated above.\n\nSigned."

	got := segment.Split(text, segment.DefaultConfig())

	if len(got) != 1 {
		t.Fatalf("clauses: got %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Text, "Signed.") {
		t.Errorf("trailing fragment lost: %q", got[0].Text)
	}
}

func TestSplitDeterministic(t *testing.T) {
	first := segment.Split(contract, segment.DefaultConfig())

	for range 10 {
		again := segment.Split(contract, segment.DefaultConfig())
		if len(again) != len(first) {
			t.Fatalf("clause count changed between runs: %d vs %d", len(again), len(first))
		}
		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("clause %d changed between runs", i)
			}
		}
	}
}

func TestSplitEmptyText(t *testing.T) {
	if got := segment.Split("", segment.DefaultConfig()); len(got) != 0 {
		t.Errorf("clauses from empty text: got %d, want 0", len(got))
	}
}
