package precedents

import (
	"math"
	"testing"
)

func TestFormatVector(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float64
		expected  string
	}{
		{"empty", nil, "[]"},
		{"single", []float64{0.5}, "[0.500000]"},
		{"multiple", []float64{1, -0.25, 0.123456}, "[1.000000,-0.250000,0.123456]"},
		{"rounds to six places", []float64{0.1234567}, "[0.123457]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatVector(tt.embedding); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseVector(t *testing.T) {
	vector, err := parseVector("[0.5,-0.25, 1]")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	expected := []float64{0.5, -0.25, 1}
	if len(vector) != len(expected) {
		t.Fatalf("got %d components, want %d", len(vector), len(expected))
	}
	for i, v := range vector {
		if math.Abs(v-expected[i]) > 1e-9 {
			t.Errorf("component %d: got %v, want %v", i, v, expected[i])
		}
	}
}

func TestParseVectorEmpty(t *testing.T) {
	vector, err := parseVector("[]")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if vector != nil {
		t.Errorf("expected nil vector, got %v", vector)
	}
}

func TestParseVectorMalformed(t *testing.T) {
	for _, raw := range []string{"", "0.5,0.25", "[0.5", "[a,b]"} {
		if _, err := parseVector(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	original := []float64{0.123456, -0.654321, 0}
	parsed, err := parseVector(formatVector(original))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	for i, v := range parsed {
		if math.Abs(v-original[i]) > 1e-6 {
			t.Errorf("component %d: got %v, want %v", i, v, original[i])
		}
	}
}
