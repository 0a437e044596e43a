package vectorindex_test

import (
	"errors"
	"testing"

	"github.com/openclause/gavel/internal/vectorindex"
)

func entries() []vectorindex.Entry {
	return []vectorindex.Entry{
		{ID: "a", ClauseType: "Payment", Text: "first", Vector: []float64{1, 0, 0}},
		{ID: "b", ClauseType: "Payment", Text: "second", Vector: []float64{0, 1, 0}},
		{ID: "c", ClauseType: "Termination", Text: "third", Vector: []float64{0.8, 0.6, 0}},
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	_, err := vectorindex.Build(3, []vectorindex.Entry{
		{ID: "a", Vector: []float64{1, 0}},
	})
	if !errors.Is(err, vectorindex.ErrDimensionMismatch) {
		t.Fatalf("error: got %v, want ErrDimensionMismatch", err)
	}
}

func TestBuildInvalidDimension(t *testing.T) {
	_, err := vectorindex.Build(0, nil)
	if !errors.Is(err, vectorindex.ErrInvalidDimension) {
		t.Fatalf("error: got %v, want ErrInvalidDimension", err)
	}
}

func TestSearchRanking(t *testing.T) {
	ix, err := vectorindex.Build(3, entries())
	if err != nil {
		t.Fatal(err)
	}

	matches, err := ix.Search([]float64{1, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(matches))
	}
	if matches[0].ID != "a" {
		t.Errorf("top match: got %s, want a", matches[0].ID)
	}
	if matches[1].ID != "c" {
		t.Errorf("second match: got %s, want c", matches[1].ID)
	}
	if matches[0].Score < matches[1].Score {
		t.Errorf("scores not descending: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestSearchResultCount(t *testing.T) {
	ix, err := vectorindex.Build(3, entries())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"k below corpus size", 2, 2},
		{"k equals corpus size", 3, 3},
		{"k beyond corpus size", 10, 3},
		{"k zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := ix.Search([]float64{1, 1, 0}, tt.k)
			if err != nil {
				t.Fatal(err)
			}
			if len(matches) != tt.want {
				t.Errorf("matches: got %d, want %d", len(matches), tt.want)
			}
		})
	}
}

func TestSearchTiesPreserveInsertionOrder(t *testing.T) {
	ix, err := vectorindex.Build(2, []vectorindex.Entry{
		{ID: "first", Vector: []float64{1, 0}},
		{ID: "second", Vector: []float64{1, 0}},
		{ID: "third", Vector: []float64{1, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}

	matches, err := ix.Search([]float64{1, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "third"}
	for i, m := range matches {
		if m.ID != want[i] {
			t.Errorf("match %d: got %s, want %s", i, m.ID, want[i])
		}
	}
}

func TestSearchQueryDimensionMismatch(t *testing.T) {
	ix, err := vectorindex.Build(3, entries())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ix.Search([]float64{1, 0}, 2); !errors.Is(err, vectorindex.ErrDimensionMismatch) {
		t.Fatalf("error: got %v, want ErrDimensionMismatch", err)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix, err := vectorindex.Build(3, nil)
	if err != nil {
		t.Fatal(err)
	}

	matches, err := ix.Search([]float64{1, 0, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("matches from empty index: got %d, want 0", len(matches))
	}
}

func TestSearchZeroVector(t *testing.T) {
	ix, err := vectorindex.Build(3, entries())
	if err != nil {
		t.Fatal(err)
	}

	matches, err := ix.Search([]float64{0, 0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range matches {
		if m.Score != 0 {
			t.Errorf("zero query similarity: got %v, want 0", m.Score)
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	ix, err := vectorindex.Build(3, entries())
	if err != nil {
		t.Fatal(err)
	}

	first, err := ix.Search([]float64{0.5, 0.5, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}

	for range 10 {
		again, err := ix.Search([]float64{0.5, 0.5, 0}, 3)
		if err != nil {
			t.Fatal(err)
		}
		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("match %d changed between runs", i)
			}
		}
	}
}
