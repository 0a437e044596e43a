package embedding_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openclause/gavel/internal/embedding"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clientFor(t *testing.T, url string) *embedding.Client {
	t.Helper()

	cfg := embedding.Config{
		BaseURL:      url,
		Model:        "all-minilm",
		Dimension:    3,
		Timeout:      "5s",
		MaxRetries:   2,
		RetryBackoff: "1ms",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return embedding.NewClient(&cfg, testLogger())
}

func respond(w http.ResponseWriter, vector []float64) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data": []map[string]any{{"embedding": vector}},
	})
}

func TestEmbed(t *testing.T) {
	var gotModel, gotInput string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path: got %s", r.URL.Path)
		}

		var req struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		gotModel, gotInput = req.Model, req.Input

		respond(w, []float64{3, 4, 0})
	}))
	defer srv.Close()

	vector, err := clientFor(t, srv.URL).Embed(context.Background(), "termination clause")
	if err != nil {
		t.Fatal(err)
	}

	if gotModel != "all-minilm" || gotInput != "termination clause" {
		t.Errorf("request: model %q input %q", gotModel, gotInput)
	}

	// response is L2-normalized
	want := []float64{0.6, 0.8, 0}
	for i := range want {
		if math.Abs(vector[i]-want[i]) > 1e-9 {
			t.Errorf("vector[%d]: got %v, want %v", i, vector[i], want[i])
		}
	}
}

func TestEmbedEmptyText(t *testing.T) {
	_, err := clientFor(t, "http://unused").Embed(context.Background(), "")
	if !errors.Is(err, embedding.ErrEmptyText) {
		t.Fatalf("error: got %v, want ErrEmptyText", err)
	}
}

func TestEmbedRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		respond(w, []float64{1, 0, 0})
	}))
	defer srv.Close()

	vector, err := clientFor(t, srv.URL).Embed(context.Background(), "clause")
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls: got %d, want 3", calls.Load())
	}
	if len(vector) != 3 {
		t.Errorf("vector length: got %d", len(vector))
	}
}

func TestEmbedExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Embed(context.Background(), "clause")
	if !errors.Is(err, embedding.ErrUnavailable) {
		t.Fatalf("error: got %v, want ErrUnavailable", err)
	}
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, []float64{1, 0})
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Embed(context.Background(), "clause")
	if !errors.Is(err, embedding.ErrBadResponse) {
		t.Fatalf("error: got %v, want ErrBadResponse", err)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := embedding.NormalizeL2([]float64{3, 4})
	if math.Abs(v[0]-0.6) > 1e-9 || math.Abs(v[1]-0.8) > 1e-9 {
		t.Errorf("normalized: got %v", v)
	}

	zero := embedding.NormalizeL2([]float64{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed: %v", zero)
	}
}

func TestEmbedRejectedRequest(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Embed(context.Background(), "clause")
	if !errors.Is(err, embedding.ErrBadResponse) {
		t.Fatalf("error: got %v, want ErrBadResponse", err)
	}
	if errors.Is(err, embedding.ErrUnavailable) {
		t.Error("a rejected request must not report the service unavailable")
	}
	if calls.Load() != 1 {
		t.Errorf("calls: got %d, want 1 (rejections are not retried)", calls.Load())
	}
}
