package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/openclause/gavel/internal/vectorindex"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clientFor(t *testing.T, url string) *Client {
	t.Helper()

	cfg := Config{
		BaseURL:      url,
		Model:        "llama3.1",
		Timeout:      "5s",
		MaxRetries:   2,
		RetryBackoff: "1ms",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return NewClient(&cfg, testLogger())
}

func chatReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func assessReq() AssessRequest {
	return AssessRequest{
		ContractType: "Employment",
		Title:        "Termination Clause",
		ClauseText:   "Either party may terminate with ten days notice.",
		Precedents: []vectorindex.Match{
			{ID: "p1", Text: "terminate with 60 days notice", Score: 0.91},
		},
	}
}

func TestAssess(t *testing.T) {
	var gotUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("messages: got %d, want 2", len(req.Messages))
		}
		gotUser = req.Messages[1].Content

		chatReply(w, `{"risk_level": "High", "explanation": "notice period far below precedent"}`)
	}))
	defer srv.Close()

	verdict, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if err != nil {
		t.Fatal(err)
	}

	if verdict.RiskLevel != "High" {
		t.Errorf("risk level: got %s", verdict.RiskLevel)
	}

	for _, want := range []string{
		"Contract Type: Employment",
		"Either party may terminate with ten days notice.",
		"terminate with 60 days notice",
	} {
		if !strings.Contains(gotUser, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAssessToleratesMarkdownFencing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "```json\n{\"risk_level\": \"Medium\", \"explanation\": \"ambiguous\"}\n```")
	}))
	defer srv.Close()

	verdict, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if err != nil {
		t.Fatal(err)
	}
	if verdict.RiskLevel != "Medium" {
		t.Errorf("risk level: got %s", verdict.RiskLevel)
	}
}

func TestAssessBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "I think this clause looks risky.")
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("error: got %v, want ErrBadResponse", err)
	}
}

func TestAssessRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		chatReply(w, `{"risk_level": "Low", "explanation": "standard"}`)
	}))
	defer srv.Close()

	verdict, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls: got %d, want 2", calls.Load())
	}
	if verdict.RiskLevel != "Low" {
		t.Errorf("risk level: got %s", verdict.RiskLevel)
	}
}

func TestAssessUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error: got %v, want ErrUnavailable", err)
	}
}

func TestTips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "  Negotiate a cure period.\n")
	}))
	defer srv.Close()

	tips, err := clientFor(t, srv.URL).Tips(context.Background(), TipsRequest{
		ContractType: "NDA",
		ClauseSummary: []ClauseLine{
			{Title: "Confidentiality Clause", RiskLevel: "Low"},
		},
		MissingClauses: []string{"Termination Clause"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if tips != "Negotiate a cure period." {
		t.Errorf("tips: got %q", tips)
	}
}

func TestAssessPrompt(t *testing.T) {
	prompt := assessPrompt(assessReq())

	for _, want := range []string{
		"Termination Clause",
		"similarity: 0.9100",
		`{"risk_level": "Low" | "Medium" | "High"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	empty := assessPrompt(AssessRequest{ContractType: "NDA", Title: "x", ClauseText: "y"})
	if !strings.Contains(empty, "No similar precedent clauses found.") {
		t.Error("prompt missing empty-precedent note")
	}
}

func TestTipsPrompt(t *testing.T) {
	prompt := tipsPrompt(TipsRequest{
		ContractType:   "Service",
		ClauseSummary:  []ClauseLine{{Title: "Liability Clause", RiskLevel: "High"}},
		MissingClauses: []string{"Governing Law Clause"},
	})

	for _, want := range []string{
		"Liability Clause (High)",
		"- Governing Law Clause",
		"negotiation improvements",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAssessRejectedRequest(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv.URL).Assess(context.Background(), assessReq())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("error: got %v, want ErrBadResponse", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Error("a rejected request must not report the service unavailable")
	}
	if calls.Load() != 1 {
		t.Errorf("calls: got %d, want 1 (rejections are not retried)", calls.Load())
	}
}
