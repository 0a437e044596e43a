package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openclause/gavel/pkg/formatting"
)

// Client is a chat-completions gateway speaking the OpenAI-compatible API.
// Transient failures (network errors, 429, 5xx) are retried up to the
// configured bound with doubling backoff before the call is reported as
// unavailable.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	maxRetries int
	backoff    time.Duration
	http       *http.Client
	logger     *slog.Logger
}

// NewClient creates an LLM gateway client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoffDuration(),
		http:       &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:     logger.With("gateway", "llm"),
	}
}

// Assess requests a risk verdict for one clause with its precedent context.
// The model reply is parsed as JSON, tolerating markdown fencing.
func (c *Client) Assess(ctx context.Context, req AssessRequest) (*Verdict, error) {
	content, err := c.complete(ctx, assessSystem, assessPrompt(req))
	if err != nil {
		return nil, err
	}

	verdict, err := formatting.Parse[Verdict](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return &verdict, nil
}

// Tips requests a negotiation summary for a completed analysis.
func (c *Client) Tips(ctx context.Context, req TipsRequest) (string, error) {
	content, err := c.complete(ctx, tipsSystem, tipsPrompt(req))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	backoff := c.backoff
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		content, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return content, nil
		}
		if !retryable {
			return "", err
		}

		lastErr = err
		c.logger.WarnContext(
			ctx, "chat attempt failed",
			"attempt", attempt+1,
			"error", err,
		)
	}

	return "", fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", false, fmt.Errorf("create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return "", true, fmt.Errorf("llm service returned %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		// a rejected request will not succeed on retry
		return "", false, fmt.Errorf("%w: %s", ErrBadResponse, resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", true, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", true, fmt.Errorf("%w: no choices", ErrBadResponse)
	}

	return parsed.Choices[0].Message.Content, false, nil
}
