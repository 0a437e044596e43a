package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client is an OpenAI-compatible embeddings gateway. Transient failures
// (network errors, 429, 5xx) are retried up to the configured bound with
// doubling backoff before the call is reported as unavailable.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	maxRetries int
	backoff    time.Duration
	http       *http.Client
	logger     *slog.Logger
}

// NewClient creates an embeddings client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoffDuration(),
		http:       &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:     logger.With("gateway", "embedding"),
	}
}

func (c *Client) Dimension() int {
	return c.dimension
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed requests an embedding vector for text, L2-normalized for cosine
// scoring against the retrieval index.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(embedRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	backoff := c.backoff
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		vector, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return vector, nil
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		c.logger.WarnContext(
			ctx, "embed attempt failed",
			"attempt", attempt+1,
			"error", err,
		)
	}

	return nil, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *Client) attempt(ctx context.Context, body []byte) ([]float64, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/embeddings",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, false, fmt.Errorf("create embed request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("embedding service returned %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		// a rejected request will not succeed on retry
		return nil, false, fmt.Errorf("%w: %s", ErrBadResponse, resp.Status)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if len(parsed.Data) == 0 {
		return nil, true, fmt.Errorf("%w: empty data", ErrBadResponse)
	}

	vector := parsed.Data[0].Embedding
	if len(vector) != c.dimension {
		return nil, false, fmt.Errorf(
			"%w: got %d elements, expected %d",
			ErrBadResponse, len(vector), c.dimension,
		)
	}

	return NormalizeL2(vector), false, nil
}
