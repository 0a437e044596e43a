package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/openclause/gavel/internal/segment"
)

// Config holds pipeline execution parameters.
type Config struct {
	// TopK is the number of precedent matches retrieved per clause.
	TopK int `toml:"top_k"`

	// SimilarityThreshold is the minimum cosine similarity for a retrieved
	// precedent to be forwarded to the LLM gateway.
	SimilarityThreshold float64 `toml:"similarity_threshold"`

	// Concurrency bounds in-flight clause assessments per run.
	Concurrency int `toml:"concurrency"`

	// Strict fails the whole run on any clause assessment failure instead
	// of substituting a degraded assessment.
	Strict bool `toml:"strict"`

	// RunTimeout bounds a whole analysis run. Clauses still pending at the
	// deadline receive degraded assessments.
	RunTimeout string `toml:"run_timeout"`

	MinClauseLength int `toml:"min_clause_length"`

	// DropPreamble discards boilerplate ahead of the first numbered heading
	// instead of attaching it to the first clause.
	DropPreamble bool `toml:"drop_preamble"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TopK                string
	SimilarityThreshold string
	Concurrency         string
	Strict              string
	RunTimeout          string
	MinClauseLength     string
	DropPreamble        string
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *Config) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// SegmentConfig returns the segmentation settings carried by this config.
func (c *Config) SegmentConfig() segment.Config {
	return segment.Config{
		MinClauseLength: c.MinClauseLength,
		KeepPreamble:    !c.DropPreamble,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Boolean fields merge with
// OR because false is the zero value.
func (c *Config) Merge(overlay *Config) {
	if overlay.TopK != 0 {
		c.TopK = overlay.TopK
	}
	if overlay.SimilarityThreshold != 0 {
		c.SimilarityThreshold = overlay.SimilarityThreshold
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
	c.Strict = c.Strict || overlay.Strict
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
	if overlay.MinClauseLength != 0 {
		c.MinClauseLength = overlay.MinClauseLength
	}
	c.DropPreamble = c.DropPreamble || overlay.DropPreamble
}

func (c *Config) loadDefaults() {
	if c.TopK == 0 {
		c.TopK = 2
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = 0.45
	}
	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
	if c.RunTimeout == "" {
		c.RunTimeout = "2m"
	}
	if c.MinClauseLength == 0 {
		c.MinClauseLength = 50
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.TopK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopK = n
		}
	}
	if v := os.Getenv(env.SimilarityThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SimilarityThreshold = f
		}
	}
	if v := os.Getenv(env.Concurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv(env.Strict); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Strict = b
		}
	}
	if v := os.Getenv(env.RunTimeout); v != "" {
		c.RunTimeout = v
	}
	if v := os.Getenv(env.MinClauseLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinClauseLength = n
		}
	}
	if v := os.Getenv(env.DropPreamble); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DropPreamble = b
		}
	}
}

func (c *Config) validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("invalid top_k: %d", c.TopK)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if _, err := time.ParseDuration(c.RunTimeout); err != nil {
		return fmt.Errorf("invalid run_timeout: %w", err)
	}
	return nil
}
