package config

import (
	"fmt"
	"os"
	"time"

	"github.com/openclause/gavel/internal/embedding"
	"github.com/openclause/gavel/internal/llm"
	"github.com/openclause/gavel/internal/pipeline"
	"github.com/openclause/gavel/pkg/database"
	"github.com/openclause/gavel/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGavelEnv             = "GAVEL_ENV"
	EnvGavelShutdownTimeout = "GAVEL_SHUTDOWN_TIMEOUT"
	EnvGavelVersion         = "GAVEL_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "GAVEL_DB_HOST",
	Port:            "GAVEL_DB_PORT",
	Name:            "GAVEL_DB_NAME",
	User:            "GAVEL_DB_USER",
	Password:        "GAVEL_DB_PASSWORD",
	SSLMode:         "GAVEL_DB_SSL_MODE",
	MaxOpenConns:    "GAVEL_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GAVEL_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GAVEL_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GAVEL_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "GAVEL_STORAGE_CONTAINER_NAME",
	ConnectionString: "GAVEL_STORAGE_CONNECTION_STRING",
}

var embeddingEnv = &embedding.Env{
	BaseURL:      "GAVEL_EMBEDDING_BASE_URL",
	APIKey:       "GAVEL_EMBEDDING_API_KEY",
	Model:        "GAVEL_EMBEDDING_MODEL",
	Dimension:    "GAVEL_EMBEDDING_DIMENSION",
	Timeout:      "GAVEL_EMBEDDING_TIMEOUT",
	MaxRetries:   "GAVEL_EMBEDDING_MAX_RETRIES",
	RetryBackoff: "GAVEL_EMBEDDING_RETRY_BACKOFF",
}

var llmEnv = &llm.Env{
	BaseURL:      "GAVEL_LLM_BASE_URL",
	APIKey:       "GAVEL_LLM_API_KEY",
	Model:        "GAVEL_LLM_MODEL",
	MaxTokens:    "GAVEL_LLM_MAX_TOKENS",
	Timeout:      "GAVEL_LLM_TIMEOUT",
	MaxRetries:   "GAVEL_LLM_MAX_RETRIES",
	RetryBackoff: "GAVEL_LLM_RETRY_BACKOFF",
}

var pipelineEnv = &pipeline.Env{
	TopK:                "GAVEL_PIPELINE_TOP_K",
	SimilarityThreshold: "GAVEL_PIPELINE_SIMILARITY_THRESHOLD",
	Concurrency:         "GAVEL_PIPELINE_CONCURRENCY",
	Strict:              "GAVEL_PIPELINE_STRICT",
	RunTimeout:          "GAVEL_PIPELINE_RUN_TIMEOUT",
	MinClauseLength:     "GAVEL_PIPELINE_MIN_CLAUSE_LENGTH",
	DropPreamble:        "GAVEL_PIPELINE_DROP_PREAMBLE",
}

// Config is the root configuration for the Gavel service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	API             APIConfig        `toml:"api"`
	Embedding       embedding.Config `toml:"embedding"`
	LLM             llm.Config       `toml:"llm"`
	Pipeline        pipeline.Config  `toml:"pipeline"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the GAVEL_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGavelEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Embedding.Merge(&overlay.Embedding)
	c.LLM.Merge(&overlay.LLM)
	c.Pipeline.Merge(&overlay.Pipeline)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Embedding.Finalize(embeddingEnv); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}
	if err := c.LLM.Finalize(llmEnv); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}
func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvGavelShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGavelVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGavelEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
