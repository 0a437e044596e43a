package api

import (
	"github.com/openclause/gavel/internal/config"
	"github.com/openclause/gavel/internal/embedding"
	"github.com/openclause/gavel/internal/infrastructure"
	"github.com/openclause/gavel/internal/llm"
)

// Runtime extends Infrastructure with the external inference gateways the
// analysis pipeline depends on.
type Runtime struct {
	*infrastructure.Infrastructure
	Embedder embedding.Gateway
	Assessor llm.Gateway
}

// NewRuntime creates an API runtime with a module-scoped logger and
// configured gateway clients.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Embedder: embedding.NewClient(&cfg.Embedding, logger),
		Assessor: llm.NewClient(&cfg.LLM, logger),
	}, nil
}
