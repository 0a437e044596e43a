// Package api assembles the API module with all domain systems and route
// registration.
package api

import (
	"net/http"

	"github.com/openclause/gavel/internal/config"
	"github.com/openclause/gavel/internal/infrastructure"
	"github.com/openclause/gavel/pkg/middleware"
	"github.com/openclause/gavel/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}

	domain := NewDomain(cfg, runtime)

	if err := domain.Start(infra.Lifecycle); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
