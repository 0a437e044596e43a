package api

import (
	"net/http"

	"github.com/openclause/gavel/internal/config"
	"github.com/openclause/gavel/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Contracts.Handler(
			domain.Pipeline.Extract,
			cfg.API.MaxUploadSizeBytes(),
			domain.Policy.ContractTypes(),
		).Routes(),
	)

	routes.Register(mux, domain.Precedents.Handler().Routes())
	routes.Register(mux, domain.Reports.Handler().Routes())
}
