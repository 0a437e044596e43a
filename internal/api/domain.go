package api

import (
	"github.com/openclause/gavel/internal/config"
	"github.com/openclause/gavel/internal/contracts"
	"github.com/openclause/gavel/internal/pipeline"
	"github.com/openclause/gavel/internal/precedents"
	"github.com/openclause/gavel/internal/reports"
	"github.com/openclause/gavel/internal/risk"
	"github.com/openclause/gavel/pkg/lifecycle"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Precedents precedents.System
	Contracts  contracts.System
	Reports    reports.System
	Pipeline   *pipeline.Orchestrator
	Policy     risk.Policy
}

// NewDomain creates all domain systems from the API runtime. The precedent
// system doubles as the pipeline's retrieval index source.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	policy := risk.DefaultPolicy()

	precedentSys := precedents.New(
		runtime.Database.Connection(),
		runtime.Embedder,
		runtime.Logger,
	)

	orchestrator := pipeline.New(
		cfg.Pipeline,
		runtime.Embedder,
		runtime.Assessor,
		precedentSys,
		policy,
		runtime.Logger,
	)

	contractSys := contracts.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
	)

	reportSys := reports.New(
		runtime.Database.Connection(),
		contractSys,
		orchestrator,
		runtime.Logger,
	)

	return &Domain{
		Precedents: precedentSys,
		Contracts:  contractSys,
		Reports:    reportSys,
		Pipeline:   orchestrator,
		Policy:     policy,
	}
}

// Start registers domain startup hooks, building the retrieval index once
// the database connection is available.
func (d *Domain) Start(lc *lifecycle.Coordinator) error {
	return d.Precedents.Start(lc)
}
