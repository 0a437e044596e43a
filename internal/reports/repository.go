package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/contracts"
	"github.com/openclause/gavel/internal/pipeline"
	"github.com/openclause/gavel/internal/risk"
	"github.com/openclause/gavel/pkg/repository"
)

type repo struct {
	db        *sql.DB
	contracts contracts.System
	pipeline  *pipeline.Orchestrator
	logger    *slog.Logger
}

// New creates a report repository implementing the System interface.
func New(
	db *sql.DB,
	contractSys contracts.System,
	orchestrator *pipeline.Orchestrator,
	logger *slog.Logger,
) System {
	return &repo{
		db:        db,
		contracts: contractSys,
		pipeline:  orchestrator,
		logger:    logger.With("system", "reports"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Analyze(ctx context.Context, contractID uuid.UUID) (*Report, error) {
	contract, err := r.contracts.Find(ctx, contractID)
	if err != nil {
		return nil, err
	}

	text, err := r.contracts.Text(ctx, contractID)
	if err != nil {
		return nil, err
	}

	result, err := r.pipeline.AnalyzeContract(ctx, contract.ContractType, text)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	q := `
		INSERT INTO reports(id, contract_id, report)
		VALUES ($1, $2, $3)
		RETURNING id, contract_id, report, created_at`

	args := []any{uuid.New(), contractID, payload}

	report, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, args, scanReport)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.contracts.MarkAnalyzed(ctx, contractID); err != nil {
		r.logger.Warn("contract status update failed", "contract_id", contractID, "error", err)
	}

	r.logger.Info(
		"report created",
		"id", report.ID,
		"contract_id", contractID,
		"overall_risk_index", result.OverallRiskIndex,
	)
	return &report, nil
}

func (r *repo) Preview(ctx context.Context, cmd PreviewCommand) (*risk.ContractReport, error) {
	if cmd.ContractType == "" || cmd.Text == "" {
		return nil, ErrInvalidRequest
	}
	return r.pipeline.AnalyzeContract(ctx, cmd.ContractType, cmd.Text)
}

func (r *repo) List(ctx context.Context, contractID uuid.UUID) ([]Report, error) {
	q := `
		SELECT id, contract_id, report, created_at
		FROM reports`

	var args []any
	if contractID != uuid.Nil {
		q += " WHERE contract_id = $1"
		args = append(args, contractID)
	}
	q += " ORDER BY created_at DESC"

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return rows, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q := `
		SELECT id, contract_id, report, created_at
		FROM reports
		WHERE id = $1`

	report, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &report, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

func scanReport(s repository.Scanner) (Report, error) {
	var report Report
	var payload []byte

	if err := s.Scan(&report.ID, &report.ContractID, &payload, &report.CreatedAt); err != nil {
		return report, err
	}

	if err := json.Unmarshal(payload, &report.Report); err != nil {
		return report, fmt.Errorf("decode report payload: %w", err)
	}
	return report, nil
}
