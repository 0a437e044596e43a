package precedents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/classify"
	"github.com/openclause/gavel/internal/embedding"
	"github.com/openclause/gavel/internal/vectorindex"
	"github.com/openclause/gavel/pkg/lifecycle"
	"github.com/openclause/gavel/pkg/repository"
)

type repo struct {
	db       *sql.DB
	embedder embedding.Gateway
	logger   *slog.Logger
	index    atomic.Pointer[vectorindex.Index]
}

// New creates a precedent repository implementing the System interface.
func New(db *sql.DB, embedder embedding.Gateway, logger *slog.Logger) System {
	return &repo{
		db:       db,
		embedder: embedder,
		logger:   logger.With("system", "precedents"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting precedents system")

	lc.OnStartup(func() {
		if err := r.Rebuild(lc.Context()); err != nil {
			r.logger.Error("retrieval index build failed", "error", err)
			return
		}

		r.logger.Info("retrieval index ready", "entries", r.Index().Len())
	})

	return nil
}

func (r *repo) Search(ctx context.Context, query string, k int) ([]vectorindex.Match, error) {
	index := r.index.Load()
	if index == nil {
		return nil, ErrIndexUnavailable
	}
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidPrecedent)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := index.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return matches, nil
}

func (r *repo) List(ctx context.Context, contractType string) ([]Precedent, error) {
	q := `
		SELECT id, contract_type, clause_type, clause_text, inserted_seq, created_at
		FROM precedent_clauses`

	var args []any
	if contractType != "" {
		q += " WHERE contract_type = $1"
		args = append(args, contractType)
	}
	q += " ORDER BY inserted_seq"

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanPrecedent)
	if err != nil {
		return nil, fmt.Errorf("query precedents: %w", err)
	}
	return rows, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Precedent, error) {
	q := `
		SELECT id, contract_type, clause_type, clause_text, inserted_seq, created_at
		FROM precedent_clauses
		WHERE id = $1`

	p, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanPrecedent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Precedent, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	vector, err := r.embedder.Embed(ctx, cmd.Text)
	if err != nil {
		return nil, fmt.Errorf("embed precedent: %w", err)
	}

	q := `
		INSERT INTO precedent_clauses(id, contract_type, clause_type, clause_text, embedding)
		VALUES ($1, $2, $3, $4, $5::vector)
		RETURNING id, contract_type, clause_type, clause_text, inserted_seq, created_at`

	args := []any{
		uuid.New(),
		cmd.ContractType,
		string(cmd.ClauseType),
		cmd.Text,
		formatVector(vector),
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Precedent, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrecedent)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.Rebuild(ctx); err != nil {
		r.logger.Warn("index rebuild after create failed", "id", p.ID, "error", err)
	}

	r.logger.Info("precedent created", "id", p.ID, "clause_type", p.ClauseType)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM precedent_clauses WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.Rebuild(ctx); err != nil {
		r.logger.Warn("index rebuild after delete failed", "id", id, "error", err)
	}

	r.logger.Info("precedent deleted", "id", id)
	return nil
}

func (r *repo) Rebuild(ctx context.Context) error {
	q := `
		SELECT id, clause_type, clause_text, embedding::text
		FROM precedent_clauses
		ORDER BY inserted_seq`

	entries, err := repository.QueryMany(ctx, r.db, q, nil, scanEntry)
	if err != nil {
		return fmt.Errorf("load precedent embeddings: %w", err)
	}

	index, err := vectorindex.Build(r.embedder.Dimension(), entries)
	if err != nil {
		return fmt.Errorf("build retrieval index: %w", err)
	}

	r.index.Store(index)
	return nil
}

func (r *repo) Index() *vectorindex.Index {
	return r.index.Load()
}

func scanPrecedent(s repository.Scanner) (Precedent, error) {
	var p Precedent
	var clauseType string

	err := s.Scan(
		&p.ID,
		&p.ContractType,
		&clauseType,
		&p.Text,
		&p.InsertedSeq,
		&p.CreatedAt,
	)
	p.ClauseType = classify.Type(clauseType)
	return p, err
}

func scanEntry(s repository.Scanner) (vectorindex.Entry, error) {
	var e vectorindex.Entry
	var id uuid.UUID
	var raw string

	if err := s.Scan(&id, &e.ClauseType, &e.Text, &raw); err != nil {
		return e, err
	}

	vector, err := parseVector(raw)
	if err != nil {
		return e, fmt.Errorf("precedent %s: %w", id, err)
	}

	e.ID = id.String()
	e.Vector = vector
	return e, nil
}
