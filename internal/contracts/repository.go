package contracts

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/openclause/gavel/internal/extract"
	"github.com/openclause/gavel/pkg/repository"
	"github.com/openclause/gavel/pkg/storage"
)

const projection = `
	id, contract_type, filename, content_type, size_bytes,
	page_count, storage_key, status, uploaded_at, updated_at`

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a contract repository implementing the System interface.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "contracts"),
	}
}

func (r *repo) Handler(extract ClauseExtractor, maxUploadSize int64, contractTypes []string) *Handler {
	return NewHandler(r, extract, r.logger, maxUploadSize, contractTypes)
}

func (r *repo) List(ctx context.Context, contractType string) ([]Contract, error) {
	q := fmt.Sprintf("SELECT %s FROM contracts", projection)

	var args []any
	if contractType != "" {
		q += " WHERE contract_type = $1"
		args = append(args, contractType)
	}
	q += " ORDER BY uploaded_at DESC"

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanContract)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}
	return rows, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Contract, error) {
	q := fmt.Sprintf("SELECT %s FROM contracts WHERE id = $1", projection)

	c, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanContract)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Contract, error) {
	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload contract blob: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO contracts(id, contract_type, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, projection)

	insertArgs := []any{
		id,
		cmd.ContractType,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Contract, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanContract)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contract created", "id", c.ID, "filename", c.Filename)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM contracts WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, c.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", c.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("contract deleted", "id", id)
	return nil
}

func (r *repo) Text(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return "", err
	}

	reader, err := extract.ForContentType(c.ContentType)
	if err != nil {
		return "", fmt.Errorf("contract %s: %w", id, err)
	}

	body, err := r.storage.Download(ctx, c.StorageKey)
	if err != nil {
		return "", fmt.Errorf("download contract blob: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read contract blob: %w", err)
	}

	text, err := reader.Text(ctx, data)
	if err != nil {
		return "", fmt.Errorf("extract contract text: %w", err)
	}

	return extract.Normalize(text), nil
}

func (r *repo) MarkAnalyzed(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE contracts SET status = $1, updated_at = now() WHERE id = $2",
			StatusAnalyzed, id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func scanContract(s repository.Scanner) (Contract, error) {
	var c Contract
	err := s.Scan(
		&c.ID,
		&c.ContractType,
		&c.Filename,
		&c.ContentType,
		&c.SizeBytes,
		&c.PageCount,
		&c.StorageKey,
		&c.Status,
		&c.UploadedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("contracts/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "contract"
	}
	return url.PathEscape(name)
}
