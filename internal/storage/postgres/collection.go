// Package postgres keeps task documents in a JSONB table, one row per document.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/storage"
)

type taskDocument struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

type Options struct {
	URL            string
	Table          string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

type collectionImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool

	selectAllQuery string
	insertQuery    string
	updateQuery    string
	deleteQuery    string
}

func Open(ctx context.Context, logger zerolog.Logger, opts Options) (storage.Collection, error) {
	poolCfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()

	err = pgPool.Ping(pingCtx)
	if err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	c := newCollection(logger, pgPool, opts.Table)
	err = c.migrate(ctx, opts.Table)
	if err != nil {
		pgPool.Close()
		return nil, err
	}
	logger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Str("table", opts.Table).
		Msg("connected to postgres")

	return c, nil
}

func newCollection(logger zerolog.Logger, pgPool *pgxpool.Pool, table string) *collectionImpl {
	t := pgx.Identifier{table}.Sanitize()
	return &collectionImpl{
		logger: logger,
		pgPool: pgPool,
		selectAllQuery: fmt.Sprintf(`
SELECT id::text, doc
FROM %s
ORDER BY seq
`, t),
		insertQuery: fmt.Sprintf(`
INSERT INTO %s (doc)
VALUES ($1)
RETURNING id::text
`, t),
		updateQuery: fmt.Sprintf(`
UPDATE %s
SET doc = doc || $2::jsonb
WHERE id = $1::text::uuid
RETURNING id::text, doc
`, t),
		deleteQuery: fmt.Sprintf(`
DELETE FROM %s
WHERE id = $1::text::uuid
`, t),
	}
}

func (c *collectionImpl) migrate(ctx context.Context, table string) error {
	createTableQuery := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id  uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    seq bigserial NOT NULL,
    doc jsonb NOT NULL
)
`, pgx.Identifier{table}.Sanitize())

	_, err := c.pgPool.Exec(ctx, createTableQuery)
	if err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func (c *collectionImpl) FindAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := c.pgPool.Query(ctx, c.selectAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var (
			id  string
			doc taskDocument
		)
		err = rows.Scan(&id, &doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &models.Task{ID: id, Text: doc.Text, Status: doc.Status})
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *collectionImpl) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	doc := taskDocument{Text: task.Text, Status: task.Status}

	var id string
	err := c.pgPool.QueryRow(ctx, c.insertQuery, doc).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &models.Task{ID: id, Text: doc.Text, Status: doc.Status}, nil
}

func (c *collectionImpl) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var (
		storedID string
		doc      taskDocument
	)
	err := c.pgPool.QueryRow(ctx, c.updateQuery, id, patch.Fields()).Scan(&storedID, &doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, translateError(err, id)
	}
	return &models.Task{ID: storedID, Text: doc.Text, Status: doc.Status}, nil
}

func (c *collectionImpl) DeleteByID(ctx context.Context, id string) error {
	tag, err := c.pgPool.Exec(ctx, c.deleteQuery, id)
	if err != nil {
		return translateError(err, id)
	}
	c.logger.Debug().
		Str("id", id).
		Int64("deleted", tag.RowsAffected()).
		Msg("deleted document")
	return nil
}

func (c *collectionImpl) Close(context.Context) error {
	c.pgPool.Close()
	return nil
}

// translateError maps a uuid cast failure to storage.ErrInvalidID.
func translateError(err error, id string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return err
}
