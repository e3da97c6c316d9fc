// Package sqlite keeps task documents as JSON text in an embedded SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/storage"

	_ "modernc.org/sqlite"
)

type taskDocument struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

type Options struct {
	Path  string
	Table string
}

type collectionImpl struct {
	logger zerolog.Logger
	db     *sql.DB

	selectAllQuery string
	insertQuery    string
	updateQuery    string
	deleteQuery    string
}

// Open opens (creating if needed) the database file at opts.Path.
func Open(ctx context.Context, logger zerolog.Logger, opts Options) (storage.Collection, error) {
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Writers serialize on a single connection.
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	t := quoteIdentifier(opts.Table)
	createTableQuery := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id  TEXT NOT NULL UNIQUE,
    doc TEXT NOT NULL
)`, t)
	_, err = db.ExecContext(ctx, createTableQuery)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table %s: %w", opts.Table, err)
	}
	logger.Info().
		Str("path", opts.Path).
		Str("table", opts.Table).
		Msg("opened sqlite")

	return &collectionImpl{
		logger:         logger,
		db:             db,
		selectAllQuery: fmt.Sprintf(`SELECT id, doc FROM %s ORDER BY seq`, t),
		insertQuery:    fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, t),
		updateQuery:    fmt.Sprintf(`UPDATE %s SET doc = json_patch(doc, ?) WHERE id = ? RETURNING doc`, t),
		deleteQuery:    fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t),
	}, nil
}

func (c *collectionImpl) FindAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := c.db.QueryContext(ctx, c.selectAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		task, err := decodeTask(id, raw)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *collectionImpl) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	raw, err := json.Marshal(taskDocument{Text: task.Text, Status: task.Status})
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = c.db.ExecContext(ctx, c.insertQuery, id, string(raw))
	if err != nil {
		return nil, err
	}
	return &models.Task{ID: id, Text: task.Text, Status: task.Status}, nil
}

func (c *collectionImpl) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	fields, err := json.Marshal(patch.Fields())
	if err != nil {
		return nil, err
	}

	var raw string
	err = c.db.QueryRowContext(ctx, c.updateQuery, string(fields), id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return decodeTask(id, raw)
}

func (c *collectionImpl) DeleteByID(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	res, err := c.db.ExecContext(ctx, c.deleteQuery, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	c.logger.Debug().
		Str("id", id).
		Int64("deleted", n).
		Msg("deleted document")
	return nil
}

func (c *collectionImpl) Close(context.Context) error {
	return c.db.Close()
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return nil
}

func decodeTask(id, raw string) (*models.Task, error) {
	var doc taskDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &models.Task{ID: id, Text: doc.Text, Status: doc.Status}, nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
