// Package storage defines the document collection the task server persists into.
package storage

import (
	"context"
	"errors"

	"github.com/morzdz/todo-app/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// Collection is a single named collection of task documents.
//
// Implementations assign identifiers on Insert and keep insertion
// order on FindAll. Every operation is atomic for one document only.
type Collection interface {
	// FindAll returns every document in insertion order.
	FindAll(ctx context.Context) ([]*models.Task, error)

	// Insert stores a new document and returns it with its assigned ID.
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)

	// UpdateByID merges the present patch fields into the document and
	// returns the result. It returns ErrNotFound if no document has the
	// given id or ErrInvalidID if the id is not in the native format.
	UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)

	// DeleteByID removes the document if it exists. A missing document is
	// not an error; a malformed id is ErrInvalidID.
	DeleteByID(ctx context.Context, id string) error

	Close(ctx context.Context) error
}
