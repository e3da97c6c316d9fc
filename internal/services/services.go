package services

import (
	"context"
	"errors"

	"github.com/morzdz/todo-app/internal/models"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidTaskID = errors.New("invalid task id")
)

type TaskService interface {
	// ListTasks returns every task in store order. The slice is
	// never nil, so an empty collection yields an empty list.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask stores a new task and returns the stored record
	// with its assigned ID. An empty status defaults to pending.
	//
	// Text is not validated; a blank task is accepted.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask merges the present fields into the task and returns
	// the stored result.
	//
	// It returns ErrTaskNotFound if no task has the given ID or
	// ErrInvalidTaskID if the ID is malformed.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task. Deleting a missing task succeeds.
	//
	// It returns ErrInvalidTaskID if the ID is malformed.
	DeleteTask(ctx context.Context, id string) error
}

type CreateTaskParams struct {
	Text   string
	Status string
}

type UpdateTaskParams struct {
	ID    string
	Patch models.TaskPatch
}
