// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/storage"
)

// FakeCollection is an in-memory implementation of storage.Collection for testing.
// IDs are decimal sequence numbers; anything else is treated as malformed.
type FakeCollection struct {
	mu     sync.RWMutex
	nextID int
	tasks  []models.Task

	// Error injection for testing
	FindAllErr error
	InsertErr  error
	UpdateErr  error
	DeleteErr  error
}

func NewFakeCollection() *FakeCollection {
	return &FakeCollection{nextID: 1}
}

// AddTask stores a task directly and returns its ID.
func (f *FakeCollection) AddTask(text, status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(text, status)
}

// Tasks returns a snapshot of the stored tasks.
func (f *FakeCollection) Tasks() []models.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.Task(nil), f.tasks...)
}

func (f *FakeCollection) FindAll(ctx context.Context) ([]*models.Task, error) {
	if f.FindAllErr != nil {
		return nil, f.FindAllErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks := make([]*models.Task, len(f.tasks))
	for i := range f.tasks {
		task := f.tasks[i]
		tasks[i] = &task
	}
	return tasks, nil
}

func (f *FakeCollection) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.InsertErr != nil {
		return nil, f.InsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.insertLocked(task.Text, task.Status)
	stored := f.tasks[len(f.tasks)-1]
	return &stored, nil
}

func (f *FakeCollection) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Text != nil {
			f.tasks[i].Text = *patch.Text
		}
		if patch.Status != nil {
			f.tasks[i].Status = *patch.Status
		}
		task := f.tasks[i]
		return &task, nil
	}
	return nil, storage.ErrNotFound
}

func (f *FakeCollection) DeleteByID(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if err := validateID(id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeCollection) Close(context.Context) error {
	return nil
}

func (f *FakeCollection) insertLocked(text, status string) string {
	id := strconv.Itoa(f.nextID)
	f.nextID++
	f.tasks = append(f.tasks, models.Task{ID: id, Text: text, Status: status})
	return id
}

func validateID(id string) error {
	if _, err := strconv.Atoi(id); err != nil {
		return fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return nil
}
