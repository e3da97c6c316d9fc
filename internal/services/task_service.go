package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/storage"
)

type taskServiceImpl struct {
	logger     zerolog.Logger
	collection storage.Collection
}

func NewTaskService(
	logger zerolog.Logger,
	collection storage.Collection,
) TaskService {
	return &taskServiceImpl{
		logger:     logger,
		collection: collection,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.collection.FindAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to find tasks")
		return nil, err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("found tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	task := &models.Task{
		Text:   params.Text,
		Status: params.Status,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	task, err := s.collection.Insert(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.collection.UpdateByID(ctx, params.ID, params.Patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			s.logger.Warn().
				Str("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		case errors.Is(err, storage.ErrInvalidID):
			s.logger.Warn().
				Str("task_id", params.ID).
				Msg("invalid task id")
			return nil, ErrInvalidTaskID
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	if params.Patch.IsEmpty() {
		s.logger.Warn().
			Str("task_id", task.ID).
			Msg("no fields to update")
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	err := s.collection.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("invalid task id")
			return ErrInvalidTaskID
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}
