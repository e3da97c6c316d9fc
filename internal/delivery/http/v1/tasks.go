package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/services"
)

type getTaskResponse struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Status string `json:"status"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:     task.ID,
		Text:   task.Text,
		Status: task.Status,
	}
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	tasks, err := h.tasks.ListTasks(c)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newInternalError(err))
		return
	}
	logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Text:   req.Text,
		Status: req.Status,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newInternalError(err))
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

type updateTaskRequest struct {
	Text   *string `json:"text,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID: c.Param("id"),
		Patch: models.TaskPatch{
			Text:   req.Text,
			Status: req.Status,
		},
	})
	if err != nil {
		abort(c, h.mapTaskError(c, err, "failed to update task"))
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, c.Param("id"))
	if err != nil {
		abort(c, h.mapTaskError(c, err, "failed to delete task"))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) mapTaskError(c *gin.Context, err error, msg string) apiError {
	switch {
	case errors.Is(err, services.ErrInvalidTaskID):
		return newBadRequestError(errInvalidTaskID.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(errTaskNotFound.Error())
	}

	logger := h.requestLogger(c)
	logger.Error().
		Err(err).
		Str("task_id", c.Param("id")).
		Msg(msg)
	return newInternalError(err)
}
