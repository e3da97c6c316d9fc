// Package client talks to the task API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/morzdz/todo-app/internal/models"
)

type taskPayload struct {
	ID     string  `json:"id,omitempty"`
	Text   *string `json:"text,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (p taskPayload) toModel() models.Task {
	task := models.Task{ID: p.ID}
	if p.Text != nil {
		task.Text = *p.Text
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	return task
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! Status: %d", e.Code)
	}
	return fmt.Sprintf("HTTP error! Status: %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var payload []taskPayload
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &payload)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(payload))
	for i, p := range payload {
		tasks[i] = p.toModel()
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, text, status string) (models.Task, error) {
	var created taskPayload
	err := c.do(ctx, http.MethodPost, "/api/tasks", taskPayload{Text: &text, Status: &status}, &created)
	if err != nil {
		return models.Task{}, err
	}
	return created.toModel(), nil
}

// UpdateTaskText sends only the text field; other stored fields are kept.
func (c *Client) UpdateTaskText(ctx context.Context, id, text string) (models.Task, error) {
	var updated taskPayload
	err := c.do(ctx, http.MethodPut, taskPath(id), taskPayload{Text: &text}, &updated)
	if err != nil {
		return models.Task{}, err
	}
	return updated.toModel(), nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
