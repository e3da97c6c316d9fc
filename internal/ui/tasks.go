// Package ui is the terminal task list view bound to the task API.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/ui/state"
)

// TaskAPI is the part of the task API the view calls.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, text, status string) (models.Task, error)
	UpdateTaskText(ctx context.Context, id, text string) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type taskAddedMsg struct{}

type taskUpdatedMsg struct{}

type taskDeletedMsg struct{}

// actionFailedMsg carries a failed API call. The view logs it and keeps its state.
type actionFailedMsg struct {
	action string
	err    error
}

// TaskListView shows the task list, the new task form and the edit form.
//
// Every mutation is followed by a full re-fetch; nothing is inserted or
// changed locally before the server confirms it.
type TaskListView struct {
	ctx    context.Context
	api    TaskAPI
	logger zerolog.Logger
	styles *Styles
	keys   KeyMap

	state  state.State
	cursor int
	width  int

	adding    bool
	newInput  textinput.Model
	editInput textinput.Model
}

func NewTaskListView(ctx context.Context, api TaskAPI, logger zerolog.Logger) *TaskListView {
	newInput := textinput.New()
	newInput.Placeholder = "New task"

	editInput := textinput.New()
	editInput.Placeholder = "Update task"

	return &TaskListView{
		ctx:       ctx,
		api:       api,
		logger:    logger,
		styles:    NewStyles(TokyoNight),
		keys:      DefaultKeyMap(),
		state:     state.New(),
		newInput:  newInput,
		editInput: editInput,
	}
}

// State returns the current view state.
func (v *TaskListView) State() state.State {
	return v.state
}

func (v *TaskListView) Init() tea.Cmd {
	return v.fetchTasks()
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		inputWidth := ContentWidth(v.width) - 6
		v.newInput.Width = inputWidth
		v.editInput.Width = inputWidth
		return v, nil

	case tasksLoadedMsg:
		v.state = v.state.Loaded(msg.tasks)
		v.clampCursor()
		return v, nil

	case taskAddedMsg:
		v.state = v.state.Added()
		v.newInput.Reset()
		return v, v.fetchTasks()

	case taskUpdatedMsg:
		v.state = v.state.Committed()
		v.editInput.Blur()
		return v, v.fetchTasks()

	case taskDeletedMsg:
		return v, v.fetchTasks()

	case actionFailedMsg:
		v.logger.Error().
			Err(msg.err).
			Str("action", msg.action).
			Msg("task action failed")
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return v, tea.Quit
		}
		if v.state.Editing() {
			return v.updateEditing(msg)
		}
		if v.adding {
			return v.updateAdding(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := v.state.Tasks()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(tasks)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.adding = true
		return v, v.newInput.Focus()

	case key.Matches(msg, v.keys.Edit):
		if len(tasks) == 0 {
			return v, nil
		}
		return v, v.beginEdit(tasks[v.cursor])

	case key.Matches(msg, v.keys.Delete):
		if len(tasks) == 0 {
			return v, nil
		}
		return v, v.deleteTask(tasks[v.cursor].ID)

	case key.Matches(msg, v.keys.Refresh):
		return v, v.fetchTasks()
	}

	return v, nil
}

func (v *TaskListView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.adding = false
		v.newInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		return v, v.addTask()
	}

	var cmd tea.Cmd
	v.newInput, cmd = v.newInput.Update(msg)
	v.state = v.state.SetNewDraft(v.newInput.Value())
	return v, cmd
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := v.state.Tasks()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.state = v.state.CancelEdit()
		v.editInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		return v, v.commitEdit()

	// Arrow keys move the edit to a neighbouring task, dropping the current draft.
	case msg.Type == tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
			return v, v.beginEdit(tasks[v.cursor])
		}
		return v, nil

	case msg.Type == tea.KeyDown:
		if v.cursor < len(tasks)-1 {
			v.cursor++
			return v, v.beginEdit(tasks[v.cursor])
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.editInput, cmd = v.editInput.Update(msg)
	v.state = v.state.SetEditText(v.editInput.Value())
	return v, cmd
}

func (v *TaskListView) beginEdit(task models.Task) tea.Cmd {
	v.state = v.state.BeginEdit(task)
	v.editInput.SetValue(task.Text)
	v.editInput.CursorEnd()
	return v.editInput.Focus()
}

func (v *TaskListView) clampCursor() {
	n := len(v.state.Tasks())
	if v.cursor >= n {
		v.cursor = max(0, n-1)
	}
}

func (v *TaskListView) fetchTasks() tea.Cmd {
	ctx, api := v.ctx, v.api
	return func() tea.Msg {
		tasks, err := api.ListTasks(ctx)
		if err != nil {
			return actionFailedMsg{action: "fetch tasks", err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// addTask returns nil when the draft is blank, so no request is made.
func (v *TaskListView) addTask() tea.Cmd {
	if !v.state.CanAdd() {
		return nil
	}

	ctx, api, text := v.ctx, v.api, v.state.NewDraft()
	return func() tea.Msg {
		_, err := api.CreateTask(ctx, text, models.StatusPending)
		if err != nil {
			return actionFailedMsg{action: "add task", err: err}
		}
		return taskAddedMsg{}
	}
}

func (v *TaskListView) commitEdit() tea.Cmd {
	draft, ok := v.state.EditDraft()
	if !ok {
		return nil
	}

	ctx, api := v.ctx, v.api
	return func() tea.Msg {
		_, err := api.UpdateTaskText(ctx, draft.ID, draft.Text)
		if err != nil {
			return actionFailedMsg{action: "update task", err: err}
		}
		return taskUpdatedMsg{}
	}
}

func (v *TaskListView) deleteTask(id string) tea.Cmd {
	ctx, api := v.ctx, v.api
	return func() tea.Msg {
		err := api.DeleteTask(ctx, id)
		if err != nil {
			return actionFailedMsg{action: "delete task", err: err}
		}
		return taskDeletedMsg{}
	}
}
