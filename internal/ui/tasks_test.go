package ui

import (
	"context"
	"errors"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morzdz/todo-app/internal/models"
)

type updateCall struct {
	id   string
	text string
}

// fakeAPI keeps tasks in memory and records every mutation it receives.
type fakeAPI struct {
	tasks   []models.Task
	nextID  int
	creates []models.Task
	updates []updateCall
	deletes []string

	listErr   error
	createErr error
	deleteErr error
}

func (f *fakeAPI) ListTasks(context.Context) ([]models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) CreateTask(_ context.Context, text, status string) (models.Task, error) {
	f.creates = append(f.creates, models.Task{Text: text, Status: status})
	if f.createErr != nil {
		return models.Task{}, f.createErr
	}
	f.nextID++
	task := models.Task{ID: strconv.Itoa(f.nextID), Text: text, Status: status}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeAPI) UpdateTaskText(_ context.Context, id, text string) (models.Task, error) {
	f.updates = append(f.updates, updateCall{id: id, text: text})
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Text = text
			return f.tasks[i], nil
		}
	}
	return models.Task{}, errors.New("HTTP error! Status: 404")
}

func (f *fakeAPI) DeleteTask(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// send feeds msg to the view and returns the follow-up command.
func send(v *TaskListView, msg tea.Msg) tea.Cmd {
	_, cmd := v.Update(msg)
	return cmd
}

// run executes cmd and feeds the resulting message back until the chain ends.
func run(t *testing.T, v *TaskListView, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		cmd = send(v, cmd())
	}
}

func newLoadedView(t *testing.T, api *fakeAPI) *TaskListView {
	t.Helper()
	v := NewTaskListView(context.Background(), api, zerolog.Nop())
	run(t, v, v.Init())
	return v
}

func TestInitLoadsTasks(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{{ID: "1", Text: "buy milk", Status: models.StatusPending}}}
	v := newLoadedView(t, api)

	assert.Equal(t, api.tasks, v.State().Tasks())
	assert.Contains(t, v.View(), "buy milk")
}

func TestAddIgnoresBlankDraft(t *testing.T) {
	for _, draft := range []string{"", "   "} {
		api := &fakeAPI{}
		v := newLoadedView(t, api)

		send(v, keyRunes("a"))
		if draft != "" {
			send(v, keyRunes(draft))
		}

		assert.Nil(t, send(v, keyType(tea.KeyEnter)), "draft %q", draft)
		assert.Empty(t, api.creates)
		assert.Empty(t, v.State().Tasks())
	}
}

func TestAddCreatesThenRefetches(t *testing.T) {
	api := &fakeAPI{}
	v := newLoadedView(t, api)

	send(v, keyRunes("a"))
	send(v, keyRunes("buy milk"))
	assert.Equal(t, "buy milk", v.State().NewDraft())

	cmd := send(v, keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg := cmd()

	require.Len(t, api.creates, 1)
	assert.Equal(t, models.Task{Text: "buy milk", Status: models.StatusPending}, api.creates[0])
	assert.Empty(t, v.State().Tasks(), "no optimistic insert")

	run(t, v, send(v, msg))
	assert.Equal(t, "", v.State().NewDraft())
	require.Len(t, v.State().Tasks(), 1)
	assert.Equal(t, "buy milk", v.State().Tasks()[0].Text)
}

func TestBeginEditOnAnotherTaskReplacesDraft(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{
		{ID: "1", Text: "buy milk", Status: models.StatusPending},
		{ID: "2", Text: "walk dog", Status: models.StatusPending},
	}}
	v := newLoadedView(t, api)

	send(v, keyRunes("e"))
	send(v, keyRunes(" and eggs"))
	draft, ok := v.State().EditDraft()
	require.True(t, ok)
	assert.Equal(t, "1", draft.ID)
	assert.Equal(t, "buy milk and eggs", draft.Text)

	send(v, keyType(tea.KeyDown))
	draft, ok = v.State().EditDraft()
	require.True(t, ok)
	assert.Equal(t, "2", draft.ID)
	assert.Equal(t, "walk dog", draft.Text)

	assert.Empty(t, api.updates)
	assert.Equal(t, "buy milk", api.tasks[0].Text)
}

func TestCommitEditSendsTextOnly(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{{ID: "1", Text: "buy milk", Status: models.StatusPending}}}
	v := newLoadedView(t, api)

	send(v, keyRunes("e"))
	send(v, keyRunes(" and eggs"))
	run(t, v, send(v, keyType(tea.KeyEnter)))

	assert.Equal(t, []updateCall{{id: "1", text: "buy milk and eggs"}}, api.updates)
	assert.False(t, v.State().Editing())
	assert.Equal(t, "buy milk and eggs", v.State().Tasks()[0].Text)
}

func TestCancelEditLeavesTaskAlone(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{{ID: "1", Text: "buy milk", Status: models.StatusPending}}}
	v := newLoadedView(t, api)

	send(v, keyRunes("e"))
	send(v, keyRunes("!!"))
	assert.Nil(t, send(v, keyType(tea.KeyEsc)))

	assert.False(t, v.State().Editing())
	assert.Empty(t, api.updates)
}

func TestDeleteThenRefetches(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{
		{ID: "1", Text: "buy milk", Status: models.StatusPending},
		{ID: "2", Text: "walk dog", Status: models.StatusPending},
	}}
	v := newLoadedView(t, api)

	send(v, keyType(tea.KeyDown))
	run(t, v, send(v, keyRunes("d")))

	assert.Equal(t, []string{"2"}, api.deletes)
	assert.Equal(t, []models.Task{{ID: "1", Text: "buy milk", Status: models.StatusPending}}, v.State().Tasks())
}

func TestFailedActionKeepsState(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{{ID: "1", Text: "buy milk", Status: models.StatusPending}}}
	v := newLoadedView(t, api)
	before := v.State()

	api.deleteErr = errors.New("HTTP error! Status: 500")
	cmd := send(v, keyRunes("d"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, actionFailedMsg{}, msg)

	assert.Nil(t, send(v, msg))
	assert.Equal(t, before, v.State())

	api.createErr = errors.New("HTTP error! Status: 500")
	send(v, keyRunes("a"))
	send(v, keyRunes("walk dog"))
	run(t, v, send(v, keyType(tea.KeyEnter)))
	assert.Equal(t, "walk dog", v.State().NewDraft())
	assert.Len(t, v.State().Tasks(), 1)
}

func TestQuit(t *testing.T) {
	v := newLoadedView(t, &fakeAPI{})

	cmd := send(v, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
