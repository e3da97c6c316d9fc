// Package state holds the task list view state as an immutable value.
//
// Every transition returns a new State and leaves the receiver untouched,
// so the view can re-render from whatever State it was last handed.
package state

import (
	"slices"
	"strings"

	"github.com/morzdz/todo-app/internal/models"
)

// EditDraft is the in-progress edit of one task.
type EditDraft struct {
	ID   string
	Text string
}

type State struct {
	tasks     []models.Task
	newDraft  string
	editDraft *EditDraft
}

func New() State {
	return State{}
}

func (s State) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

func (s State) NewDraft() string {
	return s.newDraft
}

// EditDraft returns the active edit draft, or false when no edit is active.
func (s State) EditDraft() (EditDraft, bool) {
	if s.editDraft == nil {
		return EditDraft{}, false
	}
	return *s.editDraft, true
}

func (s State) Editing() bool {
	return s.editDraft != nil
}

// Loaded replaces the list with a freshly fetched one.
func (s State) Loaded(tasks []models.Task) State {
	s.tasks = slices.Clone(tasks)
	return s
}

func (s State) SetNewDraft(text string) State {
	s.newDraft = text
	return s
}

// CanAdd reports whether the new-task draft holds anything besides whitespace.
func (s State) CanAdd() bool {
	return strings.TrimSpace(s.newDraft) != ""
}

// Added clears the new-task draft after a successful create.
func (s State) Added() State {
	s.newDraft = ""
	return s
}

// BeginEdit binds the edit draft to task, replacing any other draft.
func (s State) BeginEdit(task models.Task) State {
	s.editDraft = &EditDraft{ID: task.ID, Text: task.Text}
	return s
}

// SetEditText changes the draft text. It is a no-op without an active edit.
func (s State) SetEditText(text string) State {
	if s.editDraft == nil {
		return s
	}
	s.editDraft = &EditDraft{ID: s.editDraft.ID, Text: text}
	return s
}

// Committed clears the edit draft after a successful update.
func (s State) Committed() State {
	s.editDraft = nil
	return s
}

func (s State) CancelEdit() State {
	s.editDraft = nil
	return s
}
