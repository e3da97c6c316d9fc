package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (v *TaskListView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Todo List"))
	b.WriteString("\n")

	newInputStyle := v.styles.Input
	if v.adding && !v.state.Editing() {
		newInputStyle = v.styles.InputFocused
	}
	b.WriteString(newInputStyle.Render(v.newInput.View()))
	b.WriteString("\n\n")

	b.WriteString(v.renderTasks())

	if draft, ok := v.state.EditDraft(); ok {
		b.WriteString("\n")
		b.WriteString(v.styles.Label.Render("Update task " + draft.ID))
		b.WriteString("\n")
		b.WriteString(v.styles.InputFocused.Render(v.editInput.View()))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(v.helpLine()))

	return lipgloss.NewStyle().Width(ContentWidth(v.width)).Render(b.String())
}

func (v *TaskListView) renderTasks() string {
	tasks := v.state.Tasks()
	if len(tasks) == 0 {
		return v.styles.Empty.Render("No tasks yet. Press a to add one.")
	}

	draft, editing := v.state.EditDraft()
	lines := make([]string, len(tasks))
	for i, task := range tasks {
		style := v.styles.Task
		switch {
		case editing && task.ID == draft.ID:
			style = v.styles.TaskEditing
		case i == v.cursor && !v.adding:
			style = v.styles.TaskSelected
		}
		lines[i] = style.Render("• " + task.Text)
	}
	return strings.Join(lines, "\n")
}

func (v *TaskListView) helpLine() string {
	var bindings []key.Binding
	switch {
	case v.state.Editing(), v.adding:
		bindings = []key.Binding{v.keys.Enter, v.keys.Back}
	default:
		bindings = v.keys.ShortHelp()
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, " • ")
}
