package ui

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the view
type Theme struct {
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Border        lipgloss.Color
	BorderFocus   lipgloss.Color
	Selection     lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),
	Primary:       lipgloss.Color("#7aa2f7"),
	Accent:        lipgloss.Color("#7dcfff"),
	Border:        lipgloss.Color("#3b4261"),
	BorderFocus:   lipgloss.Color("#7aa2f7"),
	Selection:     lipgloss.Color("#33467c"),
}

// MaxWidth is the maximum content width (classic terminal width)
const MaxWidth = 80

type Styles struct {
	Title        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Task         lipgloss.Style
	TaskSelected lipgloss.Style
	TaskEditing  lipgloss.Style
	Empty        lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style
}

func NewStyles(t Theme) *Styles {
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			MarginBottom(1),
		Input:        input,
		InputFocused: input.BorderForeground(t.BorderFocus),
		Task: lipgloss.NewStyle().
			Foreground(t.Foreground).
			PaddingLeft(2),
		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Selection).
			PaddingLeft(2),
		TaskEditing: lipgloss.NewStyle().
			Foreground(t.Accent).
			Italic(true).
			PaddingLeft(2),
		Empty: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Italic(true).
			PaddingLeft(2),
		Label: lipgloss.NewStyle().
			Foreground(t.Accent).
			MarginTop(1),
		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			MarginTop(1),
	}
}

// ContentWidth returns min(terminal width, MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}
