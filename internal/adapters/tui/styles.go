package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	pending lipgloss.Style
	active  lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	skipped lipgloss.Style
	summary lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		active:  lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
		passed:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
		skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		summary: lipgloss.NewStyle().Bold(true),
	}
}
