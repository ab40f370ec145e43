package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/retortlabs/retort/internal/engine/runner"
)

// NewModel creates a TUI model reading statuses from the given source.
func NewModel(source StatusSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		source:   source,
		statuses: make(map[string]runner.RunStatus),
		spinner:  s,
		styles:   defaultStyles(),
	}
}
