package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/retortlabs/retort/internal/engine/runner"
)

// View renders the current run statuses, one line per run.
func (m *Model) View() string {
	var s strings.Builder

	// Scroll so the newest runs stay visible on small terminals.
	start := 0
	if m.height > 1 && len(m.order) > m.height-1 {
		start = len(m.order) - (m.height - 1)
	}

	for _, label := range m.order[start:] {
		status := m.statuses[label]
		icon, style := m.decorate(status)
		fmt.Fprintf(&s, "%s %s  %s\n", style.Render(icon), label, style.Render(string(status)))
	}

	if m.done {
		s.WriteString(m.styles.summary.Render(m.summary()))
		s.WriteString("\n")
	}

	return s.String()
}

func (m *Model) decorate(status runner.RunStatus) (string, lipgloss.Style) {
	switch status {
	case runner.StatusProvisioning, runner.StatusRunning:
		return m.spinner.View(), m.styles.active
	case runner.StatusPassed:
		return "✓", m.styles.passed
	case runner.StatusFailed:
		return "✗", m.styles.failed
	case runner.StatusSkipped:
		return "-", m.styles.skipped
	default:
		return "•", m.styles.pending
	}
}

func (m *Model) summary() string {
	var passed, failed, skipped int
	for _, status := range m.statuses {
		switch status {
		case runner.StatusPassed:
			passed++
		case runner.StatusFailed:
			failed++
		case runner.StatusSkipped:
			skipped++
		}
	}

	parts := []string{fmt.Sprintf("%d passed", passed)}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	return strings.Join(parts, ", ")
}
