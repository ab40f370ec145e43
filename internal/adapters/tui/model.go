// Package tui provides a terminal user interface for watching run progress.
package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/retortlabs/retort/internal/engine/runner"
)

const pollInterval = 100 * time.Millisecond

// StatusSource supplies run status snapshots, keyed by run label.
type StatusSource interface {
	Statuses() map[string]runner.RunStatus
}

// MsgStatuses carries a fresh status snapshot into the model.
type MsgStatuses map[string]runner.RunStatus

// MsgRunFinished is sent when the whole invocation has finished.
type MsgRunFinished struct {
	Err error
}

// Model is the Bubble Tea model rendering run statuses.
type Model struct {
	source   StatusSource
	order    []string
	statuses map[string]runner.RunStatus
	spinner  spinner.Model
	styles   styles
	width    int
	height   int
	done     bool
	err      error
}

// Init starts the spinner and the status polling loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		pollStatuses(m.source),
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgStatuses:
		m.applyStatuses(msg)
		if m.done {
			return m, nil
		}
		return m, pollStatuses(m.source)
	case MsgRunFinished:
		m.done = true
		m.err = msg.Err
		m.applyStatuses(m.source.Statuses())
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// applyStatuses merges a snapshot, keeping a stable display order: labels
// appear in the order they were first seen.
func (m *Model) applyStatuses(snapshot map[string]runner.RunStatus) {
	labels := make([]string, 0, len(snapshot))
	for label := range snapshot {
		if _, seen := m.statuses[label]; !seen {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	m.order = append(m.order, labels...)

	for label, status := range snapshot {
		m.statuses[label] = status
	}
}

// pollStatuses returns a command delivering the next status snapshot.
func pollStatuses(source StatusSource) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return MsgStatuses(source.Statuses())
	})
}
