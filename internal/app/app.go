// Package app implements the application layer for retort.
package app

import (
	"context"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/adapters/tui" //nolint:depguard // Wired in app layer
	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
	"github.com/retortlabs/retort/internal/engine/runner"
)

// App represents the main application logic.
type App struct {
	loader  ports.ConfigLoader
	runner  *runner.Runner
	logger  ports.Logger
	teaOpts []tea.ProgramOption
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, r *runner.Runner, logger ports.Logger) *App {
	return &App{
		loader: loader,
		runner: r,
		logger: logger,
	}
}

// WithTeaOptions sets additional Bubble Tea program options. Used by tests
// to detach the terminal ui from the real terminal.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) {
	a.teaOpts = append(a.teaOpts, opts...)
}

// RunOptions control one run invocation.
type RunOptions struct {
	// ConfigPath is the descriptor file to load.
	ConfigPath string

	// Parallelism caps concurrent environments. Zero means one per CPU.
	Parallelism int

	// Recreate discards existing environment directories first.
	Recreate bool

	// Watch renders run progress in a terminal ui instead of plain logs.
	Watch bool
}

// Run executes the named environments, falling back to the descriptor's
// envlist when none are given.
func (a *App) Run(ctx context.Context, envNames []string, opts RunOptions) error {
	suite, layout, err := a.loader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "loading descriptor")
	}

	runOpts := runner.Options{
		Parallelism: opts.Parallelism,
		Recreate:    opts.Recreate,
	}
	if runOpts.Parallelism == 0 {
		runOpts.Parallelism = runtime.NumCPU()
	}

	if !opts.Watch {
		return a.runner.Run(ctx, suite, layout, envNames, runOpts)
	}
	return a.runWatched(ctx, suite, layout, envNames, runOpts)
}

// runWatched executes the run while rendering progress in a Bubble Tea
// program. The run error wins over ui errors.
func (a *App) runWatched(ctx context.Context, suite *domain.Suite, layout domain.Layout, envNames []string, opts runner.Options) error {
	program := tea.NewProgram(
		tui.NewModel(a.runner),
		append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOpts...)...,
	)

	errCh := make(chan error, 1)
	go func() {
		err := a.runner.Run(ctx, suite, layout, envNames, opts)
		errCh <- err
		program.Send(tui.MsgRunFinished{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		a.logger.Error(zerr.Wrap(err, "terminal ui failed"))
	}
	return <-errCh
}

// EnvSummary describes one declared environment for listings.
type EnvSummary struct {
	// Name is the environment name.
	Name string

	// Basepython is the interpreter selector.
	Basepython string

	// Default is true when the environment is part of the envlist.
	Default bool

	// Deps counts the enabled dependency pins.
	Deps int

	// Commands counts the pipeline commands.
	Commands int
}

// List returns a summary of every declared environment in declaration order.
func (a *App) List(configPath string) ([]EnvSummary, error) {
	suite, _, err := a.loader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "loading descriptor")
	}

	defaults := make(map[string]bool)
	for _, name := range suite.Envlist() {
		defaults[name] = true
	}

	summaries := make([]EnvSummary, 0, suite.Len())
	for env := range suite.Environments() {
		summaries = append(summaries, EnvSummary{
			Name:       env.Name.String(),
			Basepython: env.Basepython,
			Default:    defaults[env.Name.String()],
			Deps:       len(env.EnabledDeps()),
			Commands:   len(env.Commands),
		})
	}
	return summaries, nil
}
