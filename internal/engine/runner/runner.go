// Package runner drives the execution of selected test environments.
package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

// RunStatus represents the status of one run.
type RunStatus string

const (
	// StatusPending indicates the run is waiting to start.
	StatusPending RunStatus = "Pending"
	// StatusProvisioning indicates the run's environment is being provisioned.
	StatusProvisioning RunStatus = "Provisioning"
	// StatusRunning indicates the run's command pipeline is executing.
	StatusRunning RunStatus = "Running"
	// StatusPassed indicates every command in the pipeline exited zero.
	StatusPassed RunStatus = "Passed"
	// StatusFailed indicates provisioning or a pipeline command failed.
	StatusFailed RunStatus = "Failed"
	// StatusSkipped indicates the run never started because an earlier
	// step of its environment failed.
	StatusSkipped RunStatus = "Skipped"
)

// Options control one invocation of the runner.
type Options struct {
	// Parallelism caps how many environments execute concurrently.
	// Values below one mean sequential execution.
	Parallelism int

	// Recreate discards existing environment directories before provisioning.
	Recreate bool
}

// Runner provisions selected environments and executes their command
// pipelines. Environments run concurrently up to the configured
// parallelism; within an environment, provisioning and commands are
// strictly sequential and abort on first failure.
type Runner struct {
	provisioner ports.Provisioner
	executor    ports.Executor
	telemetry   ports.Telemetry
	logger      ports.Logger

	mu       sync.RWMutex
	statuses map[string]RunStatus
}

// NewRunner creates a new Runner.
func NewRunner(
	provisioner ports.Provisioner,
	executor ports.Executor,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Runner {
	return &Runner{
		provisioner: provisioner,
		executor:    executor,
		telemetry:   telemetry,
		logger:      logger,
		statuses:    make(map[string]RunStatus),
	}
}

// Statuses returns a snapshot of all run statuses, keyed by run label.
func (r *Runner) Statuses() map[string]RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]RunStatus, len(r.statuses))
	for label, status := range r.statuses {
		snapshot[label] = status
	}
	return snapshot
}

func (r *Runner) setStatus(label string, status RunStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[label] = status
}

// Run executes the named environments of the suite. With no names, the
// suite's envlist is run. Every selected environment is executed even when
// another one fails; the returned error aggregates all failures.
func (r *Runner) Run(ctx context.Context, suite *domain.Suite, layout domain.Layout, names []string, opts Options) error {
	envs, err := suite.Select(names)
	if err != nil {
		return err
	}

	for _, env := range envs {
		r.setStatus(env.Name.String(), StatusPending)
	}

	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	var (
		failMu sync.Mutex
		failed []string
		errs   []error
	)

	var g errgroup.Group
	g.SetLimit(parallelism)

	for _, env := range envs {
		g.Go(func() error {
			if err := r.executeEnv(ctx, env, layout, opts); err != nil {
				failMu.Lock()
				failed = append(failed, env.Name.String())
				errs = append(errs, err)
				failMu.Unlock()
			}
			return nil
		})
	}

	// The group never returns errors; failures are collected above so one
	// broken environment does not stop the others.
	_ = g.Wait()

	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}
	if len(errs) == 0 {
		return nil
	}

	pipelineErr := zerr.With(zerr.Wrap(domain.ErrPipelineFailed, "running environments"), "environments", strings.Join(failed, ", "))
	return errors.Join(append([]error{pipelineErr}, errs...)...)
}

// executeEnv provisions one environment and executes all its runs.
func (r *Runner) executeEnv(ctx context.Context, env *domain.Environment, layout domain.Layout, opts Options) error {
	name := env.Name.String()

	r.setStatus(name, StatusProvisioning)
	provisioned, err := r.provision(ctx, env, layout, opts.Recreate)
	if err != nil {
		r.setStatus(name, StatusFailed)
		return err
	}

	runs, err := r.expandRuns(env, layout, provisioned)
	if err != nil {
		r.setStatus(name, StatusFailed)
		return err
	}

	var errs []error
	for _, run := range runs {
		if ctx.Err() != nil {
			r.setStatus(run.Label, StatusSkipped)
			continue
		}
		if err := r.executeRun(ctx, run); err != nil {
			errs = append(errs, err)
		}
	}

	// Fan-out runs carry their own labels, so the environment-level entry
	// would otherwise stay at Provisioning forever.
	if env.Fanout != nil {
		switch {
		case len(errs) > 0:
			r.setStatus(name, StatusFailed)
		case ctx.Err() != nil:
			r.setStatus(name, StatusSkipped)
		default:
			r.setStatus(name, StatusPassed)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) provision(ctx context.Context, env *domain.Environment, layout domain.Layout, recreate bool) (domain.ProvisionedEnv, error) {
	name := env.Name.String()

	_, vertex := r.telemetry.Record(ctx, "provision "+name)
	provisioned, err := r.provisioner.Provision(ctx, env, layout, recreate)
	if err != nil {
		vertex.Complete(err)
		provErr := zerr.Wrap(err, "provisioning failed")
		return domain.ProvisionedEnv{}, zerr.With(provErr, "environment", name)
	}

	if provisioned.Reused {
		vertex.Cached()
	}
	vertex.Complete(nil)
	return provisioned, nil
}

// expandRuns turns one environment into its runs. Environments without a
// fan-out yield exactly one run; fan-out environments yield one run per
// applicable manifest entry, each with the fan-out variable injected.
func (r *Runner) expandRuns(env *domain.Environment, layout domain.Layout, provisioned domain.ProvisionedEnv) ([]*domain.Run, error) {
	name := env.Name.String()

	if env.Fanout == nil {
		return []*domain.Run{{
			Env:         env,
			Label:       name,
			Layout:      layout,
			Provisioned: provisioned,
		}}, nil
	}

	entries, err := r.readManifest(env.Fanout, layout, name)
	if err != nil {
		return nil, err
	}

	applicable := env.Fanout.ExpandEntries(entries, runtime.GOOS)
	runs := make([]*domain.Run, len(applicable))
	for i, entry := range applicable {
		runs[i] = &domain.Run{
			Env:         env,
			Label:       name + ":" + entry.Name,
			ExtraEnv:    []domain.EnvVar{{Key: env.Fanout.Variable, Value: entry.Name}},
			Layout:      layout,
			Provisioned: provisioned,
		}
	}
	return runs, nil
}

func (r *Runner) readManifest(fanout *domain.Fanout, layout domain.Layout, envName string) ([]domain.ManifestEntry, error) {
	path := layout.Expand(fanout.Manifest, envName)
	if !filepath.IsAbs(path) {
		path = filepath.Join(layout.ConfDir, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the descriptor
	if err != nil {
		readErr := zerr.Wrap(err, "reading fan-out manifest")
		return nil, zerr.With(readErr, "manifest", path)
	}

	entries, err := domain.ParseManifest(string(data))
	if err != nil {
		return nil, zerr.With(err, "manifest", path)
	}
	return entries, nil
}

// executeRun runs one command pipeline, aborting on the first failure.
func (r *Runner) executeRun(ctx context.Context, run *domain.Run) error {
	r.setStatus(run.Label, StatusRunning)
	r.logger.Info("running " + run.Label)

	_, vertex := r.telemetry.Record(ctx, run.Label)
	run.Stdout = vertex.Stdout()
	run.Stderr = vertex.Stderr()

	for _, cmd := range run.Env.Commands {
		if err := r.executor.Execute(ctx, run, cmd); err != nil {
			vertex.Complete(err)
			r.setStatus(run.Label, StatusFailed)
			return zerr.With(err, "run", run.Label)
		}
	}

	vertex.Complete(nil)
	r.setStatus(run.Label, StatusPassed)
	return nil
}
