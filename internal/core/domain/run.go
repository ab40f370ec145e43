package domain

import "io"

// Run is one schedulable unit of work: an environment, or a single fan-out
// expansion of one. Fan-out runs share the environment's provisioned
// directory and differ only in label and injected variables.
type Run struct {
	// Env is the environment the run executes.
	Env *Environment

	// Label identifies the run: the environment name, suffixed with the
	// manifest entry for fan-out runs (e.g. "l10n:ja-JP-mac").
	Label string

	// ExtraEnv holds variables injected on top of the environment's setenv,
	// currently only the fan-out variable.
	ExtraEnv []EnvVar

	// Layout locates the work and environment directories.
	Layout Layout

	// Provisioned is filled in once the environment is ready.
	Provisioned ProvisionedEnv

	// Stdout and Stderr receive the pipeline's output in addition to the
	// logs. They are set by the runner from the run's telemetry vertex and
	// may be nil.
	Stdout io.Writer
	Stderr io.Writer
}
