package domain

import "go.trai.ch/zerr"

var (
	// ErrEnvAlreadyExists is returned when a descriptor declares two environments with the same name.
	ErrEnvAlreadyExists = zerr.New("environment already declared")

	// ErrEnvNotFound is returned when a requested environment is not present in the suite.
	ErrEnvNotFound = zerr.New("environment not found")

	// ErrDuplicateDependency is returned when an environment pins the same package name twice.
	ErrDuplicateDependency = zerr.New("dependency declared twice")

	// ErrMalformedPin is returned when a dependency spec is not an exact name==version pin.
	ErrMalformedPin = zerr.New("malformed dependency pin")

	// ErrDisabledWithoutReason is returned when a disabled dependency carries no rationale.
	ErrDisabledWithoutReason = zerr.New("disabled dependency without reason")

	// ErrEmptyPipeline is returned when an environment declares no commands.
	ErrEmptyPipeline = zerr.New("environment has no commands")

	// ErrNoEnvironmentsSelected is returned when neither arguments nor the envlist select anything.
	ErrNoEnvironmentsSelected = zerr.New("no environments selected")

	// ErrInterpreterNotFound is returned when no interpreter satisfies the basepython selector.
	ErrInterpreterNotFound = zerr.New("interpreter not found")

	// ErrProvisionFailed is returned when an isolated environment cannot be created or populated.
	ErrProvisionFailed = zerr.New("environment provisioning failed")

	// ErrPipelineFailed is returned when at least one selected environment failed its pipeline.
	ErrPipelineFailed = zerr.New("pipeline execution failed")

	// ErrMalformedManifest is returned when a fan-out manifest cannot be parsed.
	ErrMalformedManifest = zerr.New("malformed fan-out manifest")

	// ErrUnsupportedVersion is returned when a descriptor declares a schema version this build does not understand.
	ErrUnsupportedVersion = zerr.New("unsupported descriptor version")
)
