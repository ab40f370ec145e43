// Package domain contains the core domain models for test environment suites.
package domain

import "go.trai.ch/zerr"

// EnvVar is one setenv entry. The slice order is deterministic (the loader
// canonicalizes it) and entries are applied in order at process spawn.
type EnvVar struct {
	Key   string
	Value string
}

// Environment is one named, isolated test environment: an interpreter
// selector, environment variable overrides, a dependency manifest of exact
// pins, and a sequential command pipeline.
type Environment struct {
	Name       InternedString
	Basepython string
	SetEnv     []EnvVar
	Deps       []Dependency
	Commands   []Command
	Fanout     *Fanout
}

// EnabledDeps returns the dependencies that are actually installed,
// in declaration order.
func (e *Environment) EnabledDeps() []Dependency {
	deps := make([]Dependency, 0, len(e.Deps))
	for _, d := range e.Deps {
		if !d.Disabled {
			deps = append(deps, d)
		}
	}
	return deps
}

// PinSpecs returns the name==version specs of all enabled dependencies,
// in declaration order.
func (e *Environment) PinSpecs() []string {
	deps := e.EnabledDeps()
	specs := make([]string, len(deps))
	for i, d := range deps {
		specs[i] = d.Spec()
	}
	return specs
}

// Validate checks the per-environment invariants: no duplicate dependency
// names, every entry well formed, and a non-empty pipeline.
func (e *Environment) Validate() error {
	if len(e.Commands) == 0 {
		return zerr.With(zerr.Wrap(ErrEmptyPipeline, "validating environment"), "environment", e.Name.String())
	}

	seen := make(map[InternedString]bool, len(e.Deps))
	for _, d := range e.Deps {
		if err := d.Validate(); err != nil {
			return zerr.With(err, "environment", e.Name.String())
		}
		if seen[d.Name] {
			err := zerr.With(zerr.Wrap(ErrDuplicateDependency, "validating environment"), "dependency", d.Name.String())
			return zerr.With(err, "environment", e.Name.String())
		}
		seen[d.Name] = true
	}

	if e.Fanout != nil {
		if err := e.Fanout.Validate(); err != nil {
			return zerr.With(err, "environment", e.Name.String())
		}
	}

	return nil
}
