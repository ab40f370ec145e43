// Package config provides the descriptor loader for retort.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

// Loader implements ports.ConfigLoader using a YAML descriptor file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the descriptor at the given path.
func (l *Loader) Load(path string) (*domain.Suite, domain.Layout, error) {
	return Load(path)
}

// Load reads a descriptor file and returns the suite and its layout.
func Load(path string) (*domain.Suite, domain.Layout, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, domain.Layout{}, zerr.Wrap(err, "failed to read descriptor file")
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, domain.Layout{}, zerr.Wrap(err, "failed to parse descriptor file")
	}

	// An omitted version means the current schema; anything else must match.
	if desc.Version != "" && desc.Version != SchemaVersion {
		err := zerr.Wrap(domain.ErrUnsupportedVersion, "validating descriptor")
		return nil, domain.Layout{}, zerr.With(zerr.With(err, "version", desc.Version), "supported", SchemaVersion)
	}

	suite, err := buildSuite(&desc)
	if err != nil {
		return nil, domain.Layout{}, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.Layout{}, zerr.Wrap(err, "failed to resolve descriptor path")
	}

	layout := domain.NewLayout(filepath.Dir(absPath), desc.WorkDir)
	layout.Descriptor = absPath

	return suite, layout, nil
}

func buildSuite(desc *Descriptor) (*domain.Suite, error) {
	suite := domain.NewSuite()

	// YAML mappings do not preserve declaration order, so environments are
	// added in sorted name order to keep iteration deterministic.
	names := make([]string, 0, len(desc.Environments))
	for name := range desc.Environments {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		env, err := buildEnvironment(name, desc.Environments[name])
		if err != nil {
			return nil, err
		}
		if err := suite.AddEnvironment(env); err != nil {
			return nil, err
		}
	}

	if err := suite.SetEnvlist(desc.Envlist); err != nil {
		return nil, err
	}

	return suite, nil
}

func buildEnvironment(name string, dto EnvDTO) (*domain.Environment, error) {
	env := &domain.Environment{
		Name:       domain.NewInternedString(name),
		Basepython: dto.Basepython,
		SetEnv:     canonicalizeSetEnv(dto.SetEnv),
	}

	for _, d := range dto.Deps {
		dep, err := d.toDependency()
		if err != nil {
			return nil, zerr.With(err, "environment", name)
		}
		env.Deps = append(env.Deps, dep)
	}

	for _, raw := range dto.Commands {
		cmd, err := domain.ParseCommand(raw)
		if err != nil {
			return nil, zerr.With(err, "environment", name)
		}
		env.Commands = append(env.Commands, cmd)
	}

	if dto.Fanout != nil {
		env.Fanout = &domain.Fanout{
			Manifest: dto.Fanout.Manifest,
			Variable: dto.Fanout.Variable,
			Skip:     dto.Fanout.Skip,
		}
	}

	return env, nil
}

// canonicalizeSetEnv turns the setenv mapping into a deterministic slice,
// sorted by key.
func canonicalizeSetEnv(setenv map[string]string) []domain.EnvVar {
	if len(setenv) == 0 {
		return nil
	}

	keys := make([]string, 0, len(setenv))
	for k := range setenv {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	vars := make([]domain.EnvVar, len(keys))
	for i, k := range keys {
		vars[i] = domain.EnvVar{Key: k, Value: setenv[k]}
	}
	return vars
}
