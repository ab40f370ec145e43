package config

import (
	"gopkg.in/yaml.v3"

	"github.com/retortlabs/retort/internal/core/domain"
)

// SchemaVersion is the descriptor schema version this build understands.
const SchemaVersion = "1"

// Descriptor represents the structure of the retort.yaml descriptor file.
type Descriptor struct {
	Version      string            `yaml:"version"`
	WorkDir      string            `yaml:"workdir"`
	Envlist      []string          `yaml:"envlist"`
	Environments map[string]EnvDTO `yaml:"environments"`
}

// EnvDTO represents one environment definition in the descriptor.
type EnvDTO struct {
	Basepython string            `yaml:"basepython"`
	SetEnv     map[string]string `yaml:"setenv"`
	Deps       []DepDTO          `yaml:"deps"`
	Commands   []string          `yaml:"commands"`
	Fanout     *FanoutDTO        `yaml:"fanout"`
}

// FanoutDTO represents a fan-out block in the descriptor.
type FanoutDTO struct {
	Manifest string   `yaml:"manifest"`
	Variable string   `yaml:"variable"`
	Skip     []string `yaml:"skip"`
}

// DepDTO represents one dependency manifest entry. It accepts two YAML
// shapes: a plain "name==version" scalar for ordinary pins, and a mapping
// with name/version/disabled/reason for entries that need the long form
// (in practice: disabled dependencies and their rationale).
type DepDTO struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Disabled bool   `yaml:"disabled"`
	Reason   string `yaml:"reason"`

	spec string
}

// UnmarshalYAML implements yaml.Unmarshaler for the two accepted shapes.
func (d *DepDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&d.spec)
	}
	type plain DepDTO
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = DepDTO(p)
	return nil
}

func (d DepDTO) toDependency() (domain.Dependency, error) {
	if d.spec != "" {
		return domain.ParsePin(d.spec)
	}
	return domain.Dependency{
		Name:     domain.NewInternedString(d.Name),
		Version:  domain.NewInternedString(d.Version),
		Disabled: d.Disabled,
		Reason:   d.Reason,
	}, nil
}
