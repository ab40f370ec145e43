package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Suite is the root of a parsed descriptor: the declared environments in
// declaration order plus the default envlist run when no environment is
// requested explicitly.
type Suite struct {
	envlist []InternedString
	envs    map[InternedString]*Environment
	order   []InternedString
}

// NewSuite creates an empty Suite.
func NewSuite() *Suite {
	return &Suite{
		envs: make(map[InternedString]*Environment),
	}
}

// AddEnvironment adds an environment to the suite.
// It returns an error if an environment with the same name already exists
// or the environment fails validation.
func (s *Suite) AddEnvironment(e *Environment) error {
	if _, exists := s.envs[e.Name]; exists {
		return zerr.With(zerr.Wrap(ErrEnvAlreadyExists, "adding environment"), "environment", e.Name.String())
	}
	if err := e.Validate(); err != nil {
		return err
	}
	s.envs[e.Name] = e
	s.order = append(s.order, e.Name)
	return nil
}

// SetEnvlist sets the default environment list. Every entry must name a
// declared environment.
func (s *Suite) SetEnvlist(names []string) error {
	envlist := make([]InternedString, len(names))
	for i, name := range names {
		n := NewInternedString(name)
		if _, exists := s.envs[n]; !exists {
			return zerr.With(zerr.Wrap(ErrEnvNotFound, "resolving envlist"), "envlist_entry", name)
		}
		envlist[i] = n
	}
	s.envlist = envlist
	return nil
}

// Envlist returns the default environment names.
func (s *Suite) Envlist() []string {
	names := make([]string, len(s.envlist))
	for i, n := range s.envlist {
		names[i] = n.String()
	}
	return names
}

// Lookup returns the environment with the given name.
func (s *Suite) Lookup(name string) (*Environment, error) {
	e, exists := s.envs[NewInternedString(name)]
	if !exists {
		return nil, zerr.With(zerr.Wrap(ErrEnvNotFound, "looking up environment"), "environment", name)
	}
	return e, nil
}

// Select resolves the requested environment names, falling back to the
// envlist when none are given. The returned slice preserves request order.
func (s *Suite) Select(names []string) ([]*Environment, error) {
	if len(names) == 0 {
		names = s.Envlist()
	}
	if len(names) == 0 {
		return nil, ErrNoEnvironmentsSelected
	}

	selected := make([]*Environment, len(names))
	for i, name := range names {
		e, err := s.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected[i] = e
	}
	return selected, nil
}

// Environments returns an iterator over all environments in declaration order.
func (s *Suite) Environments() iter.Seq[*Environment] {
	return func(yield func(*Environment) bool) {
		for _, name := range s.order {
			if !yield(s.envs[name]) {
				return
			}
		}
	}
}

// Len returns the number of declared environments.
func (s *Suite) Len() int {
	return len(s.envs)
}
