package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Dependency is a single entry of an environment's dependency manifest.
// An enabled dependency is an exact name==version pin. A disabled dependency
// stays declared for documentation purposes but is never installed; it must
// carry a reason explaining why it is switched off.
type Dependency struct {
	Name     InternedString
	Version  InternedString
	Disabled bool
	Reason   string
}

// ParsePin parses an exact "name==version" dependency spec.
// Any other shape (missing separator, empty name or version, a second
// separator) is rejected: a name maps to exactly one version.
func ParsePin(spec string) (Dependency, error) {
	name, version, ok := strings.Cut(spec, "==")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)

	if !ok || name == "" || version == "" || strings.Contains(version, "==") {
		return Dependency{}, zerr.With(zerr.Wrap(ErrMalformedPin, "parsing pin"), "spec", spec)
	}

	return Dependency{
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}, nil
}

// Spec renders the dependency back into its name==version form.
func (d Dependency) Spec() string {
	return d.Name.String() + "==" + d.Version.String()
}

// Validate checks the per-entry invariants.
func (d Dependency) Validate() error {
	if d.Name.String() == "" {
		return zerr.With(zerr.Wrap(ErrMalformedPin, "validating pin"), "reason", "empty name")
	}
	if d.Disabled {
		if strings.TrimSpace(d.Reason) == "" {
			return zerr.With(zerr.Wrap(ErrDisabledWithoutReason, "validating pin"), "dependency", d.Name.String())
		}
		return nil
	}
	if d.Version.String() == "" {
		return zerr.With(zerr.Wrap(ErrMalformedPin, "validating pin"), "dependency", d.Name.String())
	}
	return nil
}
