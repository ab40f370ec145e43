// Package python resolves basepython selectors to host interpreters.
package python

import (
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

var _ ports.InterpreterResolver = (*Resolver)(nil)

// Resolver implements ports.InterpreterResolver by probing interpreters
// found on PATH.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve finds an interpreter for the given selector (e.g. "2.7").
// Candidates are probed most-specific first: pythonX.Y, then pythonX,
// then bare python; the first one whose reported version matches wins.
func (r *Resolver) Resolve(ctx context.Context, selector string) (string, string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return "", "", zerr.With(zerr.Wrap(domain.ErrInterpreterNotFound, "resolving interpreter"), "reason", "empty selector")
	}

	for _, candidate := range candidates(selector) {
		path, err := exec.LookPath(candidate)
		if err != nil {
			continue
		}

		version, err := probeVersion(ctx, path)
		if err != nil {
			continue
		}

		if matchesSelector(version, selector) {
			return path, version, nil
		}
	}

	return "", "", zerr.With(zerr.Wrap(domain.ErrInterpreterNotFound, "resolving interpreter"), "selector", selector)
}

func candidates(selector string) []string {
	names := []string{"python" + selector}
	if major, _, ok := strings.Cut(selector, "."); ok {
		names = append(names, "python"+major)
	}
	return append(names, "python")
}

// probeVersion runs the interpreter with --version and parses the reported
// version. Python 2 writes the banner to stderr, Python 3 to stdout, so
// both streams are combined before parsing.
func probeVersion(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, "--version") //nolint:gosec // path comes from LookPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to probe interpreter"), "interpreter", path)
	}
	return ParseVersionBanner(string(output))
}

// ParseVersionBanner extracts the version from a "Python X.Y.Z" banner.
func ParseVersionBanner(banner string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(banner))
	if len(fields) < 2 || fields[0] != "Python" {
		return "", zerr.With(zerr.New("unrecognized interpreter banner"), "banner", strings.TrimSpace(banner))
	}
	return fields[1], nil
}

func matchesSelector(version, selector string) bool {
	return version == selector || strings.HasPrefix(version, selector+".")
}
