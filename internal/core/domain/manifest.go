package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Fanout expands one environment into a run per manifest entry. The manifest
// is a plain text file with one entry per line: the entry name optionally
// followed by the platforms it applies to. Entries whose platform list does
// not include the current platform are skipped, as are entries in Skip.
// Each expanded run gets Variable=<entry> injected into its setenv.
type Fanout struct {
	Manifest string
	Variable string
	Skip     []string
}

// Validate checks the fan-out invariants.
func (f *Fanout) Validate() error {
	if strings.TrimSpace(f.Manifest) == "" {
		return zerr.With(zerr.Wrap(ErrMalformedManifest, "validating fan-out"), "reason", "missing manifest path")
	}
	if strings.TrimSpace(f.Variable) == "" {
		return zerr.With(zerr.Wrap(ErrMalformedManifest, "validating fan-out"), "reason", "missing variable name")
	}
	return nil
}

// ManifestEntry is one parsed fan-out entry. An empty Platforms slice means
// the entry applies everywhere.
type ManifestEntry struct {
	Name      string
	Platforms []string
}

// ParseManifest parses manifest data into entries. Duplicate names are
// merged by unioning their platform lists, preserving first-seen order.
func ParseManifest(data string) ([]ManifestEntry, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, zerr.With(zerr.Wrap(ErrMalformedManifest, "parsing manifest"), "reason", "empty manifest")
	}

	index := make(map[string]int)
	var entries []ManifestEntry

	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		var platforms []string
		if len(fields) > 1 {
			platforms = fields[1:]
		}

		if i, seen := index[name]; seen {
			for _, p := range platforms {
				if !slices.Contains(entries[i].Platforms, p) {
					entries[i].Platforms = append(entries[i].Platforms, p)
				}
			}
			continue
		}

		index[name] = len(entries)
		entries = append(entries, ManifestEntry{Name: name, Platforms: platforms})
	}

	return entries, nil
}

// NormalizePlatform folds platform variants into the form manifests use:
// all linux flavors become "linux" and the mac flavors become "osx".
func NormalizePlatform(platform string) string {
	switch {
	case strings.HasPrefix(platform, "linux"):
		return "linux"
	case strings.HasPrefix(platform, "macosx"), strings.HasPrefix(platform, "osx"), platform == "darwin":
		return "osx"
	default:
		return platform
	}
}

// AppliesTo reports whether the entry should run on the given platform.
func (e ManifestEntry) AppliesTo(platform string) bool {
	if len(e.Platforms) == 0 {
		return true
	}
	return slices.Contains(e.Platforms, NormalizePlatform(platform))
}

// ExpandEntries filters parsed entries down to the runs a fan-out produces
// on the given platform, honoring the skip list.
func (f *Fanout) ExpandEntries(entries []ManifestEntry, platform string) []ManifestEntry {
	var out []ManifestEntry
	for _, e := range entries {
		if slices.Contains(f.Skip, e.Name) {
			continue
		}
		if !e.AppliesTo(platform) {
			continue
		}
		out = append(out, e)
	}
	return out
}
