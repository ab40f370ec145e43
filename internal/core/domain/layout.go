package domain

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Layout computes the on-disk shape of provisioned environments and expands
// the descriptor's path placeholders.
//
// Placeholders understood in setenv values and command arguments:
//
//	{confdir}   directory containing the descriptor file
//	{workdir}   work directory holding all provisioned environments
//	{envdir}    directory of the environment being run
//	{envbindir} executable directory inside the environment
type Layout struct {
	// ConfDir is the absolute directory of the loaded descriptor.
	ConfDir string
	// WorkDir is the directory under which environments are provisioned.
	WorkDir string
	// Descriptor is the path of the loaded descriptor file, when known.
	Descriptor string
}

// NewLayout builds a Layout rooted at the descriptor directory. An empty
// workDir defaults to ".retort" under the descriptor directory.
func NewLayout(confDir, workDir string) Layout {
	if workDir == "" {
		workDir = filepath.Join(confDir, ".retort")
	} else if !filepath.IsAbs(workDir) {
		workDir = filepath.Join(confDir, workDir)
	}
	return Layout{ConfDir: confDir, WorkDir: workDir}
}

// EnvDir returns the directory of a named environment.
func (l Layout) EnvDir(envName string) string {
	return filepath.Join(l.WorkDir, envName)
}

// BinDir returns the executable directory inside an environment directory.
// Virtualenv uses "Scripts" on Windows and "bin" everywhere else.
func (l Layout) BinDir(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// Expand substitutes all placeholders for the named environment.
func (l Layout) Expand(s, envName string) string {
	envDir := l.EnvDir(envName)
	r := strings.NewReplacer(
		"{confdir}", l.ConfDir,
		"{workdir}", l.WorkDir,
		"{envdir}", envDir,
		"{envbindir}", l.BinDir(envDir),
	)
	return r.Replace(s)
}

// ExpandArgv substitutes placeholders in every element of an argv slice.
func (l Layout) ExpandArgv(argv []string, envName string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = l.Expand(a, envName)
	}
	return out
}
