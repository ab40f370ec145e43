// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs one pipeline command inside the run's provisioned environment.
// The process environment is merged with the following priority (low to high):
//  1. os.Environ() (system base)
//  2. the environment's bin directory, prepended to PATH
//  3. the environment's setenv, placeholder-expanded
//  4. the run's extra variables (fan-out injection)
//
// Commands run with the descriptor directory as working directory.
func (e *Executor) Execute(ctx context.Context, run *domain.Run, cmd domain.Command) error {
	argv := run.Layout.ExpandArgv(cmd.Argv, run.Env.Name.String())
	name := argv[0]
	args := argv[1:]

	cmdEnv := e.resolveEnvironment(run)

	// Resolve the executable against the merged PATH so the environment's
	// own tools win over system ones.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// Restore the original command name in Args[0]; CommandContext sets it
	// to the resolved executable path.
	if len(proc.Args) > 0 {
		proc.Args[0] = name
	}

	proc.Dir = run.Layout.ConfDir
	proc.Env = cmdEnv
	proc.Stdout = outputSink(&logWriter{logger: e.logger, level: "info"}, run.Stdout)
	proc.Stderr = outputSink(&logWriter{logger: e.logger, level: "error"}, run.Stderr)

	if err := proc.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		cmdErr := zerr.Wrap(err, "command failed")
		cmdErr = zerr.With(cmdErr, "command", cmd.Raw)
		cmdErr = zerr.With(cmdErr, "run", run.Label)
		return zerr.With(cmdErr, "exit_code", exitCode)
	}

	return nil
}

// resolveEnvironment merges environment variables with the defined priority.
func (e *Executor) resolveEnvironment(run *domain.Run) []string {
	envMap := make(map[string]string)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	// Environment bin dir shadows the system PATH
	if run.Provisioned.BinDir != "" {
		if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
			envMap["PATH"] = run.Provisioned.BinDir + string(os.PathListSeparator) + sysPath
		} else {
			envMap["PATH"] = run.Provisioned.BinDir
		}
	}

	envName := run.Env.Name.String()
	for _, v := range run.Env.SetEnv {
		envMap[v.Key] = run.Layout.Expand(v.Value, envName)
	}
	for _, v := range run.ExtraEnv {
		envMap[v.Key] = run.Layout.Expand(v.Value, envName)
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// outputSink tees process output into the run's recording writer when the
// runner attached one.
func outputSink(log io.Writer, recording io.Writer) io.Writer {
	if recording == nil {
		return log
	}
	return io.MultiWriter(log, recording)
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write forwards process output to the logger line by line.
func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	for _, line := range strings.Split(msg, "\n") {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
