// Package venv provisions isolated interpreter environments with
// exactly-pinned dependencies.
package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

var _ ports.Provisioner = (*Provisioner)(nil)

// commandRunner executes an external command and returns its combined output.
// It exists so tests can provision without a host interpreter.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Provisioner implements ports.Provisioner using virtualenv and pip.
type Provisioner struct {
	resolver ports.InterpreterResolver
	stores   ports.RunStateOpener
	hasher   ports.Hasher
	logger   ports.Logger
	run      commandRunner
}

// NewProvisioner creates a new Provisioner.
func NewProvisioner(
	resolver ports.InterpreterResolver,
	stores ports.RunStateOpener,
	hasher ports.Hasher,
	logger ports.Logger,
) *Provisioner {
	return &Provisioner{
		resolver: resolver,
		stores:   stores,
		hasher:   hasher,
		logger:   logger,
		run:      runCommand,
	}
}

// Provision ensures the environment directory exists and holds exactly the
// enabled pins. An existing directory is reused when the stored record still
// matches the environment's identity; recreate discards it first.
func (p *Provisioner) Provision(
	ctx context.Context,
	env *domain.Environment,
	layout domain.Layout,
	recreate bool,
) (domain.ProvisionedEnv, error) {
	name := env.Name.String()
	envDir := layout.EnvDir(name)
	binDir := layout.BinDir(envDir)
	envID := env.EnvID()

	penv := domain.ProvisionedEnv{
		Name:        env.Name,
		Dir:         envDir,
		BinDir:      binDir,
		Interpreter: interpreterPath(binDir),
		EnvID:       envID,
	}

	store, err := p.stores.Open(layout.WorkDir)
	if err != nil {
		return domain.ProvisionedEnv{}, zerr.With(zerr.Wrap(err, "failed to open run state store"), "workdir", layout.WorkDir)
	}

	if !recreate && p.canReuse(store, name, envID, envDir, layout) {
		penv.Reused = true
		return penv, nil
	}

	// Anything left on disk from a previous provision is stale at this
	// point; packages installed for an old pin set must not survive.
	if err := os.RemoveAll(envDir); err != nil {
		return domain.ProvisionedEnv{}, zerr.With(zerr.Wrap(err, "failed to remove environment"), "env_dir", envDir)
	}

	interp, version, err := p.resolver.Resolve(ctx, env.Basepython)
	if err != nil {
		return domain.ProvisionedEnv{}, err
	}
	p.logger.Info(fmt.Sprintf("provisioning %s with Python %s", name, version))

	if err := p.createEnv(ctx, interp, envDir); err != nil {
		return domain.ProvisionedEnv{}, err
	}
	if err := p.installPins(ctx, env, penv.Interpreter); err != nil {
		return domain.ProvisionedEnv{}, err
	}

	record := domain.ProvisionRecord{
		EnvName:     name,
		EnvID:       envID,
		Interpreter: interp,
		Timestamp:   time.Now().UTC(),
	}
	if layout.Descriptor != "" {
		// Best effort: the record keeps a descriptor fingerprint for
		// inspection, a hash failure does not fail provisioning.
		if hash, err := p.hasher.ComputeFileHash(layout.Descriptor); err == nil {
			record.DescriptorHash = hash
		}
	}
	if err := store.Put(record); err != nil {
		return domain.ProvisionedEnv{}, zerr.Wrap(err, "failed to persist provision record")
	}

	return penv, nil
}

// canReuse reports whether an existing environment directory still matches
// the environment's identity.
func (p *Provisioner) canReuse(store ports.RunStateStore, name, envID, envDir string, layout domain.Layout) bool {
	record, err := store.Get(name)
	if err != nil || record == nil || record.EnvID != envID {
		return false
	}
	if info, err := os.Stat(envDir); err != nil || !info.IsDir() {
		return false
	}

	if layout.Descriptor != "" && record.DescriptorHash != "" {
		if hash, err := p.hasher.ComputeFileHash(layout.Descriptor); err == nil && hash != record.DescriptorHash {
			p.logger.Info(fmt.Sprintf("descriptor changed since %s was provisioned; pins are unchanged, reusing", name))
		}
	}

	return true
}

// createEnv creates the isolated environment, preferring virtualenv and
// falling back to the stdlib venv module.
func (p *Provisioner) createEnv(ctx context.Context, interp, envDir string) error {
	if err := os.MkdirAll(filepath.Dir(envDir), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create work directory")
	}

	virtualenvOut, virtualenvErr := p.run(ctx, interp, "-m", "virtualenv", "--no-download", envDir)
	if virtualenvErr == nil {
		return nil
	}

	venvOut, venvErr := p.run(ctx, interp, "-m", "venv", envDir)
	if venvErr == nil {
		return nil
	}

	provErr := zerr.With(errors.Join(domain.ErrProvisionFailed, venvErr), "env_dir", envDir)
	provErr = zerr.With(provErr, "virtualenv_output", strings.TrimSpace(string(virtualenvOut)))
	return zerr.With(provErr, "venv_output", strings.TrimSpace(string(venvOut)))
}

// installPins installs every enabled pin in one pip invocation. Disabled
// dependencies are logged with their rationale and left out.
func (p *Provisioner) installPins(ctx context.Context, env *domain.Environment, interp string) error {
	for _, d := range env.Deps {
		if d.Disabled {
			p.logger.Warn(fmt.Sprintf("dependency %s is disabled: %s", d.Name.String(), strings.TrimSpace(d.Reason)))
		}
	}

	pins := env.PinSpecs()
	if len(pins) == 0 {
		return nil
	}

	args := append([]string{"-m", "pip", "install"}, pins...)
	output, err := p.run(ctx, interp, args...)
	if err != nil {
		installErr := zerr.With(errors.Join(domain.ErrProvisionFailed, err), "environment", env.Name.String())
		return zerr.With(installErr, "output", strings.TrimSpace(string(output)))
	}

	return nil
}

func interpreterPath(binDir string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // inputs come from the resolved interpreter and layout
	return cmd.CombinedOutput()
}
