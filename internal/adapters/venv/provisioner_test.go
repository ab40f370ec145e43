package venv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/retortlabs/retort/internal/adapters/venv"
	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports/mocks"
)

type call struct {
	name string
	args []string
}

func testEnvironment(t *testing.T) *domain.Environment {
	t.Helper()
	cmd, err := domain.ParseCommand("coveralls")
	require.NoError(t, err)

	mock, err := domain.ParsePin("mock==1.0.1")
	require.NoError(t, err)
	coverage, err := domain.ParsePin("coverage==3.7.1")
	require.NoError(t, err)

	return &domain.Environment{
		Name:       domain.NewInternedString("py27"),
		Basepython: "2.7",
		Deps: []domain.Dependency{
			mock,
			coverage,
			{Name: domain.NewInternedString("txrestapi"), Disabled: true, Reason: "conflicts with the Twisted pin"},
		},
		Commands: []domain.Command{cmd},
	}
}

func newProvisioner(t *testing.T, ctrl *gomock.Controller, layout domain.Layout) (
	*venv.Provisioner,
	*mocks.MockInterpreterResolver,
	*mocks.MockRunStateStore,
	*mocks.MockHasher,
	*[]call,
) {
	t.Helper()

	resolver := mocks.NewMockInterpreterResolver(ctrl)
	store := mocks.NewMockRunStateStore(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	// The store must be opened under the layout's work directory, never
	// relative to the invocation directory.
	opener := mocks.NewMockRunStateOpener(ctrl)
	opener.EXPECT().Open(layout.WorkDir).Return(store, nil)

	p := venv.NewProvisioner(resolver, opener, hasher, log)

	calls := &[]call{}
	p.SetRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		return nil, nil
	})

	return p, resolver, store, hasher, calls
}

func TestProvision_FreshEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")

	p, resolver, store, _, calls := newProvisioner(t, ctrl, layout)

	store.EXPECT().Get("py27").Return(nil, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("/usr/bin/python2.7", "2.7.18", nil)
	store.EXPECT().Put(gomock.Any()).DoAndReturn(func(record domain.ProvisionRecord) error {
		assert.Equal(t, "py27", record.EnvName)
		assert.Equal(t, env.EnvID(), record.EnvID)
		assert.Equal(t, "/usr/bin/python2.7", record.Interpreter)
		return nil
	})

	penv, err := p.Provision(context.Background(), env, layout, false)
	require.NoError(t, err)

	assert.False(t, penv.Reused)
	assert.Equal(t, layout.EnvDir("py27"), penv.Dir)
	assert.Equal(t, env.EnvID(), penv.EnvID)

	// Exactly two external invocations: create, then one pip install
	require.Len(t, *calls, 2)
	assert.Equal(t, "/usr/bin/python2.7", (*calls)[0].name)
	assert.Contains(t, (*calls)[0].args, "virtualenv")

	install := (*calls)[1]
	assert.Equal(t, penv.Interpreter, install.name)
	joined := strings.Join(install.args, " ")
	assert.Contains(t, joined, "pip install")
	assert.Contains(t, joined, "mock==1.0.1")
	assert.Contains(t, joined, "coverage==3.7.1")

	// The disabled dependency must never reach pip
	assert.NotContains(t, joined, "txrestapi")
}

func TestProvision_ReusesMatchingEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")
	require.NoError(t, os.MkdirAll(layout.EnvDir("py27"), 0o750))

	p, _, store, _, calls := newProvisioner(t, ctrl, layout)

	store.EXPECT().Get("py27").Return(&domain.ProvisionRecord{
		EnvName: "py27",
		EnvID:   env.EnvID(),
	}, nil)

	penv, err := p.Provision(context.Background(), env, layout, false)
	require.NoError(t, err)

	assert.True(t, penv.Reused)
	assert.Empty(t, *calls, "reuse must not spawn external commands")
}

func TestProvision_StaleRecordReprovisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")
	envDir := layout.EnvDir("py27")
	require.NoError(t, os.MkdirAll(filepath.Join(envDir, "lib"), 0o750))

	// A package installed for the previous pin set must not survive the
	// reprovision.
	leftover := filepath.Join(envDir, "lib", "Twisted-12.2.0.egg-info")
	require.NoError(t, os.WriteFile(leftover, []byte("stale"), 0o600))

	p, resolver, store, _, calls := newProvisioner(t, ctrl, layout)

	// Record exists but identifies a different pin set
	store.EXPECT().Get("py27").Return(&domain.ProvisionRecord{EnvName: "py27", EnvID: "stale"}, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("/usr/bin/python2.7", "2.7.18", nil)
	store.EXPECT().Put(gomock.Any()).Return(nil)

	penv, err := p.Provision(context.Background(), env, layout, false)
	require.NoError(t, err)
	assert.False(t, penv.Reused)
	assert.NotEmpty(t, *calls)
	assert.NoFileExists(t, leftover)
}

func TestProvision_RecreateSkipsReuse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")
	require.NoError(t, os.MkdirAll(layout.EnvDir("py27"), 0o750))

	p, resolver, store, _, _ := newProvisioner(t, ctrl, layout)

	// No store.Get expected: recreate bypasses the reuse check entirely
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("/usr/bin/python2.7", "2.7.18", nil)
	store.EXPECT().Put(gomock.Any()).Return(nil)

	penv, err := p.Provision(context.Background(), env, layout, true)
	require.NoError(t, err)
	assert.False(t, penv.Reused)
}

func TestProvision_InterpreterNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")

	p, resolver, store, _, _ := newProvisioner(t, ctrl, layout)

	store.EXPECT().Get("py27").Return(nil, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("", "", domain.ErrInterpreterNotFound)

	_, err := p.Provision(context.Background(), env, layout, false)
	require.ErrorIs(t, err, domain.ErrInterpreterNotFound)
}

func TestProvision_PipFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)
	layout := domain.NewLayout(t.TempDir(), "")

	p, resolver, store, _, _ := newProvisioner(t, ctrl, layout)

	store.EXPECT().Get("py27").Return(nil, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("/usr/bin/python2.7", "2.7.18", nil)

	p.SetRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		for _, a := range args {
			if a == "pip" {
				return []byte("No matching distribution found"), errors.New("exit status 1")
			}
		}
		return nil, nil
	})

	_, err := p.Provision(context.Background(), env, layout, false)
	require.ErrorIs(t, err, domain.ErrProvisionFailed)
}

func TestProvision_DescriptorHashRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnvironment(t)

	confDir := t.TempDir()
	descriptor := filepath.Join(confDir, "retort.yaml")
	require.NoError(t, os.WriteFile(descriptor, []byte("envlist: [py27]\n"), 0o600))
	layout := domain.NewLayout(confDir, "")
	layout.Descriptor = descriptor

	p, resolver, store, hasher, _ := newProvisioner(t, ctrl, layout)

	store.EXPECT().Get("py27").Return(nil, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "2.7").Return("/usr/bin/python2.7", "2.7.18", nil)
	hasher.EXPECT().ComputeFileHash(descriptor).Return("feedface00000000", nil)
	store.EXPECT().Put(gomock.Any()).DoAndReturn(func(record domain.ProvisionRecord) error {
		assert.Equal(t, "feedface00000000", record.DescriptorHash)
		return nil
	})

	_, err := p.Provision(context.Background(), env, layout, false)
	require.NoError(t, err)
}
