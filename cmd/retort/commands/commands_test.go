package commands_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/retortlabs/retort/cmd/retort/commands"
	"github.com/retortlabs/retort/internal/app"
	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports/mocks"
	"github.com/retortlabs/retort/internal/engine/runner"
)

type cliFixture struct {
	loader      *mocks.MockConfigLoader
	provisioner *mocks.MockProvisioner
	executor    *mocks.MockExecutor
	cli         *commands.CLI
	out         *bytes.Buffer
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &cliFixture{
		loader:      mocks.NewMockConfigLoader(ctrl),
		provisioner: mocks.NewMockProvisioner(ctrl),
		executor:    mocks.NewMockExecutor(ctrl),
		out:         &bytes.Buffer{},
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, *mocks.MockVertex) {
			v := mocks.NewMockVertex(ctrl)
			v.EXPECT().Complete(gomock.Any()).AnyTimes()
			v.EXPECT().Cached().AnyTimes()
			v.EXPECT().Stdout().Return(io.Discard).AnyTimes()
			v.EXPECT().Stderr().Return(io.Discard).AnyTimes()
			return ctx, v
		}).
		AnyTimes()

	r := runner.NewRunner(f.provisioner, f.executor, telemetry, logger)
	f.cli = commands.New(app.New(f.loader, r, logger))
	f.cli.SetOutput(f.out)

	return f
}

func testSuite(t *testing.T, env *domain.Environment) *domain.Suite {
	t.Helper()
	suite := domain.NewSuite()
	require.NoError(t, suite.AddEnvironment(env))
	require.NoError(t, suite.SetEnvlist([]string{env.Name.String()}))
	return suite
}

func testEnv(t *testing.T, name string) *domain.Environment {
	t.Helper()
	cmd, err := domain.ParseCommand("true")
	require.NoError(t, err)
	return &domain.Environment{
		Name:       domain.NewInternedString(name),
		Basepython: "2.7",
		Commands:   []domain.Command{cmd},
	}
}

func TestRun_Success(t *testing.T) {
	f := newCLIFixture(t)

	env := testEnv(t, "py27")
	layout := domain.NewLayout(t.TempDir(), "")

	f.loader.EXPECT().Load("retort.yaml").Return(testSuite(t, env), layout, nil)
	f.provisioner.EXPECT().
		Provision(gomock.Any(), env, layout, false).
		Return(domain.ProvisionedEnv{Name: env.Name}, nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	f.cli.SetArgs([]string{"run", "py27"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRun_ConfigFlag(t *testing.T) {
	f := newCLIFixture(t)

	env := testEnv(t, "py27")
	layout := domain.NewLayout(t.TempDir(), "")

	f.loader.EXPECT().Load("custom.yaml").Return(testSuite(t, env), layout, nil)
	f.provisioner.EXPECT().
		Provision(gomock.Any(), env, layout, true).
		Return(domain.ProvisionedEnv{Name: env.Name}, nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	f.cli.SetArgs([]string{"run", "--config", "custom.yaml", "--recreate"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRun_UnknownEnvironment(t *testing.T) {
	f := newCLIFixture(t)

	layout := domain.NewLayout(t.TempDir(), "")
	f.loader.EXPECT().Load("retort.yaml").Return(testSuite(t, testEnv(t, "py27")), layout, nil)

	f.cli.SetArgs([]string{"run", "py35"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvNotFound)
}

func TestList(t *testing.T) {
	f := newCLIFixture(t)

	layout := domain.NewLayout(t.TempDir(), "")
	f.loader.EXPECT().Load("retort.yaml").Return(testSuite(t, testEnv(t, "py27")), layout, nil)

	f.cli.SetArgs([]string{"list"})
	require.NoError(t, f.cli.Execute(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "py27")
	assert.Contains(t, out, "2.7")
	assert.Contains(t, out, "*")
}

func TestVersion(t *testing.T) {
	f := newCLIFixture(t)

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "retort version")
}

func TestRoot_Help(t *testing.T) {
	f := newCLIFixture(t)

	f.cli.SetArgs([]string{"--help"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "retort")
}
