package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retortlabs/retort/internal/adapters/state"
	"github.com/retortlabs/retort/internal/core/domain"
)

func TestStore_PutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := state.NewStore(path)
	require.NoError(t, err)

	record := domain.ProvisionRecord{
		EnvName:        "py27",
		EnvID:          "abc123",
		DescriptorHash: "deadbeefcafef00d",
		Interpreter:    "/usr/bin/python2.7",
		Timestamp:      time.Now().UTC(),
	}
	require.NoError(t, s.Put(record))

	got, err := s.Get("py27")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.EnvID, got.EnvID)
	assert.Equal(t, record.Interpreter, got.Interpreter)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	s, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	got, err := s.Get("py36")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s1, err := state.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put(domain.ProvisionRecord{EnvName: "py27", EnvID: "id-1"}))

	s2, err := state.NewStore(path)
	require.NoError(t, err)
	got, err := s2.Get("py27")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "id-1", got.EnvID)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := state.NewStore(path)
	require.Error(t, err)
}

func TestOpener_RootsStoreUnderWorkDir(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), ".retort")

	o := state.NewOpener()
	s, err := o.Open(workDir)
	require.NoError(t, err)
	require.NoError(t, s.Put(domain.ProvisionRecord{EnvName: "py27", EnvID: "id-1"}))

	assert.FileExists(t, filepath.Join(workDir, state.FileName))
}

func TestOpener_CachesPerWorkDir(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), ".retort")

	o := state.NewOpener()
	s1, err := o.Open(workDir)
	require.NoError(t, err)
	s2, err := o.Open(workDir)
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	other, err := o.Open(filepath.Join(t.TempDir(), ".retort"))
	require.NoError(t, err)
	assert.NotSame(t, s1, other)
}

func TestStore_EmptyFileIsFine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := state.NewStore(path)
	require.NoError(t, err)
	got, err := s.Get("py27")
	require.NoError(t, err)
	assert.Nil(t, got)
}
