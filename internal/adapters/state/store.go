// Package state persists provisioning records between runs.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/core/domain"
	"github.com/retortlabs/retort/internal/core/ports"
)

// FileName is the store file kept inside each work directory.
const FileName = "state.json"

// Opener implements ports.RunStateOpener. Stores are cached per work
// directory so concurrent environments of one run share a single file.
type Opener struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{stores: make(map[string]*Store)}
}

// Open returns the store backed by the state file under workDir.
func (o *Opener) Open(workDir string) (ports.RunStateStore, error) {
	path := filepath.Join(workDir, FileName)

	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.stores[path]; ok {
		return s, nil
	}
	s, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	o.stores[path] = s
	return s, nil
}

// Store implements ports.RunStateStore using a flat JSON file under the
// work directory.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.ProvisionRecord
}

// NewStore creates a RunStateStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.ProvisionRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read run state store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal run state store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run state store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for run state store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write run state store")
	}

	return nil
}

// Get retrieves the provision record for a given environment name.
func (s *Store) Get(envName string) (*domain.ProvisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[envName]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the provision record.
func (s *Store) Put(record domain.ProvisionRecord) error {
	s.mu.Lock()
	s.cache[record.EnvName] = record
	s.mu.Unlock()

	return s.save()
}
