package ports

import "github.com/retortlabs/retort/internal/core/domain"

// RunStateStore defines the interface for persisting provisioning records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStateStore interface {
	// Get retrieves the provision record for a given environment name.
	// Returns nil, nil if not found.
	Get(envName string) (*domain.ProvisionRecord, error)

	// Put stores the provision record.
	Put(record domain.ProvisionRecord) error
}

// RunStateOpener opens the run state store rooted at a work directory.
// The work directory is only known once a descriptor has been loaded, so
// stores are opened per layout rather than injected directly.
type RunStateOpener interface {
	// Open returns the store for the given work directory.
	Open(workDir string) (RunStateStore, error)
}
