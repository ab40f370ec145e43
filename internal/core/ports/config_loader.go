// Package ports defines the core interfaces for the application.
package ports

import "github.com/retortlabs/retort/internal/core/domain"

// ConfigLoader defines the interface for loading the environment descriptor.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the descriptor at the given path and returns the suite
	// together with the layout derived from the descriptor location.
	Load(path string) (*domain.Suite, domain.Layout, error)
}
