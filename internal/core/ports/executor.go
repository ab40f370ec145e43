package ports

import (
	"context"

	"github.com/retortlabs/retort/internal/core/domain"
)

// Executor defines the interface for executing pipeline commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs one pipeline command inside the run's provisioned
	// environment, with the environment's bin directory on PATH and the
	// expanded setenv applied.
	//
	// It returns an error if the command exits non-zero or cannot be spawned.
	Execute(ctx context.Context, run *domain.Run, cmd domain.Command) error
}
