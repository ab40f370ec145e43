package ports

import (
	"context"

	"github.com/retortlabs/retort/internal/core/domain"
)

// Provisioner creates isolated environments with exactly-pinned dependencies.
//
// Implementations are responsible for:
//   - Resolving the environment's interpreter selector
//   - Creating the isolated environment directory under the layout's workdir
//   - Installing every enabled name==version pin, and nothing else
//   - Reusing an existing directory when the environment identity is unchanged
//
//go:generate go run go.uber.org/mock/mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Provision ensures the environment exists and is populated.
	// With recreate set, any existing directory is discarded first.
	Provision(ctx context.Context, env *domain.Environment, layout domain.Layout, recreate bool) (domain.ProvisionedEnv, error)
}
