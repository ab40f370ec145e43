package runner

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/retortlabs/retort/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/retortlabs/retort/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/retortlabs/retort/internal/adapters/venv"      //nolint:depguard // Wired in engine wiring
	"github.com/retortlabs/retort/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			venv.NodeID,
			shell.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			provisioner, err := graft.Dep[ports.Provisioner](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(provisioner, executor, tel, log), nil
		},
	})
}
