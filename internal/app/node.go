package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/retortlabs/retort/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/retortlabs/retort/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/retortlabs/retort/internal/core/ports"
	"github.com/retortlabs/retort/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			runner.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			r, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, r, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			runner.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			r, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:       a,
				Logger:    log,
				Runner:    r,
				Telemetry: tel,
			}, nil
		},
	})
}
