package venv

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/internal/adapters/fs"
	"github.com/retortlabs/retort/internal/adapters/logger"
	"github.com/retortlabs/retort/internal/adapters/python"
	"github.com/retortlabs/retort/internal/adapters/state"
	"github.com/retortlabs/retort/internal/core/ports"
)

const NodeID graft.ID = "adapter.provisioner"

func init() {
	graft.Register(graft.Node[ports.Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			python.NodeID,
			state.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Provisioner, error) {
			resolver, err := graft.Dep[ports.InterpreterResolver](ctx)
			if err != nil {
				return nil, err
			}

			stores, err := graft.Dep[ports.RunStateOpener](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewProvisioner(resolver, stores, hasher, log), nil
		},
	})
}
