package state

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/internal/core/ports"
)

const NodeID graft.ID = "adapter.run_state_opener"

func init() {
	graft.Register(graft.Node[ports.RunStateOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RunStateOpener, error) {
			return NewOpener(), nil
		},
	})
}
