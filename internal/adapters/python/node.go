package python

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/internal/core/ports"
)

const NodeID graft.ID = "adapter.interpreter_resolver"

func init() {
	graft.Register(graft.Node[ports.InterpreterResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.InterpreterResolver, error) {
			return NewResolver(), nil
		},
	})
}
