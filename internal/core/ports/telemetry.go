package ports

import (
	"context"
	"io"
)

// Telemetry records progress of environment runs and their commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer capturing the unit's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the unit's error output.
	Stderr() io.Writer

	// Cached marks the vertex as satisfied without doing work.
	Cached()

	// Complete marks the vertex as finished, with err nil on success.
	Complete(err error)
}
