// Package telemetry provides run progress recording.
package telemetry

import (
	"context"
	"io"

	"github.com/retortlabs/retort/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns the context unchanged and a vertex that does nothing.
func (t *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoopVertex{}
}

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Stdout returns a writer that discards everything.
func (v *NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns a writer that discards everything.
func (v *NoopVertex) Stderr() io.Writer { return io.Discard }

// Cached does nothing.
func (v *NoopVertex) Cached() {}

// Complete does nothing.
func (v *NoopVertex) Complete(_ error) {}
