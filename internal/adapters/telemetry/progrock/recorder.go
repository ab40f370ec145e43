// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/retortlabs/retort/internal/core/ports"
)

// Recorder implements ports.Telemetry on top of a progrock tape.
type Recorder struct {
	tape *progrock.Tape
	rec  *progrock.Recorder
}

var _ ports.Telemetry = (*Recorder)(nil)

// New creates a Recorder with a fresh tape.
func New() *Recorder {
	tape := progrock.NewTape()
	return &Recorder{
		tape: tape,
		rec:  progrock.NewRecorder(tape),
	}
}

// Record starts recording a new vertex for one run or provisioning step.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Tape exposes the underlying tape for rendering.
func (r *Recorder) Tape() *progrock.Tape {
	return r.tape
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.tape.Close()
}
