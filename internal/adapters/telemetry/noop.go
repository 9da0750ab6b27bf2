// Package telemetry provides the default pass-through progress recorder.
package telemetry

import (
	"context"
	"io"
	"os"

	"go.skiff.dev/baton/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a telemetry implementation that records nothing. Task output is
// passed straight through to the process streams.
type Noop struct{}

// NewNoop creates a telemetry sink that discards all recording.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns the context unchanged and a pass-through vertex.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return os.Stdout }
func (noopVertex) Stderr() io.Writer { return os.Stderr }
func (noopVertex) Complete(error)    {}
func (noopVertex) Cached()           {}
