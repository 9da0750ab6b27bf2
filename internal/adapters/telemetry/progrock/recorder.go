// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.skiff.dev/baton/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the progrock library.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	tape *progrock.Tape
	dest io.Writer
}

// New creates a new Recorder whose tape is rendered to stderr on Close.
func New() *Recorder {
	return NewRenderedTo(os.Stderr)
}

// NewRenderedTo creates a Recorder backed by a tape that is rendered to dest
// when the recording session is closed.
func NewRenderedTo(dest io.Writer) *Recorder {
	tape := progrock.NewTape()
	tape.ShowAllOutput(true)

	return &Recorder{
		w:    tape,
		rec:  progrock.NewRecorder(tape),
		tape: tape,
		dest: dest,
	}
}

// NewRecorder creates a new Recorder with the given writer. Updates are only
// forwarded to the writer; nothing is rendered on Close.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex for the named task.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Close ends the recording session and renders the tape to the destination
// stream. The tape is closed first so every vertex renders its full log.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	if r.tape != nil {
		return r.tape.Render(r.dest, progrock.DefaultUI())
	}
	return nil
}
