package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records per-task progress for a run.
type Telemetry interface {
	// Record starts recording a new vertex for the named task.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one task's slot in the progress record.
type Vertex interface {
	// Stdout returns the writer for the task's standard output stream.
	Stdout() io.Writer
	// Stderr returns the writer for the task's standard error stream.
	Stderr() io.Writer
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as skipped because the task was up to date.
	Cached()
}
