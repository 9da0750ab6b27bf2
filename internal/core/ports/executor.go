// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.skiff.dev/baton/internal/core/domain"
)

// Executor defines the interface for running a single task command.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs one command argv of the given task as a subprocess.
	//
	// The subprocess inherits the parent environment (task overrides
	// applied on top) and the parent working directory unless the task
	// sets its own. Output streams to stdout and stderr unmodified.
	//
	// A non-zero exit returns a *domain.CommandError carrying the exit code.
	Execute(ctx context.Context, task *domain.Task, argv []string, stdout, stderr io.Writer) error
}
