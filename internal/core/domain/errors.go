package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to register a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a prerequisite that doesn't exist in the registry.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected among task prerequisites.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not present in the registry.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("task name can only contain alphanumeric characters, hyphens and underscores")

	// ErrNoTargetsSpecified is returned when no task is requested and the taskfile declares no default.
	ErrNoTargetsSpecified = zerr.New("no tasks specified and no default task configured")

	// ErrConfigNotFound is returned when the taskfile cannot be found.
	ErrConfigNotFound = zerr.New("could not find taskfile")

	// ErrConfigReadFailed is returned when the taskfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read taskfile")

	// ErrConfigParseFailed is returned when the taskfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse taskfile")

	// ErrTaskExecutionFailed is returned when a task's command sequence fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrInputNotFound is returned when a declared input resolves to nothing.
	ErrInputNotFound = zerr.New("input not found")

	// ErrCleanFailed is returned when a task's remove step cannot delete a target.
	ErrCleanFailed = zerr.New("failed to remove path")

	// ErrStoreReadFailed is returned when the run state cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run state")

	// ErrStoreWriteFailed is returned when the run state cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run state")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)
