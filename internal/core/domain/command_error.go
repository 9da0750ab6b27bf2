package domain

import (
	"fmt"
	"strings"
)

// CommandError reports a subprocess that could not run or exited non-zero.
// The exit code propagates to the process exit status of the runner itself.
type CommandError struct {
	Argv     []string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", strings.Join(e.Argv, " "), e.ExitCode)
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
