// Package shell provides the subprocess executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs one command argv of the task as a subprocess.
//
// The subprocess environment is os.Environ() with the task's environment
// entries applied on top. The working directory is inherited unless the task
// sets its own. Stdout and stderr stream to the given writers unmodified.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, argv []string, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user provided command

	if task.WorkingDir.String() != "" {
		cmd.Dir = task.WorkingDir.String()
	}

	cmd.Env = resolveEnvironment(os.Environ(), task.Environment)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		// Exit code -1 covers start failures and signal deaths.
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &domain.CommandError{
			Argv:     argv,
			ExitCode: exitCode,
			Err:      err,
		}
	}

	return nil
}

// resolveEnvironment layers the task's environment entries over the system
// environment.
func resolveEnvironment(sysEnv []string, taskEnv map[string]string) []string {
	if len(taskEnv) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
