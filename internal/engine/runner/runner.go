// Package runner implements sequential task execution.
package runner

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task within a run.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task was skipped because it was up to date.
	StatusCached TaskStatus = "Cached"
)

// Runner executes planned tasks one at a time, in order, stopping at the
// first failure.
type Runner struct {
	executor ports.Executor
	hasher   ports.Hasher
	verifier ports.Verifier
	store    ports.RunInfoStore
	cleaner  ports.Cleaner
	logger   ports.Logger
	rootDir  string

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewRunner creates a Runner over the given adapters, operating in the
// current working directory.
func NewRunner(
	executor ports.Executor,
	hasher ports.Hasher,
	verifier ports.Verifier,
	store ports.RunInfoStore,
	cleaner ports.Cleaner,
	logger ports.Logger,
) *Runner {
	return &Runner{
		executor:   executor,
		hasher:     hasher,
		verifier:   verifier,
		store:      store,
		cleaner:    cleaner,
		logger:     logger,
		rootDir:    ".",
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// Status returns the recorded status of a task, or StatusPending if the task
// has not been seen.
func (r *Runner) Status(name domain.InternedString) TaskStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status, ok := r.taskStatus[name]; ok {
		return status
	}
	return StatusPending
}

func (r *Runner) updateStatus(name domain.InternedString, status TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskStatus[name] = status
}

// Run plans the given targets against the registry and executes the plan
// sequentially. The first failing task aborts the run and its error is
// returned unwrappable to the underlying *domain.CommandError. When force is
// set, freshness checks are skipped and every planned task executes.
func (r *Runner) Run(ctx context.Context, registry *domain.Registry, targets []string, force bool, telemetry ports.Telemetry) error {
	plan, err := registry.Plan(targets)
	if err != nil {
		return err
	}

	r.mu.Lock()
	for _, task := range plan {
		r.taskStatus[task.Name] = StatusPending
	}
	r.mu.Unlock()

	env := parseEnvironment()

	for i := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runTask(ctx, &plan[i], env, force, telemetry); err != nil {
			return err
		}
	}

	return nil
}

// runTask executes one task end to end: native remove step, freshness check,
// command execution, and fingerprint recording.
func (r *Runner) runTask(ctx context.Context, task *domain.Task, env map[string]string, force bool, telemetry ports.Telemetry) error {
	ctx, vertex := telemetry.Record(ctx, task.Name.String())

	if task.Remove != nil {
		if err := r.cleaner.Clean(r.rootDir, task.Remove); err != nil {
			r.updateStatus(task.Name, StatusFailed)
			vertex.Complete(err)
			return zerr.With(err, "task", task.Name.String())
		}
	}

	inputHash, fresh, err := r.checkFreshness(task, env, force)
	if err != nil {
		r.updateStatus(task.Name, StatusFailed)
		vertex.Complete(err)
		return zerr.With(err, "task", task.Name.String())
	}
	if fresh {
		r.updateStatus(task.Name, StatusCached)
		vertex.Cached()
		r.logger.Info(task.Name.String() + ": up to date")
		return nil
	}

	r.updateStatus(task.Name, StatusRunning)

	for _, argv := range task.Commands {
		if err := r.executor.Execute(ctx, task, argv, vertex.Stdout(), vertex.Stderr()); err != nil {
			r.updateStatus(task.Name, StatusFailed)
			vertex.Complete(err)
			wrapped := zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error())
			wrapped = zerr.With(wrapped, "task", task.Name.String())
			return zerr.With(wrapped, "command", strings.Join(argv, " "))
		}
	}

	if err := r.recordRun(task, inputHash); err != nil {
		r.updateStatus(task.Name, StatusFailed)
		vertex.Complete(err)
		return zerr.With(err, "task", task.Name.String())
	}

	r.updateStatus(task.Name, StatusCompleted)
	vertex.Complete(nil)
	return nil
}

// checkFreshness decides whether a task can be skipped. Only tasks that
// declare inputs participate; everything else always runs. The computed input
// hash is returned so a subsequent recordRun does not hash twice.
func (r *Runner) checkFreshness(task *domain.Task, env map[string]string, force bool) (inputHash string, fresh bool, err error) {
	if len(task.Inputs) == 0 {
		return "", false, nil
	}

	inputHash, err = r.hasher.ComputeInputHash(task, env, r.rootDir)
	if err != nil {
		return "", false, err
	}

	if force {
		return inputHash, false, nil
	}

	info, err := r.store.Get(task.Name.String())
	if err != nil || info == nil || info.InputHash != inputHash {
		return inputHash, false, nil //nolint:nilerr // A broken store entry means rerun, not failure
	}

	if len(task.Outputs) > 0 {
		outputs := make([]string, len(task.Outputs))
		for i, o := range task.Outputs {
			outputs[i] = o.String()
		}
		ok, verr := r.verifier.VerifyOutputs(r.rootDir, outputs)
		if verr != nil || !ok {
			return inputHash, false, nil //nolint:nilerr // Missing outputs mean rerun, not failure
		}
	}

	return inputHash, true, nil
}

// recordRun persists the fingerprint of a successful run for tasks that
// declare inputs.
func (r *Runner) recordRun(task *domain.Task, inputHash string) error {
	if len(task.Inputs) == 0 {
		return nil
	}

	outputs := make([]string, len(task.Outputs))
	for i, o := range task.Outputs {
		outputs[i] = o.String()
	}
	outputHash, err := r.hasher.ComputeOutputHash(outputs, r.rootDir)
	if err != nil {
		return zerr.Wrap(err, "failed to fingerprint outputs")
	}

	return r.store.Put(domain.RunInfo{
		TaskName:   task.Name.String(),
		InputHash:  inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
}

// parseEnvironment converts os.Environ into a map.
func parseEnvironment() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		if key, value, ok := strings.Cut(e, "="); ok {
			env[key] = value
		}
	}
	return env
}
