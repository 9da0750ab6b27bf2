package runner_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.skiff.dev/baton/internal/adapters/telemetry"
	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports/mocks"
	"go.skiff.dev/baton/internal/engine/runner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	executor *mocks.MockExecutor
	hasher   *mocks.MockHasher
	verifier *mocks.MockVerifier
	store    *mocks.MockRunInfoStore
	cleaner  *mocks.MockCleaner
	runner   *runner.Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	executor := mocks.NewMockExecutor(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	verifier := mocks.NewMockVerifier(ctrl)
	store := mocks.NewMockRunInfoStore(ctrl)
	cleaner := mocks.NewMockCleaner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return &fixture{
		executor: executor,
		hasher:   hasher,
		verifier: verifier,
		store:    store,
		cleaner:  cleaner,
		runner:   runner.NewRunner(executor, hasher, verifier, store, cleaner, logger),
	}
}

func registryOf(t *testing.T, tasks ...*domain.Task) *domain.Registry {
	t.Helper()
	r := domain.NewRegistry()
	for _, task := range tasks {
		require.NoError(t, r.AddTask(task))
	}
	require.NoError(t, r.Validate())
	return r
}

func plainTask(name string, deps ...string) *domain.Task {
	interned := make([]domain.InternedString, len(deps))
	for i, d := range deps {
		interned[i] = domain.NewInternedString(d)
	}
	return &domain.Task{
		Name:         domain.NewInternedString(name),
		Commands:     [][]string{{name}},
		Dependencies: interned,
	}
}

func TestRunner_Run_PrerequisitesFirst(t *testing.T) {
	f := newFixture(t)
	reg := registryOf(t, plainTask("lint"), plainTask("test", "lint"))

	gomock.InOrder(
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"lint"}, gomock.Any(), gomock.Any()).
			Return(nil),
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"test"}, gomock.Any(), gomock.Any()).
			Return(nil),
	)

	err := f.runner.Run(t.Context(), reg, []string{"test"}, false, telemetry.NewNoop())
	require.NoError(t, err)

	require.Equal(t, runner.StatusCompleted, f.runner.Status(domain.NewInternedString("lint")))
	require.Equal(t, runner.StatusCompleted, f.runner.Status(domain.NewInternedString("test")))
}

func TestRunner_Run_FailFast(t *testing.T) {
	f := newFixture(t)
	reg := registryOf(t, plainTask("lint"), plainTask("test"))

	cmdErr := &domain.CommandError{Argv: []string{"lint"}, ExitCode: 2}
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"lint"}, gomock.Any(), gomock.Any()).
		Return(cmdErr)
	// The second target must never start.

	err := f.runner.Run(t.Context(), reg, []string{"lint", "test"}, false, telemetry.NewNoop())
	require.Error(t, err)

	var got *domain.CommandError
	require.True(t, errors.As(err, &got))
	require.Equal(t, 2, got.ExitCode)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	require.Equal(t, "lint", zErr.Metadata()["task"])

	require.Equal(t, runner.StatusFailed, f.runner.Status(domain.NewInternedString("lint")))
	require.Equal(t, runner.StatusPending, f.runner.Status(domain.NewInternedString("test")))
}

func TestRunner_Run_StopsAtFailingCommand(t *testing.T) {
	f := newFixture(t)
	task := plainTask("multi")
	task.Commands = [][]string{{"first"}, {"second"}, {"third"}}
	reg := registryOf(t, task)

	gomock.InOrder(
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"first"}, gomock.Any(), gomock.Any()).
			Return(nil),
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"second"}, gomock.Any(), gomock.Any()).
			Return(&domain.CommandError{Argv: []string{"second"}, ExitCode: 1}),
	)

	err := f.runner.Run(t.Context(), reg, []string{"multi"}, false, telemetry.NewNoop())
	require.Error(t, err)
}

func TestRunner_Run_CancelledContextAbortsRemainder(t *testing.T) {
	f := newFixture(t)
	reg := registryOf(t, plainTask("lint"), plainTask("test"))

	ctx, cancel := context.WithCancel(t.Context())
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"lint"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Task, []string, io.Writer, io.Writer) error {
			cancel()
			return nil
		})
	// The second target must never start after cancellation.

	err := f.runner.Run(ctx, reg, []string{"lint", "test"}, false, telemetry.NewNoop())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, runner.StatusPending, f.runner.Status(domain.NewInternedString("test")))
}

func TestRunner_Run_CancelledBeforeStart(t *testing.T) {
	f := newFixture(t)
	reg := registryOf(t, plainTask("lint"))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	// Nothing executes with a cancelled context.

	err := f.runner.Run(ctx, reg, []string{"lint"}, false, telemetry.NewNoop())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, runner.StatusPending, f.runner.Status(domain.NewInternedString("lint")))
}

func TestRunner_Run_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	reg := registryOf(t, plainTask("lint"))

	err := f.runner.Run(t.Context(), reg, []string{"deploy"}, false, telemetry.NewNoop())
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrTaskNotFound))
}

func TestRunner_Run_SkipsFreshTask(t *testing.T) {
	f := newFixture(t)
	task := plainTask("test")
	task.Inputs = []domain.InternedString{domain.NewInternedString("*.py")}
	reg := registryOf(t, task)

	f.hasher.EXPECT().
		ComputeInputHash(gomock.Any(), gomock.Any(), ".").
		Return("h1", nil)
	f.store.EXPECT().
		Get("test").
		Return(&domain.RunInfo{TaskName: "test", InputHash: "h1"}, nil)
	// Executor must not run.

	err := f.runner.Run(t.Context(), reg, []string{"test"}, false, telemetry.NewNoop())
	require.NoError(t, err)
	require.Equal(t, runner.StatusCached, f.runner.Status(domain.NewInternedString("test")))
}

func TestRunner_Run_StaleHashReruns(t *testing.T) {
	f := newFixture(t)
	task := plainTask("test")
	task.Inputs = []domain.InternedString{domain.NewInternedString("*.py")}
	reg := registryOf(t, task)

	f.hasher.EXPECT().
		ComputeInputHash(gomock.Any(), gomock.Any(), ".").
		Return("h2", nil)
	f.store.EXPECT().
		Get("test").
		Return(&domain.RunInfo{TaskName: "test", InputHash: "h1"}, nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"test"}, gomock.Any(), gomock.Any()).
		Return(nil)
	f.hasher.EXPECT().
		ComputeOutputHash(gomock.Any(), ".").
		Return("o1", nil)
	f.store.EXPECT().
		Put(gomock.Any()).
		DoAndReturn(func(info domain.RunInfo) error {
			require.Equal(t, "test", info.TaskName)
			require.Equal(t, "h2", info.InputHash)
			return nil
		})

	err := f.runner.Run(t.Context(), reg, []string{"test"}, false, telemetry.NewNoop())
	require.NoError(t, err)
	require.Equal(t, runner.StatusCompleted, f.runner.Status(domain.NewInternedString("test")))
}

func TestRunner_Run_ForceBypassesFreshness(t *testing.T) {
	f := newFixture(t)
	task := plainTask("test")
	task.Inputs = []domain.InternedString{domain.NewInternedString("*.py")}
	reg := registryOf(t, task)

	f.hasher.EXPECT().
		ComputeInputHash(gomock.Any(), gomock.Any(), ".").
		Return("h1", nil)
	// The store is never consulted when force is set.
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"test"}, gomock.Any(), gomock.Any()).
		Return(nil)
	f.hasher.EXPECT().
		ComputeOutputHash(gomock.Any(), ".").
		Return("o1", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := f.runner.Run(t.Context(), reg, []string{"test"}, true, telemetry.NewNoop())
	require.NoError(t, err)
}

func TestRunner_Run_MissingOutputsRerun(t *testing.T) {
	f := newFixture(t)
	task := plainTask("build")
	task.Inputs = []domain.InternedString{domain.NewInternedString("*.py")}
	task.Outputs = []domain.InternedString{domain.NewInternedString("out.bin")}
	reg := registryOf(t, task)

	f.hasher.EXPECT().
		ComputeInputHash(gomock.Any(), gomock.Any(), ".").
		Return("h1", nil)
	f.store.EXPECT().
		Get("build").
		Return(&domain.RunInfo{TaskName: "build", InputHash: "h1"}, nil)
	f.verifier.EXPECT().
		VerifyOutputs(".", []string{"out.bin"}).
		Return(false, nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"build"}, gomock.Any(), gomock.Any()).
		Return(nil)
	f.hasher.EXPECT().
		ComputeOutputHash([]string{"out.bin"}, ".").
		Return("o1", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := f.runner.Run(t.Context(), reg, []string{"build"}, false, telemetry.NewNoop())
	require.NoError(t, err)
}

func TestRunner_Run_RemoveStep(t *testing.T) {
	f := newFixture(t)
	task := &domain.Task{
		Name:   domain.NewInternedString("clean"),
		Remove: &domain.RemoveSpec{Patterns: []string{"*.pyc"}},
	}
	reg := registryOf(t, task)

	f.cleaner.EXPECT().
		Clean(".", task.Remove).
		Return(nil)

	err := f.runner.Run(t.Context(), reg, []string{"clean"}, false, telemetry.NewNoop())
	require.NoError(t, err)
	require.Equal(t, runner.StatusCompleted, f.runner.Status(domain.NewInternedString("clean")))
}

func TestRunner_Run_AggregateTask(t *testing.T) {
	f := newFixture(t)
	lint := plainTask("lint")
	test := plainTask("test")
	all := &domain.Task{
		Name: domain.NewInternedString("all"),
		Dependencies: []domain.InternedString{
			domain.NewInternedString("lint"),
			domain.NewInternedString("test"),
		},
	}
	reg := registryOf(t, lint, test, all)

	gomock.InOrder(
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"lint"}, gomock.Any(), gomock.Any()).
			Return(nil),
		f.executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"test"}, gomock.Any(), gomock.Any()).
			Return(nil),
	)

	err := f.runner.Run(t.Context(), reg, []string{"all"}, false, telemetry.NewNoop())
	require.NoError(t, err)
	require.Equal(t, runner.StatusCompleted, f.runner.Status(domain.NewInternedString("all")))
}
