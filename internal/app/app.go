// Package app implements the application layer for baton.
package app

import (
	"context"

	"go.skiff.dev/baton/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
	"go.skiff.dev/baton/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       *runner.Runner
	watcher      ports.Watcher
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// RunOptions controls a single invocation of the runner.
type RunOptions struct {
	// Force executes every planned task even when it is up to date.
	Force bool
	// Watch keeps the process alive and reruns the targets on file changes.
	Watch bool
	// Progress renders per-task progress instead of raw output streams.
	Progress bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	run *runner.Runner,
	watch ports.Watcher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       run,
		watcher:      watch,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Run executes the requested targets. With no targets the taskfile's default
// task runs; a taskfile without a default makes an empty invocation an error.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	registry, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(targets) == 0 {
		def := registry.DefaultTask()
		if def == "" {
			return domain.ErrNoTargetsSpecified
		}
		targets = []string{def}
	}

	if opts.Watch {
		return a.watch(ctx, registry, targets, opts)
	}

	return a.runOnce(ctx, registry, targets, opts)
}

// List loads the taskfile and returns the validated registry for display.
func (a *App) List() (*domain.Registry, error) {
	registry, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return registry, nil
}

// runOnce performs a single pass over the targets with a fresh telemetry
// session.
func (a *App) runOnce(ctx context.Context, registry *domain.Registry, targets []string, opts RunOptions) error {
	telemetry := a.telemetry
	if opts.Progress {
		telemetry = progrock.New()
	}
	defer func() {
		if cerr := telemetry.Close(); cerr != nil {
			a.logger.Error(zerr.Wrap(cerr, "failed to close telemetry"))
		}
	}()

	return a.runner.Run(ctx, registry, targets, opts.Force, telemetry)
}

// watch runs the targets once, then reruns them whenever files under the
// working directory change. Failures are reported and watching continues; the
// loop ends when the context is cancelled.
func (a *App) watch(ctx context.Context, registry *domain.Registry, targets []string, opts RunOptions) error {
	if err := a.runOnce(ctx, registry, targets, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, "."); err != nil {
		return err
	}
	defer func() {
		if serr := a.watcher.Stop(); serr != nil {
			a.logger.Error(zerr.Wrap(serr, "failed to stop watcher"))
		}
	}()

	rerun := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(events []ports.WatchEvent) {
		a.logger.Info("change detected, rerunning")
		select {
		case rerun <- struct{}{}:
		default:
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-rerun:
				// Reload so taskfile edits take effect between reruns.
				reloaded, err := a.configLoader.Load(".")
				if err != nil {
					a.logger.Error(zerr.Wrap(err, "failed to reload configuration"))
					continue
				}
				if err := a.runOnce(gctx, reloaded, targets, opts); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && ctx.Err() != nil {
		// Cancellation is how watch mode ends.
		return nil
	} else if err != nil {
		return err
	}
	return nil
}
