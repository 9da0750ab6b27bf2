// Package main is the entry point for the baton task runner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.skiff.dev/baton/cmd/baton/commands"
	"go.skiff.dev/baton/internal/app"
	"go.skiff.dev/baton/internal/core/domain"
	_ "go.skiff.dev/baton/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)
	cli.SetConfigHook(components.ConfigLoader.SetFilename)

	if err := cli.Execute(ctx); err != nil {
		// A task that exited non-zero passes its exit code through.
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			// zerr prints a pretty error report with stack trace and metadata when using %+v
			_, _ = fmt.Fprintf(stderr, "%+v\n", err)
			if cmdErr.ExitCode > 0 {
				return cmdErr.ExitCode
			}
			return 1
		}
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}
