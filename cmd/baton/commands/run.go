package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.skiff.dev/baton/internal/app"
	"go.skiff.dev/baton/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the named tasks and their prerequisites in order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			watch, _ := cmd.Flags().GetBool("watch")
			progress, _ := cmd.Flags().GetBool("progress")

			err := c.app.Run(cmd.Context(), args, app.RunOptions{
				Force:    force,
				Watch:    watch,
				Progress: progress,
			})
			if errors.Is(err, domain.ErrNoTargetsSpecified) {
				// No tasks named and the taskfile declares no default.
				_ = cmd.Help()
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Run tasks even when they are up to date")
	cmd.Flags().BoolP("watch", "w", false, "Rerun the tasks whenever files change")
	cmd.Flags().BoolP("progress", "p", false, "Render per-task progress instead of raw output")
	return cmd
}
