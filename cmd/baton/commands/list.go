package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.skiff.dev/baton/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tasks declared in the taskfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := c.app.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			defaultTask := registry.DefaultTask()
			for task := range registry.Tasks() {
				name := task.Name.String()
				marker := " "
				if name == defaultTask {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %-16s%s\n", marker, name, taskSummary(&task))
			}
			return nil
		},
	}
}

// taskSummary renders a one-line description of what the task does.
func taskSummary(task *domain.Task) string {
	var parts []string

	if len(task.Dependencies) > 0 {
		deps := make([]string, len(task.Dependencies))
		for i, dep := range task.Dependencies {
			deps[i] = dep.String()
		}
		parts = append(parts, "after "+strings.Join(deps, ", "))
	}

	switch {
	case len(task.Commands) > 0:
		parts = append(parts, strings.Join(task.Commands[0], " "))
	case task.Remove != nil:
		parts = append(parts, "removes files")
	}

	return strings.Join(parts, ": ")
}
