package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List the tasks visible to you. Employees see tasks assigned to them,
managers see tasks they created and admins see everything.

Examples:
  agency task list
  agency task list --status review
  agency task list --json`,
		RunE: handler.Command(handler.HandlerFunc(runList), errorKinds),
	}

	cmd.Flags().String("status", "", "Only show tasks in this status (todo, in-progress, review, done)")

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	var status models.Status
	if args.Has("status") {
		s, err := handler.NewFlagParser(args.GetCmd()).ParseStatus("status")
		if err != nil {
			return nil, err
		}
		status = s
	}

	tasks, err := c.App.TaskService.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(taskList, 0, len(tasks))
	for _, t := range tasks {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}
