package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another status",
		Long: `Move a task to another status by direction or status name.

Moving to done sets progress to 100. Moving a finished task back to todo
resets progress to 0.

Examples:
  # Move to next lane
  agency task move --id 1 next

  # Move to previous lane
  agency task move --id 1 prev

  # Move to a status by name (case-insensitive)
  agency task move --id 1 "In Progress"
  agency task move --id 1 done

  # JSON output for agents
  agency task move --id 1 next --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runMove), errorKinds),
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func runMove(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	taskID := types.TaskID(id)

	current, err := c.App.TaskService.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var target models.Status
	switch strings.ToLower(args.Args[0]) {
	case "next", "prev":
		delta := 1
		if strings.EqualFold(args.Args[0], "prev") {
			delta = -1
		}
		next, ok := board.Neighbor(current.Status, delta)
		if !ok {
			return nil, fmt.Errorf("%w: task is already in the %s lane (%s)",
				handler.ErrInvalidFlag, edge(delta), current.Status.Title())
		}
		target = next
	default:
		target, err = handler.ParseStatusArg(args.Args[0])
		if err != nil {
			return nil, err
		}
	}

	updated, err := c.App.TaskService.ChangeStatus(ctx, taskID, target)
	if err != nil {
		return nil, err
	}
	return taskCard{
		task:    *updated,
		message: fmt.Sprintf("Task %d moved from '%s' to '%s'", id, current.Status.Title(), updated.Status.Title()),
	}, nil
}

func edge(delta int) string {
	if delta > 0 {
		return "last"
	}
	return "first"
}
