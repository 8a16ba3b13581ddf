package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// DropCmd returns the task drop subcommand
func DropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop a task onto a lane or another task",
		Long: `Replay a board drag from the command line. The target is a lane name
(todo, in-progress, review, done) or the ID of another task; dropping on a
task moves the dragged task into that task's lane.

Drops that would change nothing (same lane, onto itself, unknown target)
succeed without contacting the server.

Examples:
  agency task drop --id 4 --onto review
  agency task drop --id 4 --onto 9`,
		RunE: handler.Command(handler.HandlerFunc(runDrop), errorKinds),
	}

	cmd.Flags().Int("id", 0, "Task being dragged (required)")
	cmd.Flags().String("onto", "", "Lane name or task ID to drop on")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

// dropResult is the outcome of a replayed drag
type dropResult struct {
	TaskID types.TaskID  `json:"task_id"`
	Moved  bool          `json:"moved"`
	Status models.Status `json:"status,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

func (d dropResult) GetID() int {
	return int(d.TaskID)
}

func (d dropResult) Present(f *cli.OutputFormatter) error {
	if d.Moved {
		return f.Message(d, "Task %d dropped into '%s'", d.TaskID, d.Status.Title())
	}
	return f.Message(d, "Task %d not moved: %s", d.TaskID, d.Reason)
}

func runDrop(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	taskID := types.TaskID(id)

	tasks, err := c.App.TaskService.List(ctx)
	if err != nil {
		return nil, err
	}

	var target *board.TargetID
	if onto := strings.TrimSpace(args.GetString("onto", "")); onto != "" {
		t := dropTarget(onto)
		target = &t
	}

	cmd, outcome := board.Reconcile(taskID, target, tasks)
	if outcome != board.Moved {
		return dropResult{TaskID: taskID, Reason: outcome.String()}, nil
	}

	updated, err := c.App.TaskService.Drop(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return dropResult{TaskID: taskID, Reason: "board changed before the drop was applied"}, nil
	}
	return dropResult{TaskID: taskID, Moved: true, Status: updated.Status}, nil
}

// dropTarget reads a lane name as its column target and anything else as a
// raw target ID
func dropTarget(onto string) board.TargetID {
	if s, err := models.ParseStatus(onto); err == nil {
		return board.ColumnTarget(s)
	}
	return board.TargetID(onto)
}
