package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/types"
)

// TimerCmd returns the task timer parent command
func TimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start or stop the time tracker on a task",
	}

	cmd.AddCommand(timerCmd("start", "Start a timer", runTimerStart))
	cmd.AddCommand(timerCmd("stop", "Stop the running timer and log the time", runTimerStop))

	return cmd
}

func timerCmd(use, short string, run handler.HandlerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE:  handler.Command(run, errorKinds),
	}
	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	return cmd
}

func runTimerStart(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	updated, err := c.App.TaskService.StartTimer(ctx, types.TaskID(id))
	if err != nil {
		return nil, err
	}
	return taskCard{task: *updated, message: fmt.Sprintf("Timer started on task %d", id)}, nil
}

func runTimerStop(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	updated, err := c.App.TaskService.StopTimer(ctx, types.TaskID(id))
	if err != nil {
		return nil, err
	}
	return taskCard{
		task:    *updated,
		message: fmt.Sprintf("Timer stopped on task %d (%s logged in total)", id, loggedLabel(updated.LoggedMinutes())),
	}, nil
}
