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

// ProgressCmd returns the task progress subcommand
func ProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Set task progress (0-100)",
		RunE:  handler.Command(handler.HandlerFunc(runProgress), errorKinds),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	cmd.Flags().Int("value", 0, "Progress percentage (required)")
	for _, name := range []string{"id", "value"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}

	return cmd
}

func runProgress(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	updated, err := c.App.TaskService.SetProgress(ctx, types.TaskID(id), args.GetInt("value", 0))
	if err != nil {
		return nil, err
	}
	return taskCard{task: *updated, message: fmt.Sprintf("Task %d is %d%% done", id, updated.Progress)}, nil
}
