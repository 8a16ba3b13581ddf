package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	taskservice "github.com/thenoetrevino/agency/internal/services/task"
	"github.com/thenoetrevino/agency/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task. The CMS creates one copy per assignee.
Only managers and admins can create tasks.

Examples:
  agency task create --title "Cut trailer" --assignee 3
  agency task create --title "Launch" --assignee 3,4 --priority high --due 2026-11-20
  agency task create --title "Launch" --assignee 3 --quiet`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), errorKinds),
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("priority", "", "Priority: low, medium, high, urgent (default medium)")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().IntSlice("assignee", nil, "Assignee user IDs (required, repeatable)")
	if err := cmd.MarkFlagRequired("assignee"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	priority, err := handler.NewFlagParser(args.GetCmd()).ParsePriority("priority")
	if err != nil {
		return nil, err
	}

	raw := args.GetIntSlice("assignee", nil)
	assignees := make([]types.UserID, len(raw))
	for i, id := range raw {
		assignees[i] = types.UserID(id)
	}

	created, err := c.App.TaskService.Create(ctx, taskservice.CreateTaskRequest{
		Title:       args.GetString("title", ""),
		Description: args.GetString("description", ""),
		Priority:    priority,
		DueDate:     args.GetString("due", ""),
		AssigneeIDs: assignees,
	})
	if err != nil {
		return nil, err
	}
	return createdTasks(created), nil
}

type createdTasks []models.Task

func (c createdTasks) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(c))
	refs := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.GetID()
		refs[i] = fmt.Sprintf("#%d", t.ID)
	}

	switch {
	case f.Quiet:
		return f.List(nil, ids, nil, nil)
	case f.JSON:
		return f.Envelope([]models.Task(c))
	}
	return f.Message(nil, "Created %d task(s): %s", len(c), strings.Join(refs, ", "))
}
