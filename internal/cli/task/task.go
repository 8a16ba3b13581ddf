package task

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	taskservice "github.com/thenoetrevino/agency/internal/services/task"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DropCmd())
	cmd.AddCommand(ProgressCmd())
	cmd.AddCommand(TimerCmd())

	return cmd
}

// errorKinds classifies task service errors for exit codes
var errorKinds = cli.ErrorKinds{
	Validation: []error{
		taskservice.ErrEmptyTitle,
		taskservice.ErrTitleTooLong,
		taskservice.ErrNoAssignees,
		taskservice.ErrInvalidPriority,
		taskservice.ErrInvalidStatus,
		taskservice.ErrInvalidProgress,
		taskservice.ErrInvalidDueDate,
		taskservice.ErrInvalidTaskID,
		taskservice.ErrAlreadyInStatus,
	},
	NotFound:   []error{taskservice.ErrTaskNotFound},
	Permission: []error{taskservice.ErrNotPermitted},
}
