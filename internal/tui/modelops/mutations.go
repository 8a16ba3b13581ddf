package modelops

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/services/leave"
	"github.com/thenoetrevino/agency/internal/services/task"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/state"
	"github.com/thenoetrevino/agency/internal/types"
)

// mutation runs fn off the update loop and reports the result as a
// MutationResultMsg
func mutation(m *tui.Model, action, notice string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.Ctx
	return func() tea.Msg {
		return tui.MutationResultMsg{Action: action, Notice: notice, Err: fn(ctx)}
	}
}

// Drop executes a command produced by the drag engine and keeps the cursor
// on the moved task
func Drop(m *tui.Model, cmd board.Command) tea.Cmd {
	m.Follow = cmd.TaskID
	ctx := m.Ctx
	return func() tea.Msg {
		task, err := m.App.TaskService.Drop(ctx, cmd)
		msg := tui.MutationResultMsg{Action: "Move task", Err: err}
		// a nil task means the board changed under the drop and it was absorbed
		if task != nil {
			msg.Notice = "Moved to " + cmd.Status.Title()
		}
		return msg
	}
}

// ChangeStatus moves a task one lane from the keyboard
func ChangeStatus(m *tui.Model, id types.TaskID, status models.Status) tea.Cmd {
	m.Follow = id
	return mutation(m, "Move task", "Moved to "+status.Title(), func(ctx context.Context) error {
		_, err := m.App.TaskService.ChangeStatus(ctx, id, status)
		return err
	})
}

// SetProgress stores a new progress value for a task
func SetProgress(m *tui.Model, id types.TaskID, progress int) tea.Cmd {
	return mutation(m, "Update progress", fmt.Sprintf("Progress %d%%", progress), func(ctx context.Context) error {
		_, err := m.App.TaskService.SetProgress(ctx, id, progress)
		return err
	})
}

// StartTimer opens a timer session on a task
func StartTimer(m *tui.Model, id types.TaskID) tea.Cmd {
	return mutation(m, "Start timer", "Timer started", func(ctx context.Context) error {
		_, err := m.App.TaskService.StartTimer(ctx, id)
		return err
	})
}

// StopTimer closes the running timer session on a task
func StopTimer(m *tui.Model, id types.TaskID) tea.Cmd {
	return mutation(m, "Stop timer", "Timer stopped", func(ctx context.Context) error {
		_, err := m.App.TaskService.StopTimer(ctx, id)
		return err
	})
}

// CreateTask submits the task form
func CreateTask(m *tui.Model, v state.TaskValues) tea.Cmd {
	req := task.CreateTaskRequest{
		Title:       v.Title,
		Description: v.Description,
		Priority:    v.Priority,
		DueDate:     v.DueDate,
		AssigneeIDs: v.Assignees,
	}
	return mutation(m, "Create task", "Task created", func(ctx context.Context) error {
		_, err := m.App.TaskService.Create(ctx, req)
		return err
	})
}

// CreateAnnouncement submits the announcement form
func CreateAnnouncement(m *tui.Model, v state.AnnouncementValues) tea.Cmd {
	return mutation(m, "Post announcement", "Announcement posted", func(ctx context.Context) error {
		_, err := m.App.AnnouncementService.Create(ctx, v.Title, v.Content)
		return err
	})
}

// Acknowledge marks an announcement as read by the current user
func Acknowledge(m *tui.Model, ann models.Announcement) tea.Cmd {
	return mutation(m, "Acknowledge", "Acknowledged", func(ctx context.Context) error {
		_, err := m.App.AnnouncementService.Acknowledge(ctx, ann)
		return err
	})
}

// ApplyLeave submits the leave form
func ApplyLeave(m *tui.Model, v state.LeaveValues) tea.Cmd {
	req := leave.ApplyRequest{Type: v.Type, From: v.From, To: v.To, Reason: v.Reason}
	return mutation(m, "Apply for leave", "Leave requested", func(ctx context.Context) error {
		_, err := m.App.LeaveService.Apply(ctx, req)
		return err
	})
}

// ReviewLeave approves or rejects a pending leave request
func ReviewLeave(m *tui.Model, id types.LeaveID, status models.LeaveStatus) tea.Cmd {
	notice := "Leave approved"
	if status == models.LeaveRejected {
		notice = "Leave rejected"
	}
	return mutation(m, "Review leave", notice, func(ctx context.Context) error {
		_, err := m.App.LeaveService.Review(ctx, id, status)
		return err
	})
}

// Login submits the login form
func Login(m *tui.Model, v state.LoginValues) tea.Cmd {
	ctx := m.Ctx
	return func() tea.Msg {
		u, err := m.App.Session.Login(ctx, v.EmpID, v.Password)
		return tui.LoginResultMsg{User: u, Err: err}
	}
}

// Logout clears the session
func Logout(m *tui.Model) tea.Cmd {
	ctx := m.Ctx
	return func() tea.Msg {
		return tui.LoggedOutMsg{Err: m.App.Session.Logout(ctx)}
	}
}

// PrepareTaskForm loads the assignee choices before the task form opens
func PrepareTaskForm(m *tui.Model) tea.Cmd {
	ctx := m.Ctx
	return func() tea.Msg {
		users, err := m.App.UserService.List(ctx)
		return tui.TaskFormReadyMsg{Users: users, Err: err}
	}
}
