package models

import (
	"time"

	"github.com/thenoetrevino/agency/internal/types"
)

// Task is a unit of assigned work as served by the CMS
type Task struct {
	ID               types.TaskID  `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Status           Status        `json:"status"`
	Priority         Priority      `json:"priority"`
	Progress         int           `json:"progress"`
	DueDate          *Timestamp    `json:"due_date,omitempty"`
	AssignedToID     *types.UserID `json:"assigned_to_id,omitempty"`
	CreatedByID      types.UserID  `json:"created_by_id"`
	Assignee         *UserRef      `json:"assignee,omitempty"`
	ActiveTimerStart *Timestamp    `json:"active_timer_start,omitempty"`
	TimeLogs         []TimeLog     `json:"time_logs,omitempty"`
	CreatedAt        Timestamp     `json:"created_at"`
	UpdatedAt        *Timestamp    `json:"updated_at,omitempty"`
}

// GetID lets output formatters print just the identifier in quiet mode
func (t Task) GetID() int {
	return int(t.ID)
}

// TimerRunning reports whether the assignee currently has a timer open
func (t Task) TimerRunning() bool {
	return t.ActiveTimerStart != nil && !t.ActiveTimerStart.IsZero()
}

// Overdue reports whether the due date has passed for an unfinished task
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.DueDate.IsZero() || t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// LoggedMinutes sums all closed timer intervals
func (t Task) LoggedMinutes() int {
	total := 0
	for _, log := range t.TimeLogs {
		total += log.DurationMinutes
	}
	return total
}

// AssigneeName returns the assignee's display name or an empty string
func (t Task) AssigneeName() string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.FullName
}

// UserRef is the abbreviated user embedded in other resources
type UserRef struct {
	ID       types.UserID `json:"id"`
	FullName string       `json:"full_name"`
}

// TimeLog is one recorded timer interval on a task
type TimeLog struct {
	ID              types.TimeLogID `json:"id"`
	TaskID          types.TaskID    `json:"task_id"`
	UserID          types.UserID    `json:"user_id"`
	StartTime       Timestamp       `json:"start_time"`
	EndTime         *Timestamp      `json:"end_time,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
}

// ValidateProgress enforces the 0..100 bound
func ValidateProgress(p int) error {
	if p < 0 || p > 100 {
		return ErrInvalidProgress
	}
	return nil
}
