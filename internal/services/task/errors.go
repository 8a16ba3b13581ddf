package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrNoAssignees     = errors.New("task needs at least one assignee")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrNotPermitted    = errors.New("only managers and admins can create tasks")

	// Business logic errors
	ErrTaskNotFound    = errors.New("task not found")
	ErrAlreadyInStatus = errors.New("task is already in that status")
)
