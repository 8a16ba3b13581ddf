package api

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// TaskCreate is the body of POST /tasks/. The backend creates one task per
// assignee and returns all of them.
type TaskCreate struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Priority      models.Priority `json:"priority"`
	DueDate       *string         `json:"due_date"`
	AssignedToIDs []types.UserID  `json:"assigned_to_ids"`
}

// TaskUpdate is a partial update. Nil fields are omitted from the body and
// left untouched by the server.
type TaskUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *models.Status   `json:"status,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Progress    *int             `json:"progress,omitempty"`
}

// Empty reports whether the update would change nothing
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil && u.Progress == nil
}

// ListTasks returns the tasks visible to the current user
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.get(ctx, "/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates one task per assignee
func (c *Client) CreateTask(ctx context.Context, in TaskCreate) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.post(ctx, "/tasks/", in, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask applies a partial update and returns the stored task
func (c *Client) UpdateTask(ctx context.Context, id types.TaskID, in TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.put(ctx, fmt.Sprintf("/tasks/%d", id), in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartTimer opens a timer session. The server rejects it if one is running.
func (c *Client) StartTimer(ctx context.Context, id types.TaskID) (*models.Task, error) {
	var task models.Task
	if err := c.post(ctx, fmt.Sprintf("/tasks/%d/timer/start", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StopTimer closes the running timer session. The server rejects it if none is running.
func (c *Client) StopTimer(ctx context.Context, id types.TaskID) (*models.Task, error) {
	var task models.Task
	if err := c.post(ctx, fmt.Sprintf("/tasks/%d/timer/stop", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
