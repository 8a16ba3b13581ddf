// Package task is the task service: reads come from the cache, writes go to
// the API and then refetch the task collection.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// Client is the part of the REST client the task service uses
type Client interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in api.TaskCreate) ([]models.Task, error)
	UpdateTask(ctx context.Context, id types.TaskID, in api.TaskUpdate) (*models.Task, error)
	StartTimer(ctx context.Context, id types.TaskID) (*models.Task, error)
	StopTimer(ctx context.Context, id types.TaskID) (*models.Task, error)
}

// Viewer supplies the logged-in user
type Viewer interface {
	User() *models.User
}

// Service defines all task-related operations
type Service interface {
	// Read operations
	Collection() *cache.Resource[[]models.Task]
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id types.TaskID) (models.Task, error)

	// Write operations
	Create(ctx context.Context, req CreateTaskRequest) ([]models.Task, error)
	ChangeStatus(ctx context.Context, id types.TaskID, status models.Status) (*models.Task, error)
	SetProgress(ctx context.Context, id types.TaskID, progress int) (*models.Task, error)
	StartTimer(ctx context.Context, id types.TaskID) (*models.Task, error)
	StopTimer(ctx context.Context, id types.TaskID) (*models.Task, error)

	// Drop executes a command produced by the board engine
	Drop(ctx context.Context, cmd board.Command) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// The backend creates one task per assignee.
type CreateTaskRequest struct {
	Title       string
	Description string
	Priority    models.Priority // empty means MEDIUM
	DueDate     string          // optional, YYYY-MM-DD
	AssigneeIDs []types.UserID
}

type service struct {
	client Client
	viewer Viewer
	store  *cache.Store
	tasks  *cache.Resource[[]models.Task]
}

// NewService creates a task service and registers the task collection in
// store, polled every interval
func NewService(client Client, viewer Viewer, store *cache.Store, every time.Duration) Service {
	return &service{
		client: client,
		viewer: viewer,
		store:  store,
		tasks:  cache.Register(store, cache.Tasks, every, client.ListTasks),
	}
}

func (s *service) Collection() *cache.Resource[[]models.Task] {
	return s.tasks
}

// List returns the cached tasks, loading them first if needed
func (s *service) List(ctx context.Context) ([]models.Task, error) {
	if err := s.tasks.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return s.tasks.Get(), nil
}

// Get finds a task in the cache
func (s *service) Get(ctx context.Context, id types.TaskID) (models.Task, error) {
	if id <= 0 {
		return models.Task{}, ErrInvalidTaskID
	}
	tasks, err := s.List(ctx)
	if err != nil {
		return models.Task{}, err
	}
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return tasks[i], nil
}

// Create validates and creates a task for each assignee
func (s *service) Create(ctx context.Context, req CreateTaskRequest) ([]models.Task, error) {
	in, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	created, err := cache.Mutate(ctx, s.store, func(ctx context.Context) ([]models.Task, error) {
		return s.client.CreateTask(ctx, in)
	}, cache.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// ChangeStatus moves a task to status, applying the progress policy
func (s *service) ChangeStatus(ctx context.Context, id types.TaskID, status models.Status) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return nil, ErrAlreadyInStatus
	}
	return s.update(ctx, id, board.ApplyStatusPolicy(current, status))
}

// SetProgress stores a new progress value
func (s *service) SetProgress(ctx context.Context, id types.TaskID, progress int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := models.ValidateProgress(progress); err != nil {
		return nil, ErrInvalidProgress
	}
	return s.update(ctx, id, api.TaskUpdate{Progress: &progress})
}

// StartTimer opens a timer session. The server owns timer state and
// rejects a start while one is running.
func (s *service) StartTimer(ctx context.Context, id types.TaskID) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.mutate(ctx, "start timer", func(ctx context.Context) (*models.Task, error) {
		return s.client.StartTimer(ctx, id)
	})
}

// StopTimer closes the running timer session
func (s *service) StopTimer(ctx context.Context, id types.TaskID) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.mutate(ctx, "stop timer", func(ctx context.Context) (*models.Task, error) {
		return s.client.StopTimer(ctx, id)
	})
}

// Drop executes a board command. A refetch between the drop and this call
// can already show the task in the target lane, or without the task at
// all; such drops are absorbed and return a nil task.
func (s *service) Drop(ctx context.Context, cmd board.Command) (*models.Task, error) {
	task, err := s.ChangeStatus(ctx, cmd.TaskID, cmd.Status)
	if errors.Is(err, ErrAlreadyInStatus) || errors.Is(err, ErrTaskNotFound) {
		slog.Debug("drop absorbed after refresh", "task_id", cmd.TaskID, "status", cmd.Status, "reason", err)
		return nil, nil
	}
	return task, err
}

func (s *service) update(ctx context.Context, id types.TaskID, in api.TaskUpdate) (*models.Task, error) {
	return s.mutate(ctx, "update task", func(ctx context.Context) (*models.Task, error) {
		return s.client.UpdateTask(ctx, id, in)
	})
}

func (s *service) mutate(ctx context.Context, what string, fn func(context.Context) (*models.Task, error)) (*models.Task, error) {
	task, err := cache.Mutate(ctx, s.store, fn, cache.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	return task, nil
}

func (s *service) validateCreate(req CreateTaskRequest) (api.TaskCreate, error) {
	if u := s.viewer.User(); u == nil || !u.Role.Includes(models.RoleManager) {
		return api.TaskCreate{}, ErrNotPermitted
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return api.TaskCreate{}, ErrEmptyTitle
	}
	if len(title) > 255 {
		return api.TaskCreate{}, ErrTitleTooLong
	}
	if len(req.AssigneeIDs) == 0 {
		return api.TaskCreate{}, ErrNoAssignees
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return api.TaskCreate{}, ErrInvalidPriority
	}

	in := api.TaskCreate{
		Title:         title,
		Description:   req.Description,
		Priority:      priority,
		AssignedToIDs: req.AssigneeIDs,
	}

	if due := strings.TrimSpace(req.DueDate); due != "" {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			return api.TaskCreate{}, ErrInvalidDueDate
		}
		wire := d.Format("2006-01-02") + "T00:00:00"
		in.DueDate = &wire
	}
	return in, nil
}
