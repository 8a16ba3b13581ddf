// Package board turns drag gestures on the task board into status changes.
//
// Columns are a derived view over task status: the engine never moves a card
// itself, it emits at most one status-change Command per gesture and relies on
// the next refetch to regroup the board.
package board

import (
	"log/slog"
	"strconv"

	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// TargetID identifies something a card can be dropped on. Columns and tasks
// share this space: a column is its status literal, a task its decimal ID.
type TargetID string

// ColumnTarget is the drop target for the lane of status s
func ColumnTarget(s models.Status) TargetID {
	return TargetID(s)
}

// TaskTarget is the drop target for the card of task id
func TaskTarget(id types.TaskID) TargetID {
	return TargetID(strconv.Itoa(int(id)))
}

// Command reassigns one task to a new status
type Command struct {
	TaskID types.TaskID
	Status models.Status
}

// Outcome says how a drop was resolved
type Outcome int

const (
	Moved Outcome = iota
	NoSession
	NoTarget
	DroppedOnSelf
	StaleTarget
	StaleTask
	SameStatus
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case NoSession:
		return "no drag in progress"
	case NoTarget:
		return "no drop target"
	case DroppedOnSelf:
		return "dropped on self"
	case StaleTarget:
		return "drop target no longer exists"
	case StaleTask:
		return "dragged task no longer exists"
	case SameStatus:
		return "already in that column"
	}
	return "unknown"
}

// DragSession exists between a pick-up and a drop
type DragSession struct {
	ActiveID types.TaskID
}

// Engine holds at most one drag session. It is driven from the UI update
// loop and is not safe for concurrent use.
type Engine struct {
	session *DragSession
}

func NewEngine() *Engine {
	return &Engine{}
}

// BeginDrag starts a session for task id, replacing any previous one
func (e *Engine) BeginDrag(id types.TaskID) {
	e.session = &DragSession{ActiveID: id}
}

// Active returns the task being dragged
func (e *Engine) Active() (types.TaskID, bool) {
	if e.session == nil {
		return 0, false
	}
	return e.session.ActiveID, true
}

// Dragging reports whether a session is open
func (e *Engine) Dragging() bool {
	return e.session != nil
}

// Cancel discards the session without a command
func (e *Engine) Cancel() {
	e.session = nil
}

// EndDrag resolves a drop against the currently loaded tasks and clears the
// session whatever the outcome. The bool is true only when a command was
// emitted.
func (e *Engine) EndDrag(target *TargetID, tasks []models.Task) (*Command, bool) {
	session := e.session
	e.session = nil

	if session == nil {
		return nil, false
	}

	cmd, outcome := Reconcile(session.ActiveID, target, tasks)
	if outcome != Moved {
		slog.Debug("drop absorbed", "task_id", session.ActiveID, "outcome", outcome.String())
		return nil, false
	}
	return &cmd, true
}

// Reconcile is the pure drop resolution. Column membership is checked
// before task membership so a target that happens to be both resolves as a
// column.
func Reconcile(active types.TaskID, target *TargetID, tasks []models.Task) (Command, Outcome) {
	if target == nil || *target == "" {
		return Command{}, NoTarget
	}
	if *target == TaskTarget(active) {
		return Command{}, DroppedOnSelf
	}

	effective, ok := resolveTarget(*target, tasks)
	if !ok {
		return Command{}, StaleTarget
	}

	dragged, ok := find(tasks, TaskTarget(active))
	if !ok {
		return Command{}, StaleTask
	}
	if dragged.Status == effective {
		return Command{}, SameStatus
	}

	return Command{TaskID: active, Status: effective}, Moved
}

func resolveTarget(target TargetID, tasks []models.Task) (models.Status, bool) {
	for _, s := range models.Statuses() {
		if ColumnTarget(s) == target {
			return s, true
		}
	}
	if t, ok := find(tasks, target); ok {
		return t.Status, true
	}
	return "", false
}

func find(tasks []models.Task, target TargetID) (models.Task, bool) {
	for _, t := range tasks {
		if TaskTarget(t.ID) == target {
			return t, true
		}
	}
	return models.Task{}, false
}
