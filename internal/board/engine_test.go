package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

func target(id TargetID) *TargetID { return &id }

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 7, Title: "seven", Status: models.StatusAssigned},
		{ID: 9, Title: "nine", Status: models.StatusReview},
		{ID: 11, Title: "eleven", Status: models.StatusCompleted, Progress: 100},
	}
}

// ============================================================================
// SCENARIOS
// ============================================================================

func TestDropOnColumn(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(7)

	cmd, ok := e.EndDrag(target(ColumnTarget(models.StatusInProgress)), sampleTasks())
	require.True(t, ok)
	assert.Equal(t, Command{TaskID: 7, Status: models.StatusInProgress}, *cmd)
	assert.False(t, e.Dragging())
}

func TestDropOnCardInheritsColumn(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(7)

	cmd, ok := e.EndDrag(target(TaskTarget(9)), sampleTasks())
	require.True(t, ok)
	assert.Equal(t, Command{TaskID: 7, Status: models.StatusReview}, *cmd)
}

func TestDropWithoutTarget(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(7)

	cmd, ok := e.EndDrag(nil, sampleTasks())
	assert.False(t, ok)
	assert.Nil(t, cmd)
	assert.False(t, e.Dragging())
}

// ============================================================================
// PROPERTIES
// ============================================================================

func TestDropOnSelfIsNoop(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(9)

	_, ok := e.EndDrag(target(TaskTarget(9)), sampleTasks())
	assert.False(t, ok)
	assert.False(t, e.Dragging())
}

func TestColumnDropForEveryStatus(t *testing.T) {
	for _, from := range models.Statuses() {
		for _, to := range models.Statuses() {
			tasks := []models.Task{{ID: 1, Status: from}}
			cmd, outcome := Reconcile(1, target(ColumnTarget(to)), tasks)

			if from == to {
				assert.Equal(t, SameStatus, outcome, "%s -> %s", from, to)
				continue
			}
			assert.Equal(t, Moved, outcome, "%s -> %s", from, to)
			assert.Equal(t, Command{TaskID: 1, Status: to}, cmd)
		}
	}
}

func TestRepeatedCardDropIsNotCumulative(t *testing.T) {
	e := NewEngine()
	tasks := sampleTasks()

	var cmds []Command
	for range 3 {
		e.BeginDrag(7)
		cmd, ok := e.EndDrag(target(TaskTarget(9)), tasks)
		require.True(t, ok)
		cmds = append(cmds, *cmd)
	}

	for _, cmd := range cmds {
		assert.Equal(t, Command{TaskID: 7, Status: models.StatusReview}, cmd)
	}
}

func TestCardDropIntoOwnColumn(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Status: models.StatusReview},
		{ID: 2, Status: models.StatusReview},
	}
	_, outcome := Reconcile(1, target(TaskTarget(2)), tasks)
	assert.Equal(t, SameStatus, outcome)
}

func TestStaleTargets(t *testing.T) {
	tests := []struct {
		name   string
		target TargetID
		want   Outcome
	}{
		{"deleted card", TaskTarget(404), StaleTarget},
		{"garbage", "not-a-thing", StaleTarget},
		{"lowercase status is not a column", "in_progress", StaleTarget},
		{"empty id", "", NoTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.BeginDrag(7)

			var cmd *Command
			var ok bool
			assert.NotPanics(t, func() {
				cmd, ok = e.EndDrag(target(tt.target), sampleTasks())
			})
			assert.False(t, ok)
			assert.Nil(t, cmd)
			assert.False(t, e.Dragging())

			_, outcome := Reconcile(7, target(tt.target), sampleTasks())
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestDraggedTaskVanished(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(42)

	_, ok := e.EndDrag(target(ColumnTarget(models.StatusReview)), sampleTasks())
	assert.False(t, ok)

	_, outcome := Reconcile(42, target(ColumnTarget(models.StatusReview)), sampleTasks())
	assert.Equal(t, StaleTask, outcome)
}

func TestColumnCheckedBeforeTask(t *testing.T) {
	// the target literal resolves as the REVIEW column even though a task
	// could in principle share it; the check order is what decides
	tasks := []models.Task{{ID: 1, Status: models.StatusAssigned}}
	cmd, outcome := Reconcile(1, target("REVIEW"), tasks)
	assert.Equal(t, Moved, outcome)
	assert.Equal(t, models.StatusReview, cmd.Status)
}

func TestEndDragWithoutSession(t *testing.T) {
	e := NewEngine()
	_, ok := e.EndDrag(target(ColumnTarget(models.StatusReview)), sampleTasks())
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	e := NewEngine()
	e.BeginDrag(7)

	id, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, types.TaskID(7), id)

	e.Cancel()
	assert.False(t, e.Dragging())
	_, ok = e.EndDrag(target(ColumnTarget(models.StatusReview)), sampleTasks())
	assert.False(t, ok)
}
