package handlers

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// progressStep is how far + and - move a task's progress
const progressStep = 10

// ============================================================================
// BOARD HANDLERS
// ============================================================================

// handleBoardKey handles the task board. While a card is held only
// navigation, dropping and cancelling are live.
func handleBoardKey(m *tui.Model, key string) tea.Cmd {
	km := m.Config.KeyMappings
	list := m.ListViewState.ViewMode() == state.ListView

	switch key {
	case km.PrevColumn, "left":
		if !list {
			moveColumn(m, -1)
		}
		return nil
	case km.NextColumn, "right":
		if !list {
			moveColumn(m, 1)
		}
		return nil
	case km.PrevTask, "up":
		moveTask(m, -1)
		return nil
	case km.NextTask, "down":
		moveTask(m, 1)
		return nil
	}

	if m.Engine.Dragging() {
		switch key {
		case km.PickUpTask:
			return dropOnCard(m)
		case "enter":
			return dropOnLane(m)
		case km.CancelDrag:
			m.Engine.Cancel()
		}
		return nil
	}

	switch key {
	case km.ToggleView:
		m.ListViewState.ToggleView()
		return nil
	case km.AddTask:
		return handleAddTask(m)
	}

	t, ok := modelops.SelectedTask(m)
	if !ok {
		return nil
	}

	switch key {
	case km.PickUpTask:
		if !list {
			m.Engine.BeginDrag(t.ID)
		}
	case km.MoveTaskLeft, km.MoveTaskRight:
		delta := 1
		if key == km.MoveTaskLeft {
			delta = -1
		}
		if status, ok := board.Neighbor(t.Status, delta); ok {
			return modelops.ChangeStatus(m, t.ID, status)
		}
	case km.StartTimer:
		return modelops.StartTimer(m, t.ID)
	case km.StopTimer:
		return modelops.StopTimer(m, t.ID)
	case km.ProgressUp:
		return modelops.SetProgress(m, t.ID, min(100, t.Progress+progressStep))
	case km.ProgressDown:
		return modelops.SetProgress(m, t.ID, max(0, t.Progress-progressStep))
	}
	return nil
}

func moveColumn(m *tui.Model, delta int) {
	next := m.UiState.SelectedColumn() + delta
	if next < 0 || next >= state.BoardColumns {
		return
	}
	m.UiState.SetSelectedColumn(next)
	modelops.SyncBoardCursor(m)
}

func moveTask(m *tui.Model, delta int) {
	if m.ListViewState.ViewMode() == state.ListView {
		m.ListViewState.MoveCursor(m.UiState.Route(), delta, len(modelops.ListTasks(m)))
		return
	}

	cols := modelops.Columns(m)
	n := len(cols[m.UiState.SelectedColumn()].Tasks)
	next := m.UiState.SelectedTask() + delta
	if next < 0 || next >= n {
		return
	}
	m.UiState.SetSelectedTask(next)
	m.UiState.EnsureTaskVisible(components.VisibleTasks(m.UiState.ContentHeight()))
}

// dropOnCard releases the held card onto the card under the cursor, or onto
// the lane itself when the lane is empty
func dropOnCard(m *tui.Model) tea.Cmd {
	if t, ok := modelops.SelectedTask(m); ok {
		return release(m, board.TaskTarget(t.ID))
	}
	return dropOnLane(m)
}

// dropOnLane releases the held card onto the selected lane
func dropOnLane(m *tui.Model) tea.Cmd {
	col := modelops.Columns(m)[m.UiState.SelectedColumn()]
	return release(m, col.Target())
}

// release ends the drag against the current snapshot. Drops that change
// nothing are absorbed without a request.
func release(m *tui.Model, target board.TargetID) tea.Cmd {
	cmd, ok := m.Engine.EndDrag(&target, m.App.TaskService.Collection().Get())
	if !ok {
		return nil
	}
	slog.Debug("dropping task", "task", cmd.TaskID, "status", cmd.Status)
	return modelops.Drop(m, *cmd)
}
