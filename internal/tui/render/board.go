package render

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
)

// ViewKanbanBoard renders the four lanes side by side
func ViewKanbanBoard(m *tui.Model) string {
	cols := modelops.Columns(m)
	dragged, dragging := m.Engine.Active()
	now := m.Now()

	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		selected := i == m.UiState.SelectedColumn()
		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Column:       col,
			Width:        m.UiState.ColumnWidth(),
			Height:       m.UiState.ContentHeight(),
			Selected:     selected,
			SelectedTask: m.UiState.SelectedTask(),
			ScrollOffset: m.UiState.TaskScrollOffset(i),
			Dragging:     dragging,
			DraggedID:    dragged,
			Now:          now,
		}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ViewTaskList renders the tasks as one table, lane by lane
func ViewTaskList(m *tui.Model) string {
	tasks := modelops.ListTasks(m)
	now := m.Now()

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t, now))
	}

	return components.RenderTable(components.TableProps{
		Headers:  []string{"#", "Title", "Status", "Priority", "Progress", "Assignee", "Due", "Logged"},
		Rows:     rows,
		Selected: m.ListViewState.Cursor(routes.Tasks, len(rows)),
		Width:    m.UiState.Width(),
		Height:   m.UiState.ContentHeight(),
	})
}

func taskRow(t models.Task, now time.Time) []string {
	title := t.Title
	if t.TimerRunning() {
		title = "⏱ " + title
	}
	due := "-"
	if t.DueDate != nil && !t.DueDate.IsZero() {
		due = t.DueDate.Date()
		if t.Overdue(now) {
			due += " (overdue)"
		}
	}
	assignee := t.AssigneeName()
	if assignee == "" {
		assignee = "-"
	}
	return []string{
		t.ID.String(),
		title,
		t.Status.Title(),
		string(t.Priority),
		fmt.Sprintf("%d%%", t.Progress),
		assignee,
		due,
		loggedTime(t.LoggedMinutes()),
	}
}

// loggedTime formats logged minutes as hours and minutes
func loggedTime(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// since renders a timestamp relative to now
func since(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t.Time)
}
