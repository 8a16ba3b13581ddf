package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/tui/theme"
)

// TaskCardProps describes one card on the board
type TaskCardProps struct {
	Task     models.Task
	Width    int
	Selected bool
	Dragged  bool
	Now      time.Time
}

// RenderTask renders a single task as a card
//
//	╭──────────────────────────╮
//	│ ⏱ {Task Title}           │
//	│ HIGH  ███████░░░ 70%     │
//	│ Ana Ruiz · due Nov 20    │
//	╰──────────────────────────╯
//
// The card has a fixed height of TaskCardHeight.
func RenderTask(props TaskCardProps) string {
	inner := max(props.Width-4, 8)
	task := props.Task

	title := task.Title
	if task.TimerRunning() {
		title = "⏱ " + title
	}
	titleLine := lipgloss.NewStyle().Bold(true).Render(truncate.StringWithTail(title, uint(inner), "…"))

	metaLine := RenderPriority(task.Priority) + "  " + ProgressBar(task.Progress, progressBarWidth)

	assignee := task.AssigneeName()
	if assignee == "" {
		assignee = "unassigned"
	}
	footer := assignee
	due := ""
	if task.DueDate != nil && !task.DueDate.IsZero() {
		due = " · due " + task.DueDate.Format("Jan 2")
	}
	footerLine := SubtleStyle.Render(truncate.StringWithTail(footer, uint(max(inner-lipgloss.Width(due), 1)), "…"))
	if due != "" {
		dueStyle := SubtleStyle
		if task.Overdue(props.Now) {
			dueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorFg))
		}
		footerLine += dueStyle.Render(due)
	}

	border := theme.TaskBorder
	switch {
	case props.Dragged:
		border = theme.DragBorder
	case props.Selected:
		border = theme.SelectedBorder
	}

	style := TaskStyle.
		Width(props.Width).
		BorderForeground(lipgloss.Color(border))
	if props.Dragged {
		style = style.Border(lipgloss.DoubleBorder())
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, metaLine, footerLine))
}

// PriorityColor maps a priority to its theme color
func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityLow:
		return theme.PriorityLow
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityUrgent:
		return theme.PriorityUrgent
	default:
		return theme.PriorityMedium
	}
}

// RenderPriority renders the priority literal in its color
func RenderPriority(p models.Priority) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(PriorityColor(p))).
		Bold(p == models.PriorityUrgent).
		Render(string(p))
}

// ProgressBar draws pct as a bar of width cells followed by the percentage
func ProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Create)).Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, pct)
}
