package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/tui/theme"
	"github.com/thenoetrevino/agency/internal/types"
)

// ColumnProps describes one board lane
type ColumnProps struct {
	Column       board.Column
	Width        int
	Height       int
	Selected     bool
	SelectedTask int // index of the cursor card; ignored unless Selected
	ScrollOffset int
	Dragging     bool
	DraggedID    types.TaskID
	Now          time.Time
}

// VisibleTasks is how many cards fit in a lane of the given height
func VisibleTasks(height int) int {
	available := height - columnBorderOverhead - headerLines - topIndicatorLines - bottomIndicatorLines
	return max(available/TaskCardHeight, 1)
}

// RenderColumn renders a complete lane with its title and cards
//
// Layout:
//
//	{Lane Title} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	...
//	▼ (if more tasks below)
func RenderColumn(props ColumnProps) string {
	tasks := props.Column.Tasks
	header := fmt.Sprintf("%s (%d)", props.Column.Title(), len(tasks))
	if props.Dragging && props.Selected {
		header += " ⇣"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(header))
	b.WriteString("\n")

	cardWidth := max(props.Width-4, 12)

	if len(tasks) == 0 {
		empty := "No tasks"
		if props.Dragging && props.Selected {
			empty = "Drop here"
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Padding(1, 0).
			Render(empty))
	} else {
		visible := VisibleTasks(props.Height)
		offset := min(props.ScrollOffset, max(len(tasks)-1, 0))
		end := min(offset+visible, len(tasks))

		if offset > 0 {
			b.WriteString(IndicatorStyle.Width(cardWidth).Render("▲ more above"))
		}
		b.WriteString("\n")

		for i := offset; i < end; i++ {
			b.WriteString(RenderTask(TaskCardProps{
				Task:     tasks[i],
				Width:    cardWidth,
				Selected: props.Selected && i == props.SelectedTask,
				Dragged:  props.Dragging && tasks[i].ID == props.DraggedID,
				Now:      props.Now,
			}))
			b.WriteString("\n")
		}

		if end < len(tasks) {
			b.WriteString(IndicatorStyle.Width(cardWidth).Render("▼ more below"))
		}
	}

	style := ColumnStyle.Width(props.Width)
	switch {
	case props.Selected && props.Dragging:
		style = style.BorderForeground(lipgloss.Color(theme.DragBorder))
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Height > 0 {
		style = style.Height(props.Height)
	}

	return style.Render(strings.TrimRight(b.String(), "\n"))
}
