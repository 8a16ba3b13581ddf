package components

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/thenoetrevino/agency/internal/tui/theme"
)

// TableProps describes a scrollable table with a cursor row
type TableProps struct {
	Headers  []string
	Rows     [][]string
	Selected int // -1 for no cursor
	Width    int
	Height   int // total height including border and header
}

// tableChrome is the border and header rows a table always takes
const tableChrome = 4

// RenderTable renders the window of rows around the cursor that fits in
// Height. An empty table shows a single muted line.
func RenderTable(props TableProps) string {
	if len(props.Rows) == 0 {
		return SubtleStyle.Italic(true).Render("Nothing here yet")
	}

	visible := max(props.Height-tableChrome, 1)
	start := 0
	if props.Selected >= visible {
		start = props.Selected - visible + 1
	}
	end := min(start+visible, len(props.Rows))
	window := props.Rows[start:end]

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColumnBorder))).
		Headers(props.Headers...).
		Rows(window...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderRowStyle
			case start+row == props.Selected:
				return SelectedRowStyle
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})
	if props.Width > 0 {
		t = t.Width(props.Width)
	}
	return t.Render()
}
