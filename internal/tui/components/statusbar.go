package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/tui/theme"
)

type StatusBarProps struct {
	Width int
	Left  string
	Right string
	// Stale is set while the page's data failed to refresh
	Stale string
}

// RenderStatusBar renders a status bar with left and right aligned text.
// A stale marker, when present, sits between them in the warning color.
func RenderStatusBar(props StatusBarProps) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	leftRendered := style.Render(props.Left)
	rightRendered := style.Render(props.Right)
	staleRendered := ""
	if props.Stale != "" {
		staleRendered = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.WarningFg)).
			Render("⚠ " + props.Stale + "  ")
	}

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(staleRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, staleRendered, rightRendered)
}
