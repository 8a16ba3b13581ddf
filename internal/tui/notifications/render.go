package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// Render draws a floating banner: icon and title over the message
func Render(tone Tone, message string) string {
	p := tone.palette()

	headerText := p.icon + " " + p.title
	width := max(lipgloss.Width(headerText), lipgloss.Width(message))

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Bold(true).
		Width(width)
	if tone == Notice {
		headerStyle = headerStyle.Background(lipgloss.Color(p.bg))
	}

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Width(width).
		Render(message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.bg)).
		Background(lipgloss.Color(p.bg)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(headerText), body))
}

// RenderFromState draws a queued notification
func RenderFromState(n state.Notification) string {
	return Render(ToneOf(n.Level), n.Message)
}

// RenderInline is the one-line form used in the status bar
func RenderInline(tone Tone, message string) string {
	p := tone.palette()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Background(lipgloss.Color(p.bg)).
		Padding(0, 1).
		Render(p.icon + " " + message)
}

// RenderDialog renders the blocking error dialog. Unlike a banner it
// wraps its message to width and names the key that dismisses it.
func RenderDialog(title, message string, width int) string {
	p := Failure.palette()
	inner := max(width-4, 10)

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Bold(true).
		Render(p.icon + " " + title)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Render(wordwrap.String(message, inner))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg)).
		Faint(true).
		Render("press enter or esc to dismiss")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.bg)).
		Background(lipgloss.Color(p.bg)).
		Padding(1, 2).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hint))
}
