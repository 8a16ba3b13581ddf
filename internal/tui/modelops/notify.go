package modelops

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// NotificationTimeout is how long a notice stays on screen
const NotificationTimeout = 3 * time.Second

// Notify shows a notice and schedules its dismissal
func Notify(m *tui.Model, level state.NotificationLevel, message string) tea.Cmd {
	id := m.NotificationState.Add(level, message)
	return tea.Tick(NotificationTimeout, func(time.Time) tea.Msg {
		return tui.DismissNotificationMsg{ID: id}
	})
}
