package notifications

import (
	"github.com/thenoetrevino/agency/internal/tui/state"
	"github.com/thenoetrevino/agency/internal/tui/theme"
)

// Tone selects the icon, title and colours of a banner
type Tone int

const (
	// Notice confirms a finished action ("Moved to Done", "Task created")
	Notice Tone = iota
	// Caution covers refused keys and pages left on old data
	Caution
	// Failure is a rejected mutation or a fetch with nothing to show
	Failure
	// Holding marks the status bar while a task is picked up
	Holding
)

type palette struct {
	icon  string
	title string
	fg    string
	bg    string
}

// palette reads the theme at call time; theme.Init runs after package init
func (t Tone) palette() palette {
	switch t {
	case Caution:
		return palette{icon: "⚠", title: "Heads up", fg: theme.WarningFg, bg: theme.WarningBg}
	case Failure:
		return palette{icon: "✕", title: "Failed", fg: theme.ErrorFg, bg: theme.ErrorBg}
	case Holding:
		return palette{icon: "✥", title: "Holding", fg: theme.WarningFg, bg: theme.WarningBg}
	}
	return palette{icon: "🔔", title: "Notice", fg: theme.InfoFg, bg: theme.InfoBg}
}

// ToneOf maps a queued notification level to the banner it is drawn with
func ToneOf(level state.NotificationLevel) Tone {
	switch level {
	case state.LevelWarning:
		return Caution
	case state.LevelError:
		return Failure
	}
	return Notice
}
