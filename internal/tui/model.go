// Package tui holds the Bubble Tea model of the interactive client. The
// handlers package updates it, render draws it and core ties both to the
// tea.Model interface.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/agency/internal/app"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/events"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/state"
	"github.com/thenoetrevino/agency/internal/types"
)

// Model represents the application state for the TUI. Server data is never
// copied into it: views read the cache snapshots at render time.
type Model struct {
	Ctx    context.Context
	App    *app.App
	Config *config.Config

	UiState           *state.UIState
	ListViewState     *state.ListViewState
	FormState         *state.FormState
	NotificationState *state.NotificationState
	ErrorState        *state.ErrorState

	// Engine resolves keyboard drag gestures on the board
	Engine *board.Engine

	// Follow is the task the board cursor should land on once the next
	// refetch regroups the lanes; zero when not following
	Follow types.TaskID

	// EventChan delivers cache and session change events
	EventChan           <-chan events.Event
	SubscriptionStarted bool

	Now func() time.Time
}

// New builds the model for a started app. The first screen is the
// dashboard for a restored session and the login form otherwise.
func New(ctx context.Context, a *app.App, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	components.InitStyles(cfg.ColorScheme)

	m := &Model{
		Ctx:               ctx,
		App:               a,
		Config:            cfg,
		UiState:           state.NewUIState(),
		ListViewState:     state.NewListViewState(),
		FormState:         state.NewFormState(),
		NotificationState: state.NewNotificationState(),
		ErrorState:        state.NewErrorState(),
		Engine:            board.NewEngine(),
		Now:               time.Now,
	}

	ch, err := a.Store.Listen(ctx)
	if err != nil {
		slog.Warn("no cache event feed, views refresh on key presses only", "error", err)
	} else {
		m.EventChan = ch
	}

	m.UiState.SetRoute(routes.Resolve(routes.Dashboard, a.Session.User()))
	return m
}
