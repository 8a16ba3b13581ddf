package core

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/app"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/handlers"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/render"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
// It delegates all operations to the underlying Model and subpackages.
type App struct {
	model *tui.Model
}

// New creates a new App with an initialized Model for a started app.
func New(ctx context.Context, a *app.App, cfg *config.Config) *App {
	return &App{model: tui.New(ctx, a, cfg)}
}

// Init subscribes to cache events and loads the first page, or opens the
// login form when there is no session.
// Implements tea.Model interface.
func (a *App) Init() tea.Cmd {
	m := a.model
	var cmds []tea.Cmd

	if m.EventChan != nil && !m.SubscriptionStarted {
		m.SubscriptionStarted = true
		cmds = append(cmds, modelops.SubscribeToEvents(m))
	}

	if m.UiState.Route() == routes.Login {
		cmds = append(cmds, handlers.OpenLoginForm(m))
	} else {
		cmds = append(cmds, modelops.LoadRoute(m, m.UiState.Route()))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages and updates the model.
// Implements tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, handlers.Update(a.model, msg)
}

// View renders the current state of the application.
// Implements tea.Model interface.
func (a *App) View() tea.View {
	return render.View(a.model)
}

// GetModel returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) GetModel() *tui.Model {
	return a.model
}
