package handlers

import (
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/events"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/services/announcement"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return tea.Quit
	default:
	}

	// Start listening for events on first update if not already started
	var cmd tea.Cmd
	if m.EventChan != nil && !m.SubscriptionStarted {
		m.SubscriptionStarted = true
		cmd = modelops.SubscribeToEvents(m)
	}

	switch msg := msg.(type) {
	case tui.RefreshMsg:
		return tea.Batch(cmd, handleRefresh(m, msg))

	case tui.LoadedMsg:
		return tea.Batch(cmd, handleLoaded(m, msg))

	case tui.LoginResultMsg:
		return tea.Batch(cmd, handleLoginResult(m, msg))

	case tui.LoggedOutMsg:
		if msg.Err != nil {
			slog.Error("failed to clear stored token", "error", msg.Err)
		}
		return tea.Batch(cmd, goToLogin(m, "Logged out"))

	case tui.MutationResultMsg:
		return tea.Batch(cmd, handleMutationResult(m, msg))

	case tui.TaskFormReadyMsg:
		return tea.Batch(cmd, openTaskForm(m, msg))

	case tui.DismissNotificationMsg:
		m.NotificationState.Dismiss(msg.ID)
		return cmd

	case tea.WindowSizeMsg:
		return tea.Batch(cmd, HandleWindowResize(m, msg))
	}

	// Forms need every message, not just key presses
	if m.UiState.Mode() == state.FormMode {
		return tea.Batch(cmd, UpdateForm(m, msg))
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		return tea.Batch(cmd, HandleKeyMsg(m, key))
	}
	return cmd
}

// HandleKeyMsg dispatches key messages to the appropriate mode handler.
func HandleKeyMsg(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.UiState.Mode() {
	case state.NormalMode:
		return HandleNormalMode(m, msg)
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	case state.ErrorDialogMode:
		return HandleErrorDialog(m, msg)
	}
	return nil
}

// HandleWindowResize handles terminal resize events.
func HandleWindowResize(m *tui.Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)
	m.NotificationState.SetWindowSize(msg.Width, msg.Height)
	return nil
}

// handleRefresh reacts to a cache or session event. Views read the cache
// directly, so most events only need a redraw and a new subscription.
func handleRefresh(m *tui.Model, msg tui.RefreshMsg) tea.Cmd {
	next := modelops.SubscribeToEvents(m)

	switch msg.Event.Type {
	case events.EventSessionChanged:
		if !m.App.Session.Authenticated() && m.UiState.Route() != routes.Login {
			return tea.Batch(next, goToLogin(m, "Session ended"))
		}
	case events.EventResourceChanged:
		if m.UiState.Route() == routes.Tasks {
			modelops.SyncBoardCursor(m)
		}
	case events.EventFetchFailed:
		slog.Debug("background refresh failed", "resource", msg.Event.Resource, "error", msg.Event.Err)
	}
	return next
}

func handleLoaded(m *tui.Model, msg tui.LoadedMsg) tea.Cmd {
	if msg.Err == nil {
		if msg.Route == routes.Tasks {
			modelops.SyncBoardCursor(m)
		}
		return nil
	}
	if api.IsUnauthorized(msg.Err) {
		m.App.Session.Expire(m.Ctx)
		return goToLogin(m, "Session expired, please log in again")
	}
	// The page keeps showing its last snapshot; the status bar marks it stale
	slog.Warn("page load failed", "route", msg.Route, "error", msg.Err)
	if msg.Route == m.UiState.Route() {
		return modelops.Notify(m, state.LevelWarning, api.Detail(msg.Err))
	}
	return nil
}

func handleMutationResult(m *tui.Model, msg tui.MutationResultMsg) tea.Cmd {
	m.FormState.SetSubmitting(false)

	switch {
	case msg.Err == nil:
		if m.UiState.Route() == routes.Tasks {
			modelops.SyncBoardCursor(m)
		}
		if msg.Notice == "" {
			m.Follow = 0
			return nil
		}
		return modelops.Notify(m, state.LevelInfo, msg.Notice)

	case api.IsUnauthorized(msg.Err):
		m.Follow = 0
		m.App.Session.Expire(m.Ctx)
		return goToLogin(m, "Session expired, please log in again")

	case errors.Is(msg.Err, announcement.ErrAlreadyAcknowledged):
		return modelops.Notify(m, state.LevelInfo, "Already acknowledged")
	}

	m.Follow = 0
	slog.Warn("mutation failed", "action", msg.Action, "error", msg.Err)
	ShowError(m, msg.Action+" failed", api.Detail(msg.Err))
	return nil
}

// goToLogin drops whatever the user was doing and shows the login form
func goToLogin(m *tui.Model, notice string) tea.Cmd {
	m.Engine.Cancel()
	m.Follow = 0
	m.UiState.ResetSelection()
	m.UiState.SetRoute(routes.Login)
	m.ErrorState.Clear()
	return tea.Batch(OpenLoginForm(m), modelops.Notify(m, state.LevelInfo, notice))
}
