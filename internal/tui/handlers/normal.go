package handlers

import (
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// HandleNormalMode handles the keys every page shares, then hands the rest
// to the page under the cursor.
func HandleNormalMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	km := m.Config.KeyMappings

	// A held card swallows page navigation so a drag cannot leave the board
	if m.Engine.Dragging() {
		return handleBoardKey(m, key)
	}

	switch key {
	case km.Quit:
		return tea.Quit
	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
		return nil
	case km.NextPage:
		return switchPage(m, 1)
	case km.PrevPage:
		return switchPage(m, -1)
	case km.Refresh:
		return modelops.Refresh(m, m.UiState.Route())
	case km.Logout:
		return modelops.Logout(m)
	}

	if n, err := strconv.Atoi(key); err == nil {
		return jumpToPage(m, n-1)
	}

	switch m.UiState.Route() {
	case routes.Tasks:
		return handleBoardKey(m, key)
	case routes.Announcements:
		return handleAnnouncementsKey(m, key)
	case routes.Leaves:
		return handleLeavesKey(m, key)
	case routes.Users:
		return handleUsersKey(m, key)
	case routes.Ventures:
		return handleListKey(m, key, len(modelops.Ventures(m)))
	}
	return nil
}

// switchPage moves delta tabs along the pages the user may open, wrapping
// at both ends
func switchPage(m *tui.Model, delta int) tea.Cmd {
	visible := routes.Visible(modelops.CurrentUser(m))
	if len(visible) == 0 {
		return nil
	}
	i := slices.Index(visible, m.UiState.Route())
	next := (i + delta + len(visible)) % len(visible)
	return navigate(m, visible[next])
}

// jumpToPage opens the n-th visible tab
func jumpToPage(m *tui.Model, n int) tea.Cmd {
	visible := routes.Visible(modelops.CurrentUser(m))
	if n < 0 || n >= len(visible) {
		return nil
	}
	return navigate(m, visible[n])
}

// navigate opens route r, redirecting when the user may not see it, and
// loads its data
func navigate(m *tui.Model, r routes.Route) tea.Cmd {
	target := routes.Resolve(r, modelops.CurrentUser(m))
	if target == routes.Login {
		return goToLogin(m, "Please log in")
	}
	m.UiState.SetRoute(target)
	return modelops.LoadRoute(m, target)
}

// ============================================================================
// HELP & ERROR DIALOG
// ============================================================================

// HandleHelpMode handles input in the help screen.
func HandleHelpMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case m.Config.KeyMappings.ShowHelp, m.Config.KeyMappings.Quit, "esc", "enter", "space":
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// ShowError opens the blocking error dialog
func ShowError(m *tui.Model, title, message string) {
	m.ErrorState.Set(title, message)
	m.UiState.SetMode(state.ErrorDialogMode)
}

// HandleErrorDialog dismisses the error dialog. Nothing else gets through
// while it is open.
func HandleErrorDialog(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "space", m.Config.KeyMappings.Quit:
		m.ErrorState.Clear()
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}
