package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/notifications"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// View is the main view dispatcher that renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	// The page is always drawn; dialogs and notices are layered on top
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(ViewPage(m)),
	}

	var modalLayer *lipgloss.Layer
	switch m.UiState.Mode() {
	case state.FormMode:
		modalLayer = RenderFormLayer(m)
	case state.HelpMode:
		modalLayer = RenderHelpLayer(m)
	case state.ErrorDialogMode:
		modalLayer = RenderErrorLayer(m)
	}
	if modalLayer != nil {
		layers = append(layers, modalLayer)
	}

	layers = append(layers, m.NotificationState.GetLayers(notifications.RenderFromState)...)

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}
