package render

import (
	"fmt"
	"slices"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/notifications"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// ViewPage renders the navigation tabs, the current page and the status bar
func ViewPage(m *tui.Model) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderTabs(m),
		renderBody(m),
		renderStatusBar(m),
	)
}

func renderTabs(m *tui.Model) string {
	u := modelops.CurrentUser(m)
	visible := routes.Visible(u)

	names := make([]string, 0, len(visible))
	for i, r := range visible {
		names = append(names, fmt.Sprintf("%d %s", i+1, r))
	}
	selected := slices.Index(visible, m.UiState.Route())

	right := ""
	if u != nil {
		right = components.SubtleStyle.Render(fmt.Sprintf("%s · %s", u.FullName, u.Role))
	}
	if len(names) == 0 {
		names = []string{routes.Login.String()}
		selected = 0
	}
	return components.RenderTabs(names, selected, m.UiState.Width(), right)
}

func renderBody(m *tui.Model) string {
	height := m.UiState.ContentHeight()

	var body string
	switch m.UiState.Route() {
	case routes.Login:
		body = viewLogin(m)
	case routes.Dashboard:
		body = ViewDashboard(m)
	case routes.Tasks:
		if m.ListViewState.ViewMode() == state.ListView {
			body = ViewTaskList(m)
		} else {
			body = ViewKanbanBoard(m)
		}
	case routes.Announcements:
		body = ViewAnnouncements(m)
	case routes.Leaves:
		body = ViewLeaves(m)
	case routes.Users:
		body = ViewUsers(m)
	case routes.Ventures:
		body = ViewVentures(m)
	}

	return lipgloss.NewStyle().
		Width(m.UiState.Width()).
		Height(height).
		MaxHeight(height).
		Render(body)
}

func viewLogin(m *tui.Model) string {
	msg := "Log in with your employee ID"
	if m.FormState.Submitting() {
		msg = "Signing in..."
	}
	return lipgloss.Place(m.UiState.Width(), m.UiState.ContentHeight(), lipgloss.Center, lipgloss.Center,
		components.SubtleStyle.Render(msg))
}

func renderStatusBar(m *tui.Model) string {
	left := "? help · " + m.Config.KeyMappings.Quit + " quit"
	if id, ok := m.Engine.Active(); ok {
		left = notifications.RenderInline(notifications.Holding, fmt.Sprintf("holding #%d", id)) +
			fmt.Sprintf(" %s drop on card · enter drop on lane · %s cancel",
				m.Config.KeyMappings.PickUpTask, m.Config.KeyMappings.CancelDrag)
	}

	right := m.UiState.Route().String()
	if m.UiState.Route() == routes.Tasks {
		right = fmt.Sprintf("%d tasks", len(m.App.TaskService.Collection().Get()))
	}

	return components.RenderStatusBar(components.StatusBarProps{
		Width: m.UiState.Width(),
		Left:  left,
		Right: right,
		Stale: modelops.Stale(m),
	})
}
