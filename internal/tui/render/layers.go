package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/layers"
	"github.com/thenoetrevino/agency/internal/tui/notifications"
)

// RenderFormLayer renders the open form as a centered dialog
func RenderFormLayer(m *tui.Model) *lipgloss.Layer {
	form := m.FormState.Form()
	if form == nil {
		return nil
	}

	width, _ := layers.FormSize(m.UiState.Width(), m.UiState.Height())
	title := components.TitleStyle.Render(m.FormState.Kind().String())

	body := form.View()
	if m.FormState.Submitting() {
		body = components.SubtleStyle.Render("Submitting...")
	}

	formBox := components.FormBoxStyle.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))

	return layers.CreateCenteredLayer(formBox, m.UiState.Width(), m.UiState.Height())
}

// RenderErrorLayer renders the blocking error dialog
func RenderErrorLayer(m *tui.Model) *lipgloss.Layer {
	if !m.ErrorState.HasError() {
		return nil
	}
	dialog := notifications.RenderDialog(m.ErrorState.Title(), m.ErrorState.Get(), layers.DialogWidth(m.UiState.Width()))
	return layers.CreateCenteredLayer(dialog, m.UiState.Width(), m.UiState.Height())
}

// RenderHelpLayer renders the keyboard shortcuts help screen as a layer
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	helpBox := components.HelpBoxStyle.
		Width(56).
		Render(generateHelpText(m))

	return layers.CreateCenteredLayer(helpBox, m.UiState.Width(), m.UiState.Height())
}

type binding struct {
	key, what string
}

func section(title string, bindings ...binding) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, k := range bindings {
		fmt.Fprintf(&b, "  %-10s %s\n", k.key, k.what)
	}
	return b.String()
}

// generateHelpText creates help text based on current key mappings
func generateHelpText(m *tui.Model) string {
	km := m.Config.KeyMappings
	return strings.Join([]string{
		"AGENCY - Keyboard Shortcuts\n",
		section("BOARD",
			binding{km.PickUpTask, "Pick up task / drop on card"},
			binding{"enter", "Drop held task on lane"},
			binding{km.CancelDrag, "Cancel drag"},
			binding{km.MoveTaskLeft, "Move task to previous lane"},
			binding{km.MoveTaskRight, "Move task to next lane"},
			binding{km.StartTimer, "Start timer"},
			binding{km.StopTimer, "Stop timer"},
			binding{km.ProgressUp + " " + km.ProgressDown, "Progress up / down"},
			binding{km.AddTask, "New task (managers)"},
			binding{km.ToggleView, "Toggle board / list"},
		),
		section("PAGES",
			binding{km.Acknowledge, "Acknowledge announcement"},
			binding{km.CreateAnnouncement, "New announcement (managers)"},
			binding{km.ApplyLeave, "Apply for leave"},
			binding{km.ApproveLeave + " " + km.RejectLeave, "Approve / reject leave"},
		),
		section("NAVIGATION",
			binding{km.PrevColumn + " " + km.NextColumn, "Previous / next lane or tab"},
			binding{km.PrevTask + " " + km.NextTask, "Previous / next row"},
			binding{km.NextPage, "Next page"},
			binding{km.PrevPage, "Previous page"},
			binding{"1-6", "Jump to page"},
		),
		section("OTHER",
			binding{km.Refresh, "Refresh page"},
			binding{km.Logout, "Log out"},
			binding{km.ShowHelp, "Show this help"},
			binding{km.Quit, "Quit"},
		),
		"Press esc to close",
	}, "\n")
}
