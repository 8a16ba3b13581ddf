package render

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// split divides the page into a list pane and a detail pane
func split(m *tui.Model) (int, int) {
	left := m.UiState.Width() * 3 / 5
	return left, m.UiState.Width() - left
}

// ViewAnnouncements lists announcements next to the selected one's content
func ViewAnnouncements(m *tui.Model) string {
	items := modelops.Announcements(m)
	u := modelops.CurrentUser(m)
	listWidth, detailWidth := split(m)
	height := m.UiState.ContentHeight()

	rows := make([][]string, 0, len(items))
	for _, a := range items {
		read := " "
		if u != nil && a.AcknowledgedBy(u.ID) {
			read = "✓"
		}
		rows = append(rows, []string{read, a.Title, since(a.CreatedAt), strconv.Itoa(a.AckCount())})
	}
	cursor := m.ListViewState.Cursor(routes.Announcements, len(rows))

	list := components.RenderTable(components.TableProps{
		Headers:  []string{"", "Title", "Posted", "Acks"},
		Rows:     rows,
		Selected: cursor,
		Width:    listWidth,
		Height:   height,
	})

	detail := ""
	if ann, ok := modelops.SelectedAnnouncement(m); ok {
		hint := m.Config.KeyMappings.Acknowledge + " acknowledge"
		if u != nil && ann.AcknowledgedBy(u.ID) {
			hint = "acknowledged"
		}
		detail = lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render(ann.Title),
			components.RenderMarkdown(ann.Content, detailWidth-4),
			components.SubtleStyle.Render(hint),
		)
	}
	panel := components.PanelStyle.Width(detailWidth).Height(height).Render(detail)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, panel)
}

// ViewLeaves lists leave requests next to the upcoming holidays
func ViewLeaves(m *tui.Model) string {
	leaves := modelops.Leaves(m)
	listWidth, sideWidth := split(m)
	height := m.UiState.ContentHeight()

	rows := make([][]string, 0, len(leaves))
	for _, l := range leaves {
		rows = append(rows, []string{
			string(l.LeaveType),
			l.StartDate.Date(),
			l.EndDate.Date(),
			strconv.Itoa(l.Days()),
			string(l.Status),
			l.Reason,
		})
	}

	list := components.RenderTable(components.TableProps{
		Headers:  []string{"Type", "From", "To", "Days", "Status", "Reason"},
		Rows:     rows,
		Selected: m.ListViewState.Cursor(routes.Leaves, len(rows)),
		Width:    listWidth,
		Height:   height,
	})

	km := m.Config.KeyMappings
	hint := km.ApplyLeave + " apply"
	if modelops.CanManage(m) {
		hint += fmt.Sprintf(" · %s approve · %s reject", km.ApproveLeave, km.RejectLeave)
	}

	lines := []string{components.TitleStyle.Render("Holidays")}
	now := m.Now()
	for _, h := range modelops.Holidays(m) {
		line := h.Date.Format("Mon Jan 2") + "  " + h.Name
		if h.Date.Before(now) {
			line = components.SubtleStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", components.SubtleStyle.Render(hint))
	side := components.PanelStyle.Width(sideWidth).Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, side)
}

// ViewUsers lists the users on the active role tab
func ViewUsers(m *tui.Model) string {
	users := modelops.Users(m)

	tabs := make([]string, 0, len(state.RoleFilters))
	for _, r := range state.RoleFilters {
		if r == "" {
			tabs = append(tabs, "All")
		} else {
			tabs = append(tabs, string(r))
		}
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.EmpID, u.FullName, string(u.Role), modelops.VentureName(m, u.VentureID), active(u)})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderTabs(tabs, m.ListViewState.RoleFilterIndex(), m.UiState.Width(), ""),
		components.RenderTable(components.TableProps{
			Headers:  []string{"Emp ID", "Name", "Role", "Venture", "Status"},
			Rows:     rows,
			Selected: m.ListViewState.Cursor(routes.Users, len(rows)),
			Width:    m.UiState.Width(),
			Height:   m.UiState.ContentHeight() - 3,
		}),
	)
}

func active(u models.User) string {
	if u.IsActive {
		return "active"
	}
	return "inactive"
}

// ViewVentures lists ventures with their member counts
func ViewVentures(m *tui.Model) string {
	ventures := modelops.Ventures(m)

	rows := make([][]string, 0, len(ventures))
	for _, v := range ventures {
		rows = append(rows, []string{v.Name, v.Description, strconv.Itoa(modelops.MemberCount(m, v.ID))})
	}

	return components.RenderTable(components.TableProps{
		Headers:  []string{"Name", "Description", "Members"},
		Rows:     rows,
		Selected: m.ListViewState.Cursor(routes.Ventures, len(rows)),
		Width:    m.UiState.Width(),
		Height:   m.UiState.ContentHeight(),
	})
}
