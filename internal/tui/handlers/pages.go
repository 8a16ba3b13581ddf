package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// ============================================================================
// LIST PAGE HANDLERS
// ============================================================================

// handleListKey moves the row cursor of a list page
func handleListKey(m *tui.Model, key string, rows int) tea.Cmd {
	km := m.Config.KeyMappings
	switch key {
	case km.PrevTask, "up":
		m.ListViewState.MoveCursor(m.UiState.Route(), -1, rows)
	case km.NextTask, "down":
		m.ListViewState.MoveCursor(m.UiState.Route(), 1, rows)
	}
	return nil
}

func handleAnnouncementsKey(m *tui.Model, key string) tea.Cmd {
	km := m.Config.KeyMappings
	switch key {
	case km.Acknowledge:
		if ann, ok := modelops.SelectedAnnouncement(m); ok {
			return modelops.Acknowledge(m, ann)
		}
		return nil
	case km.CreateAnnouncement:
		if !modelops.CanManage(m) {
			return modelops.Notify(m, state.LevelWarning, "Only managers can post announcements")
		}
		return OpenAnnouncementForm(m)
	}
	return handleListKey(m, key, len(modelops.Announcements(m)))
}

func handleLeavesKey(m *tui.Model, key string) tea.Cmd {
	km := m.Config.KeyMappings
	switch key {
	case km.ApplyLeave:
		return OpenLeaveForm(m)
	case km.ApproveLeave, km.RejectLeave:
		if !modelops.CanManage(m) {
			return nil
		}
		l, ok := modelops.SelectedLeave(m)
		if !ok {
			return nil
		}
		if l.Status != models.LeavePending {
			return modelops.Notify(m, state.LevelInfo, "Leave already "+string(l.Status))
		}
		status := models.LeaveApproved
		if key == km.RejectLeave {
			status = models.LeaveRejected
		}
		return modelops.ReviewLeave(m, l.ID, status)
	}
	return handleListKey(m, key, len(modelops.Leaves(m)))
}

func handleUsersKey(m *tui.Model, key string) tea.Cmd {
	km := m.Config.KeyMappings
	switch key {
	case km.PrevColumn, "left":
		m.ListViewState.CycleRoleFilter(-1)
		return nil
	case km.NextColumn, "right":
		m.ListViewState.CycleRoleFilter(1)
		return nil
	}
	return handleListKey(m, key, len(modelops.Users(m)))
}
