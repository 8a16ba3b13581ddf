package modelops

import (
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/thenoetrevino/agency/internal/board"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/services/user"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/state"
	"github.com/thenoetrevino/agency/internal/types"
)

// CurrentUser is the logged-in user or nil
func CurrentUser(m *tui.Model) *models.User {
	return m.App.Session.User()
}

// CanManage reports whether the user may create tasks, post announcements
// and review leaves
func CanManage(m *tui.Model) bool {
	u := CurrentUser(m)
	return u != nil && u.Role.Includes(models.RoleManager)
}

// Columns groups the cached tasks into board lanes
func Columns(m *tui.Model) []board.Column {
	return board.Group(m.App.TaskService.Collection().Get())
}

// ListTasks is the task list view: lanes concatenated in board order
func ListTasks(m *tui.Model) []models.Task {
	var out []models.Task
	for _, col := range Columns(m) {
		out = append(out, col.Tasks...)
	}
	return out
}

// SelectedTask returns the task under the cursor in either view
func SelectedTask(m *tui.Model) (models.Task, bool) {
	if m.ListViewState.ViewMode() == state.ListView {
		tasks := ListTasks(m)
		if len(tasks) == 0 {
			return models.Task{}, false
		}
		return tasks[m.ListViewState.Cursor(routes.Tasks, len(tasks))], true
	}

	cols := Columns(m)
	col := cols[m.UiState.SelectedColumn()]
	i := m.UiState.SelectedTask()
	if i < 0 || i >= len(col.Tasks) {
		return models.Task{}, false
	}
	return col.Tasks[i], true
}

// SyncBoardCursor keeps the cursor valid after the lanes were regrouped and
// lands it on the followed task once that task shows up
func SyncBoardCursor(m *tui.Model) {
	cols := Columns(m)

	if m.Follow != 0 {
		for ci, col := range cols {
			for ti, t := range col.Tasks {
				if t.ID == m.Follow {
					m.UiState.SetSelectedColumn(ci)
					m.UiState.SetSelectedTask(ti)
					m.Follow = 0
				}
			}
		}
	}

	var counts [state.BoardColumns]int
	for i, col := range cols {
		if i < state.BoardColumns {
			counts[i] = len(col.Tasks)
		}
	}
	m.UiState.ClampSelection(counts)
}

// Announcements returns the cached announcements, newest first
func Announcements(m *tui.Model) []models.Announcement {
	out := slices.Clone(m.App.AnnouncementService.Collection().Get())
	slices.SortStableFunc(out, func(a, b models.Announcement) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return out
}

// SelectedAnnouncement returns the announcement under the cursor
func SelectedAnnouncement(m *tui.Model) (models.Announcement, bool) {
	items := Announcements(m)
	if len(items) == 0 {
		return models.Announcement{}, false
	}
	return items[m.ListViewState.Cursor(routes.Announcements, len(items))], true
}

// Leaves returns the cached leave requests, latest start first
func Leaves(m *tui.Model) []models.Leave {
	res, ok := cache.Lookup[[]models.Leave](m.App.Store, cache.Leaves)
	if !ok {
		return nil
	}
	out := slices.Clone(res.Get())
	slices.SortStableFunc(out, func(a, b models.Leave) int {
		return b.StartDate.Compare(a.StartDate.Time)
	})
	return out
}

// SelectedLeave returns the leave request under the cursor
func SelectedLeave(m *tui.Model) (models.Leave, bool) {
	items := Leaves(m)
	if len(items) == 0 {
		return models.Leave{}, false
	}
	return items[m.ListViewState.Cursor(routes.Leaves, len(items))], true
}

// Holidays returns the cached holidays in date order
func Holidays(m *tui.Model) []models.Holiday {
	res, ok := cache.Lookup[[]models.Holiday](m.App.Store, cache.Holidays)
	if !ok {
		return nil
	}
	out := slices.Clone(res.Get())
	slices.SortStableFunc(out, func(a, b models.Holiday) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}

// Users returns the cached users on the active role tab
func Users(m *tui.Model) []models.User {
	return user.Filter(m.App.UserService.Collection().Get(), m.ListViewState.RoleFilter())
}

// Ventures returns the cached ventures
func Ventures(m *tui.Model) []models.Venture {
	return m.App.VentureService.Collection().Get()
}

// VentureName resolves a venture from the cache without fetching
func VentureName(m *tui.Model, id *types.VentureID) string {
	if id == nil {
		return "-"
	}
	for _, v := range Ventures(m) {
		if v.ID == *id {
			return v.Name
		}
	}
	return id.String()
}

// MemberCount counts cached users in venture id
func MemberCount(m *tui.Model, id types.VentureID) int {
	n := 0
	for _, u := range m.App.UserService.Collection().Get() {
		if u.InVenture(id) {
			n++
		}
	}
	return n
}

// RouteKeys lists the cached resources a page shows
func RouteKeys(r routes.Route) []cache.Key {
	switch r {
	case routes.Dashboard:
		return []cache.Key{cache.Dashboard}
	case routes.Tasks:
		return []cache.Key{cache.Tasks}
	case routes.Announcements:
		return []cache.Key{cache.Announcements}
	case routes.Leaves:
		return []cache.Key{cache.Leaves, cache.Holidays}
	case routes.Users:
		return []cache.Key{cache.Users, cache.Ventures}
	case routes.Ventures:
		return []cache.Key{cache.Ventures, cache.Users}
	}
	return nil
}

// Stale describes the current page's data when its last refresh failed,
// or returns an empty string when the page is current
func Stale(m *tui.Model) string {
	for _, key := range RouteKeys(m.UiState.Route()) {
		res, ok := m.App.Store.Resource(key)
		if !ok || res.LastError() == nil {
			continue
		}
		if !res.Loaded() {
			return "could not load " + string(key)
		}
		return string(key) + " as of " + humanize.Time(res.UpdatedAt())
	}
	return ""
}
