package state

import (
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/routes"
)

// ViewMode represents how the task page is laid out
type ViewMode int

const (
	KanbanView ViewMode = iota // Default column-based kanban view
	ListView                   // Table-based list view
)

// RoleFilters are the tabs of the users page, in order
var RoleFilters = []models.Role{"", models.RoleManager, models.RoleEmployee}

// ListViewState tracks the row cursor of every list-shaped page plus the
// task page layout and the users page role tab
type ListViewState struct {
	viewMode   ViewMode
	cursors    map[routes.Route]int
	roleFilter int
}

func NewListViewState() *ListViewState {
	return &ListViewState{
		viewMode: KanbanView,
		cursors:  make(map[routes.Route]int),
	}
}

func (s *ListViewState) ViewMode() ViewMode {
	return s.viewMode
}

// ToggleView switches the task page between board and list
func (s *ListViewState) ToggleView() {
	if s.viewMode == KanbanView {
		s.viewMode = ListView
	} else {
		s.viewMode = KanbanView
	}
}

// Cursor returns the selected row of a page, clamped to n rows
func (s *ListViewState) Cursor(r routes.Route, n int) int {
	return min(s.cursors[r], max(n-1, 0))
}

// MoveCursor moves the selection of page r by delta within n rows
func (s *ListViewState) MoveCursor(r routes.Route, delta, n int) {
	if n == 0 {
		s.cursors[r] = 0
		return
	}
	s.cursors[r] = min(max(s.Cursor(r, n)+delta, 0), n-1)
}

// RoleFilter is the role shown on the users page; empty means all roles
func (s *ListViewState) RoleFilter() models.Role {
	return RoleFilters[s.roleFilter]
}

// RoleFilterIndex is the active users page tab
func (s *ListViewState) RoleFilterIndex() int {
	return s.roleFilter
}

// CycleRoleFilter moves the users page tab by delta, wrapping around
func (s *ListViewState) CycleRoleFilter(delta int) {
	n := len(RoleFilters)
	s.roleFilter = ((s.roleFilter+delta)%n + n) % n
	s.cursors[routes.Users] = 0
}
