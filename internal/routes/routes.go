// Package routes defines the screens of the application and who may see them
package routes

import "github.com/thenoetrevino/agency/internal/models"

// Route is one screen
type Route int

const (
	Login Route = iota
	Dashboard
	Tasks
	Announcements
	Leaves
	Users
	Ventures
)

// Navigable lists the routes reachable from the navigation bar, in order
var Navigable = []Route{Dashboard, Tasks, Announcements, Leaves, Users, Ventures}

var paths = map[Route]string{
	Login:         "/login",
	Dashboard:     "/",
	Tasks:         "/tasks",
	Announcements: "/announcements",
	Leaves:        "/leaves",
	Users:         "/users",
	Ventures:      "/ventures",
}

var titles = map[Route]string{
	Login:         "Login",
	Dashboard:     "Dashboard",
	Tasks:         "Tasks",
	Announcements: "Announcements",
	Leaves:        "Leaves",
	Users:         "Users",
	Ventures:      "Ventures",
}

// allowed lists the roles that may open a route. Absent means any
// authenticated user.
var allowed = map[Route][]models.Role{
	Users:    {models.RoleAdmin, models.RoleManager},
	Ventures: {models.RoleAdmin},
}

func (r Route) Path() string {
	return paths[r]
}

func (r Route) String() string {
	return titles[r]
}

// Public reports whether the route needs no session
func (r Route) Public() bool {
	return r == Login
}

// ByPath looks a route up by its path
func ByPath(path string) (Route, bool) {
	for r, p := range paths {
		if p == path {
			return r, true
		}
	}
	return 0, false
}

// Allows reports whether user may open r without being redirected
func Allows(r Route, user *models.User) bool {
	if r.Public() {
		return true
	}
	if user == nil {
		return false
	}
	roles, gated := allowed[r]
	return !gated || user.HasRole(roles...)
}

// Resolve returns the route actually shown for a visit to r: anonymous
// visits to protected routes go to Login, under-privileged ones to
// Dashboard. Authorization failures are redirects, never errors.
func Resolve(r Route, user *models.User) Route {
	switch {
	case Allows(r, user):
		return r
	case user == nil:
		return Login
	default:
		return Dashboard
	}
}

// Visible returns the navigable routes user may open
func Visible(user *models.User) []Route {
	var out []Route
	for _, r := range Navigable {
		if Allows(r, user) {
			out = append(out, r)
		}
	}
	return out
}
