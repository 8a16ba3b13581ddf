package tui

import (
	"github.com/thenoetrevino/agency/internal/events"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/routes"
)

// RefreshMsg is sent when a cached resource or the session changed
type RefreshMsg struct {
	Event events.Event
}

// LoadedMsg reports the end of a page load or manual refresh
type LoadedMsg struct {
	Route routes.Route
	Err   error
}

// LoginResultMsg carries the outcome of a login attempt
type LoginResultMsg struct {
	User *models.User
	Err  error
}

// LoggedOutMsg is sent once the session has been cleared
type LoggedOutMsg struct {
	Err error
}

// MutationResultMsg carries the outcome of a write. Action names the write
// for the error dialog title; Notice is shown on success.
type MutationResultMsg struct {
	Action string
	Notice string
	Err    error
}

// TaskFormReadyMsg is sent once the assignee list for the task form has
// been loaded
type TaskFormReadyMsg struct {
	Users []models.User
	Err   error
}

// DismissNotificationMsg removes a notification when its timer fires
type DismissNotificationMsg struct {
	ID int
}
