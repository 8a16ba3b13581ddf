package handlers

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/huhforms"
	"github.com/thenoetrevino/agency/internal/tui/layers"
	"github.com/thenoetrevino/agency/internal/tui/modelops"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// ============================================================================
// OPENING FORMS
// ============================================================================

// open themes form, makes it the active form and starts it
func open(m *tui.Model, kind state.FormKind, form *huh.Form) tea.Cmd {
	form = form.WithTheme(huhforms.CreateTheme(m.Config.ColorScheme))
	m.FormState.Open(kind, form)
	m.UiState.SetMode(state.FormMode)
	return form.Init()
}

// formLines sizes multi-line text fields to the current window
func formLines(m *tui.Model) int {
	_, h := layers.FormSize(m.UiState.Width(), m.UiState.Height())
	return max(3, h/4)
}

// OpenLoginForm shows the login form, keeping the last employee ID
func OpenLoginForm(m *tui.Model) tea.Cmd {
	m.FormState.ResetLogin(true)
	v := m.FormState.Login
	return open(m, state.LoginForm, huhforms.CreateLoginForm(&v.EmpID, &v.Password))
}

// handleAddTask loads the assignee list; the form opens once it arrives
func handleAddTask(m *tui.Model) tea.Cmd {
	if !modelops.CanManage(m) {
		return modelops.Notify(m, state.LevelWarning, "Only managers can create tasks")
	}
	return modelops.PrepareTaskForm(m)
}

func openTaskForm(m *tui.Model, msg tui.TaskFormReadyMsg) tea.Cmd {
	if msg.Err != nil {
		ShowError(m, "Could not load users", api.Detail(msg.Err))
		return nil
	}
	m.FormState.ResetTask()
	return open(m, state.TaskForm, huhforms.CreateTaskForm(m.FormState.Task, msg.Users, formLines(m)))
}

// OpenAnnouncementForm shows the announcement form
func OpenAnnouncementForm(m *tui.Model) tea.Cmd {
	m.FormState.ResetAnnouncement()
	return open(m, state.AnnouncementForm, huhforms.CreateAnnouncementForm(m.FormState.Announcement, formLines(m)))
}

// OpenLeaveForm shows the leave request form
func OpenLeaveForm(m *tui.Model) tea.Cmd {
	m.FormState.ResetLeave()
	return open(m, state.LeaveForm, huhforms.CreateLeaveForm(m.FormState.Leave))
}

// ============================================================================
// FORM MODE
// ============================================================================

// UpdateForm handles all messages when in FormMode
// This is separated out because forms need to receive ALL messages, not just KeyMsg
func UpdateForm(m *tui.Model, msg tea.Msg) tea.Cmd {
	form := m.FormState.Form()
	if form == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return tea.Quit
		case "esc":
			// The login form is the only way forward when logged out
			if m.FormState.Kind() == state.LoginForm {
				return nil
			}
			closeForm(m)
			return nil
		}
	}

	// Ignore input while the request is in flight
	if m.FormState.Submitting() {
		return nil
	}

	model, cmd := form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.FormState.SetForm(f)
		form = f
	}

	switch form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, submitForm(m))
	case huh.StateAborted:
		if m.FormState.Kind() == state.LoginForm {
			return OpenLoginForm(m)
		}
		closeForm(m)
	}
	return cmd
}

func closeForm(m *tui.Model) {
	m.FormState.Close()
	m.UiState.SetMode(state.NormalMode)
}

// submitForm turns a completed form into its request. Forms with a confirm
// step close silently when the user answered no.
func submitForm(m *tui.Model) tea.Cmd {
	fs := m.FormState
	kind := fs.Kind()
	slog.Debug("form submitted", "form", kind.String())

	if kind == state.LoginForm {
		fs.SetSubmitting(true)
		return modelops.Login(m, *fs.Login)
	}

	closeForm(m)
	switch kind {
	case state.TaskForm:
		if fs.Task.Confirm {
			return modelops.CreateTask(m, *fs.Task)
		}
	case state.AnnouncementForm:
		if fs.Announcement.Confirm {
			return modelops.CreateAnnouncement(m, *fs.Announcement)
		}
	case state.LeaveForm:
		if fs.Leave.Confirm {
			return modelops.ApplyLeave(m, *fs.Leave)
		}
	}
	return nil
}

// handleLoginResult lands a successful login on the dashboard, or reopens
// the form with the server's reason
func handleLoginResult(m *tui.Model, msg tui.LoginResultMsg) tea.Cmd {
	if msg.Err != nil {
		slog.Info("login failed", "error", msg.Err)
		return tea.Batch(
			OpenLoginForm(m),
			modelops.Notify(m, state.LevelError, api.Detail(msg.Err)),
		)
	}

	closeForm(m)
	m.FormState.ResetLogin(false)
	r := routes.Resolve(routes.Dashboard, msg.User)
	m.UiState.SetRoute(r)
	return tea.Batch(
		modelops.LoadRoute(m, r),
		modelops.Notify(m, state.LevelInfo, "Welcome, "+msg.User.FullName),
	)
}
