package state

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// FormKind says which form is open
type FormKind int

const (
	NoForm FormKind = iota
	LoginForm
	TaskForm
	AnnouncementForm
	LeaveForm
)

func (k FormKind) String() string {
	switch k {
	case LoginForm:
		return "Log in"
	case TaskForm:
		return "New Task"
	case AnnouncementForm:
		return "New Announcement"
	case LeaveForm:
		return "Apply for Leave"
	}
	return ""
}

// LoginValues are bound to the login form fields
type LoginValues struct {
	EmpID    string
	Password string
}

// TaskValues are bound to the task creation form fields
type TaskValues struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     string
	Assignees   []types.UserID
	Confirm     bool
}

// AnnouncementValues are bound to the announcement form fields
type AnnouncementValues struct {
	Title   string
	Content string
	Confirm bool
}

// LeaveValues are bound to the leave request form fields
type LeaveValues struct {
	Type    models.LeaveType
	From    string
	To      string
	Reason  string
	Confirm bool
}

// FormState owns the open huh form and the values its fields write to.
// The value structs are reset whenever a form of that kind is opened.
type FormState struct {
	form *huh.Form
	kind FormKind

	// submitting is set while the form's request is in flight
	submitting bool

	Login        *LoginValues
	Task         *TaskValues
	Announcement *AnnouncementValues
	Leave        *LeaveValues
}

func NewFormState() *FormState {
	return &FormState{
		Login:        &LoginValues{},
		Task:         &TaskValues{},
		Announcement: &AnnouncementValues{},
		Leave:        &LeaveValues{},
	}
}

// Open makes form the active form of the given kind
func (s *FormState) Open(kind FormKind, form *huh.Form) {
	s.kind = kind
	s.form = form
	s.submitting = false
}

// Close drops the active form
func (s *FormState) Close() {
	s.kind = NoForm
	s.form = nil
	s.submitting = false
}

func (s *FormState) Form() *huh.Form {
	return s.form
}

// SetForm stores the form returned by huh's Update
func (s *FormState) SetForm(form *huh.Form) {
	s.form = form
}

func (s *FormState) Kind() FormKind {
	return s.kind
}

func (s *FormState) Submitting() bool {
	return s.submitting
}

func (s *FormState) SetSubmitting(v bool) {
	s.submitting = v
}

// ResetLogin clears the login values, keeping the employee ID when asked
func (s *FormState) ResetLogin(keepEmpID bool) {
	empID := s.Login.EmpID
	*s.Login = LoginValues{}
	if keepEmpID {
		s.Login.EmpID = empID
	}
}

func (s *FormState) ResetTask() {
	*s.Task = TaskValues{Priority: models.PriorityMedium, Confirm: true}
}

func (s *FormState) ResetAnnouncement() {
	*s.Announcement = AnnouncementValues{Confirm: true}
}

func (s *FormState) ResetLeave() {
	*s.Leave = LeaveValues{Type: models.LeaveCasual, Confirm: true}
}
