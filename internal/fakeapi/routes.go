package fakeapi

import (
	"math"
	"net/http"
	"slices"

	"github.com/gorilla/mux"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

func (s *Server) routes() {
	root := mux.NewRouter()
	r := root.PathPrefix("/api/v1").Subrouter()
	r.Use(s.instrument)

	r.HandleFunc("/login/access-token", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/me", s.requireUser(s.handleMe)).Methods(http.MethodGet)

	r.HandleFunc("/tasks/", s.requireUser(s.handleListTasks)).Methods(http.MethodGet)
	r.HandleFunc("/tasks/", s.requireRole(models.RoleManager, s.handleCreateTask)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", s.requireUser(s.handleUpdateTask)).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}/timer/start", s.requireUser(s.handleStartTimer)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/timer/stop", s.requireUser(s.handleStopTimer)).Methods(http.MethodPost)

	r.HandleFunc("/announcements/", s.requireUser(s.handleListAnnouncements)).Methods(http.MethodGet)
	r.HandleFunc("/announcements/", s.requireRole(models.RoleManager, s.handleCreateAnnouncement)).Methods(http.MethodPost)
	r.HandleFunc("/announcements/{id}/acknowledge", s.requireUser(s.handleAcknowledge)).Methods(http.MethodPost)

	r.HandleFunc("/users/", s.requireRole(models.RoleManager, s.handleListUsers)).Methods(http.MethodGet)
	r.HandleFunc("/users/", s.requireRole(models.RoleManager, s.handleCreateUser)).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", s.requireRole(models.RoleManager, s.handleUpdateUser)).Methods(http.MethodPut)

	r.HandleFunc("/ventures/", s.requireUser(s.handleListVentures)).Methods(http.MethodGet)
	r.HandleFunc("/ventures/", s.requireRole(models.RoleAdmin, s.handleCreateVenture)).Methods(http.MethodPost)
	r.HandleFunc("/ventures/{id}", s.requireRole(models.RoleAdmin, s.handleUpdateVenture)).Methods(http.MethodPut)

	r.HandleFunc("/leaves/", s.requireUser(s.handleListLeaves)).Methods(http.MethodGet)
	r.HandleFunc("/leaves/", s.requireUser(s.handleApplyLeave)).Methods(http.MethodPost)
	r.HandleFunc("/leaves/holidays", s.requireUser(s.handleListHolidays)).Methods(http.MethodGet)
	r.HandleFunc("/leaves/{id}/status", s.requireRole(models.RoleManager, s.handleReviewLeave)).Methods(http.MethodPut)

	r.HandleFunc("/analytics/dashboard", s.requireUser(s.handleDashboard)).Methods(http.MethodGet)

	s.router = root
}

// ============================================================================
// TASKS
// ============================================================================

func (s *Server) findTask(id types.TaskID) *models.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// visible applies the backend's listing rule: employees see their own
// assignments, managers what they created, admins everything
func visible(u models.User, t *models.Task) bool {
	switch u.Role {
	case models.RoleEmployee:
		return t.AssignedToID != nil && *t.AssignedToID == u.ID
	case models.RoleManager:
		return t.CreatedByID == u.ID
	}
	return true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	s.mu.Lock()
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if visible(user, t) {
			out = append(out, *t)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in api.TaskCreate
	if !decode(w, r, &in) {
		return
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	var due *models.Timestamp
	if in.DueDate != nil && *in.DueDate != "" {
		parsed, err := models.ParseTimestamp(*in.DueDate)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid due_date")
			return
		}
		due = &parsed
	}

	creator := currentUser(r)
	assignees := slices.Compact(slices.Sorted(slices.Values(in.AssignedToIDs)))

	s.mu.Lock()
	defer s.mu.Unlock()

	build := func() *models.Task {
		return &models.Task{
			ID:          types.TaskID(s.id()),
			Title:       in.Title,
			Description: in.Description,
			Status:      models.StatusAssigned,
			Priority:    in.Priority,
			DueDate:     due,
			CreatedByID: creator.ID,
			CreatedAt:   models.NewTimestamp(s.now()),
		}
	}

	var created []models.Task
	if len(assignees) == 0 {
		t := build()
		s.tasks = append(s.tasks, t)
		created = append(created, *t)
	}
	for _, uid := range assignees {
		t := build()
		assignee := uid
		t.AssignedToID = &assignee
		if acc, ok := s.accounts[uid]; ok {
			t.Assignee = &models.UserRef{ID: acc.user.ID, FullName: acc.user.FullName}
		}
		s.tasks = append(s.tasks, t)
		created = append(created, *t)
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	var in api.TaskUpdate
	if !decode(w, r, &in) {
		return
	}
	user := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTask(types.TaskID(id))
	if t == nil {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	if user.Role == models.RoleEmployee && (t.AssignedToID == nil || *t.AssignedToID != user.ID) {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Progress != nil {
		t.Progress = *in.Progress
	}
	updated := models.NewTimestamp(s.now())
	t.UpdatedAt = &updated

	writeJSON(w, http.StatusOK, *t)
}

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	s.toggleTimer(w, r, true)
}

func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	s.toggleTimer(w, r, false)
}

func (s *Server) toggleTimer(w http.ResponseWriter, r *http.Request, start bool) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	user := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTask(types.TaskID(id))
	if t == nil {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	now := s.now()
	switch {
	case start && t.TimerRunning():
		writeDetail(w, http.StatusBadRequest, "Timer already running")
		return
	case !start && !t.TimerRunning():
		writeDetail(w, http.StatusBadRequest, "No active timer")
		return
	case start:
		ts := models.NewTimestamp(now)
		t.ActiveTimerStart = &ts
	default:
		begin := *t.ActiveTimerStart
		end := models.NewTimestamp(now)
		t.TimeLogs = append(t.TimeLogs, models.TimeLog{
			ID:              types.TimeLogID(s.id()),
			TaskID:          t.ID,
			UserID:          user.ID,
			StartTime:       begin,
			EndTime:         &end,
			DurationMinutes: int(now.Sub(begin.Time).Minutes()),
		})
		t.ActiveTimerStart = nil
	}

	writeJSON(w, http.StatusOK, *t)
}

// ============================================================================
// ANNOUNCEMENTS
// ============================================================================

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in api.AnnouncementCreate
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	a := &models.Announcement{
		ID:        types.AnnouncementID(s.id()),
		Title:     in.Title,
		Content:   in.Content,
		IsActive:  true,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	s.announcements = append(s.announcements, a)
	out := *a
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	user := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	var ann *models.Announcement
	for _, a := range s.announcements {
		if a.ID == types.AnnouncementID(id) {
			ann = a
		}
	}
	if ann == nil {
		writeDetail(w, http.StatusNotFound, "Announcement not found")
		return
	}
	if ann.AcknowledgedBy(user.ID) {
		writeDetail(w, http.StatusBadRequest, "Already acknowledged")
		return
	}

	ack := models.Ack{
		ID:             types.AckID(s.id()),
		AnnouncementID: ann.ID,
		UserID:         user.ID,
		User:           &models.UserRef{ID: user.ID, FullName: user.FullName},
		AcknowledgedAt: models.NewTimestamp(s.now()),
	}
	ann.Acks = append(ann.Acks, ack)

	writeJSON(w, http.StatusOK, ack)
}

// ============================================================================
// USERS
// ============================================================================

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	viewer := currentUser(r)

	s.mu.Lock()
	out := []models.User{}
	for _, id := range s.userOrder {
		u := s.accounts[id].user
		if viewer.Role == models.RoleManager {
			if viewer.VentureID == nil || !u.InVenture(*viewer.VentureID) {
				continue
			}
		}
		out = append(out, u)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func sameVenture(a, b *types.VentureID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in api.UserCreate
	if !decode(w, r, &in) {
		return
	}
	creator := currentUser(r)

	if creator.Role == models.RoleManager {
		if in.Role == models.RoleAdmin {
			writeDetail(w, http.StatusForbidden, "Managers cannot create Admins")
			return
		}
		if !sameVenture(in.VentureID, creator.VentureID) {
			writeDetail(w, http.StatusForbidden, "Managers can only create users in their own venture")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.user.EmpID == in.EmpID {
			writeDetail(w, http.StatusBadRequest, "The user with this Employee ID already exists in the system.")
			return
		}
	}

	u := models.User{
		ID:        types.UserID(s.id()),
		EmpID:     in.EmpID,
		FullName:  in.FullName,
		Role:      in.Role,
		VentureID: in.VentureID,
		IsActive:  in.IsActive,
	}
	s.addAccount(u, in.Password)

	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	var in api.UserUpdate
	if !decode(w, r, &in) {
		return
	}
	editor := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, found := s.accounts[types.UserID(id)]
	if !found {
		writeDetail(w, http.StatusNotFound, "The user with this id does not exist in the system")
		return
	}

	if editor.Role == models.RoleManager {
		switch {
		case acc.user.Role == models.RoleAdmin:
			writeDetail(w, http.StatusForbidden, "Managers cannot edit Admins")
			return
		case !sameVenture(acc.user.VentureID, editor.VentureID):
			writeDetail(w, http.StatusForbidden, "Managers cannot edit users in other ventures")
			return
		case in.Role != nil && *in.Role == models.RoleAdmin:
			writeDetail(w, http.StatusForbidden, "Managers cannot promote to Admin")
			return
		case in.VentureID != nil && !sameVenture(in.VentureID, editor.VentureID):
			writeDetail(w, http.StatusForbidden, "Managers cannot move users to other ventures")
			return
		}
	}

	if in.FullName != nil {
		acc.user.FullName = *in.FullName
	}
	if in.Password != nil && *in.Password != "" {
		acc.password = *in.Password
	}
	if in.Role != nil {
		acc.user.Role = *in.Role
	}
	if in.VentureID != nil {
		v := *in.VentureID
		acc.user.VentureID = &v
	}
	if in.IsActive != nil {
		acc.user.IsActive = *in.IsActive
	}

	writeJSON(w, http.StatusOK, acc.user)
}

// ============================================================================
// VENTURES
// ============================================================================

func (s *Server) handleListVentures(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.Venture, 0, len(s.ventures))
	for _, v := range s.ventures {
		out = append(out, *v)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateVenture(w http.ResponseWriter, r *http.Request) {
	var in api.VentureInput
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	s.mu.Lock()
	v := &models.Venture{ID: types.VentureID(s.id()), Name: in.Name, Description: in.Description}
	s.ventures = append(s.ventures, v)
	out := *v
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateVenture(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	var in api.VentureInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.ventures {
		if v.ID == types.VentureID(id) {
			if in.Name != "" {
				v.Name = in.Name
			}
			if in.Description != "" {
				v.Description = in.Description
			}
			writeJSON(w, http.StatusOK, *v)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "The venture with this id does not exist")
}

// ============================================================================
// LEAVES & HOLIDAYS
// ============================================================================

func (s *Server) handleListLeaves(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	s.mu.Lock()
	out := []models.Leave{}
	for _, l := range s.leaves {
		if user.Role == models.RoleEmployee && l.UserID != user.ID {
			continue
		}
		out = append(out, *l)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleApplyLeave(w http.ResponseWriter, r *http.Request) {
	var in api.LeaveCreate
	if !decode(w, r, &in) {
		return
	}
	start, errStart := models.ParseTimestamp(in.StartDate)
	end, errEnd := models.ParseTimestamp(in.EndDate)
	if errStart != nil || errEnd != nil || !in.LeaveType.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid leave request")
		return
	}

	s.mu.Lock()
	l := &models.Leave{
		ID:        types.LeaveID(s.id()),
		UserID:    currentUser(r).ID,
		LeaveType: in.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    in.Reason,
		Status:    models.LeavePending,
		AppliedAt: models.NewTimestamp(s.now()),
	}
	s.leaves = append(s.leaves, l)
	out := *l
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReviewLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	var in struct {
		Status models.LeaveStatus `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	reviewer := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.leaves {
		if l.ID == types.LeaveID(id) {
			l.Status = in.Status
			at := models.NewTimestamp(s.now())
			l.ReviewedAt = &at
			rid := reviewer.ID
			l.ReviewedByID = &rid
			writeJSON(w, http.StatusOK, *l)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Leave not found")
}

func (s *Server) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.Holiday, 0, len(s.holidays))
	for _, h := range s.holidays {
		out = append(out, *h)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// ============================================================================
// ANALYTICS
// ============================================================================

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Dashboard{TasksByStatus: map[models.Status]int{}}
	minutes := 0
	weekStart := s.now().AddDate(0, 0, -7)
	daily := map[string]int{}
	var days []string

	for _, t := range s.tasks {
		d.TotalTasks++
		d.TasksByStatus[t.Status]++
		if t.Status == models.StatusCompleted {
			d.TasksCompleted++
		}
		if t.TimerRunning() {
			d.ActiveTimers++
		}
		for _, log := range t.TimeLogs {
			minutes += log.DurationMinutes
			if log.StartTime.After(weekStart) {
				day := log.StartTime.Date()
				if _, ok := daily[day]; !ok {
					days = append(days, day)
				}
				daily[day] += log.DurationMinutes
			}
		}
	}

	slices.Sort(days)
	for _, day := range days {
		d.WeeklyActivity = append(d.WeeklyActivity, models.DayActivity{Date: day, Hours: round2(float64(daily[day]) / 60)})
	}
	d.TotalHoursLogged = round2(float64(minutes) / 60)
	if d.TotalTasks > 0 {
		d.CompletionRate = round2(float64(d.TasksCompleted) / float64(d.TotalTasks) * 100)
	}

	writeJSON(w, http.StatusOK, d)
}
