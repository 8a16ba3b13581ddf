// Package fakeapi is an in-memory implementation of the CMS REST contract.
// It backs the client's tests and the `mockapi` development server, and
// mirrors the backend's permission rules and error details.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// Seeded accounts
const (
	AdminID    types.UserID = 1
	ManagerID  types.UserID = 2
	EmployeeID types.UserID = 3

	AdminEmpID    = "ADM001"
	ManagerEmpID  = "MGR001"
	EmployeeEmpID = "EMP001"

	// Password shared by every seeded account
	SeedPassword = "secret123"

	SeedVentureID types.VentureID = 1
)

type account struct {
	user     models.User
	password string
}

type failure struct {
	status int
	detail string
}

// Server holds the fake backend state
type Server struct {
	mu sync.Mutex

	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time

	accounts      map[types.UserID]*account
	userOrder     []types.UserID
	tasks         []*models.Task
	announcements []*models.Announcement
	ventures      []*models.Venture
	leaves        []*models.Leave
	holidays      []*models.Holiday
	nextID        int

	calls    map[string]int
	failures map[string][]failure

	router *mux.Router
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces time.Now, for deterministic timers
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithTokenTTL sets how long issued tokens stay valid
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = d
	}
}

// New creates a server seeded with one venture and an admin, a manager and
// an employee in it
func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("fakeapi-signing-key"),
		tokenTTL: 8 * time.Hour,
		now:      time.Now,
		accounts: make(map[types.UserID]*account),
		calls:    make(map[string]int),
		failures: make(map[string][]failure),
		nextID:   100,
	}
	for _, opt := range opts {
		opt(s)
	}

	venture := SeedVentureID
	s.ventures = append(s.ventures, &models.Venture{ID: venture, Name: "Studio", Description: "Main creative venture"})
	s.addAccount(models.User{ID: AdminID, EmpID: AdminEmpID, FullName: "Ada Admin", Role: models.RoleAdmin, IsActive: true}, SeedPassword)
	s.addAccount(models.User{ID: ManagerID, EmpID: ManagerEmpID, FullName: "Mona Manager", Role: models.RoleManager, VentureID: &venture, IsActive: true}, SeedPassword)
	s.addAccount(models.User{ID: EmployeeID, EmpID: EmployeeEmpID, FullName: "Eli Employee", Role: models.RoleEmployee, VentureID: &venture, IsActive: true}, SeedPassword)

	s.routes()
	return s
}

func (s *Server) addAccount(u models.User, password string) {
	s.accounts[u.ID] = &account{user: u, password: password}
	s.userOrder = append(s.userOrder, u.ID)
}

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

// ServeHTTP makes the server an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ============================================================================
// TEST HOOKS
// ============================================================================

// IssueToken signs a token for userID that expires after ttl
func (s *Server) IssueToken(userID types.UserID, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(int(userID)),
		"exp": s.now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("fakeapi: signing token: %v", err))
	}
	return token
}

// SeedTask stores t as-is, assigning an ID when t.ID is zero
func (s *Server) SeedTask(t models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = types.TaskID(s.id())
	}
	if t.Status == "" {
		t.Status = models.StatusAssigned
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.CreatedByID == 0 {
		t.CreatedByID = ManagerID
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = models.NewTimestamp(s.now())
	}
	if t.AssignedToID != nil {
		if acc, ok := s.accounts[*t.AssignedToID]; ok {
			t.Assignee = &models.UserRef{ID: acc.user.ID, FullName: acc.user.FullName}
		}
	}
	stored := t
	s.tasks = append(s.tasks, &stored)
	return stored
}

// SeedAnnouncement stores a, assigning an ID when a.ID is zero
func (s *Server) SeedAnnouncement(a models.Announcement) models.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == 0 {
		a.ID = types.AnnouncementID(s.id())
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = models.NewTimestamp(s.now())
	}
	a.IsActive = true
	stored := a
	s.announcements = append(s.announcements, &stored)
	return stored
}

// SeedLeave stores l
func (s *Server) SeedLeave(l models.Leave) models.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == 0 {
		l.ID = types.LeaveID(s.id())
	}
	if l.Status == "" {
		l.Status = models.LeavePending
	}
	stored := l
	s.leaves = append(s.leaves, &stored)
	return stored
}

// SeedHoliday stores h
func (s *Server) SeedHoliday(h models.Holiday) models.Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == 0 {
		h.ID = types.HolidayID(s.id())
	}
	stored := h
	s.holidays = append(s.holidays, &stored)
	return stored
}

// SeedUser adds an account
func (s *Server) SeedUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = types.UserID(s.id())
	}
	s.addAccount(u, password)
	return u
}

// Task returns the stored task with id
func (s *Server) Task(id types.TaskID) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.findTask(id); t != nil {
		return *t, true
	}
	return models.Task{}, false
}

// DeleteTask removes a task behind the client's back, as another user would
func (s *Server) DeleteTask(id types.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Calls reports how many requests matched "METHOD /path" (path as routed,
// for example "POST /announcements/{id}/acknowledge")
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// FailNext makes the next request on route fail with status and detail
func (s *Server) FailNext(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, detail: detail})
}

// ============================================================================
// PLUMBING
// ============================================================================

// instrument counts calls per route template and serves injected failures
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				key = r.Method + " " + strings.TrimPrefix(tpl, "/api/v1")
			}
		}

		s.mu.Lock()
		s.calls[key]++
		var injected *failure
		if queue := s.failures[key]; len(queue) > 0 {
			injected = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if injected != nil {
			writeDetail(w, injected.status, injected.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// decode reads a JSON body, answering 422 the way the backend does
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": err.Error()}},
		})
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil
}
