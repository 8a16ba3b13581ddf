package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

func request(t *testing.T, s *Server, userID types.UserID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+s.IssueToken(userID, time.Hour))
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func userPtr(id types.UserID) *types.UserID { return &id }

// ============================================================================
// AUTH
// ============================================================================

func TestMissingTokenIs401(t *testing.T) {
	s := New()
	rec := request(t, s, 0, http.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+s.IssueToken(EmployeeID, -time.Minute))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not validate credentials")
}

func TestInactiveUser(t *testing.T) {
	s := New()
	u := s.SeedUser(models.User{EmpID: "OLD001", FullName: "Gone", Role: models.RoleEmployee}, "pw")

	rec := request(t, s, u.ID, http.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inactive user")
}

// ============================================================================
// VISIBILITY
// ============================================================================

func TestTaskVisibilityByRole(t *testing.T) {
	s := New()
	s.SeedTask(models.Task{Title: "mine", AssignedToID: userPtr(EmployeeID), CreatedByID: ManagerID})
	s.SeedTask(models.Task{Title: "admin made", AssignedToID: userPtr(ManagerID), CreatedByID: AdminID})

	tests := []struct {
		name string
		user types.UserID
		want int
	}{
		{"employee sees assignments", EmployeeID, 1},
		{"manager sees own creations", ManagerID, 1},
		{"admin sees all", AdminID, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, s, tt.user, http.MethodGet, "/tasks/", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, strings.Count(rec.Body.String(), `"title"`))
		})
	}
}

func TestLeavesVisibleToOwner(t *testing.T) {
	s := New()
	s.SeedLeave(models.Leave{UserID: EmployeeID, LeaveType: models.LeaveSick})
	s.SeedLeave(models.Leave{UserID: ManagerID, LeaveType: models.LeaveAnnual})

	rec := request(t, s, EmployeeID, http.MethodGet, "/leaves/", "")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `"leave_type"`))

	rec = request(t, s, ManagerID, http.MethodGet, "/leaves/", "")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `"leave_type"`))
}

// ============================================================================
// USER RULES
// ============================================================================

func TestManagerUserRules(t *testing.T) {
	s := New()
	other := s.SeedUser(models.User{EmpID: "EXT001", FullName: "Elsewhere", Role: models.RoleEmployee, VentureID: func() *types.VentureID { v := types.VentureID(7); return &v }(), IsActive: true}, "pw")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		detail string
	}{
		{"edit admin", http.MethodPut, "/users/1", `{"full_name":"x"}`, "Managers cannot edit Admins"},
		{"edit other venture", http.MethodPut, "/users/" + other.ID.String(), `{"full_name":"x"}`, "Managers cannot edit users in other ventures"},
		{"promote", http.MethodPut, "/users/3", `{"role":"ADMIN"}`, "Managers cannot promote to Admin"},
		{"move venture", http.MethodPut, "/users/3", `{"venture_id":7}`, "Managers cannot move users to other ventures"},
		{"create elsewhere", http.MethodPost, "/users/", `{"emp_id":"N1","password":"p","full_name":"n","role":"EMPLOYEE","venture_id":7,"is_active":true}`, "Managers can only create users in their own venture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, s, ManagerID, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.detail)
		})
	}
}

func TestDuplicateEmpID(t *testing.T) {
	s := New()
	rec := request(t, s, AdminID, http.MethodPost, "/users/",
		`{"emp_id":"EMP001","password":"p","full_name":"dup","role":"EMPLOYEE","is_active":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestManagerListsOwnVentureOnly(t *testing.T) {
	s := New()
	v := types.VentureID(7)
	s.SeedUser(models.User{EmpID: "EXT001", FullName: "Elsewhere", Role: models.RoleEmployee, VentureID: &v, IsActive: true}, "pw")

	rec := request(t, s, ManagerID, http.MethodGet, "/users/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "EXT001")
	assert.NotContains(t, rec.Body.String(), AdminEmpID)
	assert.Contains(t, rec.Body.String(), EmployeeEmpID)
}

// ============================================================================
// HOOKS
// ============================================================================

func TestCallsAndFailNext(t *testing.T) {
	s := New()
	s.FailNext("GET /tasks/", http.StatusInternalServerError, "boom")

	rec := request(t, s, AdminID, http.MethodGet, "/tasks/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = request(t, s, AdminID, http.MethodGet, "/tasks/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 2, s.Calls("GET /tasks/"))
}

func TestTimerStopLogsDuration(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))
	task := s.SeedTask(models.Task{Title: "t", AssignedToID: userPtr(EmployeeID)})
	path := "/tasks/" + task.ID.String()

	require.Equal(t, http.StatusOK, request(t, s, EmployeeID, http.MethodPost, path+"/timer/start", "").Code)
	now = now.Add(90 * time.Minute)
	require.Equal(t, http.StatusOK, request(t, s, EmployeeID, http.MethodPost, path+"/timer/stop", "").Code)

	stored, ok := s.Task(task.ID)
	require.True(t, ok)
	require.Len(t, stored.TimeLogs, 1)
	assert.Equal(t, 90, stored.TimeLogs[0].DurationMinutes)
	assert.Equal(t, 90, stored.LoggedMinutes())
}
