package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// setupClient starts a fake backend and returns a client logged in as userID
func setupClient(t *testing.T, userID types.UserID) (*api.Client, *fakeapi.Server) {
	t.Helper()

	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	token := fake.IssueToken(userID, time.Hour)
	return api.NewClient(srv.URL+"/api/v1", api.WithTokenSource(api.StaticToken(token))), fake
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// AUTH
// ============================================================================

func TestLogin(t *testing.T) {
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := api.NewClient(srv.URL + "/api/v1/")
	ctx := context.Background()

	tok, err := client.Login(ctx, fakeapi.EmployeeEmpID, fakeapi.SeedPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)

	_, err = client.Login(ctx, fakeapi.EmployeeEmpID, "wrong")
	require.Error(t, err)
	assert.True(t, api.IsRejected(err))
	assert.Equal(t, "Incorrect employee ID or password", api.Detail(err))
}

func TestMe(t *testing.T) {
	client, _ := setupClient(t, fakeapi.ManagerID)

	me, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fakeapi.ManagerID, me.ID)
	assert.Equal(t, models.RoleManager, me.Role)
}

func TestAnonymousRequestNeverLeavesClient(t *testing.T) {
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := api.NewClient(srv.URL + "/api/v1")
	_, err := client.ListTasks(context.Background())

	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, 0, fake.Calls("GET /tasks/"))
}

func TestBadTokenIsUnauthorized(t *testing.T) {
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := api.NewClient(srv.URL+"/api/v1", api.WithTokenSource(api.StaticToken("garbage")))
	_, err := client.Me(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))
	assert.True(t, api.IsInvalidToken(err))
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, api.IsForbidden(err))
	assert.Equal(t, api.InvalidCredentials, api.Detail(err))
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	token := fake.IssueToken(fakeapi.EmployeeID, -time.Minute)
	client := api.NewClient(srv.URL+"/api/v1", api.WithTokenSource(api.StaticToken(token)))
	_, err := client.ListTasks(context.Background())

	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, api.IsForbidden(err))
}

// ============================================================================
// TASKS
// ============================================================================

func TestCreateTaskFansOutPerAssignee(t *testing.T) {
	client, _ := setupClient(t, fakeapi.ManagerID)

	created, err := client.CreateTask(context.Background(), api.TaskCreate{
		Title:         "Storyboard",
		Priority:      models.PriorityHigh,
		DueDate:       ptr("2026-11-01T00:00:00"),
		AssignedToIDs: []types.UserID{fakeapi.EmployeeID, fakeapi.ManagerID},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, task := range created {
		assert.Equal(t, models.StatusAssigned, task.Status)
		assert.Equal(t, "2026-11-01", task.DueDate.Date())
		require.NotNil(t, task.AssignedToID)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	client, fake := setupClient(t, fakeapi.EmployeeID)
	seeded := fake.SeedTask(models.Task{Title: "Cut trailer", AssignedToID: ptr(fakeapi.EmployeeID), Progress: 40})

	status := models.StatusReview
	updated, err := client.UpdateTask(context.Background(), seeded.ID, api.TaskUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusReview, updated.Status)
	assert.Equal(t, 40, updated.Progress, "omitted fields are untouched")
	assert.Equal(t, "Cut trailer", updated.Title)
}

func TestUpdateTaskSendsZeroProgress(t *testing.T) {
	client, fake := setupClient(t, fakeapi.EmployeeID)
	seeded := fake.SeedTask(models.Task{Title: "Reset", AssignedToID: ptr(fakeapi.EmployeeID), Progress: 100, Status: models.StatusCompleted})

	updated, err := client.UpdateTask(context.Background(), seeded.ID, api.TaskUpdate{
		Status:   ptr(models.StatusAssigned),
		Progress: ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
}

func TestUpdateTaskNotAssignee(t *testing.T) {
	client, fake := setupClient(t, fakeapi.EmployeeID)
	seeded := fake.SeedTask(models.Task{Title: "Someone else's", AssignedToID: ptr(fakeapi.ManagerID)})

	_, err := client.UpdateTask(context.Background(), seeded.ID, api.TaskUpdate{Title: ptr("mine now")})
	require.Error(t, err)
	assert.True(t, api.IsForbidden(err))
	assert.Equal(t, "Not enough permissions", api.Detail(err))
}

func TestTimerLifecycle(t *testing.T) {
	client, fake := setupClient(t, fakeapi.EmployeeID)
	seeded := fake.SeedTask(models.Task{Title: "Edit", AssignedToID: ptr(fakeapi.EmployeeID)})
	ctx := context.Background()

	started, err := client.StartTimer(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, started.TimerRunning())

	_, err = client.StartTimer(ctx, seeded.ID)
	require.Error(t, err)
	assert.Equal(t, "Timer already running", api.Detail(err))

	stopped, err := client.StopTimer(ctx, seeded.ID)
	require.NoError(t, err)
	assert.False(t, stopped.TimerRunning())
	assert.Len(t, stopped.TimeLogs, 1)

	_, err = client.StopTimer(ctx, seeded.ID)
	require.Error(t, err)
	assert.Equal(t, "No active timer", api.Detail(err))
}

func TestValidationErrorDetail(t *testing.T) {
	client, fake := setupClient(t, fakeapi.ManagerID)
	fake.FailNext("GET /tasks/", http.StatusUnprocessableEntity, "")

	_, err := client.ListTasks(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.True(t, api.IsRejected(err))
}

func TestListDetailForFieldErrors(t *testing.T) {
	client, _ := setupClient(t, fakeapi.AdminID)

	// An unknown role fails body validation
	_, err := client.CreateUser(context.Background(), api.UserCreate{EmpID: "X", Role: "nonsense"})
	require.Error(t, err)
	assert.Contains(t, api.Detail(err), "body:")
}

// ============================================================================
// ANNOUNCEMENTS, USERS, VENTURES
// ============================================================================

func TestAcknowledgeTwice(t *testing.T) {
	client, fake := setupClient(t, fakeapi.EmployeeID)
	ann := fake.SeedAnnouncement(models.Announcement{Title: "Offsite", Content: "Friday"})
	ctx := context.Background()

	ack, err := client.Acknowledge(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, fakeapi.EmployeeID, ack.UserID)

	_, err = client.Acknowledge(ctx, ann.ID)
	require.Error(t, err)
	assert.Equal(t, "Already acknowledged", api.Detail(err))

	list, err := client.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].AcknowledgedBy(fakeapi.EmployeeID))
}

func TestEmployeeCannotListUsers(t *testing.T) {
	client, _ := setupClient(t, fakeapi.EmployeeID)

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, "The user doesn't have enough privileges", api.Detail(err))
}

func TestManagerCannotCreateAdmin(t *testing.T) {
	client, _ := setupClient(t, fakeapi.ManagerID)
	venture := fakeapi.SeedVentureID

	_, err := client.CreateUser(context.Background(), api.UserCreate{
		EmpID: "ADM999", Password: "pw", FullName: "Nope", Role: models.RoleAdmin, VentureID: &venture, IsActive: true,
	})
	require.Error(t, err)
	assert.Equal(t, "Managers cannot create Admins", api.Detail(err))
}

func TestVentureCRUD(t *testing.T) {
	client, _ := setupClient(t, fakeapi.AdminID)
	ctx := context.Background()

	v, err := client.CreateVenture(ctx, api.VentureInput{Name: "Films"})
	require.NoError(t, err)

	renamed, err := client.UpdateVenture(ctx, v.ID, api.VentureInput{Name: "Film Unit"})
	require.NoError(t, err)
	assert.Equal(t, "Film Unit", renamed.Name)

	_, err = client.UpdateVenture(ctx, 9999, api.VentureInput{Name: "ghost"})
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

// ============================================================================
// LEAVES & ANALYTICS
// ============================================================================

func TestLeaveApplyAndReview(t *testing.T) {
	emp, fake := setupClient(t, fakeapi.EmployeeID)
	ctx := context.Background()

	leave, err := emp.ApplyLeave(ctx, api.LeaveCreate{
		LeaveType: models.LeaveCasual,
		StartDate: "2026-12-01",
		EndDate:   "2026-12-03",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, leave.Status)
	assert.Equal(t, 3, leave.Days())

	mgr := api.NewClient(emp.BaseURL(), api.WithTokenSource(api.StaticToken(fake.IssueToken(fakeapi.ManagerID, time.Hour))))
	reviewed, err := mgr.ReviewLeave(ctx, leave.ID, models.LeaveApproved)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, reviewed.Status)

	_, err = emp.ReviewLeave(ctx, leave.ID, models.LeaveRejected)
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	client, fake := setupClient(t, fakeapi.AdminID)
	fake.SeedTask(models.Task{Title: "a", Status: models.StatusCompleted, Progress: 100})
	fake.SeedTask(models.Task{Title: "b"})

	d, err := client.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalTasks)
	assert.Equal(t, 1, d.TasksCompleted)
	assert.InDelta(t, 50.0, d.CompletionRate, 0.001)
	assert.Equal(t, 1, d.TasksByStatus[models.StatusCompleted])
}
