package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/testutil"
	"github.com/thenoetrevino/agency/internal/types"
)

type viewer struct{ user *models.User }

func (v viewer) User() *models.User { return v.user }

func setupService(t *testing.T, userID types.UserID, role models.Role) (Service, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	svc := NewService(
		backend.ClientFor(userID),
		viewer{&models.User{ID: userID, Role: role, IsActive: true}},
		cache.NewStore(nil),
		time.Hour,
	)
	return svc, backend
}

func TestAcknowledgeSuppressedWhenAlreadyAcked(t *testing.T) {
	svc, backend := setupService(t, 3, models.RoleEmployee)
	ann := models.Announcement{ID: 1, Title: "Offsite", Acks: []models.Ack{{UserID: 3}}}

	assert.True(t, ann.AcknowledgedBy(3))

	_, err := svc.Acknowledge(context.Background(), ann)
	assert.ErrorIs(t, err, ErrAlreadyAcknowledged)
	assert.Equal(t, 0, backend.Fake.Calls("POST /announcements/{id}/acknowledge"))
}

func TestAcknowledgeRefetches(t *testing.T) {
	svc, backend := setupService(t, fakeapi.EmployeeID, models.RoleEmployee)
	seeded := backend.Fake.SeedAnnouncement(models.Announcement{Title: "Payroll", Content: "Friday"})
	ctx := context.Background()

	ann, found, err := svc.Find(ctx, seeded.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, ann.AcknowledgedBy(fakeapi.EmployeeID))

	ack, err := svc.Acknowledge(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, ack.AnnouncementID)

	ann, _, err = svc.Find(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, ann.AcknowledgedBy(fakeapi.EmployeeID))
	assert.Equal(t, 1, ann.AckCount())

	_, err = svc.Acknowledge(ctx, ann)
	assert.ErrorIs(t, err, ErrAlreadyAcknowledged)
}

func TestAcknowledgeStaleViewSurfacesServerDetail(t *testing.T) {
	svc, backend := setupService(t, fakeapi.EmployeeID, models.RoleEmployee)
	seeded := backend.Fake.SeedAnnouncement(models.Announcement{Title: "Payroll", Content: "Friday"})

	// acknowledged from another device since the last poll
	_, err := backend.ClientFor(fakeapi.EmployeeID).Acknowledge(context.Background(), seeded.ID)
	require.NoError(t, err)

	_, err = svc.Acknowledge(context.Background(), seeded)
	require.Error(t, err)
	assert.Equal(t, "Already acknowledged", api.Detail(err))
}

func TestCreate(t *testing.T) {
	svc, _ := setupService(t, fakeapi.ManagerID, models.RoleManager)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Holiday party", "**Bring** snacks")
	require.NoError(t, err)
	assert.Equal(t, "Holiday party", created.Title)
	assert.Len(t, svc.Collection().Get(), 1)

	_, err = svc.Create(ctx, " ", "x")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = svc.Create(ctx, "x", "")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreateRequiresManager(t *testing.T) {
	svc, _ := setupService(t, fakeapi.EmployeeID, models.RoleEmployee)
	_, err := svc.Create(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrNotPermitted)
}
