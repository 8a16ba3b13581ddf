package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ============================================================================
// TOKEN REPOSITORY
// ============================================================================

func TestTokenRepo_LoadEmpty(t *testing.T) {
	repo := NewTokenRepo(setupTestDB(t))

	_, err := repo.Load(context.Background(), "http://localhost:8000/api/v1")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenRepo_SaveLoadClear(t *testing.T) {
	repo := NewTokenRepo(setupTestDB(t))
	ctx := context.Background()
	api := "http://localhost:8000/api/v1"
	exp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, StoredToken{
		APIURL:    api,
		Token:     "abc",
		EmpID:     "EMP001",
		ExpiresAt: sql.NullTime{Time: exp, Valid: true},
	}))

	got, err := repo.Load(ctx, api)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, "EMP001", got.EmpID)
	require.True(t, got.ExpiresAt.Valid)
	assert.True(t, exp.Equal(got.ExpiresAt.Time))
	assert.False(t, got.SavedAt.IsZero())

	require.NoError(t, repo.Clear(ctx, api))
	_, err = repo.Load(ctx, api)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenRepo_SaveOverwrites(t *testing.T) {
	repo := NewTokenRepo(setupTestDB(t))
	ctx := context.Background()
	api := "http://cms.example/api/v1"

	require.NoError(t, repo.Save(ctx, StoredToken{APIURL: api, Token: "first"}))
	require.NoError(t, repo.Save(ctx, StoredToken{APIURL: api, Token: "second"}))

	got, err := repo.Load(ctx, api)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Token)
	assert.False(t, got.ExpiresAt.Valid)
}

func TestTokenRepo_KeyedByAPI(t *testing.T) {
	repo := NewTokenRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, StoredToken{APIURL: "http://a/api/v1", Token: "a"}))

	_, err := repo.Load(ctx, "http://b/api/v1")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestInitDB_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agency.db")

	db, err := InitDB(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}
