package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/database"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/types"
)

// Backend is a fake CMS served over real HTTP for the duration of a test
type Backend struct {
	Fake *fakeapi.Server
	URL  string // API root, ending in /api/v1
}

// NewBackend starts a fake CMS; it is shut down by t.Cleanup
func NewBackend(t *testing.T, opts ...fakeapi.Option) *Backend {
	t.Helper()

	fake := fakeapi.New(opts...)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return &Backend{Fake: fake, URL: srv.URL + "/api/v1"}
}

// ClientFor returns a client already holding a token for userID
func (b *Backend) ClientFor(userID types.UserID) *api.Client {
	token := b.Fake.IssueToken(userID, time.Hour)
	return api.NewClient(b.URL, api.WithTokenSource(api.StaticToken(token)))
}

// SetupTestDB creates an in-memory database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
