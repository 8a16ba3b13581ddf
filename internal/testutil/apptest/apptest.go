// Package apptest builds a whole App against a fake CMS. It is separate
// from testutil because services cannot import the app package in tests.
package apptest

import (
	"context"
	"testing"

	"github.com/thenoetrevino/agency/internal/app"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/testutil"
)

// Config returns the default config pointed at b. Nothing polls in the
// background so tests control every fetch.
func Config(b *testutil.Backend) *config.Config {
	cfg := config.Default()
	cfg.API.BaseURL = b.URL
	cfg.Polling = config.PollingConfig{}
	return cfg
}

// NewApp builds an app against b with an in-memory session, logged in as
// empID unless empID is empty. The app is closed by t.Cleanup.
func NewApp(t *testing.T, b *testutil.Backend, empID string) *app.App {
	t.Helper()

	a := app.New(Config(b), nil)
	t.Cleanup(func() { _ = a.Close() })

	if empID != "" {
		if _, err := a.Session.Login(context.Background(), empID, fakeapi.SeedPassword); err != nil {
			t.Fatalf("login as %s: %v", empID, err)
		}
	}
	return a
}
