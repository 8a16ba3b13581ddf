// Package launcher runs the interactive client
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/app"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/tui/core"
)

// shutdownGrace is how long in-flight requests get after a signal
const shutdownGrace = 2 * time.Second

// Launch starts the TUI and blocks until the user quits or ctx is
// cancelled. Logging is set up by the caller.
func Launch(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// app cleanup: pollers stop with ctx, then the bus and token database close
	defer func() {
		cancel()
		stats := application.Store.Metrics().Snapshot()
		slog.Info("cache activity",
			"fetches", stats.Fetches,
			"fetch_failures", stats.FetchFailures,
			"discarded", stats.Discarded,
			"changes", stats.Changes,
			"mutations", stats.Mutations,
			"uptime", stats.Uptime)
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	// A stale or unreadable token means starting at the login screen
	if err := application.Restore(ctx); err != nil {
		slog.Warn("could not restore session", "error", err)
	}
	application.Start(ctx)

	tuiApp := core.New(ctx, application, cfg)
	p := tea.NewProgram(tuiApp, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
		}
	}

	return nil
}
