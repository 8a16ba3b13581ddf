package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/agency/internal/app"
	"github.com/thenoetrevino/agency/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services
}

// NewCLI opens the token database and restores the stored session.
// A missing or rejected token leaves the CLI anonymous.
func NewCLI(ctx context.Context, cfg *config.Config, opts ...app.Option) (*CLI, error) {
	application, err := app.Open(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	if err := application.Restore(ctx); err != nil {
		_ = application.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return &CLI{App: application}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
