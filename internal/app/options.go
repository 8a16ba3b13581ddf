package app

import (
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/agency/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	httpClient  *http.Client
	dbPath      string
}

// WithEventPublisher sets the event publisher for the application.
// Without one the App creates and owns an in-process bus.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client used to reach the API
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}

// WithDBPath stores the token database at path instead of ~/.agency/agency.db
func WithDBPath(path string) Option {
	return func(cfg *appConfig) {
		cfg.dbPath = path
	}
}
