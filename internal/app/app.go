package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/database"
	"github.com/thenoetrevino/agency/internal/events"
	"github.com/thenoetrevino/agency/internal/services/analytics"
	"github.com/thenoetrevino/agency/internal/services/announcement"
	"github.com/thenoetrevino/agency/internal/services/leave"
	"github.com/thenoetrevino/agency/internal/services/task"
	"github.com/thenoetrevino/agency/internal/services/user"
	"github.com/thenoetrevino/agency/internal/services/venture"
	"github.com/thenoetrevino/agency/internal/session"
)

// App holds all application services and provides dependency injection.
// Both the CLI and the TUI are built on top of one App.
type App struct {
	Config  *config.Config
	Session *session.Session
	Client  *api.Client
	Store   *cache.Store

	// Event system for live updates
	eventClient events.EventPublisher
	ownsEvents  bool

	db     *sqlx.DB
	logger *slog.Logger

	// Service layer (business logic)
	TaskService         task.Service
	AnnouncementService announcement.Service
	UserService         user.Service
	VentureService      venture.Service
	LeaveService        leave.Service
	AnalyticsService    analytics.Service
}

// New wires the session, REST client, cache store and services together.
// tokens persists the bearer token; nil keeps the session in memory only.
func New(cfg *config.Config, tokens session.TokenStore, opts ...Option) *App {
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if tokens == nil {
		tokens = memoryTokens{}
	}

	a := &App{
		Config:      cfg,
		eventClient: ac.eventClient,
		logger:      ac.logger,
	}
	if a.eventClient == nil {
		a.eventClient = events.NewBus(0)
		a.ownsEvents = true
	}

	a.Session = session.New(cfg.API.BaseURL, tokens, session.WithPublisher(a.eventClient))

	clientOpts := []api.Option{api.WithTokenSource(a.Session)}
	if ac.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(ac.httpClient))
	}
	if cfg.API.Timeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(cfg.API.Timeout))
	}
	a.Client = api.NewClient(cfg.API.BaseURL, clientOpts...)
	a.Session.Bind(a.Client)

	a.Store = cache.NewStore(a.eventClient)
	poll := cfg.Polling
	a.TaskService = task.NewService(a.Client, a.Session, a.Store, poll.Tasks)
	a.AnnouncementService = announcement.NewService(a.Client, a.Session, a.Store, poll.Announcements)
	a.UserService = user.NewService(a.Client, a.Session, a.Store, poll.Users)
	a.VentureService = venture.NewService(a.Client, a.Session, a.Store, poll.Ventures)
	a.LeaveService = leave.NewService(a.Client, a.Session, a.Store)
	a.AnalyticsService = analytics.NewService(a.Client, a.Store, poll.Dashboard)

	return a
}

// Open is New backed by the on-disk token database
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}

	path := ac.dbPath
	if path == "" {
		p, err := database.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate token database: %w", err)
		}
		path = p
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, err
	}

	a := New(cfg, database.NewTokenRepo(db), opts...)
	a.db = db
	return a, nil
}

// Restore reloads the stored session. An unusable token leaves the app
// anonymous rather than failing.
func (a *App) Restore(ctx context.Context) error {
	return a.Session.Restore(ctx)
}

// Start launches the background pollers; they stop when ctx is done
func (a *App) Start(ctx context.Context) {
	a.logger.Debug("starting cache pollers", "resources", len(a.Store.Keys()))
	a.Store.Start(ctx)
}

// Events returns the publisher shared by the session and the cache
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close waits for pollers and releases the event bus and database.
// Cancel the context given to Start first.
func (a *App) Close() error {
	a.Store.Wait()

	var errs []error
	if a.ownsEvents {
		errs = append(errs, a.eventClient.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// memoryTokens is the TokenStore used when nothing durable was supplied
type memoryTokens struct{}

func (memoryTokens) Load(context.Context, string) (*database.StoredToken, error) {
	return nil, database.ErrNoToken
}

func (memoryTokens) Save(context.Context, database.StoredToken) error { return nil }

func (memoryTokens) Clear(context.Context, string) error { return nil }
