// Package session owns the authenticated user for the lifetime of a process.
// It is restored from durable storage once at startup, established by Login,
// and torn down by Logout or by the server refusing the stored token.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/database"
	"github.com/thenoetrevino/agency/internal/events"
	"github.com/thenoetrevino/agency/internal/models"
)

var (
	// ErrAnonymous is returned by operations that need a logged-in user
	ErrAnonymous = errors.New("not logged in")
	// ErrTokenExpired means the stored token's exp claim has passed
	ErrTokenExpired = errors.New("stored token has expired")
)

// TokenStore persists the bearer token between runs
type TokenStore = database.TokenRepository

// Authenticator is the part of the REST client the session needs
type Authenticator interface {
	Login(ctx context.Context, empID, password string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Session is the scoped auth context. It doubles as the api.TokenSource
// for the client it authenticates.
type Session struct {
	mu     sync.RWMutex
	token  string
	user   *models.User
	apiURL string

	store     TokenStore
	auth      Authenticator
	publisher events.EventPublisher
	now       func() time.Time
}

var _ api.TokenSource = (*Session)(nil)

// Option configures a Session
type Option func(*Session)

// WithClock overrides time.Now for expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithPublisher announces logins and logouts on the event bus
func WithPublisher(p events.EventPublisher) Option {
	return func(s *Session) {
		s.publisher = p
	}
}

// New creates an anonymous session. apiURL keys the stored token.
func New(apiURL string, store TokenStore, opts ...Option) *Session {
	s := &Session{
		apiURL: apiURL,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind sets the client used for Login and Me. The client usually takes the
// session as its TokenSource, so the two are built in two steps.
func (s *Session) Bind(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// Token implements api.TokenSource
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when anonymous
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is established
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// HasRole reports whether the current user holds one of roles exactly
func (s *Session) HasRole(roles ...models.Role) bool {
	u := s.User()
	return u != nil && u.HasRole(roles...)
}

// AtLeast reports whether the current user's role includes min
func (s *Session) AtLeast(min models.Role) bool {
	u := s.User()
	return u != nil && u.Role.Includes(min)
}

// Restore loads the stored token and confirms it with GET /users/me.
// Any failure leaves the session anonymous with the token cleared; only a
// storage failure is returned, since an absent or rejected token is the
// normal logged-out state.
func (s *Session) Restore(ctx context.Context) error {
	stored, err := s.store.Load(ctx, s.apiURL)
	if errors.Is(err, database.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if err := s.checkExpiry(stored.Token); err != nil {
		slog.Info("discarding stored token", "reason", err)
		return s.reset(ctx)
	}

	s.mu.Lock()
	s.token = stored.Token
	s.mu.Unlock()

	user, err := s.authenticator().Me(ctx)
	if err != nil {
		slog.Info("stored token rejected", "error", err)
		return s.reset(ctx)
	}

	s.establish(user)
	return nil
}

// Login exchanges credentials for a token, persists it and loads the user.
// A failed login leaves the previous state untouched.
func (s *Session) Login(ctx context.Context, empID, password string) (*models.User, error) {
	auth := s.authenticator()

	tok, err := auth.Login(ctx, empID, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	previous := s.token
	s.token = tok.AccessToken
	s.mu.Unlock()

	user, err := auth.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.token = previous
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to load user after login: %w", err)
	}

	stored := database.StoredToken{APIURL: s.apiURL, Token: tok.AccessToken, EmpID: empID}
	if exp, ok := expiry(tok.AccessToken); ok {
		stored.ExpiresAt = sql.NullTime{Time: exp, Valid: true}
	}
	if err := s.store.Save(ctx, stored); err != nil {
		// the session still works for this process
		slog.Error("failed to persist token", "error", err)
	}

	s.establish(user)
	return s.User(), nil
}

// Logout clears the token from memory and storage
func (s *Session) Logout(ctx context.Context) error {
	return s.reset(ctx)
}

// Expire handles a token the server stopped accepting mid-session
func (s *Session) Expire(ctx context.Context) {
	if err := s.reset(ctx); err != nil {
		slog.Error("failed to clear expired token", "error", err)
	}
}

func (s *Session) authenticator() Authenticator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil {
		panic("session: Bind was not called")
	}
	return s.auth
}

func (s *Session) establish(user *models.User) {
	s.mu.Lock()
	u := *user
	s.user = &u
	s.mu.Unlock()
	s.publish()
}

func (s *Session) reset(ctx context.Context) error {
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if wasAuthenticated {
		s.publish()
	}
	if err := s.store.Clear(ctx, s.apiURL); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *Session) publish() {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.SendEvent(events.Event{Type: events.EventSessionChanged}); err != nil {
		slog.Debug("failed to publish session change", "error", err)
	}
}

// checkExpiry rejects a token whose exp claim has passed. The signature is
// not checked here; the server does that on /users/me.
func (s *Session) checkExpiry(token string) error {
	exp, ok := expiry(token)
	if !ok {
		return nil
	}
	if !s.now().Before(exp) {
		return ErrTokenExpired
	}
	return nil
}

// expiry reads the exp claim without verifying the signature
func expiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
