package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNoToken is returned by Load when nothing is stored for the API
var ErrNoToken = errors.New("no stored token")

// StoredToken is one persisted bearer token. Tokens are keyed by API base
// URL so pointing the client at another backend never reuses a credential.
type StoredToken struct {
	APIURL    string       `db:"api_url"`
	Token     string       `db:"token"`
	EmpID     string       `db:"emp_id"`
	ExpiresAt sql.NullTime `db:"expires_at"`
	SavedAt   time.Time    `db:"saved_at"`
}

// TokenRepository persists the auth token between runs
type TokenRepository interface {
	Load(ctx context.Context, apiURL string) (*StoredToken, error)
	Save(ctx context.Context, tok StoredToken) error
	Clear(ctx context.Context, apiURL string) error
}

// TokenRepo is the sqlx-backed TokenRepository
type TokenRepo struct {
	db *sqlx.DB
}

var _ TokenRepository = (*TokenRepo)(nil)

func NewTokenRepo(db *sqlx.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Load(ctx context.Context, apiURL string) (*StoredToken, error) {
	var tok StoredToken
	err := r.db.GetContext(ctx, &tok,
		`SELECT api_url, token, emp_id, expires_at, saved_at FROM auth_tokens WHERE api_url = ?`, apiURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return &tok, nil
}

func (r *TokenRepo) Save(ctx context.Context, tok StoredToken) error {
	if tok.SavedAt.IsZero() {
		tok.SavedAt = time.Now().UTC()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO auth_tokens (api_url, token, emp_id, expires_at, saved_at)
		VALUES (:api_url, :token, :emp_id, :expires_at, :saved_at)
		ON CONFLICT(api_url) DO UPDATE SET
			token = excluded.token,
			emp_id = excluded.emp_id,
			expires_at = excluded.expires_at,
			saved_at = excluded.saved_at`, tok)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *TokenRepo) Clear(ctx context.Context, apiURL string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE api_url = ?`, apiURL); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
