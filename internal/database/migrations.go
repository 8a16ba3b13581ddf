package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order; every statement is idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS auth_tokens (
		api_url    TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		emp_id     TEXT NOT NULL DEFAULT '',
		expires_at DATETIME,
		saved_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
