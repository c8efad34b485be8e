package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                   BIGSERIAL PRIMARY KEY,
		name                 VARCHAR(255) NOT NULL UNIQUE,
		description          TEXT,
		refined_prompt       TEXT,
		frameworks_languages TEXT,
		checklist_steps      TEXT,
		cursor_rules_content TEXT,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS projects_created_at_idx ON projects (created_at DESC)`,
}

// EnsureSchema creates the projects table if it does not exist. It is safe
// to run repeatedly.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
