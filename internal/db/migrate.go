package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the document table backing the Postgres record
// store. Kept idempotent so the server can run it on every start.
func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
    path TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS documents_path_prefix ON documents (path text_pattern_ops);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
