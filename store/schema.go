package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const segmentsSchema = `
CREATE TABLE IF NOT EXISTS segments (
    id INTEGER PRIMARY KEY,
    seg BLOB NOT NULL
);
`

// EnsureSchema creates the segments table if it does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, segmentsSchema); err != nil {
		return errors.Wrap(err, "store: create schema")
	}
	return nil
}
