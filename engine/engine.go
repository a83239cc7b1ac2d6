package engine

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./segments.sqlite". For
// in-memory databases, pass ":memory:". Register functions before the first
// connection is made.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "engine: open %q", dsn)
	}
	return db, nil
}
