package store

import (
	"context"
	"database/sql"
	"math"

	"github.com/pkg/errors"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/neighbor"
)

// ErrNonContiguous is returned by Load when stored ids do not form 0..n-1.
var ErrNonContiguous = errors.New("store: segment ids are not contiguous")

// SQLiteStore keeps segments in the segments table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over db and ensures the schema exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append stores segments after the existing ones and returns the id of the
// first appended segment.
func (s *SQLiteStore) Append(ctx context.Context, segments geom.Collection) (int, error) {
	if err := segments.Validate(); err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "store: begin")
	}
	defer func() { _ = tx.Rollback() }()

	var first int
	if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id) + 1, 0) FROM segments`).Scan(&first); err != nil {
		return 0, errors.Wrap(err, "store: next id")
	}
	if len(segments) == 0 {
		return first, nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO segments(id, seg) VALUES(?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "store: prepare insert")
	}
	defer stmt.Close()

	for i, seg := range segments {
		if _, err = stmt.ExecContext(ctx, first+i, geom.EncodeSegment(seg)); err != nil {
			return 0, errors.Wrapf(err, "store: insert segment %d", first+i)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "store: commit")
	}
	return first, nil
}

// Count returns the number of stored segments.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM segments`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "store: count")
	}
	return n, nil
}

// Load returns every stored segment ordered by id.
func (s *SQLiteStore) Load(ctx context.Context) (geom.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, seg FROM segments ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "store: load")
	}
	defer rows.Close()

	var out geom.Collection
	for rows.Next() {
		var (
			id   int
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, errors.Wrap(err, "store: scan")
		}
		if id != len(out) {
			return nil, errors.Wrapf(ErrNonContiguous, "found id %d at position %d", id, len(out))
		}
		seg, err := geom.DecodeSegment(blob)
		if err != nil {
			return nil, errors.Wrapf(err, "store: segment %d", id)
		}
		out = append(out, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "store: load")
	}
	return out, nil
}

// ScanWithinRadius returns, ascending, the ids of every stored segment within
// radius of query by evaluating seg_distance over the whole table. A negative
// or NaN radius is rejected with neighbor.ErrInvalidRadius. The
// functions must have been registered with engine.RegisterSegmentFunctions
// before the connection was opened.
func (s *SQLiteStore) ScanWithinRadius(ctx context.Context, query geom.Segment, radius float64, metric distance.Metric) ([]int, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, errors.Wrapf(neighbor.ErrInvalidRadius, "radius=%v", radius)
	}
	if !metric.Valid() {
		return nil, errors.Wrapf(distance.ErrUnknownMetric, "%v", metric)
	}
	if err := query.Validate(); err != nil {
		return nil, errors.Wrap(err, "query")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM segments WHERE seg_distance(?, seg, ?) <= ? ORDER BY id`,
		geom.EncodeSegment(query), metric.String(), radius)
	if err != nil {
		return nil, errors.Wrap(err, "store: scan within radius")
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "store: scan")
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "store: scan within radius")
	}
	return out, nil
}
