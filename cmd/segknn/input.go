package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/viant/segknn/engine"
	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/store"
)

type segmentRecord struct {
	Start [3]float64 `json:"start"`
	End   [3]float64 `json:"end"`
}

func (r segmentRecord) segment() geom.Segment {
	return geom.NewSegment(r.Start[0], r.Start[1], r.Start[2], r.End[0], r.End[1], r.End[2])
}

// readSegmentsFile reads a JSON array of {"start":[x,y,z],"end":[x,y,z]}.
func readSegmentsFile(path string) (geom.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var records []segmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	out := make(geom.Collection, len(records))
	for i, r := range records {
		out[i] = r.segment()
	}
	return out, nil
}

// parseSegment parses "x1,y1,z1,x2,y2,z2".
func parseSegment(text string) (geom.Segment, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 6 {
		return geom.Segment{}, errors.Errorf("segment %q: want 6 comma-separated numbers, got %d", text, len(parts))
	}
	var v [6]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Segment{}, errors.Wrapf(err, "segment %q", text)
		}
		v[i] = f
	}
	return geom.NewSegment(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}

func openStore(ctx context.Context, path string) (s *store.SQLiteStore, closeFn func() error, err error) {
	if err := engine.RegisterSegmentFunctions(); err != nil {
		return nil, nil, err
	}
	db, err := engine.Open(path)
	if err != nil {
		return nil, nil, err
	}
	s, err = store.NewSQLiteStore(ctx, db)
	if err != nil {
		return nil, nil, multierr.Combine(err, db.Close())
	}
	return s, db.Close, nil
}

// loadSegments reads the collection from --db or --input.
func loadSegments(ctx context.Context, input, db string) (segments geom.Collection, err error) {
	switch {
	case db != "" && input != "":
		return nil, errors.Errorf("--%s and --%s are mutually exclusive", flagInput, flagDB)
	case db != "":
		var (
			s       *store.SQLiteStore
			closeFn func() error
		)
		if s, closeFn, err = openStore(ctx, db); err != nil {
			return nil, err
		}
		defer func() { err = multierr.Append(err, closeFn()) }()
		return s.Load(ctx)
	case input != "":
		return readSegmentsFile(input)
	}
	return nil, errors.Errorf("one of --%s or --%s is required", flagInput, flagDB)
}
