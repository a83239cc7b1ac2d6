package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/neighbor"
	"github.com/viant/segknn/segindex"
)

// search holds everything a knn or range command needs.
type search struct {
	index    *segindex.Index
	searcher *neighbor.Searcher
	metric   distance.Metric
	query    geom.Segment
	queries  geom.Collection
}

func newSearch(c *cli.Context) (*search, error) {
	logger := loggerFrom(c)
	metric, err := distance.ParseMetric(c.String(flagMetric))
	if err != nil {
		return nil, err
	}
	kind, err := index.ParseKind(c.String(flagBackend))
	if err != nil {
		return nil, err
	}
	s := &search{
		metric: metric,
		searcher: neighbor.New(
			neighbor.WithSamples(c.Int(flagSamples)),
			neighbor.WithWorkers(c.Int(flagWorkers)),
			neighbor.WithLogger(logger),
		),
	}
	switch {
	case c.String(flagQueries) != "":
		if s.queries, err = readSegmentsFile(c.String(flagQueries)); err != nil {
			return nil, err
		}
	case c.String(flagQuery) != "":
		if s.query, err = parseSegment(c.String(flagQuery)); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("one of --%s or --%s is required", flagQuery, flagQueries)
	}

	segments, err := loadSegments(c.Context, c.String(flagInput), c.String(flagDB))
	if err != nil {
		return nil, err
	}
	if s.index, err = segindex.Build(segments, segindex.WithKind(kind), segindex.WithLogger(logger)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *search) close() error { return s.index.Close() }

func printNeighbors(c *cli.Context, neighbors []neighbor.Neighbor) {
	for _, n := range neighbors {
		fmt.Fprintf(c.App.Writer, "%d\t%g\n", n.Index, n.Distance)
	}
}

func printBatch(c *cli.Context, results [][]int) {
	for q, indices := range results {
		for _, i := range indices {
			fmt.Fprintf(c.App.Writer, "%d\t%d\n", q, i)
		}
	}
}

// KNNAction prints the k nearest segments as index<TAB>distance, or
// query<TAB>index for --queries.
func KNNAction(c *cli.Context) (err error) {
	s, err := newSearch(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.close()) }()

	k := c.Int(flagK)
	if s.queries != nil {
		results, err := s.searcher.KNearestNeighborsBatch(c.Context, s.index, s.queries, k, s.metric)
		if err != nil {
			return err
		}
		printBatch(c, results)
		return nil
	}
	found, err := s.searcher.KNearest(s.index, s.query, k, s.metric)
	if err != nil {
		return err
	}
	printNeighbors(c, found)
	return nil
}

// RangeAction prints every segment within --radius as index<TAB>distance, or
// query<TAB>index for --queries.
func RangeAction(c *cli.Context) (err error) {
	s, err := newSearch(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.close()) }()

	r := c.Float64(flagRadius)
	if s.queries != nil {
		results, err := s.searcher.WithinRadiusBatch(c.Context, s.index, s.queries, r, s.metric)
		if err != nil {
			return err
		}
		printBatch(c, results)
		return nil
	}
	found, err := s.searcher.Within(s.index, s.query, r, s.metric)
	if err != nil {
		return err
	}
	printNeighbors(c, found)
	return nil
}

// DistanceAction prints the distance between --a and --b.
func DistanceAction(c *cli.Context) error {
	metric, err := distance.ParseMetric(c.String(flagMetric))
	if err != nil {
		return err
	}
	a, err := parseSegment(c.String(flagA))
	if err != nil {
		return err
	}
	b, err := parseSegment(c.String(flagB))
	if err != nil {
		return err
	}
	samples := c.Int(flagSamples)
	if samples <= 0 {
		samples = distance.DefaultSamples
	}
	d, err := distance.Between(a, b, metric, samples)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%g\n", d)
	return nil
}

// ImportAction appends the segments of --input to the store at --db.
func ImportAction(c *cli.Context) (err error) {
	segments, err := readSegmentsFile(c.String(flagInput))
	if err != nil {
		return err
	}
	s, closeFn, err := openStore(c.Context, c.String(flagDB))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeFn()) }()

	first, err := s.Append(c.Context, segments)
	if err != nil {
		return err
	}
	loggerFrom(c).Info("segments imported",
		zap.Int("count", len(segments)),
		zap.Int("first", first),
		zap.String("db", c.String(flagDB)))
	fmt.Fprintf(c.App.Writer, "imported %d segments starting at id %d\n", len(segments), first)
	return nil
}

// BoundsAction prints the bounding box and its diagonal.
func BoundsAction(c *cli.Context) error {
	segments, err := loadSegments(c.Context, c.String(flagInput), c.String(flagDB))
	if err != nil {
		return err
	}
	box := geom.Bounds(segments)
	if box.Empty() {
		fmt.Fprintln(c.App.Writer, "empty")
		return nil
	}
	w := c.App.Writer
	fmt.Fprintf(w, "min\t%g %g %g\n", box.Min.X, box.Min.Y, box.Min.Z)
	fmt.Fprintf(w, "max\t%g %g %g\n", box.Max.X, box.Max.Y, box.Max.Z)
	fmt.Fprintf(w, "diagonal\t%g\n", box.Diagonal())
	return nil
}
