package neighbor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
)

// KNearestNeighborsBatch runs KNearestNeighbors for every query in parallel.
// The first failing query cancels the rest.
func (s *Searcher) KNearestNeighborsBatch(ctx context.Context, src Source, queries []geom.Segment, k int, metric distance.Metric) ([][]int, error) {
	return s.batch(ctx, "knn", queries, func(q geom.Segment) ([]int, error) {
		return s.KNearestNeighbors(src, q, k, metric)
	})
}

// WithinRadiusBatch runs WithinRadius for every query in parallel.
// The first failing query cancels the rest.
func (s *Searcher) WithinRadiusBatch(ctx context.Context, src Source, queries []geom.Segment, radius float64, metric distance.Metric) ([][]int, error) {
	return s.batch(ctx, "range", queries, func(q geom.Segment) ([]int, error) {
		return s.WithinRadius(src, q, radius, metric)
	})
}

func (s *Searcher) batch(ctx context.Context, kind string, queries []geom.Segment, run func(geom.Segment) ([]int, error)) ([][]int, error) {
	started := time.Now()
	out := make([][]int, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := run(q)
			if err != nil {
				return errors.Wrapf(err, "query %d", i)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Info("batch completed",
		zap.String("kind", kind),
		zap.Int("queries", len(queries)),
		zap.Int("workers", s.workers),
		zap.Duration("elapsed", time.Since(started)))
	return out, nil
}
