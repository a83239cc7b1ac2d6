package neighbor

import (
	"context"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
)

var defaultSearcher = New()

// KNearestNeighbors runs Searcher.KNearestNeighbors with default options.
func KNearestNeighbors(src Source, query geom.Segment, k int, metric distance.Metric) ([]int, error) {
	return defaultSearcher.KNearestNeighbors(src, query, k, metric)
}

// WithinRadius runs Searcher.WithinRadius with default options.
func WithinRadius(src Source, query geom.Segment, radius float64, metric distance.Metric) ([]int, error) {
	return defaultSearcher.WithinRadius(src, query, radius, metric)
}

// KNearestNeighborsBatch runs Searcher.KNearestNeighborsBatch with default options.
func KNearestNeighborsBatch(ctx context.Context, src Source, queries []geom.Segment, k int, metric distance.Metric) ([][]int, error) {
	return defaultSearcher.KNearestNeighborsBatch(ctx, src, queries, k, metric)
}

// WithinRadiusBatch runs Searcher.WithinRadiusBatch with default options.
func WithinRadiusBatch(ctx context.Context, src Source, queries []geom.Segment, radius float64, metric distance.Metric) ([][]int, error) {
	return defaultSearcher.WithinRadiusBatch(ctx, src, queries, radius, metric)
}
