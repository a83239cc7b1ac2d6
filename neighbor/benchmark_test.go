package neighbor_test

import (
	"context"
	"testing"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/internal/segtest"
	"github.com/viant/segknn/neighbor"
	"github.com/viant/segknn/segindex"
)

const (
	benchSegments = 200_000
	benchLength   = 10
	benchBox      = 100
	benchK        = 5
)

func BenchmarkBuild(b *testing.B) {
	segments := segtest.RandomSegments(segtest.NewRand(1), benchSegments, benchLength, benchBox)
	for _, kind := range index.Kinds() {
		if kind == index.BruteForce {
			continue
		}
		b.Run(string(kind), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				idx, err := segindex.Build(segments, segindex.WithKind(kind))
				if err != nil {
					b.Fatal(err)
				}
				_ = idx.Close()
			}
		})
	}
}

func BenchmarkKNearestNeighbors(b *testing.B) {
	rng := segtest.NewRand(1)
	segments := segtest.RandomSegments(rng, benchSegments, benchLength, benchBox)
	queries := segtest.RandomSegments(rng, 1024, benchLength, benchBox)
	for _, kind := range []index.Kind{index.KDTree, index.Cover, index.VPTree} {
		idx, err := segindex.Build(segments, segindex.WithKind(kind))
		if err != nil {
			b.Fatal(err)
		}
		for _, metric := range []distance.Metric{distance.MetricShortest, distance.MetricHausdorff} {
			b.Run(string(kind)+"/"+metric.String(), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if _, err := neighbor.KNearestNeighbors(idx, queries[i%len(queries)], benchK, metric); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
		_ = idx.Close()
	}
}

func BenchmarkWithinRadius(b *testing.B) {
	rng := segtest.NewRand(2)
	segments := segtest.RandomSegments(rng, benchSegments, benchLength, benchBox)
	queries := segtest.RandomSegments(rng, 1024, benchLength, benchBox)
	idx, err := segindex.Build(segments)
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := neighbor.WithinRadius(idx, queries[i%len(queries)], 5, distance.MetricShortest); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNearestNeighborsBatch(b *testing.B) {
	rng := segtest.NewRand(3)
	segments := segtest.RandomSegments(rng, benchSegments, benchLength, benchBox)
	queries := segtest.RandomSegments(rng, 256, benchLength, benchBox)
	idx, err := segindex.Build(segments)
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := neighbor.KNearestNeighborsBatch(context.Background(), idx, queries, benchK, distance.MetricShortest); err != nil {
			b.Fatal(err)
		}
	}
}
