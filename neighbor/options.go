package neighbor

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/viant/segknn/distance"
)

// Option configures a Searcher.
type Option func(*Searcher)

// WithSamples sets the Hausdorff sampling resolution.
func WithSamples(samples int) Option {
	return func(s *Searcher) {
		if samples > 0 {
			s.samples = samples
		}
	}
}

// WithLogger sets the query logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers caps the number of queries a batch runs in parallel.
func WithWorkers(workers int) Option {
	return func(s *Searcher) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

func defaults() *Searcher {
	return &Searcher{
		samples: distance.DefaultSamples,
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
}
