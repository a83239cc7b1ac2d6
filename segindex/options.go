package segindex

import (
	"go.uber.org/zap"

	"github.com/viant/segknn/index"
)

// Option configures Build.
type Option func(*options)

type options struct {
	kind   index.Kind
	points index.Index
	logger *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{kind: index.KDTree, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithKind selects the point index implementation. Defaults to index.KDTree.
func WithKind(kind index.Kind) Option {
	return func(o *options) { o.kind = kind }
}

// WithPointIndex supplies an unbuilt point index. It takes precedence over
// WithKind.
func WithPointIndex(idx index.Index) Option {
	return func(o *options) { o.points = idx }
}

// WithLogger sets the logger used to report builds.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
