package engine

import (
	"database/sql/driver"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	sqlite "modernc.org/sqlite"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
)

// MaxHausdorffSamples bounds the samples argument of seg_hausdorff. Values
// <= 0 use distance.DefaultSamples.
const MaxHausdorffSamples = 1 << 12

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterSegmentFunctions registers the segment distance functions with the
// driver. Only connections opened after the first call see them; later calls
// return the first call's result.
//
//	seg_shortest(a, b)
//	seg_longest(a, b)
//	seg_hausdorff(a, b [, samples])
//	seg_distance(a, b, metric)   -- metric is 'shortest', 'longest' or 'hausdorff'
func RegisterSegmentFunctions() error {
	registerOnce.Do(func() {
		registerErr = multierr.Combine(
			sqlite.RegisterDeterministicScalarFunction("seg_shortest", 2, metricImpl("seg_shortest", distance.MetricShortest)),
			sqlite.RegisterDeterministicScalarFunction("seg_longest", 2, metricImpl("seg_longest", distance.MetricLongest)),
			sqlite.RegisterDeterministicScalarFunction("seg_hausdorff", -1, segHausdorffImpl),
			sqlite.RegisterDeterministicScalarFunction("seg_distance", 3, segDistanceImpl),
		)
	})
	return registerErr
}

func asSegment(name string, arg driver.Value) (*geom.Segment, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		s, err := geom.DecodeSegment(v)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		return &s, nil
	default:
		return nil, errors.Errorf("%s: unsupported argument type %T for segment; want BLOB", name, arg)
	}
}

func segmentPair(name string, args []driver.Value) (a, b *geom.Segment, err error) {
	if a, err = asSegment(name, args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = asSegment(name, args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func metricImpl(name string, metric distance.Metric) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	fn := metric.Function(distance.DefaultSamples)
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, errors.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		a, b, err := segmentPair(name, args)
		if err != nil || a == nil || b == nil {
			return nil, err
		}
		return fn(*a, *b), nil
	}
}

func segHausdorffImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, errors.Errorf("seg_hausdorff: expected 2 or 3 arguments, got %d", len(args))
	}
	samples := distance.DefaultSamples
	if len(args) == 3 {
		n, ok := args[2].(int64)
		if !ok {
			return nil, errors.Errorf("seg_hausdorff: samples must be INTEGER, got %T", args[2])
		}
		if n > MaxHausdorffSamples {
			return nil, errors.Errorf("seg_hausdorff: samples %d exceeds %d", n, MaxHausdorffSamples)
		}
		samples = int(n)
	}
	a, b, err := segmentPair("seg_hausdorff", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	return distance.Hausdorff(*a, *b, samples), nil
}

func segDistanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 3 {
		return nil, errors.Errorf("seg_distance: expected 3 arguments, got %d", len(args))
	}
	name, ok := args[2].(string)
	if !ok {
		return nil, errors.Errorf("seg_distance: metric must be TEXT, got %T", args[2])
	}
	metric, err := distance.ParseMetric(name)
	if err != nil {
		return nil, errors.Wrap(err, "seg_distance")
	}
	a, b, err := segmentPair("seg_distance", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	return metric.Function(distance.DefaultSamples)(*a, *b), nil
}
