package segindex_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/index/bruteforce"
	"github.com/viant/segknn/logging"
	"github.com/viant/segknn/segindex"
)

func TestBuild_InterleavedLayout(t *testing.T) {
	segments := geom.Collection{
		geom.NewSegment(0, 0, 0, 1, 0, 0),
		geom.NewSegment(0, 5, 0, 1, 5, 0),
		geom.NewSegment(2, 2, 2, 2, 2, 2),
	}
	for _, kind := range index.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			idx, err := segindex.Build(segments, segindex.WithKind(kind))
			require.NoError(t, err)
			defer idx.Close()

			assert.Equal(t, 3, idx.Len())
			assert.Equal(t, kind, idx.Kind())
			for i, s := range segments {
				assert.Equal(t, s.Start, idx.Endpoint(segindex.Slot(i, false)))
				assert.Equal(t, s.End, idx.Endpoint(segindex.Slot(i, true)))
				assert.Equal(t, i, idx.SegmentOf(segindex.Slot(i, true)))
			}

			slots, err := idx.PointIndex().KNN(geom.Point3{X: 1, Y: 5}, 1)
			require.NoError(t, err)
			assert.Equal(t, []int{3}, slots)
		})
	}
}

func TestSlotMapping(t *testing.T) {
	for seg := 0; seg < 10; seg++ {
		assert.Equal(t, seg, segindex.SegmentOf(segindex.Slot(seg, false)))
		assert.Equal(t, seg, segindex.SegmentOf(segindex.Slot(seg, true)))
	}
	assert.Equal(t, 6, segindex.Slot(3, false))
	assert.Equal(t, 7, segindex.Slot(3, true))
}

func TestBuild_Empty(t *testing.T) {
	idx, err := segindex.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	require.NoError(t, idx.Close())
}

func TestBuild_InvalidSegments(t *testing.T) {
	nan := geom.NewSegment(0, 0, 0, 1, math.NaN(), 1)
	inf := geom.NewSegment(math.Inf(-1), 0, 0, 1, 1, 1)

	_, err := segindex.Build(geom.Collection{geom.NewSegment(0, 0, 0, 1, 1, 1), nan, inf})
	require.Error(t, err)
	assert.ErrorIs(t, err, geom.ErrInvalidSegment)
	assert.Contains(t, err.Error(), "segment 1")
	assert.Contains(t, err.Error(), "segment 2")
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := segindex.Build(geom.Collection{geom.NewSegment(0, 0, 0, 1, 1, 1)}, segindex.WithKind("rtree"))
	assert.ErrorIs(t, err, index.ErrUnknownKind)
}

type failingIndex struct {
	bruteforce.Index
	err error
}

func (f *failingIndex) Build([]geom.Point3) error { return f.err }

func TestBuild_CollaboratorErrorUnchanged(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := segindex.Build(geom.Collection{geom.NewSegment(0, 0, 0, 1, 1, 1)},
		segindex.WithPointIndex(&failingIndex{err: boom}))
	assert.Same(t, boom, err)
}

func TestBuild_Logs(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	idx, err := segindex.Build(geom.Collection{geom.NewSegment(0, 0, 0, 1, 1, 1)},
		segindex.WithPointIndex(&bruteforce.Index{}),
		segindex.WithLogger(logger))
	require.NoError(t, err)
	defer idx.Close()

	entries := logs.FilterMessage("segment index built").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["segments"])
	assert.EqualValues(t, 2, fields["points"])
	assert.Equal(t, "custom", fields["kind"])
}

func TestClose(t *testing.T) {
	idx, err := segindex.Build(geom.Collection{geom.NewSegment(0, 0, 0, 1, 1, 1)})
	require.NoError(t, err)
	require.NoError(t, idx.Close())
	assert.PanicsWithValue(t, index.ErrClosed, func() { _ = idx.Close() })
	assert.PanicsWithValue(t, index.ErrClosed, func() { idx.PointIndex() })
	assert.PanicsWithValue(t, index.ErrClosed, func() { idx.Segments() })
	assert.PanicsWithValue(t, index.ErrClosed, func() { idx.Endpoint(0) })
}
