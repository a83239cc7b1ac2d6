package geom

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// SegmentBlobSize is the encoded size of a segment.
const SegmentBlobSize = 6 * 8

// ErrInvalidBlob is returned when a BLOB is not a valid segment encoding.
var ErrInvalidBlob = errors.New("geom: invalid segment blob")

// EncodeSegment encodes a segment as six little-endian IEEE 754 float64
// values: start x, y, z then end x, y, z.
func EncodeSegment(s Segment) []byte {
	b := make([]byte, SegmentBlobSize)
	for i, v := range [6]float64{s.Start.X, s.Start.Y, s.Start.Z, s.End.X, s.End.Y, s.End.Z} {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

// DecodeSegment decodes a BLOB produced by EncodeSegment.
func DecodeSegment(b []byte) (Segment, error) {
	if len(b) != SegmentBlobSize {
		return Segment{}, errors.Wrapf(ErrInvalidBlob, "length %d, want %d", len(b), SegmentBlobSize)
	}
	var v [6]float64
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return NewSegment(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}
