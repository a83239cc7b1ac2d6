package index

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/viant/segknn/geom"
)

var (
	// ErrUnknownKind is returned for an unsupported index kind.
	ErrUnknownKind = errors.New("index: unknown kind")
	// ErrClosed is the panic value raised when a closed index is used.
	ErrClosed = errors.New("index: use of closed index")
)

// Kind names a point index implementation.
type Kind string

const (
	KDTree     Kind = "kdtree"
	Cover      Kind = "cover"
	VPTree     Kind = "vptree"
	BruteForce Kind = "brute"
)

// Kinds lists the supported kinds.
func Kinds() []Kind { return []Kind{KDTree, Cover, VPTree, BruteForce} }

// ParseKind resolves a kind by name, case-insensitively. "bruteforce" is
// accepted as an alias of "brute".
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if k == "bruteforce" {
		return BruteForce, nil
	}
	for _, candidate := range Kinds() {
		if k == candidate {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", name)
}

// CheckOpen panics with ErrClosed when closed is true.
func CheckOpen(closed bool) {
	if closed {
		panic(ErrClosed)
	}
}

// CheckFinite returns an error naming the first point with a non-finite
// coordinate.
func CheckFinite(points []geom.Point3) error {
	for slot, p := range points {
		if err := (geom.Segment{Start: p, End: p}).Validate(); err != nil {
			return errors.Wrapf(err, "point slot %d", slot)
		}
	}
	return nil
}
