// Package layout is the histogram's index engine: it turns an N-tuple
// of per-axis signed bin indices (as axis.Axis.Index returns them) into
// a single flat storage position, and back. It has no notion of what's
// stored at each position, that's storage.Storage's job, only of
// shape, strides and the under/overflow layout each axis dictates.
package layout

import (
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// MaxDims caps the number of axes a single Layout can carry. Real usage
// never comes close; the cap exists to turn a runaway caller (building a
// histogram from a malformed, dynamically-sized axis list) into a clear
// shape error instead of an enormous allocation.
const MaxDims = 32

// Dim is one axis's contribution to a Layout: its real bin count and
// whether it reserves under/overflow storage cells.
type Dim struct {
	N      int
	UOflow bool
}

// Shape is the number of storage cells this dimension occupies: N, plus
// one each for underflow and overflow if UOflow is set.
func (d Dim) Shape() int {
	if d.UOflow {
		return d.N + 2
	}
	return d.N
}

// Layout is the fixed shape/stride pair derived from an ordered list of
// Dim. Last dimension varies fastest (row-major / C order).
type Layout struct {
	dims    []Dim
	strides []int
	size    int
}

// New builds a Layout from dims, in axis order. An empty dims list is
// valid: it is the zero-dimensional layout with exactly one cell.
func New(dims []Dim) (*Layout, error) {
	if len(dims) > MaxDims {
		return nil, shapeError(zdict.Dict{"dims": len(dims), "max": MaxDims}, "too many axes:", len(dims))
	}
	strides := make([]int, len(dims))
	size := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = size
		size *= dims[i].Shape()
	}
	return &Layout{dims: dims, strides: strides, size: size}, nil
}

func (l *Layout) Dims() int    { return len(l.dims) }
func (l *Layout) Size() int    { return l.size }
func (l *Layout) Dim(i int) Dim { return l.dims[i] }

// ToStoragePos converts a per-axis signed bin index tuple (as returned
// by axis.Axis.Index, one entry per axis in the same order as New's
// dims) into a flat storage position. ok is false if idx has the wrong
// arity, or if any axis without under/overflow reports its drop signal
// (index == that axis's N); callers silently skip the fill in that
// case.
func (l *Layout) ToStoragePos(idx []int) (pos int, ok bool) {
	if len(idx) != len(l.dims) {
		return 0, false
	}
	for i, d := range l.dims {
		k := idx[i]
		var p int
		if d.UOflow {
			p = k + 1 // -1 (underflow) -> 0, 0..N-1 -> 1..N, N (overflow) -> N+1
		} else {
			if k == d.N {
				return 0, false
			}
			p = k
		}
		pos += p * l.strides[i]
	}
	return pos, true
}

// FromStoragePos is the inverse of ToStoragePos: it expands a flat
// position back into the per-axis signed bin indices it came from.
func (l *Layout) FromStoragePos(pos int) []int {
	idx := make([]int, len(l.dims))
	for i, d := range l.dims {
		p := (pos / l.strides[i]) % d.Shape()
		if d.UOflow {
			idx[i] = p - 1
		} else {
			idx[i] = p
		}
	}
	return idx
}

func shapeError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "shape"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
