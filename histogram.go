// Package mdhist is a generic N-dimensional histogram: a set of
// heterogeneous axes (regular, circular, variable-edge, integer,
// categorical) composed with an automatically-widening counter storage
// and an index engine that folds per-axis bin indices into one flat
// cell array.
package mdhist

import (
	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/layout"
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// Histogram is an ordered tuple of axes plus the storage and layout that
// back it. Axes are fixed at construction; the zero value is not usable,
// use New.
type Histogram struct {
	axes    []axis.Axis
	lay     *layout.Layout
	storage storage.Storage
}

// New creates a histogram over the given axes, in order. Zero axes is
// valid: it is the 0-dimensional histogram with a single cell.
func New(axes ...axis.Axis) (*Histogram, error) {
	dims := make([]layout.Dim, len(axes))
	for i, a := range axes {
		dims[i] = layout.Dim{N: a.Len(), UOflow: a.UOflow()}
	}
	lay, err := layout.New(dims)
	if err != nil {
		return nil, err
	}
	h := &Histogram{
		axes:    append([]axis.Axis(nil), axes...),
		lay:     lay,
		storage: storage.NewCounts(lay.Size()),
	}
	return h, nil
}

// MustNew is New, exiting the process through zlog.Fatal on error. For
// tests and init-time use.
func MustNew(axes ...axis.Axis) *Histogram {
	h, err := New(axes...)
	if err != nil {
		zlog.Fatal(err)
	}
	return h
}

// Dim returns the number of axes (D).
func (h *Histogram) Dim() int { return len(h.axes) }

// Axis returns axis i, with Python-style negative wraparound (-1 is the
// last axis). Out-of-range i is a shape error.
func (h *Histogram) Axis(i int) (axis.Axis, error) {
	n := len(h.axes)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, shapeError(zdict.Dict{"i": i, "dim": n}, "axis index out of range:", i)
	}
	return h.axes[i], nil
}

// SoleAxis returns the only axis of a 1-D histogram, erroring otherwise.
func (h *Histogram) SoleAxis() (axis.Axis, error) {
	if len(h.axes) != 1 {
		return nil, shapeError(zdict.Dict{"dim": len(h.axes)}, "SoleAxis requires a 1-dimensional histogram")
	}
	return h.axes[0], nil
}

// State reports whether the backing storage is still plain counts or
// has promoted to weighted (sum-of-weights, sum-of-squared-weights).
func (h *Histogram) State() storage.State { return h.storage.State() }

// Value returns the cell content at the given per-axis signed indices
// (one per axis, -1/n permitted when that axis has under/overflow).
// Out-of-range indices are a shape error; reads, unlike fills, are
// strict.
func (h *Histogram) Value(idx ...int) (float64, error) {
	pos, err := h.position(idx)
	if err != nil {
		return 0, err
	}
	return h.storage.Value(pos), nil
}

// Variance returns the cell's variance at the given per-axis signed
// indices, with the same semantics as Value.
func (h *Histogram) Variance(idx ...int) (float64, error) {
	pos, err := h.position(idx)
	if err != nil {
		return 0, err
	}
	return h.storage.Variance(pos), nil
}

// ValueAtBin reads a cell by the bin (lo, hi) pairs axis iteration
// returns, one per axis, instead of raw indices.
func (h *Histogram) ValueAtBin(bins ...axis.Bin) (float64, error) {
	idx, err := h.indicesForBins(bins)
	if err != nil {
		return 0, err
	}
	return h.Value(idx...)
}

func (h *Histogram) indicesForBins(bins []axis.Bin) ([]int, error) {
	if len(bins) != len(h.axes) {
		return nil, shapeError(zdict.Dict{"got": len(bins), "want": len(h.axes)}, "wrong number of bins")
	}
	idx := make([]int, len(bins))
	for i, a := range h.axes {
		n := a.Len()
		found := false
		for k := -1; k <= n; k++ {
			if k == -1 && !a.UOflow() {
				continue
			}
			if k == n && !a.UOflow() {
				continue
			}
			b := a.Bin(k)
			if b == bins[i] {
				idx[i] = k
				found = true
				break
			}
		}
		if !found {
			return nil, shapeError(zdict.Dict{"axis": i}, "bin does not belong to this axis")
		}
	}
	return idx, nil
}

func (h *Histogram) position(idx []int) (int, error) {
	if len(idx) == len(h.axes) {
		for i, a := range h.axes {
			lo, hi := 0, a.Len()-1
			if a.UOflow() {
				lo, hi = axis.Underflow, a.Len()
			}
			if idx[i] < lo || idx[i] > hi {
				return 0, shapeError(zdict.Dict{"idx": idx, "axis": i}, "index out of range")
			}
		}
	}
	pos, ok := h.lay.ToStoragePos(idx)
	if !ok {
		return 0, shapeError(zdict.Dict{"idx": idx}, "index out of range")
	}
	return pos, nil
}

// Sum is the total of all real-bin counts, excluding under/overflow.
func (h *Histogram) Sum() float64 {
	var total float64
	h.lay.Walk(func(pos int, idx []int) bool {
		if h.isRealCell(idx) {
			total += h.storage.Value(pos)
		}
		return true
	})
	return total
}

// SumFlow is the total of every cell, including under/overflow.
func (h *Histogram) SumFlow() float64 {
	var total float64
	h.lay.Walk(func(pos int, idx []int) bool {
		total += h.storage.Value(pos)
		return true
	})
	return total
}

func (h *Histogram) isRealCell(idx []int) bool {
	for i, a := range h.axes {
		if idx[i] < 0 || idx[i] >= a.Len() {
			return false
		}
	}
	return true
}

// All iterates every cell in storage order (including under/overflow),
// passing its per-axis signed indices, value and variance to yield, and
// stops early when yield returns false. Since yield takes three values,
// All is called directly with a callback; it cannot be used with range.
func (h *Histogram) All(yield func(idx []int, value, variance float64) bool) {
	h.lay.Walk(func(pos int, idx []int) bool {
		return yield(idx, h.storage.Value(pos), h.storage.Variance(pos))
	})
}

// Copy returns a deep copy: independent axes slice (axis values
// themselves are immutable and safely shared) and an independently
// mutable storage.
func (h *Histogram) Copy() *Histogram {
	return &Histogram{
		axes:    append([]axis.Axis(nil), h.axes...),
		lay:     h.lay,
		storage: h.storage.Clone(),
	}
}

// Equal reports whether h and o have the same axes (in order) and
// numerically identical cell values and variances. The storage state is
// not compared: a Counts and a Weighted histogram are equal when their
// values and variances coincide.
func (h *Histogram) Equal(o *Histogram) bool {
	if len(h.axes) != len(o.axes) {
		return false
	}
	for i := range h.axes {
		if !h.axes[i].Equal(o.axes[i]) {
			return false
		}
	}
	if h.lay.Size() != o.lay.Size() {
		return false
	}
	equal := true
	h.lay.Walk(func(pos int, idx []int) bool {
		if h.storage.Value(pos) != o.storage.Value(pos) || h.storage.Variance(pos) != o.storage.Variance(pos) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// ReduceTo marginalizes h down to just the axes in keep, in the order
// given (each a valid axis index, negative wraparound not supported
// here since duplicates/reordering are meaningful). Every dropped
// axis's bins, including its under/overflow cells, are summed into the
// corresponding kept cell. Storage state is preserved: a Counts input
// stays Counts (promoting tiers as needed for the summed cell), a
// Weighted input stays Weighted.
func (h *Histogram) ReduceTo(keep ...int) (*Histogram, error) {
	for _, i := range keep {
		if i < 0 || i >= len(h.axes) {
			return nil, shapeError(zdict.Dict{"i": i, "dim": len(h.axes)}, "reduce_to axis index out of range:", i)
		}
	}
	reducedLay, values, variances := h.lay.ReduceTo(keep, h.storage.Value, h.storage.Variance)
	axes := make([]axis.Axis, len(keep))
	for i, k := range keep {
		axes[i] = h.axes[k]
	}
	var st storage.Storage
	if h.storage.State() == storage.StateWeighted {
		w := storage.NewWeighted(reducedLay.Size())
		for i := range values {
			w.SetCell(i, values[i], variances[i])
		}
		st = w
	} else {
		c := storage.NewCounts(reducedLay.Size())
		for i, v := range values {
			c.AddCount(i, uint64(v))
		}
		st = c
	}
	return &Histogram{axes: axes, lay: reducedLay, storage: st}, nil
}

// CountsByteView exposes the backing Counts storage's raw tiered byte
// view, for the optional array-interop capability (mdhist/ndarray,
// behind its own build tag). It errors if h has promoted to Weighted.
func (h *Histogram) CountsByteView() (storage.View, error) {
	c, ok := h.storage.(*storage.Counts)
	if !ok {
		return storage.View{}, domainError(zdict.Dict{}, "histogram storage is weighted, not counts; use Value/Variance per cell instead")
	}
	return c.ByteView(), nil
}

func shapeError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "shape"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

func domainError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

func arityError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "arity"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
