package mdhist

import (
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
)

// AddInPlace adds o's cells into h, cell-wise. Both histograms must have
// identical axes (same variant, parameters, label and uoflow, in
// order); otherwise it's a shape error. The storage-state join follows
// spec.md §4.B: Counts+Counts stays Counts (with tier promotion if a
// cell sum overflows); if either side is already Weighted, h promotes
// to Weighted first.
func (h *Histogram) AddInPlace(o *Histogram) error {
	if !h.axesEqual(o) {
		return shapeError(zdict.Dict{}, "cannot add histograms with different axes")
	}
	if o.storage.State() == storage.StateWeighted {
		h.promoteToWeighted()
	}
	other := o.storage
	if h.storage.State() == storage.StateWeighted && o.storage.State() == storage.StateCounts {
		other = storage.NewWeightedFromCounts(o.storage.(*storage.Counts))
	}
	return h.storage.AddInPlace(other)
}

// Add returns a new histogram equivalent to h.Copy().AddInPlace(o).
func (h *Histogram) Add(o *Histogram) (*Histogram, error) {
	result := h.Copy()
	if err := result.AddInPlace(o); err != nil {
		return nil, err
	}
	return result, nil
}

// ScaleInPlace multiplies every cell by factor, a non-negative real.
// factor == 1 on Counts storage is the identity and storage stays
// Counts; any other factor promotes to Weighted first, so
// Var((h+h)) = 2*value(h) (additive, Counts) while Var(2*h) =
// 4*value(h) (quadratic, Weighted): scaling is not the same as repeated
// addition once variance is tracked.
func (h *Histogram) ScaleInPlace(factor float64) error {
	if factor < 0 {
		return domainError(zdict.Dict{"factor": factor}, "cannot scale a histogram by a negative factor")
	}
	if factor == 1 && h.storage.State() == storage.StateCounts {
		return nil
	}
	h.promoteToWeighted()
	return h.storage.ScaleInPlace(factor)
}

func (h *Histogram) axesEqual(o *Histogram) bool {
	if len(h.axes) != len(o.axes) {
		return false
	}
	for i := range h.axes {
		if !h.axes[i].Equal(o.axes[i]) {
			return false
		}
	}
	return true
}
