package mdhist

import (
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zlog"
)

// Fill increments the cell for x (one value per axis) by one unweighted
// event. It never changes the storage state. Arity must match Dim(); a
// sample any axis rejects (non-finite into a strict axis, or any value
// outside an axis with no under/overflow) is silently dropped, matching
// the fill contract: no error, sum unaffected.
func (h *Histogram) Fill(x ...float64) error {
	idx, err := h.axisIndices(x)
	if err != nil {
		return err
	}
	pos, ok := h.lay.ToStoragePos(idx)
	if !ok {
		return nil
	}
	h.storage.Add(pos, 1)
	return nil
}

// FillWeight increments the cell for x by weight, promoting storage to
// Weighted on first use (the promotion is one-way and sticky for the
// rest of the histogram's life, even if every later weight happens to
// be 1).
func (h *Histogram) FillWeight(weight float64, x ...float64) error {
	idx, err := h.axisIndices(x)
	if err != nil {
		return err
	}
	pos, ok := h.lay.ToStoragePos(idx)
	if !ok {
		return nil
	}
	h.promoteToWeighted()
	h.storage.Add(pos, weight)
	return nil
}

// AddCount increments the cell for x by count, an integer multiplier.
// It stays in whichever storage state the histogram is already in
// (Counts keeps counting, promoting tiers as usual if count overflows).
func (h *Histogram) AddCount(count uint64, x ...float64) error {
	return h.AddCountBatch([]uint64{count}, x...)
}

// AddCountBatch increments the cell for x by the sum of counts, the
// array form of AddCount.
func (h *Histogram) AddCountBatch(counts []uint64, x ...float64) error {
	idx, err := h.axisIndices(x)
	if err != nil {
		return err
	}
	pos, ok := h.lay.ToStoragePos(idx)
	if !ok {
		return nil
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	switch st := h.storage.(type) {
	case *storage.Counts:
		st.AddCount(pos, total)
	case *storage.Weighted:
		st.Add(pos, float64(total))
	}
	return nil
}

// FillBatch fills many samples at once. xs holds one column per axis
// (xs[i] is axis i's values across the batch); a column of length 1
// broadcasts its single value to every sample, and every other column
// must share the batch's length. weights is optional: nil means every
// sample is an unweighted unit Fill; otherwise it follows the same
// broadcast rule as an xs column.
func (h *Histogram) FillBatch(xs [][]float64, weights []float64) error {
	if len(xs) != len(h.axes) {
		return arityError(zdict.Dict{"got": len(xs), "want": len(h.axes)}, "fill batch arity mismatch")
	}
	n, err := batchLength(xs)
	if err != nil {
		return err
	}
	if weights != nil {
		if _, err := columnLength(weights, n); err != nil {
			return err
		}
	}
	x := make([]float64, len(xs))
	for s := 0; s < n; s++ {
		for i, col := range xs {
			x[i] = pickColumn(col, s)
		}
		if weights == nil {
			if err := h.Fill(x...); err != nil {
				return err
			}
			continue
		}
		if err := h.FillWeight(pickColumn(weights, s), x...); err != nil {
			return err
		}
	}
	return nil
}

func (h *Histogram) axisIndices(x []float64) ([]int, error) {
	if len(x) != len(h.axes) {
		return nil, arityError(zdict.Dict{"got": len(x), "want": len(h.axes)}, "fill arity mismatch")
	}
	idx := make([]int, len(h.axes))
	for i, a := range h.axes {
		idx[i] = a.Index(x[i])
	}
	return idx, nil
}

func (h *Histogram) promoteToWeighted() {
	if h.storage.State() == storage.StateWeighted {
		return
	}
	c, ok := h.storage.(*storage.Counts)
	zlog.Assert(ok, "counts storage expected before first weighted fill")
	h.storage = storage.NewWeightedFromCounts(c)
}

func batchLength(xs [][]float64) (int, error) {
	n := 1
	set := false
	for _, col := range xs {
		if len(col) == 0 {
			return 0, domainError(zdict.Dict{}, "fill batch column is empty")
		}
		if len(col) == 1 {
			continue
		}
		if !set {
			n, set = len(col), true
			continue
		}
		if len(col) != n {
			return 0, shapeError(zdict.Dict{"len": len(col), "want": n}, "fill batch columns have mismatched lengths")
		}
	}
	return n, nil
}

func columnLength(col []float64, n int) (int, error) {
	if len(col) == 1 || len(col) == n {
		return len(col), nil
	}
	return 0, shapeError(zdict.Dict{"len": len(col), "want": n}, "fill batch weight length mismatch")
}

func pickColumn(col []float64, i int) float64 {
	if len(col) == 1 {
		return col[0]
	}
	return col[i]
}
