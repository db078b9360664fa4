package layout

import "github.com/torlangballe/mdhist/zlog"

// ReduceTo marginalizes the full layout down to just the axes listed in
// keep (by index into the original dims, order preserved), summing
// value/variance across every dropped axis's bins, including its
// under/overflow cells, since marginalizing means "everything that was
// ever filled along this axis", not just its real range. It returns the
// reduced layout and the corresponding summed value/variance arrays,
// indexed the same way the reduced layout's own storage would be.
func (l *Layout) ReduceTo(keep []int, value, variance func(pos int) float64) (*Layout, []float64, []float64) {
	keepDims := make([]Dim, len(keep))
	for i, axisIdx := range keep {
		keepDims[i] = l.dims[axisIdx]
	}
	reduced, err := New(keepDims)
	zlog.Assert(err == nil, "ReduceTo built an invalid reduced layout:", err)

	values := make([]float64, reduced.size)
	variances := make([]float64, reduced.size)
	l.Walk(func(pos int, idx []int) bool {
		keptIdx := make([]int, len(keep))
		for i, axisIdx := range keep {
			keptIdx[i] = idx[axisIdx]
		}
		rpos, ok := reduced.ToStoragePos(keptIdx)
		zlog.Assert(ok, "reduced index out of range")
		values[rpos] += value(pos)
		variances[rpos] += variance(pos)
		return true
	})
	return reduced, values, variances
}
