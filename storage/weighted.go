package storage

import (
	"slices"

	"github.com/torlangballe/mdhist/zdict"
)

// Weighted is the storage a histogram promotes into on its first
// weighted fill (whatever the weight) or non-unit scale. Each cell
// tracks the sum of
// weights and the sum of squared weights, so Variance stays correct for
// non-unit weights (unlike Counts, where variance is just the count).
type Weighted struct {
	n     int
	sumW  []float64
	sumW2 []float64
}

// NewWeighted creates a zeroed Weighted storage of n cells.
func NewWeighted(n int) *Weighted {
	return &Weighted{n: n, sumW: make([]float64, n), sumW2: make([]float64, n)}
}

// NewWeightedFromCounts promotes a Counts storage: every cell's count
// becomes both its sum of weights and its sum of squared weights, since
// a count of k is k unit-weight events (sumW=k, sumW2=k*1^2).
func NewWeightedFromCounts(c *Counts) *Weighted {
	w := NewWeighted(c.n)
	for i := 0; i < c.n; i++ {
		v := c.Value(i)
		w.sumW[i] = v
		w.sumW2[i] = v
	}
	return w
}

func (w *Weighted) Len() int     { return w.n }
func (w *Weighted) State() State { return StateWeighted }

func (w *Weighted) Value(i int) float64    { return w.sumW[i] }
func (w *Weighted) Variance(i int) float64 { return w.sumW2[i] }

func (w *Weighted) Add(i int, weight float64) {
	w.sumW[i] += weight
	w.sumW2[i] += weight * weight
}

// SetCell sets cell i's sum of weights and sum of squared weights
// directly, overwriting whatever was there. Used when reconstructing a
// Weighted storage from its textual or binary representation.
func (w *Weighted) SetCell(i int, sumW, sumW2 float64) {
	w.sumW[i] = sumW
	w.sumW2[i] = sumW2
}

func (w *Weighted) AddInPlace(other Storage) error {
	ow, ok := other.(*Weighted)
	if !ok {
		return shapeError(zdict.Dict{}, "cannot merge", other.State(), "storage into weighted storage")
	}
	if ow.n != w.n {
		return shapeError(zdict.Dict{"n": w.n, "otherN": ow.n}, "storage length mismatch")
	}
	for i := 0; i < w.n; i++ {
		w.sumW[i] += ow.sumW[i]
		w.sumW2[i] += ow.sumW2[i]
	}
	return nil
}

// ScaleInPlace multiplies every cell's sum of weights by factor and its
// sum of squared weights by factor^2, preserving Var(aX) = a^2 Var(X).
// A negative factor is a domain error (spec.md's arithmetic only ever
// scales by a non-negative real); factor == 0 zeroes the storage.
func (w *Weighted) ScaleInPlace(factor float64) error {
	if factor < 0 {
		return domainError(zdict.Dict{"factor": factor}, "cannot scale storage by a negative factor")
	}
	factor2 := factor * factor
	for i := 0; i < w.n; i++ {
		w.sumW[i] *= factor
		w.sumW2[i] *= factor2
	}
	return nil
}

func (w *Weighted) Clone() Storage {
	return &Weighted{n: w.n, sumW: slices.Clone(w.sumW), sumW2: slices.Clone(w.sumW2)}
}

func (w *Weighted) Reset() {
	for i := range w.sumW {
		w.sumW[i] = 0
		w.sumW2[i] = 0
	}
}
