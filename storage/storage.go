// Package storage implements the histogram's per-cell counter storage:
// an unsigned-integer tier that silently promotes from uint8 up through
// an arbitrary-precision big.Int when a cell would otherwise overflow,
// and a weighted tier carrying (sum of weights, sum of squared weights)
// once the histogram sees its first weighted fill. The Counts ->
// Weighted transition is one-way.
package storage

import (
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// State discriminates the two storage kinds a histogram's cells can be
// in. A fresh histogram starts in StateCounts; its first weighted fill
// replaces the Counts with a Weighted (NewWeightedFromCounts) and there
// is no way back.
type State int

const (
	StateCounts State = iota
	StateWeighted
)

func (s State) String() string {
	switch s {
	case StateCounts:
		return "counts"
	case StateWeighted:
		return "weighted"
	}
	return "unknown"
}

// Storage is the shared contract for a flat, linearized array of
// per-cell accumulators. Index i is the layout engine's linear cell
// index; callers never need to know which tier or state backs it.
type Storage interface {
	Len() int
	State() State
	Value(i int) float64
	Variance(i int) float64
	Add(i int, weight float64)
	AddInPlace(other Storage) error
	ScaleInPlace(factor float64) error
	Clone() Storage
	Reset()
}

func shapeError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "shape"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

func domainError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
