// Package axis implements the axis variants of the histogram's binning
// engine: Regular, Circular, Variable, Integer and Category. Each variant
// maps a scalar input to a signed bin index and describes its own real
// bin edges; see Axis for the shared contract.
package axis

import (
	"math"
	"strings"

	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// Bin is the (lo, hi) half-open range [Lo, Hi) of a real bin, or the
// appropriate sentinel pair for an under/overflow bin.
type Bin struct {
	Lo float64
	Hi float64
}

// Kind discriminates the closed set of axis variants. It is not meant to
// be extended by callers outside this package.
type Kind int

const (
	KindRegular Kind = iota
	KindCircular
	KindVariable
	KindInteger
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindCircular:
		return "circular"
	case KindVariable:
		return "variable"
	case KindInteger:
		return "integer"
	case KindCategory:
		return "category"
	}
	return "unknown"
}

// Axis is the shared contract every variant implements. Index returns a
// value in [-1, n] for axes with under/overflow (-1 underflow, n
// overflow), or [0, n) for Circular, which has neither.
type Axis interface {
	Kind() Kind
	Len() int // number of real bins, n
	Label() string
	UOflow() bool
	Index(x float64) int
	Bin(i int) Bin
	Equal(other Axis) bool
	String() string
}

// Underflow and Overflow are the sentinel bin indices any Axis.Index may
// return for a sample outside its configured range.
const (
	Underflow = -1
)

// Overflow returns the overflow sentinel index for an axis with n real
// bins (the value n itself).
func Overflow(n int) int { return n }

// Parse dispatches to the right variant's parser based on s's prefix,
// reversing whichever Axis.String produced it.
func Parse(s string) (Axis, error) {
	switch {
	case strings.HasPrefix(s, "axis.Regular"):
		return ParseRegular(s)
	case strings.HasPrefix(s, "axis.Circular"):
		return ParseCircular(s)
	case strings.HasPrefix(s, "axis.Variable"):
		return ParseVariable(s)
	case strings.HasPrefix(s, "axis.Integer"):
		return ParseInteger(s)
	case strings.HasPrefix(s, "axis.Category"):
		return ParseCategory(s)
	}
	return nil, domainError("unknown", zdict.Dict{"text": s}, "not a recognized axis representation:", s)
}

func domainError(kind string, dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	dict["Axis"] = kind
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

func arityError(kind string, dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "arity"
	dict["Axis"] = kind
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}

// clipIndex clips an unbounded transformed-space bin index k to the
// [-1, n] range an axis with under/overflow reports, or to [0, n) for one
// without (out-of-range samples on a no-uoflow axis collapse to n, which
// the fill path then treats as a silent drop).
func clipIndex(k int, n int, uoflow bool) int {
	if math.IsNaN(float64(k)) {
		return Underflow
	}
	if k < 0 {
		if uoflow {
			return Underflow
		}
		return n
	}
	if k >= n {
		return n
	}
	return k
}

// floorToIndex converts a transformed coordinate offset to a floored bin
// index, saturating at ±infinity instead of relying on float64->int
// conversion (which is undefined for out-of-range values in Go).
func floorToIndex(t float64) (k int, isUnderflow, isOverflow bool) {
	if math.IsNaN(t) {
		return 0, true, false
	}
	if math.IsInf(t, -1) {
		return 0, true, false
	}
	if math.IsInf(t, 1) {
		return 0, false, true
	}
	f := math.Floor(t)
	if f >= math.MaxInt32 {
		return 0, false, true
	}
	if f <= math.MinInt32 {
		return 0, true, false
	}
	return int(f), false, false
}
