//go:build mdhist_array

// Package ndarray is the optional numeric-array interop capability:
// it exposes a histogram's storage and axis edges as plain buffers
// (shape + dtype + raw bytes), so a caller can hand them to whatever
// array runtime they use without this module depending on one. It is
// gated behind the mdhist_array build tag so the core library carries
// no array-ecosystem dependency by default.
package ndarray

import (
	"encoding/binary"
	"math"

	"github.com/torlangballe/mdhist"
	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// DType names the scalar type of a View's raw bytes.
type DType int

const (
	DTypeU8 DType = iota
	DTypeU16
	DTypeU32
	DTypeU64
	DTypeF64
)

func (d DType) String() string {
	switch d {
	case DTypeU8:
		return "u8"
	case DTypeU16:
		return "u16"
	case DTypeU32:
		return "u32"
	case DTypeU64:
		return "u64"
	case DTypeF64:
		return "f64"
	}
	return "unknown"
}

// View is a flat, row-major buffer plus the shape and dtype needed to
// reinterpret it as an N-D array.
type View struct {
	Shape []int
	DType DType
	Data  []byte
}

// Counts returns h's storage as a View: dtype matches the current
// promotion tier, shape is each axis's real-bin count plus its
// under/overflow cells, in axis order. Errors if h has promoted to
// Weighted (use Weighted instead).
func Counts(h *mdhist.Histogram) (View, error) {
	v, err := h.CountsByteView()
	if err != nil {
		return View{}, err
	}
	dtype, ok := dtypeForTier(v.Tier)
	if !ok {
		return View{}, domainError(zdict.Dict{"tier": v.Tier}, "bignum-tier counts have no fixed-width array view; read cells individually")
	}
	return View{Shape: shapeOf(h), DType: dtype, Data: v.Bytes}, nil
}

// Weighted returns h's storage as a View with dtype f64 and an extra
// leading dimension of length 2: plane 0 is the value (sum of weights)
// per cell, plane 1 is the variance (sum of squared weights). Errors if
// h is still Counts (use Counts instead).
func Weighted(h *mdhist.Histogram) (View, error) {
	if h.State() != storage.StateWeighted {
		return View{}, domainError(zdict.Dict{}, "histogram storage is counts, not weighted; use Counts instead")
	}
	shape := shapeOf(h)
	size := 1
	for _, s := range shape {
		size *= s
	}
	buf := make([]byte, 2*size*8)
	var idx int
	h.All(func(_ []int, value, _ float64) bool {
		binary.LittleEndian.PutUint64(buf[idx*8:], math.Float64bits(value))
		idx++
		return true
	})
	idx = 0
	h.All(func(_ []int, _, variance float64) bool {
		binary.LittleEndian.PutUint64(buf[(size+idx)*8:], math.Float64bits(variance))
		idx++
		return true
	})
	return View{Shape: append([]int{2}, shape...), DType: DTypeF64, Data: buf}, nil
}

// Edges returns a's bin boundaries as a flat f64 View: length n+1 for a
// real-valued axis (Regular, Circular, Variable, Integer), length n for
// Category (its values, not interval edges).
func Edges(a axis.Axis) View {
	if cat, ok := a.(*axis.Category); ok {
		values := cat.Values()
		buf := make([]byte, 8*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(float64(v)))
		}
		return View{Shape: []int{len(values)}, DType: DTypeF64, Data: buf}
	}
	n := a.Len()
	buf := make([]byte, 8*(n+1))
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(a.Bin(i).Lo))
	}
	binary.LittleEndian.PutUint64(buf[n*8:], math.Float64bits(a.Bin(n-1).Hi))
	return View{Shape: []int{n + 1}, DType: DTypeF64, Data: buf}
}

func shapeOf(h *mdhist.Histogram) []int {
	shape := make([]int, h.Dim())
	for i := range shape {
		a, _ := h.Axis(i)
		n := a.Len()
		if a.UOflow() {
			n += 2
		}
		shape[i] = n
	}
	return shape
}

func dtypeForTier(tier int) (DType, bool) {
	switch tier {
	case 0:
		return DTypeU8, true
	case 1:
		return DTypeU16, true
	case 2:
		return DTypeU32, true
	case 3:
		return DTypeU64, true
	}
	return 0, false
}

func domainError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
