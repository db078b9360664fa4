package layout

import (
	"fmt"
	"testing"

	"github.com/torlangballe/mdhist/ztesting"
)

func TestLayoutShapeAndSize(t *testing.T) {
	fmt.Println("TestLayoutShapeAndSize")
	l, err := New([]Dim{{N: 4, UOflow: true}, {N: 3, UOflow: false}})
	ztesting.Equal(t, "construction succeeds", err, nil)
	ztesting.Equal(t, "dim 0 shape", l.Dim(0).Shape(), 6)
	ztesting.Equal(t, "dim 1 shape", l.Dim(1).Shape(), 3)
	ztesting.Equal(t, "total size", l.Size(), 18)
}

func TestLayoutZeroDimIsOneCell(t *testing.T) {
	fmt.Println("TestLayoutZeroDimIsOneCell")
	l, err := New(nil)
	ztesting.Equal(t, "zero-dim layout is valid", err, nil)
	ztesting.Equal(t, "zero-dim layout has one cell", l.Size(), 1)
	pos, ok := l.ToStoragePos(nil)
	ztesting.Equal(t, "zero-dim index is ok", ok, true)
	ztesting.Equal(t, "zero-dim position is 0", pos, 0)
}

func TestLayoutRejectsTooManyDims(t *testing.T) {
	fmt.Println("TestLayoutRejectsTooManyDims")
	dims := make([]Dim, MaxDims+1)
	for i := range dims {
		dims[i] = Dim{N: 2}
	}
	_, err := New(dims)
	ztesting.Different(t, "too many axes is an error", err, nil)
}

func TestToStoragePosWithUOflow(t *testing.T) {
	fmt.Println("TestToStoragePosWithUOflow")
	l, _ := New([]Dim{{N: 4, UOflow: true}})
	pos, ok := l.ToStoragePos([]int{-1})
	ztesting.Equal(t, "underflow maps to slot 0", ok, true)
	ztesting.Equal(t, "underflow pos", pos, 0)
	pos, ok = l.ToStoragePos([]int{0})
	ztesting.Equal(t, "first real bin maps to slot 1", pos, 1)
	ztesting.Equal(t, "real bin ok", ok, true)
	pos, ok = l.ToStoragePos([]int{4})
	ztesting.Equal(t, "overflow maps to last slot", pos, 5)
	ztesting.Equal(t, "overflow ok", ok, true)
}

func TestToStoragePosWithoutUOflowDrops(t *testing.T) {
	fmt.Println("TestToStoragePosWithoutUOflowDrops")
	l, _ := New([]Dim{{N: 4, UOflow: false}})
	_, ok := l.ToStoragePos([]int{4})
	ztesting.Equal(t, "out-of-range index is a silent drop", ok, false)
	_, ok = l.ToStoragePos([]int{3})
	ztesting.Equal(t, "in-range index is fine", ok, true)
}

func TestToStoragePosRejectsWrongArity(t *testing.T) {
	fmt.Println("TestToStoragePosRejectsWrongArity")
	l, _ := New([]Dim{{N: 4, UOflow: false}})
	_, ok := l.ToStoragePos([]int{1, 2})
	ztesting.Equal(t, "wrong arity is not ok", ok, false)
}

func TestFromStoragePosRoundTrip(t *testing.T) {
	fmt.Println("TestFromStoragePosRoundTrip")
	l, _ := New([]Dim{{N: 4, UOflow: true}, {N: 3, UOflow: false}})
	for pos := 0; pos < l.Size(); pos++ {
		idx := l.FromStoragePos(pos)
		back, ok := l.ToStoragePos(idx)
		ztesting.Equal(t, "round-trip ok", ok, true)
		ztesting.Equal(t, "round-trip position", back, pos)
	}
}

func TestWalkVisitsEveryPositionOnce(t *testing.T) {
	fmt.Println("TestWalkVisitsEveryPositionOnce")
	l, _ := New([]Dim{{N: 2, UOflow: true}, {N: 2, UOflow: false}})
	seen := make(map[int]bool)
	count := 0
	l.Walk(func(pos int, idx []int) bool {
		seen[pos] = true
		count++
		return true
	})
	ztesting.Equal(t, "visits all positions", count, l.Size())
	ztesting.Equal(t, "all positions distinct", len(seen), l.Size())
}

func TestWalkLastAxisFastest(t *testing.T) {
	fmt.Println("TestWalkLastAxisFastest")
	l, _ := New([]Dim{{N: 2, UOflow: false}, {N: 3, UOflow: false}})
	var firstAxis []int
	l.Walk(func(pos int, idx []int) bool {
		if pos < 3 {
			firstAxis = append(firstAxis, idx[0])
		}
		return true
	})
	ztesting.Equal(t, "first 3 positions share axis-0 index", firstAxis[0], firstAxis[1])
	ztesting.Equal(t, "first 3 positions share axis-0 index (2)", firstAxis[1], firstAxis[2])
}

func TestWalkStopsEarly(t *testing.T) {
	fmt.Println("TestWalkStopsEarly")
	l, _ := New([]Dim{{N: 4, UOflow: false}})
	count := 0
	l.Walk(func(pos int, idx []int) bool {
		count++
		return count < 2
	})
	ztesting.Equal(t, "stopped after 2 visits", count, 2)
}

func TestReduceToMarginalizesOutAxis(t *testing.T) {
	fmt.Println("TestReduceToMarginalizesOutAxis")
	l, _ := New([]Dim{{N: 2, UOflow: false}, {N: 3, UOflow: false}})
	values := make([]float64, l.Size())
	for i := range values {
		values[i] = float64(i + 1)
	}
	reduced, rv, _ := l.ReduceTo([]int{0}, func(pos int) float64 { return values[pos] }, func(pos int) float64 { return values[pos] })
	ztesting.Equal(t, "reduced dims", reduced.Dims(), 1)
	ztesting.Equal(t, "reduced size", reduced.Size(), 2)
	ztesting.Equal(t, "row 0 sum", rv[0], 1.0+2.0+3.0)
	ztesting.Equal(t, "row 1 sum", rv[1], 4.0+5.0+6.0)
}
