package storage

import (
	"fmt"
	"math"
	"testing"

	"github.com/torlangballe/mdhist/ztesting"
)

func TestCountsStartsAtU8(t *testing.T) {
	fmt.Println("TestCountsStartsAtU8")
	c := NewCounts(3)
	ztesting.Equal(t, "fresh storage tier", c.Tier(), int(tierU8))
	ztesting.Equal(t, "fresh cell value", c.Value(0), 0.0)
}

func TestCountsPromoteU8ToU16(t *testing.T) {
	fmt.Println("TestCountsPromoteU8ToU16")
	c := NewCounts(2)
	c.AddCount(0, 200)
	ztesting.Equal(t, "below max stays u8", c.Tier(), int(tierU8))
	c.AddCount(0, 200)
	ztesting.Equal(t, "overflow promotes to u16", c.Tier(), int(tierU16))
	ztesting.Equal(t, "value preserved across promotion", c.Value(0), 400.0)
	ztesting.Equal(t, "other cell untouched", c.Value(1), 0.0)
}

func TestCountsPromoteThroughAllTiers(t *testing.T) {
	fmt.Println("TestCountsPromoteThroughAllTiers")
	c := NewCounts(1)
	c.AddCount(0, math.MaxUint8)
	ztesting.Equal(t, "at u8 max", c.Tier(), int(tierU8))
	c.AddCount(0, 1)
	ztesting.Equal(t, "promoted to u16", c.Tier(), int(tierU16))
	c.AddCount(0, math.MaxUint16)
	ztesting.Equal(t, "promoted to u32", c.Tier(), int(tierU32))
	c.AddCount(0, math.MaxUint32)
	ztesting.Equal(t, "promoted to u64", c.Tier(), int(tierU64))
	c.AddCount(0, math.MaxUint64)
	ztesting.Equal(t, "promoted to bignum", c.Tier(), int(tierBig))
	ztesting.GreaterThan(t, "bignum value exceeds u64 range", c.Value(0), float64(math.MaxUint64))
}

func TestCountsVarianceEqualsValue(t *testing.T) {
	fmt.Println("TestCountsVarianceEqualsValue")
	c := NewCounts(1)
	c.AddCount(0, 5)
	ztesting.Equal(t, "poisson variance", c.Variance(0), c.Value(0))
}

func TestCountsAddInPlace(t *testing.T) {
	fmt.Println("TestCountsAddInPlace")
	a := NewCounts(2)
	a.AddCount(0, 3)
	b := NewCounts(2)
	b.AddCount(0, 4)
	b.AddCount(1, 1)
	err := a.AddInPlace(b)
	ztesting.Equal(t, "merge succeeds", err, nil)
	ztesting.Equal(t, "merged cell 0", a.Value(0), 7.0)
	ztesting.Equal(t, "merged cell 1", a.Value(1), 1.0)
}

func TestCountsAddInPlaceLengthMismatch(t *testing.T) {
	fmt.Println("TestCountsAddInPlaceLengthMismatch")
	a := NewCounts(2)
	b := NewCounts(3)
	err := a.AddInPlace(b)
	ztesting.Different(t, "length mismatch is an error", err, nil)
}

func TestCountsScaleInPlaceAlwaysFails(t *testing.T) {
	fmt.Println("TestCountsScaleInPlaceAlwaysFails")
	c := NewCounts(1)
	err := c.ScaleInPlace(2)
	ztesting.Different(t, "counts cannot scale in place", err, nil)
}

func TestCountsClone(t *testing.T) {
	fmt.Println("TestCountsClone")
	c := NewCounts(2)
	c.AddCount(0, 9)
	clone := c.Clone()
	c.AddCount(0, 1)
	ztesting.Equal(t, "clone is independent", clone.Value(0), 9.0)
	ztesting.Equal(t, "original advanced", c.Value(0), 10.0)
}

func TestCountsReset(t *testing.T) {
	fmt.Println("TestCountsReset")
	c := NewCounts(2)
	c.AddCount(0, 500) // promotes past u8
	c.Reset()
	ztesting.Equal(t, "reset returns to u8 tier", c.Tier(), int(tierU8))
	ztesting.Equal(t, "reset zeroes values", c.Value(0), 0.0)
}

func TestWeightedFromCounts(t *testing.T) {
	fmt.Println("TestWeightedFromCounts")
	c := NewCounts(2)
	c.AddCount(0, 3)
	w := NewWeightedFromCounts(c)
	ztesting.Equal(t, "promoted sumW", w.Value(0), 3.0)
	ztesting.Equal(t, "promoted sumW2", w.Variance(0), 3.0)
}

func TestWeightedAddTracksVariance(t *testing.T) {
	fmt.Println("TestWeightedAddTracksVariance")
	w := NewWeighted(1)
	w.Add(0, 2.0)
	w.Add(0, 3.0)
	ztesting.Equal(t, "sum of weights", w.Value(0), 5.0)
	ztesting.Equal(t, "sum of squared weights", w.Variance(0), 13.0)
}

func TestWeightedScaleInPlace(t *testing.T) {
	fmt.Println("TestWeightedScaleInPlace")
	w := NewWeighted(1)
	w.Add(0, 2.0)
	err := w.ScaleInPlace(3.0)
	ztesting.Equal(t, "scale succeeds", err, nil)
	ztesting.Equal(t, "value scaled linearly", w.Value(0), 6.0)
	ztesting.Equal(t, "variance scaled quadratically", w.Variance(0), 4.0*9.0)
}

func TestWeightedScaleInPlaceRejectsNegative(t *testing.T) {
	fmt.Println("TestWeightedScaleInPlaceRejectsNegative")
	w := NewWeighted(1)
	err := w.ScaleInPlace(-1)
	ztesting.Different(t, "negative factor is a domain error", err, nil)
}

func TestByteViewRoundTrip(t *testing.T) {
	fmt.Println("TestByteViewRoundTrip")
	c := NewCounts(3)
	c.AddCount(0, 1)
	c.AddCount(1, 500) // forces u16
	c.AddCount(2, 2)
	v := c.ByteView()
	restored := FromByteView(3, v)
	ztesting.Equal(t, "round-trip cell 0", restored.Value(0), c.Value(0))
	ztesting.Equal(t, "round-trip cell 1", restored.Value(1), c.Value(1))
	ztesting.Equal(t, "round-trip cell 2", restored.Value(2), c.Value(2))
}

func TestByteViewBignumRoundTrip(t *testing.T) {
	fmt.Println("TestByteViewBignumRoundTrip")
	c := NewCounts(1)
	c.AddCount(0, math.MaxUint64)
	c.AddCount(0, math.MaxUint64)
	v := c.ByteView()
	restored := FromByteView(1, v)
	ztesting.Equal(t, "bignum tier preserved", restored.Tier(), c.Tier())
	ztesting.Equal(t, "bignum round-trip value", restored.Value(0), c.Value(0))
}
