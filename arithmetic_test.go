package mdhist

import (
	"fmt"
	"math"
	"testing"

	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/ztesting"
)

func TestAddRequiresIdenticalAxes(t *testing.T) {
	fmt.Println("TestAddRequiresIdenticalAxes")
	h := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	g := MustNew(axis.MustRegular(axis.NewRegular(5, 1.0, 2.0)))
	_, err := h.Add(g)
	ztesting.Different(t, "mismatched axes is a shape error", err, nil)
}

func TestAddIsAdditive(t *testing.T) {
	fmt.Println("TestAddIsAdditive")
	h := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	ztesting.Equal(t, "fill h", h.Fill(1.1), nil)
	ztesting.Equal(t, "fill h again", h.Fill(1.1), nil)
	g := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	ztesting.Equal(t, "fill g", g.Fill(1.1), nil)
	sum, err := h.Add(g)
	ztesting.Equal(t, "add succeeds", err, nil)
	hv, _ := h.Value(0)
	gv, _ := g.Value(0)
	sv, _ := sum.Value(0)
	ztesting.Equal(t, "additivity", sv, hv+gv)
}

func TestScalingAsymmetry(t *testing.T) {
	fmt.Println("TestScalingAsymmetry")
	h := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	ztesting.Equal(t, "fill h", h.Fill(1.1), nil)
	ztesting.Equal(t, "fill h again", h.Fill(1.1), nil)
	ztesting.Equal(t, "fill h a third time", h.Fill(1.1), nil)

	hPlusH, err := h.Add(h)
	ztesting.Equal(t, "h+h succeeds", err, nil)
	twoH := h.Copy()
	ztesting.Equal(t, "2*h succeeds", twoH.ScaleInPlace(2), nil)

	hv, _ := h.Value(0)
	hpv, _ := hPlusH.Value(0)
	hpvr, _ := hPlusH.Variance(0)
	tv, _ := twoH.Value(0)
	tvr, _ := twoH.Variance(0)

	ztesting.Equal(t, "h+h and 2h have the same value", hpv, tv)
	ztesting.Equal(t, "(h+h).variance == 2*value(h)", hpvr, 2*hv)
	ztesting.Equal(t, "(2h).variance == 4*value(h)", tvr, 4*hv)
	ztesting.Different(t, "h+h and 2h differ in variance", hpvr, tvr)
}

func TestScaleInPlaceRejectsNegativeFactor(t *testing.T) {
	fmt.Println("TestScaleInPlaceRejectsNegativeFactor")
	h := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	err := h.ScaleInPlace(-1)
	ztesting.Different(t, "negative factor is a domain error", err, nil)
}

func TestScaleByOneIsIdentityOnCounts(t *testing.T) {
	fmt.Println("TestScaleByOneIsIdentityOnCounts")
	h := MustNew(axis.MustRegular(axis.NewRegular(4, 1.0, 2.0)))
	ztesting.Equal(t, "fill h", h.Fill(1.1), nil)
	err := h.ScaleInPlace(1)
	ztesting.Equal(t, "scale by one succeeds", err, nil)
	ztesting.Equal(t, "storage stays counts", h.State(), storage.StateCounts)
}

func TestArbitraryPrecisionPromotion(t *testing.T) {
	fmt.Println("TestArbitraryPrecisionPromotion")
	h := MustNew(
		axis.MustInteger(axis.NewInteger(0, 3, axis.UOflow(false))),
		axis.MustInteger(axis.NewInteger(0, 2, axis.UOflow(false))),
	)
	ztesting.Equal(t, "seed fill", h.Fill(0, 0), nil)
	for i := 0; i < 80; i++ {
		ztesting.Equal(t, "h += h", h.AddInPlace(h), nil)
	}
	v, err := h.Value(0, 0)
	ztesting.Equal(t, "value read succeeds", err, nil)
	ztesting.Equal(t, "value(0,0) == 2^80 exactly", v, math.Pow(2, 80))
}
