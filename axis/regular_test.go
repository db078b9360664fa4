package axis

import (
	"fmt"
	"math"
	"testing"

	"github.com/torlangballe/mdhist/ztesting"
)

func TestRegularBasicIndex(t *testing.T) {
	fmt.Println("TestRegularBasicIndex")
	r := MustRegular(NewRegular(4, 1.0, 2.0, UOflow(false)))
	ztesting.Equal(t, "below lo collapses to overflow without uoflow", r.Index(0.5), r.Len())
	ztesting.Equal(t, "at lo is bin 0", r.Index(1.0), 0)
	ztesting.Equal(t, "bin boundary is bin 1", r.Index(1.25), 1)
	ztesting.Equal(t, "just under hi is last bin", r.Index(1.9999), 3)
	ztesting.Equal(t, "at hi is overflow", r.Index(2.0), 4)
	ztesting.Equal(t, "above hi is overflow", r.Index(3.0), 4)
}

func TestRegularWithUOflow(t *testing.T) {
	fmt.Println("TestRegularWithUOflow")
	r := MustRegular(NewRegular(4, 1.0, 2.0))
	ztesting.Equal(t, "uoflow defaults to true", r.UOflow(), true)
	ztesting.Equal(t, "below lo is underflow sentinel", r.Index(0.5), Underflow)
	ztesting.Equal(t, "above hi is overflow sentinel", r.Index(3.0), r.Len())
}

func TestRegularBinEdges(t *testing.T) {
	fmt.Println("TestRegularBinEdges")
	r := MustRegular(NewRegular(4, 1.0, 2.0))
	b := r.Bin(0)
	ztesting.Equal(t, "bin 0 lo", b.Lo, 1.0)
	ztesting.Equal(t, "bin 0 hi", b.Hi, 1.25)
	b = r.Bin(3)
	ztesting.Equal(t, "bin 3 lo", b.Lo, 1.75)
	ztesting.Equal(t, "bin 3 hi", b.Hi, 2.0)
}

func TestRegularInvalidBounds(t *testing.T) {
	fmt.Println("TestRegularInvalidBounds")
	_, err := NewRegular(4, 2.0, 1.0)
	ztesting.Different(t, "lo >= hi is a domain error", err, nil)
	_, err = NewRegular(0, 0.0, 1.0)
	ztesting.Different(t, "zero bins is a domain error", err, nil)
}

func TestRegularLogDomain(t *testing.T) {
	fmt.Println("TestRegularLogDomain")
	_, err := NewRegularLog(4, -1.0, 10.0)
	ztesting.Different(t, "log axis rejects non-positive lo", err, nil)

	r := MustRegular(NewRegularLog(2, 1.0, 100.0))
	ztesting.Equal(t, "log axis bin 0", r.Index(5), 0)
	ztesting.Equal(t, "log axis bin 1", r.Index(50), 1)
}

func TestRegularPowIndexBounds(t *testing.T) {
	fmt.Println("TestRegularPowIndexBounds")
	r := MustRegular(NewRegularPow(2, 1.0, 9.0, 0.5))
	ztesting.Equal(t, "pow axis hi is overflow", r.Index(9.0), r.Len())
	ztesting.Equal(t, "pow axis start is bin 0", r.Index(1.0), 0)
}

func TestRegularStringRoundTrip(t *testing.T) {
	fmt.Println("TestRegularStringRoundTrip")
	r := MustRegular(NewRegular(4, 1.0, 2.0))
	s := r.String()
	ztesting.Equal(t, "regular string form", s, "axis.Regular(n=4, lo=1, hi=2)")
	parsed, err := ParseRegular(s)
	ztesting.Equal(t, "parse succeeds", err, nil)
	ztesting.Equal(t, "round-trip equal", r.Equal(parsed), true)
}

func TestRegularPowStringRoundTrip(t *testing.T) {
	fmt.Println("TestRegularPowStringRoundTrip")
	r := MustRegular(NewRegularPow(2, 1.0, 9.0, 0.5))
	s := r.String()
	ztesting.Equal(t, "pow string form", s, "axis.RegularPow(n=2, lo=1, hi=9, pow=0.5)")
	parsed, err := ParseRegular(s)
	ztesting.Equal(t, "parse succeeds", err, nil)
	ztesting.Equal(t, "round-trip equal", r.Equal(parsed), true)
}

func TestRegularNaNIsUnderflowByDefault(t *testing.T) {
	fmt.Println("TestRegularNaNIsUnderflowByDefault")
	r := MustRegular(NewRegular(4, 1.0, 2.0))
	ztesting.Equal(t, "NaN is underflow with the default uoflow", r.Index(math.NaN()), Underflow)
}
