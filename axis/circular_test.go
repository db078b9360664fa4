package axis

import (
	"fmt"
	"math"
	"testing"

	"github.com/torlangballe/mdhist/ztesting"
)

func TestCircularWraparound(t *testing.T) {
	fmt.Println("TestCircularWraparound")
	c := MustCircular(NewCircular(4, 1.0))
	d := math.Pi / 2
	ztesting.Equal(t, "phase itself is bin 0", c.Index(1.0), 0)
	ztesting.Equal(t, "one step is bin 1", c.Index(1.0+d), 1)
	ztesting.Equal(t, "two steps is bin 2", c.Index(1.0+2*d), 2)
	ztesting.Equal(t, "three steps is bin 3", c.Index(1.0+3*d), 3)
	ztesting.Equal(t, "full turn wraps to bin 0", c.Index(1.0+4*d), 0)
	ztesting.Equal(t, "before phase wraps to last bin", c.Index(1.0-d), 3)
}

func TestCircularRejectsUOflowOption(t *testing.T) {
	fmt.Println("TestCircularRejectsUOflowOption")
	_, err := NewCircular(4, 0, UOflow(true))
	ztesting.Different(t, "uoflow option is a domain error", err, nil)
	_, err = NewCircular(4, 0, UOflow(false))
	ztesting.Different(t, "even explicit false is rejected", err, nil)
}

func TestCircularNeverUnderOverflows(t *testing.T) {
	fmt.Println("TestCircularNeverUnderOverflows")
	c := MustCircular(NewCircular(4, 0))
	ztesting.Equal(t, "no uoflow reported", c.UOflow(), false)
	ztesting.Equal(t, "large negative angle still in range", c.Index(-1000*math.Pi) >= 0, true)
}

func TestCircularStringRoundTrip(t *testing.T) {
	fmt.Println("TestCircularStringRoundTrip")
	c := MustCircular(NewCircular(4, 1.0))
	s := c.String()
	ztesting.Equal(t, "circular string form", s, "axis.Circular(n=4, phase=1)")
	parsed, err := ParseCircular(s)
	ztesting.Equal(t, "parse succeeds", err, nil)
	ztesting.Equal(t, "round-trip equal", c.Equal(parsed), true)
}
