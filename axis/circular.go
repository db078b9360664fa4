package axis

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/torlangballe/mdhist/zdict"
)

// Circular is n bins covering [phase, phase+2π) modulo 2π. It never has
// under/overflow bins; passing the UOflow option is a domain error.
type Circular struct {
	n     int
	phase float64
	label string
}

// NewCircular creates a circular axis of n bins starting at phase
// (radians). phase is a required argument; there is no default value.
func NewCircular(n int, phase float64, opts ...Option) (*Circular, error) {
	if n < 1 {
		return nil, domainError("circular", zdict.Dict{"n": n}, "circular axis needs at least 1 bin, got", n)
	}
	o := applyOptions(false, opts...)
	if o.uoflowSet {
		return nil, domainError("circular", zdict.Dict{}, "circular axis does not support uoflow")
	}
	return &Circular{n: n, phase: phase, label: o.label}, nil
}

func MustCircular(a *Circular, err error) *Circular {
	if err != nil {
		panic(err)
	}
	return a
}

func (c *Circular) Kind() Kind    { return KindCircular }
func (c *Circular) Len() int      { return c.n }
func (c *Circular) Label() string { return c.label }
func (c *Circular) UOflow() bool  { return false }
func (c *Circular) Phase() float64 { return c.phase }

func (c *Circular) Index(x float64) int {
	twoPi := 2 * math.Pi
	t := (x - c.phase) * float64(c.n) / twoPi
	k := int(math.Floor(t))
	k %= c.n
	if k < 0 {
		k += c.n
	}
	return k
}

func (c *Circular) edge(i int) float64 {
	return c.phase + float64(i)*2*math.Pi/float64(c.n)
}

func (c *Circular) Bin(i int) Bin {
	return Bin{Lo: c.edge(i), Hi: c.edge(i + 1)}
}

func (c *Circular) Equal(other Axis) bool {
	o, ok := other.(*Circular)
	if !ok {
		return false
	}
	return c.n == o.n && c.phase == o.phase && c.label == o.label
}

func (c *Circular) String() string {
	str := fmt.Sprintf("axis.Circular(n=%d, phase=%s", c.n, formatFloat(c.phase))
	if c.label != "" {
		str += fmt.Sprintf(", label=%q", c.label)
	}
	return str + ")"
}

var circularRegex = regexp.MustCompile(`^axis\.Circular\(n=(\d+), phase=([^,)]+)(?:, label="([^"]*)")?\)$`)

// ParseCircular parses the textual form produced by Circular.String.
func ParseCircular(s string) (*Circular, error) {
	m := circularRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError("circular", zdict.Dict{"text": s}, "not a valid circular axis representation:", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, domainError("circular", zdict.Dict{"text": s}, "bad n:", err)
	}
	phase, _ := strconv.ParseFloat(m[2], 64)
	var opts []Option
	if m[3] != "" {
		opts = append(opts, Label(m[3]))
	}
	return NewCircular(n, phase, opts...)
}
