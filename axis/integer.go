package axis

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/torlangballe/mdhist/zdict"
)

const (
	integerUnderSentinel = -2147483647 // -2^31+1
	integerOverSentinel  = 2147483647  // 2^31-1
)

// Integer is bins [lo, lo+1), ..., [hi-1, hi) over integer boundaries.
type Integer struct {
	lo, hi int
	label  string
	uoflow bool
}

// NewInteger creates an integer axis over [lo, hi), one bin per integer.
func NewInteger(lo, hi int, opts ...Option) (*Integer, error) {
	if !(lo < hi) {
		return nil, domainError("integer", zdict.Dict{"lo": lo, "hi": hi}, "integer axis requires lo < hi")
	}
	o := applyOptions(true, opts...)
	return &Integer{lo: lo, hi: hi, label: o.label, uoflow: o.uoflow}, nil
}

func MustInteger(a *Integer, err error) *Integer {
	if err != nil {
		panic(err)
	}
	return a
}

func (ix *Integer) Kind() Kind    { return KindInteger }
func (ix *Integer) Len() int      { return ix.hi - ix.lo }
func (ix *Integer) Label() string { return ix.label }
func (ix *Integer) UOflow() bool  { return ix.uoflow }

func (ix *Integer) Index(x float64) int {
	if math.IsNaN(x) {
		if ix.uoflow {
			return Underflow
		}
		return ix.Len()
	}
	k := int(math.Floor(x)) - ix.lo
	return clipIndex(k, ix.Len(), ix.uoflow)
}

func (ix *Integer) Bin(i int) Bin {
	n := ix.Len()
	if i == Underflow {
		return Bin{Lo: integerUnderSentinel, Hi: float64(ix.lo)}
	}
	if i == n {
		return Bin{Lo: float64(ix.hi), Hi: integerOverSentinel}
	}
	return Bin{Lo: float64(ix.lo + i), Hi: float64(ix.lo + i + 1)}
}

func (ix *Integer) Equal(other Axis) bool {
	o, ok := other.(*Integer)
	if !ok {
		return false
	}
	return ix.lo == o.lo && ix.hi == o.hi && ix.label == o.label && ix.uoflow == o.uoflow
}

func (ix *Integer) String() string {
	str := fmt.Sprintf("axis.Integer(lo=%d, hi=%d", ix.lo, ix.hi)
	str += formatCommonOptions(ix.label, ix.uoflow, true)
	return str + ")"
}

var integerRegex = regexp.MustCompile(`^axis\.Integer\(lo=(-?\d+), hi=(-?\d+)(?:, label="([^"]*)")?(?:, uoflow=(true|false))?\)$`)

// ParseInteger parses the textual form produced by Integer.String.
func ParseInteger(s string) (*Integer, error) {
	m := integerRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError("integer", zdict.Dict{"text": s}, "not a valid integer axis representation:", s)
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	var opts []Option
	if m[3] != "" {
		opts = append(opts, Label(m[3]))
	}
	if m[4] != "" {
		opts = append(opts, UOflow(m[4] == "true"))
	}
	return NewInteger(lo, hi, opts...)
}
