package axis

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/torlangballe/mdhist/zdict"
)

// Regular is n bins equally spaced in a (possibly transformed) coordinate
// between lo and hi. See NewRegular, NewRegularLog, NewRegularSqrt,
// NewRegularCos and NewRegularPow.
type Regular struct {
	n      int
	lo, hi float64
	t      transform
	label  string
	uoflow bool
	a, b   float64 // precomputed: a = n/(t(hi)-t(lo)), b = t(lo)
}

func newRegular(kind TransformKind, pow float64, n int, lo, hi float64, opts ...Option) (*Regular, error) {
	if n < 1 {
		return nil, domainError("regular", zdict.Dict{"n": n}, "regular axis needs at least 1 bin, got", n)
	}
	if !(lo < hi) {
		return nil, domainError("regular", zdict.Dict{"lo": lo, "hi": hi}, "regular axis requires lo < hi")
	}
	t := transform{kind: kind, pow: pow}
	tlo, okLo := t.forward(lo)
	thi, okHi := t.forward(hi)
	if !okLo || !okHi || tlo == thi {
		return nil, domainError("regular", zdict.Dict{"lo": lo, "hi": hi, "transform": kind.String()},
			"bounds are not in the transform's domain, or map to the same point")
	}
	o := applyOptions(true, opts...)
	r := &Regular{
		n:      n,
		lo:     lo,
		hi:     hi,
		t:      t,
		label:  o.label,
		uoflow: o.uoflow,
		a:      float64(n) / (thi - tlo),
		b:      tlo,
	}
	return r, nil
}

// NewRegular creates a linearly-spaced regular axis of n bins in [lo, hi).
func NewRegular(n int, lo, hi float64, opts ...Option) (*Regular, error) {
	return newRegular(TransformIdentity, 0, n, lo, hi, opts...)
}

// NewRegularLog creates a logarithmically-spaced regular axis. lo must be > 0.
func NewRegularLog(n int, lo, hi float64, opts ...Option) (*Regular, error) {
	return newRegular(TransformLog, 0, n, lo, hi, opts...)
}

// NewRegularSqrt creates a sqrt-spaced regular axis. lo must be >= 0.
func NewRegularSqrt(n int, lo, hi float64, opts ...Option) (*Regular, error) {
	return newRegular(TransformSqrt, 0, n, lo, hi, opts...)
}

// NewRegularCos creates a cosine-spaced regular axis.
func NewRegularCos(n int, lo, hi float64, opts ...Option) (*Regular, error) {
	return newRegular(TransformCos, 0, n, lo, hi, opts...)
}

// NewRegularPow creates a power-law-spaced regular axis with the given
// exponent. An exponent is mandatory; there is no default.
func NewRegularPow(n int, lo, hi, exponent float64, opts ...Option) (*Regular, error) {
	return newRegular(TransformPow, exponent, n, lo, hi, opts...)
}

func MustRegular(a *Regular, err error) *Regular {
	if err != nil {
		panic(err)
	}
	return a
}

func (r *Regular) Kind() Kind     { return KindRegular }
func (r *Regular) Len() int       { return r.n }
func (r *Regular) Label() string  { return r.label }
func (r *Regular) UOflow() bool   { return r.uoflow }
func (r *Regular) TransformKind() TransformKind { return r.t.kind }
func (r *Regular) Exponent() float64            { return r.t.pow }

func (r *Regular) Index(x float64) int {
	t, ok := r.t.forward(x)
	if !ok {
		if r.uoflow {
			return Underflow
		}
		return r.n
	}
	scaled := (t - r.b) * r.a
	k, isUnder, isOver := floorToIndex(scaled)
	if isUnder {
		k = -1
	} else if isOver {
		k = r.n
	}
	return clipIndex(k, r.n, r.uoflow)
}

func (r *Regular) edge(i int) float64 {
	return r.t.inverse(r.b + float64(i)/r.a)
}

func (r *Regular) Bin(i int) Bin {
	if i == Underflow {
		return Bin{Lo: math.Inf(-1), Hi: r.edge(0)}
	}
	if i == r.n {
		return Bin{Lo: r.edge(r.n), Hi: math.Inf(1)}
	}
	return Bin{Lo: r.edge(i), Hi: r.edge(i + 1)}
}

func (r *Regular) Equal(other Axis) bool {
	o, ok := other.(*Regular)
	if !ok {
		return false
	}
	return r.n == o.n && r.lo == o.lo && r.hi == o.hi && r.t.kind == o.t.kind &&
		r.t.pow == o.t.pow && r.label == o.label && r.uoflow == o.uoflow
}

func (r *Regular) String() string {
	name := "axis.Regular"
	extra := ""
	switch r.t.kind {
	case TransformLog:
		name = "axis.RegularLog"
	case TransformSqrt:
		name = "axis.RegularSqrt"
	case TransformCos:
		name = "axis.RegularCos"
	case TransformPow:
		name = "axis.RegularPow"
		extra = fmt.Sprintf(", pow=%s", formatFloat(r.t.pow))
	}
	str := fmt.Sprintf("%s(n=%d, lo=%s, hi=%s%s", name, r.n, formatFloat(r.lo), formatFloat(r.hi), extra)
	str += formatCommonOptions(r.label, r.uoflow, true)
	return str + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatCommonOptions(label string, uoflow, defaultUOflow bool) string {
	str := ""
	if label != "" {
		str += fmt.Sprintf(", label=%q", label)
	}
	if uoflow != defaultUOflow {
		str += fmt.Sprintf(", uoflow=%t", uoflow)
	}
	return str
}

var regularRegex = regexp.MustCompile(`^axis\.Regular(Log|Sqrt|Cos|Pow)?\(n=(\d+), lo=([^,)]+), hi=([^,)]+)(?:, pow=([^,)]+))?(?:, label="([^"]*)")?(?:, uoflow=(true|false))?\)$`)

// ParseRegular parses the textual form produced by Regular.String.
func ParseRegular(s string) (*Regular, error) {
	m := regularRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError("regular", zdict.Dict{"text": s}, "not a valid regular axis representation:", s)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, domainError("regular", zdict.Dict{"text": s}, "bad n:", err)
	}
	lo, _ := strconv.ParseFloat(m[3], 64)
	hi, _ := strconv.ParseFloat(m[4], 64)
	var opts []Option
	if m[6] != "" {
		opts = append(opts, Label(m[6]))
	}
	if m[7] != "" {
		opts = append(opts, UOflow(m[7] == "true"))
	}
	switch m[1] {
	case "Log":
		return NewRegularLog(n, lo, hi, opts...)
	case "Sqrt":
		return NewRegularSqrt(n, lo, hi, opts...)
	case "Cos":
		return NewRegularCos(n, lo, hi, opts...)
	case "Pow":
		pow, _ := strconv.ParseFloat(m[5], 64)
		return NewRegularPow(n, lo, hi, pow, opts...)
	}
	return NewRegular(n, lo, hi, opts...)
}
