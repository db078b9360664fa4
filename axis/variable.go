package axis

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/torlangballe/mdhist/zdict"
)

// Variable is bins with explicit, strictly monotonic edges. At least two
// edges (one bin) are required. Descending input is accepted and sorted
// to ascending internally.
type Variable struct {
	edges  []float64
	label  string
	uoflow bool
}

// NewVariable creates a variable-edge axis. edges must have at least 2
// strictly monotonic (ascending or descending) entries.
func NewVariable(edges []float64, opts ...Option) (*Variable, error) {
	if len(edges) < 2 {
		return nil, domainError("variable", zdict.Dict{"edges": edges}, "variable axis needs at least 2 edges")
	}
	sorted := slices.Clone(edges)
	if sorted[1] < sorted[0] {
		slices.Reverse(sorted)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] <= sorted[i-1] {
			return nil, domainError("variable", zdict.Dict{"edges": edges}, "variable axis edges are not strictly monotonic")
		}
	}
	o := applyOptions(true, opts...)
	return &Variable{edges: sorted, label: o.label, uoflow: o.uoflow}, nil
}

func MustVariable(a *Variable, err error) *Variable {
	if err != nil {
		panic(err)
	}
	return a
}

func (v *Variable) Kind() Kind    { return KindVariable }
func (v *Variable) Len() int      { return len(v.edges) - 1 }
func (v *Variable) Label() string { return v.label }
func (v *Variable) UOflow() bool  { return v.uoflow }

func (v *Variable) Index(x float64) int {
	if math.IsNaN(x) {
		if v.uoflow {
			return Underflow
		}
		return v.Len()
	}
	n := v.Len()
	pos := sort.Search(len(v.edges), func(i int) bool { return v.edges[i] > x })
	k := pos - 1
	return clipIndex(k, n, v.uoflow)
}

func (v *Variable) Bin(i int) Bin {
	n := v.Len()
	if i == Underflow {
		return Bin{Lo: math.Inf(-1), Hi: v.edges[0]}
	}
	if i == n {
		return Bin{Lo: v.edges[n], Hi: math.Inf(1)}
	}
	return Bin{Lo: v.edges[i], Hi: v.edges[i+1]}
}

func (v *Variable) Equal(other Axis) bool {
	o, ok := other.(*Variable)
	if !ok {
		return false
	}
	return slices.Equal(v.edges, o.edges) && v.label == o.label && v.uoflow == o.uoflow
}

func (v *Variable) String() string {
	parts := make([]string, len(v.edges))
	for i, e := range v.edges {
		parts[i] = formatFloat(e)
	}
	str := fmt.Sprintf("axis.Variable(edges=[%s]", strings.Join(parts, ", "))
	str += formatCommonOptions(v.label, v.uoflow, true)
	return str + ")"
}

var variableRegex = regexp.MustCompile(`^axis\.Variable\(edges=\[([^\]]*)\](?:, label="([^"]*)")?(?:, uoflow=(true|false))?\)$`)

// ParseVariable parses the textual form produced by Variable.String.
func ParseVariable(s string) (*Variable, error) {
	m := variableRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError("variable", zdict.Dict{"text": s}, "not a valid variable axis representation:", s)
	}
	var edges []float64
	for _, p := range strings.Split(m[1], ", ") {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, domainError("variable", zdict.Dict{"text": s}, "bad edge:", err)
		}
		edges = append(edges, f)
	}
	var opts []Option
	if m[2] != "" {
		opts = append(opts, Label(m[2]))
	}
	if m[3] != "" {
		opts = append(opts, UOflow(m[3] == "true"))
	}
	return NewVariable(edges, opts...)
}
