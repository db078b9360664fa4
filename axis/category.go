package axis

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/torlangballe/mdhist/zdict"
)

// Category is a fixed set of distinct discrete values, each its own bin
// in declaration order. It never has under/overflow bins; passing the
// UOflow option is a domain error. A sample that isn't in the set maps to
// Len() (the conceptual overflow slot), which the fill path silently
// drops since UOflow is always false here.
type Category struct {
	values []int64
	label  string
}

// NewCategory creates a category axis over the given distinct integer
// values, in the order given.
func NewCategory(values []int64, opts ...Option) (*Category, error) {
	if len(values) < 1 {
		return nil, domainError("category", zdict.Dict{}, "category axis needs at least 1 value")
	}
	seen := make(map[int64]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return nil, domainError("category", zdict.Dict{"value": v}, "category axis values must be distinct")
		}
		seen[v] = true
	}
	o := applyOptions(false, opts...)
	if o.uoflowSet {
		return nil, domainError("category", zdict.Dict{}, "category axis does not support uoflow")
	}
	return &Category{values: slices.Clone(values), label: o.label}, nil
}

func MustCategory(a *Category, err error) *Category {
	if err != nil {
		panic(err)
	}
	return a
}

func (c *Category) Kind() Kind    { return KindCategory }
func (c *Category) Len() int      { return len(c.values) }
func (c *Category) Label() string { return c.label }
func (c *Category) UOflow() bool  { return false }
func (c *Category) Values() []int64 { return slices.Clone(c.values) }

func (c *Category) Index(x float64) int {
	v := int64(x)
	for i, cv := range c.values {
		if cv == v {
			return i
		}
	}
	return len(c.values)
}

func (c *Category) Bin(i int) Bin {
	if i < 0 || i >= len(c.values) {
		return Bin{}
	}
	v := float64(c.values[i])
	return Bin{Lo: v, Hi: v}
}

func (c *Category) Equal(other Axis) bool {
	o, ok := other.(*Category)
	if !ok {
		return false
	}
	return slices.Equal(c.values, o.values) && c.label == o.label
}

func (c *Category) String() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	str := fmt.Sprintf("axis.Category(values=[%s]", strings.Join(parts, ", "))
	if c.label != "" {
		str += fmt.Sprintf(", label=%q", c.label)
	}
	return str + ")"
}

var categoryRegex = regexp.MustCompile(`^axis\.Category\(values=\[([^\]]*)\](?:, label="([^"]*)")?\)$`)

// ParseCategory parses the textual form produced by Category.String.
func ParseCategory(s string) (*Category, error) {
	m := categoryRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError("category", zdict.Dict{"text": s}, "not a valid category axis representation:", s)
	}
	var values []int64
	for _, p := range strings.Split(m[1], ", ") {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, domainError("category", zdict.Dict{"text": s}, "bad value:", err)
		}
		values = append(values, v)
	}
	var opts []Option
	if m[2] != "" {
		opts = append(opts, Label(m[2]))
	}
	return NewCategory(values, opts...)
}
