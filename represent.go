package mdhist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
)

// String renders h as a reproducible textual form: its axes, storage
// state, and every cell's exact value (and, for Weighted storage, its
// variance), in storage order. Parse reverses it exactly, including
// bignum-tier Counts cells that float64 cannot round-trip.
//
//	mdhist.Histogram(axes=[axis.Regular(n=4, lo=1, hi=2)], state=counts, cells=[0, 1, 0, 1, 0, 0])
func (h *Histogram) String() string {
	axes := make([]string, len(h.axes))
	for i, a := range h.axes {
		axes[i] = a.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "mdhist.Histogram(axes=[%s], state=%s, cells=[", strings.Join(axes, ", "), h.storage.State())
	n := h.lay.Size()
	for pos := 0; pos < n; pos++ {
		if pos > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cellString(h.storage, pos))
	}
	b.WriteString("]")
	if w, ok := h.storage.(*storage.Weighted); ok {
		b.WriteString(", variances=[")
		for pos := 0; pos < n; pos++ {
			if pos > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s", strconv.FormatFloat(w.Variance(pos), 'g', -1, 64))
		}
		b.WriteString("]")
	}
	b.WriteString(")")
	return b.String()
}

func cellString(s storage.Storage, pos int) string {
	if c, ok := s.(*storage.Counts); ok {
		return c.CellString(pos)
	}
	return strconv.FormatFloat(s.Value(pos), 'g', -1, 64)
}

var histogramRegex = regexp.MustCompile(`^mdhist\.Histogram\(axes=\[(.*)\], state=(counts|weighted), cells=\[(.*?)\](?:, variances=\[(.*)\])?\)$`)

// Parse reverses String, reconstructing a histogram with the same axes,
// storage state, and cell contents.
func Parse(s string) (*Histogram, error) {
	m := histogramRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, domainError(zdict.Dict{"text": s}, "not a recognized histogram representation:", s)
	}
	axesList := splitTopLevel(m[1])
	axes := make([]axis.Axis, len(axesList))
	for i, as := range axesList {
		a, err := axis.Parse(strings.TrimSpace(as))
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	h, err := New(axes...)
	if err != nil {
		return nil, err
	}
	cells := splitTopLevel(m[3])
	if err := populateCells(h, m[2], cells); err != nil {
		return nil, err
	}
	if m[2] == "weighted" && m[4] != "" {
		variances := splitTopLevel(m[4])
		w := h.storage.(*storage.Weighted)
		if len(variances) != len(cells) {
			return nil, shapeError(zdict.Dict{"cells": len(cells), "variances": len(variances)}, "cell/variance count mismatch")
		}
		for i, vs := range variances {
			v, err := strconv.ParseFloat(strings.TrimSpace(vs), 64)
			if err != nil {
				return nil, domainError(zdict.Dict{"value": vs}, "invalid variance:", vs)
			}
			w.SetCell(i, w.Value(i), v)
		}
	}
	return h, nil
}

func populateCells(h *Histogram, state string, cells []string) error {
	if len(cells) != h.lay.Size() {
		return shapeError(zdict.Dict{"cells": len(cells), "want": h.lay.Size()}, "cell count does not match axes")
	}
	if state == "weighted" {
		h.storage = storage.NewWeighted(h.lay.Size())
	}
	for i, cs := range cells {
		cs = strings.TrimSpace(cs)
		switch st := h.storage.(type) {
		case *storage.Counts:
			if err := st.SetCellFromString(i, cs); err != nil {
				return err
			}
		case *storage.Weighted:
			v, err := strconv.ParseFloat(cs, 64)
			if err != nil {
				return domainError(zdict.Dict{"value": cs}, "invalid cell value:", cs)
			}
			st.SetCell(i, v, v)
		}
	}
	return nil
}

// splitTopLevel splits s on commas that are not nested inside any
// bracket or parenthesis, so an axis list like "axis.Regular(n=4,
// lo=1, hi=2), axis.Variable(edges=[0, 1])" splits into exactly two
// elements instead of fragmenting on the inner commas.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
