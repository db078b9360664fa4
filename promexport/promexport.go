// Package promexport adapts a one-dimensional mdhist.Histogram into a
// prometheus.Collector, so a Regular, Variable or Integer axis histogram
// can be scraped the same way any other Prometheus histogram metric is.
package promexport

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/torlangballe/mdhist"
	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zerrors"
	"github.com/torlangballe/mdhist/zlog"
)

// Collector reports a single mdhist.Histogram's bucket counts as a
// Prometheus histogram metric. Only a 1-D histogram over a Regular,
// Variable or Integer axis can be exported this way: Circular has no
// linear upper bound and Category's values have no ordering Prometheus's
// "le" (less-or-equal) bucket scheme can use.
type Collector struct {
	h    *mdhist.Histogram
	desc *prometheus.Desc
}

// New wraps h for export under name/help. constLabels lets the caller
// attach constant label pairs (e.g. which histogram instance this is, in
// a registry of many); pass nil for an unlabeled metric.
func New(h *mdhist.Histogram, name, help string, constLabels prometheus.Labels) (*Collector, error) {
	a, err := h.SoleAxis()
	if err != nil {
		return nil, err
	}
	switch a.Kind() {
	case axis.KindRegular, axis.KindVariable, axis.KindInteger:
	default:
		return nil, domainError(zdict.Dict{"kind": a.Kind().String()},
			"promexport only supports Regular, Variable or Integer axes, got", a.Kind().String())
	}
	return &Collector{
		h:    h,
		desc: prometheus.NewDesc(name, help, nil, constLabels),
	}, nil
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect builds a prometheus const histogram from h's current cell
// values: each real bin's upper edge becomes an "le" bucket bound, with
// cumulative counts, and under/overflow fold into the -Inf/+Inf tails
// Prometheus's bucket scheme already expects. The observation sum is
// estimated as Σ(bin midpoint × bin count) since mdhist only retains
// per-bin aggregates, not individual sample values; under/overflow cells
// contribute their real edge (the only finite bound they have) to this
// estimate rather than ±Inf, which would make the sum meaningless.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	a, err := c.h.SoleAxis()
	if err != nil {
		zlog.Error(err)
		return
	}
	n := a.Len()
	buckets := make(map[float64]uint64, n)
	var cumulative uint64
	var sum float64
	var total uint64

	if a.UOflow() {
		v, _ := c.h.Value(axis.Underflow)
		cumulative += uint64(v)
		total += uint64(v)
		sum += v * a.Bin(axis.Underflow).Hi
	}
	for i := 0; i < n; i++ {
		v, _ := c.h.Value(i)
		cumulative += uint64(v)
		total += uint64(v)
		sum += v * midpoint(a.Bin(i))
		buckets[a.Bin(i).Hi] = cumulative
	}
	if a.UOflow() {
		v, _ := c.h.Value(n)
		total += uint64(v)
		sum += v * a.Bin(n).Lo
	}

	m, err := prometheus.NewConstHistogram(c.desc, total, sum, buckets)
	if err != nil {
		zlog.Error(err)
		return
	}
	ch <- m
}

func midpoint(b axis.Bin) float64 {
	if math.IsInf(b.Lo, -1) {
		return b.Hi
	}
	if math.IsInf(b.Hi, 1) {
		return b.Lo
	}
	return (b.Lo + b.Hi) / 2
}

func domainError(dict zdict.Dict, parts ...any) error {
	dict["Kind"] = "domain"
	return zlog.Error(zerrors.MakeContextError(dict, parts...))
}
