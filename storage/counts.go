package storage

import (
	"math"
	"math/big"
	"slices"
	"strconv"

	"github.com/torlangballe/mdhist/zdict"
	"github.com/torlangballe/mdhist/zlog"
)

// tier is the active unsigned width backing a Counts cell array. Every
// cell in a Counts shares one tier; the tier only ever goes up.
type tier int

const (
	tierU8 tier = iota
	tierU16
	tierU32
	tierU64
	tierBig
)

func (t tier) String() string {
	switch t {
	case tierU8:
		return "u8"
	case tierU16:
		return "u16"
	case tierU32:
		return "u32"
	case tierU64:
		return "u64"
	case tierBig:
		return "bignum"
	}
	return "unknown"
}

// Counts is the default storage: one unsigned integer per cell, widening
// from uint8 to uint16/uint32/uint64 and finally an arbitrary-precision
// math/big.Int the moment any cell would otherwise overflow. Promotion
// widens every cell in the storage at once, never just the one that
// overflowed, so all cells stay the same width.
type Counts struct {
	n    int
	tier tier
	u8   []uint8
	u16  []uint16
	u32  []uint32
	u64  []uint64
	big  []*big.Int
}

// NewCounts creates a zeroed Counts storage of n cells, starting at the
// narrowest (uint8) tier.
func NewCounts(n int) *Counts {
	return &Counts{n: n, tier: tierU8, u8: make([]uint8, n)}
}

func (c *Counts) Len() int     { return c.n }
func (c *Counts) State() State { return StateCounts }

// Tier reports the current backing width, for the binary serializer.
func (c *Counts) Tier() int { return int(c.tier) }

func (c *Counts) Value(i int) float64 {
	switch c.tier {
	case tierU8:
		return float64(c.u8[i])
	case tierU16:
		return float64(c.u16[i])
	case tierU32:
		return float64(c.u32[i])
	case tierU64:
		return float64(c.u64[i])
	default:
		return bigValue(c.big[i])
	}
}

// Variance treats every stored count as the sum of unit-weight Poisson
// events, whose variance equals the count itself.
func (c *Counts) Variance(i int) float64 { return c.Value(i) }

// Add increments cell i by one event. Counts storage only ever counts
// unit-weight events: every weighted fill promotes to Weighted storage
// before this is called (see the root package's fill.go), so weight is
// always 1 in practice.
func (c *Counts) Add(i int, weight float64) {
	zlog.Assert(weight == 1, "non-unit weight reached Counts.Add:", weight)
	c.AddCount(i, 1)
}

// AddCount increments cell i by delta, promoting the whole storage up a
// tier first if delta would overflow the current one.
func (c *Counts) AddCount(i int, delta uint64) {
	for {
		switch c.tier {
		case tierU8:
			if delta <= math.MaxUint8-uint64(c.u8[i]) {
				c.u8[i] += uint8(delta)
				return
			}
		case tierU16:
			if delta <= math.MaxUint16-uint64(c.u16[i]) {
				c.u16[i] += uint16(delta)
				return
			}
		case tierU32:
			if delta <= math.MaxUint32-uint64(c.u32[i]) {
				c.u32[i] += uint32(delta)
				return
			}
		case tierU64:
			if c.u64[i] <= math.MaxUint64-delta {
				c.u64[i] += delta
				return
			}
		case tierBig:
			bigAdd(c.big[i], delta)
			return
		}
		c.promote()
	}
}

func (c *Counts) promote() {
	switch c.tier {
	case tierU8:
		u16 := make([]uint16, c.n)
		for i, v := range c.u8 {
			u16[i] = uint16(v)
		}
		c.u8, c.u16, c.tier = nil, u16, tierU16
	case tierU16:
		u32 := make([]uint32, c.n)
		for i, v := range c.u16 {
			u32[i] = uint32(v)
		}
		c.u16, c.u32, c.tier = nil, u32, tierU32
	case tierU32:
		u64 := make([]uint64, c.n)
		for i, v := range c.u32 {
			u64[i] = uint64(v)
		}
		c.u32, c.u64, c.tier = nil, u64, tierU64
	case tierU64:
		u64 := c.u64
		big := newBigSlice(c.n, func(i int) uint64 { return u64[i] })
		c.u64, c.big, c.tier = nil, big, tierBig
	default:
		zlog.Assert(false, "promote called on bignum tier")
	}
	zlog.Info("storage: promoted counts tier to", c.tier)
}

func (c *Counts) AddInPlace(other Storage) error {
	oc, ok := other.(*Counts)
	if !ok {
		return shapeError(zdict.Dict{}, "cannot merge", other.State(), "storage into counts storage")
	}
	if oc.n != c.n {
		return shapeError(zdict.Dict{"n": c.n, "otherN": oc.n}, "storage length mismatch")
	}
	for i := 0; i < c.n; i++ {
		c.addCellFrom(i, oc, i)
	}
	return nil
}

func (c *Counts) addCellFrom(i int, other *Counts, j int) {
	switch other.tier {
	case tierU8:
		c.AddCount(i, uint64(other.u8[j]))
	case tierU16:
		c.AddCount(i, uint64(other.u16[j]))
	case tierU32:
		c.AddCount(i, uint64(other.u32[j]))
	case tierU64:
		c.AddCount(i, other.u64[j])
	case tierBig:
		c.addBig(i, other.big[j])
	}
}

func (c *Counts) addBig(i int, delta *big.Int) {
	if delta.IsUint64() {
		c.AddCount(i, delta.Uint64())
		return
	}
	for c.tier != tierBig {
		c.promote()
	}
	c.big[i].Add(c.big[i], delta)
}

// ScaleInPlace always fails: scaling by a non-unit factor can produce a
// fractional cell value, which Counts storage cannot represent. Callers
// promote to Weighted storage first (see the root package's
// arithmetic.go).
func (c *Counts) ScaleInPlace(factor float64) error {
	return shapeError(zdict.Dict{"factor": factor}, "cannot scale counts storage in place; promote to weighted first")
}

func (c *Counts) Clone() Storage {
	nc := &Counts{n: c.n, tier: c.tier}
	switch c.tier {
	case tierU8:
		nc.u8 = slices.Clone(c.u8)
	case tierU16:
		nc.u16 = slices.Clone(c.u16)
	case tierU32:
		nc.u32 = slices.Clone(c.u32)
	case tierU64:
		nc.u64 = slices.Clone(c.u64)
	case tierBig:
		nc.big = bigClone(c.big)
	}
	return nc
}

// CellString renders cell i as an exact decimal integer, regardless of
// tier. Unlike Value, it never loses precision on a promoted bignum
// cell. Used by the textual representation (the binary one uses
// ByteView).
func (c *Counts) CellString(i int) string {
	switch c.tier {
	case tierU8:
		return strconv.FormatUint(uint64(c.u8[i]), 10)
	case tierU16:
		return strconv.FormatUint(uint64(c.u16[i]), 10)
	case tierU32:
		return strconv.FormatUint(uint64(c.u32[i]), 10)
	case tierU64:
		return strconv.FormatUint(c.u64[i], 10)
	default:
		return c.big[i].String()
	}
}

// SetCellFromString sets cell i (assumed zero) to the exact decimal
// integer s, promoting tiers as needed. Used when reconstructing a
// Counts storage from its textual representation (the binary one uses
// FromByteView).
func (c *Counts) SetCellFromString(i int, s string) error {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return domainError(zdict.Dict{"value": s}, "not a valid non-negative integer cell:", s)
	}
	c.addBig(i, b)
	return nil
}

func (c *Counts) Reset() {
	c.tier = tierU8
	c.u8 = make([]uint8, c.n)
	c.u16, c.u32, c.u64, c.big = nil, nil, nil, nil
}
