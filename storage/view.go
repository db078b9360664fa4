package storage

import (
	"encoding/binary"
	"math/big"
)

// View is a raw byte snapshot of a Counts storage's active tier,
// produced for the binary serializer in the root package's
// serialize.go. Owned reports whether Bytes is a fresh copy safe to
// mutate or hold onto past the call; when false, Bytes aliases the
// storage's own backing array (the uint8 tier needs no conversion, so
// it's handed out directly) and must be copied before the storage is
// mutated again.
type View struct {
	Tier  int
	Bytes []byte
	Owned bool
}

// ByteView returns the little-endian byte encoding of c's active tier.
func (c *Counts) ByteView() View {
	switch c.tier {
	case tierU8:
		return View{Tier: int(tierU8), Bytes: []byte(c.u8), Owned: false}
	case tierU16:
		buf := make([]byte, 2*c.n)
		for i, v := range c.u16 {
			binary.LittleEndian.PutUint16(buf[i*2:], v)
		}
		return View{Tier: int(tierU16), Bytes: buf, Owned: true}
	case tierU32:
		buf := make([]byte, 4*c.n)
		for i, v := range c.u32 {
			binary.LittleEndian.PutUint32(buf[i*4:], v)
		}
		return View{Tier: int(tierU32), Bytes: buf, Owned: true}
	case tierU64:
		buf := make([]byte, 8*c.n)
		for i, v := range c.u64 {
			binary.LittleEndian.PutUint64(buf[i*8:], v)
		}
		return View{Tier: int(tierU64), Bytes: buf, Owned: true}
	default:
		return bigByteView(c)
	}
}

// bigByteView encodes the bignum tier as a length-prefixed sequence of
// big.Int byte strings (big.Int.Bytes(), big-endian, no sign since
// promotion only ever adds): for each cell, a uint32 byte count
// followed by that many bytes.
func bigByteView(c *Counts) View {
	var buf []byte
	var lenPrefix [4]byte
	for _, b := range c.big {
		raw := b.Bytes()
		binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(raw)))
		buf = append(buf, lenPrefix[:]...)
		buf = append(buf, raw...)
	}
	return View{Tier: int(tierBig), Bytes: buf, Owned: true}
}

// FromByteView reconstructs a Counts storage of n cells from a View
// produced by ByteView, for the binary deserializer.
func FromByteView(n int, v View) *Counts {
	c := &Counts{n: n, tier: tier(v.Tier)}
	switch c.tier {
	case tierU8:
		c.u8 = make([]uint8, n)
		copy(c.u8, v.Bytes)
	case tierU16:
		c.u16 = make([]uint16, n)
		for i := range c.u16 {
			c.u16[i] = binary.LittleEndian.Uint16(v.Bytes[i*2:])
		}
	case tierU32:
		c.u32 = make([]uint32, n)
		for i := range c.u32 {
			c.u32[i] = binary.LittleEndian.Uint32(v.Bytes[i*4:])
		}
	case tierU64:
		c.u64 = make([]uint64, n)
		for i := range c.u64 {
			c.u64[i] = binary.LittleEndian.Uint64(v.Bytes[i*8:])
		}
	case tierBig:
		c.big = bigSliceFromBytes(n, v.Bytes)
	}
	return c
}

func bigSliceFromBytes(n int, data []byte) []*big.Int {
	out := make([]*big.Int, n)
	pos := 0
	for i := 0; i < n; i++ {
		l := int(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
		out[i] = new(big.Int).SetBytes(data[pos : pos+l])
		pos += l
	}
	return out
}
