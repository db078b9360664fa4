package mdhist

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/torlangballe/mdhist/axis"
	"github.com/torlangballe/mdhist/storage"
	"github.com/torlangballe/mdhist/zdict"
)

// magic tags the start of an encoded histogram so Decode can reject
// unrelated or truncated input before it gets far enough to panic on a
// short buffer.
var magic = [4]byte{'M', 'D', 'H', '1'}

const (
	wireStateCounts   byte = 0
	wireStateWeighted byte = 1
)

// Encode serializes h into a self-describing binary form: axes are
// stored as their textual representation (length-prefixed), followed by
// the storage state and the cells themselves, using storage's tiered
// ByteView for Counts so a u8-tier histogram encodes in a quarter the
// space of a u32 one.
func (h *Histogram) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(magic[:])
	writeUint32(&buf, uint32(len(h.axes)))
	for _, a := range h.axes {
		writeString(&buf, a.String())
	}
	switch st := h.storage.(type) {
	case *storage.Counts:
		buf.WriteByte(wireStateCounts)
		v := st.ByteView()
		writeUint32(&buf, uint32(v.Tier))
		writeUint32(&buf, uint32(st.Len()))
		writeUint32(&buf, uint32(len(v.Bytes)))
		buf.Write(v.Bytes)
	case *storage.Weighted:
		buf.WriteByte(wireStateWeighted)
		writeUint32(&buf, uint32(st.Len()))
		for i := 0; i < st.Len(); i++ {
			writeFloat64(&buf, st.Value(i))
			writeFloat64(&buf, st.Variance(i))
		}
	}
	return buf.Bytes()
}

// Decode is the inverse of Encode.
func Decode(data []byte) (*Histogram, error) {
	r := bytes.NewReader(data)
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil || m != magic {
		return nil, domainError(zdict.Dict{}, "not a recognized histogram encoding")
	}
	nAxes, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	axes := make([]axis.Axis, nAxes)
	for i := range axes {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		a, err := axis.Parse(s)
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	h, err := New(axes...)
	if err != nil {
		return nil, err
	}
	state, err := r.ReadByte()
	if err != nil {
		return nil, domainError(zdict.Dict{}, "truncated histogram encoding: missing state byte")
	}
	switch state {
	case wireStateCounts:
		tier, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		blen, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		raw := make([]byte, blen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, domainError(zdict.Dict{}, "truncated histogram encoding: short cell bytes")
		}
		if int(n) != h.lay.Size() {
			return nil, shapeError(zdict.Dict{"n": n, "want": h.lay.Size()}, "encoded cell count does not match axes")
		}
		h.storage = storage.FromByteView(int(n), storage.View{Tier: int(tier), Bytes: raw})
	case wireStateWeighted:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		if int(n) != h.lay.Size() {
			return nil, shapeError(zdict.Dict{"n": n, "want": h.lay.Size()}, "encoded cell count does not match axes")
		}
		w := storage.NewWeighted(int(n))
		for i := 0; i < int(n); i++ {
			value, err := readFloat64(r)
			if err != nil {
				return nil, err
			}
			variance, err := readFloat64(r)
			if err != nil {
				return nil, err
			}
			w.SetCell(i, value, variance)
		}
		h.storage = w
	default:
		return nil, domainError(zdict.Dict{"state": state}, "unrecognized storage state tag:", state)
	}
	return h, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeFloat64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, domainError(zdict.Dict{}, "truncated histogram encoding")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readFloat64(r *bytes.Reader) (float64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, domainError(zdict.Dict{}, "truncated histogram encoding")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", domainError(zdict.Dict{}, "truncated histogram encoding: short string")
	}
	return string(b), nil
}
