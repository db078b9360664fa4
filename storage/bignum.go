package storage

import "math/big"

// the arbitrary-precision tier a Counts cell promotes into once a
// uint64 cell would overflow. Promotion only ever adds, so every value
// here stays non-negative.

func newBigSlice(n int, from func(i int) uint64) []*big.Int {
	s := make([]*big.Int, n)
	for i := range s {
		s[i] = new(big.Int).SetUint64(from(i))
	}
	return s
}

func bigAdd(b *big.Int, delta uint64) {
	b.Add(b, new(big.Int).SetUint64(delta))
}

func bigValue(b *big.Int) float64 {
	f := new(big.Float).SetInt(b)
	v, _ := f.Float64()
	return v
}

func bigClone(s []*big.Int) []*big.Int {
	out := make([]*big.Int, len(s))
	for i, b := range s {
		out[i] = new(big.Int).Set(b)
	}
	return out
}
