package engine

import (
	"math/bits"
	"math/rand/v2"
)

const seedMix = 0x9e3779b97f4a7c15

// Source is the single source of randomness for one generation. Every choice
// made by the planner and realizer goes through Choose, in a fixed order, so a
// seed always reproduces the same progression on every platform.
//
// A Source is not safe for concurrent use.
type Source struct {
	pcg   *rand.PCG
	draws int
}

// NewSource returns a Source seeded from seed.
func NewSource(seed int64) *Source {
	s := uint64(seed)
	return &Source{pcg: rand.NewPCG(s, s^seedMix)}
}

// Choose returns a uniform index in [0, n). It always consumes at least one
// 64-bit draw, even when n is 1.
func (s *Source) Choose(n int) int {
	if n <= 0 {
		panic("engine: Choose called with n <= 0")
	}
	bound := uint64(n)
	hi, lo := bits.Mul64(s.next(), bound)
	if lo < bound {
		threshold := -bound % bound
		for lo < threshold {
			hi, lo = bits.Mul64(s.next(), bound)
		}
	}
	return int(hi)
}

// Draws reports how many 64-bit values have been consumed.
func (s *Source) Draws() int {
	return s.draws
}

func (s *Source) next() uint64 {
	s.draws++
	return s.pcg.Uint64()
}
