// Package entropy provides the seeded random source behind every
// stochastic mechanic in the simulation. A single Source is threaded
// through the engine so runs are reproducible from a seed.
package entropy

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source wraps a deterministic PRNG.
type Source struct {
	rng *rand.Rand
}

// New creates a Source from a seed. Equal seeds produce equal streams.
func New(seed int64) *Source {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return &Source{rng: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// IntN returns a uniform int in [0, n).
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// Between returns a uniform int in [min, max] inclusive.
func (s *Source) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// Chance rolls once against probability p.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// Pick returns a random element index for a slice of the given length.
func (s *Source) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rng.IntN(n)
}
