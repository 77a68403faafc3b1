// Package rng provides the deterministic pseudo-random stream that drives
// all procedural generation. The state is an explicit, owned value: two
// streams created from the same seed and fed the same call sequence produce
// identical outputs on every platform, and independent streams never
// interfere with each other.
package rng

import (
	"math"

	"starforge-server/internal/shared/errors"
)

// splitmix64 constants. The generator never consults the wall clock, OS
// entropy, or any shared counter.
const (
	goldenGamma = 0x9E3779B97F4A7C15
	mixMul1     = 0xBF58476D1CE4E5B9
	mixMul2     = 0x94D049BB133111EB
)

// Stream is a seeded pseudo-random source.
type Stream struct {
	state uint64
}

// New creates a stream fixed by seed.
func New(seed int64) *Stream {
	return &Stream{state: uint64(seed)}
}

func (s *Stream) next() uint64 {
	s.state += goldenGamma
	z := s.state
	z = (z ^ (z >> 30)) * mixMul1
	z = (z ^ (z >> 27)) * mixMul2
	return z ^ (z >> 31)
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// IntBetween returns a value in [min, max] inclusive. A degenerate range
// collapses to min.
func (s *Stream) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	span := uint64(max - min + 1)
	return min + int(s.next()%span)
}

// Geometric samples the number of failures before the first success for a
// trial with success probability p (mean (1-p)/p). p must lie in (0, 1]:
// zero would imply an unbounded child count.
func (s *Stream) Geometric(p float64) (int, error) {
	if p <= 0 || p > 1 || math.IsNaN(p) {
		return 0, errors.Validationf("geometric p must be in (0, 1], got %v", p)
	}
	if p == 1 {
		// Still consume one draw so call sequences stay aligned across
		// configs.
		_ = s.Float64()
		return 0, nil
	}
	u := s.Float64()
	return int(math.Floor(math.Log1p(-u) / math.Log1p(-p))), nil
}

// WeightedChoice returns an index sampled proportionally to weights. The
// weights must be non-negative and sum to a positive value.
func (s *Stream) WeightedChoice(weights []float64) (int, error) {
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, errors.Validationf("weight at index %d must be non-negative, got %v", i, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, errors.Validation("weights must sum to a positive value")
	}

	roll := s.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll < acc {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// DeriveSeed produces the seed for the i-th item generated under a master
// seed. The rule is fixed: one splitmix64 mix of the master seed offset by
// (i+1) gammas, so the same (master, i) pair always maps to the same derived
// seed and results remain reproducible without sharing a stream.
func DeriveSeed(master int64, i int) int64 {
	z := uint64(master) + uint64(i+1)*goldenGamma
	z = (z ^ (z >> 30)) * mixMul1
	z = (z ^ (z >> 27)) * mixMul2
	return int64(z ^ (z >> 31))
}
