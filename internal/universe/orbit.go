package universe

import (
	"math"

	"starforge-server/internal/procgen/rng"
)

// OrbitPolicy computes the orbit radius of the sibling at index under a
// parent at parentDepth. prev is the radius assigned to the previous
// sibling (unused for index 0). Implementations must return strictly
// increasing values across siblings in assigned order; the validator treats
// any violation as a structural error.
type OrbitPolicy func(s *rng.Stream, cfg Config, parentDepth, index int, prev float64) float64

// orbitJitterSpan bounds the multiplicative jitter applied per orbit so
// sibling spacing varies without ever breaking the strict increase.
const orbitJitterSpan = 0.25

// defaultOrbitPolicy spaces the first sibling at OrbitBase shrunk by OrbitK
// per nesting level, then grows each subsequent orbit by OrbitGrowth plus
// jitter. With OrbitGrowth > 1 the multiplier always exceeds 1, so radii
// strictly increase and never collide.
func defaultOrbitPolicy(s *rng.Stream, cfg Config, parentDepth, index int, prev float64) float64 {
	jitter := 1 + orbitJitterSpan*s.Float64()
	if index == 0 {
		return cfg.OrbitBase / math.Pow(cfg.OrbitK, float64(parentDepth)) * jitter
	}
	return prev * cfg.OrbitGrowth * jitter
}
