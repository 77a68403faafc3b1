package universe

import (
	"starforge-server/internal/procgen/grammar"
	"starforge-server/internal/shared/errors"
)

// Config is the recognized set of generation options. It is a plain data
// structure so API callers can post it verbatim.
type Config struct {
	// StarWeights are the relative weights for single, binary and ternary
	// roots. They are normalized before sampling and must sum to a
	// positive value.
	StarWeights [3]float64 `json:"star_weights"`
	// PlanetGeometricP and MoonGeometricP parameterize the geometric
	// child-count distributions and must lie in (0, 1].
	PlanetGeometricP float64 `json:"planet_geometric_p"`
	MoonGeometricP   float64 `json:"moon_geometric_p"`

	// Orbit spacing parameters, consumed by the orbit policy.
	OrbitBase   float64 `json:"orbit_base"`
	OrbitGrowth float64 `json:"orbit_growth"`
	OrbitK      float64 `json:"orbit_k"`

	// Preset, when set, replaces the grammar fields above with a named
	// bundle. Orbit parameters still apply.
	Preset grammar.PresetID `json:"preset,omitempty"`

	// Seed fixes the deterministic stream. When nil a fresh seed is
	// drawn and echoed in the result so any run can be reproduced.
	Seed *int64 `json:"seed,omitempty"`

	// MaxBodies caps the generated body count; 0 means unbounded.
	MaxBodies int `json:"max_bodies,omitempty"`
}

// DefaultConfig returns the classic balanced configuration.
func DefaultConfig() Config {
	params, _ := grammar.PresetParams(grammar.PresetClassic)
	return Config{
		StarWeights:      params.StarWeights,
		PlanetGeometricP: params.PlanetGeometricP,
		MoonGeometricP:   params.MoonGeometricP,
		OrbitBase:        1.0,
		OrbitGrowth:      1.8,
		OrbitK:           2.0,
	}
}

// WithSeed returns a copy of the config pinned to the given seed.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// withDefaults fills unset orbit parameters with their defaults. Zero
// values are treated as unset so sparse JSON configs stay usable.
func (c Config) withDefaults() Config {
	if c.OrbitBase == 0 {
		c.OrbitBase = 1.0
	}
	if c.OrbitGrowth == 0 {
		c.OrbitGrowth = 1.8
	}
	if c.OrbitK == 0 {
		c.OrbitK = 2.0
	}
	return c
}

// Validate fails fast on a malformed config, naming the offending field.
// It runs before any generation work begins.
func (c Config) Validate() error {
	if c.Preset == "" {
		sum := 0.0
		for i, w := range c.StarWeights {
			if w < 0 {
				return errors.Validationf("star_weights[%d] must be non-negative, got %v", i, w)
			}
			sum += w
		}
		if sum <= 0 {
			return errors.Validation("star_weights must sum to a positive value")
		}
		if c.PlanetGeometricP <= 0 || c.PlanetGeometricP > 1 {
			return errors.Validationf("planet_geometric_p must be in (0, 1], got %v", c.PlanetGeometricP)
		}
		if c.MoonGeometricP <= 0 || c.MoonGeometricP > 1 {
			return errors.Validationf("moon_geometric_p must be in (0, 1], got %v", c.MoonGeometricP)
		}
	}
	if c.OrbitBase <= 0 {
		return errors.Validationf("orbit_base must be positive, got %v", c.OrbitBase)
	}
	if c.OrbitGrowth <= 1 {
		return errors.Validationf("orbit_growth must be greater than 1, got %v", c.OrbitGrowth)
	}
	if c.OrbitK <= 0 {
		return errors.Validationf("orbit_k must be positive, got %v", c.OrbitK)
	}
	if c.MaxBodies < 0 {
		return errors.Validationf("max_bodies must be non-negative, got %d", c.MaxBodies)
	}
	return nil
}

// grammarParams resolves the config into the bundle consumed by the
// topology engine.
func (c Config) grammarParams() (grammar.Params, error) {
	if c.Preset != "" {
		params, err := grammar.PresetParams(c.Preset)
		if err != nil {
			return grammar.Params{}, err
		}
		params.MaxNodes = c.MaxBodies
		return params, nil
	}
	return grammar.Params{
		StarWeights:      c.StarWeights,
		PlanetGeometricP: c.PlanetGeometricP,
		MoonGeometricP:   c.MoonGeometricP,
		MaxNodes:         c.MaxBodies,
	}, nil
}
