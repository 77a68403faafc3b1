package grammar

import "starforge-server/internal/shared/errors"

// Params is a fixed grammar and distribution bundle consumed by Expand.
type Params struct {
	// StarWeights are the relative weights for single, binary and ternary
	// roots. They are normalized at sampling time and must sum to a
	// positive value.
	StarWeights [3]float64
	// PlanetGeometricP parameterizes the geometric planet count per star.
	PlanetGeometricP float64
	// MoonGeometricP parameterizes the geometric moon count per planet.
	MoonGeometricP float64

	// NestedGroups enables group-symbol recursion. Only the deep-hierarchy
	// preset turns this on.
	NestedGroups  bool
	MaxGroupDepth int
	// GroupFanout bounds the child count of a nested group.
	GroupFanout [2]int

	// MaxNodes caps the expanded tree size; 0 means unbounded. Exceeding
	// the cap aborts expansion with a resource limit error.
	MaxNodes int
}

// PresetID names a fixed parameter bundle.
type PresetID string

const (
	PresetClassic       PresetID = "classic"
	PresetCompact       PresetID = "compact"
	PresetMultiStar     PresetID = "multi-star-heavy"
	PresetMoonRich      PresetID = "moon-rich"
	PresetSparseOutpost PresetID = "sparse-outpost"
	PresetDeepHierarchy PresetID = "deep-hierarchy"
)

// Presets returns the catalog of known preset ids in a stable order.
func Presets() []PresetID {
	return []PresetID{
		PresetClassic,
		PresetCompact,
		PresetMultiStar,
		PresetMoonRich,
		PresetSparseOutpost,
		PresetDeepHierarchy,
	}
}

// PresetParams returns the parameter bundle for a preset id.
func PresetParams(id PresetID) (Params, error) {
	switch id {
	case PresetClassic:
		return Params{
			StarWeights:      [3]float64{0.7, 0.2, 0.1},
			PlanetGeometricP: 0.18,
			MoonGeometricP:   0.45,
		}, nil
	case PresetCompact:
		return Params{
			StarWeights:      [3]float64{0.85, 0.12, 0.03},
			PlanetGeometricP: 0.4,
			MoonGeometricP:   0.65,
		}, nil
	case PresetMultiStar:
		return Params{
			StarWeights:      [3]float64{0.25, 0.45, 0.3},
			PlanetGeometricP: 0.25,
			MoonGeometricP:   0.5,
		}, nil
	case PresetMoonRich:
		return Params{
			StarWeights:      [3]float64{0.7, 0.2, 0.1},
			PlanetGeometricP: 0.2,
			MoonGeometricP:   0.15,
		}, nil
	case PresetSparseOutpost:
		return Params{
			StarWeights:      [3]float64{0.95, 0.05, 0},
			PlanetGeometricP: 0.7,
			MoonGeometricP:   0.85,
		}, nil
	case PresetDeepHierarchy:
		return Params{
			StarWeights:      [3]float64{0.7, 0.2, 0.1},
			PlanetGeometricP: 0.3,
			MoonGeometricP:   0.6,
			NestedGroups:     true,
			MaxGroupDepth:    4,
			GroupFanout:      [2]int{2, 4},
		}, nil
	default:
		return Params{}, errors.Validationf("unknown topology preset %q", id)
	}
}
