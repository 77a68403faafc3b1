// Package universe holds the generated-universe data model, the body
// generator that turns topology trees into attributed bodies, and the
// read-only validator and statistics passes over the result.
package universe

// BodyType identifies the kind of a generated body.
type BodyType string

const (
	BodyTypeStar   BodyType = "star"
	BodyTypePlanet BodyType = "planet"
	BodyTypeMoon   BodyType = "moon"
)

// Body is one attributed node of a generated system. ParentID is an
// ownership back-reference; the owning edge lives in the parent's ChildIDs.
type Body struct {
	ID          string   `json:"id"`
	Type        BodyType `json:"type"`
	Name        string   `json:"name"`
	Mass        float64  `json:"mass"`
	OrbitRadius float64  `json:"orbit_radius"`
	Depth       int      `json:"depth"`
	ParentID    string   `json:"parent_id,omitempty"`
	ChildIDs    []string `json:"child_ids"`
}

// Position is a 3-D point assigned to groups during galaxy composition.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Group is a synthetic container node. ChildIDs may reference child groups
// or root bodies of member systems.
type Group struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ParentGroupID string   `json:"parent_group_id,omitempty"`
	ChildIDs      []string `json:"child_ids"`
	Position      Position `json:"position"`
}

// Universe is the complete generation output: a plain, fully serializable
// graph owned exclusively by the caller after return. It is immutable once
// generated; a new generation call always produces a new, independent
// structure. Persisted representations mirror this shape field for field.
type Universe struct {
	Seed         int64             `json:"seed"`
	Bodies       map[string]*Body  `json:"bodies"`
	RootIDs      []string          `json:"root_ids"`
	Groups       map[string]*Group `json:"groups"`
	RootGroupIDs []string          `json:"root_group_ids"`
}

// NewUniverse returns an empty universe keyed by the seed that produced it.
func NewUniverse(seed int64) *Universe {
	return &Universe{
		Seed:         seed,
		Bodies:       make(map[string]*Body),
		RootIDs:      []string{},
		Groups:       make(map[string]*Group),
		RootGroupIDs: []string{},
	}
}
