package universe

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"starforge-server/internal/procgen/grammar"
	"starforge-server/internal/procgen/rng"
	"starforge-server/internal/shared/errors"
)

var starNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Deneb", "Antares", "Pollux", "Spica", "Mizar",
}

var romanNumerals = []string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"XI", "XII", "XIII", "XIV", "XV", "XVI", "XVII", "XVIII", "XIX", "XX",
}

// Mass ranges per body type, scaled down by depth. Bounds are strictly
// positive so generated mass always is too.
var massRanges = map[BodyType][2]float64{
	BodyTypeStar:   {0.4, 8.0},
	BodyTypePlanet: {0.01, 2.0},
	BodyTypeMoon:   {0.0001, 0.05},
}

const massDepthDecay = 0.75

// Generator turns configurations into attributed universes. It holds no
// mutable state between calls; every generation owns its stream, so
// independent generations may run in parallel.
type Generator struct {
	orbit  OrbitPolicy
	logger *slog.Logger
}

func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{
		orbit:  defaultOrbitPolicy,
		logger: logger,
	}
}

// NewGeneratorWithOrbitPolicy allows swapping the orbit spacing policy. The
// policy must preserve strict sibling increase.
func NewGeneratorWithOrbitPolicy(policy OrbitPolicy, logger *slog.Logger) *Generator {
	return &Generator{
		orbit:  policy,
		logger: logger,
	}
}

// resolveSeed picks the seed for a generation call: the explicit one when
// set, otherwise a fresh time-derived seed. The chosen seed is echoed in
// the result so any run can be replayed exactly.
func resolveSeed(cfg Config) int64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	return time.Now().UnixNano()
}

// GenerateSystem produces one complete star system (or, under the
// deep-hierarchy preset, a nested cluster of systems). Identical (seed,
// config) inputs yield identical universes.
func (g *Generator) GenerateSystem(cfg Config) (*Universe, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.grammarParams()
	if err != nil {
		return nil, err
	}

	seed := resolveSeed(cfg)
	stream := rng.New(seed)

	root, err := grammar.Expand(stream, params)
	if err != nil {
		return nil, err
	}

	u := NewUniverse(seed)
	b := &builder{
		u:      u,
		cfg:    cfg,
		stream: stream,
		orbit:  g.orbit,
	}
	b.attach(root)

	g.logger.Debug("System generated",
		"seed", seed,
		"bodies", len(u.Bodies),
		"groups", len(u.Groups),
		"roots", len(u.RootIDs),
	)
	return u, nil
}

// GenerateSystems produces n independent systems. Per-system seeds derive
// from the master seed via rng.DeriveSeed, so the batch is reproducible
// from (master seed, config) alone.
func (g *Generator) GenerateSystems(n int, cfg Config) ([]*Universe, error) {
	if n <= 0 {
		return nil, errors.Validationf("system count must be positive, got %d", n)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	master := resolveSeed(cfg)
	universes := make([]*Universe, 0, n)
	for i := 0; i < n; i++ {
		u, err := g.GenerateSystem(cfg.WithSeed(rng.DeriveSeed(master, i)))
		if err != nil {
			return nil, err
		}
		universes = append(universes, u)
	}

	g.logger.Info("System batch generated", "count", n, "master_seed", master)
	return universes, nil
}

// builder walks a topology tree and attributes each node, threading the
// generation stream through mass, orbit and position sampling in a fixed
// depth-first order.
type builder struct {
	u      *Universe
	cfg    Config
	stream *rng.Stream
	orbit  OrbitPolicy

	bodyOrdinal  int
	groupOrdinal int
	starCount    int
}

type attachFrame struct {
	node          *grammar.Node
	parentBodyID  string
	parentGroupID string
	name          string // empty for stars and groups, which name themselves
	orbitRadius   float64
}

// attach converts the tree under root into bodies and groups. Children
// attach only to their just-created parent, so the result is acyclic by
// construction.
func (b *builder) attach(root *grammar.Node) {
	stack := []attachFrame{{node: root}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var childFrames []attachFrame
		switch frame.node.Type {
		case grammar.SymbolGroup:
			childFrames = b.attachGroup(frame)
		case grammar.SymbolStar, grammar.SymbolPlanet, grammar.SymbolMoon:
			childFrames = b.attachBody(frame)
		}

		for i := len(childFrames) - 1; i >= 0; i-- {
			stack = append(stack, childFrames[i])
		}
	}
}

func (b *builder) attachGroup(frame attachFrame) []attachFrame {
	id := GroupID(b.u.Seed, b.groupOrdinal)
	b.groupOrdinal++

	group := &Group{
		ID:            id,
		Name:          fmt.Sprintf("Cluster %d", b.groupOrdinal),
		ParentGroupID: frame.parentGroupID,
		ChildIDs:      []string{},
		Position:      b.scatterPosition(frame.node.Depth),
	}
	b.u.Groups[id] = group

	if frame.parentGroupID == "" {
		b.u.RootGroupIDs = append(b.u.RootGroupIDs, id)
	} else {
		b.u.Groups[frame.parentGroupID].ChildIDs = append(b.u.Groups[frame.parentGroupID].ChildIDs, id)
	}

	frames := make([]attachFrame, 0, len(frame.node.Children))
	for _, child := range frame.node.Children {
		frames = append(frames, attachFrame{node: child, parentGroupID: id})
	}
	return frames
}

func (b *builder) attachBody(frame attachFrame) []attachFrame {
	node := frame.node
	id := BodyID(b.u.Seed, b.bodyOrdinal)
	b.bodyOrdinal++

	body := &Body{
		ID:          id,
		Type:        bodyTypeFor(node.Type),
		Name:        frame.name,
		OrbitRadius: frame.orbitRadius,
		Depth:       node.Depth,
		ParentID:    frame.parentBodyID,
		ChildIDs:    []string{},
	}
	if body.Type == BodyTypeStar {
		body.Name = b.nextStarName()
	}
	body.Mass = b.sampleMass(body.Type, node.Depth)

	b.u.Bodies[id] = body

	if frame.parentBodyID == "" {
		b.u.RootIDs = append(b.u.RootIDs, id)
		if frame.parentGroupID != "" {
			b.u.Groups[frame.parentGroupID].ChildIDs = append(b.u.Groups[frame.parentGroupID].ChildIDs, id)
		}
	} else {
		b.u.Bodies[frame.parentBodyID].ChildIDs = append(b.u.Bodies[frame.parentBodyID].ChildIDs, id)
	}

	// Children share one orbit chain in assigned order, so radii strictly
	// increase across all siblings regardless of type mix.
	frames := make([]attachFrame, 0, len(node.Children))
	prev := 0.0
	planetIdx, moonIdx := 0, 0
	for i, child := range node.Children {
		radius := b.orbit(b.stream, b.cfg, node.Depth, i, prev)
		prev = radius

		name := ""
		switch child.Type {
		case grammar.SymbolPlanet:
			name = fmt.Sprintf("%s %s", body.Name, romanNumerals[planetIdx%len(romanNumerals)])
			planetIdx++
		case grammar.SymbolMoon:
			name = fmt.Sprintf("%s %c", body.Name, 'a'+moonIdx%26)
			moonIdx++
		}

		frames = append(frames, attachFrame{
			node:         child,
			parentBodyID: id,
			name:         name,
			orbitRadius:  radius,
		})
	}
	return frames
}

func bodyTypeFor(sym grammar.Symbol) BodyType {
	switch sym {
	case grammar.SymbolStar:
		return BodyTypeStar
	case grammar.SymbolPlanet:
		return BodyTypePlanet
	case grammar.SymbolMoon:
		return BodyTypeMoon
	default:
		// Groups never reach attachBody.
		return BodyTypeStar
	}
}

func (b *builder) nextStarName() string {
	base := starNames[b.starCount%len(starNames)]
	cycle := b.starCount / len(starNames)
	b.starCount++
	if cycle > 0 {
		return fmt.Sprintf("%s %d", base, cycle+1)
	}
	return base
}

func (b *builder) sampleMass(t BodyType, depth int) float64 {
	bounds := massRanges[t]
	scale := math.Pow(massDepthDecay, float64(depth))
	return (bounds[0] + (bounds[1]-bounds[0])*b.stream.Float64()) * scale
}

func (b *builder) scatterPosition(depth int) Position {
	span := 100.0 / float64(depth+1)
	return Position{
		X: (b.stream.Float64()*2 - 1) * span,
		Y: (b.stream.Float64()*2 - 1) * span / 10,
		Z: (b.stream.Float64()*2 - 1) * span,
	}
}
