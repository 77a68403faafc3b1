package grammar

import (
	"starforge-server/internal/procgen/rng"
	"starforge-server/internal/shared/errors"
)

// groupSplitChance is the probability that a nested-group child is itself a
// group rather than a star system, while depth allows it.
const groupSplitChance = 0.4

type expandRole int

const (
	rolePrimary expandRole = iota // system root star, may gain companions
	roleCompanion
	roleOther
)

type workItem struct {
	node *Node
	role expandRole
}

// Expand grows a topology tree from the start symbol. The expansion is
// depth-first over an explicit work stack, so recursion depth is bounded
// regardless of the grammar. Identical (stream state, params) inputs yield
// identical trees.
//
// Production rules: the root samples star multiplicity from StarWeights;
// every star samples a geometric planet count; every planet samples a
// geometric moon count; moons are terminal. Under NestedGroups the root is a
// group that recurses into child groups or star systems up to MaxGroupDepth.
func Expand(s *rng.Stream, p Params) (*Node, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	count := 0
	newNode := func(sym Symbol, depth int) (*Node, error) {
		count++
		if p.MaxNodes > 0 && count > p.MaxNodes {
			return nil, errors.ResourceLimitf("topology exceeds the configured cap of %d nodes", p.MaxNodes)
		}
		return &Node{Type: sym, Depth: depth}, nil
	}

	var root *Node
	var err error
	rootRole := rolePrimary
	if p.NestedGroups {
		root, err = newNode(SymbolGroup, 0)
		rootRole = roleOther
	} else {
		root, err = newNode(SymbolStar, 0)
	}
	if err != nil {
		return nil, err
	}

	stack := []workItem{{node: root, role: rootRole}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := produceChildren(s, p, item, newNode)
		if err != nil {
			return nil, err
		}
		item.node.Children = children

		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			role := roleOther
			switch {
			case child.Type == SymbolStar && item.node.Type == SymbolStar:
				role = roleCompanion
			case child.Type == SymbolStar:
				role = rolePrimary
			}
			stack = append(stack, workItem{node: child, role: role})
		}
	}

	return root, nil
}

// produceChildren applies the production rule for one node. Zero children is
// a valid terminal everywhere.
func produceChildren(s *rng.Stream, p Params, item workItem, newNode func(Symbol, int) (*Node, error)) ([]*Node, error) {
	node := item.node
	var children []*Node

	appendChildren := func(sym Symbol, n int) error {
		for i := 0; i < n; i++ {
			child, err := newNode(sym, node.Depth+1)
			if err != nil {
				return err
			}
			children = append(children, child)
		}
		return nil
	}

	switch node.Type {
	case SymbolStar:
		if item.role == rolePrimary {
			idx, err := s.WeightedChoice(p.StarWeights[:])
			if err != nil {
				return nil, err
			}
			// idx 0/1/2 maps to single/binary/ternary; companions
			// orbit the primary ahead of its planets.
			if err := appendChildren(SymbolStar, idx); err != nil {
				return nil, err
			}
		}
		planets, err := s.Geometric(p.PlanetGeometricP)
		if err != nil {
			return nil, err
		}
		if err := appendChildren(SymbolPlanet, planets); err != nil {
			return nil, err
		}

	case SymbolPlanet:
		moons, err := s.Geometric(p.MoonGeometricP)
		if err != nil {
			return nil, err
		}
		if err := appendChildren(SymbolMoon, moons); err != nil {
			return nil, err
		}

	case SymbolMoon:
		// Terminal.

	case SymbolGroup:
		fanout := s.IntBetween(p.GroupFanout[0], p.GroupFanout[1])
		for i := 0; i < fanout; i++ {
			sym := SymbolStar
			if node.Depth+1 < p.MaxGroupDepth && s.Float64() < groupSplitChance {
				sym = SymbolGroup
			}
			if err := appendChildren(sym, 1); err != nil {
				return nil, err
			}
		}
	}

	return children, nil
}

// validate rejects malformed params before any sampling occurs.
func (p Params) validate() error {
	sum := 0.0
	for i, w := range p.StarWeights {
		if w < 0 {
			return errors.Validationf("star_weights[%d] must be non-negative, got %v", i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return errors.Validation("star_weights must sum to a positive value")
	}
	if p.PlanetGeometricP <= 0 || p.PlanetGeometricP > 1 {
		return errors.Validationf("planet_geometric_p must be in (0, 1], got %v", p.PlanetGeometricP)
	}
	if p.MoonGeometricP <= 0 || p.MoonGeometricP > 1 {
		return errors.Validationf("moon_geometric_p must be in (0, 1], got %v", p.MoonGeometricP)
	}
	if p.NestedGroups {
		if p.MaxGroupDepth <= 0 {
			return errors.Validation("max_group_depth must be positive when nested groups are enabled")
		}
		if p.GroupFanout[0] < 1 || p.GroupFanout[1] < p.GroupFanout[0] {
			return errors.Validationf("group_fanout %v is not a valid range", p.GroupFanout)
		}
	}
	if p.MaxNodes < 0 {
		return errors.Validationf("max_nodes must be non-negative, got %d", p.MaxNodes)
	}
	return nil
}
