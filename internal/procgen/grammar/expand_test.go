package grammar

import (
	"math"
	"testing"

	"starforge-server/internal/procgen/rng"
	"starforge-server/internal/shared/errors"
)

func classicParams() Params {
	p, err := PresetParams(PresetClassic)
	if err != nil {
		panic(err)
	}
	return p
}

func sameShape(a, b *Node) bool {
	if a.Type != b.Type || a.Depth != b.Depth || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !sameShape(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func TestExpandDeterminism(t *testing.T) {
	p := classicParams()

	a, err := Expand(rng.New(42), p)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	b, err := Expand(rng.New(42), p)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if !sameShape(a, b) {
		t.Error("identical seed and params produced different trees")
	}
}

func TestExpandRootIsStar(t *testing.T) {
	root, err := Expand(rng.New(1), classicParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if root.Type != SymbolStar {
		t.Errorf("root type = %v, want star", root.Type)
	}
	if root.Depth != 0 {
		t.Errorf("root depth = %d, want 0", root.Depth)
	}
}

func TestExpandSymbolOrdering(t *testing.T) {
	root, err := Expand(rng.New(7), classicParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	root.Walk(func(n *Node) {
		for _, c := range n.Children {
			switch n.Type {
			case SymbolStar:
				if c.Type != SymbolStar && c.Type != SymbolPlanet {
					t.Errorf("star child is %v", c.Type)
				}
			case SymbolPlanet:
				if c.Type != SymbolMoon {
					t.Errorf("planet child is %v", c.Type)
				}
			case SymbolMoon:
				t.Error("moon has children")
			case SymbolGroup:
				if c.Type != SymbolGroup && c.Type != SymbolStar {
					t.Errorf("group child is %v", c.Type)
				}
			}
			if c.Depth != n.Depth+1 {
				t.Errorf("child depth %d under parent depth %d", c.Depth, n.Depth)
			}
		}
	})
}

func TestExpandStarMultiplicityConformance(t *testing.T) {
	p := classicParams()
	p.StarWeights = [3]float64{0.7, 0.2, 0.1}

	counts := [3]int{}
	const systems = 10000
	for i := 0; i < systems; i++ {
		root, err := Expand(rng.New(rng.DeriveSeed(1234, i)), p)
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		companions := 0
		for _, c := range root.Children {
			if c.Type == SymbolStar {
				companions++
			}
		}
		if companions > 2 {
			t.Fatalf("system has %d companions", companions)
		}
		counts[companions]++
	}

	for i, want := range []float64{0.7, 0.2, 0.1} {
		got := float64(counts[i]) / systems
		if math.Abs(got-want) > 0.02 {
			t.Errorf("multiplicity %d: empirical fraction %v, want %v +-0.02", i+1, got, want)
		}
	}
}

func TestExpandPlanetCountMonotonicInP(t *testing.T) {
	p := classicParams()

	meanPlanets := func(geomP float64) float64 {
		p := p
		p.PlanetGeometricP = geomP
		// Single-star roots only, so every child is a planet.
		p.StarWeights = [3]float64{1, 0, 0}

		total := 0
		const systems = 3000
		for i := 0; i < systems; i++ {
			root, err := Expand(rng.New(rng.DeriveSeed(777, i)), p)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			total += len(root.Children)
		}
		return float64(total) / systems
	}

	if m := meanPlanets(1); m != 0 {
		t.Errorf("p=1 mean planet count = %v, want 0", m)
	}

	prev := -1.0
	for _, geomP := range []float64{0.9, 0.6, 0.3, 0.15} {
		m := meanPlanets(geomP)
		if m <= prev {
			t.Errorf("mean planet count not increasing: p=%v gave %v after %v", geomP, m, prev)
		}
		prev = m
	}
}

func TestExpandRejectsInvalidParams(t *testing.T) {
	cases := map[string]func(*Params){
		"zero star weights":  func(p *Params) { p.StarWeights = [3]float64{0, 0, 0} },
		"negative weight":    func(p *Params) { p.StarWeights = [3]float64{1, -1, 0.5} },
		"planet p zero":      func(p *Params) { p.PlanetGeometricP = 0 },
		"planet p above one": func(p *Params) { p.PlanetGeometricP = 1.5 },
		"moon p zero":        func(p *Params) { p.MoonGeometricP = 0 },
	}

	for name, mutate := range cases {
		p := classicParams()
		mutate(&p)
		if _, err := Expand(rng.New(1), p); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !errors.IsType(err, errors.ErrorTypeValidation) {
			t.Errorf("%s: error type = %v, want validation", name, errors.GetType(err))
		}
	}
}

func TestExpandNodeCap(t *testing.T) {
	p := classicParams()
	// Ternary roots always produce at least three nodes.
	p.StarWeights = [3]float64{0, 0, 1}
	p.MaxNodes = 2

	_, err := Expand(rng.New(42), p)
	if err == nil {
		t.Fatal("expected resource limit error")
	}
	if !errors.IsType(err, errors.ErrorTypeResourceLimit) {
		t.Errorf("error type = %v, want resource_limit", errors.GetType(err))
	}
}

func TestDeepHierarchyPreset(t *testing.T) {
	p, err := PresetParams(PresetDeepHierarchy)
	if err != nil {
		t.Fatalf("PresetParams: %v", err)
	}

	root, err := Expand(rng.New(5), p)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if root.Type != SymbolGroup {
		t.Fatalf("root type = %v, want group", root.Type)
	}

	root.Walk(func(n *Node) {
		if n.Type == SymbolGroup && n.Depth >= p.MaxGroupDepth {
			t.Errorf("group at depth %d exceeds cap %d", n.Depth, p.MaxGroupDepth)
		}
	})
}

func TestPresetCatalog(t *testing.T) {
	for _, id := range Presets() {
		p, err := PresetParams(id)
		if err != nil {
			t.Errorf("preset %s: %v", id, err)
			continue
		}
		if err := p.validate(); err != nil {
			t.Errorf("preset %s has invalid params: %v", id, err)
		}
	}

	if _, err := PresetParams("no-such-preset"); err == nil {
		t.Error("unknown preset: expected error")
	}
}
