package universe

import (
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"starforge-server/internal/procgen/grammar"
	"starforge-server/internal/shared/errors"
)

func testGenerator() *Generator {
	return NewGenerator(slog.Default())
}

func scenarioConfig(seed int64) Config {
	return Config{
		StarWeights:      [3]float64{1, 0, 0},
		PlanetGeometricP: 0.5,
		MoonGeometricP:   0.5,
		OrbitBase:        1.0,
		OrbitGrowth:      1.8,
		OrbitK:           2.0,
	}.WithSeed(seed)
}

func TestGenerateSystemDeterminism(t *testing.T) {
	gen := testGenerator()
	cfg := scenarioConfig(42)

	a, err := gen.GenerateSystem(cfg)
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}
	b, err := gen.GenerateSystem(cfg)
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}

	aJSON, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	bJSON, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(aJSON) != string(bJSON) {
		t.Error("identical (seed, config) produced different universes")
	}
}

func TestGenerateSystemScenario(t *testing.T) {
	gen := testGenerator()
	u, err := gen.GenerateSystem(scenarioConfig(42))
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}

	if len(u.RootIDs) != 1 {
		t.Fatalf("root count = %d, want 1", len(u.RootIDs))
	}
	root := u.Bodies[u.RootIDs[0]]
	if root.Type != BodyTypeStar {
		t.Errorf("root type = %s, want star", root.Type)
	}
	for _, childID := range root.ChildIDs {
		if u.Bodies[childID].Type == BodyTypeStar {
			t.Error("single-star weights produced a companion star")
		}
	}

	// Planetary orbits start near orbit_base and strictly increase.
	if len(root.ChildIDs) > 0 {
		first := u.Bodies[root.ChildIDs[0]]
		if first.OrbitRadius < 1.0 || first.OrbitRadius > 1.3 {
			t.Errorf("first orbit radius = %v, want near 1.0", first.OrbitRadius)
		}
	}

	report := Validate(u)
	if !report.Valid {
		t.Errorf("generated universe is invalid: %v", report.Errors)
	}
}

func TestGeneratedOrbitsStrictlyIncrease(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig()

	for seed := int64(0); seed < 50; seed++ {
		u, err := gen.GenerateSystem(cfg.WithSeed(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, body := range u.Bodies {
			prev := 0.0
			for i, childID := range body.ChildIDs {
				child := u.Bodies[childID]
				if i > 0 && child.OrbitRadius <= prev {
					t.Fatalf("seed %d: body %s child %d orbit %v <= previous %v",
						seed, body.ID, i, child.OrbitRadius, prev)
				}
				prev = child.OrbitRadius
			}
		}
	}
}

func TestGeneratedUniversesAreValid(t *testing.T) {
	gen := testGenerator()

	for _, preset := range grammar.Presets() {
		cfg := Config{Preset: preset}.WithSeed(7)
		u, err := gen.GenerateSystem(cfg)
		if err != nil {
			t.Fatalf("preset %s: %v", preset, err)
		}
		report := Validate(u)
		if !report.Valid {
			t.Errorf("preset %s produced invalid universe: %v", preset, report.Errors)
		}

		stats := Analyze(u)
		if stats.BodyCount != len(u.Bodies) {
			t.Errorf("preset %s: stats body count %d, universe has %d", preset, stats.BodyCount, len(u.Bodies))
		}
	}
}

func TestMoonCountMean(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig()
	cfg.MoonGeometricP = 0.5

	planets, moons := 0, 0
	for i := 0; i < 400; i++ {
		u, err := gen.GenerateSystem(cfg.WithSeed(int64(i)))
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		stats := Analyze(u)
		planets += stats.PlanetCount
		moons += stats.MoonCount
	}
	if planets == 0 {
		t.Fatal("no planets generated")
	}

	mean := float64(moons) / float64(planets)
	want := (1 - cfg.MoonGeometricP) / cfg.MoonGeometricP
	if math.Abs(mean-want) > 0.15 {
		t.Errorf("mean moons per planet = %v, want ~%v", mean, want)
	}
}

func TestPlanetGeometricPOne(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig()
	cfg.PlanetGeometricP = 1

	for i := 0; i < 50; i++ {
		u, err := gen.GenerateSystem(cfg.WithSeed(int64(i)))
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		if stats := Analyze(u); stats.PlanetCount != 0 {
			t.Fatalf("seed %d: planet count = %d, want 0", i, stats.PlanetCount)
		}
	}
}

func TestGenerateSystemRejectsInvalidConfig(t *testing.T) {
	gen := testGenerator()

	cases := map[string]Config{
		"zero star weights": {
			StarWeights:      [3]float64{0, 0, 0},
			PlanetGeometricP: 0.5,
			MoonGeometricP:   0.5,
		},
		"planet p zero": {
			StarWeights:      [3]float64{1, 0, 0},
			PlanetGeometricP: 0,
			MoonGeometricP:   0.5,
		},
		"orbit growth at one": {
			StarWeights:      [3]float64{1, 0, 0},
			PlanetGeometricP: 0.5,
			MoonGeometricP:   0.5,
			OrbitGrowth:      1,
		},
		"unknown preset": {
			Preset: "no-such-preset",
		},
	}

	for name, cfg := range cases {
		if _, err := gen.GenerateSystem(cfg.WithSeed(1)); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !errors.IsType(err, errors.ErrorTypeValidation) {
			t.Errorf("%s: error type = %v, want validation", name, errors.GetType(err))
		}
	}
}

func TestGenerateSystemBodyCap(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig()
	cfg.StarWeights = [3]float64{0, 0, 1}
	cfg.MaxBodies = 2

	_, err := gen.GenerateSystem(cfg.WithSeed(9))
	if err == nil {
		t.Fatal("expected resource limit error")
	}
	if !errors.IsType(err, errors.ErrorTypeResourceLimit) {
		t.Errorf("error type = %v, want resource_limit", errors.GetType(err))
	}
}

func TestGenerateSystemsDerivedSeeds(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig().WithSeed(42)

	batchA, err := gen.GenerateSystems(3, cfg)
	if err != nil {
		t.Fatalf("GenerateSystems: %v", err)
	}
	batchB, err := gen.GenerateSystems(3, cfg)
	if err != nil {
		t.Fatalf("GenerateSystems: %v", err)
	}

	for i := range batchA {
		if batchA[i].Seed != batchB[i].Seed {
			t.Errorf("system %d seeds differ across identical batches", i)
		}
	}

	seen := map[int64]bool{}
	for _, u := range batchA {
		if seen[u.Seed] {
			t.Errorf("duplicate derived seed %d", u.Seed)
		}
		seen[u.Seed] = true
	}

	if _, err := gen.GenerateSystems(0, cfg); err == nil {
		t.Error("zero count: expected error")
	}
}

func TestFreshSeedIsEchoed(t *testing.T) {
	gen := testGenerator()
	cfg := DefaultConfig() // no seed

	u, err := gen.GenerateSystem(cfg)
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}

	replay, err := gen.GenerateSystem(cfg.WithSeed(u.Seed))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(replay.Bodies) != len(u.Bodies) {
		t.Errorf("replay with echoed seed produced %d bodies, original had %d",
			len(replay.Bodies), len(u.Bodies))
	}
}
