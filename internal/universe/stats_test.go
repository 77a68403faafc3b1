package universe

import (
	"log/slog"
	"testing"
)

func TestAnalyzeHandRolledUniverse(t *testing.T) {
	u := validUniverse()
	stats := Analyze(u)

	if stats.BodyCount != 4 {
		t.Errorf("body count = %d, want 4", stats.BodyCount)
	}
	if stats.StarCount != 1 || stats.PlanetCount != 2 || stats.MoonCount != 1 {
		t.Errorf("type counts = %d/%d/%d, want 1/2/1",
			stats.StarCount, stats.PlanetCount, stats.MoonCount)
	}
	if stats.MaxDepth != 2 {
		t.Errorf("max depth = %d, want 2", stats.MaxDepth)
	}
	if want := (0 + 1 + 1 + 2) / 4.0; stats.AvgDepth != want {
		t.Errorf("avg depth = %v, want %v", stats.AvgDepth, want)
	}
	if stats.MinMass != 0.01 || stats.MaxMass != 1.2 {
		t.Errorf("mass range = [%v, %v], want [0.01, 1.2]", stats.MinMass, stats.MaxMass)
	}
	if stats.SingleStarSystems != 1 || stats.BinaryStarSystems != 0 || stats.TernaryStarSystems != 0 {
		t.Errorf("multiplicity tallies = %d/%d/%d, want 1/0/0",
			stats.SingleStarSystems, stats.BinaryStarSystems, stats.TernaryStarSystems)
	}
	if stats.RootSystems != 1 {
		t.Errorf("root systems = %d, want 1", stats.RootSystems)
	}
}

func TestAnalyzeMultiplicityTallies(t *testing.T) {
	u := validUniverse()
	// Promote the system to binary by adding a companion star.
	u.Bodies["star-2"] = &Body{
		ID: "star-2", Type: BodyTypeStar, Name: "Altair B", Mass: 0.8,
		OrbitRadius: 30, Depth: 1, ParentID: "star-1", ChildIDs: []string{},
	}
	u.Bodies["star-1"].ChildIDs = append(u.Bodies["star-1"].ChildIDs, "star-2")

	stats := Analyze(u)
	if stats.BinaryStarSystems != 1 || stats.SingleStarSystems != 0 {
		t.Errorf("tallies = single %d binary %d, want 0/1",
			stats.SingleStarSystems, stats.BinaryStarSystems)
	}
}

func TestAnalyzeEmptyUniverse(t *testing.T) {
	stats := Analyze(NewUniverse(0))
	if stats.BodyCount != 0 || stats.MinMass != 0 || stats.MaxMass != 0 {
		t.Errorf("empty universe stats not zeroed: %+v", stats)
	}
}

func TestAnalyzeGroupAggregates(t *testing.T) {
	gen := NewGenerator(slog.Default())
	cfg := Config{Preset: "deep-hierarchy"}.WithSeed(11)

	u, err := gen.GenerateSystem(cfg)
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}

	stats := Analyze(u)
	if stats.TotalGroups != len(u.Groups) {
		t.Errorf("total groups = %d, want %d", stats.TotalGroups, len(u.Groups))
	}
	if stats.RootGroups != len(u.RootGroupIDs) {
		t.Errorf("root groups = %d, want %d", stats.RootGroups, len(u.RootGroupIDs))
	}
	if stats.RootGroups < 1 {
		t.Error("deep-hierarchy preset produced no root group")
	}
}

func TestAnalyzeDoesNotMutate(t *testing.T) {
	gen := NewGenerator(slog.Default())
	u, err := gen.GenerateSystem(DefaultConfig().WithSeed(3))
	if err != nil {
		t.Fatalf("GenerateSystem: %v", err)
	}

	before := len(u.Bodies)
	_ = Analyze(u)
	_ = Analyze(u)
	if len(u.Bodies) != before {
		t.Error("Analyze mutated the universe")
	}
}
