package galaxy

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"starforge-server/internal/shared/errors"
	"starforge-server/internal/universe"
)

func testComposer(maxSize int) *Composer {
	logger := slog.Default()
	return NewComposer(universe.NewGenerator(logger), maxSize, logger)
}

func TestGenerateGalaxyStructure(t *testing.T) {
	c := testComposer(0)
	cfg := universe.DefaultConfig().WithSeed(99)

	g, err := c.GenerateGalaxy(5, cfg)
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
	}

	if len(g.RootIDs) != 5 {
		t.Errorf("root system count = %d, want 5", len(g.RootIDs))
	}
	if len(g.RootGroupIDs) != 1 {
		t.Errorf("root group count = %d, want 1", len(g.RootGroupIDs))
	}
	if len(g.Groups) < 5 {
		t.Errorf("group count = %d, want at least one per system", len(g.Groups))
	}

	report := universe.Validate(g)
	if !report.Valid {
		t.Errorf("composed galaxy is invalid: %v", report.Errors)
	}
	for _, e := range report.Errors {
		if strings.Contains(e, "cycle") {
			t.Errorf("composed galaxy contains a cycle: %s", e)
		}
	}
}

func TestGenerateGalaxyDeterminism(t *testing.T) {
	c := testComposer(0)
	cfg := universe.DefaultConfig().WithSeed(7)

	a, err := c.GenerateGalaxy(3, cfg)
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
	}
	b, err := c.GenerateGalaxy(3, cfg)
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
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
		t.Error("identical (seed, count) produced different galaxies")
	}
}

func TestGenerateGalaxyClusterPositions(t *testing.T) {
	c := testComposer(0)
	g, err := c.GenerateGalaxy(6, universe.DefaultConfig().WithSeed(13))
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
	}

	positioned := 0
	for _, group := range g.Groups {
		if group.Position.X != 0 || group.Position.Z != 0 {
			positioned++
		}
	}
	if positioned < 6 {
		t.Errorf("positioned groups = %d, want at least one per system", positioned)
	}
}

func TestGenerateGalaxyCountValidation(t *testing.T) {
	c := testComposer(0)

	_, err := c.GenerateGalaxy(0, universe.DefaultConfig())
	if err == nil {
		t.Fatal("zero count: expected error")
	}
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("error type = %v, want validation", errors.GetType(err))
	}
}

func TestGenerateGalaxySizeCap(t *testing.T) {
	c := testComposer(4)

	_, err := c.GenerateGalaxy(5, universe.DefaultConfig().WithSeed(1))
	if err == nil {
		t.Fatal("oversized galaxy: expected error")
	}
	if !errors.IsType(err, errors.ErrorTypeResourceLimit) {
		t.Errorf("error type = %v, want resource_limit", errors.GetType(err))
	}
}

func TestGenerateGalaxyDistinctSystemSeeds(t *testing.T) {
	c := testComposer(0)
	g, err := c.GenerateGalaxy(4, universe.DefaultConfig().WithSeed(21))
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
	}

	// Each system names its star independently; with distinct derived
	// seeds the four roots should not all share one name.
	names := map[string]bool{}
	for _, rootID := range g.RootIDs {
		names[g.Bodies[rootID].Name] = true
	}
	if len(names) < 2 {
		t.Errorf("all %d roots share a name, derived seeds look identical", len(g.RootIDs))
	}
}
