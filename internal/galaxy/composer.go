// Package galaxy arranges independently generated star systems under
// positioned group nodes, producing a single universe that spans many
// systems.
package galaxy

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"starforge-server/internal/procgen/rng"
	"starforge-server/internal/shared/errors"
	"starforge-server/internal/universe"
)

var galaxyNames = []string{
	"Andromeda", "Centaurus", "Pegasus", "Cygnus", "Draco", "Phoenix",
}

var armNames = []string{
	"Perseus Arm", "Orion Arm", "Sagittarius Arm", "Norma Arm", "Scutum Arm",
}

// Spiral layout constants: cluster positions advance along an arm by a
// fixed angular step and a linearly growing radius.
const (
	armAngleStep   = 0.55
	armInnerRadius = 12.0
	armRadiusStep  = 9.0
)

// Composer builds galaxies out of generated systems.
type Composer struct {
	gen     *universe.Generator
	maxSize int
	logger  *slog.Logger
}

// NewComposer creates a composer. maxSize caps the per-request system
// count; 0 disables the cap.
func NewComposer(gen *universe.Generator, maxSize int, logger *slog.Logger) *Composer {
	return &Composer{
		gen:     gen,
		maxSize: maxSize,
		logger:  logger,
	}
}

// GenerateGalaxy produces systemCount independent systems and wraps them in
// a positioned group hierarchy: one root galaxy group, spiral arms beneath
// it, and one cluster group per system. Nodes attach only to just-created
// parents, so the composed graph is acyclic by construction; cycle
// detection stays with the validator as a safety net.
func (c *Composer) GenerateGalaxy(systemCount int, cfg universe.Config) (*universe.Universe, error) {
	if systemCount <= 0 {
		return nil, errors.Validationf("system count must be positive, got %d", systemCount)
	}
	if c.maxSize > 0 && systemCount > c.maxSize {
		return nil, errors.ResourceLimitf("galaxy of %d systems exceeds the configured cap of %d", systemCount, c.maxSize)
	}

	// Resolve the master seed here so composer-level group ids share no
	// seed with any per-system id namespace.
	master := time.Now().UnixNano()
	if cfg.Seed != nil {
		master = *cfg.Seed
	}

	systems, err := c.gen.GenerateSystems(systemCount, cfg.WithSeed(master))
	if err != nil {
		return nil, err
	}

	layout := rng.New(rng.DeriveSeed(master, -1))

	galaxy := universe.NewUniverse(master)
	ordinal := 0
	newGroup := func(name, parentID string, pos universe.Position) *universe.Group {
		group := &universe.Group{
			ID:            universe.GroupID(master, ordinal),
			Name:          name,
			ParentGroupID: parentID,
			ChildIDs:      []string{},
			Position:      pos,
		}
		ordinal++
		galaxy.Groups[group.ID] = group
		if parentID == "" {
			galaxy.RootGroupIDs = append(galaxy.RootGroupIDs, group.ID)
		} else {
			parent := galaxy.Groups[parentID]
			parent.ChildIDs = append(parent.ChildIDs, group.ID)
		}
		return group
	}

	name := galaxyNames[int(uint64(master)%uint64(len(galaxyNames)))]
	root := newGroup(name, "", universe.Position{})

	armCount := len(armNames)
	if systemCount < armCount {
		armCount = systemCount
	}
	arms := make([]*universe.Group, armCount)
	for i := 0; i < armCount; i++ {
		arms[i] = newGroup(armNames[i], root.ID, universe.Position{})
	}

	for i, system := range systems {
		arm := arms[i%armCount]
		pos := spiralPosition(layout, i/armCount, i%armCount, armCount)
		cluster := newGroup(fmt.Sprintf("%s Cluster %d", name, i+1), arm.ID, pos)

		mergeSystem(galaxy, system, cluster)
	}

	c.logger.Info("Galaxy composed",
		"name", name,
		"master_seed", master,
		"systems", systemCount,
		"groups", len(galaxy.Groups),
		"bodies", len(galaxy.Bodies),
	)
	return galaxy, nil
}

// spiralPosition places the step-th cluster of an arm along a spiral, with
// stream jitter so arms are not perfectly regular.
func spiralPosition(layout *rng.Stream, step, arm, armCount int) universe.Position {
	angle := 2*math.Pi*float64(arm)/float64(armCount) + armAngleStep*float64(step)
	radius := armInnerRadius + armRadiusStep*float64(step) + 2*layout.Float64()
	return universe.Position{
		X: radius * math.Cos(angle),
		Y: (layout.Float64() - 0.5) * 4,
		Z: radius * math.Sin(angle),
	}
}

// mergeSystem copies a generated system into the galaxy and hangs its roots
// off the cluster group. System-local groups (deep-hierarchy presets) are
// reparented under the cluster.
func mergeSystem(galaxy *universe.Universe, system *universe.Universe, cluster *universe.Group) {
	for id, body := range system.Bodies {
		galaxy.Bodies[id] = body
	}
	galaxy.RootIDs = append(galaxy.RootIDs, system.RootIDs...)

	for id, group := range system.Groups {
		galaxy.Groups[id] = group
	}
	for _, groupID := range system.RootGroupIDs {
		group := galaxy.Groups[groupID]
		group.ParentGroupID = cluster.ID
		cluster.ChildIDs = append(cluster.ChildIDs, groupID)
	}

	// Roots already claimed by a system-local group keep that membership;
	// the rest attach directly to the cluster.
	claimed := map[string]bool{}
	for _, group := range system.Groups {
		for _, childID := range group.ChildIDs {
			claimed[childID] = true
		}
	}
	for _, rootID := range system.RootIDs {
		if !claimed[rootID] {
			cluster.ChildIDs = append(cluster.ChildIDs, rootID)
		}
	}
}
