package universe

// Stats summarizes a generated universe. All fields are computed in a
// single depth-first pass; Analyze is pure and never mutates its input.
type Stats struct {
	BodyCount   int `json:"body_count"`
	StarCount   int `json:"star_count"`
	PlanetCount int `json:"planet_count"`
	MoonCount   int `json:"moon_count"`

	MaxDepth int     `json:"max_depth"`
	AvgDepth float64 `json:"avg_depth"`

	MinMass float64 `json:"min_mass"`
	MaxMass float64 `json:"max_mass"`

	// Star multiplicity tallies, one per root system.
	SingleStarSystems  int `json:"single_star_systems"`
	BinaryStarSystems  int `json:"binary_star_systems"`
	TernaryStarSystems int `json:"ternary_star_systems"`

	RootSystems int `json:"root_systems"`
	RootGroups  int `json:"root_groups"`
	TotalGroups int `json:"total_groups"`
}

// Analyze computes aggregate metrics over a universe in O(bodies + groups).
func Analyze(u *Universe) Stats {
	if u == nil {
		return Stats{}
	}
	stats := Stats{
		RootSystems: len(u.RootIDs),
		RootGroups:  len(u.RootGroupIDs),
		TotalGroups: len(u.Groups),
	}
	if len(u.Bodies) == 0 {
		return stats
	}

	depthSum := 0
	first := true

	for _, rootID := range u.RootIDs {
		root, ok := u.Bodies[rootID]
		if !ok {
			continue
		}

		systemStars := 0
		stack := []*Body{root}
		for len(stack) > 0 {
			body := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			stats.BodyCount++
			depthSum += body.Depth
			if body.Depth > stats.MaxDepth {
				stats.MaxDepth = body.Depth
			}
			if first || body.Mass < stats.MinMass {
				stats.MinMass = body.Mass
			}
			if first || body.Mass > stats.MaxMass {
				stats.MaxMass = body.Mass
			}
			first = false

			switch body.Type {
			case BodyTypeStar:
				stats.StarCount++
				systemStars++
			case BodyTypePlanet:
				stats.PlanetCount++
			case BodyTypeMoon:
				stats.MoonCount++
			}

			for i := len(body.ChildIDs) - 1; i >= 0; i-- {
				if child, ok := u.Bodies[body.ChildIDs[i]]; ok {
					stack = append(stack, child)
				}
			}
		}

		switch {
		case systemStars >= 3:
			stats.TernaryStarSystems++
		case systemStars == 2:
			stats.BinaryStarSystems++
		case systemStars == 1:
			stats.SingleStarSystems++
		}
	}

	if stats.BodyCount > 0 {
		stats.AvgDepth = float64(depthSum) / float64(stats.BodyCount)
	}
	return stats
}
