// Package snapshot persists generated universes so a result can be shared
// or fetched again without re-running generation.
package snapshot

import (
	"time"

	"starforge-server/internal/universe"
)

// Snapshot is a stored universe plus the metadata listings are built from.
// Universe is nil in list responses.
type Snapshot struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Seed       int64              `json:"seed"`
	BodyCount  int                `json:"body_count"`
	GroupCount int                `json:"group_count"`
	Universe   *universe.Universe `json:"universe,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}
