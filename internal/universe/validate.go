package universe

import (
	"fmt"
	"sort"
)

// Limits are the structural bounds the validator enforces.
type Limits struct {
	// MaxChildren bounds the child list of any single body or group.
	MaxChildren int
}

// DefaultLimits matches the widest tree the default grammar can plausibly
// produce.
func DefaultLimits() Limits {
	return Limits{MaxChildren: 256}
}

// Report is the validator output. It is always returned as data — the
// validator never fails — so batches of universes can be checked without
// one bad instance aborting the run.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a universe against the structural invariants using the
// default limits.
func Validate(u *Universe) Report {
	return ValidateWithLimits(u, DefaultLimits())
}

// ValidateWithLimits inspects a universe for invariant violations: child
// references must resolve, the graph must be acyclic, sibling orbits must
// strictly increase, declared roots must exactly match parentless nodes,
// mass must be positive, and child counts must stay within limits.
func ValidateWithLimits(u *Universe, limits Limits) Report {
	var errs []string

	if u == nil {
		return Report{Valid: false, Errors: []string{"universe is nil"}}
	}

	errs = append(errs, checkReferences(u)...)
	errs = append(errs, checkCycles(u)...)
	errs = append(errs, checkOrbitOrdering(u)...)
	errs = append(errs, checkRoots(u)...)
	errs = append(errs, checkMass(u)...)
	errs = append(errs, checkChildBounds(u, limits)...)

	if errs == nil {
		errs = []string{}
	}
	return Report{Valid: len(errs) == 0, Errors: errs}
}

// checkReferences verifies every referenced child id exists: body children
// must be bodies, group children may be groups or bodies.
func checkReferences(u *Universe) []string {
	var errs []string

	incoming := make(map[string]int, len(u.Bodies))
	for _, id := range sortedBodyIDs(u) {
		for _, childID := range u.Bodies[id].ChildIDs {
			if _, ok := u.Bodies[childID]; !ok {
				errs = append(errs, fmt.Sprintf("body %s references missing child %s", id, childID))
				continue
			}
			incoming[childID]++
		}
	}
	// A body may appear in at most one child list.
	for _, id := range sortedBodyIDs(u) {
		if incoming[id] > 1 {
			errs = append(errs, fmt.Sprintf("body %s appears in %d child lists", id, incoming[id]))
		}
	}
	for _, id := range sortedGroupIDs(u) {
		for _, childID := range u.Groups[id].ChildIDs {
			if _, okGroup := u.Groups[childID]; okGroup {
				continue
			}
			if _, okBody := u.Bodies[childID]; okBody {
				continue
			}
			errs = append(errs, fmt.Sprintf("group %s references missing child %s", id, childID))
		}
	}
	return errs
}

// checkCycles runs depth-first cycle detection twice: over child edges with
// a visited set plus an active path, and over parent back-references. An id
// appearing in its own active path is a cycle.
func checkCycles(u *Universe) []string {
	var errs []string

	// Child-edge DFS, started from every node so detached cycles are
	// found too.
	visited := make(map[string]bool, len(u.Bodies))
	for _, start := range sortedBodyIDs(u) {
		if visited[start] {
			continue
		}
		onPath := map[string]bool{}
		var walk func(id string)
		walk = func(id string) {
			if onPath[id] {
				errs = append(errs, fmt.Sprintf("cycle detected through child references at body %s", id))
				return
			}
			if visited[id] {
				return
			}
			visited[id] = true
			onPath[id] = true
			if body, ok := u.Bodies[id]; ok {
				for _, childID := range body.ChildIDs {
					walk(childID)
				}
			}
			delete(onPath, id)
		}
		walk(start)
	}

	// Parent-chain walk catches cycles expressed only through back
	// references, including a body declaring itself as parent.
	chainVisited := make(map[string]bool, len(u.Bodies))
	for _, start := range sortedBodyIDs(u) {
		if chainVisited[start] {
			continue
		}
		onPath := map[string]bool{}
		id := start
		for id != "" {
			if onPath[id] {
				errs = append(errs, fmt.Sprintf("cycle detected through parent references at body %s", id))
				break
			}
			if chainVisited[id] {
				break
			}
			onPath[id] = true
			chainVisited[id] = true
			body, ok := u.Bodies[id]
			if !ok {
				break
			}
			id = body.ParentID
		}
	}

	// Group parent chains.
	groupVisited := make(map[string]bool, len(u.Groups))
	for _, start := range sortedGroupIDs(u) {
		if groupVisited[start] {
			continue
		}
		onPath := map[string]bool{}
		id := start
		for id != "" {
			if onPath[id] {
				errs = append(errs, fmt.Sprintf("cycle detected through parent references at group %s", id))
				break
			}
			if groupVisited[id] {
				break
			}
			onPath[id] = true
			groupVisited[id] = true
			group, ok := u.Groups[id]
			if !ok {
				break
			}
			id = group.ParentGroupID
		}
	}

	return errs
}

// checkOrbitOrdering verifies orbit radii strictly increase across siblings
// in assigned order.
func checkOrbitOrdering(u *Universe) []string {
	var errs []string
	for _, id := range sortedBodyIDs(u) {
		prev := 0.0
		for i, childID := range u.Bodies[id].ChildIDs {
			child, ok := u.Bodies[childID]
			if !ok {
				continue
			}
			if i > 0 && child.OrbitRadius <= prev {
				errs = append(errs, fmt.Sprintf(
					"body %s: orbit radius %v of child %s does not exceed previous sibling's %v",
					id, child.OrbitRadius, childID, prev))
			}
			prev = child.OrbitRadius
		}
	}
	return errs
}

// checkRoots verifies the declared root lists exactly match the parentless
// nodes, and that every non-root appears in its declared parent's child
// list.
func checkRoots(u *Universe) []string {
	var errs []string

	rootSet := make(map[string]bool, len(u.RootIDs))
	for _, id := range u.RootIDs {
		rootSet[id] = true
		if _, ok := u.Bodies[id]; !ok {
			errs = append(errs, fmt.Sprintf("root list references missing body %s", id))
		}
	}

	for _, id := range sortedBodyIDs(u) {
		body := u.Bodies[id]
		if body.ParentID == "" {
			if !rootSet[id] {
				errs = append(errs, fmt.Sprintf("body %s has no parent but is not declared as a root", id))
			}
			continue
		}
		if rootSet[id] {
			errs = append(errs, fmt.Sprintf("body %s is declared as a root but has parent %s", id, body.ParentID))
		}
		parent, ok := u.Bodies[body.ParentID]
		if !ok {
			errs = append(errs, fmt.Sprintf("body %s references missing parent %s", id, body.ParentID))
			continue
		}
		if countOccurrences(parent.ChildIDs, id) != 1 {
			errs = append(errs, fmt.Sprintf("body %s does not appear exactly once in parent %s child list", id, body.ParentID))
		}
	}

	rootGroupSet := make(map[string]bool, len(u.RootGroupIDs))
	for _, id := range u.RootGroupIDs {
		rootGroupSet[id] = true
		if _, ok := u.Groups[id]; !ok {
			errs = append(errs, fmt.Sprintf("root group list references missing group %s", id))
		}
	}
	for _, id := range sortedGroupIDs(u) {
		group := u.Groups[id]
		if group.ParentGroupID == "" {
			if !rootGroupSet[id] {
				errs = append(errs, fmt.Sprintf("group %s has no parent but is not declared as a root group", id))
			}
			continue
		}
		if rootGroupSet[id] {
			errs = append(errs, fmt.Sprintf("group %s is declared as a root group but has parent %s", id, group.ParentGroupID))
		}
		parent, ok := u.Groups[group.ParentGroupID]
		if !ok {
			errs = append(errs, fmt.Sprintf("group %s references missing parent %s", id, group.ParentGroupID))
			continue
		}
		if countOccurrences(parent.ChildIDs, id) != 1 {
			errs = append(errs, fmt.Sprintf("group %s does not appear exactly once in parent %s child list", id, group.ParentGroupID))
		}
	}

	return errs
}

func checkMass(u *Universe) []string {
	var errs []string
	for _, id := range sortedBodyIDs(u) {
		if u.Bodies[id].Mass <= 0 {
			errs = append(errs, fmt.Sprintf("body %s has non-positive mass %v", id, u.Bodies[id].Mass))
		}
	}
	return errs
}

func checkChildBounds(u *Universe, limits Limits) []string {
	if limits.MaxChildren <= 0 {
		return nil
	}
	var errs []string
	for _, id := range sortedBodyIDs(u) {
		if n := len(u.Bodies[id].ChildIDs); n > limits.MaxChildren {
			errs = append(errs, fmt.Sprintf("body %s has %d children, limit is %d", id, n, limits.MaxChildren))
		}
	}
	for _, id := range sortedGroupIDs(u) {
		if n := len(u.Groups[id].ChildIDs); n > limits.MaxChildren {
			errs = append(errs, fmt.Sprintf("group %s has %d children, limit is %d", id, n, limits.MaxChildren))
		}
	}
	return errs
}

func countOccurrences(ids []string, id string) int {
	n := 0
	for _, candidate := range ids {
		if candidate == id {
			n++
		}
	}
	return n
}

// Map iteration order is unspecified; sorting keeps reports stable so the
// same universe always yields the same error list.
func sortedBodyIDs(u *Universe) []string {
	ids := make([]string, 0, len(u.Bodies))
	for id := range u.Bodies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedGroupIDs(u *Universe) []string {
	ids := make([]string, 0, len(u.Groups))
	for id := range u.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
