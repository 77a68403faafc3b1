package universe

import (
	"fmt"

	"github.com/google/uuid"
)

// Fixed namespaces keep generated ids deterministic: the id of the n-th
// body produced under a seed is a pure function of (seed, n).
var (
	bodyNamespace  = uuid.MustParse("8f9d6a3e-1c42-4b7a-9f10-5e8c2d4a6b01")
	groupNamespace = uuid.MustParse("8f9d6a3e-1c42-4b7a-9f10-5e8c2d4a6b02")
)

// BodyID derives the deterministic id of the ordinal-th body generated
// under seed.
func BodyID(seed int64, ordinal int) string {
	return uuid.NewSHA1(bodyNamespace, fmt.Appendf(nil, "%d/%d", seed, ordinal)).String()
}

// GroupID derives the deterministic id of the ordinal-th group generated
// under seed.
func GroupID(seed int64, ordinal int) string {
	return uuid.NewSHA1(groupNamespace, fmt.Appendf(nil, "%d/%d", seed, ordinal)).String()
}
