// Package sessionid defines the dense session identifier shared across
// the supervisor's packages, kept standalone so low-level packages (child,
// tracker) don't need to import the registry to refer to a session.
package sessionid

// ID is a monotonically assigned, dense session identifier. Zero is
// reserved (Legacy) for the pre-multi-session / global scope.
type ID uint64

// Legacy is the reserved zero value denoting "no session" / global scope.
const Legacy ID = 0

// IsLegacy reports whether id is the reserved zero value.
func (id ID) IsLegacy() bool { return id == Legacy }
