package rmlsa

import "fmt"

// BlockReason classifies why a demand could not be assigned. Blocked
// outcomes are ordinary results folded into the blocking metric, never
// errors.
type BlockReason string

const (
	// BlockNoRoute: the endpoints are disconnected, identical, or unknown.
	BlockNoRoute BlockReason = "no-route"
	// BlockUnreachable: every candidate path exceeds all modulation reaches.
	BlockUnreachable BlockReason = "unreachable"
	// BlockSpectrum: no contiguous free block of the required width exists.
	BlockSpectrum BlockReason = "spectrum"
)

// Decision is a policy's verdict for one demand.
type Decision struct {
	Assigned   bool
	Assignment Assignment  // meaningful only when Assigned
	Reason     BlockReason // meaningful only when !Assigned
}

func blocked(reason BlockReason) Decision {
	return Decision{Reason: reason}
}

// AssignmentPolicy decides route, modulation, and spectrum for one demand
// at a time. On success the policy allocates the chosen block in state
// before returning; a blocked demand leaves state untouched. Decisions are
// greedy and irrevocable, and implementations consume no randomness.
type AssignmentPolicy interface {
	Name() string
	Assign(state *NetworkState, demand Demand) Decision
}

// ValidPolicies is the set of recognized assignment policy names.
// Shared by config validation and NewPolicy to avoid duplication.
var ValidPolicies = map[string]bool{"sp-ff": true, "ksp-mw": true}

// IsValidPolicy reports whether name is a recognized assignment policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// NewPolicy creates an assignment policy by name over a fixed topology and
// parameter set. Panics on unrecognized names: callers must validate with
// IsValidPolicy first.
func NewPolicy(name string, topo *Topology, params Params) AssignmentPolicy {
	switch name {
	case "sp-ff":
		return NewSPFF(topo, params)
	case "ksp-mw":
		return NewKSPMW(topo, params)
	default:
		panic(fmt.Sprintf("unknown assignment policy %q", name))
	}
}
