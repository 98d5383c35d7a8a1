package rmlsa

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine replays a demand batch through one assignment policy. Each Run
// starts from an all-free NetworkState, so independent runs never observe
// each other's allocations.
type Engine struct {
	topo   *Topology
	params Params
	policy AssignmentPolicy
}

// NewEngine wires a topology, parameter set, and policy name into a
// runnable engine. Unknown policy names and invalid parameters are config
// errors, returned rather than deferred to Run.
func NewEngine(topo *Topology, params Params, policyName string) (*Engine, error) {
	if topo == nil {
		return nil, fmt.Errorf("engine: topology must not be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if !IsValidPolicy(policyName) {
		return nil, fmt.Errorf("engine: unknown assignment policy %q", policyName)
	}
	return &Engine{
		topo:   topo,
		params: params,
		policy: NewPolicy(policyName, topo, params),
	}, nil
}

// Run assigns a copy of demands sorted for assignment (descending
// bandwidth, ties by ascending id) through a fresh NetworkState and
// returns the resulting Solution. The caller's slice and order are left
// untouched. Blocked demands are recorded, never returned as errors.
func (e *Engine) Run(demands []Demand) (*Solution, error) {
	state, err := NewNetworkState(e.topo, e.params.NumSlots)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	start := time.Now()
	sorted := SortForAssignment(demands)
	sol := &Solution{
		Algorithm: e.policy.Name(),
		Topology:  e.topo,
		Params:    e.params,
		Demands:   sorted,
	}
	for i, d := range sorted {
		decision := e.policy.Assign(state, d)
		if decision.Assigned {
			sol.Assignments = append(sol.Assignments, decision.Assignment)
			logrus.WithFields(logrus.Fields{
				"demand":    d.ID,
				"progress":  fmt.Sprintf("%d/%d", i+1, len(sorted)),
				"path":      decision.Assignment.Path.Nodes,
				"start":     decision.Assignment.StartSlot,
				"slots":     decision.Assignment.SlotCount,
				"format":    decision.Assignment.Format,
				"watermark": state.Watermark(),
			}).Debug("assigned")
		} else {
			sol.Blocked = append(sol.Blocked, BlockedDemand{Demand: d, Reason: decision.Reason})
			logrus.WithFields(logrus.Fields{
				"demand":   d.ID,
				"progress": fmt.Sprintf("%d/%d", i+1, len(sorted)),
				"reason":   decision.Reason,
			}).Debug("blocked")
		}
	}
	sol.Elapsed = time.Since(start)
	logrus.WithFields(logrus.Fields{
		"algorithm": sol.Algorithm,
		"assigned":  sol.AssignedCount(),
		"blocked":   sol.BlockedCount(),
		"watermark": sol.Watermark(),
	}).Debug("run complete")
	return sol, nil
}
