package search

import (
	"fmt"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

// Evaluator replays candidates against a fresh NetworkState and scores
// them. The route table (k shortest loopless paths per demand) is computed
// once at construction; after that every field is read-only, so a single
// Evaluator may serve concurrent evaluations.
type Evaluator struct {
	topo    *rmlsa.Topology
	params  rmlsa.Params
	weights rmlsa.FitnessWeights
	demands []rmlsa.Demand // assignment order: descending bandwidth, ties by id
	routes  [][]rmlsa.Path
	counts  []int // len(routes[i]), kept separately for the mutation ops
}

// NewEvaluator validates the configuration, fixes the demand order, and
// precomputes each demand's candidate routes.
func NewEvaluator(topo *rmlsa.Topology, params rmlsa.Params, weights rmlsa.FitnessWeights, demands []rmlsa.Demand) (*Evaluator, error) {
	if topo == nil {
		return nil, fmt.Errorf("evaluator: topology must not be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("evaluator: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("evaluator: %w", err)
	}
	sorted := rmlsa.SortForAssignment(demands)
	finder := rmlsa.NewPathFinder(topo)
	routes := make([][]rmlsa.Path, len(sorted))
	counts := make([]int, len(sorted))
	for i, d := range sorted {
		routes[i] = finder.KShortest(d.Source, d.Destination, params.K)
		counts[i] = len(routes[i])
	}
	return &Evaluator{
		topo:    topo,
		params:  params,
		weights: weights,
		demands: sorted,
		routes:  routes,
		counts:  counts,
	}, nil
}

// NumDemands returns the batch size.
func (e *Evaluator) NumDemands() int { return len(e.demands) }

// RouteCounts returns per-demand candidate route counts. Read-only.
func (e *Evaluator) RouteCounts() []int { return e.counts }

// Weights returns the fitness weighting in use.
func (e *Evaluator) Weights() rmlsa.FitnessWeights { return e.weights }

// Greedy returns the deterministic seed candidate (batch order, shortest
// routes).
func (e *Evaluator) Greedy() Candidate {
	return greedyCandidate(len(e.demands))
}

// Evaluate replays cand from an empty NetworkState and returns the
// resulting solution with its fitness. Pure: identical candidates always
// produce identical solutions, and no state survives between calls.
func (e *Evaluator) Evaluate(cand Candidate) (*rmlsa.Solution, float64) {
	state, err := rmlsa.NewNetworkState(e.topo, e.params.NumSlots)
	if err != nil {
		// Params were validated at construction; a failure here is
		// programmer error.
		panic(fmt.Sprintf("evaluate: %v", err))
	}
	sol := &rmlsa.Solution{
		Topology: e.topo,
		Params:   e.params,
		Demands:  e.demands,
	}
	for _, idx := range cand.Order {
		demand := e.demands[idx]
		routes := e.routes[idx]
		if len(routes) == 0 {
			sol.Blocked = append(sol.Blocked, rmlsa.BlockedDemand{Demand: demand, Reason: rmlsa.BlockNoRoute})
			continue
		}
		choice := cand.Choices[idx]
		if choice < 0 || choice >= len(routes) {
			choice = 0
		}
		path := routes[choice]
		format, ok := e.params.Modulation.Select(path.DistanceKm)
		if !ok {
			sol.Blocked = append(sol.Blocked, rmlsa.BlockedDemand{Demand: demand, Reason: rmlsa.BlockUnreachable})
			continue
		}
		count := rmlsa.RequiredSlots(demand.BandwidthGbps, format, e.params.GuardBandSlots)
		start, ok := rmlsa.FirstFit(state, path, count)
		if !ok {
			sol.Blocked = append(sol.Blocked, rmlsa.BlockedDemand{Demand: demand, Reason: rmlsa.BlockSpectrum})
			continue
		}
		state.Allocate(path, start, count)
		sol.Assignments = append(sol.Assignments, rmlsa.Assignment{
			DemandID:  demand.ID,
			Path:      path,
			StartSlot: start,
			SlotCount: count,
			Format:    format.Name,
		})
	}
	return sol, sol.Fitness(e.weights)
}

// Fitness is Evaluate without materializing the solution for callers that
// only rank candidates.
func (e *Evaluator) Fitness(cand Candidate) float64 {
	_, fitness := e.Evaluate(cand)
	return fitness
}
