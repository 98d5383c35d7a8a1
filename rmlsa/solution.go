package rmlsa

import (
	"errors"
	"fmt"
	"time"
)

// Assignment records a successfully placed demand: its route, the reserved
// slot range [StartSlot, StartSlot+SlotCount), and the modulation format.
// The same range is reserved on every link of Path.
type Assignment struct {
	DemandID  int
	Path      Path
	StartSlot int
	SlotCount int
	Format    string
}

// EndSlot returns the exclusive end of the reserved range.
func (a Assignment) EndSlot() int { return a.StartSlot + a.SlotCount }

// SpectrumUnits returns the slot-link units this assignment consumes.
func (a Assignment) SpectrumUnits() int { return a.SlotCount * a.Path.Hops() }

// BlockedDemand records a demand the run could not place and why.
type BlockedDemand struct {
	Demand Demand
	Reason BlockReason
}

// Solution is the outcome of one assignment run: the placed demands, the
// blocked ones, and enough context to re-derive every aggregate metric.
// Immutable once returned; metrics are computed on demand, never stored.
type Solution struct {
	Algorithm   string
	Topology    *Topology
	Params      Params
	Demands     []Demand // the batch in processing order
	Assignments []Assignment
	Blocked     []BlockedDemand
	Elapsed     time.Duration
}

// TotalDemands returns the batch size.
func (s *Solution) TotalDemands() int { return len(s.Demands) }

// AssignedCount returns the number of placed demands.
func (s *Solution) AssignedCount() int { return len(s.Assignments) }

// BlockedCount returns the number of demands left unplaced.
func (s *Solution) BlockedCount() int { return len(s.Blocked) }

// BlockingFraction returns blocked / total, or 0 for an empty batch.
func (s *Solution) BlockingFraction() float64 {
	if len(s.Demands) == 0 {
		return 0
	}
	return float64(len(s.Blocked)) / float64(len(s.Demands))
}

// Watermark returns 1 + the highest slot index any assignment reserves,
// or 0 when nothing is assigned. Equal to NetworkState.Watermark() after
// replaying the solution.
func (s *Solution) Watermark() int {
	mark := 0
	for _, a := range s.Assignments {
		if a.EndSlot() > mark {
			mark = a.EndSlot()
		}
	}
	return mark
}

// TotalSpectrum returns the slot-link units consumed across all
// assignments.
func (s *Solution) TotalSpectrum() int {
	total := 0
	for _, a := range s.Assignments {
		total += a.SpectrumUnits()
	}
	return total
}

// Utilization returns the percentage of network slot capacity consumed.
func (s *Solution) Utilization() float64 {
	capacity := s.Topology.NumLinks() * s.Params.NumSlots
	if capacity == 0 {
		return 0
	}
	return float64(s.TotalSpectrum()) / float64(capacity) * 100
}

// Fitness scores the solution under w. Lower is better.
func (s *Solution) Fitness(w FitnessWeights) float64 {
	return w.Watermark*float64(s.Watermark()) +
		w.Spectrum*float64(s.TotalSpectrum()) +
		w.Blocked*float64(len(s.Blocked))
}

// SlotDistribution summarizes per-assignment slot counts.
func (s *Solution) SlotDistribution() Distribution {
	values := make([]float64, len(s.Assignments))
	for i, a := range s.Assignments {
		values[i] = float64(a.SlotCount)
	}
	return NewDistribution(values)
}

// HopDistribution summarizes per-assignment hop counts.
func (s *Solution) HopDistribution() Distribution {
	values := make([]float64, len(s.Assignments))
	for i, a := range s.Assignments {
		values[i] = float64(a.Path.Hops())
	}
	return NewDistribution(values)
}

// DistanceDistribution summarizes per-assignment path distances in km.
func (s *Solution) DistanceDistribution() Distribution {
	values := make([]float64, len(s.Assignments))
	for i, a := range s.Assignments {
		values[i] = a.Path.DistanceKm
	}
	return NewDistribution(values)
}

// Replay applies every assignment to a fresh NetworkState, reproducing the
// network exactly as it stood when the run finished. Fails when any
// assignment conflicts, which Validate reports in more detail.
func (s *Solution) Replay() (*NetworkState, error) {
	state, err := NewNetworkState(s.Topology, s.Params.NumSlots)
	if err != nil {
		return nil, err
	}
	for _, a := range s.Assignments {
		if !state.Allocate(a.Path, a.StartSlot, a.SlotCount) {
			return nil, fmt.Errorf("replay: demand %d slots [%d,%d) conflict on path %v",
				a.DemandID, a.StartSlot, a.EndSlot(), a.Path.Nodes)
		}
	}
	return state, nil
}

// FragmentationIndex replays the solution and measures how scattered the
// remaining free spectrum is; see NetworkState.FragmentationIndex. Returns
// 0 for solutions that do not replay cleanly (Validate reports why).
func (s *Solution) FragmentationIndex() float64 {
	state, err := s.Replay()
	if err != nil {
		return 0
	}
	return state.FragmentationIndex()
}

// Validate re-derives the solution against its topology and parameters and
// reports every violated invariant: endpoint correctness, slot bounds,
// modulation reachability, and continuity/no-overlap via replay into a
// fresh NetworkState. A nil return means the solution is consistent.
func (s *Solution) Validate() error {
	state, err := NewNetworkState(s.Topology, s.Params.NumSlots)
	if err != nil {
		return err
	}
	byID := make(map[int]Demand, len(s.Demands))
	for _, d := range s.Demands {
		byID[d.ID] = d
	}

	var errs []error
	seen := make(map[int]bool, len(s.Assignments))
	for _, a := range s.Assignments {
		demand, ok := byID[a.DemandID]
		if !ok {
			errs = append(errs, fmt.Errorf("assignment for demand %d: not in batch", a.DemandID))
			continue
		}
		if seen[a.DemandID] {
			errs = append(errs, fmt.Errorf("demand %d: assigned twice", a.DemandID))
			continue
		}
		seen[a.DemandID] = true
		if len(a.Path.Nodes) < 2 {
			errs = append(errs, fmt.Errorf("demand %d: path too short: %v", a.DemandID, a.Path.Nodes))
			continue
		}
		if a.Path.Nodes[0] != demand.Source || a.Path.Nodes[len(a.Path.Nodes)-1] != demand.Destination {
			errs = append(errs, fmt.Errorf("demand %d: path %v does not connect %d to %d",
				a.DemandID, a.Path.Nodes, demand.Source, demand.Destination))
		}
		if a.StartSlot < 0 || a.SlotCount <= 0 || a.EndSlot() > s.Params.NumSlots {
			errs = append(errs, fmt.Errorf("demand %d: slots [%d,%d) out of bounds 0..%d",
				a.DemandID, a.StartSlot, a.EndSlot(), s.Params.NumSlots))
			continue
		}
		if format, ok := s.Params.Modulation.Select(a.Path.DistanceKm); !ok || format.Name != a.Format {
			errs = append(errs, fmt.Errorf("demand %d: format %s does not match the modulation selection for %.0f km",
				a.DemandID, a.Format, a.Path.DistanceKm))
		}
		// Allocate enforces continuity and no-overlap across the replay.
		if !state.Allocate(a.Path, a.StartSlot, a.SlotCount) {
			errs = append(errs, fmt.Errorf("demand %d: slots [%d,%d) conflict on path %v",
				a.DemandID, a.StartSlot, a.EndSlot(), a.Path.Nodes))
		}
	}
	for _, b := range s.Blocked {
		if seen[b.Demand.ID] {
			errs = append(errs, fmt.Errorf("demand %d: both assigned and blocked", b.Demand.ID))
		}
	}
	if n := len(s.Assignments) + len(s.Blocked); n != len(s.Demands) {
		errs = append(errs, fmt.Errorf("outcome count %d does not match batch size %d", n, len(s.Demands)))
	}
	return errors.Join(errs...)
}
