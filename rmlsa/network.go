package rmlsa

import "fmt"

// NetworkState owns the per-link spectrum occupancy for one assignment run.
// A fresh (or Reset) state has every slot free.
//
// Not safe for concurrent use. Independent runs must each construct their
// own state; no run may observe another run's allocations.
type NetworkState struct {
	topo     *Topology
	numSlots int
	occupied [][]bool // by link index, then slot index; true = occupied
}

// NewNetworkState creates an all-free spectrum state over topo's links.
func NewNetworkState(topo *Topology, numSlots int) (*NetworkState, error) {
	if topo == nil {
		return nil, fmt.Errorf("network state: topology must not be nil")
	}
	if numSlots <= 0 {
		return nil, fmt.Errorf("network state: numSlots must be positive, got %d", numSlots)
	}
	occupied := make([][]bool, topo.NumLinks())
	for i := range occupied {
		occupied[i] = make([]bool, numSlots)
	}
	return &NetworkState{topo: topo, numSlots: numSlots, occupied: occupied}, nil
}

// NumSlots returns the per-link spectrum width.
func (s *NetworkState) NumSlots() int { return s.numSlots }

// Topology returns the graph this state spans.
func (s *NetworkState) Topology() *Topology { return s.topo }

// IsAvailable reports whether every slot in [start, start+count) is free on
// every link of path. Out-of-range requests and paths crossing unknown
// links are unavailable. No side effects.
func (s *NetworkState) IsAvailable(path Path, start, count int) bool {
	if start < 0 || count <= 0 || start+count > s.numSlots {
		return false
	}
	for i := 0; i+1 < len(path.Nodes); i++ {
		idx, ok := s.topo.LinkIndex(path.Nodes[i], path.Nodes[i+1])
		if !ok {
			return false
		}
		slots := s.occupied[idx]
		for slot := start; slot < start+count; slot++ {
			if slots[slot] {
				return false
			}
		}
	}
	return true
}

// Allocate reserves [start, start+count) on every link of path. The
// reservation is all-or-nothing: on any conflict no link is touched and
// Allocate returns false.
func (s *NetworkState) Allocate(path Path, start, count int) bool {
	if !s.IsAvailable(path, start, count) {
		return false
	}
	s.setRange(path, start, count, true)
	return true
}

// Release frees [start, start+count) on every link of path. Releasing
// already-free slots is a no-op.
func (s *NetworkState) Release(path Path, start, count int) {
	if start < 0 || count <= 0 || start+count > s.numSlots {
		return
	}
	s.setRange(path, start, count, false)
}

func (s *NetworkState) setRange(path Path, start, count int, value bool) {
	for i := 0; i+1 < len(path.Nodes); i++ {
		idx, ok := s.topo.LinkIndex(path.Nodes[i], path.Nodes[i+1])
		if !ok {
			continue
		}
		slots := s.occupied[idx]
		for slot := start; slot < start+count; slot++ {
			slots[slot] = value
		}
	}
}

// Watermark returns 1 + the highest occupied slot index anywhere in the
// network, or 0 when every slot is free.
func (s *NetworkState) Watermark() int {
	mark := 0
	for _, slots := range s.occupied {
		if w := linkWatermark(slots); w > mark {
			mark = w
		}
	}
	return mark
}

// LinkWatermark returns 1 + the highest occupied slot index on the link
// between u and v, or 0 when the link is empty or unknown.
func (s *NetworkState) LinkWatermark(u, v int) int {
	idx, ok := s.topo.LinkIndex(u, v)
	if !ok {
		return 0
	}
	return linkWatermark(s.occupied[idx])
}

func linkWatermark(slots []bool) int {
	for slot := len(slots) - 1; slot >= 0; slot-- {
		if slots[slot] {
			return slot + 1
		}
	}
	return 0
}

// OccupiedSlots counts occupied slot-link pairs across the network.
func (s *NetworkState) OccupiedSlots() int {
	total := 0
	for _, slots := range s.occupied {
		for _, used := range slots {
			if used {
				total++
			}
		}
	}
	return total
}

// Utilization returns the percentage of occupied capacity across all links.
func (s *NetworkState) Utilization() float64 {
	capacity := s.topo.NumLinks() * s.numSlots
	if capacity == 0 {
		return 0
	}
	return float64(s.OccupiedSlots()) / float64(capacity) * 100
}

// FragmentationIndex measures how scattered the free spectrum is: per
// link, one minus the largest contiguous free run over the link's total
// free slots, averaged across all links. 0 means every link's free
// spectrum forms a single block (fully-free and fully-occupied links both
// count as unfragmented); values approach 1 as free slots degrade into
// isolated singletons.
func (s *NetworkState) FragmentationIndex() float64 {
	if len(s.occupied) == 0 {
		return 0
	}
	total := 0.0
	for _, slots := range s.occupied {
		free, largestRun := 0, 0
		run := 0
		for _, used := range slots {
			if used {
				run = 0
				continue
			}
			free++
			run++
			if run > largestRun {
				largestRun = run
			}
		}
		if free > 0 {
			total += 1 - float64(largestRun)/float64(free)
		}
	}
	return total / float64(len(s.occupied))
}

// Reset frees every slot on every link.
func (s *NetworkState) Reset() {
	for _, slots := range s.occupied {
		for i := range slots {
			slots[i] = false
		}
	}
}
