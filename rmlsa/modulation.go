package rmlsa

import (
	"fmt"
	"math"
)

// ModulationFormat describes one modulation level of the flexible grid:
// how far a signal carries and how many slots 100 Gbps consumes.
type ModulationFormat struct {
	Name        string  `yaml:"name"`
	MaxReachKm  float64 `yaml:"maxReachKm"`
	SlotsPer100 int     `yaml:"slotsPer100"`
}

// ModulationTable is an ordered list of formats, ascending by reach. The
// first format that reaches a path's distance is the most
// spectrum-efficient one usable on it.
type ModulationTable []ModulationFormat

// DefaultModulationTable returns the standard four-level table.
func DefaultModulationTable() ModulationTable {
	return ModulationTable{
		{Name: "16-QAM", MaxReachKm: 500, SlotsPer100: 2},
		{Name: "8-QAM", MaxReachKm: 1000, SlotsPer100: 3},
		{Name: "QPSK", MaxReachKm: 2000, SlotsPer100: 4},
		{Name: "BPSK", MaxReachKm: 10000, SlotsPer100: 8},
	}
}

// Validate checks field ranges and the ascending-reach ordering.
func (t ModulationTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("modulation table must not be empty")
	}
	for i, f := range t {
		if f.Name == "" {
			return fmt.Errorf("modulation[%d]: name must not be empty", i)
		}
		if f.MaxReachKm <= 0 {
			return fmt.Errorf("modulation[%d] %s: maxReachKm must be positive, got %v", i, f.Name, f.MaxReachKm)
		}
		if f.SlotsPer100 <= 0 {
			return fmt.Errorf("modulation[%d] %s: slotsPer100 must be positive, got %d", i, f.Name, f.SlotsPer100)
		}
		if i > 0 && f.MaxReachKm <= t[i-1].MaxReachKm {
			return fmt.Errorf("modulation[%d] %s: reach %v does not exceed %s's %v; table must ascend by reach",
				i, f.Name, f.MaxReachKm, t[i-1].Name, t[i-1].MaxReachKm)
		}
	}
	return nil
}

// Select returns the most spectrum-efficient format able to span
// distanceKm. ok is false when the distance exceeds every format's reach;
// such a demand is unreachable on that path and there is no looser
// fallback.
func (t ModulationTable) Select(distanceKm float64) (ModulationFormat, bool) {
	for _, f := range t {
		if distanceKm <= f.MaxReachKm {
			return f, true
		}
	}
	return ModulationFormat{}, false
}

// RequiredSlots computes the contiguous slot count a bandwidth needs on a
// format, including the guard band added to every allocation.
func RequiredSlots(bandwidthGbps float64, format ModulationFormat, guardBandSlots int) int {
	return int(math.Ceil(bandwidthGbps/100*float64(format.SlotsPer100))) + guardBandSlots
}
