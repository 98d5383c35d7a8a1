package rmlsa

import "fmt"

// Params groups the spectrum-grid and routing parameters shared by every
// assignment policy.
type Params struct {
	NumSlots       int             // spectrum slots per link (default 320)
	K              int             // candidate paths per demand for k-shortest policies (default 3)
	GuardBandSlots int             // slots appended to every allocation (default 2)
	Modulation     ModulationTable // ascending-reach format table (default DefaultModulationTable)
}

// DefaultParams returns the standard grid: 320 slots, 3 candidate paths,
// 2 guard-band slots, and the four-level modulation table.
func DefaultParams() Params {
	return Params{
		NumSlots:       320,
		K:              3,
		GuardBandSlots: 2,
		Modulation:     DefaultModulationTable(),
	}
}

// Validate checks field ranges and the modulation table.
func (p Params) Validate() error {
	if p.NumSlots <= 0 {
		return fmt.Errorf("numSlots must be positive, got %d", p.NumSlots)
	}
	if p.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", p.K)
	}
	if p.GuardBandSlots < 0 {
		return fmt.Errorf("guardBandSlots must not be negative, got %d", p.GuardBandSlots)
	}
	if err := p.Modulation.Validate(); err != nil {
		return fmt.Errorf("modulation table: %w", err)
	}
	return nil
}

// FitnessWeights scores a complete solution for the metaheuristic
// searches. Lower fitness is better. The defaults make watermark dominate
// total spectrum, and blocking dominate both.
type FitnessWeights struct {
	Watermark float64 `yaml:"watermark"` // per watermark slot (default 1000)
	Spectrum  float64 `yaml:"spectrum"`  // per occupied slot summed over links (default 1)
	Blocked   float64 `yaml:"blocked"`   // per blocked demand (default 10000)
}

// DefaultFitnessWeights returns the standard weighting.
func DefaultFitnessWeights() FitnessWeights {
	return FitnessWeights{Watermark: 1000, Spectrum: 1, Blocked: 10000}
}

// Validate rejects negative weights.
func (w FitnessWeights) Validate() error {
	if w.Watermark < 0 || w.Spectrum < 0 || w.Blocked < 0 {
		return fmt.Errorf("fitness weights must not be negative, got watermark=%v spectrum=%v blocked=%v",
			w.Watermark, w.Spectrum, w.Blocked)
	}
	return nil
}
