// Package workload generates and persists demand batches for the static
// assignment engine. Generation is deterministic given a spec and a seeded
// RNG; batches are plain []rmlsa.Demand values the engine re-sorts itself.
package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Traffic patterns.
const (
	// PatternUniform draws Count demands with uniform random endpoints and
	// uniform integer bandwidths in [MinBandwidthGbps, MaxBandwidthGbps].
	PatternUniform = "uniform"
	// PatternAllPairs emits one demand per directed node pair, N*(N-1)
	// total, in ascending (source, destination) order.
	PatternAllPairs = "all-pairs"
	// PatternExponential draws Count demands with exponentially distributed
	// bandwidths around MeanBandwidthGbps, clipped to [10, 200] Gbps.
	PatternExponential = "exponential"
)

// validPatterns is the set of recognized pattern names.
var validPatterns = map[string]bool{
	PatternUniform: true, PatternAllPairs: true, PatternExponential: true,
}

// IsValidPattern reports whether name is a recognized traffic pattern.
func IsValidPattern(name string) bool {
	return validPatterns[name]
}

// Spec configures demand batch generation.
// Loaded from YAML via LoadSpec(path) or embedded in a scenario file.
type Spec struct {
	Pattern           string  `yaml:"pattern"`
	Count             int     `yaml:"count,omitempty"`
	MinBandwidthGbps  int     `yaml:"minBandwidthGbps,omitempty"`
	MaxBandwidthGbps  int     `yaml:"maxBandwidthGbps,omitempty"`
	MeanBandwidthGbps float64 `yaml:"meanBandwidthGbps,omitempty"`
}

// DefaultSpec returns the reference traffic profile: 100 uniform demands
// with bandwidths in [25, 100] Gbps.
func DefaultSpec() Spec {
	return Spec{
		Pattern:           PatternUniform,
		Count:             100,
		MinBandwidthGbps:  25,
		MaxBandwidthGbps:  100,
		MeanBandwidthGbps: 50,
	}
}

// LoadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	spec := DefaultSpec()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *Spec) Validate() error {
	if !validPatterns[s.Pattern] {
		return fmt.Errorf("unknown pattern %q; valid: uniform, all-pairs, exponential", s.Pattern)
	}
	switch s.Pattern {
	case PatternUniform, PatternExponential:
		if s.Count <= 0 {
			return fmt.Errorf("count must be positive for pattern %q, got %d", s.Pattern, s.Count)
		}
	}
	switch s.Pattern {
	case PatternUniform, PatternAllPairs:
		if s.MinBandwidthGbps <= 0 {
			return fmt.Errorf("minBandwidthGbps must be positive, got %d", s.MinBandwidthGbps)
		}
		if s.MaxBandwidthGbps < s.MinBandwidthGbps {
			return fmt.Errorf("maxBandwidthGbps %d below minBandwidthGbps %d",
				s.MaxBandwidthGbps, s.MinBandwidthGbps)
		}
	case PatternExponential:
		if math.IsNaN(s.MeanBandwidthGbps) || math.IsInf(s.MeanBandwidthGbps, 0) {
			return fmt.Errorf("meanBandwidthGbps must be a finite number, got %f", s.MeanBandwidthGbps)
		}
		if s.MeanBandwidthGbps <= 0 {
			return fmt.Errorf("meanBandwidthGbps must be positive, got %f", s.MeanBandwidthGbps)
		}
	}
	return nil
}
