package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
	"github.com/dreamxist/RMLSA-STATIC/rmlsa/search"
)

// Report is the JSON summary of one algorithm run. Detail blocks (per-demand
// outcomes, search history) are included only when requested, so default
// output stays readable for large batches.
type Report struct {
	Algorithm        string             `json:"algorithm"`
	TotalDemands     int                `json:"total_demands"`
	AssignedCount    int                `json:"assigned_count"`
	BlockedCount     int                `json:"blocked_count"`
	BlockingFraction float64            `json:"blocking_fraction"`
	Watermark        int                `json:"watermark"`
	TotalSpectrum    int                `json:"total_spectrum"`
	Utilization      float64            `json:"utilization_percent"`
	Fragmentation    float64            `json:"fragmentation_index"`
	Fitness          float64            `json:"fitness"`
	ElapsedMs        float64            `json:"elapsed_ms"`
	SlotCounts       rmlsa.Distribution `json:"slot_counts"`
	HopCounts        rmlsa.Distribution `json:"hop_counts"`
	DistancesKm      rmlsa.Distribution `json:"distances_km"`

	Assignments []AssignmentReport `json:"assignments,omitempty"`
	Blocked     []BlockedReport    `json:"blocked,omitempty"`
	Search      *SearchReport      `json:"search,omitempty"`
}

// AssignmentReport is one placed demand in a detailed report.
type AssignmentReport struct {
	DemandID    int     `json:"demand_id"`
	Source      int     `json:"source"`
	Destination int     `json:"destination"`
	Bandwidth   float64 `json:"bandwidth_gbps"`
	Path        []int   `json:"path"`
	DistanceKm  float64 `json:"distance_km"`
	Format      string  `json:"format"`
	StartSlot   int     `json:"start_slot"`
	SlotCount   int     `json:"slot_count"`
}

// BlockedReport is one unplaced demand in a detailed report.
type BlockedReport struct {
	DemandID    int     `json:"demand_id"`
	Source      int     `json:"source"`
	Destination int     `json:"destination"`
	Bandwidth   float64 `json:"bandwidth_gbps"`
	Reason      string  `json:"reason"`
}

// SearchReport summarizes an optimizer run's trajectory.
type SearchReport struct {
	BestFitness float64   `json:"best_fitness"`
	Evaluations int       `json:"evaluations"`
	BestHistory []float64 `json:"best_history"`
	AvgHistory  []float64 `json:"avg_history,omitempty"`
}

// buildReport flattens a solution (and, for optimizers, its search result)
// into a Report. weights must match the run's fitness configuration.
func buildReport(sol *rmlsa.Solution, result *search.Result, weights rmlsa.FitnessWeights, details bool) Report {
	report := Report{
		Algorithm:        sol.Algorithm,
		TotalDemands:     sol.TotalDemands(),
		AssignedCount:    sol.AssignedCount(),
		BlockedCount:     sol.BlockedCount(),
		BlockingFraction: sol.BlockingFraction(),
		Watermark:        sol.Watermark(),
		TotalSpectrum:    sol.TotalSpectrum(),
		Utilization:      sol.Utilization(),
		Fragmentation:    sol.FragmentationIndex(),
		Fitness:          sol.Fitness(weights),
		ElapsedMs:        float64(sol.Elapsed.Microseconds()) / 1000,
		SlotCounts:       sol.SlotDistribution(),
		HopCounts:        sol.HopDistribution(),
		DistancesKm:      sol.DistanceDistribution(),
	}
	if result != nil {
		report.Search = &SearchReport{
			BestFitness: result.BestFitness,
			Evaluations: result.Evaluations,
			BestHistory: result.BestHistory,
			AvgHistory:  result.AvgHistory,
		}
	}
	if !details {
		return report
	}

	byID := make(map[int]rmlsa.Demand, len(sol.Demands))
	for _, d := range sol.Demands {
		byID[d.ID] = d
	}
	for _, a := range sol.Assignments {
		d := byID[a.DemandID]
		report.Assignments = append(report.Assignments, AssignmentReport{
			DemandID:    a.DemandID,
			Source:      d.Source,
			Destination: d.Destination,
			Bandwidth:   d.BandwidthGbps,
			Path:        a.Path.Nodes,
			DistanceKm:  a.Path.DistanceKm,
			Format:      a.Format,
			StartSlot:   a.StartSlot,
			SlotCount:   a.SlotCount,
		})
	}
	for _, b := range sol.Blocked {
		report.Blocked = append(report.Blocked, BlockedReport{
			DemandID:    b.Demand.ID,
			Source:      b.Demand.Source,
			Destination: b.Demand.Destination,
			Bandwidth:   b.Demand.BandwidthGbps,
			Reason:      string(b.Reason),
		})
	}
	return report
}

// writeJSON marshals v with indentation to path, or to stdout when path is
// empty.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
