package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

var (
	compareScenarioPath string
	compareAlgorithms   []string
	compareOutput       string
	compareDetails      bool
)

// ComparisonReport holds one report per algorithm, all produced from the
// identical demand batch so the metrics are directly comparable.
type ComparisonReport struct {
	Demands int      `json:"demands"`
	Seed    int64    `json:"seed"`
	Runs    []Report `json:"runs"`
}

// compareCmd runs several algorithms on the same scenario and batch.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run several algorithms on the identical demand batch",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range compareAlgorithms {
			if !IsValidAlgorithm(name) {
				logrus.Fatalf("Unknown algorithm %q; valid: sp-ff, ksp-mw, ga, sa", name)
			}
		}
		scen := DefaultScenario()
		if compareScenarioPath != "" {
			loaded, err := LoadScenario(compareScenarioPath)
			if err != nil {
				logrus.Fatalf("Invalid scenario: %v", err)
			}
			scen = loaded
		}

		topo, err := scen.Topology.Build()
		if err != nil {
			logrus.Fatalf("Invalid topology: %v", err)
		}
		rng := rmlsa.NewPartitionedRNG(rmlsa.NewSimulationKey(scen.Seed))
		demands, err := scen.Demands(topo, rng)
		if err != nil {
			logrus.Fatalf("Demand batch unavailable: %v", err)
		}

		comparison := ComparisonReport{Demands: len(demands), Seed: scen.Seed}
		for _, name := range compareAlgorithms {
			logrus.WithFields(logrus.Fields{
				"algorithm": name,
				"demands":   len(demands),
			}).Info("comparing")
			sol, result, err := runAlgorithm(name, topo, scen, demands, rng)
			if err != nil {
				logrus.Fatalf("Run %q failed: %v", name, err)
			}
			if err := sol.Validate(); err != nil {
				logrus.Fatalf("Run %q violates invariants: %v", name, err)
			}
			comparison.Runs = append(comparison.Runs, buildReport(sol, result, scen.FitnessWeights, compareDetails))
		}

		if err := writeJSON(compareOutput, comparison); err != nil {
			logrus.Fatalf("Could not write report: %v", err)
		}
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareScenarioPath, "scenario", "", "Scenario YAML file (defaults: NSFNET, 320 slots, 100 uniform demands)")
	compareCmd.Flags().StringSliceVar(&compareAlgorithms, "algorithms", []string{"sp-ff", "ksp-mw", "ga", "sa"}, "Comma-separated algorithms to compare")
	compareCmd.Flags().StringVar(&compareOutput, "output", "", "Report JSON path (stdout when empty)")
	compareCmd.Flags().BoolVar(&compareDetails, "details", false, "Include per-demand assignments and block reasons")

	rootCmd.AddCommand(compareCmd)
}
