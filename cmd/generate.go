package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
	"github.com/dreamxist/RMLSA-STATIC/rmlsa/workload"
)

var (
	generatePattern  string
	generateCount    int
	generateMinBw    int
	generateMaxBw    int
	generateMeanBw   float64
	generateNumNodes int
	generateSeed     int64
	generateOutput   string
)

// generateCmd emits a demand CSV so separate runs (or other tools) can
// share one frozen batch.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a demand batch CSV",
	Run: func(cmd *cobra.Command, args []string) {
		spec := workload.Spec{
			Pattern:           generatePattern,
			Count:             generateCount,
			MinBandwidthGbps:  generateMinBw,
			MaxBandwidthGbps:  generateMaxBw,
			MeanBandwidthGbps: generateMeanBw,
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
		if generateOutput == "" {
			logrus.Fatalf("Output path required")
		}

		rng := rmlsa.NewPartitionedRNG(rmlsa.NewSimulationKey(generateSeed))
		demands, err := workload.Generate(spec, generateNumNodes, rng.ForSubsystem(rmlsa.SubsystemWorkload))
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if err := workload.SaveCSV(generateOutput, demands); err != nil {
			logrus.Fatalf("Could not write demand file: %v", err)
		}
		logrus.WithFields(logrus.Fields{
			"pattern": spec.Pattern,
			"demands": len(demands),
			"seed":    generateSeed,
			"output":  generateOutput,
		}).Info("demand batch written")
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatePattern, "pattern", workload.PatternUniform, "Traffic pattern: uniform, all-pairs, or exponential")
	generateCmd.Flags().IntVar(&generateCount, "count", 100, "Demand count (uniform and exponential patterns)")
	generateCmd.Flags().IntVar(&generateMinBw, "min-bandwidth", 25, "Minimum bandwidth in Gbps (uniform and all-pairs)")
	generateCmd.Flags().IntVar(&generateMaxBw, "max-bandwidth", 100, "Maximum bandwidth in Gbps (uniform and all-pairs)")
	generateCmd.Flags().Float64Var(&generateMeanBw, "mean-bandwidth", 50, "Mean bandwidth in Gbps (exponential)")
	generateCmd.Flags().IntVar(&generateNumNodes, "nodes", 14, "Node count demands are drawn over")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 42, "Seed for demand generation")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Demand CSV path (required)")

	rootCmd.AddCommand(generateCmd)
}
