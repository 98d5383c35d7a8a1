package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "rmlsa",
	Short: "Static routing, modulation, and spectrum assignment for elastic optical networks",
	Long: `rmlsa offline-assigns routes, modulation formats, and spectrum slots to a
batch of bandwidth demands on a fixed topology, minimizing the spectrum
watermark and the blocked-demand fraction. Greedy policies (sp-ff, ksp-mw)
and metaheuristic optimizers (ga, sa) share one spectrum model, so their
results are directly comparable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up global CLI flags.
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
