package search

import (
	"fmt"
	"math/rand"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

// Optimizer searches the candidate space for a low-fitness solution.
// Implementations are deterministic given their Evaluator, configuration,
// and RNG seed.
type Optimizer interface {
	Name() string
	Optimize() *Result
}

// Result is an optimizer run's outcome: the best solution ever seen and
// the per-round fitness trace.
type Result struct {
	Best        *rmlsa.Solution
	BestFitness float64
	// BestHistory holds the best fitness after each generation (GA) or
	// temperature rung (SA).
	BestHistory []float64
	// AvgHistory holds the population's mean fitness per generation.
	// Empty for the annealer, which has no population.
	AvgHistory  []float64
	Evaluations int
}

// Config bundles the per-optimizer parameter blocks so scenario files can
// carry both and select by name at run time.
type Config struct {
	Genetic GeneticConfig `yaml:"genetic"`
	Anneal  AnnealConfig  `yaml:"anneal"`
}

// DefaultConfig returns both optimizers' reference parameters.
func DefaultConfig() Config {
	return Config{Genetic: DefaultGeneticConfig(), Anneal: DefaultAnnealConfig()}
}

// Validate checks both parameter blocks.
func (c Config) Validate() error {
	if err := c.Genetic.Validate(); err != nil {
		return fmt.Errorf("genetic: %w", err)
	}
	if err := c.Anneal.Validate(); err != nil {
		return fmt.Errorf("anneal: %w", err)
	}
	return nil
}

// ValidOptimizers is the set of recognized optimizer names.
var ValidOptimizers = map[string]bool{"ga": true, "sa": true}

// IsValidOptimizer reports whether name is a recognized optimizer.
func IsValidOptimizer(name string) bool {
	return ValidOptimizers[name]
}

// NewOptimizer creates an optimizer by name. The rng should come from a
// PartitionedRNG subsystem matching the name, so the two optimizers never
// share a random sequence. Panics on names that bypassed validation.
func NewOptimizer(name string, eval *Evaluator, cfg Config, rng *rand.Rand) Optimizer {
	switch name {
	case "ga":
		return NewGeneticAlgorithm(eval, cfg.Genetic, rng)
	case "sa":
		return NewSimulatedAnnealing(eval, cfg.Anneal, rng)
	default:
		panic(fmt.Sprintf("unknown optimizer %q", name))
	}
}
