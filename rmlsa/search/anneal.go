package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// AnnealConfig holds the simulated annealing parameters.
type AnnealConfig struct {
	InitialTemp  float64 `yaml:"initialTemp"`
	FinalTemp    float64 `yaml:"finalTemp"`
	CoolingRate  float64 `yaml:"coolingRate"`
	StepsPerTemp int     `yaml:"stepsPerTemp"`
	// MaxSteps caps the total step count across all temperatures.
	// 0 means no cap: the run ends when the temperature cools below
	// FinalTemp.
	MaxSteps int `yaml:"maxSteps,omitempty"`
}

// DefaultAnnealConfig returns the reference SA parameters.
func DefaultAnnealConfig() AnnealConfig {
	return AnnealConfig{
		InitialTemp:  1000,
		FinalTemp:    0.1,
		CoolingRate:  0.95,
		StepsPerTemp: 100,
	}
}

// Validate checks field ranges.
func (c AnnealConfig) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf("initialTemp must be positive, got %v", c.InitialTemp)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf("finalTemp must be positive, got %v", c.FinalTemp)
	}
	if c.FinalTemp > c.InitialTemp {
		return fmt.Errorf("finalTemp %v exceeds initialTemp %v", c.FinalTemp, c.InitialTemp)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf("coolingRate must be in (0,1), got %v", c.CoolingRate)
	}
	if c.StepsPerTemp <= 0 {
		return fmt.Errorf("stepsPerTemp must be positive, got %d", c.StepsPerTemp)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("maxSteps must not be negative, got %d", c.MaxSteps)
	}
	return nil
}

// SimulatedAnnealing walks the candidate space one neighbor at a time,
// accepting worse moves with Metropolis probability so it can climb out of
// the greedy seed's local optimum. Temperature cools geometrically.
type SimulatedAnnealing struct {
	eval *Evaluator
	cfg  AnnealConfig
	rng  *rand.Rand
}

// NewSimulatedAnnealing creates an annealer over eval. The rng drives
// neighbor generation and acceptance; evaluation itself consumes no
// randomness.
func NewSimulatedAnnealing(eval *Evaluator, cfg AnnealConfig, rng *rand.Rand) *SimulatedAnnealing {
	return &SimulatedAnnealing{eval: eval, cfg: cfg, rng: rng}
}

// Name implements Optimizer.
func (s *SimulatedAnnealing) Name() string { return "sa" }

// Optimize implements Optimizer. The best candidate is tracked separately
// from the currently accepted one: the walk may accept worsening moves, but
// the returned solution is always the best ever evaluated.
func (s *SimulatedAnnealing) Optimize() *Result {
	current := s.eval.Greedy()
	currentFitness := s.eval.Fitness(current)
	best := current.Clone()
	bestFitness := currentFitness

	result := &Result{BestFitness: bestFitness, Evaluations: 1}
	temp := s.cfg.InitialTemp
	steps := 0

	for temp > s.cfg.FinalTemp {
		accepted := 0
		for i := 0; i < s.cfg.StepsPerTemp; i++ {
			if s.cfg.MaxSteps > 0 && steps >= s.cfg.MaxSteps {
				break
			}
			steps++

			neighbor := s.neighbor(current)
			neighborFitness := s.eval.Fitness(neighbor)
			result.Evaluations++

			if s.accept(currentFitness, neighborFitness, temp) {
				current = neighbor
				currentFitness = neighborFitness
				accepted++
				if currentFitness < bestFitness {
					best = current.Clone()
					bestFitness = currentFitness
				}
			}
		}

		result.BestHistory = append(result.BestHistory, bestFitness)
		logrus.WithFields(logrus.Fields{
			"temperature": temp,
			"best":        bestFitness,
			"current":     currentFitness,
			"accepted":    accepted,
		}).Debug("anneal rung")

		if s.cfg.MaxSteps > 0 && steps >= s.cfg.MaxSteps {
			break
		}
		temp *= s.cfg.CoolingRate
	}

	result.BestFitness = bestFitness
	result.Best, _ = s.eval.Evaluate(best)
	result.Best.Algorithm = s.Name()
	return result
}

// neighbor returns a copy of c with one perturbation applied: either a
// demand's route choice changes or two replay positions swap. Demands with
// a single candidate route can only contribute order swaps.
func (s *SimulatedAnnealing) neighbor(c Candidate) Candidate {
	n := len(c.Order)
	next := c.Clone()
	if n == 0 {
		return next
	}
	counts := s.eval.RouteCounts()
	if s.rng.Float64() < 0.5 {
		idx := s.rng.Intn(n)
		if counts[idx] > 1 {
			choice := s.rng.Intn(counts[idx] - 1)
			if choice >= next.Choices[idx] {
				choice++
			}
			next.Choices[idx] = choice
			return next
		}
	}
	if n < 2 {
		return next
	}
	i := s.rng.Intn(n)
	j := s.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	next.Order[i], next.Order[j] = next.Order[j], next.Order[i]
	return next
}

// accept implements the Metropolis criterion: improvements always pass,
// worsening moves pass with probability exp(-delta/T).
func (s *SimulatedAnnealing) accept(current, neighbor, temp float64) bool {
	if neighbor < current {
		return true
	}
	delta := neighbor - current
	return s.rng.Float64() < math.Exp(-delta/temp)
}
