package search

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// GeneticConfig holds the genetic algorithm parameters.
type GeneticConfig struct {
	PopulationSize int     `yaml:"populationSize"`
	Generations    int     `yaml:"generations"`
	CrossoverRate  float64 `yaml:"crossoverRate"`
	MutationRate   float64 `yaml:"mutationRate"`
	EliteCount     int     `yaml:"eliteCount"`
	TournamentSize int     `yaml:"tournamentSize"`
	// Workers sizes the offspring evaluation pool. 0 or 1 evaluates
	// sequentially. Parallel evaluation never changes results: all RNG
	// draws happen in the sequential breeding phase and every evaluation
	// writes only its own indexed slot.
	Workers int `yaml:"workers,omitempty"`
}

// DefaultGeneticConfig returns the reference GA parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		CrossoverRate:  0.8,
		MutationRate:   0.2,
		EliteCount:     2,
		TournamentSize: 3,
	}
}

// Validate checks field ranges.
func (c GeneticConfig) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("populationSize must be positive, got %d", c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossoverRate must be in [0,1], got %v", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutationRate must be in [0,1], got %v", c.MutationRate)
	}
	if c.EliteCount < 0 || c.EliteCount >= c.PopulationSize {
		return fmt.Errorf("eliteCount must be in [0,populationSize), got %d", c.EliteCount)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("tournamentSize must be positive, got %d", c.TournamentSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// GeneticAlgorithm evolves a population of candidates toward lower
// fitness: tournament selection, single-point crossover on route choices,
// order crossover (OX1) on the replay permutation, and elitism.
type GeneticAlgorithm struct {
	eval *Evaluator
	cfg  GeneticConfig
	rng  *rand.Rand
}

// NewGeneticAlgorithm creates a GA over eval. The rng drives selection,
// crossover, and mutation; evaluation itself consumes no randomness.
func NewGeneticAlgorithm(eval *Evaluator, cfg GeneticConfig, rng *rand.Rand) *GeneticAlgorithm {
	return &GeneticAlgorithm{eval: eval, cfg: cfg, rng: rng}
}

// Name implements Optimizer.
func (g *GeneticAlgorithm) Name() string { return "ga" }

// Optimize implements Optimizer. Returns the best solution across all
// generations, not merely the final population's best.
func (g *GeneticAlgorithm) Optimize() *Result {
	var pool *ants.Pool
	if g.cfg.Workers > 1 {
		p, err := ants.NewPool(g.cfg.Workers)
		if err != nil {
			logrus.Warnf("genetic: worker pool unavailable, evaluating sequentially: %v", err)
		} else {
			pool = p
			defer pool.Release()
		}
	}

	population := g.initialPopulation()
	result := &Result{BestFitness: 0}
	var bestCand Candidate
	haveBest := false

	for gen := 0; gen <= g.cfg.Generations; gen++ {
		fitnesses := g.evaluateAll(population, pool)
		result.Evaluations += len(population)

		genBest, genAvg := summarize(fitnesses)
		result.BestHistory = append(result.BestHistory, genBest)
		result.AvgHistory = append(result.AvgHistory, genAvg)
		for i, f := range fitnesses {
			if !haveBest || f < result.BestFitness {
				haveBest = true
				result.BestFitness = f
				bestCand = population[i].Clone()
			}
		}
		if gen%10 == 0 {
			logrus.WithFields(logrus.Fields{
				"generation": gen,
				"best":       genBest,
				"avg":        genAvg,
			}).Debug("genetic generation")
		}
		if gen == g.cfg.Generations {
			break
		}
		population = g.breed(population, fitnesses)
	}

	result.Best, _ = g.eval.Evaluate(bestCand)
	result.Best.Algorithm = g.Name()
	return result
}

// initialPopulation seeds the greedy candidate plus random candidates.
func (g *GeneticAlgorithm) initialPopulation() []Candidate {
	population := make([]Candidate, 0, g.cfg.PopulationSize)
	population = append(population, g.eval.Greedy())
	for len(population) < g.cfg.PopulationSize {
		population = append(population, randomCandidate(g.eval.RouteCounts(), g.rng))
	}
	return population
}

// evaluateAll scores every candidate. With a pool, evaluations run
// concurrently and land in index-addressed slots; order of completion is
// irrelevant to the result.
func (g *GeneticAlgorithm) evaluateAll(population []Candidate, pool *ants.Pool) []float64 {
	fitnesses := make([]float64, len(population))
	if pool == nil {
		for i, cand := range population {
			fitnesses[i] = g.eval.Fitness(cand)
		}
		return fitnesses
	}
	var wg sync.WaitGroup
	for i := range population {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fitnesses[i] = g.eval.Fitness(population[i])
		}); err != nil {
			// Pool refused the task (e.g. released); evaluate inline.
			fitnesses[i] = g.eval.Fitness(population[i])
			wg.Done()
		}
	}
	wg.Wait()
	return fitnesses
}

// breed builds the next generation: elites survive unchanged, the rest are
// offspring of tournament-selected parents.
func (g *GeneticAlgorithm) breed(population []Candidate, fitnesses []float64) []Candidate {
	ranked := rankIndices(fitnesses)
	next := make([]Candidate, 0, g.cfg.PopulationSize)
	for _, idx := range ranked[:g.cfg.EliteCount] {
		next = append(next, population[idx].Clone())
	}
	for len(next) < g.cfg.PopulationSize {
		p1 := population[g.tournament(fitnesses)]
		p2 := population[g.tournament(fitnesses)]

		var c1, c2 Candidate
		if g.rng.Float64() < g.cfg.CrossoverRate {
			c1, c2 = g.crossover(p1, p2)
		} else {
			c1, c2 = p1.Clone(), p2.Clone()
		}
		if g.rng.Float64() < g.cfg.MutationRate {
			g.mutate(&c1)
		}
		if g.rng.Float64() < g.cfg.MutationRate {
			g.mutate(&c2)
		}
		next = append(next, c1)
		if len(next) < g.cfg.PopulationSize {
			next = append(next, c2)
		}
	}
	return next
}

// tournament draws TournamentSize contenders (with replacement) and
// returns the index of the fittest; fitness ties go to the lower index.
func (g *GeneticAlgorithm) tournament(fitnesses []float64) int {
	best := g.rng.Intn(len(fitnesses))
	for i := 1; i < g.cfg.TournamentSize; i++ {
		contender := g.rng.Intn(len(fitnesses))
		if fitnesses[contender] < fitnesses[best] ||
			(fitnesses[contender] == fitnesses[best] && contender < best) {
			best = contender
		}
	}
	return best
}

// crossover recombines two parents: single-point exchange of route
// choices plus OX1 order crossover of the replay permutations.
func (g *GeneticAlgorithm) crossover(p1, p2 Candidate) (Candidate, Candidate) {
	n := len(p1.Order)
	c1, c2 := p1.Clone(), p2.Clone()
	if n < 2 {
		return c1, c2
	}

	point := 1 + g.rng.Intn(n-1)
	for i := point; i < n; i++ {
		c1.Choices[i], c2.Choices[i] = p2.Choices[i], p1.Choices[i]
	}

	a := g.rng.Intn(n)
	b := g.rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	c1.Order = orderCrossover(p1.Order, p2.Order, a, b)
	c2.Order = orderCrossover(p2.Order, p1.Order, a, b)
	return c1, c2
}

// orderCrossover implements OX1: the child keeps keeper's segment [a,b]
// in place and fills the remaining positions with donor's elements in
// donor order, wrapping after the segment.
func orderCrossover(keeper, donor []int, a, b int) []int {
	n := len(keeper)
	child := make([]int, n)
	inSegment := make(map[int]bool, b-a+1)
	for i := a; i <= b; i++ {
		child[i] = keeper[i]
		inSegment[keeper[i]] = true
	}
	pos := (b + 1) % n
	for i := 0; i < n; i++ {
		val := donor[(b+1+i)%n]
		if inSegment[val] {
			continue
		}
		child[pos] = val
		pos = (pos + 1) % n
	}
	return child
}

// mutate perturbs one gene: either a demand's route choice or the replay
// position of two demands.
func (g *GeneticAlgorithm) mutate(c *Candidate) {
	n := len(c.Order)
	if n == 0 {
		return
	}
	counts := g.eval.RouteCounts()
	if g.rng.Float64() < 0.5 {
		idx := g.rng.Intn(n)
		if counts[idx] > 1 {
			next := g.rng.Intn(counts[idx] - 1)
			if next >= c.Choices[idx] {
				next++
			}
			c.Choices[idx] = next
			return
		}
		// Demand has a single route: fall through to an order swap.
	}
	if n < 2 {
		return
	}
	i := g.rng.Intn(n)
	j := g.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	c.Order[i], c.Order[j] = c.Order[j], c.Order[i]
}

// rankIndices returns population indices sorted by ascending fitness;
// equal fitness keeps the lower index first so ranking is deterministic.
func rankIndices(fitnesses []float64) []int {
	indices := make([]int, len(fitnesses))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return fitnesses[indices[a]] < fitnesses[indices[b]]
	})
	return indices
}

// summarize returns the minimum and mean of a fitness slice.
func summarize(fitnesses []float64) (best, avg float64) {
	if len(fitnesses) == 0 {
		return 0, 0
	}
	best = fitnesses[0]
	sum := 0.0
	for _, f := range fitnesses {
		if f < best {
			best = f
		}
		sum += f
	}
	return best, sum / float64(len(fitnesses))
}
