// Package search implements the metaheuristic optimizers (genetic
// algorithm, simulated annealing) over candidate assignment solutions.
//
// A candidate fixes, for every demand, which of its k precomputed routes
// to use and the order demands are replayed in. Evaluating a candidate
// replays the whole batch from an empty spectrum state with the same
// modulation, first-fit, and no-overlap semantics as the greedy policies,
// so every candidate is conflict-free by construction and no repair step
// exists.
package search

import "math/rand"

// Candidate encodes one point in the search space.
type Candidate struct {
	// Order is a permutation of demand indices: the replay order.
	Order []int
	// Choices[i] selects which candidate route demand index i uses.
	Choices []int
}

// Clone returns an independent deep copy.
func (c Candidate) Clone() Candidate {
	clone := Candidate{
		Order:   make([]int, len(c.Order)),
		Choices: make([]int, len(c.Choices)),
	}
	copy(clone.Order, c.Order)
	copy(clone.Choices, c.Choices)
	return clone
}

// greedyCandidate is the deterministic seed point: replay in batch order
// (already sorted by descending bandwidth) with every demand on its
// shortest route.
func greedyCandidate(n int) Candidate {
	c := Candidate{Order: make([]int, n), Choices: make([]int, n)}
	for i := range c.Order {
		c.Order[i] = i
	}
	return c
}

// randomCandidate draws a shuffled replay order and a random route choice
// per demand. routeCounts[i] is the number of routes demand i may choose
// from; zero-route demands keep choice 0 and block at replay.
func randomCandidate(routeCounts []int, rng *rand.Rand) Candidate {
	n := len(routeCounts)
	c := greedyCandidate(n)
	rng.Shuffle(n, func(i, j int) {
		c.Order[i], c.Order[j] = c.Order[j], c.Order[i]
	})
	for i, count := range routeCounts {
		if count > 1 {
			c.Choices[i] = rng.Intn(count)
		}
	}
	return c
}
