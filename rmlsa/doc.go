// Package rmlsa implements static routing, modulation, and spectrum
// assignment for elastic optical networks.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - network.go: per-link spectrum occupancy and the allocation rules
//   - paths.go: k shortest loopless path search
//   - engine.go: the batch replay loop that drives an assignment policy
//
// # Architecture
//
// The rmlsa package owns the data model and the greedy policies; heavier
// machinery lives in sub-packages:
//   - rmlsa/workload/: demand batch generation and CSV persistence
//   - rmlsa/search/: metaheuristic optimizers (genetic, annealing)
//
// # Key Interfaces
//
// The extension points are small interfaces selected by validated names:
//   - AssignmentPolicy: route + modulation + spectrum decision per demand
//   - search.Optimizer: candidate-space search over per-demand path
//     choices and replay order
package rmlsa
