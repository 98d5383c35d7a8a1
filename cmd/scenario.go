package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
	"github.com/dreamxist/RMLSA-STATIC/rmlsa/search"
	"github.com/dreamxist/RMLSA-STATIC/rmlsa/workload"
)

// builtinTopologies maps builtin topology names to their constructors.
var builtinTopologies = map[string]func() *rmlsa.Topology{
	"nsfnet": rmlsa.NSFNet,
}

// TopologyConfig selects a builtin topology by name or describes one inline
// as a node count plus an undirected link list. Exactly one form must be
// used.
type TopologyConfig struct {
	Builtin  string       `yaml:"builtin,omitempty"`
	NumNodes int          `yaml:"numNodes,omitempty"`
	Links    []rmlsa.Link `yaml:"links,omitempty"`
}

// Validate checks that exactly one topology form is configured.
func (c TopologyConfig) Validate() error {
	if c.Builtin != "" {
		if _, ok := builtinTopologies[c.Builtin]; !ok {
			return fmt.Errorf("unknown builtin topology %q; valid: nsfnet", c.Builtin)
		}
		if c.NumNodes != 0 || len(c.Links) != 0 {
			return fmt.Errorf("builtin topology %q cannot be combined with inline nodes/links", c.Builtin)
		}
		return nil
	}
	if c.NumNodes <= 0 || len(c.Links) == 0 {
		return fmt.Errorf("topology needs either a builtin name or numNodes plus links")
	}
	return nil
}

// Build constructs the configured topology. Dangling link references are
// config errors surfaced here.
func (c TopologyConfig) Build() (*rmlsa.Topology, error) {
	if c.Builtin != "" {
		build, ok := builtinTopologies[c.Builtin]
		if !ok {
			return nil, fmt.Errorf("unknown builtin topology %q", c.Builtin)
		}
		return build(), nil
	}
	return rmlsa.NewTopology(c.NumNodes, c.Links)
}

// Scenario is one complete experiment description: topology, spectrum grid,
// demand source, fitness weighting, optimizer parameters, and the master
// seed every random subsystem derives from.
type Scenario struct {
	Topology       TopologyConfig        `yaml:"topology"`
	NumSlots       int                   `yaml:"numSlots"`
	K              int                   `yaml:"k"`
	GuardBandSlots int                   `yaml:"guardBandSlots"`
	Modulation     rmlsa.ModulationTable `yaml:"modulation,omitempty"`
	Workload       workload.Spec         `yaml:"workload"`
	DemandsCSV     string                `yaml:"demandsCsv,omitempty"`
	FitnessWeights rmlsa.FitnessWeights  `yaml:"fitnessWeights"`
	Optimizers     search.Config         `yaml:"optimizers"`
	Seed           int64                 `yaml:"seed"`
}

// DefaultScenario returns the reference experiment: NSFNET, a 320-slot
// grid, 100 uniform demands, and both optimizers at their defaults.
func DefaultScenario() Scenario {
	params := rmlsa.DefaultParams()
	return Scenario{
		Topology:       TopologyConfig{Builtin: "nsfnet"},
		NumSlots:       params.NumSlots,
		K:              params.K,
		GuardBandSlots: params.GuardBandSlots,
		Modulation:     params.Modulation,
		Workload:       workload.DefaultSpec(),
		FitnessWeights: rmlsa.DefaultFitnessWeights(),
		Optimizers:     search.DefaultConfig(),
		Seed:           42,
	}
}

// LoadScenario reads a scenario YAML file over the defaults. Uses strict
// parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (Scenario, error) {
	scen := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return scen, fmt.Errorf("reading scenario: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scen); err != nil {
		return scen, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := scen.Validate(); err != nil {
		return scen, fmt.Errorf("scenario %s: %w", path, err)
	}
	return scen, nil
}

// Validate checks every configuration block. Demand-source validation is
// conditional: the workload spec only matters when no demand CSV is given.
func (s Scenario) Validate() error {
	if err := s.Topology.Validate(); err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	if err := s.Params().Validate(); err != nil {
		return err
	}
	if s.DemandsCSV == "" {
		if err := s.Workload.Validate(); err != nil {
			return fmt.Errorf("workload: %w", err)
		}
	}
	if err := s.FitnessWeights.Validate(); err != nil {
		return fmt.Errorf("fitnessWeights: %w", err)
	}
	if err := s.Optimizers.Validate(); err != nil {
		return fmt.Errorf("optimizers: %w", err)
	}
	return nil
}

// Params collects the scenario's grid parameters.
func (s Scenario) Params() rmlsa.Params {
	return rmlsa.Params{
		NumSlots:       s.NumSlots,
		K:              s.K,
		GuardBandSlots: s.GuardBandSlots,
		Modulation:     s.Modulation,
	}
}

// Demands produces the scenario's demand batch: loaded from the configured
// CSV when one is set, generated from the workload spec otherwise.
func (s Scenario) Demands(topo *rmlsa.Topology, rng *rmlsa.PartitionedRNG) ([]rmlsa.Demand, error) {
	if s.DemandsCSV != "" {
		return workload.LoadCSV(s.DemandsCSV)
	}
	return workload.Generate(s.Workload, topo.NumNodes(), rng.ForSubsystem(rmlsa.SubsystemWorkload))
}

// IsValidAlgorithm reports whether name is a greedy policy or an optimizer.
func IsValidAlgorithm(name string) bool {
	return rmlsa.IsValidPolicy(name) || search.IsValidOptimizer(name)
}

// runAlgorithm executes one algorithm on a prepared scenario and batch.
// Greedy policies run through the batch engine; optimizers run a search
// seeded from the scenario's master seed. The returned search result is nil
// for greedy policies.
func runAlgorithm(name string, topo *rmlsa.Topology, scen Scenario, demands []rmlsa.Demand, rng *rmlsa.PartitionedRNG) (*rmlsa.Solution, *search.Result, error) {
	if rmlsa.IsValidPolicy(name) {
		engine, err := rmlsa.NewEngine(topo, scen.Params(), name)
		if err != nil {
			return nil, nil, err
		}
		sol, err := engine.Run(demands)
		return sol, nil, err
	}
	if !search.IsValidOptimizer(name) {
		return nil, nil, fmt.Errorf("unknown algorithm %q; valid: sp-ff, ksp-mw, ga, sa", name)
	}
	eval, err := search.NewEvaluator(topo, scen.Params(), scen.FitnessWeights, demands)
	if err != nil {
		return nil, nil, err
	}
	opt := search.NewOptimizer(name, eval, scen.Optimizers, rng.ForSubsystem(name))
	start := time.Now()
	result := opt.Optimize()
	result.Best.Elapsed = time.Since(start)
	return result.Best, result, nil
}
