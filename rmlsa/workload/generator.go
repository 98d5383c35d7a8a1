package workload

import (
	"fmt"
	"math/rand"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

// Exponential bandwidths are clipped to this range to keep generated
// demands inside the modulation table's useful span.
const (
	expClipMinGbps = 10
	expClipMaxGbps = 200
)

// Generate creates a demand batch from a Spec over a network of numNodes
// nodes. Deterministic given the same spec, node count, and RNG state;
// callers wanting reproducible batches pass
// rng.ForSubsystem(rmlsa.SubsystemWorkload) from a PartitionedRNG.
// Demands carry sequential ids from 0 and source != destination always.
func Generate(spec Spec, numNodes int, rng *rand.Rand) ([]rmlsa.Demand, error) {
	if numNodes < 2 {
		return nil, fmt.Errorf("workload: need at least 2 nodes, got %d", numNodes)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	switch spec.Pattern {
	case PatternUniform:
		return generateUniform(spec, numNodes, rng), nil
	case PatternAllPairs:
		return generateAllPairs(spec, numNodes, rng), nil
	case PatternExponential:
		return generateExponential(spec, numNodes, rng), nil
	default:
		panic(fmt.Sprintf("unhandled pattern %q", spec.Pattern))
	}
}

func generateUniform(spec Spec, numNodes int, rng *rand.Rand) []rmlsa.Demand {
	demands := make([]rmlsa.Demand, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		src, dst := randomPair(numNodes, rng)
		bandwidth := spec.MinBandwidthGbps + rng.Intn(spec.MaxBandwidthGbps-spec.MinBandwidthGbps+1)
		demands = append(demands, rmlsa.Demand{
			ID:            i,
			Source:        src,
			Destination:   dst,
			BandwidthGbps: float64(bandwidth),
		})
	}
	return demands
}

func generateAllPairs(spec Spec, numNodes int, rng *rand.Rand) []rmlsa.Demand {
	demands := make([]rmlsa.Demand, 0, numNodes*(numNodes-1))
	id := 0
	for src := 0; src < numNodes; src++ {
		for dst := 0; dst < numNodes; dst++ {
			if src == dst {
				continue
			}
			bandwidth := spec.MinBandwidthGbps + rng.Intn(spec.MaxBandwidthGbps-spec.MinBandwidthGbps+1)
			demands = append(demands, rmlsa.Demand{
				ID:            id,
				Source:        src,
				Destination:   dst,
				BandwidthGbps: float64(bandwidth),
			})
			id++
		}
	}
	return demands
}

func generateExponential(spec Spec, numNodes int, rng *rand.Rand) []rmlsa.Demand {
	demands := make([]rmlsa.Demand, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		src, dst := randomPair(numNodes, rng)
		bandwidth := int(rng.ExpFloat64() * spec.MeanBandwidthGbps)
		if bandwidth < expClipMinGbps {
			bandwidth = expClipMinGbps
		}
		if bandwidth > expClipMaxGbps {
			bandwidth = expClipMaxGbps
		}
		demands = append(demands, rmlsa.Demand{
			ID:            i,
			Source:        src,
			Destination:   dst,
			BandwidthGbps: float64(bandwidth),
		})
	}
	return demands
}

// randomPair draws a source and a distinct destination.
func randomPair(numNodes int, rng *rand.Rand) (src, dst int) {
	src = rng.Intn(numNodes)
	dst = rng.Intn(numNodes)
	for dst == src {
		dst = rng.Intn(numNodes)
	}
	return src, dst
}
