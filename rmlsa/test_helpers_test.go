package rmlsa

import "testing"

// mustTopology builds a topology or fails the test immediately.
func mustTopology(t *testing.T, numNodes int, links []Link) *Topology {
	t.Helper()
	topo, err := NewTopology(numNodes, links)
	if err != nil {
		t.Fatalf("NewTopology: %v", err)
	}
	return topo
}

// lineTopology is 0-1-2 with the given per-link distances.
func lineTopology(t *testing.T, d01, d12 float64) *Topology {
	t.Helper()
	return mustTopology(t, 3, []Link{{0, 1, d01}, {1, 2, d12}})
}

// singleLinkTopology is two nodes joined by one link.
func singleLinkTopology(t *testing.T, distance float64) *Topology {
	t.Helper()
	return mustTopology(t, 2, []Link{{0, 1, distance}})
}

// diamondTopology is the four-node diamond with two equal-length routes
// 0-1-3 and 0-2-3, each link linkKm long.
func diamondTopology(t *testing.T, linkKm float64) *Topology {
	t.Helper()
	return mustTopology(t, 4, []Link{
		{0, 1, linkKm}, {1, 3, linkKm},
		{0, 2, linkKm}, {2, 3, linkKm},
	})
}

// mustState creates an all-free NetworkState or fails the test.
func mustState(t *testing.T, topo *Topology, numSlots int) *NetworkState {
	t.Helper()
	state, err := NewNetworkState(topo, numSlots)
	if err != nil {
		t.Fatalf("NewNetworkState: %v", err)
	}
	return state
}

// mustPath resolves a node sequence against topo, deriving its distance.
func mustPath(t *testing.T, topo *Topology, nodes ...int) Path {
	t.Helper()
	distance, err := topo.PathDistance(nodes)
	if err != nil {
		t.Fatalf("PathDistance(%v): %v", nodes, err)
	}
	return Path{Nodes: nodes, DistanceKm: distance}
}

// singleFormatTable is a one-entry modulation table for reach-bracket tests.
func singleFormatTable(reachKm float64, slotsPer100 int) ModulationTable {
	return ModulationTable{{Name: "16-QAM", MaxReachKm: reachKm, SlotsPer100: slotsPer100}}
}

// testParams assembles policy parameters without defaulting.
func testParams(numSlots, k, guard int, table ModulationTable) Params {
	return Params{NumSlots: numSlots, K: k, GuardBandSlots: guard, Modulation: table}
}
