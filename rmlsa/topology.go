package rmlsa

import (
	"fmt"
	"sort"
	"strconv"
)

// Link is an undirected fiber link between two nodes.
type Link struct {
	U          int     `yaml:"u"`
	V          int     `yaml:"v"`
	DistanceKm float64 `yaml:"distanceKm"`
}

// Topology is an immutable undirected graph of optical nodes and fiber
// links. Node identifiers are dense integers 0..NumNodes()-1; each link
// additionally carries a dense index used by NetworkState to address its
// spectrum vector.
type Topology struct {
	numNodes int
	links    []Link
	names    []string
	index    map[[2]int]int // canonical (min,max) node pair -> index into links
	adjacent [][]int        // per node, neighbor ids sorted ascending
}

// NewTopology builds a Topology from a node count and an undirected link
// list. Link endpoints must reference existing nodes, be distinct, carry a
// positive distance, and appear at most once regardless of direction.
func NewTopology(numNodes int, links []Link) (*Topology, error) {
	if numNodes <= 0 {
		return nil, fmt.Errorf("topology: node count must be positive, got %d", numNodes)
	}
	t := &Topology{
		numNodes: numNodes,
		links:    make([]Link, 0, len(links)),
		index:    make(map[[2]int]int, len(links)),
		adjacent: make([][]int, numNodes),
	}
	for i, l := range links {
		if l.U < 0 || l.U >= numNodes || l.V < 0 || l.V >= numNodes {
			return nil, fmt.Errorf("topology: link %d (%d,%d) references a node outside 0..%d", i, l.U, l.V, numNodes-1)
		}
		if l.U == l.V {
			return nil, fmt.Errorf("topology: link %d is a self-loop on node %d", i, l.U)
		}
		if l.DistanceKm <= 0 {
			return nil, fmt.Errorf("topology: link %d (%d,%d) distance must be positive, got %v", i, l.U, l.V, l.DistanceKm)
		}
		key := linkKey(l.U, l.V)
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("topology: duplicate link (%d,%d)", l.U, l.V)
		}
		t.index[key] = len(t.links)
		t.links = append(t.links, l)
		t.adjacent[l.U] = append(t.adjacent[l.U], l.V)
		t.adjacent[l.V] = append(t.adjacent[l.V], l.U)
	}
	for _, neighbors := range t.adjacent {
		sort.Ints(neighbors)
	}
	return t, nil
}

// linkKey returns the canonical map key for an undirected node pair.
func linkKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// NumNodes returns the node count.
func (t *Topology) NumNodes() int { return t.numNodes }

// NumLinks returns the link count.
func (t *Topology) NumLinks() int { return len(t.links) }

// Links returns the link list in construction order. Read-only.
func (t *Topology) Links() []Link { return t.links }

// LinkIndex returns the dense index of the undirected link between u and v.
func (t *Topology) LinkIndex(u, v int) (int, bool) {
	idx, ok := t.index[linkKey(u, v)]
	return idx, ok
}

// Distance returns the length in km of the link between u and v.
func (t *Topology) Distance(u, v int) (float64, bool) {
	idx, ok := t.index[linkKey(u, v)]
	if !ok {
		return 0, false
	}
	return t.links[idx].DistanceKm, true
}

// Neighbors returns u's adjacent nodes in ascending order. Read-only.
func (t *Topology) Neighbors(u int) []int {
	if u < 0 || u >= t.numNodes {
		return nil
	}
	return t.adjacent[u]
}

// PathDistance sums the link distances along a node sequence. Fails when
// any consecutive pair is not joined by a link.
func (t *Topology) PathDistance(nodes []int) (float64, error) {
	var total float64
	for i := 0; i+1 < len(nodes); i++ {
		d, ok := t.Distance(nodes[i], nodes[i+1])
		if !ok {
			return 0, fmt.Errorf("topology: no link between %d and %d", nodes[i], nodes[i+1])
		}
		total += d
	}
	return total, nil
}

// SetNodeNames attaches display names; len(names) must equal NumNodes().
func (t *Topology) SetNodeNames(names []string) error {
	if len(names) != t.numNodes {
		return fmt.Errorf("topology: got %d names for %d nodes", len(names), t.numNodes)
	}
	t.names = names
	return nil
}

// NodeName returns the display name for a node, falling back to its id.
func (t *Topology) NodeName(id int) string {
	if id >= 0 && id < len(t.names) {
		return t.names[id]
	}
	return strconv.Itoa(id)
}
