package rmlsa

import (
	"container/heap"
	"strconv"
	"strings"
)

// Path is a loopless node sequence with its total physical length.
type Path struct {
	Nodes      []int
	DistanceKm float64
}

// Hops returns the number of links the path traverses.
func (p Path) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// PathFinder computes shortest and k-shortest loopless paths over a
// topology, minimizing total distance. Equal-distance alternatives always
// resolve to the lower node-id sequence, so results are stable across runs
// and across map iteration orders.
type PathFinder struct {
	topo *Topology
}

// NewPathFinder creates a PathFinder over topo.
func NewPathFinder(topo *Topology) *PathFinder {
	return &PathFinder{topo: topo}
}

// ShortestPath returns the minimum-distance path from src to dst.
// ok is false when src == dst, an endpoint is unknown, or no path exists.
func (f *PathFinder) ShortestPath(src, dst int) (Path, bool) {
	return f.search(src, dst, nil, nil)
}

// KShortest returns up to k loopless paths from src to dst in ascending
// (distance, node sequence) order. Fewer than k paths are returned when
// the graph holds fewer; the result is empty when src == dst or the nodes
// are disconnected.
func (f *PathFinder) KShortest(src, dst, k int) []Path {
	if k <= 0 {
		return nil
	}
	first, ok := f.ShortestPath(src, dst)
	if !ok {
		return nil
	}
	accepted := []Path{first}
	seen := map[string]bool{seqKey(first.Nodes): true}

	pool := &pathHeap{}
	for len(accepted) < k {
		prev := accepted[len(accepted)-1].Nodes

		// Branch off every prefix of the most recently accepted path.
		for i := 0; i+1 < len(prev); i++ {
			spur := prev[i]
			root := prev[:i+1]

			// The deviation must not rebuild a path we already hold:
			// remove the next edge of every accepted path sharing this
			// root, and every root node except the spur itself.
			bannedLinks := make(map[[2]int]bool)
			for _, p := range accepted {
				if len(p.Nodes) > i+1 && equalSeq(p.Nodes[:i+1], root) {
					bannedLinks[linkKey(p.Nodes[i], p.Nodes[i+1])] = true
				}
			}
			bannedNodes := make(map[int]bool, i)
			for _, n := range root[:i] {
				bannedNodes[n] = true
			}

			spurPath, ok := f.search(spur, dst, bannedNodes, bannedLinks)
			if !ok {
				continue
			}

			nodes := make([]int, 0, i+len(spurPath.Nodes))
			nodes = append(nodes, root[:i]...)
			nodes = append(nodes, spurPath.Nodes...)
			key := seqKey(nodes)
			if seen[key] {
				continue
			}
			seen[key] = true
			rootDist, err := f.topo.PathDistance(root)
			if err != nil {
				continue
			}
			heap.Push(pool, pathItem{nodes: nodes, distanceKm: rootDist + spurPath.DistanceKm})
		}

		if pool.Len() == 0 {
			break
		}
		next := heap.Pop(pool).(pathItem)
		accepted = append(accepted, Path{Nodes: next.nodes, DistanceKm: next.distanceKm})
	}
	return accepted
}

// search runs a uniform-cost search from src to dst, skipping banned nodes
// and links. The heap orders frontier paths by (distance, node sequence),
// which is what makes tie-breaking deterministic.
func (f *PathFinder) search(src, dst int, bannedNodes map[int]bool, bannedLinks map[[2]int]bool) (Path, bool) {
	n := f.topo.NumNodes()
	if src < 0 || src >= n || dst < 0 || dst >= n || src == dst {
		return Path{}, false
	}
	visited := make(map[int]bool, n)
	frontier := &pathHeap{{nodes: []int{src}}}
	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(pathItem)
		last := cur.nodes[len(cur.nodes)-1]
		if visited[last] {
			continue
		}
		visited[last] = true
		if last == dst {
			return Path{Nodes: cur.nodes, DistanceKm: cur.distanceKm}, true
		}
		for _, next := range f.topo.Neighbors(last) {
			if visited[next] || bannedNodes[next] || bannedLinks[linkKey(last, next)] {
				continue
			}
			d, ok := f.topo.Distance(last, next)
			if !ok {
				continue
			}
			nodes := make([]int, len(cur.nodes)+1)
			copy(nodes, cur.nodes)
			nodes[len(cur.nodes)] = next
			heap.Push(frontier, pathItem{nodes: nodes, distanceKm: cur.distanceKm + d})
		}
	}
	return Path{}, false
}

// pathItem is a frontier or candidate entry ordered by (distance, sequence).
type pathItem struct {
	nodes      []int
	distanceKm float64
}

func (a pathItem) less(b pathItem) bool {
	if a.distanceKm != b.distanceKm {
		return a.distanceKm < b.distanceKm
	}
	n := len(a.nodes)
	if len(b.nodes) < n {
		n = len(b.nodes)
	}
	for i := 0; i < n; i++ {
		if a.nodes[i] != b.nodes[i] {
			return a.nodes[i] < b.nodes[i]
		}
	}
	return len(a.nodes) < len(b.nodes)
}

type pathHeap []pathItem

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(pathItem)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	item := old[len(old)-1]
	*h = old[:len(old)-1]
	return item
}

func seqKey(nodes []int) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func equalSeq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
