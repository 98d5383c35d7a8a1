package rmlsa

// KSPMW is the k-shortest-paths minimum-watermark policy. It evaluates up
// to K candidate paths and allocates on the one whose first-fit block
// raises the network watermark the least, trading longer routes for a
// more compact spectrum.
type KSPMW struct {
	finder *PathFinder
	params Params
}

// NewKSPMW creates a k-SP-MW policy over topo.
func NewKSPMW(topo *Topology, params Params) *KSPMW {
	return &KSPMW{finder: NewPathFinder(topo), params: params}
}

// Name implements AssignmentPolicy.
func (p *KSPMW) Name() string { return "ksp-mw" }

// Assign implements AssignmentPolicy for KSPMW. Candidates are ranked by
// prospective watermark max(current, start+count); ties go to the shorter
// path distance, then to the lower candidate index. Ranking never mutates
// state; only the winning candidate is allocated.
func (p *KSPMW) Assign(state *NetworkState, demand Demand) Decision {
	paths := p.finder.KShortest(demand.Source, demand.Destination, p.params.K)
	if len(paths) == 0 {
		return blocked(BlockNoRoute)
	}

	current := state.Watermark()
	best := -1
	var bestMark, bestStart, bestCount int
	var bestFormat string
	reachable := false

	for i, path := range paths {
		format, ok := p.params.Modulation.Select(path.DistanceKm)
		if !ok {
			continue
		}
		reachable = true
		count := RequiredSlots(demand.BandwidthGbps, format, p.params.GuardBandSlots)
		start, ok := FirstFit(state, path, count)
		if !ok {
			continue
		}
		mark := current
		if start+count > mark {
			mark = start + count
		}
		// Strict < implements the whole tie-break chain: KShortest orders
		// candidates by ascending (distance, node sequence), so on equal
		// watermarks the earlier candidate is both shorter and lower-index.
		if best == -1 || mark < bestMark {
			best = i
			bestMark = mark
			bestStart = start
			bestCount = count
			bestFormat = format.Name
		}
	}

	if best == -1 {
		if !reachable {
			return blocked(BlockUnreachable)
		}
		return blocked(BlockSpectrum)
	}
	if !state.Allocate(paths[best], bestStart, bestCount) {
		return blocked(BlockSpectrum)
	}
	return Decision{Assigned: true, Assignment: Assignment{
		DemandID:  demand.ID,
		Path:      paths[best],
		StartSlot: bestStart,
		SlotCount: bestCount,
		Format:    bestFormat,
	}}
}
