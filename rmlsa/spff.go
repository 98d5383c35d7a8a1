package rmlsa

// SPFF is the shortest-path first-fit policy: the single minimum-distance
// path, the most efficient modulation that reaches it, and the lowest free
// slot block. No multi-path fallback; if the one path fails, the demand is
// blocked.
type SPFF struct {
	finder *PathFinder
	params Params
}

// NewSPFF creates an SP-FF policy over topo.
func NewSPFF(topo *Topology, params Params) *SPFF {
	return &SPFF{finder: NewPathFinder(topo), params: params}
}

// Name implements AssignmentPolicy.
func (p *SPFF) Name() string { return "sp-ff" }

// Assign implements AssignmentPolicy for SPFF.
func (p *SPFF) Assign(state *NetworkState, demand Demand) Decision {
	path, ok := p.finder.ShortestPath(demand.Source, demand.Destination)
	if !ok {
		return blocked(BlockNoRoute)
	}
	format, ok := p.params.Modulation.Select(path.DistanceKm)
	if !ok {
		return blocked(BlockUnreachable)
	}
	count := RequiredSlots(demand.BandwidthGbps, format, p.params.GuardBandSlots)
	start, ok := FirstFit(state, path, count)
	if !ok {
		return blocked(BlockSpectrum)
	}
	if !state.Allocate(path, start, count) {
		// FirstFit just verified availability; a refusal here means the
		// state changed underneath us, which single-threaded runs forbid.
		return blocked(BlockSpectrum)
	}
	return Decision{Assigned: true, Assignment: Assignment{
		DemandID:  demand.ID,
		Path:      path,
		StartSlot: start,
		SlotCount: count,
		Format:    format.Name,
	}}
}
