package rmlsa

// FirstFit scans the spectrum of a path from slot 0 upward and returns the
// lowest start index at which count contiguous slots are free on every
// link. ok is false when no window fits. The scan is deterministic: given
// the same state, path, and count, it always returns the same start.
func FirstFit(state *NetworkState, path Path, count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	for start := 0; start+count <= state.NumSlots(); start++ {
		if state.IsAvailable(path, start, count) {
			return start, true
		}
	}
	return 0, false
}
