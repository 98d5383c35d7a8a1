package rmlsa

import "testing"

func TestNewNetworkState_RejectsInvalidConfig(t *testing.T) {
	topo := singleLinkTopology(t, 100)

	if _, err := NewNetworkState(nil, 10); err == nil {
		t.Error("expected error for nil topology")
	}
	if _, err := NewNetworkState(topo, 0); err == nil {
		t.Error("expected error for numSlots = 0")
	}
	if _, err := NewNetworkState(topo, -5); err == nil {
		t.Error("expected error for negative numSlots")
	}
}

func TestNetworkState_StartsAllFree(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)

	if w := state.Watermark(); w != 0 {
		t.Errorf("Watermark of fresh state = %d, want 0", w)
	}
	if u := state.Utilization(); u != 0 {
		t.Errorf("Utilization of fresh state = %v, want 0", u)
	}
	path := mustPath(t, topo, 0, 1, 2)
	if !state.IsAvailable(path, 0, 10) {
		t.Error("entire spectrum should be free on a fresh state")
	}
}

func TestNetworkState_IsAvailable_BoundsChecked(t *testing.T) {
	topo := singleLinkTopology(t, 100)
	state := mustState(t, topo, 10)
	path := mustPath(t, topo, 0, 1)

	cases := []struct {
		name         string
		start, count int
	}{
		{"negative start", -1, 2},
		{"zero count", 0, 0},
		{"negative count", 0, -2},
		{"past end", 8, 3},
		{"start at end", 10, 1},
	}
	for _, tc := range cases {
		if state.IsAvailable(path, tc.start, tc.count) {
			t.Errorf("%s: IsAvailable(%d,%d) = true, want false", tc.name, tc.start, tc.count)
		}
	}
}

func TestNetworkState_IsAvailable_UnknownLinkUnavailable(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)

	// 0-2 skips over node 1; no such link exists.
	ghost := Path{Nodes: []int{0, 2}}
	if state.IsAvailable(ghost, 0, 1) {
		t.Error("path over a nonexistent link must be unavailable")
	}
}

func TestNetworkState_Allocate_ReservesEveryPathLink(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)
	path := mustPath(t, topo, 0, 1, 2)

	if !state.Allocate(path, 2, 3) {
		t.Fatal("Allocate on free spectrum failed")
	}

	// Continuity: the same range is taken on both links.
	for _, link := range [][]int{{0, 1}, {1, 2}} {
		sub := mustPath(t, topo, link[0], link[1])
		if state.IsAvailable(sub, 2, 3) {
			t.Errorf("slots [2,5) still available on link %v after allocation", link)
		}
		if !state.IsAvailable(sub, 5, 5) {
			t.Errorf("slots [5,10) unexpectedly taken on link %v", link)
		}
		if !state.IsAvailable(sub, 0, 2) {
			t.Errorf("slots [0,2) unexpectedly taken on link %v", link)
		}
	}
	if w := state.Watermark(); w != 5 {
		t.Errorf("Watermark = %d, want 5", w)
	}
	if got := state.OccupiedSlots(); got != 6 {
		t.Errorf("OccupiedSlots = %d, want 6 (3 slots on 2 links)", got)
	}
}

func TestNetworkState_Allocate_AllOrNothing(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)

	// Occupy [0,4) on the second link only.
	if !state.Allocate(mustPath(t, topo, 1, 2), 0, 4) {
		t.Fatal("setup allocation failed")
	}

	// A path crossing both links conflicts on link (1,2); link (0,1) must
	// stay untouched.
	full := mustPath(t, topo, 0, 1, 2)
	if state.Allocate(full, 0, 4) {
		t.Fatal("Allocate succeeded despite conflict on link (1,2)")
	}
	first := mustPath(t, topo, 0, 1)
	if !state.IsAvailable(first, 0, 10) {
		t.Error("failed allocation leaked occupancy onto link (0,1)")
	}
}

func TestNetworkState_Release_FreesRange(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)
	path := mustPath(t, topo, 0, 1, 2)

	if !state.Allocate(path, 0, 6) {
		t.Fatal("setup allocation failed")
	}
	state.Release(path, 0, 6)

	if !state.IsAvailable(path, 0, 10) {
		t.Error("spectrum not fully free after Release")
	}
	if w := state.Watermark(); w != 0 {
		t.Errorf("Watermark after release = %d, want 0", w)
	}

	// Releasing out-of-range or already-free slots is a harmless no-op.
	state.Release(path, -1, 3)
	state.Release(path, 8, 5)
	if !state.IsAvailable(path, 0, 10) {
		t.Error("no-op releases changed state")
	}
}

func TestNetworkState_WatermarkAndLinkWatermark(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 20)

	state.Allocate(mustPath(t, topo, 0, 1), 0, 3)
	state.Allocate(mustPath(t, topo, 1, 2), 7, 5)

	if w := state.LinkWatermark(0, 1); w != 3 {
		t.Errorf("LinkWatermark(0,1) = %d, want 3", w)
	}
	if w := state.LinkWatermark(1, 2); w != 12 {
		t.Errorf("LinkWatermark(1,2) = %d, want 12", w)
	}
	if w := state.LinkWatermark(0, 2); w != 0 {
		t.Errorf("LinkWatermark on unknown link = %d, want 0", w)
	}
	if w := state.Watermark(); w != 12 {
		t.Errorf("Watermark = %d, want 12 (max over links)", w)
	}
}

func TestNetworkState_Watermark_MonotoneUnderAllocation(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 32)
	path := mustPath(t, topo, 0, 1, 2)

	prev := state.Watermark()
	for i := 0; i < 8; i++ {
		start, ok := FirstFit(state, path, 4)
		if !ok {
			t.Fatalf("allocation %d: no block found", i)
		}
		if !state.Allocate(path, start, 4) {
			t.Fatalf("allocation %d failed", i)
		}
		w := state.Watermark()
		if w < prev {
			t.Fatalf("watermark decreased from %d to %d after allocation %d", prev, w, i)
		}
		prev = w
	}
}

func TestNetworkState_Utilization(t *testing.T) {
	topo := lineTopology(t, 100, 100) // 2 links x 10 slots = 20 slot capacity
	state := mustState(t, topo, 10)

	state.Allocate(mustPath(t, topo, 0, 1), 0, 5)
	if got := state.Utilization(); got != 25 {
		t.Errorf("Utilization = %v%%, want 25%% (5 of 20)", got)
	}
}

func TestNetworkState_Reset(t *testing.T) {
	topo := lineTopology(t, 100, 100)
	state := mustState(t, topo, 10)
	path := mustPath(t, topo, 0, 1, 2)

	state.Allocate(path, 0, 10)
	state.Reset()

	if w := state.Watermark(); w != 0 {
		t.Errorf("Watermark after Reset = %d, want 0", w)
	}
	if !state.IsAvailable(path, 0, 10) {
		t.Error("spectrum not free after Reset")
	}
}
