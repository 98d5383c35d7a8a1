package rmlsa

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	topo := NSFNet()
	cases := []struct {
		name    string
		topo    *Topology
		params  Params
		policy  string
		wantErr string
	}{
		{"nil topology", nil, DefaultParams(), "sp-ff", "topology"},
		{"zero slots", topo, testParams(0, 3, 2, DefaultModulationTable()), "sp-ff", "numSlots"},
		{"zero k", topo, testParams(320, 0, 2, DefaultModulationTable()), "ksp-mw", "k must"},
		{"negative guard", topo, testParams(320, 3, -1, DefaultModulationTable()), "sp-ff", "guardBandSlots"},
		{"empty modulation table", topo, testParams(320, 3, 2, ModulationTable{}), "sp-ff", "modulation"},
		{"unknown policy", topo, DefaultParams(), "best-fit", "unknown assignment policy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEngine(tc.topo, tc.params, tc.policy)
			if err == nil {
				t.Fatal("NewEngine succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestEngineRun_ProcessesDescendingBandwidth(t *testing.T) {
	topo := NSFNet()
	eng, err := NewEngine(topo, DefaultParams(), "sp-ff")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	demands := []Demand{
		{ID: 0, Source: 0, Destination: 5, BandwidthGbps: 50},
		{ID: 1, Source: 3, Destination: 7, BandwidthGbps: 200},
		{ID: 2, Source: 9, Destination: 12, BandwidthGbps: 100},
		{ID: 3, Source: 1, Destination: 13, BandwidthGbps: 200},
	}
	original := make([]Demand, len(demands))
	copy(original, demands)

	sol, err := eng.Run(demands)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOrder := []int{1, 3, 2, 0} // 200 (id 1), 200 (id 3), 100, 50
	for i, want := range wantOrder {
		if sol.Demands[i].ID != want {
			t.Errorf("processing position %d: demand %d, want %d", i, sol.Demands[i].ID, want)
		}
	}
	if !reflect.DeepEqual(demands, original) {
		t.Error("Run reordered the caller's slice")
	}
}

func TestEngineRun_OutcomesPartitionBatch(t *testing.T) {
	topo := NSFNet()
	eng, err := NewEngine(topo, Params{NumSlots: 40, K: 3, GuardBandSlots: 2, Modulation: DefaultModulationTable()}, "ksp-mw")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	// A batch heavy enough that the 40-slot grid blocks some demands.
	demands := []Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 1, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 2, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 3, Source: 1, Destination: 8, BandwidthGbps: 100},
		{ID: 4, Source: 5, Destination: 11, BandwidthGbps: 150},
		{ID: 5, Source: 3, Destination: 4, BandwidthGbps: 50},
	}

	sol, err := eng.Run(demands)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := sol.AssignedCount() + sol.BlockedCount(); got != sol.TotalDemands() {
		t.Errorf("assigned %d + blocked %d != total %d",
			sol.AssignedCount(), sol.BlockedCount(), sol.TotalDemands())
	}
	seen := make(map[int]int)
	for _, a := range sol.Assignments {
		seen[a.DemandID]++
	}
	for _, b := range sol.Blocked {
		seen[b.Demand.ID]++
	}
	for _, d := range demands {
		if seen[d.ID] != 1 {
			t.Errorf("demand %d appears %d times across outcomes, want exactly once", d.ID, seen[d.ID])
		}
	}
	if err := sol.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEngineRun_DeterministicAcrossRuns(t *testing.T) {
	topo := NSFNet()
	demands := []Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 175},
		{ID: 1, Source: 2, Destination: 9, BandwidthGbps: 125},
		{ID: 2, Source: 4, Destination: 12, BandwidthGbps: 75},
		{ID: 3, Source: 1, Destination: 11, BandwidthGbps: 225},
		{ID: 4, Source: 6, Destination: 13, BandwidthGbps: 100},
	}
	for _, policy := range []string{"sp-ff", "ksp-mw"} {
		t.Run(policy, func(t *testing.T) {
			eng, err := NewEngine(topo, DefaultParams(), policy)
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			first, err := eng.Run(demands)
			if err != nil {
				t.Fatalf("first Run: %v", err)
			}
			second, err := eng.Run(demands)
			if err != nil {
				t.Fatalf("second Run: %v", err)
			}
			// Elapsed is wall time and may differ; everything else must not.
			if !reflect.DeepEqual(first.Assignments, second.Assignments) {
				t.Error("assignments differ between identical runs")
			}
			if !reflect.DeepEqual(first.Blocked, second.Blocked) {
				t.Error("blocked demands differ between identical runs")
			}
		})
	}
}

func TestEngineRun_InputOrderIrrelevant(t *testing.T) {
	topo := NSFNet()
	eng, err := NewEngine(topo, DefaultParams(), "ksp-mw")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	batch := []Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 175},
		{ID: 1, Source: 2, Destination: 9, BandwidthGbps: 125},
		{ID: 2, Source: 4, Destination: 12, BandwidthGbps: 75},
		{ID: 3, Source: 1, Destination: 11, BandwidthGbps: 125},
	}
	shuffled := []Demand{batch[2], batch[0], batch[3], batch[1]}

	a, err := eng.Run(batch)
	if err != nil {
		t.Fatalf("Run(batch): %v", err)
	}
	b, err := eng.Run(shuffled)
	if err != nil {
		t.Fatalf("Run(shuffled): %v", err)
	}
	if !reflect.DeepEqual(a.Assignments, b.Assignments) {
		t.Error("assignments depend on input order")
	}
	if !reflect.DeepEqual(a.Blocked, b.Blocked) {
		t.Error("blocked demands depend on input order")
	}
}

func TestEngineRun_EmptyBatch(t *testing.T) {
	eng, err := NewEngine(NSFNet(), DefaultParams(), "sp-ff")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	sol, err := eng.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sol.TotalDemands() != 0 || sol.AssignedCount() != 0 || sol.BlockedCount() != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero",
			sol.TotalDemands(), sol.AssignedCount(), sol.BlockedCount())
	}
	if bf := sol.BlockingFraction(); bf != 0 {
		t.Errorf("BlockingFraction = %v, want 0", bf)
	}
	if w := sol.Watermark(); w != 0 {
		t.Errorf("Watermark = %d, want 0", w)
	}
}

func TestEngineRun_SolutionReplaysToSameWatermark(t *testing.T) {
	topo := NSFNet()
	eng, err := NewEngine(topo, DefaultParams(), "ksp-mw")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	demands := []Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 150},
		{ID: 1, Source: 3, Destination: 8, BandwidthGbps: 100},
		{ID: 2, Source: 9, Destination: 1, BandwidthGbps: 250},
		{ID: 3, Source: 5, Destination: 12, BandwidthGbps: 50},
	}
	sol, err := eng.Run(demands)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sol.BlockedCount() != 0 {
		t.Fatalf("expected an uncongested run, got %d blocked", sol.BlockedCount())
	}
	state, err := sol.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if state.Watermark() != sol.Watermark() {
		t.Errorf("replayed watermark %d != solution watermark %d",
			state.Watermark(), sol.Watermark())
	}
	if err := sol.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
