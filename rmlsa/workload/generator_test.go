package workload

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestGenerate_RejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Generate(DefaultSpec(), 1, rng); err == nil {
		t.Error("Generate accepted a single-node network")
	}
	if _, err := Generate(Spec{Pattern: "poisson"}, 14, rng); err == nil {
		t.Error("Generate accepted an invalid spec")
	}
}

func TestGenerateUniform(t *testing.T) {
	spec := Spec{Pattern: PatternUniform, Count: 200, MinBandwidthGbps: 25, MaxBandwidthGbps: 100}
	demands, err := Generate(spec, 14, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(demands) != 200 {
		t.Fatalf("len = %d, want 200", len(demands))
	}
	for i, d := range demands {
		if d.ID != i {
			t.Errorf("demand %d: id %d, want sequential", i, d.ID)
		}
		if d.Source < 0 || d.Source >= 14 || d.Destination < 0 || d.Destination >= 14 {
			t.Errorf("demand %d: endpoints %d->%d outside 0..13", i, d.Source, d.Destination)
		}
		if d.Source == d.Destination {
			t.Errorf("demand %d: source equals destination %d", i, d.Source)
		}
		if d.BandwidthGbps < 25 || d.BandwidthGbps > 100 {
			t.Errorf("demand %d: bandwidth %v outside [25,100]", i, d.BandwidthGbps)
		}
		if d.BandwidthGbps != math.Trunc(d.BandwidthGbps) {
			t.Errorf("demand %d: bandwidth %v not integral", i, d.BandwidthGbps)
		}
	}
}

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	spec := Spec{Pattern: PatternUniform, Count: 50, MinBandwidthGbps: 25, MaxBandwidthGbps: 100}

	a, err := Generate(spec, 14, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(spec, 14, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different batches")
	}

	c, err := Generate(spec, 14, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical batches")
	}
}

func TestGenerateAllPairs(t *testing.T) {
	spec := Spec{Pattern: PatternAllPairs, MinBandwidthGbps: 40, MaxBandwidthGbps: 40}
	demands, err := Generate(spec, 5, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := 5 * 4; len(demands) != want {
		t.Fatalf("len = %d, want %d", len(demands), want)
	}

	seen := make(map[[2]int]bool)
	id := 0
	for src := 0; src < 5; src++ {
		for dst := 0; dst < 5; dst++ {
			if src == dst {
				continue
			}
			d := demands[id]
			if d.ID != id || d.Source != src || d.Destination != dst {
				t.Fatalf("position %d: got %d:%d->%d, want %d:%d->%d",
					id, d.ID, d.Source, d.Destination, id, src, dst)
			}
			if d.BandwidthGbps != 40 {
				t.Errorf("demand %d: bandwidth %v, want the degenerate range value 40", id, d.BandwidthGbps)
			}
			if seen[[2]int{src, dst}] {
				t.Errorf("pair %d->%d emitted twice", src, dst)
			}
			seen[[2]int{src, dst}] = true
			id++
		}
	}
}

func TestGenerateExponential(t *testing.T) {
	spec := Spec{Pattern: PatternExponential, Count: 300, MeanBandwidthGbps: 50}
	demands, err := Generate(spec, 14, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(demands) != 300 {
		t.Fatalf("len = %d, want 300", len(demands))
	}
	for i, d := range demands {
		if d.ID != i {
			t.Errorf("demand %d: id %d, want sequential", i, d.ID)
		}
		if d.Source == d.Destination {
			t.Errorf("demand %d: source equals destination %d", i, d.Source)
		}
		if d.BandwidthGbps < expClipMinGbps || d.BandwidthGbps > expClipMaxGbps {
			t.Errorf("demand %d: bandwidth %v outside clip range [%d,%d]",
				i, d.BandwidthGbps, expClipMinGbps, expClipMaxGbps)
		}
		if d.BandwidthGbps != math.Trunc(d.BandwidthGbps) {
			t.Errorf("demand %d: bandwidth %v not integral", i, d.BandwidthGbps)
		}
	}
}
