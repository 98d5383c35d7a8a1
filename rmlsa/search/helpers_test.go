package search

import (
	"testing"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

// backboneDemands is a small mixed batch over the NSFNET topology with
// enough route diversity that order and route choices matter.
func backboneDemands() []rmlsa.Demand {
	return []rmlsa.Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 1, Source: 3, Destination: 12, BandwidthGbps: 150},
		{ID: 2, Source: 5, Destination: 13, BandwidthGbps: 100},
		{ID: 3, Source: 1, Destination: 8, BandwidthGbps: 100},
		{ID: 4, Source: 9, Destination: 0, BandwidthGbps: 250},
		{ID: 5, Source: 6, Destination: 11, BandwidthGbps: 50},
	}
}

func backboneParams() rmlsa.Params {
	return rmlsa.Params{NumSlots: 80, K: 3, GuardBandSlots: 2, Modulation: rmlsa.DefaultModulationTable()}
}

func newBackboneEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	eval, err := NewEvaluator(rmlsa.NSFNet(), backboneParams(), rmlsa.DefaultFitnessWeights(), backboneDemands())
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return eval
}
