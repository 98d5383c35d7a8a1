package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
	"github.com/dreamxist/RMLSA-STATIC/rmlsa/search"
)

func reportFixture(t *testing.T) (*rmlsa.Solution, rmlsa.FitnessWeights) {
	t.Helper()
	topo := rmlsa.NSFNet()
	params := rmlsa.Params{NumSlots: 20, K: 3, GuardBandSlots: 2, Modulation: rmlsa.DefaultModulationTable()}
	eng, err := rmlsa.NewEngine(topo, params, "ksp-mw")
	require.NoError(t, err)

	// The 20-slot grid forces some of these to block.
	sol, err := eng.Run([]rmlsa.Demand{
		{ID: 0, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 1, Source: 0, Destination: 13, BandwidthGbps: 200},
		{ID: 2, Source: 3, Destination: 4, BandwidthGbps: 50},
		{ID: 3, Source: 12, Destination: 13, BandwidthGbps: 75},
	})
	require.NoError(t, err)
	require.NotZero(t, sol.BlockedCount(), "fixture expects at least one blocked demand")
	return sol, rmlsa.DefaultFitnessWeights()
}

func TestBuildReport_SummaryOnly(t *testing.T) {
	sol, weights := reportFixture(t)

	report := buildReport(sol, nil, weights, false)

	assert.Equal(t, "ksp-mw", report.Algorithm)
	assert.Equal(t, sol.TotalDemands(), report.TotalDemands)
	assert.Equal(t, sol.AssignedCount(), report.AssignedCount)
	assert.Equal(t, sol.BlockedCount(), report.BlockedCount)
	assert.Equal(t, sol.Watermark(), report.Watermark)
	assert.Equal(t, sol.Fitness(weights), report.Fitness)
	assert.Equal(t, sol.AssignedCount(), report.SlotCounts.Count)
	assert.Empty(t, report.Assignments, "summary reports omit per-demand detail")
	assert.Empty(t, report.Blocked)
	assert.Nil(t, report.Search, "greedy runs carry no search block")
}

func TestBuildReport_Details(t *testing.T) {
	sol, weights := reportFixture(t)

	report := buildReport(sol, nil, weights, true)

	require.Len(t, report.Assignments, sol.AssignedCount())
	require.Len(t, report.Blocked, sol.BlockedCount())
	for i, a := range report.Assignments {
		assert.Equal(t, sol.Assignments[i].DemandID, a.DemandID)
		assert.Equal(t, sol.Assignments[i].Path.Nodes, a.Path)
		assert.Equal(t, a.Path[0], a.Source, "assignment %d path must start at the source", i)
		assert.Equal(t, a.Path[len(a.Path)-1], a.Destination, "assignment %d path must end at the destination", i)
	}
	for i, b := range report.Blocked {
		assert.Equal(t, sol.Blocked[i].Demand.ID, b.DemandID)
		assert.NotEmpty(t, b.Reason)
	}
}

func TestBuildReport_SearchBlock(t *testing.T) {
	sol, weights := reportFixture(t)
	result := &search.Result{
		Best:        sol,
		BestFitness: sol.Fitness(weights),
		BestHistory: []float64{9, 8, 7},
		AvgHistory:  []float64{12, 10, 9},
		Evaluations: 30,
	}

	report := buildReport(sol, result, weights, false)

	require.NotNil(t, report.Search)
	assert.Equal(t, result.BestFitness, report.Search.BestFitness)
	assert.Equal(t, 30, report.Search.Evaluations)
	assert.Equal(t, result.BestHistory, report.Search.BestHistory)
}

func TestWriteJSON_FileAndRoundtrip(t *testing.T) {
	sol, weights := reportFixture(t)
	report := buildReport(sol, nil, weights, true)
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, writeJSON(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Algorithm, decoded.Algorithm)
	assert.Equal(t, report.Watermark, decoded.Watermark)
	assert.Len(t, decoded.Assignments, report.AssignedCount)
}
