package rmlsa

import "sort"

// Demand is one point-to-point bandwidth request. Immutable once generated.
type Demand struct {
	ID            int
	Source        int
	Destination   int
	BandwidthGbps float64
}

// SortForAssignment returns a copy of demands in the order the policies
// process them: descending bandwidth, ties by ascending id. The caller's
// slice is left untouched.
func SortForAssignment(demands []Demand) []Demand {
	sorted := make([]Demand, len(demands))
	copy(sorted, demands)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BandwidthGbps != sorted[j].BandwidthGbps {
			return sorted[i].BandwidthGbps > sorted[j].BandwidthGbps
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
