// Package testutil provides shared assertion helpers used across the
// rmlsa, search, and workload test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertPermutation fails unless got contains each of 0..n-1 exactly once.
func AssertPermutation(t *testing.T, name string, got []int, n int) {
	t.Helper()
	if len(got) != n {
		t.Errorf("%s: length = %d, want %d", name, len(got), n)
		return
	}
	seen := make([]bool, n)
	for i, v := range got {
		if v < 0 || v >= n {
			t.Errorf("%s: element %d = %d, outside 0..%d", name, i, v, n-1)
			return
		}
		if seen[v] {
			t.Errorf("%s: element %d repeats value %d", name, i, v)
			return
		}
		seen[v] = true
	}
}

// AssertIntSlicesEqual fails on the first position where two int slices
// differ.
func AssertIntSlicesEqual(t *testing.T, name string, want, got []int) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: length = %d, want %d (got %v, want %v)", name, len(got), len(want), got, want)
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s: position %d = %d, want %d (got %v, want %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}
