// Package testutil provides shared test infrastructure for the simulator.
// It consolidates golden-file and float assertion helpers used across
// sim/ and sim/trace/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// NewGolden returns a goldie instance reading fixtures from testdata/golden
// relative to the calling package. Regenerate with `go test ./... -update`.
func NewGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

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
