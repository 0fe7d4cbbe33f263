package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyInput_ZeroValues(t *testing.T) {
	// GIVEN no frames
	summary := Summarize(nil)

	// THEN all counts are zero and there are no bounds
	if summary.Frames != 0 {
		t.Errorf("expected 0 frames, got %d", summary.Frames)
	}
	if summary.PeakPopulation != 0 || summary.FinalPopulation != 0 {
		t.Error("expected 0 peak and final population")
	}
	if summary.MeanPopulation != 0 {
		t.Errorf("expected 0 mean population, got %v", summary.MeanPopulation)
	}
	if summary.Bounds != nil {
		t.Error("expected nil bounds")
	}
	if len(summary.FinalTypeCounts) != 0 {
		t.Error("expected empty type counts")
	}
}

func TestSummarize_PopulatedFrames_CorrectStatistics(t *testing.T) {
	// GIVEN a run that grows from 1 to 3 particles and then dies out
	frames := []Frame{
		{Time: 0, Points: []Point{{Type: 2, X: 0, Y: 0}}},
		{Time: 0.5, Points: []Point{{Type: 0, X: -1, Y: 0}, {Type: 1, X: 1, Y: 0}, {Type: 1, X: 0, Y: 2}}},
		{Time: 1, Points: []Point{{Type: 1, X: 0, Y: 2}}},
		{Time: 1.5},
	}

	// WHEN summarized
	summary := Summarize(frames)

	// THEN the statistics match
	assert.Equal(t, 4, summary.Frames)
	assert.Equal(t, 0.0, summary.StartTime)
	assert.Equal(t, 1.5, summary.EndTime)
	assert.Equal(t, 3, summary.PeakPopulation)
	assert.Equal(t, 0.5, summary.PeakTime)
	assert.Equal(t, 0, summary.FinalPopulation)
	assert.InDelta(t, 1.25, summary.MeanPopulation, 1e-12)
	assert.Empty(t, summary.FinalTypeCounts)

	// AND bounds cover every point ever recorded, with a 5% margin
	require.NotNil(t, summary.Bounds)
	assert.InDelta(t, -1.1, summary.Bounds.MinX, 1e-12)
	assert.InDelta(t, 1.1, summary.Bounds.MaxX, 1e-12)
	assert.InDelta(t, -0.1, summary.Bounds.MinY, 1e-12)
	assert.InDelta(t, 2.1, summary.Bounds.MaxY, 1e-12)
}

func TestSummarizer_FinalTypeCounts(t *testing.T) {
	s := NewSummarizer()
	require.NoError(t, s.Record(Frame{Time: 0, Points: []Point{{Type: 0}}}))
	require.NoError(t, s.Record(Frame{Time: 1, Points: []Point{{Type: 0}, {Type: 1}, {Type: 1}}}))

	assert.Equal(t, map[string]int{"A": 1, "B": 2}, s.Summary().FinalTypeCounts)
}

func TestComputeBounds_MatchesSummarizer(t *testing.T) {
	frames := sampleFrames()

	b, ok := ComputeBounds(frames)

	require.True(t, ok)
	assert.Equal(t, *Summarize(frames).Bounds, b)
}

func TestComputeBounds_NoPoints(t *testing.T) {
	_, ok := ComputeBounds([]Frame{{Time: 0}, {Time: 1}})
	assert.False(t, ok)
}
