package trace

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// boundsMarginFraction widens each axis of the bounds on both sides.
const boundsMarginFraction = 1.0 / 20.0

// Bounds is the rectangle enclosing every point of a run, with margin.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// ComputeBounds returns the extent of all points across frames, widened by 5%
// of the range on each side. ok is false when there are no points.
func ComputeBounds(frames []Frame) (b Bounds, ok bool) {
	var xs, ys []float64
	for _, f := range frames {
		for _, p := range f.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(xs) == 0 {
		return Bounds{}, false
	}
	return withMargin(floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)), true
}

func withMargin(minX, maxX, minY, maxY float64) Bounds {
	wx := (maxX - minX) * boundsMarginFraction
	wy := (maxY - minY) * boundsMarginFraction
	return Bounds{MinX: minX - wx, MaxX: maxX + wx, MinY: minY - wy, MaxY: maxY + wy}
}

// Summary aggregates population statistics over a run's frames.
type Summary struct {
	Frames          int            `yaml:"frames"`
	StartTime       float64        `yaml:"start_time"`
	EndTime         float64        `yaml:"end_time"`
	PeakPopulation  int            `yaml:"peak_population"`
	PeakTime        float64        `yaml:"peak_time"`
	FinalPopulation int            `yaml:"final_population"`
	MeanPopulation  float64        `yaml:"mean_population"`
	FinalTypeCounts map[string]int `yaml:"final_type_counts"`
	Bounds          *Bounds        `yaml:"bounds,omitempty"` // nil if no particle was ever recorded
}

// Summarizer builds a Summary incrementally; it is itself a Recorder so a run
// can be summarized without keeping its frames.
type Summarizer struct {
	populations []float64
	summary     Summary

	seen                   bool
	minX, maxX, minY, maxY float64
}

// NewSummarizer creates an empty Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{
		minX: math.Inf(1), maxX: math.Inf(-1),
		minY: math.Inf(1), maxY: math.Inf(-1),
	}
}

// Record folds one frame into the summary.
func (s *Summarizer) Record(f Frame) error {
	sum := &s.summary
	if sum.Frames == 0 {
		sum.StartTime = f.Time
	}
	sum.Frames++
	sum.EndTime = f.Time
	pop := f.Population()
	if pop > sum.PeakPopulation {
		sum.PeakPopulation = pop
		sum.PeakTime = f.Time
	}
	sum.FinalPopulation = pop
	s.populations = append(s.populations, float64(pop))

	sum.FinalTypeCounts = make(map[string]int)
	for _, p := range f.Points {
		sum.FinalTypeCounts[string(rune('A'+p.Type))]++
		s.seen = true
		s.minX = math.Min(s.minX, p.X)
		s.maxX = math.Max(s.maxX, p.X)
		s.minY = math.Min(s.minY, p.Y)
		s.maxY = math.Max(s.maxY, p.Y)
	}
	return nil
}

// Summary returns the statistics of all frames recorded so far.
func (s *Summarizer) Summary() *Summary {
	out := s.summary
	if out.FinalTypeCounts == nil {
		out.FinalTypeCounts = make(map[string]int)
	}
	if len(s.populations) > 0 {
		out.MeanPopulation = stat.Mean(s.populations, nil)
	}
	if s.seen {
		b := withMargin(s.minX, s.maxX, s.minY, s.maxY)
		out.Bounds = &b
	}
	return &out
}

// Summarize computes aggregate statistics from a slice of frames.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(frames []Frame) *Summary {
	s := NewSummarizer()
	for _, f := range frames {
		_ = s.Record(f)
	}
	return s.Summary()
}
