package trace

// Recorder consumes frames as the simulation produces them.
type Recorder interface {
	Record(Frame) error
}

// Discard is a Recorder that drops every frame.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Frame) error { return nil }

// Collector keeps every recorded frame in memory.
type Collector struct {
	Frames []Frame
}

// NewCollector creates a Collector ready for recording.
func NewCollector() *Collector {
	return &Collector{Frames: make([]Frame, 0)}
}

// Record appends a frame.
func (c *Collector) Record(f Frame) error {
	c.Frames = append(c.Frames, f)
	return nil
}

// Tee fans each frame out to every recorder in order, stopping at the first error.
func Tee(recorders ...Recorder) Recorder {
	return tee(recorders)
}

type tee []Recorder

func (t tee) Record(f Frame) error {
	for _, r := range t {
		if err := r.Record(f); err != nil {
			return err
		}
	}
	return nil
}
