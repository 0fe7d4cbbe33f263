// Package trace provides the time-series records emitted by a simulation run:
// one Frame per recorded time, holding the type and position of every live
// particle. It also reads the line format back for downstream renderers.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Point is one live particle in a frame.
type Point struct {
	Type int // cell-type tag, rendered as 'A' + Type
	X    float64
	Y    float64
}

// Frame is the state of the field at one recorded time.
type Frame struct {
	Time   float64
	Points []Point
}

// Population returns the number of live particles in the frame.
func (f Frame) Population() int {
	return len(f.Points)
}
