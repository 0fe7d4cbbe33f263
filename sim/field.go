package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/cellsim/cellsim/lineage"
	"github.com/cellsim/cellsim/sim/trace"
)

// Particle is one live cell. Node is a non-owning reference into the forest
// and is never nil for a live particle.
type Particle struct {
	Position r2.Vec
	Velocity r2.Vec
	Node     *lineage.Node
}

// Field holds every live particle. Position, velocity and lineage node of a
// particle travel together, so index i always refers to one entity.
type Field struct {
	Particles []Particle
}

// NewField places one particle per forest root, at rest, at the given positions.
// positions must have one entry per root.
func NewField(forest lineage.Forest, positions []r2.Vec) *Field {
	f := &Field{Particles: make([]Particle, len(forest))}
	for i, root := range forest {
		f.Particles[i] = Particle{Position: positions[i], Node: root}
	}
	return f
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Positions returns a copy of every particle position, in index order.
func (f *Field) Positions() []r2.Vec {
	out := make([]r2.Vec, len(f.Particles))
	for i, p := range f.Particles {
		out[i] = p.Position
	}
	return out
}

// Frame snapshots the field as a time-series record.
func (f *Field) Frame(now float64) trace.Frame {
	points := make([]trace.Point, len(f.Particles))
	for i, p := range f.Particles {
		points[i] = trace.Point{Type: p.Node.Type, X: p.Position.X, Y: p.Position.Y}
	}
	return trace.Frame{Time: now, Points: points}
}

// InitialLayout returns n starting positions on a staggered grid spaced sigma
// apart, roughly centred on the origin.
func InitialLayout(n int, sigma float64) []r2.Vec {
	positions := make([]r2.Vec, 0, n)
	box := math.Ceil(math.Sqrt(float64(n)))
	start := -box / 4
	x, y := start, start
	for i := 0; i < n; i++ {
		positions = append(positions, r2.Vec{X: x, Y: y})
		x += sigma
		if x >= box/2 {
			x = start + 0.5
			y += sigma * 0.866
		}
	}
	return positions
}
