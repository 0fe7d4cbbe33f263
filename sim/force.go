package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default Lennard-Jones parameters.
const (
	DefaultSigma   = 0.2
	DefaultEpsilon = 20.0
)

// divisionOffsetScale times sigma is the distance each daughter is placed
// from the parent position.
const divisionOffsetScale = 0.00005

// clampTolerance lets a vector already rescaled to the cap (up to rounding)
// pass through a second clamp unchanged.
const clampTolerance = 1e-12

// degenerateForce is returned for coincident particles so they separate
// deterministically instead of dividing by zero.
var degenerateForce = r2.Vec{X: 0.01, Y: 0.01}

// LennardJones evaluates the pairwise 12-6 potential and the force derived from it.
type LennardJones struct {
	Sigma   float64
	Epsilon float64

	epsilon4 float64
	sigma6   float64
}

// NewLennardJones precomputes 4ε and σ⁶.
func NewLennardJones(sigma, epsilon float64) LennardJones {
	return LennardJones{
		Sigma:    sigma,
		Epsilon:  epsilon,
		epsilon4: 4 * epsilon,
		sigma6:   math.Pow(sigma, 6),
	}
}

// Potential returns 4ε((σ/r)¹² − (σ/r)⁶). Only used for diagnostics.
func (lj LennardJones) Potential(a, b r2.Vec) float64 {
	d2 := r2.Norm2(r2.Sub(a, b))
	sbyr6 := lj.sigma6 / (d2 * d2 * d2)
	return lj.epsilon4 * (sbyr6*sbyr6 - sbyr6)
}

// Force returns the force on a due to b: the unit vector from a toward b
// scaled by 24εσ⁶(r⁶ − 2σ⁶)/r¹³. Negative magnitudes push a away from b.
func (lj LennardJones) Force(a, b r2.Vec) r2.Vec {
	q := r2.Sub(b, a)
	d2 := r2.Norm2(q)
	if d2 <= 0 {
		return degenerateForce
	}
	r6 := d2 * d2 * d2
	r := math.Sqrt(d2)
	f := lj.epsilon4 * 6 * lj.sigma6 * (r6 - 2*lj.sigma6) / (r6 * r6 * r)
	return r2.Scale(f/r, q)
}

// DivisionOffset is the magnitude of the displacement applied to each daughter.
func (lj LennardJones) DivisionOffset() float64 {
	return lj.Sigma * divisionOffsetScale
}

// ClampMagnitude rescales v to length maxLen if it is longer, preserving direction.
func ClampMagnitude(v r2.Vec, maxLen float64) r2.Vec {
	mag := r2.Norm(v)
	if mag <= maxLen*(1+clampTolerance) {
		return v
	}
	return r2.Scale(maxLen/mag, v)
}
