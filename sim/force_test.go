package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/cellsim/cellsim/sim/internal/testutil"
)

func defaultModel() LennardJones {
	return NewLennardJones(DefaultSigma, DefaultEpsilon)
}

func TestForce_CoincidentPoints_ReturnsFixedVector(t *testing.T) {
	p := r2.Vec{X: 1.5, Y: -2}
	assert.Equal(t, r2.Vec{X: 0.01, Y: 0.01}, defaultModel().Force(p, p))
}

func TestForce_Antisymmetric(t *testing.T) {
	lj := defaultModel()
	pairs := []struct{ a, b r2.Vec }{
		{r2.Vec{X: 0, Y: 0}, r2.Vec{X: 0.1, Y: 0}},
		{r2.Vec{X: -0.25, Y: -0.25}, r2.Vec{X: -0.05, Y: -0.25}},
		{r2.Vec{X: 1, Y: 2}, r2.Vec{X: 1.3, Y: 1.7}},
		{r2.Vec{X: 0.123, Y: -4}, r2.Vec{X: 0.1230001, Y: -4.00002}},
		{r2.Vec{X: 10, Y: 10}, r2.Vec{X: -10, Y: -10}},
	}
	for _, tt := range pairs {
		assert.Equal(t, lj.Force(tt.a, tt.b), r2.Scale(-1, lj.Force(tt.b, tt.a)))
	}
}

func TestForce_RepulsiveInsideMinimum_AttractiveOutside(t *testing.T) {
	lj := defaultModel()
	a := r2.Vec{}
	rMin := math.Pow(2, 1.0/6.0) * DefaultSigma

	// closer than the potential minimum: a is pushed away from b
	near := lj.Force(a, r2.Vec{X: 0.9 * rMin})
	assert.Less(t, near.X, 0.0)
	assert.Equal(t, 0.0, near.Y)

	// farther than the minimum: a is pulled toward b
	far := lj.Force(a, r2.Vec{X: 1.5 * rMin})
	assert.Greater(t, far.X, 0.0)

	// at the minimum the force vanishes
	assert.InDelta(t, 0.0, lj.Force(a, r2.Vec{X: rMin}).X, 1e-9)
}

func TestForce_Magnitude(t *testing.T) {
	lj := defaultModel()
	r := 0.3
	s6 := math.Pow(DefaultSigma, 6)
	want := 24 * DefaultEpsilon * s6 * (math.Pow(r, 6) - 2*s6) / (math.Pow(r, 12) * r)

	// GIVEN b diagonal from a at distance r
	b := r2.Vec{X: r / math.Sqrt2, Y: r / math.Sqrt2}
	got := lj.Force(r2.Vec{}, b)

	// THEN the magnitude matches and the direction is along a→b
	testutil.AssertFloat64Equal(t, "force x", want/math.Sqrt2, got.X, 1e-9)
	testutil.AssertFloat64Equal(t, "force y", want/math.Sqrt2, got.Y, 1e-9)
}

func TestPotential(t *testing.T) {
	lj := defaultModel()
	a := r2.Vec{}
	assert.InDelta(t, 0.0, lj.Potential(a, r2.Vec{X: DefaultSigma}), 1e-9)
	rMin := math.Pow(2, 1.0/6.0) * DefaultSigma
	assert.InDelta(t, -DefaultEpsilon, lj.Potential(a, r2.Vec{Y: rMin}), 1e-9)
}

func TestDivisionOffset(t *testing.T) {
	assert.InDelta(t, 1e-5, defaultModel().DivisionOffset(), 1e-18)
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		cap  float64
		want r2.Vec
	}{
		{"zero vector", r2.Vec{}, 1, r2.Vec{}},
		{"under cap unchanged", r2.Vec{X: 0.3, Y: -0.4}, 1, r2.Vec{X: 0.3, Y: -0.4}},
		{"exactly at cap unchanged", r2.Vec{X: 3, Y: 4}, 5, r2.Vec{X: 3, Y: 4}},
		{"over cap rescaled", r2.Vec{X: 6, Y: -8}, 5, r2.Vec{X: 3, Y: -4}},
		{"zero cap", r2.Vec{X: 1, Y: 1}, 0, r2.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampMagnitude(tt.v, tt.cap)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestClampMagnitude_Idempotent(t *testing.T) {
	caps := []float64{0, 0.1, 1.5, 3, 1e6}
	for _, c := range caps {
		for x := -7.0; x <= 7; x += 0.7 {
			for y := -5.0; y <= 5; y += 0.9 {
				v := r2.Vec{X: x * math.Pi, Y: y * math.E}
				once := ClampMagnitude(v, c)
				assert.Equal(t, once, ClampMagnitude(once, c))
				assert.LessOrEqual(t, math.Hypot(once.X, once.Y), c*(1+1e-12)+1e-300)
			}
		}
	}
}

func TestClampMagnitude_PreservesDirection(t *testing.T) {
	v := r2.Vec{X: -12, Y: 5}
	got := ClampMagnitude(v, 1.5)
	assert.InDelta(t, 1.5, math.Hypot(got.X, got.Y), 1e-12)
	assert.InDelta(t, math.Atan2(v.Y, v.X), math.Atan2(got.Y, got.X), 1e-12)
}
