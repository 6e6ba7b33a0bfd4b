// Package orbit evaluates closed-form periodic trajectories for moving scene bodies.
//
// Every function here is pure: the same (t, Params) always yields bit-identical
// output, so frame rate never changes the shape of a trajectory.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrNonFinite is returned by Validate when a parameter is NaN or infinite.
var ErrNonFinite = errors.New("orbit parameter is not finite")

// Wave is a single sine term: Amplitude * sin(Frequency*t + Phase).
type Wave struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

// At evaluates the wave at time t.
func (w Wave) At(t float64) float64 {
	if w.Amplitude == 0 {
		return 0
	}
	return w.Amplitude * math.Sin(w.Frequency*t+w.Phase)
}

// Params holds the constants of one body's trajectory.
//
// The horizontal path is an ellipse around Center whose per-axis radius may
// wobble over time. The vertical position is Center[1] plus the sum of Bob.
type Params struct {
	Center [3]float64

	// RadiusX and RadiusZ are the base radii along each horizontal axis.
	RadiusX float64
	RadiusZ float64

	// WobbleX and WobbleZ perturb the radii: r(t) = base + wobble.At(t).
	WobbleX Wave
	WobbleZ Wave

	// AngularVelocity is signed; negative values orbit clockwise seen from above.
	AngularVelocity float64
	Phase           float64

	Bob []Wave
}

// Circular builds the params of a constant-height circular orbit.
//
// Parameters:
//   - center: orbit centre; its Y is the body's height
//   - radius: orbit radius
//   - omega: signed angular velocity in rad/s
//   - phase: starting angle in radians
//
// Returns:
//   - Params: the circular orbit
func Circular(center [3]float64, radius, omega, phase float64) Params {
	return Params{
		Center:          center,
		RadiusX:         radius,
		RadiusZ:         radius,
		AngularVelocity: omega,
		Phase:           phase,
	}
}

// Ghost builds a circular orbit around the origin that bobs vertically.
func Ghost(radius, omega float64, bob ...Wave) Params {
	p := Circular([3]float64{}, radius, omega, 0)
	p.Bob = slices.Clone(bob)
	return p
}

// WithWobble returns a copy of p whose radii are perturbed by the given waves.
func (p Params) WithWobble(x, z Wave) Params {
	p.WobbleX = x
	p.WobbleZ = z
	p.Bob = slices.Clone(p.Bob)
	return p
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	p.Bob = slices.Clone(p.Bob)
	return p
}

// Validate rejects parameters that would produce NaN or infinite positions.
func (p Params) Validate() error {
	type field struct {
		name string
		v    float64
	}
	fields := []field{
		{"center.x", p.Center[0]}, {"center.y", p.Center[1]}, {"center.z", p.Center[2]},
		{"radius.x", p.RadiusX}, {"radius.z", p.RadiusZ},
		{"angular velocity", p.AngularVelocity}, {"phase", p.Phase},
	}
	waves := append([]Wave{p.WobbleX, p.WobbleZ}, p.Bob...)
	for i, w := range waves {
		fields = append(fields,
			field{fmt.Sprintf("wave[%d].amplitude", i), w.Amplitude},
			field{fmt.Sprintf("wave[%d].frequency", i), w.Frequency},
			field{fmt.Sprintf("wave[%d].phase", i), w.Phase},
		)
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s = %v: %w", f.name, f.v, ErrNonFinite)
		}
	}
	return nil
}

// Position evaluates the trajectory at elapsed time t.
//
// The effective radius is not clamped: a wobble larger than the base radius
// flips the body through the centre for that instant, which stays finite.
//
// Parameters:
//   - t: elapsed seconds
//   - p: the body's orbit parameters
//
// Returns:
//   - x, y, z: world-space position
func Position(t float64, p Params) (x, y, z float64) {
	theta := t*p.AngularVelocity + p.Phase
	rx := p.RadiusX + p.WobbleX.At(t)
	rz := p.RadiusZ + p.WobbleZ.At(t)

	x = p.Center[0] + math.Cos(theta)*rx
	z = p.Center[2] + math.Sin(theta)*rz
	y = p.Center[1]
	for _, b := range p.Bob {
		y += b.At(t)
	}
	return x, y, z
}

// EvenPhases returns n phase offsets k*2π/n spaced evenly around a circle.
func EvenPhases(n int) []float64 {
	if n <= 0 {
		return nil
	}
	phases := make([]float64, n)
	for k := range phases {
		phases[k] = float64(k) * 2 * math.Pi / float64(n)
	}
	return phases
}

// Ring builds n circular orbits sharing centre, radius and angular velocity,
// with evenly spaced phases so the bodies stay evenly distributed.
func Ring(center [3]float64, radius, omega float64, n int) []Params {
	phases := EvenPhases(n)
	ring := make([]Params, len(phases))
	for k, phi := range phases {
		ring[k] = Circular(center, radius, omega, phi)
	}
	return ring
}
