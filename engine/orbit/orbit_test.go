package orbit

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func angleOf(x, z float64, center [3]float64) float64 {
	return math.Atan2(z-center[2], x-center[0])
}

func wrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func TestPositionIsDeterministic(t *testing.T) {
	p := Ghost(5, -0.32, Wave{Amplitude: 1, Frequency: 4}, Wave{Amplitude: 1, Frequency: 2.5}).
		WithWobble(Wave{Amplitude: 1, Frequency: 0.32}, Wave{Amplitude: 1, Frequency: 0.5})

	for _, tt := range []float64{0, 0.016, 1, 13.37, 1e4} {
		x1, y1, z1 := Position(tt, p)
		x2, y2, z2 := Position(tt, p)
		if x1 != x2 || y1 != y2 || z1 != z2 {
			t.Errorf("t=%v: (%v,%v,%v) != (%v,%v,%v)", tt, x1, y1, z1, x2, y2, z2)
		}
	}
}

func TestMarkerTrajectory(t *testing.T) {
	p := Circular([3]float64{0, 2.2, 0}, 1, 0.5, 0)

	cases := []struct {
		t    float64
		x, z float64
	}{
		{0, 1, 0},
		{1, math.Cos(0.5), math.Sin(0.5)},
		{2, math.Cos(1.0), math.Sin(1.0)},
	}
	for _, tc := range cases {
		x, y, z := Position(tc.t, p)
		if math.Abs(x-tc.x) > tol || math.Abs(z-tc.z) > tol {
			t.Errorf("t=%v: (x, z) = (%v, %v), want (%v, %v)", tc.t, x, z, tc.x, tc.z)
		}
		if y != 2.2 {
			t.Errorf("t=%v: y = %v, want constant 2.2", tc.t, y)
		}
	}
}

func TestRingKeepsEvenSpacing(t *testing.T) {
	center := [3]float64{4, 2.2, 4}
	for _, n := range []int{1, 2, 3, 5, 8} {
		ring := Ring(center, 1, 0.5, n)
		if len(ring) != n {
			t.Fatalf("Ring(%d) returned %d params", n, len(ring))
		}
		for _, tt := range []float64{0, 0.7, 42} {
			for k := 1; k < n; k++ {
				x0, _, z0 := Position(tt, ring[k-1])
				x1, _, z1 := Position(tt, ring[k])
				gap := wrap(angleOf(x1, z1, center) - angleOf(x0, z0, center))
				if math.Abs(gap-2*math.Pi/float64(n)) > 1e-6 {
					t.Errorf("n=%d t=%v: gap between %d and %d = %v, want %v", n, tt, k-1, k, gap, 2*math.Pi/float64(n))
				}
			}
		}
	}
}

func TestNegativeAngularVelocityReversesDirection(t *testing.T) {
	const eps = 1e-3
	center := [3]float64{}
	fwd := Circular(center, 3, 0.5, 0.4)
	rev := Circular(center, 3, -0.5, 0.4)

	for _, tt := range []float64{0, 1, 5} {
		xa, _, za := Position(tt, fwd)
		xb, _, zb := Position(tt+eps, fwd)
		dFwd := angleOf(xb, zb, center) - angleOf(xa, za, center)

		xc, _, zc := Position(tt, rev)
		xd, _, zd := Position(tt+eps, rev)
		dRev := angleOf(xd, zd, center) - angleOf(xc, zc, center)

		if dFwd <= 0 || dRev >= 0 {
			t.Errorf("t=%v: angle deltas fwd=%v rev=%v, want opposite signs", tt, dFwd, dRev)
		}
		if rf, rr := math.Hypot(xa, za), math.Hypot(xc, zc); math.Abs(rf-rr) > tol {
			t.Errorf("t=%v: radius %v vs %v, want equal", tt, rf, rr)
		}
	}
}

func TestStartPositionIsFinite(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"zero value", Params{}},
		{"marker", Circular([3]float64{4, 2.2, 3}, 1, 0.5, 0)},
		{"ghost", Ghost(4, 0.5, Wave{Amplitude: 1, Frequency: 3})},
		{"wobble equals base", Circular([3]float64{}, 1, 1, 0).WithWobble(Wave{Amplitude: 1, Frequency: 1, Phase: -math.Pi / 2}, Wave{})},
		{"wobble exceeds base", Circular([3]float64{}, 1, 1, 0).WithWobble(Wave{Amplitude: 5, Frequency: 1, Phase: -math.Pi / 2}, Wave{Amplitude: 5, Frequency: 2})},
	}
	for _, tc := range cases {
		x, y, z := Position(0, tc.p)
		for _, v := range []float64{x, y, z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: non-finite start position (%v, %v, %v)", tc.name, x, y, z)
			}
		}
	}
}

func TestRadiusIsNotClamped(t *testing.T) {
	// At t=0 the wobble contributes -2, driving the x radius to -1.
	p := Circular([3]float64{}, 1, 1, 0).WithWobble(Wave{Amplitude: 2, Frequency: 1, Phase: -math.Pi / 2}, Wave{})
	x, _, z := Position(0, p)
	if math.Abs(x+1) > tol || math.Abs(z) > tol {
		t.Errorf("start position = (%v, %v), want (-1, 0): body mirrored through the centre", x, z)
	}
}

func TestGhostWobbleAndBob(t *testing.T) {
	p := Ghost(7, -0.18, Wave{Amplitude: 1, Frequency: 4}, Wave{Amplitude: 1, Frequency: 2.5}).
		WithWobble(Wave{Amplitude: 1, Frequency: 0.32}, Wave{Amplitude: 1, Frequency: 0.5})

	tt := 3.0
	x, y, z := Position(tt, p)
	theta := -0.18 * tt
	wantX := math.Cos(theta) * (7 + math.Sin(tt*0.32))
	wantZ := math.Sin(theta) * (7 + math.Sin(tt*0.5))
	wantY := math.Sin(tt*4) + math.Sin(tt*2.5)

	if math.Abs(x-wantX) > tol || math.Abs(y-wantY) > tol || math.Abs(z-wantZ) > tol {
		t.Errorf("ghost at t=%v = (%v,%v,%v), want (%v,%v,%v)", tt, x, y, z, wantX, wantY, wantZ)
	}
}

func TestWithWobbleDoesNotAliasBob(t *testing.T) {
	base := Ghost(4, 0.5, Wave{Amplitude: 1, Frequency: 3})
	w := base.WithWobble(Wave{Amplitude: 1}, Wave{})
	w.Bob[0].Amplitude = 9
	if base.Bob[0].Amplitude != 1 {
		t.Errorf("mutating the copy changed the source bob to %v", base.Bob[0].Amplitude)
	}
}

func TestValidate(t *testing.T) {
	if err := Circular([3]float64{1, 2, 3}, 1, -0.5, math.Pi).Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}

	bad := []Params{
		Circular([3]float64{math.NaN(), 0, 0}, 1, 1, 0),
		Circular([3]float64{}, math.Inf(1), 1, 0),
		Ghost(1, 1, Wave{Amplitude: math.NaN()}),
		Circular([3]float64{}, 1, 1, 0).WithWobble(Wave{Frequency: math.Inf(-1)}, Wave{}),
	}
	for i, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrNonFinite) {
			t.Errorf("case %d: Validate() = %v, want ErrNonFinite", i, err)
		}
	}
}

func TestEvenPhases(t *testing.T) {
	if EvenPhases(0) != nil {
		t.Errorf("EvenPhases(0) should be nil")
	}
	got := EvenPhases(4)
	want := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("phase %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSpinRotation(t *testing.T) {
	s := Spin{Rate: [3]float64{0, 0.02, 0}}
	r := Rotation(10, s)
	if r[0] != 0 || math.Abs(r[1]-0.2) > tol || r[2] != 0 {
		t.Errorf("Rotation = %v, want (0, 0.2, 0)", r)
	}
	if err := (Spin{Rate: [3]float64{math.NaN(), 0, 0}}).Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Validate() = %v, want ErrNonFinite", err)
	}
}
