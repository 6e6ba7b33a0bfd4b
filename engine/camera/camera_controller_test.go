package camera

import (
	"math"
	"testing"
)

func nearly(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestEyePositionRoundTrips(t *testing.T) {
	cc := NewCameraController(WithEyePosition(4, 2, 5), WithTarget(0, 0, 0))
	x, y, z := cc.Position()
	if !nearly(x, 4, 1e-4) || !nearly(y, 2, 1e-4) || !nearly(z, 5, 1e-4) {
		t.Errorf("Position = (%v, %v, %v), want (4, 2, 5)", x, y, z)
	}
	if !nearly(cc.Radius(), float32(math.Sqrt(45)), 1e-4) {
		t.Errorf("Radius = %v, want sqrt(45)", cc.Radius())
	}
}

func TestInputIsBufferedUntilAdvance(t *testing.T) {
	cc := NewCameraController(WithDamping(0))
	az := cc.Azimuth()

	cc.OrbitRight()
	if cc.Azimuth() != az {
		t.Fatalf("azimuth moved before Advance")
	}
	if cc.Settled() {
		t.Fatalf("controller reports settled with pending input")
	}

	cc.Advance()
	if !nearly(cc.Azimuth(), az+cc.OrbitSpeed(), 1e-6) {
		t.Errorf("Azimuth = %v, want %v", cc.Azimuth(), az+cc.OrbitSpeed())
	}
	if !cc.Settled() {
		t.Errorf("undamped Advance should consume all input")
	}
}

func TestDampedAdvanceConverges(t *testing.T) {
	cc := NewCameraController(WithDamping(0.5))
	az := cc.Azimuth()
	cc.OrbitRight()

	cc.Advance()
	first := cc.Azimuth() - az
	if !nearly(first, cc.OrbitSpeed()/2, 1e-6) {
		t.Errorf("first damped step = %v, want %v", first, cc.OrbitSpeed()/2)
	}

	for i := 0; i < 64 && !cc.Settled(); i++ {
		cc.Advance()
	}
	if !cc.Settled() {
		t.Fatalf("damped input never settled")
	}
	if !nearly(cc.Azimuth()-az, cc.OrbitSpeed(), 1e-4) {
		t.Errorf("total rotation = %v, want %v", cc.Azimuth()-az, cc.OrbitSpeed())
	}
}

func TestAdvanceWithoutInputIsIdempotent(t *testing.T) {
	cc := NewCameraController(WithEyePosition(4, 2, 5))
	x0, y0, z0 := cc.Position()
	for i := 0; i < 10; i++ {
		cc.Advance()
	}
	if x, y, z := cc.Position(); x != x0 || y != y0 || z != z0 {
		t.Errorf("Position drifted to (%v, %v, %v) from (%v, %v, %v)", x, y, z, x0, y0, z0)
	}
}

func TestZoomAndElevationAreClamped(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithDistanceLimits(2, 10), WithEyePosition(0, 0, 5))

	cc.Zoom(1000)
	cc.Advance()
	if cc.Radius() != cc.MinRadius() {
		t.Errorf("Radius = %v, want clamp to %v", cc.Radius(), cc.MinRadius())
	}

	cc.Rotate(0, 1e6)
	cc.Advance()
	if cc.Elevation() != cc.MaxElevation() {
		t.Errorf("Elevation = %v, want clamp to %v", cc.Elevation(), cc.MaxElevation())
	}
}

func TestPanMovesTargetAndEyeTogether(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithEyePosition(0, 0, 5), WithElevationLimits(-1, 1), WithSpeeds(Speeds{Pan: 1}))
	cc.PanRight(2)
	cc.Advance()

	tx, _, tz := cc.Target()
	x, _, z := cc.Position()
	if !nearly(tx, 2, 1e-5) || !nearly(tz, 0, 1e-5) {
		t.Errorf("Target = (%v, %v), want (2, 0)", tx, tz)
	}
	if !nearly(x, 2, 1e-5) || !nearly(z, 5, 1e-5) {
		t.Errorf("Position = (%v, %v), want (2, 5)", x, z)
	}
}

func TestSetDamping(t *testing.T) {
	cc := NewCameraController()
	if on, f := cc.Damping(); !on || f != 0.05 {
		t.Errorf("default damping = %v %v, want true 0.05", on, f)
	}
	cc.SetDamping(-1)
	if on, _ := cc.Damping(); on {
		t.Errorf("negative factor should disable damping")
	}
}

func TestLimitOptions(t *testing.T) {
	tests := []struct {
		name                   string
		opts                   []CameraControllerOption
		minR, maxR, minE, maxE float32
		radius                 float32
	}{
		{"defaults", nil, 2, 40, 0.05, float32(math.Pi/2 - 0.1), 20},
		{"eye pulled inside", []CameraControllerOption{WithDistanceLimits(3, 8)}, 3, 8, 0.05, float32(math.Pi/2 - 0.1), 8},
		{"inverted distance ignored", []CameraControllerOption{WithDistanceLimits(8, 3)}, 2, 40, 0.05, float32(math.Pi/2 - 0.1), 20},
		{"zero distance ignored", []CameraControllerOption{WithDistanceLimits(0, 3)}, 2, 40, 0.05, float32(math.Pi/2 - 0.1), 20},
		{"elevation", []CameraControllerOption{WithElevationLimits(0.2, 1)}, 2, 40, 0.2, 1, 20},
		{"inverted elevation ignored", []CameraControllerOption{WithElevationLimits(1, 0.2)}, 2, 40, 0.05, float32(math.Pi/2 - 0.1), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(append([]CameraControllerOption{WithEyePosition(0, 10, 17.320508)}, tt.opts...)...)
			if cc.MinRadius() != tt.minR || cc.MaxRadius() != tt.maxR {
				t.Errorf("distance limits %v..%v, want %v..%v", cc.MinRadius(), cc.MaxRadius(), tt.minR, tt.maxR)
			}
			if cc.MinElevation() != tt.minE || cc.MaxElevation() != tt.maxE {
				t.Errorf("elevation limits %v..%v, want %v..%v", cc.MinElevation(), cc.MaxElevation(), tt.minE, tt.maxE)
			}
			if !nearly(cc.Radius(), tt.radius, 1e-4) {
				t.Errorf("Radius = %v, want %v", cc.Radius(), tt.radius)
			}
		})
	}
}

func TestWithSpeedsKeepsUnsetDefaults(t *testing.T) {
	cc := NewCameraController(WithSpeeds(Speeds{Orbit: 0.2, Pan: -1}))
	if cc.OrbitSpeed() != 0.2 {
		t.Errorf("OrbitSpeed = %v, want 0.2", cc.OrbitSpeed())
	}
	if cc.ZoomSpeed() != 0.5 || cc.PanSpeed() != 0.1 || cc.MouseSensitivity() != 0.005 {
		t.Errorf("defaults changed: zoom %v pan %v mouse %v", cc.ZoomSpeed(), cc.PanSpeed(), cc.MouseSensitivity())
	}
}
