package common

import (
	"math"
	"testing"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("identity * m = %v, want %v", out, m)
	}
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 4, 2, 5, 0, 0, 0, 0, 1, 0)

	p := TransformPoint(view[:], 0, 0, 0)
	dist := float32(math.Sqrt(16 + 4 + 25))
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -dist) {
		t.Errorf("target in view space = %v, want (0, 0, %v)", p, -dist)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], float32(math.Pi/2), 1, 0.1, 100)

	cases := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near", -0.1, 0},
		{"far", -100, 1},
	}
	for _, tc := range cases {
		p := TransformPoint(proj[:], 0, 0, tc.z)
		if got := p[2] / p[3]; !near(got, tc.depth) {
			t.Errorf("%s plane depth = %v, want %v", tc.name, got, tc.depth)
		}
	}
}

func TestBuildModelMatrixRotatesAboutY(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 0, 0, 0, float32(math.Pi/2), 0, 1, 1, 1)

	// +X rotated a quarter turn about Y lands on -Z, then translated by +1 on X.
	p := TransformPoint(m[:], 1, 0, 0)
	if !near(p[0], 1) || !near(p[1], 0) || !near(p[2], -1) {
		t.Errorf("rotated point = %v, want (1, 0, -1)", p)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], float32(math.Pi/3), 1, 0.1, 100)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	cases := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"origin", [3]float32{0, 0, 0}, 0.1, true},
		{"behind camera", [3]float32{0, 0, 10}, 0.5, false},
		{"far left", [3]float32{-50, 0, 0}, 0.5, false},
		{"beyond far plane", [3]float32{0, 0, -200}, 1, false},
		{"straddling left edge", [3]float32{-4, 0, 0}, 2, true},
	}
	for _, tc := range cases {
		if got := f.IntersectsSphere(tc.center, tc.radius); got != tc.want {
			t.Errorf("%s: IntersectsSphere = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#262837")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	want := [3]float32{0x26 / 255.0, 0x28 / 255.0, 0x37 / 255.0}
	for i := range c {
		if !near(c[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, c[i], want[i])
		}
	}

	for _, bad := range []string{"", "#fff", "#zzzzzz", "#1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) expected error", bad)
		}
	}
}

func TestColorToRGB8Clamps(t *testing.T) {
	r, g, b := ColorToRGB8([3]float32{-1, 0.5, 2})
	if r != 0 || g != 128 || b != 255 {
		t.Errorf("ColorToRGB8 = (%d, %d, %d), want (0, 128, 255)", r, g, b)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want b", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %d, want 0", got)
	}
}
