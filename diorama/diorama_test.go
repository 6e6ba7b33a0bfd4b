package diorama

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/config"
	"github.com/Carmen-Shannon/haunted-house/engine/asset"
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/placement"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

func build(t *testing.T, cfg config.Scene, seed int64, assets Assets) scene.Scene {
	t.Helper()
	cam := NewCamera(config.DefaultConfig().Camera, 16.0/9.0)
	s, err := Build(cfg, cam, rand.New(rand.NewSource(seed)), assets)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func byName(s scene.Scene, name string) game_object.GameObject {
	for _, obj := range s.Objects() {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

func inGroup(s scene.Scene, group string) []game_object.GameObject {
	var out []game_object.GameObject
	for _, obj := range s.Objects() {
		if obj.Group() == group {
			out = append(out, obj)
		}
	}
	return out
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBuildComposition(t *testing.T) {
	s := build(t, config.DefaultConfig().Scene, 1, Assets{})

	tests := []struct {
		group string
		want  int
	}{
		{GroupHouse, 7},
		{GroupGround, 2},
		{GroupGraves, 50},
		{GroupParticles, 1},
		{GroupProps, 1},
		{GroupMarkers, 3},
		{GroupGhosts, 3},
	}
	total := 0
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			if got := len(inGroup(s, tt.group)); got != tt.want {
				t.Errorf("expected %d entities, got %d", tt.want, got)
			}
		})
		total += tt.want
	}
	if s.Count() != total {
		t.Errorf("expected %d entities in total, got %d", total, s.Count())
	}

	// ambient, moon, door light and one per ghost
	lights := s.Lights()
	if len(lights) != 6 {
		t.Fatalf("expected 6 lights, got %d", len(lights))
	}
	counts := map[light.LightType]int{}
	for _, l := range lights {
		counts[l.Type()]++
	}
	if counts[light.LightTypeAmbient] != 1 || counts[light.LightTypeDirectional] != 1 || counts[light.LightTypePoint] != 4 {
		t.Errorf("unexpected light mix %v", counts)
	}

	if s.Fog().Near != 1 || s.Fog().Far != 15 {
		t.Errorf("unexpected fog %+v", s.Fog())
	}
	if s.ClearColor() != s.Fog().Color {
		t.Errorf("clear colour %v should match fog colour %v", s.ClearColor(), s.Fog().Color)
	}

	// Only markers, ghosts and particles move.
	if got := len(s.Bound()); got != 6 {
		t.Errorf("expected 6 orbiting entities, got %d", got)
	}
}

func TestBuildDefaultsName(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	cfg.Name = ""
	if got := build(t, cfg, 1, Assets{}).Name(); got != DefaultName {
		t.Errorf("expected %q, got %q", DefaultName, got)
	}
}

func TestBuildHouseLayout(t *testing.T) {
	s := build(t, config.DefaultConfig().Scene, 1, Assets{})

	tests := []struct {
		name string
		kind game_object.Kind
		pos  [3]float32
	}{
		{"walls", game_object.KindBox, [3]float32{0, 1.25, 0}},
		{"roof", game_object.KindCone, [3]float32{0, 3, 0}},
		{"door", game_object.KindBox, [3]float32{0, 1, 2.01}},
		{"bush-1", game_object.KindSphere, [3]float32{0.8, 0.2, 2.2}},
		{"floor", game_object.KindPlane, [3]float32{0, 0, 0}},
		{"stone-path", game_object.KindPlane, [3]float32{0, 0.001, 5}},
		{"rocket", game_object.KindCone, [3]float32{10, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := byName(s, tt.name)
			if obj == nil {
				t.Fatalf("entity missing")
			}
			if obj.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, obj.Kind())
			}
			x, y, z := obj.Position()
			if [3]float32{x, y, z} != tt.pos {
				t.Errorf("expected position %v, got %v", tt.pos, [3]float32{x, y, z})
			}
		})
	}

	if _, ry, _ := byName(s, "roof").Rotation(); !near(float64(ry), math.Pi/4, 1e-6) {
		t.Errorf("expected roof turned by π/4, got %v", ry)
	}
	if sx, sy, sz := byName(s, "bush-4").Scale(); sx != 0.15 || sy != 0.15 || sz != 0.15 {
		t.Errorf("unexpected bush scale %v %v %v", sx, sy, sz)
	}
}

func TestBuildIsReproducible(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	a := build(t, cfg, 42, Assets{})
	b := build(t, cfg, 42, Assets{})
	c := build(t, cfg, 43, Assets{})

	ga, gb, gc := inGroup(a, GroupGraves), inGroup(b, GroupGraves), inGroup(c, GroupGraves)
	same := true
	for i := range ga {
		pa, _, ra := ga[i].TransformData()
		pb, _, rb := gb[i].TransformData()
		if pa != pb || ra != rb {
			t.Fatalf("grave %d differs for the same seed: %v/%v vs %v/%v", i, pa, ra, pb, rb)
		}
		pc, _, _ := gc[i].TransformData()
		if pa != pc {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds produced the same graveyard")
	}

	pa := byName(a, "particles").Points()
	pb := byName(b, "particles").Points()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs for the same seed", i)
		}
	}
}

func TestGravesStayInAnnulus(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	s := build(t, cfg, 9, Assets{})
	inner := cfg.Graves.InnerRadius
	outer := inner + cfg.Graves.RadiusSpread
	for _, g := range inGroup(s, GroupGraves) {
		x, y, z := g.Position()
		r := math.Hypot(float64(x), float64(z))
		if r < inner-1e-4 || r > outer+1e-4 {
			t.Errorf("%s at radius %v outside [%v, %v]", g.Name(), r, inner, outer)
		}
		if !near(float64(y), cfg.Graves.Elevation, 1e-6) {
			t.Errorf("%s at height %v, want %v", g.Name(), y, cfg.Graves.Elevation)
		}
		_, ry, rz := g.Rotation()
		if math.Abs(float64(ry)) > cfg.Graves.MaxTilt+1e-6 || math.Abs(float64(rz)) > cfg.Graves.MaxTilt+1e-6 {
			t.Errorf("%s tilted beyond %v: %v %v", g.Name(), cfg.Graves.MaxTilt, ry, rz)
		}
	}
}

func TestMarkersStayEvenlySpaced(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	s := build(t, cfg, 1, Assets{})
	center := cfg.Markers.Center

	for _, tt := range []float64{0, 1.3, 7.25} {
		s.Animate(tt)
		markers := inGroup(s, GroupMarkers)
		pos := make([][3]float64, len(markers))
		for i, m := range markers {
			x, y, z := m.Position()
			pos[i] = [3]float64{float64(x), float64(y), float64(z)}
			if d := math.Hypot(pos[i][0]-center.X, pos[i][2]-center.Z); !near(d, cfg.Markers.Radius, 1e-4) {
				t.Errorf("t=%v: marker %d at distance %v from centre", tt, i, d)
			}
			if !near(pos[i][1], center.Y, 1e-5) {
				t.Errorf("t=%v: marker %d at height %v", tt, i, pos[i][1])
			}
		}
		// Three points evenly spaced on a unit circle are √3 apart.
		for i := range pos {
			j := (i + 1) % len(pos)
			d := math.Hypot(pos[i][0]-pos[j][0], pos[i][2]-pos[j][2])
			if !near(d, math.Sqrt(3)*cfg.Markers.Radius, 1e-4) {
				t.Errorf("t=%v: markers %d and %d are %v apart", tt, i, j, d)
			}
		}
	}
}

func TestGhostTrajectories(t *testing.T) {
	s := build(t, config.DefaultConfig().Scene, 1, Assets{})

	tests := []struct {
		name string
		at   func(t float64) [3]float64
	}{
		{"ghost-1", func(t float64) [3]float64 {
			a := 0.5 * t
			return [3]float64{math.Cos(a) * 4, math.Sin(3 * t), math.Sin(a) * 4}
		}},
		{"ghost-2", func(t float64) [3]float64 {
			a := -0.32 * t
			return [3]float64{math.Cos(a) * 5, math.Sin(4*t) + math.Sin(2.5*t), math.Sin(a) * 5}
		}},
		{"ghost-3", func(t float64) [3]float64 {
			a := -0.18 * t
			return [3]float64{
				math.Cos(a) * (7 + math.Sin(0.32*t)),
				math.Sin(4*t) + math.Sin(2.5*t),
				math.Sin(a) * (7 + math.Sin(0.5*t)),
			}
		}},
	}
	for _, elapsed := range []float64{0, 0.5, 3.7, 12} {
		s.Animate(elapsed)
		for _, tt := range tests {
			ghost := byName(s, tt.name)
			if ghost == nil {
				t.Fatalf("%s missing", tt.name)
			}
			want := tt.at(elapsed)
			x, y, z := ghost.Position()
			got := [3]float64{float64(x), float64(y), float64(z)}
			for k := range want {
				if !near(got[k], want[k], 1e-4) {
					t.Errorf("%s at t=%v: got %v, want %v", tt.name, elapsed, got, want)
					break
				}
			}
			lp := ghost.Light().Position()
			if lp != [3]float32{x, y, z} {
				t.Errorf("%s light at %v, ghost at %v", tt.name, lp, got)
			}
		}
	}
}

func TestParticlesSpin(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	s := build(t, cfg, 1, Assets{})
	p := byName(s, "particles")
	if len(p.Points()) != cfg.Particles.Count {
		t.Fatalf("expected %d points, got %d", cfg.Particles.Count, len(p.Points()))
	}
	s.Animate(10)
	if _, ry, _ := p.Rotation(); !near(float64(ry), cfg.Particles.Spin*10, 1e-6) {
		t.Errorf("expected rotation %v, got %v", cfg.Particles.Spin*10, ry)
	}
}

func TestTexturesTintMaterials(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	plain := build(t, cfg, 1, Assets{})
	tinted := build(t, cfg, 1, Assets{Textures: map[string]*asset.Texture{
		TextureDoor: {Name: TextureDoor, Tint: [3]float32{0.5, 1, 0}},
	}})

	base := byName(plain, "door").Color()
	door := byName(tinted, "door")
	want := [3]float32{base[0] * 0.5, base[1], 0}
	if door.Color() != want {
		t.Errorf("expected tinted colour %v, got %v", want, door.Color())
	}
	if door.Texture() != TextureDoor {
		t.Errorf("expected texture %q, got %q", TextureDoor, door.Texture())
	}
	if byName(tinted, "walls").Texture() != "" {
		t.Errorf("walls should keep the plain colour without a loaded texture")
	}
}

func TestRocketSizedFromModel(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	model := &asset.Model{Name: "rocket", Min: [3]float32{-50, 0, -50}, Max: [3]float32{50, 300, 50}}
	s := build(t, cfg, 1, Assets{Rocket: model})

	rocket := byName(s, "rocket")
	if rocket.Kind() != game_object.KindBox || rocket.Size() != [3]float32{100, 300, 100} {
		t.Errorf("expected a 100x300x100 box, got %v %v", rocket.Kind(), rocket.Size())
	}
	sx, _, _ := rocket.Scale()
	if sx != float32(cfg.Rocket.Scale) {
		t.Errorf("expected scale %v, got %v", cfg.Rocket.Scale, sx)
	}
	_, y, _ := rocket.Position()
	if !near(float64(y), 10+150*cfg.Rocket.Scale, 1e-4) {
		t.Errorf("expected the model centre at height %v, got %v", 10+150*cfg.Rocket.Scale, y)
	}
}

func TestBuildErrors(t *testing.T) {
	cam := NewCamera(config.DefaultConfig().Camera, 1)

	tests := []struct {
		name   string
		mutate func(*config.Scene)
		rng    *rand.Rand
		target error
		want   string
	}{
		{name: "bad colour", mutate: func(s *config.Scene) { s.Palette.Roof = "brown" }, rng: rand.New(rand.NewSource(1)), want: "palette.roof"},
		{name: "bad ghost colour", mutate: func(s *config.Scene) { s.Ghosts[1].Color = "#12" }, rng: rand.New(rand.NewSource(1)), want: "ghosts[1].color"},
		{name: "negative graves", mutate: func(s *config.Scene) { s.Graves.Count = -1 }, rng: rand.New(rand.NewSource(1)), target: placement.ErrNegativeCount},
		{name: "zero extent", mutate: func(s *config.Scene) { s.Particles.Extent = 0 }, rng: rand.New(rand.NewSource(1)), target: placement.ErrInvalidRadius},
		{name: "no random source", mutate: func(*config.Scene) {}, target: placement.ErrNilSource},
		{name: "non-finite ghost", mutate: func(s *config.Scene) { s.Ghosts[0].Radius = math.Inf(1) }, rng: rand.New(rand.NewSource(1)), want: "bind ghost 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig().Scene
			tt.mutate(&cfg)
			s, err := Build(cfg, cam, tt.rng, Assets{})
			if err == nil {
				t.Fatalf("expected an error")
			}
			if s != nil {
				t.Errorf("expected no scene on error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %v", tt.want, err)
			}
		})
	}
}

func TestNewCamera(t *testing.T) {
	cfg := config.DefaultConfig().Camera
	cfg.OrbitSpeed, cfg.PanSpeed = 0.1, 0.3
	cfg.MinDistance, cfg.MaxDistance = 3, 12
	cfg.MinElevation, cfg.MaxElevation = 10, 60
	cam := NewCamera(cfg, 2)
	pos := cam.Position()
	want := cfg.Position.Float32()
	for k := range want {
		if !near(float64(pos[k]), float64(want[k]), 1e-4) {
			t.Fatalf("expected eye %v, got %v", want, pos)
		}
	}
	if !near(float64(cam.Fov()), 75*math.Pi/180, 1e-6) {
		t.Errorf("expected 75° in radians, got %v", cam.Fov())
	}
	if cam.Aspect() != 2 || cam.Near() != float32(cfg.Near) || cam.Far() != float32(cfg.Far) {
		t.Errorf("unexpected projection %v %v %v", cam.Aspect(), cam.Near(), cam.Far())
	}
	ctrl := cam.Controller()
	if on, factor := ctrl.Damping(); !on || !near(float64(factor), cfg.Damping, 1e-6) {
		t.Errorf("expected damping %v, got %v %v", cfg.Damping, on, factor)
	}
	if ctrl.OrbitSpeed() != float32(cfg.OrbitSpeed) || ctrl.ZoomSpeed() != float32(cfg.ZoomSpeed) ||
		ctrl.PanSpeed() != float32(cfg.PanSpeed) || ctrl.MouseSensitivity() != float32(cfg.MouseSensitivity) {
		t.Errorf("input speeds not applied: %v %v %v %v", ctrl.OrbitSpeed(), ctrl.ZoomSpeed(), ctrl.PanSpeed(), ctrl.MouseSensitivity())
	}
	if ctrl.MinRadius() != 3 || ctrl.MaxRadius() != 12 {
		t.Errorf("expected distance limits 3..12, got %v..%v", ctrl.MinRadius(), ctrl.MaxRadius())
	}
	if !near(float64(ctrl.MinElevation()), math.Pi/18, 1e-6) || !near(float64(ctrl.MaxElevation()), math.Pi/3, 1e-6) {
		t.Errorf("expected elevation limits 10°..60°, got %v..%v", ctrl.MinElevation(), ctrl.MaxElevation())
	}
}

func TestPointLightsUseConfiguredDecay(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	cfg.LightDecay = 1
	s := build(t, cfg, 1, Assets{})
	points := 0
	for _, l := range s.Lights() {
		if l.Type() != light.LightTypePoint {
			continue
		}
		points++
		if l.Decay() != 1 {
			t.Errorf("point light decay %v, want 1", l.Decay())
		}
	}
	if points != 4 {
		t.Errorf("expected 4 point lights, got %d", points)
	}
}
