// Package diorama composes the haunted-house scene from its configuration:
// the house, the graveyard, the ground, the dust, the lights and every
// orbiting body.
package diorama

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/config"
	"github.com/Carmen-Shannon/haunted-house/engine/asset"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/orbit"
	"github.com/Carmen-Shannon/haunted-house/engine/placement"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// DefaultName names the scene when the configuration leaves it empty.
const DefaultName = "haunted-house"

// Group names given to the composed entities.
const (
	GroupHouse     = "house"
	GroupGraves    = "graves"
	GroupGround    = "ground"
	GroupParticles = "particles"
	GroupMarkers   = "markers"
	GroupGhosts    = "ghosts"
	GroupProps     = "props"
)

// Texture names looked up in the loaded texture set.
const (
	TextureWalls = "bricks"
	TextureDoor  = "door"
	TextureFloor = "grass"
)

// Fixed light levels of the night scene.
const (
	ambientIntensity   = 0.08
	moonIntensity      = 0.08
	doorLightIntensity = 1
	doorLightRange     = 7
)

// bush is one decorative sphere beside the door.
type bush struct {
	name     string
	scale    float32
	position [3]float32
}

var bushes = []bush{
	{"bush-1", 0.5, [3]float32{0.8, 0.2, 2.2}},
	{"bush-2", 0.25, [3]float32{1.4, 0.1, 2.1}},
	{"bush-3", 0.4, [3]float32{-0.8, 0.1, 2.2}},
	{"bush-4", 0.15, [3]float32{-1, 0.01, 2.6}},
}

// NewCamera builds the perspective camera and its orbit controller.
//
// Parameters:
//   - cfg: field of view and elevation limits in degrees, clip planes, eye,
//     target, damping, distance limits and input speeds
//   - aspect: initial width / height of the viewport
//
// Returns:
//   - camera.Camera: the camera, looking from cfg.Position at cfg.Target
func NewCamera(cfg config.CameraConfig, aspect float32) camera.Camera {
	eye := cfg.Position.Float32()
	target := cfg.Target.Float32()
	ctrl := camera.NewCameraController(
		camera.WithTarget(target[0], target[1], target[2]),
		camera.WithEyePosition(eye[0], eye[1], eye[2]),
		camera.WithDamping(float32(cfg.Damping)),
		camera.WithDistanceLimits(float32(cfg.MinDistance), float32(cfg.MaxDistance)),
		camera.WithElevationLimits(float32(cfg.MinElevation*math.Pi/180), float32(cfg.MaxElevation*math.Pi/180)),
		camera.WithSpeeds(camera.Speeds{
			Orbit: float32(cfg.OrbitSpeed),
			Zoom:  float32(cfg.ZoomSpeed),
			Pan:   float32(cfg.PanSpeed),
			Mouse: float32(cfg.MouseSensitivity),
		}),
	)
	return camera.NewCamera(
		camera.WithPerspective(float32(cfg.Fov), float32(cfg.Near), float32(cfg.Far)),
		camera.WithAspect(aspect),
		camera.WithController(ctrl),
	)
}

// Assets are the decoded files the diorama draws on. Both fields are optional.
type Assets struct {
	// Textures by name tint the materials they are attached to.
	Textures map[string]*asset.Texture
	// Rocket sizes the floating prop from the model's bounds.
	Rocket *asset.Model
}

// Build composes the diorama into a new scene.
//
// Graves and particles draw from rng in that order, so a fixed seed yields
// the same layout every time. A texture found in assets tints the material
// it is attached to; a missing one leaves the plain colour.
//
// Parameters:
//   - cfg: the scene configuration
//   - cam: the scene camera, must not be nil
//   - rng: the random source for graves and particles
//   - assets: loaded textures and models
//
// Returns:
//   - scene.Scene: the populated scene with every orbit bound
//   - error: a colour, placement or binding error
func Build(cfg config.Scene, cam camera.Camera, rng *rand.Rand, assets Assets) (scene.Scene, error) {
	b := &builder{textures: assets.Textures, decay: float32(cfg.LightDecay)}
	pal := cfg.Palette

	fogColor := b.color("fog.color", cfg.Fog.Color)
	s := scene.NewScene(common.Coalesce(cfg.Name, DefaultName), cam,
		scene.WithFog(scene.Fog{Color: fogColor, Near: float32(cfg.Fog.Near), Far: float32(cfg.Fog.Far)}),
		scene.WithClearColor(fogColor),
		scene.WithLights(
			light.NewLight(light.LightTypeAmbient,
				light.WithColor(b.color("palette.ambient", pal.Ambient)),
				light.WithIntensity(ambientIntensity),
			),
			light.NewLight(light.LightTypeDirectional,
				light.WithColor(b.color("palette.moon", pal.Moon)),
				light.WithIntensity(moonIntensity),
				light.WithDirectionFrom(4, 5, -2),
				light.WithCastsShadows(true),
			),
		),
	)

	b.house(s, pal)
	b.ground(s, pal)
	if b.err != nil {
		return nil, b.err
	}

	if err := b.graves(s, cfg.Graves, pal.Graves, rng); err != nil {
		return nil, err
	}
	if err := b.particles(s, cfg.Particles, pal.Particles, rng); err != nil {
		return nil, err
	}

	s.Add(b.rocket(cfg.Rocket, pal.Rocket, assets.Rocket))

	if err := b.markers(s, cfg.Markers, pal.Markers); err != nil {
		return nil, err
	}
	if err := b.ghosts(s, cfg.Ghosts); err != nil {
		return nil, err
	}
	if b.err != nil {
		return nil, b.err
	}
	return s, nil
}

// builder keeps the first colour error so the composition reads top to bottom.
type builder struct {
	textures map[string]*asset.Texture
	decay    float32 // point light falloff exponent
	err      error
}

func (b *builder) color(field, hex string) [3]float32 {
	c, err := common.ParseHexColor(hex)
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("%s: %w", field, err)
	}
	return c
}

// material returns the colour tinted by the named texture, plus the options
// that attach it.
func (b *builder) material(field, hex, texture string) []game_object.GameObjectBuilderOption {
	c := b.color(field, hex)
	opts := []game_object.GameObjectBuilderOption{}
	if tex, ok := b.textures[texture]; ok && tex != nil {
		for k := range c {
			c[k] *= tex.Tint[k]
		}
		opts = append(opts, game_object.WithTexture(texture))
	}
	return append(opts, game_object.WithColor(c))
}

func (b *builder) house(s scene.Scene, pal config.Palette) {
	walls := append([]game_object.GameObjectBuilderOption{
		game_object.WithName("walls"),
		game_object.WithGroup(GroupHouse),
		game_object.WithGeometry(game_object.KindBox, [3]float32{4, 2.5, 4}),
		game_object.WithPosition(0, 1.25, 0),
	}, b.material("palette.walls", pal.Walls, TextureWalls)...)
	s.Add(game_object.NewGameObject(walls...))

	s.Add(game_object.NewGameObject(
		game_object.WithName("roof"),
		game_object.WithGroup(GroupHouse),
		game_object.WithGeometry(game_object.KindCone, [3]float32{3.5, 1, 0}),
		game_object.WithColor(b.color("palette.roof", pal.Roof)),
		game_object.WithPosition(0, 3, 0),
		game_object.WithRotation(0, math.Pi/4, 0),
	))

	door := append([]game_object.GameObjectBuilderOption{
		game_object.WithName("door"),
		game_object.WithGroup(GroupHouse),
		game_object.WithGeometry(game_object.KindBox, [3]float32{2.2, 2.2, 0.02}),
		game_object.WithPosition(0, 1, 2.01),
	}, b.material("palette.door", pal.Door, TextureDoor)...)
	s.Add(game_object.NewGameObject(door...))

	s.AddLight(light.NewLight(light.LightTypePoint,
		light.WithColor(b.color("palette.door_light", pal.DoorLight)),
		light.WithIntensity(doorLightIntensity),
		light.WithRange(doorLightRange),
		light.WithDecay(b.decay),
		light.WithPosition(0, 2.2, 2.7),
		light.WithCastsShadows(true),
	))

	bushColor := b.color("palette.bushes", pal.Bushes)
	for _, bu := range bushes {
		s.Add(game_object.NewGameObject(
			game_object.WithName(bu.name),
			game_object.WithGroup(GroupHouse),
			game_object.WithGeometry(game_object.KindSphere, [3]float32{1, 0, 0}),
			game_object.WithColor(bushColor),
			game_object.WithScale(bu.scale, bu.scale, bu.scale),
			game_object.WithPosition(bu.position[0], bu.position[1], bu.position[2]),
		))
	}
}

func (b *builder) ground(s scene.Scene, pal config.Palette) {
	floor := append([]game_object.GameObjectBuilderOption{
		game_object.WithName("floor"),
		game_object.WithGroup(GroupGround),
		game_object.WithGeometry(game_object.KindPlane, [3]float32{20, 0, 20}),
	}, b.material("palette.floor", pal.Floor, TextureFloor)...)
	s.Add(game_object.NewGameObject(floor...))

	s.Add(game_object.NewGameObject(
		game_object.WithName("stone-path"),
		game_object.WithGroup(GroupGround),
		game_object.WithGeometry(game_object.KindPlane, [3]float32{2, 0, 2}),
		game_object.WithColor(b.color("palette.path", pal.Path)),
		game_object.WithScale(0.5, 1, 5),
		game_object.WithPosition(0, 0.001, 5),
	))
}

// rocket stands a box the size of the model's bounds at the configured
// position, offset so the model's centre lands where its origin would.
// Without a model a small cone takes its place.
func (b *builder) rocket(cfg config.RocketConfig, hex string, model *asset.Model) game_object.GameObject {
	pos := cfg.Position.Float32()
	opts := []game_object.GameObjectBuilderOption{
		game_object.WithName("rocket"),
		game_object.WithGroup(GroupProps),
		game_object.WithColor(b.color("palette.rocket", hex)),
	}
	if model == nil {
		return game_object.NewGameObject(append(opts,
			game_object.WithGeometry(game_object.KindCone, [3]float32{0.5, 2, 0}),
			game_object.WithPosition(pos[0], pos[1], pos[2]),
		)...)
	}
	scale := float32(cfg.Scale)
	c := model.Center()
	return game_object.NewGameObject(append(opts,
		game_object.WithGeometry(game_object.KindBox, model.Size()),
		game_object.WithScale(scale, scale, scale),
		game_object.WithPosition(pos[0]+c[0]*scale, pos[1]+c[1]*scale, pos[2]+c[2]*scale),
	)...)
}

func (b *builder) graves(s scene.Scene, cfg config.GravesConfig, hex string, rng *rand.Rand) error {
	transforms, err := placement.Generate(rng, cfg.Count, cfg.InnerRadius, cfg.RadiusSpread,
		placement.WithElevation(cfg.Elevation),
		placement.WithMaxTilt(cfg.MaxTilt),
	)
	if err != nil {
		return fmt.Errorf("place graves: %w", err)
	}
	c := b.color("palette.graves", hex)
	for i, tr := range transforms {
		s.Add(game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("grave-%d", i)),
			game_object.WithGroup(GroupGraves),
			game_object.WithGeometry(game_object.KindBox, [3]float32{0.5, 0.8, 0.2}),
			game_object.WithColor(c),
			game_object.WithPosition(tr.Position[0], tr.Position[1], tr.Position[2]),
			game_object.WithRotation(tr.Rotation[0], tr.Rotation[1], tr.Rotation[2]),
		))
	}
	return nil
}

func (b *builder) particles(s scene.Scene, cfg config.ParticlesConfig, hex string, rng *rand.Rand) error {
	points, err := placement.Scatter(rng, cfg.Count, cfg.Extent)
	if err != nil {
		return fmt.Errorf("scatter particles: %w", err)
	}
	id := s.Add(game_object.NewGameObject(
		game_object.WithName("particles"),
		game_object.WithGroup(GroupParticles),
		game_object.WithPoints(points),
		game_object.WithGeometry(game_object.KindPoints, [3]float32{float32(cfg.Size), 0, 0}),
		game_object.WithColor(b.color("palette.particles", hex)),
	))
	if err := s.BindSpin(id, orbit.Spin{Rate: [3]float64{0, cfg.Spin, 0}}); err != nil {
		return fmt.Errorf("spin particles: %w", err)
	}
	return nil
}

func (b *builder) markers(s scene.Scene, cfg config.MarkersConfig, hex string) error {
	c := b.color("palette.markers", hex)
	size := float32(cfg.Size)
	for i, params := range orbit.Ring(cfg.Center.Array(), cfg.Radius, cfg.AngularVelocity, cfg.Count) {
		x, y, z := orbit.Position(0, params)
		id := s.Add(game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("marker-%d", i)),
			game_object.WithGroup(GroupMarkers),
			game_object.WithGeometry(game_object.KindSphere, [3]float32{size, 0, 0}),
			game_object.WithColor(c),
			game_object.WithPosition(float32(x), float32(y), float32(z)),
		))
		if err := s.Bind(id, params); err != nil {
			return fmt.Errorf("bind marker %d: %w", i, err)
		}
	}
	return nil
}

// GhostParams converts a ghost's configuration into its trajectory.
func GhostParams(g config.GhostConfig) orbit.Params {
	bob := make([]orbit.Wave, len(g.Bob))
	for i, w := range g.Bob {
		bob[i] = orbitWave(w)
	}
	return orbit.Ghost(g.Radius, g.AngularVelocity, bob...).WithWobble(orbitWave(g.WobbleX), orbitWave(g.WobbleZ))
}

func orbitWave(w config.Wave) orbit.Wave {
	return orbit.Wave{Amplitude: w.Amplitude, Frequency: w.Frequency, Phase: w.Phase}
}

func (b *builder) ghosts(s scene.Scene, ghosts []config.GhostConfig) error {
	for i, g := range ghosts {
		params := GhostParams(g)
		x, y, z := orbit.Position(0, params)
		l := light.NewLight(light.LightTypePoint,
			light.WithColor(b.color(fmt.Sprintf("ghosts[%d].color", i), g.Color)),
			light.WithIntensity(float32(g.Intensity)),
			light.WithRange(float32(g.Range)),
			light.WithDecay(b.decay),
			light.WithCastsShadows(true),
		)
		id := s.Add(game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("ghost-%d", i+1)),
			game_object.WithGroup(GroupGhosts),
			game_object.WithGeometry(game_object.KindMarker, [3]float32{}),
			game_object.WithPosition(float32(x), float32(y), float32(z)),
			game_object.WithLight(l),
		))
		if err := s.Bind(id, params); err != nil {
			return fmt.Errorf("bind ghost %d: %w", i+1, err)
		}
	}
	return nil
}
