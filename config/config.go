// Package config holds the YAML configuration for the diorama: window,
// renderer, loop and camera settings plus every tunable of the scene itself.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"gopkg.in/yaml.v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backend names accepted by Renderer.Backend.
const (
	BackendWGPU     = "wgpu"
	BackendTerminal = "terminal"
)

// Config represents the main configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Engine   EngineConfig   `yaml:"engine"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    Scene          `yaml:"scene"`
}

// WindowConfig sizes the native window used by the wgpu backend.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig selects and tunes the presentation backend.
type RendererConfig struct {
	Backend     string  `yaml:"backend"`      // wgpu, terminal
	PresentMode string  `yaml:"present_mode"` // vsync, uncapped
	MSAA        uint32  `yaml:"msaa"`
	Software    bool    `yaml:"software"`
	FrameRate   float64 `yaml:"frame_rate"` // terminal pacing
}

// EngineConfig tunes the frame loop.
type EngineConfig struct {
	Profiling bool `yaml:"profiling"`
	// MaxFrames stops the loop after that many frames; 0 runs until closed.
	MaxFrames uint64 `yaml:"max_frames"`
	// FixedStep, when positive, advances time by this many seconds per frame
	// instead of reading the wall clock.
	FixedStep float64 `yaml:"fixed_step"`
}

// CameraConfig places the orbit camera.
type CameraConfig struct {
	Fov      float64 `yaml:"fov"` // degrees
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Damping  float64 `yaml:"damping"`

	OrbitSpeed       float64 `yaml:"orbit_speed"`       // radians per arrow key press
	ZoomSpeed        float64 `yaml:"zoom_speed"`        // radius change per scroll step
	PanSpeed         float64 `yaml:"pan_speed"`         // multiplier on pan input
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per dragged pixel

	MinDistance  float64 `yaml:"min_distance"`
	MaxDistance  float64 `yaml:"max_distance"`
	MinElevation float64 `yaml:"min_elevation"` // degrees above the target's horizon
	MaxElevation float64 `yaml:"max_elevation"` // degrees, below 90 keeps the view upright
}

// Scene configures the diorama composition.
type Scene struct {
	Name      string            `yaml:"name"`
	Seed      int64             `yaml:"seed"` // 0 picks a time-based seed
	Palette   Palette           `yaml:"palette"`
	Fog       FogConfig         `yaml:"fog"`
	Graves    GravesConfig      `yaml:"graves"`
	Markers   MarkersConfig     `yaml:"markers"`
	Ghosts    []GhostConfig     `yaml:"ghosts"`
	Particles ParticlesConfig   `yaml:"particles"`
	Rocket    RocketConfig      `yaml:"rocket"`
	Textures  map[string]string `yaml:"textures"` // texture name to file path

	// LightDecay is the falloff exponent of the door and ghost lights.
	LightDecay float64 `yaml:"light_decay"`
}

// Palette holds the material and light colours as hex strings.
type Palette struct {
	Walls     string `yaml:"walls"`
	Roof      string `yaml:"roof"`
	Door      string `yaml:"door"`
	Bushes    string `yaml:"bushes"`
	Graves    string `yaml:"graves"`
	Path      string `yaml:"path"`
	Floor     string `yaml:"floor"`
	Particles string `yaml:"particles"`
	Markers   string `yaml:"markers"`
	Rocket    string `yaml:"rocket"`
	Ambient   string `yaml:"ambient"`
	Moon      string `yaml:"moon"`
	DoorLight string `yaml:"door_light"`
}

// FogConfig is linear fog; the clear colour matches Color.
type FogConfig struct {
	Color string  `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

// GravesConfig drives the annulus placement of the graveyard.
type GravesConfig struct {
	Count        int     `yaml:"count"`
	InnerRadius  float64 `yaml:"inner_radius"`
	RadiusSpread float64 `yaml:"radius_spread"`
	Elevation    float64 `yaml:"elevation"`
	MaxTilt      float64 `yaml:"max_tilt"`
}

// MarkersConfig is a ring of evenly phased spheres.
type MarkersConfig struct {
	Count           int     `yaml:"count"`
	Center          Vec3    `yaml:"center"`
	Radius          float64 `yaml:"radius"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	Size            float64 `yaml:"size"`
}

// GhostConfig is one orbiting point light.
type GhostConfig struct {
	Color           string  `yaml:"color"`
	Intensity       float64 `yaml:"intensity"`
	Range           float64 `yaml:"range"`
	Radius          float64 `yaml:"radius"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	WobbleX         Wave    `yaml:"wobble_x"`
	WobbleZ         Wave    `yaml:"wobble_z"`
	Bob             []Wave  `yaml:"bob"`
}

// Wave is amplitude·sin(frequency·t + phase).
type Wave struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
}

// ParticlesConfig is the slowly spinning dust field.
type ParticlesConfig struct {
	Count  int     `yaml:"count"`
	Extent float64 `yaml:"extent"`
	Size   float64 `yaml:"size"`
	Spin   float64 `yaml:"spin"` // rad/s about Y
}

// RocketConfig places the prop floating above the graveyard. Without a model
// a small cone stands in for it and Scale is not applied.
type RocketConfig struct {
	Model    string  `yaml:"model"` // .gltf or .glb path, optional
	Position Vec3    `yaml:"position"`
	Scale    float64 `yaml:"scale"`
}

// Vec3 is a point written as {x: 1, y: 2, z: 3}.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Array returns v as an array.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Float32 returns v as a float32 array.
func (v Vec3) Float32() [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// DefaultConfig returns the stock haunted-house settings.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Haunted House",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			Backend:     BackendWGPU,
			PresentMode: "vsync",
			MSAA:        uint32(renderer.MSAA4x),
			FrameRate:   30,
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      100,
			Position: Vec3{4, 2, 5},
			Damping:  0.05,

			OrbitSpeed:       0.05,
			ZoomSpeed:        0.5,
			PanSpeed:         0.1,
			MouseSensitivity: 0.005,

			MinDistance:  2,
			MaxDistance:  40,
			MinElevation: 3,
			MaxElevation: 84,
		},
		Scene: Scene{
			Name: "haunted-house",
			Palette: Palette{
				Walls:     "#ac8e82",
				Roof:      "#b35f45",
				Door:      "#aa7b7b",
				Bushes:    "#89c854",
				Graves:    "#b2b6b1",
				Path:      "#8c8c88",
				Floor:     "#a9c388",
				Particles: "#ffffff",
				Markers:   "#ff0000",
				Rocket:    "#c0c0c8",
				Ambient:   "#b9d5ff",
				Moon:      "#b9d5ff",
				DoorLight: "#ff7d46",
			},
			Fog: FogConfig{Color: "#262837", Near: 1, Far: 15},
			Graves: GravesConfig{
				Count:        50,
				InnerRadius:  3,
				RadiusSpread: 6,
				Elevation:    0.3,
				MaxTilt:      0.2,
			},
			Markers: MarkersConfig{
				Count:           3,
				Center:          Vec3{4, 2.2, 4},
				Radius:          1,
				AngularVelocity: 0.5,
				Size:            0.2,
			},
			Ghosts: []GhostConfig{
				{
					Color: "#ff00ff", Intensity: 2, Range: 3,
					Radius: 4, AngularVelocity: 0.5,
					Bob: []Wave{{Amplitude: 1, Frequency: 3}},
				},
				{
					Color: "#00ffff", Intensity: 2, Range: 3,
					Radius: 5, AngularVelocity: -0.32,
					Bob: []Wave{{Amplitude: 1, Frequency: 4}, {Amplitude: 1, Frequency: 2.5}},
				},
				{
					Color: "#ffff00", Intensity: 2, Range: 3,
					Radius: 7, AngularVelocity: -0.18,
					WobbleX: Wave{Amplitude: 1, Frequency: 0.32},
					WobbleZ: Wave{Amplitude: 1, Frequency: 0.5},
					Bob:     []Wave{{Amplitude: 1, Frequency: 4}, {Amplitude: 1, Frequency: 2.5}},
				},
			},
			Particles: ParticlesConfig{Count: 100, Extent: 17, Size: 0.09, Spin: 0.02},
			Rocket:    RocketConfig{Position: Vec3{10, 10, 10}, Scale: 0.01},
			Textures:  map[string]string{},

			LightDecay: 2,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - *Config: the merged configuration
//   - error: a read, parse or validation error
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// PresentModeValue returns the parsed present mode, VSync if it does not parse.
func (r RendererConfig) PresentModeValue() renderer.PresentMode {
	mode, _ := renderer.ParsePresentMode(r.PresentMode)
	return mode
}

// Validate reports every invalid field, joined, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	color := func(field, value string) {
		if _, err := common.ParseHexColor(value); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, field, err))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)

	check(c.Renderer.Backend == BackendWGPU || c.Renderer.Backend == BackendTerminal,
		"renderer.backend %q (want %s or %s)", c.Renderer.Backend, BackendWGPU, BackendTerminal)
	if _, err := renderer.ParsePresentMode(c.Renderer.PresentMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: renderer.present_mode: %v", ErrInvalid, err))
	}
	check(renderer.MSAASampleCount(c.Renderer.MSAA).Valid(), "renderer.msaa %d (want 1, 4, 8 or 16)", c.Renderer.MSAA)
	check(c.Renderer.FrameRate > 0, "renderer.frame_rate %v", c.Renderer.FrameRate)

	check(finite(c.Engine.FixedStep) && c.Engine.FixedStep >= 0, "engine.fixed_step %v", c.Engine.FixedStep)

	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov %v", c.Camera.Fov)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	check(c.Camera.Damping >= 0 && c.Camera.Damping <= 1, "camera.damping %v", c.Camera.Damping)
	check(c.Camera.OrbitSpeed > 0 && c.Camera.ZoomSpeed > 0 && c.Camera.PanSpeed > 0 && c.Camera.MouseSensitivity > 0,
		"camera speeds %v/%v/%v/%v", c.Camera.OrbitSpeed, c.Camera.ZoomSpeed, c.Camera.PanSpeed, c.Camera.MouseSensitivity)
	check(c.Camera.MinDistance > 0 && c.Camera.MaxDistance >= c.Camera.MinDistance,
		"camera min/max distance %v/%v", c.Camera.MinDistance, c.Camera.MaxDistance)
	check(c.Camera.MinElevation > -90 && c.Camera.MaxElevation < 90 && c.Camera.MaxElevation >= c.Camera.MinElevation,
		"camera min/max elevation %v/%v", c.Camera.MinElevation, c.Camera.MaxElevation)

	s := &c.Scene
	p := &s.Palette
	for _, f := range []struct{ name, value string }{
		{"palette.walls", p.Walls}, {"palette.roof", p.Roof}, {"palette.door", p.Door},
		{"palette.bushes", p.Bushes}, {"palette.graves", p.Graves}, {"palette.path", p.Path},
		{"palette.floor", p.Floor}, {"palette.particles", p.Particles}, {"palette.markers", p.Markers},
		{"palette.rocket", p.Rocket}, {"palette.ambient", p.Ambient}, {"palette.moon", p.Moon},
		{"palette.door_light", p.DoorLight}, {"fog.color", s.Fog.Color},
	} {
		color(f.name, f.value)
	}

	check(s.Fog.Near >= 0 && s.Fog.Far > s.Fog.Near, "fog near/far %v/%v", s.Fog.Near, s.Fog.Far)

	g := s.Graves
	check(g.Count >= 0, "graves.count %d", g.Count)
	check(finite(g.InnerRadius) && g.InnerRadius > 0, "graves.inner_radius %v", g.InnerRadius)
	check(finite(g.RadiusSpread) && g.RadiusSpread > 0, "graves.radius_spread %v", g.RadiusSpread)
	check(finite(g.MaxTilt) && g.MaxTilt >= 0, "graves.max_tilt %v", g.MaxTilt)

	m := s.Markers
	check(m.Count >= 0, "markers.count %d", m.Count)
	check(finite(m.Radius) && finite(m.AngularVelocity), "markers radius/angular_velocity %v/%v", m.Radius, m.AngularVelocity)
	check(m.Size > 0, "markers.size %v", m.Size)

	for i, gh := range s.Ghosts {
		color(fmt.Sprintf("ghosts[%d].color", i), gh.Color)
		check(gh.Intensity >= 0 && gh.Range >= 0, "ghosts[%d] intensity/range %v/%v", i, gh.Intensity, gh.Range)
		check(finite(gh.Radius) && finite(gh.AngularVelocity), "ghosts[%d] radius/angular_velocity %v/%v", i, gh.Radius, gh.AngularVelocity)
	}

	check(s.Particles.Count >= 0, "particles.count %d", s.Particles.Count)
	check(s.Particles.Extent > 0, "particles.extent %v", s.Particles.Extent)

	check(finite(s.Rocket.Scale) && s.Rocket.Scale > 0, "rocket.scale %v", s.Rocket.Scale)
	check(finite(s.LightDecay) && s.LightDecay >= 0, "light_decay %v", s.LightDecay)

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
