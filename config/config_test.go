package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Scene.Ghosts) != 3 {
		t.Errorf("expected three ghosts, got %d", len(cfg.Scene.Ghosts))
	}
	if cfg.Scene.Graves.Count != 50 || cfg.Scene.Graves.InnerRadius != 3 || cfg.Scene.Graves.RadiusSpread != 6 {
		t.Errorf("unexpected graveyard defaults %+v", cfg.Scene.Graves)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
renderer:
  backend: terminal
  present_mode: Uncapped
scene:
  seed: 42
  graves:
    count: 10
  ghosts:
    - color: "#ffffff"
      intensity: 1
      range: 2
      radius: 3
      angular_velocity: 1
      bob:
        - {amplitude: 0.5, frequency: 2}
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Renderer.Backend != BackendTerminal {
		t.Errorf("expected terminal backend, got %q", cfg.Renderer.Backend)
	}
	if cfg.Renderer.PresentModeValue() != renderer.PresentModeUncapped {
		t.Errorf("expected uncapped present mode")
	}
	if cfg.Scene.Seed != 42 || cfg.Scene.Graves.Count != 10 {
		t.Errorf("overrides not applied: seed %d count %d", cfg.Scene.Seed, cfg.Scene.Graves.Count)
	}
	if cfg.Scene.Graves.InnerRadius != 3 {
		t.Errorf("unset key lost its default: %v", cfg.Scene.Graves.InnerRadius)
	}
	if len(cfg.Scene.Ghosts) != 1 || cfg.Scene.Ghosts[0].Bob[0].Frequency != 2 {
		t.Errorf("ghost list not replaced: %+v", cfg.Scene.Ghosts)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
		want    string
	}{
		{name: "unknown key", yaml: "scene:\n  gravez: {}\n", want: "gravez"},
		{name: "malformed yaml", yaml: "window: [", want: "parse config"},
		{name: "backend", yaml: "renderer: {backend: vulkan}\n", invalid: true, want: "renderer.backend"},
		{name: "present mode", yaml: "renderer: {present_mode: sometimes}\n", invalid: true, want: "present_mode"},
		{name: "msaa", yaml: "renderer: {msaa: 3}\n", invalid: true, want: "renderer.msaa"},
		{name: "window size", yaml: "window: {width: 0}\n", invalid: true, want: "window size"},
		{name: "fov", yaml: "camera: {fov: 180}\n", invalid: true, want: "camera.fov"},
		{name: "damping", yaml: "camera: {damping: 2}\n", invalid: true, want: "camera.damping"},
		{name: "zoom speed", yaml: "camera: {zoom_speed: 0}\n", invalid: true, want: "camera speeds"},
		{name: "negative light decay", yaml: "scene: {light_decay: -1}\n", invalid: true, want: "light_decay"},
		{name: "pan speed", yaml: "camera: {pan_speed: -1}\n", invalid: true, want: "camera speeds"},
		{name: "distance range", yaml: "camera: {min_distance: 10, max_distance: 5}\n", invalid: true, want: "camera min/max distance"},
		{name: "elevation past vertical", yaml: "camera: {max_elevation: 95}\n", invalid: true, want: "camera min/max elevation"},
		{name: "palette colour", yaml: "scene: {palette: {roof: brown}}\n", invalid: true, want: "palette.roof"},
		{name: "fog range", yaml: "scene: {fog: {near: 10, far: 5}}\n", invalid: true, want: "fog near/far"},
		{name: "negative grave count", yaml: "scene: {graves: {count: -1}}\n", invalid: true, want: "graves.count"},
		{name: "zero inner radius", yaml: "scene: {graves: {inner_radius: 0}}\n", invalid: true, want: "graves.inner_radius"},
		{name: "zero spread", yaml: "scene: {graves: {radius_spread: 0}}\n", invalid: true, want: "graves.radius_spread"},
		{name: "ghost colour", yaml: "scene: {ghosts: [{color: nope}]}\n", invalid: true, want: "ghosts[0].color"},
		{name: "particle extent", yaml: "scene: {particles: {extent: 0}}\n", invalid: true, want: "particles.extent"},
		{name: "rocket scale", yaml: "scene: {rocket: {scale: -1}}\n", invalid: true, want: "rocket.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (%v)", got, tt.invalid, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %v", tt.want, err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Scene.Graves.Count = -5
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, want := range []string{"window size", "graves.count"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "haunted.yaml")
	want := DefaultConfig()
	want.Scene.Seed = 7
	want.Scene.Textures["door"] = "textures/door/color.jpg"

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
