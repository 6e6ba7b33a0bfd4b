// Command hauntedhouse renders the haunted-house diorama in a native window
// through WebGPU, or in the terminal through tcell.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/haunted-house/config"
	"github.com/Carmen-Shannon/haunted-house/diorama"
	"github.com/Carmen-Shannon/haunted-house/engine"
	"github.com/Carmen-Shannon/haunted-house/engine/asset"
	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/terminal"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/window"
	"github.com/gdamore/tcell/v2"
)

// glfw and the WebGPU surface must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

type flags struct {
	config  string
	backend string
	frames  uint64
	seed    int64
	verbose bool
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "path to a YAML config file (defaults are used when empty)")
	flag.StringVar(&f.backend, "backend", "", "renderer backend: wgpu or terminal (overrides the config)")
	flag.Uint64Var(&f.frames, "frames", 0, "stop after this many frames (overrides the config when > 0)")
	flag.Int64Var(&f.seed, "seed", 0, "graveyard seed (overrides the config when non-zero)")
	flag.BoolVar(&f.verbose, "verbose", false, "log every loaded asset and engine state change")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[Main] %v", err)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if f.verbose {
		log.Printf("[Main] graveyard seed %d", seed)
	}

	assets := loadAssets(ctx, cfg, f)

	switch cfg.Renderer.Backend {
	case config.BackendTerminal:
		return runTerminal(ctx, cfg, seed, assets, f.verbose)
	default:
		return runWindow(ctx, cfg, seed, assets, f.verbose)
	}
}

func loadConfig(f flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.LoadConfig(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.backend != "" {
		cfg.Renderer.Backend = f.backend
	}
	if f.frames > 0 {
		cfg.Engine.MaxFrames = f.frames
	}
	if f.seed != 0 {
		cfg.Scene.Seed = f.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAssets decodes the configured textures and rocket model. Relative paths
// resolve against the config file's directory; failures only cost the tint
// or the model's proportions.
func loadAssets(ctx context.Context, cfg *config.Config, f flags) diorama.Assets {
	base := "."
	if f.config != "" {
		base = filepath.Dir(f.config)
	}
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	var assets diorama.Assets
	if len(cfg.Scene.Textures) > 0 {
		paths := make(map[string]string, len(cfg.Scene.Textures))
		for name, p := range cfg.Scene.Textures {
			paths[name] = resolve(p)
		}
		textures, errs := asset.NewCatalog(asset.WithVerbose(f.verbose)).Load(ctx, paths)
		if len(errs) > 0 {
			log.Printf("[Main] %d of %d textures failed to load, using plain colours", len(errs), len(paths))
		}
		assets.Textures = textures
	}
	if cfg.Scene.Rocket.Model != "" {
		model, err := asset.LoadModel("rocket", resolve(cfg.Scene.Rocket.Model))
		if err != nil {
			log.Printf("[Main] %v, using a placeholder", err)
		} else {
			assets.Rocket = model
		}
	}
	return assets
}

func engineOptions(cfg *config.Config, verbose bool) []engine.EngineBuilderOption {
	opts := []engine.EngineBuilderOption{
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithMaxFrames(cfg.Engine.MaxFrames),
		engine.WithVerbose(verbose),
	}
	if cfg.Engine.FixedStep > 0 {
		opts = append(opts, engine.WithClock(clock.NewFixedStepClock(cfg.Engine.FixedStep)))
	}
	return opts
}

func buildScene(cfg *config.Config, aspect float32, seed int64, assets diorama.Assets) (scene.Scene, error) {
	cam := diorama.NewCamera(cfg.Camera, aspect)
	s, err := diorama.Build(cfg.Scene, cam, rand.New(rand.NewSource(seed)), assets)
	if err != nil {
		return nil, fmt.Errorf("build diorama: %w", err)
	}
	return s, nil
}

func runWindow(ctx context.Context, cfg *config.Config, seed int64, assets diorama.Assets, verbose bool) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(cfg.Renderer.PresentModeValue()),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithSoftwareAdapter(cfg.Renderer.Software),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	s, err := buildScene(cfg, float32(win.Width())/float32(win.Height()), seed, assets)
	if err != nil {
		return err
	}
	window.BindControls(win, s.Camera().Controller())

	eng := engine.NewEngine(s, r, append(engineOptions(cfg, verbose),
		engine.WithWindow(win),
		engine.WithFrameSource(win),
	)...)
	return eng.Run(ctx)
}

func runTerminal(ctx context.Context, cfg *config.Config, seed int64, assets diorama.Assets, verbose bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	term, err := terminal.NewTerminal(screen,
		terminal.WithFrameRate(cfg.Renderer.FrameRate),
		terminal.WithVerbose(verbose),
	)
	if err != nil {
		return err
	}
	defer term.Release()

	s, err := buildScene(cfg, float32(term.Width())/float32(term.Height()), seed, assets)
	if err != nil {
		return err
	}
	term.SetController(s.Camera().Controller())

	eng := engine.NewEngine(s, term, append(engineOptions(cfg, verbose),
		engine.WithWindow(term),
		engine.WithFrameSource(term),
	)...)
	return eng.Run(ctx)
}
