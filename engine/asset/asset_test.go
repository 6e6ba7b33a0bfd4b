package asset

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePNG writes a w×h image split into a left half of a and a right half of b.
func writePNG(t *testing.T, dir, name string, w, h int, a, b color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	white := color.RGBA{255, 255, 255, 255}

	paths := map[string]string{
		"door":    writePNG(t, dir, "door.png", 4, 2, red, blue),
		"bricks":  writePNG(t, dir, "bricks.png", 8, 8, white, white),
		"missing": filepath.Join(dir, "nope.png"),
	}
	notImage := filepath.Join(dir, "grass.png")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	paths["grass"] = notImage

	cat := NewCatalog(WithWorkers(2))
	got, errs := cat.Load(context.Background(), paths)

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	// Errors come back ordered by texture name.
	if !strings.Contains(errs[0].Error(), `"grass"`) || !strings.Contains(errs[1].Error(), `"missing"`) {
		t.Errorf("unexpected error order: %v", errs)
	}
	if !errors.Is(errs[1], os.ErrNotExist) {
		t.Errorf("expected the missing file to wrap os.ErrNotExist, got %v", errs[1])
	}

	tests := []struct {
		name     string
		w, h     int
		wantTint [3]float32
	}{
		{name: "door", w: 4, h: 2, wantTint: [3]float32{0.5, 0, 0.5}},
		{name: "bricks", w: 8, h: 8, wantTint: [3]float32{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := got[tt.name]
			if tex == nil {
				t.Fatalf("texture not loaded")
			}
			if tex.Width != tt.w || tex.Height != tt.h {
				t.Errorf("expected %dx%d, got %dx%d", tt.w, tt.h, tex.Width, tex.Height)
			}
			for k := range tt.wantTint {
				if !near(tex.Tint[k], tt.wantTint[k]) {
					t.Errorf("expected tint %v, got %v", tt.wantTint, tex.Tint)
					break
				}
			}
			if cat.Get(tt.name) != tex {
				t.Errorf("Get did not return the loaded texture")
			}
		})
	}

	if cat.Get("missing") != nil || cat.Get("grass") != nil {
		t.Errorf("failed textures should not be remembered")
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := t.TempDir()
	gray := color.RGBA{128, 128, 128, 255}
	paths := map[string]string{"a": writePNG(t, dir, "a.png", 2, 2, gray, gray)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, errs := NewCatalog().Load(ctx, paths)
	if len(got) != 0 {
		t.Errorf("expected nothing to load, got %v", got)
	}
	if len(errs) != 1 || !errors.Is(errs[0], context.Canceled) {
		t.Errorf("expected one context.Canceled error, got %v", errs)
	}
}

func TestLoadEmpty(t *testing.T) {
	got, errs := NewCatalog().Load(context.Background(), nil)
	if len(got) != 0 || len(errs) != 0 {
		t.Errorf("expected empty results, got %v %v", got, errs)
	}
}

func TestAverageColor(t *testing.T) {
	if _, err := averageColor(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
	c, err := averageColor([]byte{255, 0, 0, 255, 0, 255, 0, 255})
	if err != nil {
		t.Fatalf("averageColor: %v", err)
	}
	if !near(c[0], 0.5) || !near(c[1], 0.5) || !near(c[2], 0) {
		t.Errorf("expected (0.5, 0.5, 0), got %v", c)
	}
}
