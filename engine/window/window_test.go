package window

import (
	"context"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/frame"
)

// A window whose platform side was never created behaves like a closed one.
func TestUninitialisedWindow(t *testing.T) {
	w := &engineWindow{width: 640, height: 480}

	if w.IsRunning() {
		t.Errorf("expected an uninitialised window not to be running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Errorf("expected no surface descriptor")
	}
	if err := w.Close(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}

	var updates int
	w.SetUpdateCallback(func() { updates++ })
	if err := w.NextFrame(context.Background()); !errors.Is(err, frame.ErrHostClosed) {
		t.Errorf("expected ErrHostClosed, got %v", err)
	}
	if updates != 0 {
		t.Errorf("update callback ran for a closed window")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.NextFrame(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWindowOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   WindowBuilderOption
		wantW int
		wantH int
		title string
	}{
		{name: "size", opt: WithSize(800, 600), wantW: 800, wantH: 600, title: "Haunted House"},
		{name: "non-positive size keeps defaults", opt: WithSize(0, -1), wantW: 1280, wantH: 720, title: "Haunted House"},
		{name: "title", opt: WithTitle("graveyard"), wantW: 1280, wantH: 720, title: "graveyard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &engineWindow{title: "Haunted House", width: 1280, height: 720}
			tt.opt(w)
			if w.width != tt.wantW || w.height != tt.wantH || w.title != tt.title {
				t.Errorf("got %dx%d %q", w.width, w.height, w.title)
			}
		})
	}
}

func TestWithSizeLimits(t *testing.T) {
	w := &engineWindow{}
	WithSizeLimits(640, 480, 1920, 1080)(w)
	if w.minWidth != 640 || w.minHeight != 480 || w.maxWidth != 1920 || w.maxHeight != 1080 {
		t.Errorf("unexpected limits %d,%d..%d,%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}
