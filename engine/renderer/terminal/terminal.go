// Package terminal renders the diorama into a character grid through tcell
// and feeds terminal keystrokes back to the camera controller.
package terminal

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/gdamore/tcell/v2"
)

// groundStep is the world-space spacing of the samples drawn for a ground plane.
const groundStep = 0.5

// Terminal is both a renderer and the frame source that drives it: it draws
// into a tcell screen and, between frames, dispatches keyboard and resize
// events.
//
// Viewport sizes reported to Resize and to the resize callback are in
// columns by half-rows, since a terminal cell is roughly twice as tall as it
// is wide. This keeps width/height a usable camera aspect ratio.
type Terminal interface {
	renderer.Renderer
	frame.Source

	// SetController sets the controller that receives keyboard input.
	SetController(ctrl camera.CameraController)

	// SetResizeCallback sets the function called when the terminal is resized.
	//
	// Parameters:
	//   - callback: function receiving the new viewport size in columns and half-rows
	SetResizeCallback(callback func(width, height int))

	// Width returns the viewport width in columns.
	Width() int

	// Height returns the viewport height in half-rows, excluding the status line.
	Height() int
}

type terminalImpl struct {
	mu *sync.Mutex

	screen   tcell.Screen
	events   chan tcell.Event
	quit     chan struct{}
	ticker   *time.Ticker
	frameHz  float64
	controls bool

	ctrl     camera.CameraController
	onResize func(width, height int)

	cols, rows int
	released   bool
	verbose    bool
}

var _ Terminal = &terminalImpl{}

// NewTerminal initialises the screen and starts pumping its events.
//
// Parameters:
//   - screen: the tcell screen to draw to, not yet initialised
//   - options: functional options to configure the terminal
//
// Returns:
//   - Terminal: the ready terminal
//   - error: an error if the screen could not be initialised
func NewTerminal(screen tcell.Screen, options ...TerminalBuilderOption) (Terminal, error) {
	if screen == nil {
		panic("terminal: nil screen")
	}

	t := &terminalImpl{
		mu:       &sync.Mutex{},
		screen:   screen,
		events:   make(chan tcell.Event, 64),
		quit:     make(chan struct{}),
		frameHz:  30,
		controls: true,
	}
	for _, opt := range options {
		opt(t)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.HideCursor()
	t.cols, t.rows = screen.Size()
	t.ticker = time.NewTicker(time.Duration(float64(time.Second) / t.frameHz))

	go screen.ChannelEvents(t.events, t.quit)
	return t, nil
}

func (t *terminalImpl) SetController(ctrl camera.CameraController) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl = ctrl
}

func (t *terminalImpl) SetResizeCallback(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = callback
}

func (t *terminalImpl) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

func (t *terminalImpl) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return max(t.rows-1, 1) * 2
}

func (t *terminalImpl) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || width <= 0 || height <= 0 {
		return
	}
	t.cols = width
	t.rows = (height+1)/2 + 1
}

func (t *terminalImpl) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	t.released = true
	t.ticker.Stop()
	close(t.quit)
	t.screen.Fini()
}

func (t *terminalImpl) NextFrame(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return frame.ErrHostClosed
			}
			if t.handleEvent(ev) {
				return frame.ErrHostClosed
			}
		case <-t.ticker.C:
			return nil
		}
	}
}

// handleEvent dispatches one terminal event and reports whether the user asked to quit.
func (t *terminalImpl) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := ev.Size()
		w, h := cols, max(rows-1, 1)*2

		t.mu.Lock()
		cb := t.onResize
		t.mu.Unlock()

		if cb != nil {
			cb(w, h)
		} else {
			t.Resize(w, h)
		}
		if t.verbose {
			log.Printf("[Terminal] resized to %dx%d cells", cols, rows)
		}
	}
	return false
}

func (t *terminalImpl) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	}
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
		return true
	}

	t.mu.Lock()
	ctrl, enabled := t.ctrl, t.controls
	t.mu.Unlock()
	if ctrl == nil || !enabled {
		return false
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		ctrl.OrbitLeft()
	case tcell.KeyRight:
		ctrl.OrbitRight()
	case tcell.KeyUp:
		ctrl.OrbitUp()
	case tcell.KeyDown:
		ctrl.OrbitDown()
	case tcell.KeyRune:
		switch ev.Rune() {
		case '+', '=':
			ctrl.Zoom(1)
		case '-', '_':
			ctrl.Zoom(-1)
		case 'w':
			ctrl.PanUp(1)
		case 's':
			ctrl.PanUp(-1)
		case 'a':
			ctrl.PanRight(-1)
		case 'd':
			ctrl.PanRight(1)
		}
	}
	return false
}

func (t *terminalImpl) RenderFrame(s scene.Scene, cam camera.Camera) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.released {
		return renderer.ErrReleased
	}

	list := renderer.BuildDrawList(s, cam)
	v := &viewport{
		viewProj: cam.ViewProjectionMatrix(),
		cols:     t.cols,
		rows:     max(t.rows-1, 1),
	}
	v.right, v.up = cam.Basis()

	cr, cg, cb := common.ColorToRGB8(s.ClearColor())
	bg := tcell.NewRGBColor(cr, cg, cb)
	t.screen.Fill(' ', tcell.StyleDefault.Background(bg))

	for _, d := range list {
		r, g, b := common.ColorToRGB8(d.Color)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b)).Background(bg)
		glyph := glyphFor(d.Kind)
		for _, cell := range v.cells(d) {
			t.screen.SetContent(cell[0], cell[1], glyph, nil, style)
		}
	}

	status := fmt.Sprintf(" %s  t=%6.2fs  %d drawn  arrows orbit  +/- zoom  q quit", s.Name(), s.Elapsed(), len(list))
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	col := 0
	for _, r := range status {
		if col >= t.cols {
			break
		}
		t.screen.SetContent(col, v.rows, r, nil, statusStyle)
		col++
	}
	for ; col < t.cols; col++ {
		t.screen.SetContent(col, v.rows, ' ', nil, statusStyle)
	}

	t.screen.Show()
	return nil
}

// glyphFor picks the character drawn for each cell an object covers.
func glyphFor(kind game_object.Kind) rune {
	switch kind {
	case game_object.KindBox:
		return '█'
	case game_object.KindCone:
		return '▲'
	case game_object.KindSphere:
		return '●'
	case game_object.KindPlane:
		return '·'
	case game_object.KindPoints:
		return '*'
	default:
		return '#'
	}
}

// viewport projects world-space drawables onto the character grid.
type viewport struct {
	viewProj  [16]float32
	right, up [3]float32
	cols      int
	rows      int
}

// project maps a world point to fractional cell coordinates.
// ok is false for points behind the eye.
func (v *viewport) project(p [3]float32) (x, y float64, ok bool) {
	clip := common.TransformPoint(v.viewProj[:], p[0], p[1], p[2])
	if clip[3] <= 1e-6 {
		return 0, 0, false
	}
	nx := float64(clip[0] / clip[3])
	ny := float64(clip[1] / clip[3])
	return (nx + 1) / 2 * float64(v.cols), (1 - ny) / 2 * float64(v.rows), true
}

// cells returns the grid cells a drawable covers, clipped to the viewport.
func (v *viewport) cells(d renderer.Drawable) [][2]int {
	if d.Ground() {
		return v.groundCells(d)
	}

	hx, hy := d.HalfExtents[0], d.HalfExtents[1]
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		var corner [3]float32
		for i := range corner {
			corner[i] = d.Position[i] + v.right[i]*s[0]*hx + v.up[i]*s[1]*hy
		}
		x, y, ok := v.project(corner)
		if !ok {
			return nil
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	x0, x1 := int(math.Floor(minX)), int(math.Ceil(maxX))
	y0, y1 := int(math.Floor(minY)), int(math.Ceil(maxY))
	// Anything visible covers at least one cell.
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, x1 = max(x0, 0), min(x1, v.cols)
	y0, y1 = max(y0, 0), min(y1, v.rows)

	var out [][2]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}

// groundCells samples a ground plane on a regular grid.
func (v *viewport) groundCells(d renderer.Drawable) [][2]int {
	seen := make(map[[2]int]struct{})
	var out [][2]int
	for dx := -d.HalfExtents[0]; dx <= d.HalfExtents[0]; dx += groundStep {
		for dz := -d.HalfExtents[1]; dz <= d.HalfExtents[1]; dz += groundStep {
			x, y, ok := v.project([3]float32{d.Position[0] + dx, d.Position[1], d.Position[2] + dz})
			if !ok || x < 0 || y < 0 || x >= float64(v.cols) || y >= float64(v.rows) {
				continue
			}
			c := [2]int{int(x), int(y)}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
