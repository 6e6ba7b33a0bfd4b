// Package asset decodes the diorama's texture files into lightweight handles.
package asset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/haunted-house/common"
)

// ErrEmptyImage is reported for images with no pixels.
var ErrEmptyImage = errors.New("asset: empty image")

// Texture is a decoded image reduced to what the renderers use: its size and
// average colour, which tints the material it is attached to.
type Texture struct {
	Name   string
	Path   string
	Width  int
	Height int
	Tint   [3]float32
}

// Catalog loads and remembers textures by name.
type Catalog interface {
	// Load decodes every file in paths concurrently. A failed file is
	// reported in the error slice and left out of the result; the others
	// still load.
	//
	// Parameters:
	//   - ctx: files not yet started when ctx ends are skipped with ctx.Err()
	//   - paths: texture name to file path
	//
	// Returns:
	//   - map[string]*Texture: the textures that loaded, by name
	//   - []error: one error per failed file, ordered by texture name
	Load(ctx context.Context, paths map[string]string) (map[string]*Texture, []error)

	// Get returns a previously loaded texture, or nil.
	Get(name string) *Texture
}

type catalog struct {
	mu       *sync.Mutex
	pool     worker.DynamicWorkerPool
	workers  int
	textures map[string]*Texture
	verbose  bool
}

var _ Catalog = &catalog{}

// NewCatalog creates an empty catalog backed by a worker pool sized to the
// machine.
//
// Parameters:
//   - options: functional options to configure the catalog
//
// Returns:
//   - Catalog: the empty catalog
func NewCatalog(options ...CatalogBuilderOption) Catalog {
	c := &catalog{
		mu:       &sync.Mutex{},
		workers:  max(runtime.NumCPU()-1, 1),
		textures: make(map[string]*Texture),
	}
	for _, opt := range options {
		opt(c)
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 64, time.Second)
	return c
}

func (c *catalog) Get(name string) *Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.textures[name]
}

func (c *catalog) Load(ctx context.Context, paths map[string]string) (map[string]*Texture, []error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	slices.Sort(names)

	loaded := make([]*Texture, len(names))
	failures := make([]error, len(names))

	// Each task writes only its own slot, so the barrier is the only sync needed.
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		path := paths[name]
		c.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					failures[i] = fmt.Errorf("load texture %q: %w", name, err)
					return nil, err
				}
				tex, err := decode(name, path)
				if err != nil {
					failures[i] = fmt.Errorf("load texture %q: %w", name, err)
					return nil, err
				}
				loaded[i] = tex
				return tex, nil
			},
		})
	}
	wg.Wait()

	out := make(map[string]*Texture, len(names))
	var errs []error

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, name := range names {
		if failures[i] != nil {
			log.Printf("[Asset] %v", failures[i])
			errs = append(errs, failures[i])
			continue
		}
		out[name] = loaded[i]
		c.textures[name] = loaded[i]
		if c.verbose {
			log.Printf("[Asset] loaded %q %dx%d from %s", name, loaded[i].Width, loaded[i].Height, loaded[i].Path)
		}
	}
	return out, errs
}

func decode(name, path string) (*Texture, error) {
	src := &common.TextureSource{Name: name, Path: path}
	pix, w, h, err := src.Decode()
	if err != nil {
		return nil, err
	}
	tint, err := averageColor(pix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Texture{Name: name, Path: path, Width: int(w), Height: int(h), Tint: tint}, nil
}

// averageColor returns the mean RGB of tightly packed RGBA pixels, in [0,1].
func averageColor(pix []byte) ([3]float32, error) {
	n := len(pix) / 4
	if n == 0 {
		return [3]float32{}, ErrEmptyImage
	}
	var sum [3]uint64
	for i := 0; i < n*4; i += 4 {
		sum[0] += uint64(pix[i])
		sum[1] += uint64(pix[i+1])
		sum[2] += uint64(pix[i+2])
	}
	var out [3]float32
	for k := range out {
		out[k] = float32(sum[k]) / float32(n) / 255
	}
	return out, nil
}
