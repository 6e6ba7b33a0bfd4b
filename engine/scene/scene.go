package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/orbit"
)

var (
	// ErrUnknownEntity is returned when binding motion to an id the scene does not hold.
	ErrUnknownEntity = errors.New("scene: unknown entity")
	// ErrAlreadyBound is returned when an entity already has a binding of the same kind.
	ErrAlreadyBound = errors.New("scene: entity already bound")
)

// Fog fades geometry linearly towards Color between Near and Far from the eye.
type Fog struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// Factor returns the fog blend amount in [0, 1] at the given eye distance.
func (f Fog) Factor(distance float32) float32 {
	if f.Far <= f.Near {
		return 0
	}
	v := (distance - f.Near) / (f.Far - f.Near)
	return min(max(v, 0), 1)
}

// Scene is the registry of every entity in the diorama together with the
// motion bound to the animated ones.
//
// Positions of bound entities are written only by Animate. Bindings are
// immutable once made and entities are never removed.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Count returns the number of entities in the registry.
	//
	// Returns:
	//   - int: entity count
	Count() int

	// Add inserts an entity, assigning the next id if it has none, and
	// registers its attached light. Adding the same object twice is a no-op.
	// Panics on a nil object or when a different object already holds its id.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object's id
	Add(obj game_object.GameObject) uint64

	// Get retrieves an entity by id, or nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Objects returns every entity in id order.
	//
	// Returns:
	//   - []game_object.GameObject: the entities
	Objects() []game_object.GameObject

	// Bind attaches an orbit to an entity. The params are copied.
	//
	// Parameters:
	//   - id: the entity to move
	//   - params: its trajectory
	//
	// Returns:
	//   - error: ErrUnknownEntity, ErrAlreadyBound or a params validation error
	Bind(id uint64, params orbit.Params) error

	// BindSpin attaches a constant rotation to an entity.
	//
	// Parameters:
	//   - id: the entity to rotate
	//   - spin: its rotation rates
	//
	// Returns:
	//   - error: ErrUnknownEntity, ErrAlreadyBound or a spin validation error
	BindSpin(id uint64, spin orbit.Spin) error

	// Binding returns a copy of an entity's orbit, if it has one.
	Binding(id uint64) (orbit.Params, bool)

	// Bound returns the ids of entities with an orbit, in id order.
	Bound() []uint64

	// Animate moves every bound entity to its trajectory position at t,
	// rotates every spinning entity, then moves attached lights onto their
	// owners. It is the only writer of bound entities' transforms.
	//
	// Parameters:
	//   - t: elapsed seconds for this frame
	Animate(t float64)

	// Elapsed returns the t of the last Animate call.
	Elapsed() float64

	// AddLight adds a free-standing light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// Lights returns all lights, including those attached to entities.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Fog returns the scene's fog settings.
	Fog() Fog

	// SetFog replaces the scene's fog settings.
	SetFog(f Fog)

	// ClearColor returns the background colour.
	ClearColor() [3]float32

	// SetClearColor replaces the background colour.
	SetClearColor(c [3]float32)
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera

	registry map[uint64]game_object.GameObject
	order    []uint64
	nextID   uint64

	orbits map[uint64]orbit.Params
	spins  map[uint64]orbit.Spin

	lights       []light.Light
	lightObjects []game_object.GameObject

	fog        Fog
	clearColor [3]float32
	elapsed    float64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty Scene. The camera is required; NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		cam:      cam,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
		orbits:   make(map[uint64]orbit.Params),
		spins:    make(map[uint64]orbit.Spin),
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: cannot Add a nil GameObject")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj. Caller must hold the write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	id := obj.ID()
	if held, exists := s.registry[id]; exists {
		if held != obj {
			panic(fmt.Sprintf("scene: id %d already belongs to %q", id, held.Name()))
		}
		return id
	}
	s.nextID = max(s.nextID, id+1)
	s.registry[id] = obj
	s.order = append(s.order, id)
	slices.Sort(s.order)

	if l := obj.Light(); l != nil {
		s.lightObjects = append(s.lightObjects, obj)
		s.lights = append(s.lights, l)
		x, y, z := obj.Position()
		l.SetPosition(x, y, z)
	}
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Bind(id uint64, params orbit.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("bind entity %d: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return fmt.Errorf("bind entity %d: %w", id, ErrUnknownEntity)
	}
	if _, ok := s.orbits[id]; ok {
		return fmt.Errorf("bind entity %d: %w", id, ErrAlreadyBound)
	}
	s.orbits[id] = params.Clone()
	return nil
}

func (s *scene) BindSpin(id uint64, spin orbit.Spin) error {
	if err := spin.Validate(); err != nil {
		return fmt.Errorf("spin entity %d: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return fmt.Errorf("spin entity %d: %w", id, ErrUnknownEntity)
	}
	if _, ok := s.spins[id]; ok {
		return fmt.Errorf("spin entity %d: %w", id, ErrAlreadyBound)
	}
	s.spins[id] = spin
	return nil
}

func (s *scene) Binding(id uint64) (orbit.Params, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.orbits[id]
	if !ok {
		return orbit.Params{}, false
	}
	return p.Clone(), true
}

func (s *scene) Bound() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, 0, len(s.orbits))
	for _, id := range s.order {
		if _, ok := s.orbits[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *scene) Animate(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed = t
	for _, id := range s.order {
		obj := s.registry[id]
		if p, ok := s.orbits[id]; ok {
			x, y, z := orbit.Position(t, p)
			obj.SetPosition(float32(x), float32(y), float32(z))
		}
		if sp, ok := s.spins[id]; ok {
			r := orbit.Rotation(t, sp)
			obj.SetRotation(float32(r[0]), float32(r[1]), float32(r[2]))
		}
	}

	// Sync attached lights: copy each game object's world position to its light.
	for _, obj := range s.lightObjects {
		if l := obj.Light(); l != nil {
			x, y, z := obj.Position()
			l.SetPosition(x, y, z)
		}
	}
}

func (s *scene) Elapsed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(f Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = f
}

func (s *scene) ClearColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *scene) SetClearColor(c [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}
