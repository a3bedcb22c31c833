// package engine is the orchestrator of the jelly deformation pipeline. It is
// passive: the host delivers drag events through Dispatch and calls
// FrameUpdate once per surface per frame; the engine owns no loop, spawns no
// goroutines, and blocks on nothing. FrameUpdate hands back everything a
// render collaborator needs for the draw (the cached grid mesh, the frame's
// shader uniforms, and a first-build flag requesting GPU resource creation).
package engine

import (
	"fmt"
	"time"

	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/profiler"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
)

// FrameInput is the host's per-surface frame sample: where the surface is,
// how big it is, which texture backs it, and the frame time.
type FrameInput struct {
	// Surface identifies the surface being updated.
	Surface surface.ID
	// Size is the surface extent in pixels.
	Size common.Vec2
	// Position is the surface position in pixels (any consistent space).
	Position common.Vec2
	// Texture is the opaque texture handle carried through to the uniforms.
	Texture any
	// Now is the frame time in seconds (monotonic).
	Now float64
}

// FrameOutput is everything the render collaborator needs to draw the
// surface this frame.
type FrameOutput struct {
	// Mesh is the surface's cached deformation grid.
	Mesh *mesh.Mesh
	// Uniforms is the frame's shader parameter set.
	Uniforms wave.Uniforms
	// FirstBuild is true exactly on the frame the mesh was generated,
	// signaling the collaborator to create GPU resources for the surface.
	FirstBuild bool
}

// engine implements the Engine interface.
type engine struct {
	// mu serializes Dispatch and FrameUpdate for multi-threaded hosts; under a
	// single-threaded host it is uncontended.
	mu sync.Mutex

	registry *surface.Registry

	params   wave.Params
	gridCols int32
	gridRows int32

	// maxBoost caps the in-shader velocity boost when > 0; 0 leaves the
	// contract formula unclamped.
	maxBoost float32

	// settleFPS > 0 enables spring smoothing of the uniform velocity.
	settleFPS float64
	springs   map[surface.ID]*settleSpring

	profiler         *profiler.Profiler
	profilingEnabled bool

	computePool    worker.DynamicWorkerPool
	computeWorkers int
	computeQueue   int
}

// Engine drives per-surface deformation state from host events and produces
// per-frame draw descriptions. All methods are safe for concurrent use.
type Engine interface {
	// Dispatch applies one host event to the surface it names. Events for
	// unknown surfaces create the surface entry (except SurfaceDestroyed,
	// which is a no-op for unknown surfaces).
	//
	// Parameters:
	//   - ev: the event to apply
	//   - now: the event time in seconds (monotonic)
	Dispatch(ev Event, now float64)

	// FrameUpdate advances one surface by one frame: lazily generates the
	// grid mesh, folds the position sample into the velocity estimate, and
	// assembles the frame's uniforms. Dragging and idle surfaces take the
	// identical path; the wave settles through velocity decay, not special
	// casing.
	//
	// Parameters:
	//   - in: the frame sample for one surface
	//
	// Returns:
	//   - FrameOutput: mesh, uniforms, and the first-build flag
	//   - error: mesh generation failure (wraps mesh.ErrInvalidDimension);
	//     the caller should skip drawing this surface this frame
	FrameUpdate(in FrameInput) (FrameOutput, error)

	// Surface retrieves the state for a surface the engine has seen.
	//
	// Parameters:
	//   - id: the surface handle
	//
	// Returns:
	//   - *surface.State: the state entry, or nil if the surface is unknown
	Surface(id surface.ID) *surface.State

	// Registry returns the live surface registry for host introspection.
	//
	// Returns:
	//   - *surface.Registry: the registry
	Registry() *surface.Registry

	// ComputePool returns the worker pool configured via WithComputePool, for
	// hosts that evaluate the displacement on the CPU (wave.DisplaceMesh).
	//
	// Returns:
	//   - worker.DynamicWorkerPool: the pool, or nil if not configured
	ComputePool() worker.DynamicWorkerPool

	// Shutdown releases every surface's render resource and empties the
	// registry. Resources are released synchronously before Shutdown returns.
	Shutdown()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options. Defaults: stock
// wave parameters (6/0.02/0.02), 20x12 grid, no boost clamp, no settle
// smoothing, no compute pool, profiling off.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		params:   wave.DefaultParams(),
		gridCols: surface.DefaultGridCols,
		gridRows: surface.DefaultGridRows,
		springs:  make(map[surface.ID]*settleSpring),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	// The registry is created after options so WithGridSize shapes the
	// defaults handed to new surface entries.
	e.registry = surface.NewRegistry(e.gridCols, e.gridRows)

	if e.computeWorkers > 0 {
		e.computePool = worker.NewDynamicWorkerPool(e.computeWorkers, e.computeQueue, 1*time.Second)
	}

	return e
}

func (e *engine) Dispatch(ev Event, now float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev := ev.(type) {
	case BeginDrag:
		st := e.registry.GetOrCreate(ev.Surface)
		st.Dragging = true
		// Fresh sample baseline; velocity and position survive so re-grabbing
		// a still-wobbling surface does not snap.
		st.LastTimestamp = now
	case UpdateDrag:
		st := e.registry.GetOrCreate(ev.Surface)
		if ev.Position != nil {
			surface.EstimateVelocity(st, *ev.Position, now)
		}
	case EndDrag:
		st := e.registry.GetOrCreate(ev.Surface)
		st.Dragging = false
	case SurfaceDestroyed:
		e.registry.Remove(ev.Surface)
		delete(e.springs, ev.Surface)
	}
}

func (e *engine) FrameUpdate(in FrameInput) (FrameOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	st := e.registry.GetOrCreate(in.Surface)

	firstBuild := false
	if st.Mesh == nil {
		m, err := mesh.Generate(st.GridCols, st.GridRows, in.Size.X, in.Size.Y)
		if err != nil {
			return FrameOutput{}, fmt.Errorf("surface %d: %w", in.Surface, err)
		}
		st.Mesh = m
		firstBuild = true
	}

	vel := surface.EstimateVelocity(st, in.Position, in.Now)

	// Optional post-processing of the uniform velocity. State.Velocity stays
	// raw; only what the shader sees is shaped here.
	if e.settleFPS > 0 {
		vel = e.settleVelocity(in.Surface, vel)
	}
	if e.maxBoost > 0 {
		vel = wave.ClampBoost(vel, e.maxBoost)
	}

	out := FrameOutput{
		Mesh: st.Mesh,
		Uniforms: wave.Uniforms{
			WinSize:   in.Size,
			Center:    common.Vec2{},
			Velocity:  vel,
			Time:      float32(in.Now),
			Amplitude: e.params.Amplitude,
			Frequency: e.params.Frequency,
			Damping:   e.params.Damping,
			Texture:   in.Texture,
		},
		FirstBuild: firstBuild,
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.RecordUpdate(in.Now, time.Since(start), firstBuild)
	}

	return out, nil
}

func (e *engine) Surface(id surface.ID) *surface.State {
	return e.registry.Get(id)
}

func (e *engine) Registry() *surface.Registry {
	return e.registry
}

func (e *engine) ComputePool() worker.DynamicWorkerPool {
	return e.computePool
}

func (e *engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.registry.Clear()
	e.springs = make(map[surface.ID]*settleSpring)
}
