package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
	"github.com/Carmen-Shannon/jelly-go/engine/window"
)

// ErrResourceCompile indicates a shader compile or pipeline link failure.
// Callers should treat it as non-fatal: log it and skip drawing the surface,
// which then renders without the deformation effect.
var ErrResourceCompile = errors.New("renderer: resource compile failed")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingClearColor    *[4]float64
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify drawing deformable surfaces into a
// streamlined and idiomatic flow. The Renderer owns the deformation pipeline, which is
// compiled lazily on the first draw, and manages per-surface GPU resources through the
// surface state. The Renderer also implements a backend which allows for multiple
// backend API implementations to exist.
type Renderer interface {
	// InitSurfaceResources creates the GPU resources backing a deformable surface and
	// attaches them to the surface state. Call this once per surface, when the frame
	// output reports the surface's first mesh build.
	//
	// Parameters:
	//   - st: the surface state to attach the created resources to
	//   - m: the rest mesh whose vertex and index data is uploaded
	//   - tex: the pixel data and dimensions for the surface texture
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created
	InitSurfaceResources(st *surface.State, m *mesh.Mesh, tex common.TextureStagingData) error

	// BeginFrame prepares a new frame. Must be paired with EndFrame after all
	// DrawSurface invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the frame could not be started
	BeginFrame() error

	// DrawSurface uploads the frame's wave uniforms for one surface and encodes its
	// draw within the current frame. Multiple DrawSurface invocations can be made
	// between BeginFrame and EndFrame. Pipeline compile failures wrap
	// ErrResourceCompile and are non-fatal; the caller logs and skips the surface.
	//
	// Parameters:
	//   - st: the surface state holding resources created by InitSurfaceResources
	//   - u: the wave uniforms produced by the engine for this frame
	//
	// Returns:
	//   - error: an error if the surface has no resources or the pipeline failed to compile
	DrawSurface(st *surface.State, u wave.Uniforms) error

	// EndFrame finishes the current frame's command recording and submits it.
	// Does not present — call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the finished frame to the display.
	// Must be called once per frame after EndFrame.
	Present()

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// On the WGPU backend a call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to at the start of each frame.
	//
	// Parameters:
	//   - r, g, b, a: color components in the range [0, 1]
	SetClearColor(r, g, b, a float64)

	// Shutdown releases backend-owned GPU objects (the compiled pipeline among them).
	// Per-surface resources are released through their surface state, not here.
	Shutdown()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing
// to the given window. The window must have been created with a graphics API matching
// the backend: GraphicsAPIWebGPU for BackendTypeWGPU, GraphicsAPIOpenGL for BackendTypeGL.
// Panics if win is nil.
//
// Parameters:
//   - backendType: the type of rendering backend to use (WGPU or GL)
//   - win: the window hosting the drawable surface
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	if win == nil {
		panic("renderer: nil window")
	}

	r := &renderer{
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeGL:
		r.backend = newGLRendererBackend(win)
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win, r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		c := *r.pendingClearColor
		r.backend.SetClearColor(c[0], c[1], c[2], c[3])
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())
	return r
}

func (r *renderer) InitSurfaceResources(st *surface.State, m *mesh.Mesh, tex common.TextureStagingData) error {
	return r.backend.InitSurfaceResources(st, m, tex)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawSurface(st *surface.State, u wave.Uniforms) error {
	return r.backend.DrawSurface(st, u)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.backend.SetClearColor(red, green, blue, alpha)
}

func (r *renderer) Shutdown() {
	r.backend.Shutdown()
}
