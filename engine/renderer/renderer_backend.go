package renderer

import (
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend. This is the default.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeGL selects the OpenGL 3.3 core rendering backend. Requires a window
	// created with GraphicsAPIOpenGL so a GL context exists to make current.
	BackendTypeGL
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the backend interface for the Renderer. Both the WGPU and the
// GL implementation satisfy it; the Renderer selects one at construction and
// delegates every call.
type RendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when the drawable
	// surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to at the start of each render pass.
	//
	// Parameters:
	//   - r, g, b, a: color components in the range [0, 1]
	SetClearColor(r, g, b, a float64)

	// InitSurfaceResources creates the GPU resources backing a deformable surface
	// (geometry buffers, texture, sampler, uniform storage) and attaches them to the
	// surface state so they follow the surface lifecycle.
	//
	// Parameters:
	//   - st: the surface state to attach the created resources to
	//   - m: the rest mesh whose vertex and index data is uploaded
	//   - tex: the pixel data and dimensions for the surface texture
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created
	InitSurfaceResources(st *surface.State, m *mesh.Mesh, tex common.TextureStagingData) error

	// BeginFrame prepares the backend for a new frame of surface draws.
	// Must be paired with EndFrame after all DrawSurface invocations.
	//
	// Returns:
	//   - error: an error if the frame could not be started
	BeginFrame() error

	// DrawSurface uploads the frame's wave uniforms for one surface and encodes its
	// indexed draw within the current frame. The deformation pipeline is compiled
	// lazily on the first draw; compile failures wrap ErrResourceCompile.
	//
	// Parameters:
	//   - st: the surface state holding the GPU resources created by InitSurfaceResources
	//   - u: the wave uniforms produced by the engine for this frame
	//
	// Returns:
	//   - error: an error if the surface has no resources or the pipeline failed to compile
	DrawSurface(st *surface.State, u wave.Uniforms) error

	// EndFrame finishes the current frame's command recording and submits it.
	// Must be called after BeginFrame and all DrawSurface invocations.
	EndFrame()

	// Present presents the finished frame to the display.
	// Must be called once per frame after EndFrame.
	Present()

	// Shutdown releases backend-owned GPU objects. Per-surface resources are
	// released through their surface state, not here.
	Shutdown()
}
