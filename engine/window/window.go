package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsAPI selects which graphics API the window's context is created for.
type GraphicsAPI int

const (
	// GraphicsAPIWebGPU creates the window without an OpenGL context; the
	// renderer attaches a WebGPU surface via SurfaceDescriptor.
	GraphicsAPIWebGPU GraphicsAPI = iota
	// GraphicsAPIOpenGL creates the window with an OpenGL 3.3 core profile
	// context for the GL renderer backend.
	GraphicsAPIOpenGL
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each ProcessMessages iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetDragBeginCallback sets the callback fired when the left mouse button
	// is pressed, starting a drag gesture.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in pixels
	SetDragBeginCallback(callback func(x, y float64))

	// SetDragUpdateCallback sets the callback fired for cursor motion while
	// the left mouse button is held.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in pixels
	SetDragUpdateCallback(callback func(x, y float64))

	// SetDragEndCallback sets the callback fired when the left mouse button
	// is released, ending a drag gesture.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in pixels
	SetDragEndCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// MakeContextCurrent binds the window's OpenGL context to the calling
	// thread. Valid only for windows created with GraphicsAPIOpenGL.
	MakeContextCurrent()

	// SwapBuffers presents the back buffer. Valid only for windows created
	// with GraphicsAPIOpenGL.
	SwapBuffers()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages polls pending window events and invokes the update
	// callback. Call it once per frame:
	//
	//	for win.ProcessMessages() {
	//		// drive the frame
	//	}
	//
	// Returns:
	//   - bool: true while the window is still running
	ProcessMessages() bool

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Title returns the window title.
	//
	// Returns:
	//   - string: the title text
	Title() string
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// graphicsAPI selects the context type requested at creation.
	graphicsAPI GraphicsAPI

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each ProcessMessages iteration (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)

	// onDragBegin is called when the left mouse button is pressed.
	onDragBegin func(x, y float64)

	// onDragUpdate is called for cursor motion while the left button is held.
	onDragUpdate func(x, y float64)

	// onDragEnd is called when the left mouse button is released.
	onDragEnd func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window, already spawned
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:       "jelly-go",
		graphicsAPI: GraphicsAPIWebGPU,
		maxWidth:    1600,
		maxHeight:   1200,
		minWidth:    600,
		minHeight:   200,
		width:       1280,
		height:      720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetDragBeginCallback(callback func(x, y float64)) {
	w.onDragBegin = callback
}

func (w *engineWindow) SetDragUpdateCallback(callback func(x, y float64)) {
	w.onDragUpdate = callback
}

func (w *engineWindow) SetDragEndCallback(callback func(x, y float64)) {
	w.onDragEnd = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) MakeContextCurrent() {
	platformMakeContextCurrent(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() bool {
	if !platformProcessMessages(w) {
		return false
	}

	if w.onUpdate != nil {
		w.onUpdate()
	}

	runtime.Gosched()
	return true
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Title() string {
	return w.title
}
