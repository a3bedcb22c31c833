package renderer

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
	"github.com/Carmen-Shannon/jelly-go/engine/window"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glSurfaceResources holds the GL objects backing a single deformable surface.
// It implements surface.RenderResource; Release must run on the thread that
// owns the GL context.
type glSurfaceResources struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	texture    uint32
	indexCount int32
}

var _ surface.RenderResource = &glSurfaceResources{}

func (r *glSurfaceResources) Release() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.indexCount = 0
}

type glRendererBackendImpl struct {
	mu  *sync.Mutex
	win window.Window

	// program is the linked deformation program, compiled lazily on the first
	// DrawSurface call. Zero means not yet compiled.
	program uint32

	// Cached uniform locations, resolved once after linking.
	locWinSize   int32
	locCenter    int32
	locVelocity  int32
	locTime      int32
	locAmplitude int32
	locFrequency int32
	locDamping   int32
	locTex       int32

	clearColor  [4]float32
	frameActive bool
}

var _ RendererBackend = &glRendererBackendImpl{}

func newGLRendererBackend(win window.Window) *glRendererBackendImpl {
	runtime.LockOSThread()
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		panic(fmt.Sprintf("renderer: gl.Init: %v", err))
	}

	b := &glRendererBackendImpl{
		mu:         &sync.Mutex{},
		win:        win,
		clearColor: [4]float32{0.1, 0.1, 0.1, 1.0},
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	log.Printf("[Renderer] OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return b
}

func (b *glRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *glRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		glfw.SwapInterval(1)
	case PresentModeUncapped:
		fallthrough
	default:
		glfw.SwapInterval(0)
	}
}

func (b *glRendererBackendImpl) SetClearColor(r, g, bl, a float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = [4]float32{float32(r), float32(g), float32(bl), float32(a)}
}

// ensureProgramLocked compiles and links the deformation program on first use
// and resolves its uniform locations. Failures wrap ErrResourceCompile.
// Caller must hold b.mu.
func (b *glRendererBackendImpl) ensureProgramLocked() error {
	if b.program != 0 {
		return nil
	}

	vs, err := compileGLShader(gl.VERTEX_SHADER, wave.VertexShaderGLSL)
	if err != nil {
		return fmt.Errorf("%w: vertex shader: %v", ErrResourceCompile, err)
	}
	fs, err := compileGLShader(gl.FRAGMENT_SHADER, wave.FragmentShaderGLSL)
	if err != nil {
		gl.DeleteShader(vs)
		return fmt.Errorf("%w: fragment shader: %v", ErrResourceCompile, err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(vs)
		gl.DeleteShader(fs)
		gl.DeleteProgram(program)
		return fmt.Errorf("%w: link: %s", ErrResourceCompile, infoLog)
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	b.program = program
	b.locWinSize = gl.GetUniformLocation(program, gl.Str("uWinSize\x00"))
	b.locCenter = gl.GetUniformLocation(program, gl.Str("uCenter\x00"))
	b.locVelocity = gl.GetUniformLocation(program, gl.Str("uVelocity\x00"))
	b.locTime = gl.GetUniformLocation(program, gl.Str("uTime\x00"))
	b.locAmplitude = gl.GetUniformLocation(program, gl.Str("uAmplitude\x00"))
	b.locFrequency = gl.GetUniformLocation(program, gl.Str("uFrequency\x00"))
	b.locDamping = gl.GetUniformLocation(program, gl.Str("uDamping\x00"))
	b.locTex = gl.GetUniformLocation(program, gl.Str("uTex\x00"))

	log.Printf("[Renderer] compiled deformation program")
	return nil
}

func (b *glRendererBackendImpl) InitSurfaceResources(st *surface.State, m *mesh.Mesh, tex common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := &glSurfaceResources{indexCount: int32(m.IndexCount())}

	gl.GenVertexArrays(1, &res.vao)
	gl.BindVertexArray(res.vao)

	vertexData := m.VertexBytes()
	gl.GenBuffers(1, &res.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, res.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertexData), gl.Ptr(vertexData), gl.STATIC_DRAW)

	stride := int32((&mesh.GPUVertex{}).Size())
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(8))

	indexData := m.IndexBytes()
	gl.GenBuffers(1, &res.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, res.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexData), gl.Ptr(indexData), gl.STATIC_DRAW)

	gl.GenTextures(1, &res.texture)
	gl.BindTexture(gl.TEXTURE_2D, res.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(tex.Width), int32(tex.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))

	gl.BindVertexArray(0)

	st.AttachResource(res)
	return nil
}

func (b *glRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	gl.ClearColor(b.clearColor[0], b.clearColor[1], b.clearColor[2], b.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	b.frameActive = true
	return nil
}

func (b *glRendererBackendImpl) DrawSurface(st *surface.State, u wave.Uniforms) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.frameActive {
		return fmt.Errorf("no active frame: call BeginFrame first")
	}

	if err := b.ensureProgramLocked(); err != nil {
		return err
	}

	res, ok := st.Resource().(*glSurfaceResources)
	if !ok || res == nil {
		return fmt.Errorf("surface has no initialized GPU resources")
	}

	gl.UseProgram(b.program)
	gl.Uniform2f(b.locWinSize, u.WinSize.X, u.WinSize.Y)
	gl.Uniform2f(b.locCenter, u.Center.X, u.Center.Y)
	gl.Uniform2f(b.locVelocity, u.Velocity.X, u.Velocity.Y)
	gl.Uniform1f(b.locTime, u.Time)
	gl.Uniform1f(b.locAmplitude, u.Amplitude)
	gl.Uniform1f(b.locFrequency, u.Frequency)
	gl.Uniform1f(b.locDamping, u.Damping)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, res.texture)
	gl.Uniform1i(b.locTex, 0)

	gl.BindVertexArray(res.vao)
	gl.DrawElements(gl.TRIANGLES, res.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return nil
}

func (b *glRendererBackendImpl) EndFrame() {
	// GL submits commands implicitly; the frame is flushed by SwapBuffers in Present.
}

func (b *glRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.frameActive {
		return
	}
	b.win.SwapBuffers()
	b.frameActive = false
}

func (b *glRendererBackendImpl) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}

func compileGLShader(shaderType uint32, source string) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile error: %s", infoLog)
	}
	return sh, nil
}
