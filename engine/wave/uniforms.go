package wave

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/jelly-go/common"
)

// JellyShaderSource is the canonical WGSL implementation of the displacement
// model, containing both the vertex and fragment entry points. The uniform
// block matches GPUWaveUniforms exactly (48 bytes, uniform address space).
//
//go:embed assets/jelly.wgsl
var JellyShaderSource string

// VertexShaderGLSL is the GLSL 3.30 vertex stage of the displacement model
// for the OpenGL backend. Uniform names follow the uWinSize/uCenter
// convention consumed by the GL renderer's uniform cache.
//
//go:embed assets/jelly.vert
var VertexShaderGLSL string

// FragmentShaderGLSL is the GLSL 3.30 fragment stage: a plain textured pass
// sampling uTex at the interpolated uv.
//
//go:embed assets/jelly.frag
var FragmentShaderGLSL string

// Uniforms is the per-surface, per-frame shader parameter set handed from the
// engine to the render collaborator. Center is always the surface center
// (0,0) in surface-local space. Texture is an opaque host handle carried
// through untouched; the core never inspects it.
type Uniforms struct {
	// WinSize is the surface size in pixels.
	WinSize common.Vec2
	// Center is the disturbance center in surface-local space.
	Center common.Vec2
	// Velocity is the drag velocity in pixels per second.
	Velocity common.Vec2
	// Time is the elapsed time in seconds.
	Time float32
	// Amplitude, Frequency, Damping mirror the engine's wave parameters.
	Amplitude float32
	Frequency float32
	Damping   float32
	// Texture is the opaque texture handle supplied by the host.
	Texture any
}

// Params extracts the wave shape parameters carried in the uniforms.
//
// Returns:
//   - Params: amplitude, frequency, and damping as a parameter set
func (u Uniforms) Params() Params {
	return Params{
		Amplitude: u.Amplitude,
		Frequency: u.Frequency,
		Damping:   u.Damping,
	}
}

// GPU returns the GPU-aligned mirror of u, ready to marshal into a uniform buffer.
//
// Returns:
//   - GPUWaveUniforms: the padded GPU representation
func (u Uniforms) GPU() GPUWaveUniforms {
	return GPUWaveUniforms{
		WinSize:   [2]float32{u.WinSize.X, u.WinSize.Y},
		Center:    [2]float32{u.Center.X, u.Center.Y},
		Velocity:  [2]float32{u.Velocity.X, u.Velocity.Y},
		Time:      u.Time,
		Amplitude: u.Amplitude,
		Frequency: u.Frequency,
		Damping:   u.Damping,
	}
}

// GPUWaveUniforms is the GPU-aligned representation of the wave uniforms.
// Matches the WGSL WaveUniforms struct layout exactly (see JellyShaderSource).
// Size: 48 bytes (40 bytes of data padded to the 16-byte uniform stride).
type GPUWaveUniforms struct {
	WinSize   [2]float32 // offset  0: surface size in pixels (8 bytes)
	Center    [2]float32 // offset  8: disturbance center in surface-local space (8 bytes)
	Velocity  [2]float32 // offset 16: drag velocity in pixels per second (8 bytes)
	Time      float32    // offset 24: elapsed time in seconds (4 bytes)
	Amplitude float32    // offset 28: wave amplitude in pixels (4 bytes)
	Frequency float32    // offset 32: wave frequency in radians per pixel (4 bytes)
	Damping   float32    // offset 36: wave damping per pixel (4 bytes)
	Pad       [2]float32 // offset 40: pads the struct to 48 bytes (8 bytes)
}

// Size returns the size of the GPUWaveUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUWaveUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUWaveUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUWaveUniforms) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.WinSize[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.WinSize[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Center[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Center[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Velocity[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Velocity[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Amplitude))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Frequency))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Damping))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Pad[0]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Pad[1]))
	return buf
}
