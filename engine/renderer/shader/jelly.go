package shader

import (
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
	"github.com/cogentcore/webgpu/wgpu"
)

// Keys for the canonical deformation shaders and the pipeline built from them.
const (
	JellyVertexKey   = "jelly_vertex"
	JellyFragmentKey = "jelly_fragment"
	JellyPipelineKey = "jelly_wave"
)

// Binding indices within the wave bind group (group 0).
const (
	WaveUniformBinding = 0
	WaveTextureBinding = 1
	WaveSamplerBinding = 2
)

// WaveBindGroupLayout returns the bind group layout descriptor for the
// deformation effect's single bind group: the wave uniform block at binding 0
// (vertex stage), the surface texture at binding 1 and its sampler at binding
// 2 (fragment stage). Matches the @group(0) declarations in
// wave.JellyShaderSource; MinBindingSize mirrors the 48-byte uniform struct.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout for group 0
func WaveBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var u wave.GPUWaveUniforms
	return wgpu.BindGroupLayoutDescriptor{
		Label: "jelly_wave_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(u.Size()),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// JellyVertex constructs the canonical vertex shader of the deformation
// effect: the embedded WGSL displacement source with the grid vertex layout
// and the wave bind group declared.
//
// Returns:
//   - Shader: the vertex shader, ready for pipeline creation
func JellyVertex() Shader {
	return NewShader(JellyVertexKey, ShaderTypeVertex, wave.JellyShaderSource,
		WithEntryPoint("vs_main"),
		WithVertexLayout(0, []wgpu.VertexBufferLayout{mesh.VertexBufferLayout()}),
		WithBindGroupLayout(0, WaveBindGroupLayout()),
	)
}

// JellyFragment constructs the canonical fragment shader of the deformation
// effect: the textured pass sampling the surface texture at the displaced uv.
//
// Returns:
//   - Shader: the fragment shader, ready for pipeline creation
func JellyFragment() Shader {
	return NewShader(JellyFragmentKey, ShaderTypeFragment, wave.JellyShaderSource,
		WithEntryPoint("fs_main"),
		WithBindGroupLayout(0, WaveBindGroupLayout()),
	)
}
