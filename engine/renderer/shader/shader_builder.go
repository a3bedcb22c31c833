package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint declares the shader's entry point function name.
//
// Parameters:
//   - name: the entry point name (e.g. "vs_main")
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point for this shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the bind group layout descriptor for a group
// index. The descriptor must match the resource declarations in the shader
// source; nothing verifies the pairing at construction time.
//
// Parameters:
//   - group: the bind group index the descriptor describes
//   - desc: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that sets the bind group layout for this shader
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayout declares a vertex buffer layout set under the given key.
// Only meaningful on vertex shaders.
//
// Parameters:
//   - key: the integer key identifying the layout set
//   - layouts: the vertex buffer layouts for the key
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layout for this shader
func WithVertexLayout(key int, layouts []wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[key] = layouts
	}
}
