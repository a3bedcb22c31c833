package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertex is the GPU-aligned representation of a single grid vertex.
// Matches the vertex input layout of both shader dialects exactly
// (location 0 = position, location 1 = uv).
// Size: 16 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [2]float32 // offset 0: vertex position in surface-local space, origin at surface center (8 bytes)
	UV       [2]float32 // offset 8: texture coordinate, v flipped (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.UV[1]))
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout describing GPUVertex
// to a render pipeline: stride 16, position at shader location 0, uv at 1.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for the grid vertex buffer
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(GPUVertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         8,
				ShaderLocation: 1,
			},
		},
	}
}
