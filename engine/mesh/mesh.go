// package mesh generates the deformation grid for a surface: a regular
// (cols x rows) cell lattice of textured vertices in surface-local space,
// indexed as two triangles per cell. Generation is pure and deterministic;
// GPU upload is the renderer's concern.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/jelly-go/common"
)

// ErrInvalidDimension is returned by Generate when the requested grid
// resolution or surface extent cannot describe a valid mesh.
var ErrInvalidDimension = errors.New("mesh: invalid dimension")

// Mesh is a grid mesh. Vertices are stored row-major, (rows+1)*(cols+1)
// entries; Indices hold rows*cols*6 entries, two counter-clockwise triangles
// per cell. Every index is < len(Vertices). A generated mesh is never
// mutated by the pipeline; it is cached per surface and reused each frame.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// Generate builds a grid mesh of cols x rows cells spanning a width x height
// rectangle centered on the origin. Vertex positions cover
// [-width/2, width/2] x [-height/2, height/2]; UVs cover [0,1]² with the
// v axis flipped so v=1 is the bottom row.
//
// Parameters:
//   - cols: number of cells horizontally (must be >= 1)
//   - rows: number of cells vertically (must be >= 1)
//   - width: surface width in pixels (must be finite and non-negative)
//   - height: surface height in pixels (must be finite and non-negative)
//
// Returns:
//   - *Mesh: the generated mesh
//   - error: wraps ErrInvalidDimension naming the offending argument
func Generate(cols, rows int32, width, height float32) (*Mesh, error) {
	if cols < 1 {
		return nil, fmt.Errorf("cols %d: %w", cols, ErrInvalidDimension)
	}
	if rows < 1 {
		return nil, fmt.Errorf("rows %d: %w", rows, ErrInvalidDimension)
	}
	if !isValidExtent(width) {
		return nil, fmt.Errorf("width %v: %w", width, ErrInvalidDimension)
	}
	if !isValidExtent(height) {
		return nil, fmt.Errorf("height %v: %w", height, ErrInvalidDimension)
	}

	vertices := make([]GPUVertex, 0, (rows+1)*(cols+1))
	for r := int32(0); r <= rows; r++ {
		ty := float32(r) / float32(rows)
		for c := int32(0); c <= cols; c++ {
			tx := float32(c) / float32(cols)
			vertices = append(vertices, GPUVertex{
				Position: [2]float32{(tx - 0.5) * width, (ty - 0.5) * height},
				UV:       [2]float32{tx, 1 - ty},
			})
		}
	}

	indices := make([]uint32, 0, rows*cols*6)
	for r := int32(0); r < rows; r++ {
		for c := int32(0); c < cols; c++ {
			i0 := uint32(r*(cols+1) + c)
			i1 := i0 + 1
			i2 := i0 + uint32(cols+1)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices}, nil
}

// VertexBytes returns the vertex data as an upload-ready byte slice.
// The slice is an unsafe view into the mesh's vertex storage - do not modify.
//
// Returns:
//   - []byte: little-endian vertex buffer contents, 16 bytes per vertex
func (m *Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data as an upload-ready byte slice.
// The slice is an unsafe view into the mesh's index storage - do not modify.
//
// Returns:
//   - []byte: little-endian index buffer contents, 4 bytes per index
func (m *Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// IndexCount returns the number of indices to submit for a full draw of the mesh.
//
// Returns:
//   - uint32: len(Indices)
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

func isValidExtent(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && v >= 0
}
