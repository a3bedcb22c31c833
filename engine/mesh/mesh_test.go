package mesh

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		name   string
		cols   int32
		rows   int32
		width  float32
		height float32
	}{
		{"single cell", 1, 1, 10, 10},
		{"default grid", 20, 12, 800, 600},
		{"wide strip", 64, 1, 1024, 16},
		{"tall strip", 1, 64, 16, 1024},
		{"dense grid", 100, 100, 500, 500},
		{"zero extent", 3, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(tt.cols, tt.rows, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			wantVerts := int((tt.rows + 1) * (tt.cols + 1))
			if len(m.Vertices) != wantVerts {
				t.Errorf("len(Vertices) = %d, want %d", len(m.Vertices), wantVerts)
			}

			wantIndices := int(tt.rows * tt.cols * 6)
			if len(m.Indices) != wantIndices {
				t.Errorf("len(Indices) = %d, want %d", len(m.Indices), wantIndices)
			}
			if m.IndexCount() != uint32(wantIndices) {
				t.Errorf("IndexCount() = %d, want %d", m.IndexCount(), wantIndices)
			}

			if got := len(m.VertexBytes()); got != wantVerts*16 {
				t.Errorf("len(VertexBytes) = %d, want %d", got, wantVerts*16)
			}
			if got := len(m.IndexBytes()); got != wantIndices*4 {
				t.Errorf("len(IndexBytes) = %d, want %d", got, wantIndices*4)
			}
		})
	}
}

func TestGenerateIndexBounds(t *testing.T) {
	m, err := Generate(7, 5, 70, 50)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d, out of bounds for %d vertices", i, idx, len(m.Vertices))
		}
	}
}

func TestGenerateUVRange(t *testing.T) {
	m, err := Generate(9, 4, 300, 200)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, v := range m.Vertices {
		for axis, uv := range v.UV {
			if uv < 0 || uv > 1 {
				t.Fatalf("vertex %d uv[%d] = %v, want within [0,1]", i, axis, uv)
			}
		}
	}
}

func TestGenerateFixedPoints(t *testing.T) {
	m, err := Generate(2, 1, 4, 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(m.Vertices) != 6 {
		t.Fatalf("len(Vertices) = %d, want 6", len(m.Vertices))
	}

	// Row 0 col 0: bottom-left corner, v flipped to 1.
	v := m.Vertices[0]
	if v.Position != [2]float32{-2, -1} {
		t.Errorf("vertex 0 position = %v, want [-2 -1]", v.Position)
	}
	if v.UV != [2]float32{0, 1} {
		t.Errorf("vertex 0 uv = %v, want [0 1]", v.UV)
	}

	// Row 1 col 2: top-right corner, v flipped to 0.
	v = m.Vertices[5]
	if v.Position != [2]float32{2, 1} {
		t.Errorf("vertex 5 position = %v, want [2 1]", v.Position)
	}
	if v.UV != [2]float32{1, 0} {
		t.Errorf("vertex 5 uv = %v, want [1 0]", v.UV)
	}
}

func TestGenerateFirstCellWinding(t *testing.T) {
	m, err := Generate(2, 2, 20, 20)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []uint32{0, 3, 1, 1, 3, 4}
	if !reflect.DeepEqual(m.Indices[:6], want) {
		t.Errorf("first cell indices = %v, want %v", m.Indices[:6], want)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	a, err := Generate(13, 8, 640, 360)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	b, err := Generate(13, 8, 640, 360)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two generations with identical arguments differ")
	}
}

func TestGenerateErrors(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name   string
		cols   int32
		rows   int32
		width  float32
		height float32
	}{
		{"zero cols", 0, 4, 100, 100},
		{"negative rows", 4, -1, 100, 100},
		{"NaN width", 4, 4, nan, 100},
		{"negative height", 4, 4, 100, -5},
		{"infinite height", 4, 4, 100, inf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.cols, tt.rows, tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("Generate error = %v, want ErrInvalidDimension", err)
			}
		})
	}
}

func TestVertexBufferLayoutStride(t *testing.T) {
	layout := VertexBufferLayout()

	if layout.ArrayStride != 16 {
		t.Errorf("ArrayStride = %d, want 16", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].ShaderLocation != 0 || layout.Attributes[0].Offset != 0 {
		t.Errorf("attribute 0 = %+v, want location 0 offset 0", layout.Attributes[0])
	}
	if layout.Attributes[1].ShaderLocation != 1 || layout.Attributes[1].Offset != 8 {
		t.Errorf("attribute 1 = %+v, want location 1 offset 8", layout.Attributes[1])
	}
}
