package common

import (
	"math"
	"unsafe"
)

// Vec2 is a two-component single-precision vector. It is the shared value
// type for positions, sizes, offsets, and velocities throughout the engine.
// All methods are value-semantics: they return a new vector and never mutate
// the receiver.
type Vec2 struct {
	X float32
	Y float32
}

// Add returns the component-wise sum of v and o.
//
// Parameters:
//   - o: vector to add
//
// Returns:
//   - Vec2: v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
//
// Parameters:
//   - o: vector to subtract
//
// Returns:
//   - Vec2: v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v with both components multiplied by s.
//
// Parameters:
//   - s: scalar multiplier
//
// Returns:
//   - Vec2: v * s
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean magnitude of v.
//
// Returns:
//   - float32: sqrt(x² + y²)
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns v scaled to unit length. A zero vector normalizes to the
// zero vector; callers that need a defined direction for degenerate input
// must bias the vector themselves before normalizing.
//
// Returns:
//   - Vec2: v / |v|, or (0,0) when |v| == 0
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
