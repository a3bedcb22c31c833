// package wave implements the radial displacement model that gives a dragged
// surface its jelly deformation: a damped sine wave radiating from the
// disturbance center, scaled by drag speed. The model ships in three
// bit-compatible forms: the Go function here (CPU fallback and reference for
// tests), and the embedded WGSL and GLSL vertex shaders for the GPU backends.
package wave

import (
	"math"

	"github.com/Carmen-Shannon/jelly-go/common"
)

// Displacement constants shared with the embedded shader sources; the shaders
// carry the same literals.
const (
	// tau is the wave phase advance per second of elapsed time (one full turn).
	tau = 6.2831
	// directionEpsilon biases the displacement direction so vertices exactly at
	// the disturbance center still resolve a finite direction.
	directionEpsilon = 1e-4
	// velocityBoost scales how much drag speed amplifies the wave.
	velocityBoost = 5.0
)

// Params are the tunable wave shape parameters, configured per engine.
type Params struct {
	// Amplitude is the base wave height in pixels.
	Amplitude float32
	// Frequency is the radial wave frequency in radians per pixel of distance.
	Frequency float32
	// Damping is the exponential falloff rate per pixel of distance.
	Damping float32
}

// DefaultParams returns the stock wave shape (amplitude 6, frequency 0.02,
// damping 0.02).
//
// Returns:
//   - Params: the default parameter set
func DefaultParams() Params {
	return Params{
		Amplitude: 6.0,
		Frequency: 0.02,
		Damping:   0.02,
	}
}

// Displace computes the displaced position of a single vertex. The wave term
// is a sine over radial distance from center, damped exponentially with
// distance and advanced by time; drag velocity boosts the result
// (1 + |velocity| * 5). The vertex is pushed along the direction from center
// to vertex, biased by a small epsilon so a vertex exactly at the center
// still moves in a defined direction. Pure; single precision throughout.
//
// Parameters:
//   - localOffset: vertex position in surface-local space
//   - center: disturbance center in surface-local space
//   - velocity: drag velocity in pixels per second
//   - time: elapsed time in seconds
//   - params: wave shape parameters
//
// Returns:
//   - common.Vec2: the displaced vertex position
func Displace(localOffset, center, velocity common.Vec2, time float32, params Params) common.Vec2 {
	d := localOffset.Sub(center)
	dist := d.Length()

	ripple := float32(math.Sin(float64(params.Frequency*dist-time*tau))) *
		params.Amplitude * float32(math.Exp(float64(-dist*params.Damping)))
	disp := ripple * Boost(velocity)

	dir := d.Add(common.Vec2{X: directionEpsilon, Y: directionEpsilon}).Normalize()
	return localOffset.Add(dir.Scale(disp))
}

// Boost returns the velocity boost factor applied to the wave term:
// 1 + |velocity| * 5. Faster drags produce bigger waves.
//
// Parameters:
//   - velocity: drag velocity in pixels per second
//
// Returns:
//   - float32: the boost factor, always >= 1
func Boost(velocity common.Vec2) float32 {
	return 1 + velocity.Length()*velocityBoost
}

// ClampBoost rescales velocity so Boost of the result does not exceed limit.
// Velocities already under the limit pass through unchanged; limits at or
// below 1 suppress the boost entirely. Direction is preserved.
//
// Parameters:
//   - velocity: the raw drag velocity
//   - limit: the maximum allowed boost factor
//
// Returns:
//   - common.Vec2: the rescaled velocity
func ClampBoost(velocity common.Vec2, limit float32) common.Vec2 {
	if Boost(velocity) <= limit {
		return velocity
	}
	if limit <= 1 {
		return common.Vec2{}
	}
	maxMag := (limit - 1) / velocityBoost
	return velocity.Scale(maxMag / velocity.Length())
}
