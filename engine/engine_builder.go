package engine

import (
	"runtime"

	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics output to the log.
//
// Parameters:
//   - enabled: if true, enables frame statistics logging
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWaveParams sets the wave shape parameters used for every surface's
// uniforms.
//
// Parameters:
//   - p: amplitude, frequency, and damping (see wave.DefaultParams)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWaveParams(p wave.Params) EngineBuilderOption {
	return func(e *engine) {
		e.params = p
	}
}

// WithGridSize sets the mesh resolution for surfaces created after
// construction. Values < 1 fall back to the defaults (20x12).
//
// Parameters:
//   - cols: grid columns per surface
//   - rows: grid rows per surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGridSize(cols, rows int32) EngineBuilderOption {
	return func(e *engine) {
		if cols < 1 {
			cols = surface.DefaultGridCols
		}
		if rows < 1 {
			rows = surface.DefaultGridRows
		}
		e.gridCols = cols
		e.gridRows = rows
	}
}

// WithMaxBoost caps the velocity boost factor (1 + |velocity| * 5) the shader
// sees at limit, rescaling the uniform velocity when a fast drag would exceed
// it. The surface's stored velocity stays raw. 0 disables the cap (default).
//
// Parameters:
//   - limit: maximum boost factor, 0 = unclamped
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxBoost(limit float32) EngineBuilderOption {
	return func(e *engine) {
		if limit < 0 {
			limit = 0
		}
		e.maxBoost = limit
	}
}

// WithSettle smooths the uniform velocity magnitude with a per-surface spring
// stepped once per FrameUpdate, eliminating boost pops on hosts with jittery
// event timing. fps must match the host's frame rate for correct spring
// integration. 0 disables smoothing (default); the raw estimator output is
// the reference behavior.
//
// Parameters:
//   - fps: the host's frame rate in frames per second, 0 = off
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSettle(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps < 0 {
			fps = 0
		}
		e.settleFPS = fps
	}
}

// WithComputePool configures a worker pool for parallel CPU displacement
// (wave.DisplaceMesh), exposed via Engine.ComputePool. Without this option no
// pool is created and CPU displacement runs serially.
//
// Parameters:
//   - workers: pool worker count (<= 0 = one per CPU, minus one for the host loop)
//   - queueSize: task queue depth (<= 0 = 256)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithComputePool(workers, queueSize int) EngineBuilderOption {
	return func(e *engine) {
		if workers <= 0 {
			workers = max(runtime.NumCPU()-1, 1)
		}
		if queueSize <= 0 {
			queueSize = 256
		}
		e.computeWorkers = workers
		e.computeQueue = queueSize
	}
}
