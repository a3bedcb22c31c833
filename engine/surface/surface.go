// package surface tracks per-surface kinematic state for the deformation
// pipeline: drag flag, position history, estimated velocity, the cached grid
// mesh, and the renderer resource handle tied to the surface's lifetime.
package surface

import (
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
)

// Default grid resolution for newly created surfaces.
const (
	DefaultGridCols int32 = 20
	DefaultGridRows int32 = 12
)

// epsilonTime is the minimum dt used by the velocity estimator; it keeps
// same-timestamp samples finite instead of dividing by zero.
const epsilonTime = 1e-6

// ID is an opaque surface handle. Hosts mint IDs however they like (window
// handles, widget ids, counters); the registry never interprets the value.
type ID uint64

// RenderResource is the opaque handle a render collaborator attaches to a
// surface for the GPU objects backing it. Release frees those objects; the
// registry guarantees it is called exactly once, when the surface is removed.
type RenderResource interface {
	Release()
}

// State is the per-surface kinematic record. A zero LastTimestamp means the
// surface has never been sampled; the estimator treats the first sample as a
// baseline and reports zero velocity for it.
type State struct {
	// Dragging is true between a begin-drag and end-drag event.
	Dragging bool
	// LastPosition is the most recent sampled surface position, in pixels.
	LastPosition common.Vec2
	// Velocity is the most recent velocity estimate, in pixels per second.
	Velocity common.Vec2
	// LastTimestamp is the monotonic time of the last sample in seconds. 0 = never sampled.
	LastTimestamp float64
	// Mesh is the cached deformation grid, generated lazily on first frame and reused.
	Mesh *mesh.Mesh
	// GridCols and GridRows are the mesh resolution used when Mesh is generated.
	GridCols int32
	GridRows int32

	resource RenderResource
}

// AttachResource stores the render collaborator's GPU handle on the state,
// releasing any previously attached resource first.
//
// Parameters:
//   - r: the resource to attach
func (s *State) AttachResource(r RenderResource) {
	if s.resource != nil && s.resource != r {
		s.resource.Release()
	}
	s.resource = r
}

// Resource retrieves the attached render resource, or nil if none is attached.
//
// Returns:
//   - RenderResource: the attached resource or nil
func (s *State) Resource() RenderResource {
	return s.resource
}

// ReleaseResource releases the attached render resource if one is present.
// Safe to call repeatedly; the resource is released exactly once.
func (s *State) ReleaseResource() {
	if s.resource == nil {
		return
	}
	s.resource.Release()
	s.resource = nil
}

// EstimateVelocity folds a new position sample into the state and returns the
// updated velocity estimate. The first sample (LastTimestamp == 0) establishes
// a baseline and always yields zero velocity; subsequent samples divide the
// position delta by dt, clamped below by 1e-6 seconds so repeated samples at
// the same timestamp stay finite. Mutates LastPosition, LastTimestamp, and
// Velocity in place; this is the only function that touches the temporal fields.
//
// Parameters:
//   - st: the surface state to update
//   - current: the sampled surface position in pixels
//   - now: the sample time in seconds (monotonic)
//
// Returns:
//   - common.Vec2: the updated velocity in pixels per second
func EstimateVelocity(st *State, current common.Vec2, now float64) common.Vec2 {
	if st.LastTimestamp == 0 {
		st.LastPosition = current
	}
	dt := now - st.LastTimestamp
	if dt < epsilonTime {
		dt = epsilonTime
	}
	st.Velocity = common.Vec2{
		X: float32(float64(current.X-st.LastPosition.X) / dt),
		Y: float32(float64(current.Y-st.LastPosition.Y) / dt),
	}
	st.LastPosition = current
	st.LastTimestamp = now
	return st.Velocity
}
