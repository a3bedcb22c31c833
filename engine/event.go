package engine

import (
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
)

// Event is the closed set of host notifications the engine consumes via
// Dispatch. The set is sealed: hosts cannot define new event types, so every
// Dispatch switch is exhaustive.
type Event interface {
	isEvent()
}

// BeginDrag marks the surface as dragging and re-baselines its sample clock
// to the dispatch time. Velocity and position survive, so re-grabbing a
// still-wobbling surface does not snap the wave. Idempotent from either
// state.
type BeginDrag struct {
	Surface surface.ID
}

// UpdateDrag reports cursor motion while the surface is held. A non-nil
// Position feeds the velocity estimator immediately; a nil Position only
// ensures the surface exists and leaves sampling to the next FrameUpdate.
type UpdateDrag struct {
	Surface  surface.ID
	Position *common.Vec2
}

// EndDrag clears the dragging flag. Velocity is deliberately not zeroed; the
// wave settles by natural decay over the following frames.
type EndDrag struct {
	Surface surface.ID
}

// SurfaceDestroyed removes the surface entry and releases its render
// resource. Hosts must dispatch this when a surface goes away or its GPU
// objects leak.
type SurfaceDestroyed struct {
	Surface surface.ID
}

func (BeginDrag) isEvent()        {}
func (UpdateDrag) isEvent()       {}
func (EndDrag) isEvent()          {}
func (SurfaceDestroyed) isEvent() {}
