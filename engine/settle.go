package engine

import (
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/charmbracelet/harmonica"
)

// Settle spring shape: stiff enough to track fast drags, damped near critical
// so the boost never rings after the drag stops.
const (
	settleFrequency = 12.0
	settleDamping   = 0.9
)

// settleSpring smooths one surface's uniform velocity magnitude. Direction
// passes through raw (falling back to the last seen direction while the raw
// velocity is zero), so smoothing shapes the wave's strength, never its
// orientation.
type settleSpring struct {
	spring  harmonica.Spring
	mag     float64
	vel     float64
	lastDir common.Vec2
}

func newSettleSpring(fps float64) *settleSpring {
	return &settleSpring{
		spring: harmonica.NewSpring(harmonica.FPS(int(fps)), settleFrequency, settleDamping),
	}
}

func (s *settleSpring) step(raw common.Vec2) common.Vec2 {
	s.mag, s.vel = s.spring.Update(s.mag, s.vel, float64(raw.Length()))
	if dir := raw.Normalize(); dir != (common.Vec2{}) {
		s.lastDir = dir
	}
	return s.lastDir.Scale(float32(s.mag))
}

// settleVelocity steps the surface's settle spring, creating it on first use.
// Caller holds e.mu.
func (e *engine) settleVelocity(id surface.ID, raw common.Vec2) common.Vec2 {
	sp := e.springs[id]
	if sp == nil {
		sp = newSettleSpring(e.settleFPS)
		e.springs[id] = sp
	}
	return sp.step(raw)
}
