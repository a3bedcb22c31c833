package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
)

type fakeResource struct {
	releases int
}

func (f *fakeResource) Release() {
	f.releases++
}

// frame drives one FrameUpdate with the standard demo surface extent.
func frame(t *testing.T, eng Engine, id surface.ID, pos common.Vec2, now float64) FrameOutput {
	t.Helper()
	out, err := eng.FrameUpdate(FrameInput{
		Surface:  id,
		Size:     common.Vec2{X: 800, Y: 600},
		Position: pos,
		Now:      now,
	})
	if err != nil {
		t.Fatalf("FrameUpdate at t=%v failed: %v", now, err)
	}
	return out
}

// probeDisplacement evaluates the displacement magnitude of the mesh's first
// vertex under the given frame uniforms.
func probeDisplacement(out FrameOutput) float64 {
	v := out.Mesh.Vertices[0]
	p := common.Vec2{X: v.Position[0], Y: v.Position[1]}
	displaced := wave.Displace(p, out.Uniforms.Center, out.Uniforms.Velocity, out.Uniforms.Time, out.Uniforms.Params())
	return float64(displaced.Sub(p).Length())
}

func TestFrameUpdateVelocityRiseAndFall(t *testing.T) {
	eng := NewEngine()
	eng.Dispatch(BeginDrag{Surface: 1}, 1.0)

	out1 := frame(t, eng, 1, common.Vec2{}, 1.0)
	out2 := frame(t, eng, 1, common.Vec2{X: 5, Y: 0}, 1.1)
	out3 := frame(t, eng, 1, common.Vec2{X: 5, Y: 0}, 1.2)

	if out1.Uniforms.Velocity != (common.Vec2{}) {
		t.Errorf("frame 1 velocity = %+v, want (0,0)", out1.Uniforms.Velocity)
	}
	if out2.Uniforms.Velocity.Length() <= 0 {
		t.Errorf("frame 2 velocity = %+v, want a rise above zero", out2.Uniforms.Velocity)
	}
	if math.Abs(float64(out2.Uniforms.Velocity.X-50)) > 1e-2 {
		t.Errorf("frame 2 velocity.X = %v, want 50 (5 px over 0.1 s)", out2.Uniforms.Velocity.X)
	}
	if out3.Uniforms.Velocity.Length() > 1e-4 {
		t.Errorf("frame 3 velocity = %+v, want a return to (0,0)", out3.Uniforms.Velocity)
	}

	// With the drag stopped, the probe vertex relaxes: displacement magnitude
	// must strictly decrease from frame 2 to frame 3.
	if d2, d3 := probeDisplacement(out2), probeDisplacement(out3); d2 <= d3 {
		t.Errorf("probe displacement frame 2 = %v, frame 3 = %v, want strict decrease", d2, d3)
	}
}

func TestFrameUpdateFirstBuildOnce(t *testing.T) {
	eng := NewEngine()

	outs := []FrameOutput{
		frame(t, eng, 1, common.Vec2{}, 0.1),
		frame(t, eng, 1, common.Vec2{}, 0.2),
		frame(t, eng, 1, common.Vec2{}, 0.3),
	}

	if !outs[0].FirstBuild {
		t.Error("frame 1 FirstBuild = false, want true")
	}
	for i, out := range outs[1:] {
		if out.FirstBuild {
			t.Errorf("frame %d FirstBuild = true, want false", i+2)
		}
	}
	if outs[0].Mesh != outs[1].Mesh || outs[1].Mesh != outs[2].Mesh {
		t.Error("mesh not cached across frames")
	}
}

func TestFrameUpdateInvalidSize(t *testing.T) {
	eng := NewEngine()

	_, err := eng.FrameUpdate(FrameInput{
		Surface: 1,
		Size:    common.Vec2{X: float32(math.NaN()), Y: 100},
		Now:     0.1,
	})
	if !errors.Is(err, mesh.ErrInvalidDimension) {
		t.Errorf("FrameUpdate error = %v, want mesh.ErrInvalidDimension", err)
	}
}

func TestDispatchUpdateDragFeedsEstimator(t *testing.T) {
	eng := NewEngine()
	frame(t, eng, 1, common.Vec2{}, 1.0)

	pos := common.Vec2{X: 10, Y: 0}
	eng.Dispatch(UpdateDrag{Surface: 1, Position: &pos}, 2.0)

	st := eng.Surface(1)
	if st == nil {
		t.Fatal("Surface(1) = nil after events")
	}
	if math.Abs(float64(st.Velocity.X-10)) > 1e-4 || math.Abs(float64(st.Velocity.Y)) > 1e-4 {
		t.Errorf("velocity after UpdateDrag = %+v, want (10,0)", st.Velocity)
	}
}

func TestDispatchUpdateDragNilPosition(t *testing.T) {
	eng := NewEngine()

	eng.Dispatch(UpdateDrag{Surface: 4}, 1.0)

	st := eng.Surface(4)
	if st == nil {
		t.Fatal("Surface(4) = nil, want get-or-create on UpdateDrag")
	}
	if st.LastTimestamp != 0 || st.Velocity != (common.Vec2{}) {
		t.Errorf("nil-position UpdateDrag sampled state: ts=%v vel=%+v, want untouched", st.LastTimestamp, st.Velocity)
	}
}

func TestDispatchDragFlags(t *testing.T) {
	eng := NewEngine()

	eng.Dispatch(BeginDrag{Surface: 2}, 0.5)
	if st := eng.Surface(2); st == nil || !st.Dragging {
		t.Fatal("Dragging = false after BeginDrag, want true")
	}

	eng.Dispatch(EndDrag{Surface: 2}, 0.9)
	if st := eng.Surface(2); st.Dragging {
		t.Error("Dragging = true after EndDrag, want false")
	}
}

func TestBeginDragRebaselinesClock(t *testing.T) {
	eng := NewEngine()
	frame(t, eng, 1, common.Vec2{X: 4, Y: 4}, 1.0)
	frame(t, eng, 1, common.Vec2{X: 8, Y: 4}, 1.1)

	before := *eng.Surface(1)
	eng.Dispatch(BeginDrag{Surface: 1}, 5.0)
	after := eng.Surface(1)

	if after.LastTimestamp != 5.0 {
		t.Errorf("LastTimestamp = %v, want 5.0", after.LastTimestamp)
	}
	if after.Velocity != before.Velocity || after.LastPosition != before.LastPosition {
		t.Error("BeginDrag must not reset velocity or position")
	}
}

func TestSurfaceDestroyedReleases(t *testing.T) {
	eng := NewEngine(WithSettle(60))
	frame(t, eng, 1, common.Vec2{}, 1.0)

	res := &fakeResource{}
	eng.Surface(1).AttachResource(res)

	eng.Dispatch(SurfaceDestroyed{Surface: 1}, 2.0)

	if res.releases != 1 {
		t.Errorf("releases = %d, want 1", res.releases)
	}
	if eng.Surface(1) != nil {
		t.Error("Surface(1) still present after SurfaceDestroyed")
	}
	if springs := eng.(*engine).springs; len(springs) != 0 {
		t.Errorf("settle springs = %d entries after destroy, want 0", len(springs))
	}

	// Unknown ids are a no-op.
	eng.Dispatch(SurfaceDestroyed{Surface: 99}, 2.1)
}

func TestShutdownClears(t *testing.T) {
	eng := NewEngine()
	frame(t, eng, 1, common.Vec2{}, 1.0)
	frame(t, eng, 2, common.Vec2{}, 1.0)

	resources := []*fakeResource{{}, {}}
	eng.Surface(1).AttachResource(resources[0])
	eng.Surface(2).AttachResource(resources[1])

	eng.Shutdown()

	if eng.Registry().Len() != 0 {
		t.Errorf("registry Len() = %d after Shutdown, want 0", eng.Registry().Len())
	}
	for i, res := range resources {
		if res.releases != 1 {
			t.Errorf("resource %d releases = %d, want 1", i, res.releases)
		}
	}
}

func TestMaxBoostClampsUniformVelocity(t *testing.T) {
	eng := NewEngine(WithMaxBoost(6))
	frame(t, eng, 1, common.Vec2{}, 1.0)

	out := frame(t, eng, 1, common.Vec2{X: 3, Y: 4}, 2.0)

	got := out.Uniforms.Velocity
	if math.Abs(float64(got.X-0.6)) > 1e-4 || math.Abs(float64(got.Y-0.8)) > 1e-4 {
		t.Errorf("clamped uniform velocity = %+v, want (0.6,0.8)", got)
	}
	if wave.Boost(got) > 6+1e-3 {
		t.Errorf("Boost(uniform velocity) = %v, exceeds limit 6", wave.Boost(got))
	}

	// The stored kinematic state keeps the raw estimate.
	raw := eng.Surface(1).Velocity
	if math.Abs(float64(raw.X-3)) > 1e-4 || math.Abs(float64(raw.Y-4)) > 1e-4 {
		t.Errorf("raw state velocity = %+v, want (3,4)", raw)
	}
}

func TestSettleSmoothsUniformVelocity(t *testing.T) {
	eng := NewEngine(WithSettle(60))
	frame(t, eng, 1, common.Vec2{}, 1.0)

	out := frame(t, eng, 1, common.Vec2{X: 10, Y: 0}, 2.0)

	got := out.Uniforms.Velocity
	if got.X <= 0 || got.X >= 10 {
		t.Errorf("smoothed velocity.X = %v, want within (0,10)", got.X)
	}
	if got.Y != 0 {
		t.Errorf("smoothed velocity.Y = %v, want 0", got.Y)
	}

	raw := eng.Surface(1).Velocity
	if math.Abs(float64(raw.X-10)) > 1e-4 {
		t.Errorf("raw state velocity = %+v, want (10,0)", raw)
	}
}

func TestSurfaceLookupSemantics(t *testing.T) {
	eng := NewEngine()

	if st := eng.Surface(1); st != nil {
		t.Errorf("Surface(1) = %+v before any event, want nil", st)
	}

	eng.Dispatch(BeginDrag{Surface: 1}, 0.1)
	if eng.Surface(1) == nil {
		t.Error("Surface(1) = nil after BeginDrag, want entry")
	}
}

func TestComputePoolConfiguration(t *testing.T) {
	if pool := NewEngine().ComputePool(); pool != nil {
		t.Errorf("default ComputePool = %v, want nil", pool)
	}
	if pool := NewEngine(WithComputePool(2, 8)).ComputePool(); pool == nil {
		t.Error("configured ComputePool = nil, want pool")
	}
}

func TestWithGridSizeShapesMesh(t *testing.T) {
	eng := NewEngine(WithGridSize(4, 3))

	out := frame(t, eng, 1, common.Vec2{}, 0.1)

	wantVerts := (4 + 1) * (3 + 1)
	if len(out.Mesh.Vertices) != wantVerts {
		t.Errorf("len(Vertices) = %d, want %d", len(out.Mesh.Vertices), wantVerts)
	}
}
