package surface

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/jelly-go/common"
)

// countingResource counts Release calls so tests can assert release-exactly-once.
type countingResource struct {
	releases int
}

func (c *countingResource) Release() {
	c.releases++
}

func TestEstimateVelocityFirstSample(t *testing.T) {
	st := &State{}

	v := EstimateVelocity(st, common.Vec2{X: 42, Y: -7}, 1.5)

	if v != (common.Vec2{}) {
		t.Errorf("first sample velocity = %+v, want (0,0)", v)
	}
	if st.LastPosition != (common.Vec2{X: 42, Y: -7}) {
		t.Errorf("LastPosition = %+v, want (42,-7)", st.LastPosition)
	}
	if st.LastTimestamp != 1.5 {
		t.Errorf("LastTimestamp = %v, want 1.5", st.LastTimestamp)
	}
}

func TestEstimateVelocityStep(t *testing.T) {
	st := &State{}
	EstimateVelocity(st, common.Vec2{}, 1.0)

	v := EstimateVelocity(st, common.Vec2{X: 10, Y: 0}, 2.0)

	if math.Abs(float64(v.X-10)) > 1e-4 || math.Abs(float64(v.Y)) > 1e-4 {
		t.Errorf("velocity = %+v, want (10,0)", v)
	}
	if st.Velocity != v {
		t.Errorf("State.Velocity = %+v, want %+v", st.Velocity, v)
	}
}

func TestEstimateVelocitySameTimestamp(t *testing.T) {
	st := &State{}
	EstimateVelocity(st, common.Vec2{}, 1.0)

	// Second sample at the identical timestamp: dt clamps to epsilon and the
	// result must stay finite.
	v := EstimateVelocity(st, common.Vec2{X: 3, Y: 4}, 1.0)

	for axis, comp := range []float32{v.X, v.Y} {
		f := float64(comp)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("component %d = %v, want finite", axis, comp)
		}
	}
}

func TestRegistryGetOrCreateIdentity(t *testing.T) {
	r := NewRegistry(0, 0)

	a := r.GetOrCreate(7)
	b := r.GetOrCreate(7)

	if a != b {
		t.Error("GetOrCreate returned different entries for the same id")
	}
	if a.GridCols != DefaultGridCols || a.GridRows != DefaultGridRows {
		t.Errorf("grid defaults = %dx%d, want %dx%d", a.GridCols, a.GridRows, DefaultGridCols, DefaultGridRows)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryCustomGridDefaults(t *testing.T) {
	r := NewRegistry(30, 15)

	st := r.GetOrCreate(1)
	if st.GridCols != 30 || st.GridRows != 15 {
		t.Errorf("grid = %dx%d, want 30x15", st.GridCols, st.GridRows)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(0, 0)

	if st := r.Get(99); st != nil {
		t.Errorf("Get(99) = %+v, want nil", st)
	}
}

func TestRegistryRemoveReleasesOnce(t *testing.T) {
	r := NewRegistry(0, 0)
	res := &countingResource{}
	r.GetOrCreate(3).AttachResource(res)

	r.Remove(3)
	if res.releases != 1 {
		t.Errorf("releases after Remove = %d, want 1", res.releases)
	}
	if r.Get(3) != nil {
		t.Error("entry still present after Remove")
	}

	// Removing again is a no-op.
	r.Remove(3)
	if res.releases != 1 {
		t.Errorf("releases after double Remove = %d, want 1", res.releases)
	}
}

func TestRegistryClearReleasesAll(t *testing.T) {
	r := NewRegistry(0, 0)
	resources := []*countingResource{{}, {}, {}}
	for i, res := range resources {
		r.GetOrCreate(ID(i)).AttachResource(res)
	}

	r.Clear()

	if r.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", r.Len())
	}
	for i, res := range resources {
		if res.releases != 1 {
			t.Errorf("resource %d releases = %d, want 1", i, res.releases)
		}
	}
}

func TestAttachResourceReplacesAndReleases(t *testing.T) {
	st := &State{}
	first := &countingResource{}
	second := &countingResource{}

	st.AttachResource(first)
	st.AttachResource(second)

	if first.releases != 1 {
		t.Errorf("first resource releases = %d, want 1", first.releases)
	}
	if second.releases != 0 {
		t.Errorf("second resource releases = %d, want 0", second.releases)
	}
	if st.Resource() != second {
		t.Error("Resource() is not the replacement")
	}
}

func TestReleaseResourceIdempotent(t *testing.T) {
	st := &State{}
	res := &countingResource{}
	st.AttachResource(res)

	st.ReleaseResource()
	st.ReleaseResource()

	if res.releases != 1 {
		t.Errorf("releases = %d, want 1", res.releases)
	}
	if st.Resource() != nil {
		t.Error("Resource() non-nil after release")
	}
}

func TestRegistryForEach(t *testing.T) {
	r := NewRegistry(0, 0)
	r.GetOrCreate(1)
	r.GetOrCreate(2)

	seen := make(map[ID]bool)
	r.ForEach(func(id ID, st *State) {
		if st == nil {
			t.Fatalf("nil state for id %d", id)
		}
		seen[id] = true
	})

	if len(seen) != 2 || !seen[1] || !seen[2] {
		t.Errorf("ForEach visited %v, want ids 1 and 2", seen)
	}
}
