package wave

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
)

// displaceChunkSize is the number of vertices handed to each pool task. The
// default 20x12 grid (273 vertices) fans out to two tasks; denser grids scale
// up without flooding the queue.
const displaceChunkSize = 256

// DisplaceMesh evaluates the displacement model for every vertex of src and
// writes the results into dst. dst is a caller-owned scratch mesh: its vertex
// slice is (re)allocated to match src when sizes differ, UVs are copied
// through unchanged, and the index slice is shared with src since topology is
// unaffected. src is never modified.
//
// When pool is non-nil the vertex range fans out across the worker pool in
// fixed-size chunks behind a WaitGroup barrier, so the call still completes
// synchronously. A nil pool runs the loop serially; both paths produce
// identical output.
//
// Parameters:
//   - dst: the scratch mesh receiving displaced vertices
//   - src: the undeformed grid mesh
//   - u: the frame's uniforms (center, velocity, time, wave parameters)
//   - pool: optional worker pool for parallel evaluation, nil for serial
func DisplaceMesh(dst, src *mesh.Mesh, u Uniforms, pool worker.DynamicWorkerPool) {
	if len(dst.Vertices) != len(src.Vertices) {
		dst.Vertices = make([]mesh.GPUVertex, len(src.Vertices))
	}
	dst.Indices = src.Indices
	params := u.Params()

	if pool == nil {
		displaceRange(dst, src, u, params, 0, len(src.Vertices))
		return
	}

	// Per-call barrier via WaitGroup: pool workers are reused across calls, so
	// waiting on the pool itself is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(src.Vertices); start += displaceChunkSize {
		end := min(start+displaceChunkSize, len(src.Vertices))

		wg.Add(1)
		lo, hi := start, end
		id := taskID
		taskID++
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				displaceRange(dst, src, u, params, lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func displaceRange(dst, src *mesh.Mesh, u Uniforms, params Params, lo, hi int) {
	for i := lo; i < hi; i++ {
		v := src.Vertices[i]
		p := common.Vec2{X: v.Position[0], Y: v.Position[1]}
		out := Displace(p, u.Center, u.Velocity, u.Time, params)
		dst.Vertices[i] = mesh.GPUVertex{
			Position: [2]float32{out.X, out.Y},
			UV:       v.UV,
		}
	}
}
