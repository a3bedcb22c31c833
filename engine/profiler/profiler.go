package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame-update statistics for performance monitoring: frame
// rate, surfaces updated per frame, mesh builds, and mean update cost.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	updateCount    int
	meshBuilds     int
	updateTime     time.Duration
	lastFrameTime  float64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// RecordUpdate should be called once per surface update to track update
// timing. Updates sharing a frame timestamp are folded into one frame for the
// frame rate figure. Logs statistics when the update interval has elapsed.
// Statistics include: FPS, surfaces updated per frame, mesh builds, mean
// update cost, heap usage.
//
// Parameters:
//   - frameTime: the update's frame timestamp in seconds
//   - cost: wall time the update took
//   - meshBuilt: true if the update generated a mesh
//
// Returns:
//   - bool: true if stats were logged this call, false otherwise
func (p *Profiler) RecordUpdate(frameTime float64, cost time.Duration, meshBuilt bool) bool {
	if frameTime != p.lastFrameTime {
		p.frameCount++
		p.lastFrameTime = frameTime
	}
	p.updateCount++
	p.updateTime += cost
	if meshBuilt {
		p.meshBuilds++
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	surfacesPerFrame := 0.0
	if p.frameCount > 0 {
		surfacesPerFrame = float64(p.updateCount) / float64(p.frameCount)
	}
	meanUpdateUs := int64(0)
	if p.updateCount > 0 {
		meanUpdateUs = p.updateTime.Microseconds() / int64(p.updateCount)
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024

	log.Printf("[Profiler] FPS: %.2f | Surfaces/frame: %.1f | Mesh builds: %d | Update: %d µs | Heap: %.2f MB",
		fps, surfacesPerFrame, p.meshBuilds, meanUpdateUs, allocMB)

	p.frameCount = 0
	p.updateCount = 0
	p.meshBuilds = 0
	p.updateTime = 0
	p.lastTime = currentTime
	return true
}
