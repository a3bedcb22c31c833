package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestRecordUpdateBeforeInterval(t *testing.T) {
	p := NewProfiler()

	if p.RecordUpdate(0.1, time.Millisecond, false) {
		t.Error("RecordUpdate logged before the interval elapsed")
	}
	if p.updateCount != 1 || p.frameCount != 1 {
		t.Errorf("counts = %d updates / %d frames, want 1/1", p.updateCount, p.frameCount)
	}
}

func TestRecordUpdateFoldsSharedFrameTime(t *testing.T) {
	p := NewProfiler()

	// Three surfaces updated within the same frame count as one frame.
	p.RecordUpdate(0.5, time.Millisecond, true)
	p.RecordUpdate(0.5, time.Millisecond, false)
	p.RecordUpdate(0.5, time.Millisecond, true)
	p.RecordUpdate(0.6, time.Millisecond, false)

	if p.frameCount != 2 {
		t.Errorf("frameCount = %d, want 2", p.frameCount)
	}
	if p.updateCount != 4 {
		t.Errorf("updateCount = %d, want 4", p.updateCount)
	}
	if p.meshBuilds != 2 {
		t.Errorf("meshBuilds = %d, want 2", p.meshBuilds)
	}
}

func TestRecordUpdateLogsAndResets(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	p := NewProfiler()
	p.RecordUpdate(0.1, 2*time.Millisecond, true)

	// Rewind the clock so the next update crosses the interval.
	p.lastTime = time.Now().Add(-2 * time.Second)

	if !p.RecordUpdate(0.2, 2*time.Millisecond, false) {
		t.Fatal("RecordUpdate did not log after the interval elapsed")
	}
	if !strings.Contains(buf.String(), "[Profiler] FPS:") {
		t.Errorf("log output = %q, want a [Profiler] stats line", buf.String())
	}
	if p.frameCount != 0 || p.updateCount != 0 || p.meshBuilds != 0 || p.updateTime != 0 {
		t.Errorf("counters not reset: frames=%d updates=%d builds=%d time=%v",
			p.frameCount, p.updateCount, p.meshBuilds, p.updateTime)
	}
}
