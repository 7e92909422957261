package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	f := NewFrame()
	for i := 0; i < 3; i++ {
		stop := f.Track("renderer.sky")
		time.Sleep(time.Millisecond)
		stop()
	}
	f.Track("water.update")()

	snap := f.Snapshot()
	if snap["renderer.sky"] < 3*time.Millisecond {
		t.Errorf("Expected at least 3ms for renderer.sky, got %v", snap["renderer.sky"])
	}
	if f.SumWithPrefix("renderer.") != snap["renderer.sky"] {
		t.Errorf("Expected prefix sum to match the single renderer entry")
	}
	if top := f.TopN(1); !strings.HasPrefix(top, "renderer.sky:") {
		t.Errorf("Expected renderer.sky first, got %q", top)
	}
}

func TestResetClears(t *testing.T) {
	f := NewFrame()
	f.Track("a")()
	f.Reset()
	if len(f.Snapshot()) != 0 {
		t.Errorf("Expected empty snapshot after reset")
	}
	if f.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", f.Frames())
	}
}

func TestBySubsystem(t *testing.T) {
	f := NewFrame()
	f.record("renderer.sky", 2*time.Millisecond)
	f.record("renderer.water", 3*time.Millisecond)
	f.record("glfw.SwapBuffers", 4*time.Millisecond)
	f.record("gl.Draw", 500*time.Microsecond)

	subs := f.BySubsystem()
	if subs["renderer"] != 5*time.Millisecond || subs["glfw"] != 4*time.Millisecond {
		t.Errorf("Expected renderer 5ms and glfw 4ms, got %v", subs)
	}
	if got := f.TopSubsystems(2); got != "renderer:5.0ms, glfw:4.0ms" {
		t.Errorf("Expected renderer then glfw, got %q", got)
	}
	if got := f.TopN(2); got != "glfw.SwapBuffers:4.0ms, renderer.water:3.0ms" {
		t.Errorf("Expected the two slowest steps, got %q", got)
	}
	if got := f.TopN(10); strings.Count(got, ",") != 3 {
		t.Errorf("Expected all 4 steps, got %q", got)
	}
}
