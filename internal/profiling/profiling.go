package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Frame is a lightweight per-frame CPU profiler. Subsystems record under
// dotted names ("renderer.sky", "water.update") and the host reads the
// totals once per frame.
type Frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	frames uint64
}

func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer prof.Track("renderer.sky")()
func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() { f.record(name, time.Since(start)) }
}

func (f *Frame) record(name string, d time.Duration) {
	f.mu.Lock()
	f.totals[name] += d
	f.mu.Unlock()
}

// Reset clears current per-frame totals. Call at the start of each frame.
func (f *Frame) Reset() {
	f.mu.Lock()
	for k := range f.totals {
		delete(f.totals, k)
	}
	f.frames++
	f.mu.Unlock()
}

// Frames returns how many times Reset was called.
func (f *Frame) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// Snapshot returns a copy of current per-frame totals.
func (f *Frame) Snapshot() map[string]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Duration, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every total whose name starts with prefix.
func (f *Frame) SumWithPrefix(prefix string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// BySubsystem folds the totals by the first segment of their names, so
// "renderer.sky" and "renderer.water" both count towards "renderer".
func (f *Frame) BySubsystem() map[string]time.Duration {
	out := make(map[string]time.Duration)
	for k, v := range f.Snapshot() {
		sub, _, _ := strings.Cut(k, ".")
		out[sub] += v
	}
	return out
}

// TopN formats the n slowest steps of the current frame.
// Example: "renderer.sky:4.2ms, renderer.water:2.1ms"
func (f *Frame) TopN(n int) string { return formatTop(f.Snapshot(), n) }

// TopSubsystems formats the n slowest subsystems of the current frame.
// Example: "renderer:6.3ms, glfw:1.0ms"
func (f *Frame) TopSubsystems(n int) string { return formatTop(f.BySubsystem(), n) }

func formatTop(totals map[string]time.Duration, n int) string {
	names := make([]string, 0, len(totals))
	for k := range totals {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] == totals[names[j]] {
			return names[i] < names[j]
		}
		return totals[names[i]] > totals[names[j]]
	})
	parts := make([]string, 0, n)
	for _, name := range names[:min(n, len(names))] {
		ms := float64(totals[name].Microseconds()) / 1000.0
		parts = append(parts, name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
