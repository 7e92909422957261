package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned collision box in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b AABB) Center() mgl32.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	Handle   string
	Fraction float32 // 0..1 along the tested segment
	Hit      bool
}

// World is a set of named collision boxes.
type World struct {
	bodies    map[string]AABB
	debugDraw bool
}

func NewWorld() *World {
	return &World{bodies: make(map[string]AABB)}
}

// Add inserts or replaces the body named handle.
func (w *World) Add(handle string, box AABB) { w.bodies[handle] = box }

// Remove deletes a body; unknown handles are ignored.
func (w *World) Remove(handle string) { delete(w.bodies, handle) }

// Move translates a body so its box is centred on pos.
func (w *World) Move(handle string, pos mgl32.Vec3) bool {
	b, ok := w.bodies[handle]
	if !ok {
		return false
	}
	half := b.Max.Sub(b.Min).Mul(0.5)
	w.bodies[handle] = AABB{Min: pos.Sub(half), Max: pos.Add(half)}
	return true
}

func (w *World) Len() int { return len(w.bodies) }

// ToggleDebugRendering flips collision-shape drawing and returns the new state.
func (w *World) ToggleDebugRendering() bool {
	w.debugDraw = !w.debugDraw
	return w.debugDraw
}

func (w *World) DebugRendering() bool { return w.debugDraw }

// Raycast finds the closest body hit by the segment from -> to.
func (w *World) Raycast(from, to mgl32.Vec3) RaycastResult {
	result := RaycastResult{Hit: false}
	dir := to.Sub(from)

	// Sorted iteration keeps ties deterministic.
	handles := make([]string, 0, len(w.bodies))
	for h := range w.bodies {
		handles = append(handles, h)
	}
	sort.Strings(handles)

	best := float32(math.MaxFloat32)
	for _, h := range handles {
		t, ok := segmentBox(from, dir, w.bodies[h])
		if ok && t < best {
			best = t
			result = RaycastResult{Handle: h, Fraction: t, Hit: true}
		}
	}
	return result
}

// RayTest reports the handle of the closest hit and the hit fraction along
// the segment. An empty handle means nothing was hit.
func (w *World) RayTest(from, to mgl32.Vec3) (string, float32) {
	r := w.Raycast(from, to)
	if !r.Hit {
		return "", 1
	}
	return r.Handle, r.Fraction
}

// segmentBox is the slab test restricted to t in [0,1]. A segment starting
// inside the box hits at t=0.
func segmentBox(origin, dir mgl32.Vec3, b AABB) (float32, bool) {
	tmin, tmax := float32(0), float32(1)
	for i := 0; i < 3; i++ {
		if abs(dir[i]) < 1e-8 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
