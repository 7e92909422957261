package occlusion

import (
	"fmt"

	"mini-mw/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// fadeSpeed is how much visibility can change per second.
const fadeSpeed = 4

// RayTester finds the first body on a segment.
type RayTester interface {
	RayTest(from, to mgl32.Vec3) (string, float32)
}

// Query tracks how much of the sun is visible from the camera
type Query struct {
	tester  RayTester
	camera  *graphics.Camera
	sunNode *graphics.Node

	visibility float32
	supported  bool
}

func New(tester RayTester, camera *graphics.Camera) *Query {
	return &Query{tester: tester, camera: camera, supported: tester != nil}
}

// SetSunNode changes the node tested against; nil means no sun.
func (q *Query) SetSunNode(n *graphics.Node) { q.sunNode = n }

func (q *Query) SunNode() *graphics.Node { return q.sunNode }

// IsSupported reports whether the query can run at all.
func (q *Query) IsSupported() bool { return q.supported }

// Update fades the sun visibility towards the result of this frame's test.
func (q *Query) Update(dt float32) error {
	if dt < 0 {
		return fmt.Errorf("occlusion: negative frame duration %f", dt)
	}
	target := q.test()
	step := fadeSpeed * dt
	switch {
	case q.visibility < target:
		q.visibility = min(target, q.visibility+step)
	case q.visibility > target:
		q.visibility = max(target, q.visibility-step)
	}
	return nil
}

func (q *Query) test() float32 {
	if !q.supported || q.sunNode == nil || !q.sunNode.Visible() {
		return 0
	}
	from := q.camera.RealPosition()
	to := q.sunNode.DerivedPosition()
	if handle, _ := q.tester.RayTest(from, to); handle != "" {
		return 0
	}
	return 1
}

// SunVisibility returns the smoothed visibility in [0,1].
func (q *Query) SunVisibility() float32 { return q.visibility }

func (q *Query) Dispose() { q.sunNode = nil }
