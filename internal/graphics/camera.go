package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

type PolygonMode int

const (
	PolygonSolid PolygonMode = iota
	PolygonWireframe
)

// Camera handles the view and projection matrices
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
	PolygonMode PolygonMode

	// Position and Orientation are relative to the attached node, if any.
	Position    mgl32.Vec3
	Orientation mgl32.Quat

	node *Node
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   5.0,
		FarPlane:    1000.0,
		Orientation: mgl32.QuatIdent(),
	}
}

// AttachTo parents the camera to a scene node. A nil node detaches it.
func (c *Camera) AttachTo(n *Node) { c.node = n }

func (c *Camera) Node() *Node { return c.node }

// RealPosition returns the camera position in world space.
func (c *Camera) RealPosition() mgl32.Vec3 {
	if c.node == nil {
		return c.Position
	}
	return c.node.DerivedPosition().Add(c.node.DerivedOrientation().Rotate(c.Position))
}

// RealOrientation returns the camera orientation in world space.
func (c *Camera) RealOrientation() mgl32.Quat {
	if c.node == nil {
		return c.Orientation
	}
	return c.node.DerivedOrientation().Mul(c.Orientation)
}

func (c *Camera) SetFarClipDistance(d float32) { c.FarPlane = d }

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// GetViewMatrix looks along the camera's +Y forward axis; the world is Z-up.
func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	eye := c.RealPosition()
	q := c.RealOrientation()
	front := q.Rotate(mgl32.Vec3{0, 1, 0})
	up := q.Rotate(mgl32.Vec3{0, 0, 1})
	return mgl32.LookAtV(eye, eye.Add(front), up)
}

func (c *Camera) SetViewport(width, height int) {
	if height == 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}
