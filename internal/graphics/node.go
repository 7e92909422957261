package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene-graph node. Transforms are relative to the parent.
type Node struct {
	name     string
	scene    *Scene
	parent   *Node
	children []*Node

	position    mgl32.Vec3
	scale       mgl32.Vec3
	orientation mgl32.Quat
	visible     bool
}

func newNode(name string, scene *Scene) *Node {
	return &Node{
		name:        name,
		scene:       scene,
		scale:       mgl32.Vec3{1, 1, 1},
		orientation: mgl32.QuatIdent(),
		visible:     true,
	}
}

func (n *Node) Name() string      { return n.name }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// CreateChild creates a named child and registers it with the owning scene.
func (n *Node) CreateChild(name string) *Node {
	c := newNode(name, n.scene)
	if n.scene != nil {
		n.scene.register(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// AddChild attaches an already detached node.
func (n *Node) AddChild(c *Node) error {
	if c.parent != nil {
		return fmt.Errorf("node %q already attached to %q", c.name, c.parent.name)
	}
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// RemoveChild detaches c and reports whether it was a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

func (n *Node) Position() mgl32.Vec3        { return n.position }
func (n *Node) SetPosition(p mgl32.Vec3)    { n.position = p }
func (n *Node) Scale() mgl32.Vec3           { return n.scale }
func (n *Node) SetScale(s mgl32.Vec3)       { n.scale = s }
func (n *Node) Orientation() mgl32.Quat     { return n.orientation }
func (n *Node) SetOrientation(q mgl32.Quat) { n.orientation = q.Normalize() }
func (n *Node) Visible() bool               { return n.visible }
func (n *Node) SetVisible(v bool)           { n.visible = v }

// DerivedOrientation returns the orientation in world space.
func (n *Node) DerivedOrientation() mgl32.Quat {
	if n.parent == nil {
		return n.orientation
	}
	return n.parent.DerivedOrientation().Mul(n.orientation)
}

// DerivedScale returns the accumulated scale in world space.
func (n *Node) DerivedScale() mgl32.Vec3 {
	if n.parent == nil {
		return n.scale
	}
	ps := n.parent.DerivedScale()
	return mgl32.Vec3{ps[0] * n.scale[0], ps[1] * n.scale[1], ps[2] * n.scale[2]}
}

// DerivedPosition returns the position in world space.
func (n *Node) DerivedPosition() mgl32.Vec3 {
	if n.parent == nil {
		return n.position
	}
	ps := n.parent.DerivedScale()
	local := mgl32.Vec3{ps[0] * n.position[0], ps[1] * n.position[1], ps[2] * n.position[2]}
	return n.parent.DerivedPosition().Add(n.parent.DerivedOrientation().Rotate(local))
}

// Walk visits n and all descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
