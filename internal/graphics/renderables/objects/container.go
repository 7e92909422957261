package objects

import (
	"fmt"

	"mini-mw/internal/graphics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// container keeps one scene node per cell with the references of that cell
// attached below it.
type container struct {
	scene *graphics.Scene
	root  *graphics.Node
	cells map[*world.Cell]*graphics.Node
	refs  map[string]world.Ptr
}

func newContainer(scene *graphics.Scene, name string) container {
	return container{
		scene: scene,
		root:  scene.Root().CreateChild(name),
		cells: make(map[*world.Cell]*graphics.Node),
		refs:  make(map[string]world.Ptr),
	}
}

func (c *container) cellNode(cell *world.Cell) *graphics.Node {
	if n, ok := c.cells[cell]; ok {
		return n
	}
	n := c.root.CreateChild("")
	c.cells[cell] = n
	return n
}

// parentOf returns the node ptr is attached to. The player hangs below the
// container root so it survives the unloading of its cell.
func (c *container) parentOf(ptr world.Ptr) *graphics.Node {
	if ptr.Handle == world.PlayerHandle {
		return c.root
	}
	return c.cellNode(ptr.Cell)
}

// insert creates the base node of ptr below its cell node.
func (c *container) insert(ptr world.Ptr) error {
	if ptr.Cell == nil {
		return fmt.Errorf("reference %q has no cell", ptr.Handle)
	}
	if _, ok := c.scene.Node(ptr.Handle); ok {
		return fmt.Errorf("node %q already exists", ptr.Handle)
	}
	n := c.parentOf(ptr).CreateChild(ptr.Handle)
	place(n, ptr)
	ptr.BaseNode = n
	c.refs[ptr.Handle] = ptr
	return nil
}

func place(n *graphics.Node, ptr world.Ptr) {
	n.SetPosition(ptr.Position.Pos)
	n.SetOrientation(EulerToQuat(ptr.Position.Rot))
	s := ptr.Scale
	if s == 0 {
		s = 1
	}
	n.SetScale(mgl32.Vec3{s, s, s})
}

// EulerToQuat converts a reference rotation to an orientation, applying Z
// first, then Y, then X.
func EulerToQuat(rot mgl32.Vec3) mgl32.Quat {
	xr := mgl32.QuatRotate(-rot.X(), mgl32.Vec3{1, 0, 0})
	yr := mgl32.QuatRotate(-rot.Y(), mgl32.Vec3{0, 1, 0})
	zr := mgl32.QuatRotate(-rot.Z(), mgl32.Vec3{0, 0, 1})
	return xr.Mul(yr).Mul(zr)
}

// has reports whether ptr belongs to this container.
func (c *container) has(ptr world.Ptr) bool {
	_, ok := c.refs[ptr.Handle]
	return ok
}

// removeCell destroys the cell node and everything below it.
func (c *container) removeCell(cell *world.Cell) []world.Ptr {
	n, ok := c.cells[cell]
	if !ok {
		return nil
	}
	var removed []world.Ptr
	for h, ptr := range c.refs {
		inCell := ptr.BaseNode == nil && ptr.Cell == cell
		if inCell || (ptr.BaseNode != nil && ptr.BaseNode.Parent() == n) {
			ptr.BaseNode = nil
			delete(c.refs, h)
			removed = append(removed, ptr)
		}
	}
	c.scene.DestroyNode(n)
	delete(c.cells, cell)
	return removed
}

// deleteObject destroys the node of a single reference.
func (c *container) deleteObject(ptr world.Ptr) bool {
	if !c.has(ptr) {
		return false
	}
	if ptr.BaseNode != nil {
		c.scene.DestroyNode(ptr.BaseNode)
		ptr.BaseNode = nil
	}
	delete(c.refs, ptr.Handle)
	return true
}

// updateObjectCell attaches the already detached node of cur to its new cell.
func (c *container) updateObjectCell(old, cur world.Ptr) error {
	if cur.BaseNode == nil {
		return fmt.Errorf("reference %q has no base node", cur.Handle)
	}
	if err := c.parentOf(cur).AddChild(cur.BaseNode); err != nil {
		return err
	}
	delete(c.refs, old.Handle)
	c.refs[cur.Handle] = cur
	return nil
}

func (c *container) len() int { return len(c.refs) }

func (c *container) dispose() {
	c.scene.DestroyNode(c.root)
	for _, ptr := range c.refs {
		ptr.BaseNode = nil
	}
	c.cells = make(map[*world.Cell]*graphics.Node)
	c.refs = make(map[string]world.Ptr)
}
