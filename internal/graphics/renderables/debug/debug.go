package debug

import (
	"mini-mw/internal/graphics"
	"mini-mw/internal/world"
)

// Mode selects a debug visualisation.
type Mode int

const (
	ModeCollision Mode = iota
	ModePathgrid
)

// CollisionDrawer switches drawing of collision shapes.
type CollisionDrawer interface {
	ToggleDebugRendering() bool
}

// Overlay implements the pathgrid and collision debug views
type Overlay struct {
	scene     *graphics.Scene
	collision CollisionDrawer

	root     *graphics.Node
	pathgrid bool
	cells    map[*world.Cell]*graphics.Node
	loaded   []*world.Cell
}

func New(scene *graphics.Scene, collision CollisionDrawer) *Overlay {
	return &Overlay{
		scene:     scene,
		collision: collision,
		root:      scene.Root().CreateChild("debug"),
		cells:     make(map[*world.Cell]*graphics.Node),
	}
}

// ToggleRenderMode flips a view and returns its new state.
func (o *Overlay) ToggleRenderMode(mode Mode) bool {
	switch mode {
	case ModeCollision:
		if o.collision == nil {
			return false
		}
		return o.collision.ToggleDebugRendering()
	case ModePathgrid:
		o.pathgrid = !o.pathgrid
		if o.pathgrid {
			for _, c := range o.loaded {
				o.enableCell(c)
			}
		} else {
			for c := range o.cells {
				o.disableCell(c)
			}
		}
		return o.pathgrid
	}
	return false
}

func (o *Overlay) PathgridEnabled() bool { return o.pathgrid }

// CellAdded shows the pathgrid of cell when pathgrid rendering is on.
func (o *Overlay) CellAdded(cell *world.Cell) {
	o.loaded = append(o.loaded, cell)
	if o.pathgrid {
		o.enableCell(cell)
	}
}

func (o *Overlay) CellRemoved(cell *world.Cell) {
	for i, c := range o.loaded {
		if c == cell {
			o.loaded = append(o.loaded[:i], o.loaded[i+1:]...)
			break
		}
	}
	o.disableCell(cell)
}

func (o *Overlay) enableCell(cell *world.Cell) {
	if _, ok := o.cells[cell]; ok {
		return
	}
	n := o.root.CreateChild("")
	// one marker per reference stands in for the path nodes
	for _, ref := range cell.Refs {
		m := n.CreateChild("")
		m.SetPosition(ref.Position.Pos)
	}
	o.cells[cell] = n
}

func (o *Overlay) disableCell(cell *world.Cell) {
	if n, ok := o.cells[cell]; ok {
		o.scene.DestroyNode(n)
		delete(o.cells, cell)
	}
}

// Shown returns the number of cells with a visible pathgrid.
func (o *Overlay) Shown() int { return len(o.cells) }

func (o *Overlay) Dispose() {
	o.scene.DestroyNode(o.root)
	o.cells = make(map[*world.Cell]*graphics.Node)
	o.loaded = nil
}
