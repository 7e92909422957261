package terrain

import (
	"fmt"

	"mini-mw/internal/graphics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// CellSize is the edge length of an exterior cell in world units.
const CellSize = 8192

// Terrain implements the height-field patches of loaded exterior cells
type Terrain struct {
	scene   *graphics.Scene
	root    *graphics.Node
	patches map[world.GridCoord]*graphics.Node

	ambient colorful.Color
	diffuse colorful.Color
}

func New(scene *graphics.Scene) *Terrain {
	return &Terrain{
		scene:   scene,
		root:    scene.Root().CreateChild("terrain"),
		patches: make(map[world.GridCoord]*graphics.Node),
		ambient: graphics.Black,
		diffuse: graphics.White,
	}
}

// CellAdded loads the patch of an exterior cell. Loading a patch twice is a
// no-op.
func (t *Terrain) CellAdded(cell *world.Cell) {
	if !cell.Exterior {
		return
	}
	coord := world.GridCoord{X: cell.GridX, Y: cell.GridY}
	if _, ok := t.patches[coord]; ok {
		return
	}
	n := t.root.CreateChild(patchName(coord))
	n.SetPosition(mgl32.Vec3{float32(coord.X * CellSize), float32(coord.Y * CellSize), 0})
	t.patches[coord] = n
}

// CellRemoved unloads the patch of an exterior cell.
func (t *Terrain) CellRemoved(cell *world.Cell) {
	coord := world.GridCoord{X: cell.GridX, Y: cell.GridY}
	n, ok := t.patches[coord]
	if !ok {
		return
	}
	t.scene.DestroyNode(n)
	delete(t.patches, coord)
}

// Loaded reports whether the patch at (x, y) is present.
func (t *Terrain) Loaded(x, y int) bool {
	_, ok := t.patches[world.GridCoord{X: x, Y: y}]
	return ok
}

func (t *Terrain) Len() int { return len(t.patches) }

func (t *Terrain) SetAmbient(c colorful.Color) { t.ambient = c }
func (t *Terrain) SetDiffuse(c colorful.Color) { t.diffuse = c }
func (t *Terrain) Ambient() colorful.Color     { return t.ambient }
func (t *Terrain) Diffuse() colorful.Color     { return t.diffuse }

// Dispose unloads every patch.
func (t *Terrain) Dispose() {
	t.scene.DestroyNode(t.root)
	t.patches = make(map[world.GridCoord]*graphics.Node)
}

func patchName(c world.GridCoord) string {
	return fmt.Sprintf("terrain_%d_%d", c.X, c.Y)
}
