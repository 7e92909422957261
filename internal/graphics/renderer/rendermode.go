package renderer

import (
	"mini-mw/internal/graphics"
	"mini-mw/internal/graphics/renderables/debug"
)

// RenderMode is a debug view toggled from the console.
type RenderMode int

const (
	RenderCollisionDebug RenderMode = iota
	RenderWireframe
	RenderPathgrid
	RenderCompositors
	RenderBoundingBoxes
)

// ToggleRenderMode flips a debug view and returns whether it is now on.
func (m *Manager) ToggleRenderMode(mode RenderMode) bool {
	switch mode {
	case RenderCollisionDebug:
		return m.debug.ToggleRenderMode(debug.ModeCollision)
	case RenderPathgrid:
		return m.debug.ToggleRenderMode(debug.ModePathgrid)
	case RenderWireframe:
		cam := m.rend.Camera()
		if cam.PolygonMode == graphics.PolygonSolid {
			m.compositors.SetEnabled(false)
			cam.PolygonMode = graphics.PolygonWireframe
			return true
		}
		m.compositors.SetEnabled(true)
		cam.PolygonMode = graphics.PolygonSolid
		return false
	case RenderBoundingBoxes:
		scene := m.rend.Scene()
		scene.ShowBoundingBoxes(!scene.BoundingBoxesShown())
		return scene.BoundingBoxesShown()
	default:
		return m.compositors.Toggle()
	}
}

// TriangleBatchCount returns the statistics of the last frame, taken from
// the compositor chain when it renders the scene.
func (m *Manager) TriangleBatchCount() (triangles, batches uint) {
	if m.compositors.AnyCompositorEnabled() {
		return m.compositors.CountTrianglesBatches()
	}
	w := m.rend.Window()
	return w.TriangleCount(), w.BatchCount()
}
