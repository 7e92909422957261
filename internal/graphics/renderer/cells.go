package renderer

import (
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// CellAdded builds the static geometry, terrain and water of a loaded cell.
func (m *Manager) CellAdded(cell *world.Cell) {
	m.objects.BuildStaticGeometry(cell)
	m.debug.CellAdded(cell)
	if cell.Exterior {
		m.terrain.CellAdded(cell)
	}
	m.waterAdded(cell)
}

// CellRemoved drops everything rendered for an unloaded cell.
func (m *Manager) CellRemoved(cell *world.Cell) {
	m.objects.RemoveCell(cell)
	m.actors.RemoveCell(cell)
	m.debug.CellRemoved(cell)
	if cell.Exterior {
		m.terrain.CellRemoved(cell)
	}
}

// PreCellChange saves the fog of war of the cell the player leaves.
func (m *Manager) PreCellChange(cell *world.Cell) error {
	if err := m.localMap.SaveFogOfWar(cell); err != nil {
		return errors.Wrapf(err, "saving fog of war for %s", cell)
	}
	return nil
}

// waterAdded creates, re-binds or deactivates the water for cell. A cell has
// water when flagged, and an exterior also when it has no land.
func (m *Manager) waterAdded(cell *world.Cell) {
	if cell.HasWater || (cell.Exterior && !m.svc.World.LandExists(cell.GridX, cell.GridY)) {
		if m.water == nil {
			m.water = m.newWater(cell)
		} else {
			m.water.ChangeCell(cell)
		}
		m.water.SetActive(true)
	} else {
		m.RemoveWater()
	}
}

// RemoveWater deactivates the water surface; it is never destroyed.
func (m *Manager) RemoveWater() {
	if m.water != nil {
		m.water.SetActive(false)
	}
}

func (m *Manager) SetWaterHeight(height float32) {
	if m.water != nil {
		m.water.SetHeight(height)
	}
}

// ToggleWater flips water visibility and returns the new state.
func (m *Manager) ToggleWater() bool {
	if m.water == nil {
		return false
	}
	return m.water.Toggle()
}

// RequestMap prepares the fog of war of a cell for the map window.
func (m *Manager) RequestMap(cell *world.Cell) error {
	if cell.Exterior {
		return errors.Wrap(m.localMap.RequestExteriorMap(cell), "requesting exterior map")
	}
	lo, hi, ok := m.objects.Dimensions(cell)
	if !ok {
		lo, hi = mgl32.Vec2{}, mgl32.Vec2{}
	}
	return errors.Wrap(m.localMap.RequestInteriorMap(cell, lo, hi), "requesting interior map")
}

func (m *Manager) InteriorMapPosition(pos mgl32.Vec2) (nX, nY float32, x, y int) {
	return m.localMap.InteriorMapPosition(pos)
}

func (m *Manager) IsPositionExplored(nX, nY float32, x, y int, interior bool) bool {
	return m.localMap.IsPositionExplored(nX, nY, x, y, interior)
}
