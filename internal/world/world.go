// Package world is the cell and reference model the renderer reacts to, with
// a small in-memory world used by the host and by tests.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTimeScale is the game-time to real-time ratio.
const DefaultTimeScale = 30

// World is an in-memory world state.
type World struct {
	Cells *CellStore

	player     *Reference
	playerCell *Cell
	timeScale  float32
}

func New() *World {
	return &World{
		Cells:     NewCellStore(),
		timeScale: DefaultTimeScale,
		player: &Reference{
			Handle: PlayerHandle,
			ID:     PlayerHandle,
			Kind:   KindActor,
			Scale:  1,
		},
	}
}

// Player returns the player reference.
func (w *World) Player() Ptr { return w.player }

// PlayerCell returns the cell the player is in, nil before the first move.
func (w *World) PlayerCell() *Cell { return w.playerCell }

// MovePlayer puts the player into cell at pos.
func (w *World) MovePlayer(cell *Cell, pos mgl32.Vec3) {
	if w.playerCell != nil {
		w.playerCell.Remove(w.player)
	}
	w.playerCell = cell
	if cell != nil {
		cell.Insert(w.player)
	}
	w.player.Position.Pos = pos
}

func (w *World) TimeScaleFactor() float32     { return w.timeScale }
func (w *World) SetTimeScaleFactor(f float32) { w.timeScale = f }

// IsUnderwater reports whether pos is below the water surface of cell.
func (w *World) IsUnderwater(cell *Cell, pos mgl32.Vec3) bool {
	if cell == nil || !cell.HasWater {
		return false
	}
	return pos.Z() < cell.WaterHeight
}

// LandExists reports whether the exterior at (x, y) has a land record.
func (w *World) LandExists(x, y int) bool { return w.Cells.LandExists(x, y) }

func (w *World) IsCellExterior() bool {
	return w.playerCell != nil && w.playerCell.Exterior
}

func (w *World) IsCellQuasiExterior() bool {
	return w.playerCell != nil && w.playerCell.QuasiExterior
}
