package world

import (
	"sync"
)

// GridCoord addresses an exterior cell.
type GridCoord struct {
	X, Y int
}

// CellStore keeps exterior cells by grid and interiors by name.
type CellStore struct {
	mu        sync.RWMutex
	exteriors map[GridCoord]*Cell
	interiors map[string]*Cell
	land      map[GridCoord]bool
}

func NewCellStore() *CellStore {
	return &CellStore{
		exteriors: make(map[GridCoord]*Cell),
		interiors: make(map[string]*Cell),
		land:      make(map[GridCoord]bool),
	}
}

// Exterior returns the exterior cell at (x, y), creating it when create is set.
func (cs *CellStore) Exterior(x, y int, create bool) *Cell {
	coord := GridCoord{X: x, Y: y}
	cs.mu.RLock()
	cell, ok := cs.exteriors[coord]
	cs.mu.RUnlock()
	if ok || !create {
		return cell
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Double-check locking
	if existing, ok := cs.exteriors[coord]; ok {
		return existing
	}
	cell = NewExterior(x, y)
	cs.exteriors[coord] = cell
	return cell
}

// AddInterior registers an interior cell, replacing one with the same name.
func (cs *CellStore) AddInterior(c *Cell) {
	cs.mu.Lock()
	cs.interiors[c.Name] = c
	cs.mu.Unlock()
}

func (cs *CellStore) Interior(name string) (*Cell, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.interiors[name]
	return c, ok
}

// SetLand records whether a land record exists for the exterior at (x, y).
func (cs *CellStore) SetLand(x, y int, exists bool) {
	cs.mu.Lock()
	cs.land[GridCoord{X: x, Y: y}] = exists
	cs.mu.Unlock()
}

func (cs *CellStore) LandExists(x, y int) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.land[GridCoord{X: x, Y: y}]
}

// Len returns the number of known cells.
func (cs *CellStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.exteriors) + len(cs.interiors)
}
