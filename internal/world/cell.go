package world

import "fmt"

// Ambience is the lighting record of a cell. Colours are packed 0xAABBGGRR.
type Ambience struct {
	Ambient    uint32
	Sunlight   uint32
	Fog        uint32
	FogDensity float32
}

// Cell is a loaded world cell: an exterior grid square or a named interior.
type Cell struct {
	ID            string
	Name          string
	Exterior      bool
	QuasiExterior bool // interior that behaves like an exterior
	GridX, GridY  int

	HasWater    bool
	WaterHeight float32
	Ambience    Ambience

	Refs []*Reference
}

// NewExterior creates the exterior cell at grid (x, y).
func NewExterior(x, y int) *Cell {
	return &Cell{
		ID:       fmt.Sprintf("%d,%d", x, y),
		Exterior: true,
		GridX:    x,
		GridY:    y,
		HasWater: true,
		Ambience: Ambience{FogDensity: 1},
	}
}

// NewInterior creates a named interior cell.
func NewInterior(name string) *Cell {
	return &Cell{ID: name, Name: name, Ambience: Ambience{FogDensity: 1}}
}

func (c *Cell) String() string {
	if c.Exterior {
		return fmt.Sprintf("exterior(%d,%d)", c.GridX, c.GridY)
	}
	return c.Name
}

// Insert adds ref to the cell and sets its back pointer.
func (c *Cell) Insert(ref *Reference) {
	ref.Cell = c
	c.Refs = append(c.Refs, ref)
}

// Remove drops ref from the cell list.
func (c *Cell) Remove(ref *Reference) bool {
	for i, r := range c.Refs {
		if r == ref {
			c.Refs = append(c.Refs[:i], c.Refs[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the reference with the given handle.
func (c *Cell) Find(handle string) (*Reference, bool) {
	for _, r := range c.Refs {
		if r.Handle == handle {
			return r, true
		}
	}
	return nil, false
}
