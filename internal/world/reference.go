package world

import (
	"mini-mw/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PlayerHandle is the scene node name of the player reference.
const PlayerHandle = "player"

type Kind int

const (
	KindStatic Kind = iota
	KindLight
	KindActor
)

func (k Kind) String() string {
	switch k {
	case KindLight:
		return "light"
	case KindActor:
		return "actor"
	default:
		return "static"
	}
}

// Position is a placement in a cell: translation plus Euler rotation in
// radians (x, y, z).
type Position struct {
	Pos mgl32.Vec3
	Rot mgl32.Vec3
}

// LightSource describes the light carried by a light reference.
type LightSource struct {
	Colour colorful.Color
	Radius float32
}

// Reference is one placed instance of an object in a cell.
type Reference struct {
	Handle string
	ID     string
	Kind   Kind
	Model  string
	Cell   *Cell

	Position Position
	Scale    float32

	// BaseNode is nil until the renderer instantiated the reference.
	BaseNode *graphics.Node
	Light    *LightSource
}

// Ptr is how collaborators pass references around.
type Ptr = *Reference

func (r *Reference) IsActor() bool { return r.Kind == KindActor }

// HasModel reports whether the reference has anything to render.
func (r *Reference) HasModel() bool { return r.Model != "" }
