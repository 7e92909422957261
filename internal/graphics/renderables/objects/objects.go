package objects

import (
	"math"

	"mini-mw/internal/graphics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Objects implements the container of static and light references
type Objects struct {
	container

	lights        map[string]*graphics.Light
	lightsEnabled bool
	flicker       float64

	static   map[*world.Cell]int // batches per cell
	rebuilds int
}

func NewObjects(scene *graphics.Scene) *Objects {
	return &Objects{
		container:     newContainer(scene, "objects"),
		lights:        make(map[string]*graphics.Light),
		lightsEnabled: true,
		static:        make(map[*world.Cell]int),
	}
}

// InsertModel instantiates a static or light reference.
func (o *Objects) InsertModel(ptr world.Ptr) error {
	if err := o.insert(ptr); err != nil {
		return err
	}
	if ptr.Light != nil {
		l := o.scene.CreateLight(ptr.Handle)
		l.Diffuse = ptr.Light.Colour
		l.Position = ptr.BaseNode.DerivedPosition()
		l.Visible = o.lightsEnabled
		o.lights[ptr.Handle] = l
	}
	return nil
}

// BuildStaticGeometry batches the static references of cell.
func (o *Objects) BuildStaticGeometry(cell *world.Cell) {
	batches := 0
	for _, ptr := range o.refs {
		if ptr.Cell == cell && ptr.Kind == world.KindStatic {
			batches++
		}
	}
	o.static[cell] = batches
}

// RebuildStaticGeometry rebuilds the batches of every built cell.
func (o *Objects) RebuildStaticGeometry() {
	for cell := range o.static {
		o.BuildStaticGeometry(cell)
	}
	o.rebuilds++
}

// Rebuilds counts RebuildStaticGeometry calls.
func (o *Objects) Rebuilds() int { return o.rebuilds }

// StaticBatches returns the batch count built for cell.
func (o *Objects) StaticBatches(cell *world.Cell) (int, bool) {
	n, ok := o.static[cell]
	return n, ok
}

// RemoveCell drops everything the container holds for cell.
func (o *Objects) RemoveCell(cell *world.Cell) {
	for _, ptr := range o.removeCell(cell) {
		o.removeLight(ptr.Handle)
	}
	delete(o.static, cell)
}

// DeleteObject removes one reference; false if it is not an object.
func (o *Objects) DeleteObject(ptr world.Ptr) bool {
	if !o.deleteObject(ptr) {
		return false
	}
	o.removeLight(ptr.Handle)
	return true
}

func (o *Objects) removeLight(handle string) {
	if l, ok := o.lights[handle]; ok {
		o.scene.DestroyLight(l)
		delete(o.lights, handle)
	}
}

// UpdateObjectCell re-parents a moved reference. The node must be detached.
func (o *Objects) UpdateObjectCell(old, cur world.Ptr) error {
	if err := o.updateObjectCell(old, cur); err != nil {
		return err
	}
	if l, ok := o.lights[old.Handle]; ok {
		delete(o.lights, old.Handle)
		o.lights[cur.Handle] = l
	}
	return nil
}

func (o *Objects) EnableLights() {
	o.lightsEnabled = true
	for _, l := range o.lights {
		l.Visible = true
	}
}

func (o *Objects) DisableLights() {
	o.lightsEnabled = false
	for _, l := range o.lights {
		l.Visible = false
	}
}

func (o *Objects) LightsEnabled() bool { return o.lightsEnabled }

// Update makes the object lights flicker and follow their nodes.
func (o *Objects) Update(dt float32) error {
	o.flicker += float64(dt)
	k := 0.9 + 0.1*math.Sin(o.flicker*4)
	for h, l := range o.lights {
		ptr, ok := o.refs[h]
		if !ok || ptr.BaseNode == nil || ptr.Light == nil {
			continue
		}
		l.Position = ptr.BaseNode.DerivedPosition()
		c := ptr.Light.Colour
		l.Diffuse = colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
	}
	return nil
}

// Dimensions returns the XY bounds of the references placed in cell.
func (o *Objects) Dimensions(cell *world.Cell) (mgl32.Vec2, mgl32.Vec2, bool) {
	lo := mgl32.Vec2{math.MaxFloat32, math.MaxFloat32}
	hi := mgl32.Vec2{-math.MaxFloat32, -math.MaxFloat32}
	found := false
	for _, ptr := range o.refs {
		if ptr.Cell != cell {
			continue
		}
		p := ptr.Position.Pos
		lo = mgl32.Vec2{min(lo.X(), p.X()), min(lo.Y(), p.Y())}
		hi = mgl32.Vec2{max(hi.X(), p.X()), max(hi.Y(), p.Y())}
		found = true
	}
	return lo, hi, found
}

func (o *Objects) Len() int { return o.len() }

func (o *Objects) Dispose() {
	for h := range o.lights {
		o.removeLight(h)
	}
	o.dispose()
	o.static = make(map[*world.Cell]int)
}
