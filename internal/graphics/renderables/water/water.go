package water

import (
	"fmt"
	"strings"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/log"
	"mini-mw/internal/world"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// State is the activation state of an existing water surface.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Visibility mask bits used by the reflection camera.
const (
	ReflectTerrain uint32 = 1 << iota
	ReflectStatics
	ReflectActors
	ReflectSky
)

const reflectionTexture = "WaterReflection"

// Materials is the part of the shader factory water drives.
type Materials interface {
	SetSharedParameter(name string, value any)
	SetTextureAlias(alias, texture string)
}

// Targets provides the compositor render targets water samples from.
type Targets interface {
	TextureName(compositor, target string, index int) string
}

// Settings is the read side of the settings registry.
type Settings interface {
	GetBool(key, category string) bool
	GetInt(key, category string) int
}

// Water implements the single water plane of the current cell
type Water struct {
	scene     *graphics.Scene
	tex       *graphics.TextureManager
	materials Materials
	targets   Targets
	settings  Settings

	node       *graphics.Node
	cell       *world.Cell
	state      State
	top        float32
	toggled    bool
	underwater bool
	background colorful.Color
	timer      float32
	emitters   map[string]bool

	shaderEnabled  bool
	refraction     bool
	rttSize        int
	reflectionMask uint32

	rttRebuilds int
	assignments int
}

// New creates an active water surface at the height of cell.
func New(scene *graphics.Scene, tex *graphics.TextureManager, cell *world.Cell, m Materials, t Targets, s Settings) *Water {
	w := &Water{
		scene:     scene,
		tex:       tex,
		materials: m,
		targets:   t,
		settings:  s,
		node:      scene.Root().CreateChild("water"),
		cell:      cell,
		state:     Active,
		top:       cell.WaterHeight,
		toggled:   true,
		emitters:  make(map[string]bool),
	}
	w.readSettings()
	w.createRTT()
	w.SetHeight(w.top)
	w.AssignTextures()
	w.applyVisibility()
	log.Debugf("water created in %s at %.1f", cell, w.top)
	return w
}

func (w *Water) readSettings() {
	w.shaderEnabled = w.settings.GetBool("shader", config.CategoryWater)
	w.refraction = w.settings.GetBool("refraction", config.CategoryWater)
	w.rttSize = w.settings.GetInt("rtt size", config.CategoryWater)
	w.reflectionMask = w.readReflectionMask()
}

func (w *Water) readReflectionMask() uint32 {
	var mask uint32
	if w.settings.GetBool("reflect terrain", config.CategoryWater) {
		mask |= ReflectTerrain
	}
	if w.settings.GetBool("reflect statics", config.CategoryWater) {
		mask |= ReflectStatics
	}
	if w.settings.GetBool("reflect actors", config.CategoryWater) {
		mask |= ReflectActors
	}
	if w.settings.GetBool("reflect sky", config.CategoryWater) {
		mask |= ReflectSky
	}
	return mask
}

// createRTT (re)allocates the reflection target. Without the shader there is
// nothing to render into.
func (w *Water) createRTT() {
	if w.tex == nil {
		return
	}
	w.tex.Remove(reflectionTexture)
	if w.shaderEnabled && w.rttSize > 0 {
		w.tex.Texture(reflectionTexture, w.rttSize, w.rttSize)
	}
	w.rttRebuilds++
}

// ChangeCell re-binds the surface to cell and moves it to the cell's height.
func (w *Water) ChangeCell(cell *world.Cell) {
	w.cell = cell
	w.SetHeight(cell.WaterHeight)
}

func (w *Water) Cell() *world.Cell { return w.cell }

// SetActive switches the surface on or off without destroying it.
func (w *Water) SetActive(active bool) {
	if active {
		w.state = Active
	} else {
		w.state = Inactive
	}
	w.applyVisibility()
}

func (w *Water) IsActive() bool { return w.state == Active }
func (w *Water) State() State   { return w.state }

// Toggle flips the user visibility switch and returns the new value.
func (w *Water) Toggle() bool {
	w.toggled = !w.toggled
	w.applyVisibility()
	return w.toggled
}

// Visible reports whether the surface is rendered.
func (w *Water) Visible() bool { return w.state == Active && w.toggled }

func (w *Water) applyVisibility() {
	w.node.SetVisible(w.Visible())
	w.materials.SetSharedParameter("waterEnabled", boolFloat(w.Visible()))
}

func (w *Water) SetHeight(height float32) {
	w.top = height
	p := w.node.Position()
	p[2] = height
	w.node.SetPosition(p)
	w.materials.SetSharedParameter("waterLevel", height)
}

func (w *Water) Height() float32 { return w.top }

// UpdateUnderwater records whether the camera is submerged.
func (w *Water) UpdateUnderwater(underwater bool) {
	w.underwater = underwater && w.Visible()
}

func (w *Water) IsUnderwater() bool { return w.underwater }

// SetViewportBackground sets the colour the reflection clears to.
func (w *Water) SetViewportBackground(c colorful.Color) { w.background = c }
func (w *Water) Background() colorful.Color             { return w.background }

// AddEmitter registers a reference that makes ripples.
func (w *Water) AddEmitter(handle string)    { w.emitters[handle] = true }
func (w *Water) RemoveEmitter(handle string) { delete(w.emitters, handle) }
func (w *Water) Emitters() int               { return len(w.emitters) }

// Update advances the wave timer and publishes the water parameters.
func (w *Water) Update(dt float32) error {
	if dt < 0 {
		return fmt.Errorf("water: negative frame duration %f", dt)
	}
	w.timer += dt
	w.materials.SetSharedParameter("waterTimer", w.timer)
	w.materials.SetSharedParameter("waterLevel", w.top)
	w.materials.SetSharedParameter("waterEnabled", boolFloat(w.Visible()))
	w.materials.SetSharedParameter("cameraUnderwater", boolFloat(w.underwater))
	return nil
}

// AssignTextures re-binds the texture aliases water samples from.
func (w *Water) AssignTextures() {
	w.materials.SetTextureAlias("WaterRefraction", w.targets.TextureName("gbuffer", "mrt_output", 0))
	w.materials.SetTextureAlias("WaterDepth", w.targets.TextureName("gbuffer", "mrt_output", 1))
	if w.shaderEnabled {
		w.materials.SetTextureAlias("WaterReflection", reflectionTexture)
	} else {
		w.materials.SetTextureAlias("WaterReflection", "")
	}
	w.assignments++
}

// TextureAssignments counts AssignTextures calls.
func (w *Water) TextureAssignments() int { return w.assignments }

// RTTRebuilds counts reflection target allocations.
func (w *Water) RTTRebuilds() int { return w.rttRebuilds }

func (w *Water) ReflectionMask() uint32 { return w.reflectionMask }

// ProcessChangedSettings reacts to the water settings of a change batch.
func (w *Water) ProcessChangedSettings(changes config.Changes) {
	rebuild := false
	for _, c := range changes {
		if c.Category != config.CategoryWater {
			continue
		}
		switch {
		case c.Key == "shader" || c.Key == "refraction" || c.Key == "rtt size":
			rebuild = true
		case strings.HasPrefix(c.Key, "reflect "):
			w.reflectionMask = w.readReflectionMask()
		}
	}
	if rebuild {
		w.readSettings()
		w.createRTT()
		w.AssignTextures()
	}
}

// Dispose removes the surface from the scene.
func (w *Water) Dispose() {
	w.materials.SetSharedParameter("waterEnabled", float32(0))
	if w.tex != nil {
		w.tex.Remove(reflectionTexture)
	}
	w.scene.DestroyNode(w.node)
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
