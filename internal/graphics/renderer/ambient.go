package renderer

import (
	"fmt"

	"mini-mw/internal/graphics"
	"mini-mw/internal/log"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AmbientMode is the debug light level cycled by ToggleLight.
type AmbientMode int

const (
	AmbientNormal AmbientMode = iota
	AmbientRaised
	AmbientFull
)

// Next returns the following mode, wrapping to AmbientNormal.
func (a AmbientMode) Next() AmbientMode {
	if a == AmbientFull {
		return AmbientNormal
	}
	return a + 1
}

func (a AmbientMode) String() string {
	switch a {
	case AmbientNormal:
		return "normal"
	case AmbientRaised:
		return "raised"
	case AmbientFull:
		return "full"
	}
	return fmt.Sprintf("AmbientMode(%d)", int(a))
}

// sunDirection points the cell sun straight down; the world is Z-up.
var sunDirection = mgl32.Vec3{0, 0, -1}

// ConfigureAmbient takes ambient and sun colours from the cell.
func (m *Manager) ConfigureAmbient(cell *world.Cell) {
	m.ambientColour = graphics.FromABGR(cell.Ambience.Ambient)
	m.setAmbientMode()

	if m.sun == nil {
		m.sun = m.rend.Scene().CreateLight("sun")
	}
	m.sun.Diffuse = graphics.FromABGR(cell.Ambience.Sunlight)
	m.sun.Type = graphics.LightDirectional
	m.sun.Direction = sunDirection
}

// ToggleLight cycles the ambient mode and returns the new one.
func (m *Manager) ToggleLight() AmbientMode {
	m.ambientMode = m.ambientMode.Next()
	switch m.ambientMode {
	case AmbientNormal:
		log.Info("Setting lights to normal")
	case AmbientRaised:
		log.Info("Turning the lights up")
	case AmbientFull:
		log.Info("Turning the lights to full")
	}
	m.setAmbientMode()
	return m.ambientMode
}

func (m *Manager) AmbientMode() AmbientMode { return m.ambientMode }

func (m *Manager) setAmbientMode() {
	switch m.ambientMode {
	case AmbientNormal:
		m.setAmbientColour(m.ambientColour)
	case AmbientRaised:
		m.setAmbientColour(m.ambientColour.BlendRgb(graphics.White, 0.3))
	case AmbientFull:
		m.setAmbientColour(graphics.White)
	}
}

func (m *Manager) setAmbientColour(c colorful.Color) {
	m.rend.Scene().SetAmbientLight(c)
	m.terrain.SetAmbient(c)
}

// Sun returns the cell sun, nil before the first ConfigureAmbient.
func (m *Manager) Sun() *graphics.Light { return m.sun }

// SunEnable lets SetSunColour light the scene again. The light itself stays
// visible either way since shaders expect the first light to be directional.
func (m *Manager) SunEnable() { m.sunEnabled = true }

// SunDisable blacks the sun out.
func (m *Manager) SunDisable() {
	m.sunEnabled = false
	if m.sun != nil {
		m.sun.Diffuse = graphics.Black
		m.sun.Specular = graphics.Black
	}
}

// SetSunColour is ignored while the sun is disabled.
func (m *Manager) SetSunColour(c colorful.Color) {
	if !m.sunEnabled || m.sun == nil {
		return
	}
	m.sun.Diffuse = c
	m.sun.Specular = c
	m.terrain.SetDiffuse(c)
}

// SetSunDirection points the sun along dir, the direction towards the sun.
func (m *Manager) SetSunDirection(dir mgl32.Vec3) {
	if m.sun != nil {
		m.sun.Direction = dir.Mul(-1)
	}
	m.sky.SetSunDirection(dir)
}
