package renderer

import (
	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/world"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// underwaterBackground is the clear colour of the water views in a cell.
var underwaterBackground = colorful.Color{R: 0.8, G: 0.9, B: 1.0}

// ConfigureFog sets fog from the cell ambience.
func (m *Manager) ConfigureFog(cell *world.Cell) {
	m.ConfigureFogParams(cell.Ambience.FogDensity, graphics.FromABGR(cell.Ambience.Fog))
	if m.water != nil {
		m.water.SetViewportBackground(underwaterBackground)
	}
}

// ConfigureFogParams sets linear fog scaled by the viewing distance. The
// density must be positive.
func (m *Manager) ConfigureFogParams(density float32, colour colorful.Color) {
	s := m.svc.Settings
	maxDist := s.GetFloat("max viewing distance", config.CategoryViewingDistance)

	m.fogColour = colour
	m.fogStart = maxDist / density * s.GetFloat("fog start factor", config.CategoryViewingDistance)
	m.fogEnd = maxDist / density * s.GetFloat("fog end factor", config.CategoryViewingDistance)

	m.rend.Scene().SetFog(graphics.FogLinear, colour, 0, m.fogStart, m.fogEnd)
	m.rend.Viewport().SetBackgroundColour(colour)
	if m.water != nil {
		m.water.SetViewportBackground(colour)
	}
	m.svc.Materials.SetSharedParameter("viewportBackground", graphics.Vec3(colour))
	m.rend.Camera().SetFarClipDistance(maxDist / density)
}

// FogRange returns the current fog start and end distances.
func (m *Manager) FogRange() (float32, float32) { return m.fogStart, m.fogEnd }

func (m *Manager) FogColour() colorful.Color { return m.fogColour }
