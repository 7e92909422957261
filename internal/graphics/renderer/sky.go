package renderer

import "mini-mw/internal/graphics/renderables/sky"

// SkyEnable shows the sky and points the glare query at its sun.
func (m *Manager) SkyEnable() {
	m.sky.Enable()
	m.occlusion.SetSunNode(m.sky.SunNode())
}

func (m *Manager) SkyDisable() { m.sky.Disable() }

func (m *Manager) SkySetHour(hour float64)        { m.sky.SetHour(hour) }
func (m *Manager) SkySetDate(day, month int)      { m.sky.SetDate(day, month) }
func (m *Manager) SkyMasserPhase() sky.Phase      { return m.sky.MasserPhase() }
func (m *Manager) SkySecundaPhase() sky.Phase     { return m.sky.SecundaPhase() }
func (m *Manager) SkySetMasserState(p sky.Phase)  { m.sky.SetMasserPhase(p) }
func (m *Manager) SkySetSecundaState(p sky.Phase) { m.sky.SetSecundaPhase(p) }
func (m *Manager) SkySetMoonColour(red bool)      { m.sky.SetMoonColour(red) }
func (m *Manager) SetGlare(glare float32)         { m.sky.SetGlare(glare) }
