package renderer

import (
	"mini-mw/internal/config"
	"mini-mw/internal/graphics/material"

	"github.com/pkg/errors"
)

// ProcessChangedSettings applies a batch of changed settings. Static
// geometry is rebuilt at most once and the window is resized at most once
// per batch. The water surface receives the same batch afterwards.
func (m *Manager) ProcessChangedSettings(changes config.Changes) error {
	defer m.prof.Track("renderer.settings")()

	s := m.svc.Settings
	mat := m.svc.Materials
	changeRes := false
	rebuild := false

	for _, c := range changes {
		switch {
		case c.Is(config.CategoryGUI, "menu transparency"):
			m.setMenuTransparency(s.GetFloat("menu transparency", config.CategoryGUI))

		case c.Is(config.CategoryViewingDistance, "max viewing distance"):
			// exteriors take their fog from the weather
			if cell := m.svc.World.PlayerCell(); cell != nil &&
				!m.svc.World.IsCellExterior() && !m.svc.World.IsCellQuasiExterior() {
				m.ConfigureFog(cell)
			}

		case c.Is(config.CategoryVideo, "resolution x"),
			c.Is(config.CategoryVideo, "resolution y"),
			c.Is(config.CategoryVideo, "fullscreen"):
			changeRes = true

		case c.Is(config.CategoryGeneral, "field of view"):
			m.rend.SetFov(s.GetFloat("field of view", config.CategoryGeneral))

		case c.Is(config.CategoryGeneral, "texture filtering"),
			c.Is(config.CategoryGeneral, "anisotropy"):
			m.applyTextureFiltering()

		case c.Is(config.CategoryWater, "shader"):
			m.applyCompositors()
			mat.SetGlobalSetting("mrt_output", boolString(m.useMRT()))
			mat.SetGlobalSetting("simple_water", boolString(!s.GetBool("shader", config.CategoryWater)))
			rebuild = true
			m.rend.Viewport().SetClearEveryFrame(true)

		case c.Is(config.CategoryWater, "underwater effect"):
			mat.SetGlobalSetting("underwater_effects", boolString(s.GetBool("underwater effect", config.CategoryWater)))
			rebuild = true

		case c.Is(config.CategoryObjects, "shaders"):
			mat.SetShadersEnabled(s.GetBool("shaders", config.CategoryObjects))
			rebuild = true

		case c.Is(config.CategoryVideo, "gamma"):
			mat.SetSharedParameter("gammaCorrection", s.GetFloat("gamma", config.CategoryVideo))

		case c.Is(config.CategoryGeneral, "shader mode"):
			mat.SetCurrentLanguage(material.ParseLanguage(s.GetString("shader mode", config.CategoryGeneral)))
			rebuild = true

		case c.Category == config.CategoryShadows:
			m.shadows.Recreate()
			rebuild = true
		}
	}

	if changeRes {
		if err := m.applyResolution(); err != nil {
			return err
		}
	}
	if rebuild {
		m.objects.RebuildStaticGeometry()
	}
	if m.water != nil {
		m.water.ProcessChangedSettings(changes)
	}
	return nil
}

// applyResolution resizes the window to the configured size if it differs,
// then applies the fullscreen flag.
func (m *Manager) applyResolution() error {
	s := m.svc.Settings
	x := s.GetInt("resolution x", config.CategoryVideo)
	y := s.GetInt("resolution y", config.CategoryVideo)
	fullscreen := s.GetBool("fullscreen", config.CategoryVideo)

	w := m.rend.Window()
	if w.Width() != x || w.Height() != y {
		if err := w.Resize(x, y); err != nil {
			return errors.Wrapf(err, "resizing window to %dx%d", x, y)
		}
	}
	if err := w.SetFullscreen(fullscreen, x, y); err != nil {
		return errors.Wrap(err, "switching fullscreen")
	}
	return nil
}
