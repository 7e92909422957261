package shadows

import (
	"fmt"

	"mini-mw/internal/config"
	"mini-mw/internal/graphics"
	"mini-mw/internal/log"
)

// Settings is the read side of the settings registry.
type Settings interface {
	GetBool(key, category string) bool
	GetInt(key, category string) int
	GetFloat(key, category string) float32
}

// Shadows implements the sun shadow maps
type Shadows struct {
	settings Settings
	tex      *graphics.TextureManager

	enabled     bool
	split       bool
	size        int
	distance    float32
	maps        int
	recreations int
}

func New(settings Settings, tex *graphics.TextureManager) *Shadows {
	return &Shadows{settings: settings, tex: tex}
}

// Recreate re-reads the shadow settings and reallocates the shadow maps.
func (s *Shadows) Recreate() {
	s.release()
	s.enabled = s.settings.GetBool("enabled", config.CategoryShadows)
	s.split = s.settings.GetBool("split", config.CategoryShadows)
	s.size = s.settings.GetInt("texture size", config.CategoryShadows)
	s.distance = s.settings.GetFloat("shadow distance", config.CategoryShadows)
	if s.split {
		s.distance = s.settings.GetFloat("split shadow distance", config.CategoryShadows)
	}
	if s.enabled {
		s.maps = 1
		if s.split {
			s.maps = 3
		}
		for i := 0; i < s.maps; i++ {
			s.tex.Texture(mapName(i), s.size, s.size)
		}
	}
	s.recreations++
	log.Debugf("shadows recreated: enabled=%v split=%v size=%d", s.enabled, s.split, s.size)
}

func (s *Shadows) release() {
	for i := 0; i < s.maps; i++ {
		s.tex.Remove(mapName(i))
	}
	s.maps = 0
}

func mapName(i int) string { return fmt.Sprintf("shadowmap_%d", i) }

func (s *Shadows) Enabled() bool     { return s.enabled }
func (s *Shadows) Maps() int         { return s.maps }
func (s *Shadows) Distance() float32 { return s.distance }
func (s *Shadows) Recreations() int  { return s.recreations }

func (s *Shadows) Dispose() { s.release() }
