package renderer

import (
	"mini-mw/internal/config"
	"mini-mw/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// videoFolder is where movies live in the data files.
const videoFolder = "video/"

// WindowResized records the new size and resizes everything sized by the
// window. Settings changed by this are applied and handed to the input and
// UI listeners.
func (m *Manager) WindowResized(w graphics.Window) {
	defer m.prof.Track("renderer.windowResized")()

	s := m.svc.Settings
	width, height := w.Width(), w.Height()
	s.SetInt("resolution x", config.CategoryVideo, width)
	s.SetInt("resolution y", config.CategoryVideo, height)

	m.rend.AdjustViewport()
	m.compositors.SetViewport(width, height)
	m.compositors.Recreate()
	if m.water != nil {
		m.water.AssignTextures()
	}
	m.video.SetResolution(width, height)

	changes := s.Apply()
	if m.svc.Input != nil {
		m.svc.Input.ProcessChangedSettings(changes)
	}
	if m.svc.UI != nil {
		m.svc.UI.ProcessChangedSettings(changes)
	}
}

// WindowClosed asks the render loop to stop.
func (m *Manager) WindowClosed() {
	m.rend.QueueEndRendering()
}

// PlayVideo starts a movie from the video folder on the overlay.
func (m *Manager) PlayVideo(name string, allowSkip bool) error {
	return m.video.PlayVideo(videoFolder+name, allowSkip)
}

func (m *Manager) StopVideo()           { m.video.StopVideo() }
func (m *Manager) IsVideoPlaying() bool { return m.video.IsPlaying() }

// BoundingBoxToScreen returns the screen rectangle (minX, minY, maxX, maxY)
// enclosing the box lo..hi, in normalised coordinates centred on 0.5. Each
// corner is projected by dividing by its view depth, which approximates the
// perspective projection.
func (m *Manager) BoundingBoxToScreen(lo, hi mgl32.Vec3) mgl32.Vec4 {
	view := m.rend.Camera().GetViewMatrix()
	minX, maxX, minY, maxY := float32(1), float32(0), float32(1), float32(0)
	for i := 0; i < 8; i++ {
		corner := lo
		if i&1 != 0 {
			corner[0] = hi[0]
		}
		if i&2 != 0 {
			corner[1] = hi[1]
		}
		if i&4 != 0 {
			corner[2] = hi[2]
		}
		v := view.Mul4x1(corner.Vec4(1))
		depth := -v.Z() // the view looks down -Z
		x := v.X()/depth + 0.5
		y := v.Y()/depth + 0.5
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return mgl32.Vec4{minX, minY, maxX, maxY}
}
