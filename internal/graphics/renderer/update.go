package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// realTimeScale converts the world time scale into a controller time factor.
const realTimeScale = 30

// Update advances one frame. While paused only the camera, occlusion, video
// and the low-level renderer run, with animated materials frozen.
func (m *Manager) Update(dt float32, paused bool) error {
	defer m.prof.Track("renderer.update")()

	m.updateCameraDistance()

	if err := m.step("occlusion", func() error { return m.occlusion.Update(dt) }); err != nil {
		return err
	}
	if err := m.step("video", m.video.Update); err != nil {
		return err
	}
	if err := m.step("renderer", func() error { return m.rend.Update(dt) }); err != nil {
		return err
	}

	if paused {
		m.rend.SetTimeFactor(0)
		return nil
	}
	m.rend.SetTimeFactor(m.svc.World.TimeScaleFactor() / realTimeScale)

	if err := m.step("player", func() error { return m.rig.Update(dt) }); err != nil {
		return err
	}
	if err := m.step("actors", func() error { return m.actors.Update(dt) }); err != nil {
		return err
	}
	if err := m.step("objects", func() error { return m.objects.Update(dt) }); err != nil {
		return err
	}
	if err := m.step("sky", func() error { return m.sky.Update(dt) }); err != nil {
		return err
	}
	m.sky.SetGlare(m.occlusion.SunVisibility())

	func() {
		defer m.prof.Track("renderer.localmap")()
		player := m.svc.World.Player()
		orient := mgl32.QuatIdent()
		if player.BaseNode != nil {
			orient = player.BaseNode.DerivedOrientation()
		}
		m.localMap.UpdatePlayer(player.Position.Pos, orient)
	}()

	if m.water != nil {
		underwater := m.svc.World.IsUnderwater(m.svc.World.PlayerCell(), m.rend.Camera().RealPosition())
		m.water.UpdateUnderwater(underwater)
		if err := m.step("water", func() error { return m.water.Update(dt) }); err != nil {
			return err
		}
	}
	return nil
}

// step runs one timed update stage and names it in the returned error.
func (m *Manager) step(name string, fn func() error) error {
	defer m.prof.Track("renderer." + name)()
	if err := fn(); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}

// updateCameraDistance pulls a third person camera in front of whatever
// blocks the line from the player's head to the camera.
func (m *Manager) updateCameraDistance() {
	m.rig.ResetCameraDistance()
	orig, dest, firstPerson := m.rig.GetPosition()
	if firstPerson {
		return
	}
	orig[2] += m.rig.Height() * m.rend.Scene().Root().Scale().Z()
	if handle, fraction := m.svc.Physics.RayTest(orig, dest); handle != "" {
		m.rig.SetCameraDistance(fraction*orig.Sub(dest).Len(), false, false)
	}
}
