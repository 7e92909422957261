package renderer

import (
	"math"

	"mini-mw/internal/graphics/renderables/objects"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// AddObject instantiates a reference in the matching container.
func (m *Manager) AddObject(ptr world.Ptr) error {
	var err error
	if ptr.IsActor() {
		err = m.actors.InsertActor(ptr)
	} else {
		err = m.objects.InsertModel(ptr)
	}
	return errors.Wrapf(err, "adding %s %q", ptr.Kind, ptr.Handle)
}

// RemoveObject destroys the node of a reference. Objects are tried first,
// then actors.
func (m *Manager) RemoveObject(ptr world.Ptr) bool {
	if m.water != nil {
		m.water.RemoveEmitter(ptr.Handle)
	}
	if m.objects.DeleteObject(ptr) {
		return true
	}
	return m.actors.DeleteObject(ptr)
}

// UpdateObjectCell moves the node of old under the cell of cur. The node is
// detached here exactly once; the containers only attach.
func (m *Manager) UpdateObjectCell(old, cur world.Ptr) error {
	node, ok := m.rend.Scene().Node(old.Handle)
	if !ok {
		return errors.Errorf("no scene node for %q", old.Handle)
	}
	node.Detach()
	cur.BaseNode = node

	var err error
	if old.IsActor() {
		err = m.actors.UpdateObjectCell(old, cur)
	} else {
		err = m.objects.UpdateObjectCell(old, cur)
	}
	return errors.Wrapf(err, "moving %q to %s", cur.Handle, cur.Cell)
}

func (m *Manager) MoveObject(ptr world.Ptr, pos mgl32.Vec3) {
	if ptr.BaseNode != nil {
		ptr.BaseNode.SetPosition(pos)
	}
}

func (m *Manager) ScaleObject(ptr world.Ptr, scale mgl32.Vec3) {
	if ptr.BaseNode != nil {
		ptr.BaseNode.SetScale(scale)
	}
}

// RotateObject applies rot (radians) to a reference and returns the
// resulting rotation. adjust makes rot relative to the stored rotation. The
// bool is false when the camera refused to follow a player rotation.
func (m *Manager) RotateObject(ptr world.Ptr, rot mgl32.Vec3, adjust bool) (mgl32.Vec3, bool) {
	active := ptr.BaseNode != nil
	isPlayer := active && ptr.Handle == world.PlayerHandle
	force := true

	switch {
	case isPlayer:
		force = m.rig.RotateTo(rot, adjust)
		yaw, pitch := m.rig.YawPitch()
		rot[0] = -mgl32.DegToRad(float32(pitch))
		rot[2] = mgl32.DegToRad(float32(yaw))
	case active:
		orient := objects.EulerToQuat(rot)
		if adjust {
			orient = orient.Mul(objects.EulerToQuat(ptr.Position.Rot))
		}
		ax, ay, az := eulerXYZ(orient)
		rot = mgl32.Vec3{-ax, -ay, -az}
		ptr.BaseNode.SetOrientation(orient)
	case adjust:
		rot = rot.Add(ptr.Position.Rot)
	}
	return rot, force
}

// eulerXYZ decomposes an orientation into X, Y, Z angles with the matrix
// R = Rx * Ry * Rz.
func eulerXYZ(q mgl32.Quat) (float32, float32, float32) {
	r := q.Normalize().Mat4()
	p := math.Asin(float64(mgl32.Clamp(r.At(0, 2), -1, 1)))
	if p < math.Pi/2 && p > -math.Pi/2 {
		y := math.Atan2(float64(-r.At(1, 2)), float64(r.At(2, 2)))
		z := math.Atan2(float64(-r.At(0, 1)), float64(r.At(0, 0)))
		return float32(y), float32(p), float32(z)
	}
	// gimbal lock: only the sum of X and Z is defined
	x := math.Atan2(float64(r.At(1, 0)), float64(r.At(1, 1)))
	if p < 0 {
		x = -x
	}
	return float32(x), float32(p), 0
}

// RenderPlayer instantiates the player and attaches the camera to it.
func (m *Manager) RenderPlayer(ptr world.Ptr) error {
	if ptr.BaseNode == nil {
		if err := m.actors.InsertActor(ptr); err != nil {
			return errors.Wrap(err, "rendering player")
		}
	}
	m.rig.AttachTo(ptr)
	if m.water != nil {
		m.water.RemoveEmitter(ptr.Handle)
		m.water.AddEmitter(ptr.Handle)
	}
	return nil
}

// PlayerData returns the eye position of the player and the sight angles
// in radians.
func (m *Manager) PlayerData() (eye mgl32.Vec3, pitch, yaw float32) {
	player := m.svc.World.Player()
	eye = player.Position.Pos
	if player.BaseNode != nil {
		eye = player.BaseNode.DerivedPosition()
	}
	eye[2] += m.rig.Height()
	y, p := m.rig.YawPitch()
	return eye, mgl32.DegToRad(float32(p)), mgl32.DegToRad(float32(y))
}

// AttachCameraTo makes the camera follow ptr.
func (m *Manager) AttachCameraTo(ptr world.Ptr) { m.rig.AttachTo(ptr) }

// SetCameraDistance forwards to the camera rig.
func (m *Manager) SetCameraDistance(dist float32, adjust, override bool) {
	m.rig.SetCameraDistance(dist, adjust, override)
}

// Animation returns the animation state of an actor.
func (m *Manager) Animation(ptr world.Ptr) (*objects.Animation, bool) {
	return m.actors.Animation(ptr)
}

func (m *Manager) EnableLights() {
	m.objects.EnableLights()
	m.SunEnable()
}

func (m *Manager) DisableLights() {
	m.objects.DisableLights()
	m.SunDisable()
}
