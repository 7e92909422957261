package camera

import (
	"math"

	"mini-mw/internal/graphics"
	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	minDistance      = 10
	maxDistance      = 800
	minOverrideDist  = 50
	defaultDistance  = 192
	defaultHeight    = 128
	mouseSensitivity = 0.1
)

// Rig implements the player camera: first person or orbiting behind the player
type Rig struct {
	camera *graphics.Camera
	scene  *graphics.Scene

	player *world.Reference
	node   *graphics.Node // pitch node, child of the player base node

	firstPerson bool
	preview     bool
	vanity      bool

	// distance is the preferred third person distance, current may be pulled
	// in by collisions for a single frame.
	distance float32
	current  float32
	adjusted bool
	nearest  bool

	yaw, pitch float64 // degrees
	height     float32
}

// New creates a first person rig for camera.
func New(scene *graphics.Scene, camera *graphics.Camera) *Rig {
	return &Rig{
		camera:      camera,
		scene:       scene,
		firstPerson: true,
		distance:    defaultDistance,
		current:     defaultDistance,
		height:      defaultHeight,
	}
}

// AttachTo follows the base node of ptr. The rig node is recreated when the
// player node changes.
func (r *Rig) AttachTo(ptr world.Ptr) {
	r.player = ptr
	if ptr.BaseNode == nil {
		return
	}
	if r.node != nil {
		r.scene.DestroyNode(r.node)
	}
	r.node = ptr.BaseNode.CreateChild("")
	r.node.SetPosition(mgl32.Vec3{0, 0, r.height})
	r.camera.AttachTo(r.node)
	r.apply()
}

func (r *Rig) Player() world.Ptr { return r.player }

func (r *Rig) SetHeight(h float32) {
	r.height = h
	if r.node != nil {
		r.node.SetPosition(mgl32.Vec3{0, 0, h})
	}
}

func (r *Rig) Height() float32 { return r.height }

func (r *Rig) IsFirstPerson() bool { return r.firstPerson }

// ToggleViewMode switches between first and third person.
func (r *Rig) ToggleViewMode() {
	r.firstPerson = !r.firstPerson
	r.apply()
}

// TogglePreviewMode orbits the camera around a standing player.
func (r *Rig) TogglePreviewMode(enable bool) {
	r.preview = enable
	r.apply()
}

func (r *Rig) ToggleVanityMode(enable bool) {
	r.vanity = enable
	r.apply()
}

func (r *Rig) thirdPerson() bool { return !r.firstPerson || r.preview || r.vanity }

// Rotate applies mouse movement in screen pixels.
func (r *Rig) Rotate(dx, dy float64) {
	r.yaw += dx * mouseSensitivity
	r.pitch += dy * mouseSensitivity

	// Constrain pitch
	if r.pitch > 89.0 {
		r.pitch = 89.0
	}
	if r.pitch < -89.0 {
		r.pitch = -89.0
	}
	r.apply()
}

// RotateTo sets yaw from rot.Z and pitch from rot.X, both in radians. adjust
// adds to the current rotation. It reports false while vanity or preview
// mode owns the camera.
func (r *Rig) RotateTo(rot mgl32.Vec3, adjust bool) bool {
	r.vanity = false
	yaw := float64(mgl32.RadToDeg(rot.Z()))
	pitch := float64(mgl32.RadToDeg(rot.X()))
	if adjust {
		yaw += r.yaw
		pitch += r.pitch
	}
	r.yaw = yaw
	r.pitch = max(-89, min(89, pitch))
	r.apply()
	return !r.vanity && !r.preview
}

// YawPitch returns the view rotation in degrees.
func (r *Rig) YawPitch() (float64, float64) { return r.yaw, r.pitch }

// SetCameraDistance places the camera dist units behind the player. adjust
// adds to the current distance; override also changes the preferred
// distance and keeps the camera at least minOverrideDist away.
func (r *Rig) SetCameraDistance(dist float32, adjust, override bool) {
	if !r.thirdPerson() {
		return
	}
	r.nearest = false
	v := dist
	if adjust {
		v += r.current
	}
	switch {
	case v > maxDistance:
		v = maxDistance
	case v < minDistance:
		v = minDistance
		r.nearest = true
	case override && v < minOverrideDist:
		v = minOverrideDist
	}
	r.current = v
	if override {
		r.distance = v
	} else {
		r.adjusted = true
	}
	r.apply()
}

// ResetCameraDistance restores the preferred distance after a collision
// pulled the camera in.
func (r *Rig) ResetCameraDistance() {
	if !r.adjusted {
		return
	}
	r.current = r.distance
	r.adjusted = false
	r.apply()
}

func (r *Rig) CameraDistance() float32 { return r.current }
func (r *Rig) IsNearest() bool         { return r.nearest }

// GetPosition returns the player's feet and the camera position. It reports
// true in first person, where no collision test is needed.
func (r *Rig) GetPosition() (focal, camera mgl32.Vec3, firstPerson bool) {
	camera = r.camera.RealPosition()
	switch {
	case r.player != nil && r.player.BaseNode != nil:
		focal = r.player.BaseNode.DerivedPosition()
	default:
		focal = camera
	}
	return focal, camera, !r.thirdPerson()
}

// GetFrontVector returns the looking direction; the world is Z-up with yaw 0
// facing +Y.
func (r *Rig) GetFrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(r.yaw))
	pt := mgl32.DegToRad(float32(r.pitch))
	fx := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fz := float32(math.Sin(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (r *Rig) apply() {
	yaw := mgl32.QuatRotate(-mgl32.DegToRad(float32(r.yaw)), mgl32.Vec3{0, 0, 1})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(float32(r.pitch)), mgl32.Vec3{1, 0, 0})
	if r.node != nil {
		r.node.SetOrientation(yaw.Mul(pitch))
		r.camera.Orientation = mgl32.QuatIdent()
	} else {
		r.camera.Orientation = yaw.Mul(pitch)
	}
	if r.thirdPerson() {
		r.camera.Position = mgl32.Vec3{0, -r.current, 0}
	} else {
		r.camera.Position = mgl32.Vec3{}
	}
}

// Update keeps the camera in sync with the player node.
func (r *Rig) Update(dt float32) error {
	if r.player != nil && r.player.BaseNode != nil && (r.node == nil || r.node.Parent() != r.player.BaseNode) {
		r.AttachTo(r.player)
	}
	r.apply()
	return nil
}

// Dispose detaches the camera from the player.
func (r *Rig) Dispose() {
	r.camera.AttachTo(nil)
	if r.node != nil {
		r.scene.DestroyNode(r.node)
		r.node = nil
	}
}
