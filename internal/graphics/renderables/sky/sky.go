package sky

import (
	"fmt"
	"math"

	"mini-mw/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Phase is a moon phase.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseWaxingCrescent
	PhaseFirstQuarter
	PhaseWaxingGibbous
	PhaseFull
	PhaseWaningGibbous
	PhaseThirdQuarter
	PhaseWaningCrescent
)

func (p Phase) String() string {
	names := [...]string{"new", "waxing crescent", "first quarter", "waxing gibbous",
		"full", "waning gibbous", "third quarter", "waning crescent"}
	if p < 0 || int(p) >= len(names) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return names[p]
}

const (
	// sunDistance places the sun billboard inside the far clip of any sane
	// viewing distance.
	sunDistance = 1000
	cloudSpeed  = 0.05
)

var (
	moonWhite = colorful.Color{R: 1, G: 1, B: 1}
	moonRed   = colorful.Color{R: 1, G: 0.38, B: 0.38}
)

// Sky renders the sky dome, sun and the two moons
type Sky struct {
	scene  *graphics.Scene
	camera *graphics.Camera

	root    *graphics.Node
	sunNode *graphics.Node
	created bool
	enabled bool

	hour         float64
	day, month   int
	masser       Phase
	secunda      Phase
	secundaRed   bool
	sunDirection mgl32.Vec3
	glare        float32
	cloudOffset  float32
}

// New creates a disabled sky. Nodes are built on the first Enable.
func New(scene *graphics.Scene, camera *graphics.Camera) *Sky {
	return &Sky{
		scene:        scene,
		camera:       camera,
		sunDirection: mgl32.Vec3{0, 0, 1},
		masser:       PhaseFull,
		secunda:      PhaseFull,
	}
}

func (s *Sky) create() {
	s.root = s.scene.Root().CreateChild("sky")
	s.sunNode = s.root.CreateChild("sky_sun")
	s.root.CreateChild("sky_masser")
	s.root.CreateChild("sky_secunda")
	s.created = true
	s.placeSun()
}

// Enable shows the sky, creating it if needed.
func (s *Sky) Enable() {
	if !s.created {
		s.create()
	}
	s.enabled = true
	s.root.SetVisible(true)
}

// Disable hides the sky.
func (s *Sky) Disable() {
	s.enabled = false
	if s.created {
		s.root.SetVisible(false)
	}
}

func (s *Sky) IsEnabled() bool { return s.enabled }

// Update follows the camera and scrolls the clouds.
func (s *Sky) Update(dt float32) error {
	if dt < 0 {
		return fmt.Errorf("sky: negative frame duration %f", dt)
	}
	if !s.enabled {
		return nil
	}
	s.root.SetPosition(s.camera.RealPosition())
	s.cloudOffset = float32(math.Mod(float64(s.cloudOffset+dt*cloudSpeed), 1))
	return nil
}

// SunNode returns the sun billboard node, nil before the first Enable.
func (s *Sky) SunNode() *graphics.Node { return s.sunNode }

// SetSunDirection points the sun; dir is the direction towards the sun.
func (s *Sky) SetSunDirection(dir mgl32.Vec3) {
	if dir.Len() == 0 {
		return
	}
	s.sunDirection = dir.Normalize()
	s.placeSun()
}

func (s *Sky) SunDirection() mgl32.Vec3 { return s.sunDirection }

func (s *Sky) placeSun() {
	if s.sunNode == nil {
		return
	}
	s.sunNode.SetPosition(s.sunDirection.Mul(sunDistance))
	// below the horizon
	s.sunNode.SetVisible(s.sunDirection.Z() > -0.1)
}

func (s *Sky) SetHour(hour float64) { s.hour = math.Mod(hour, 24) }
func (s *Sky) Hour() float64        { return s.hour }

func (s *Sky) SetDate(day, month int) { s.day, s.month = day, month }
func (s *Sky) Date() (int, int)       { return s.day, s.month }

func (s *Sky) SetMasserPhase(p Phase)  { s.masser = p }
func (s *Sky) SetSecundaPhase(p Phase) { s.secunda = p }
func (s *Sky) MasserPhase() Phase      { return s.masser }
func (s *Sky) SecundaPhase() Phase     { return s.secunda }

// SetMoonColour tints Secunda red during the blood moon.
func (s *Sky) SetMoonColour(red bool) { s.secundaRed = red }

func (s *Sky) SecundaColour() colorful.Color {
	if s.secundaRed {
		return moonRed
	}
	return moonWhite
}

// SetGlare sets the sun glare strength in [0,1].
func (s *Sky) SetGlare(glare float32) {
	s.glare = mgl32.Clamp(glare, 0, 1)
}

func (s *Sky) Glare() float32       { return s.glare }
func (s *Sky) CloudOffset() float32 { return s.cloudOffset }

// Dispose removes the sky nodes from the scene.
func (s *Sky) Dispose() {
	if s.created {
		s.scene.DestroyNode(s.root)
		s.root, s.sunNode, s.created = nil, nil, false
	}
	s.enabled = false
}
