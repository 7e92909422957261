package graphics

import (
	"fmt"
	"strings"
)

// Capabilities describes what the graphics backend supports.
type Capabilities struct {
	NumMultiRenderTargets int
}

// Renderer is the low-level rendering context: scene, camera, viewport and
// the host window, plus the controller clock driving animated materials.
type Renderer struct {
	api    string
	caps   Capabilities
	scene  *Scene
	camera *Camera
	vp     *Viewport
	window Window
	tex    *TextureManager

	timeFactor float32
	elapsed    float64
	stopping   bool
}

// NewRenderer creates a renderer for window. api names the backend
// ("OpenGL", "Direct3D11", ...).
func NewRenderer(api string, caps Capabilities, window Window) (*Renderer, error) {
	if window == nil {
		return nil, fmt.Errorf("renderer requires a window")
	}
	r := &Renderer{
		api:        api,
		caps:       caps,
		scene:      NewScene(),
		camera:     NewCamera(window.Width(), window.Height()),
		vp:         &Viewport{Width: window.Width(), Height: window.Height(), ClearEveryFrame: true},
		window:     window,
		tex:        NewTextureManager(),
		timeFactor: 1,
	}
	return r, nil
}

func (r *Renderer) API() string                { return r.api }
func (r *Renderer) IsOpenGL() bool             { return strings.Contains(r.api, "OpenGL") }
func (r *Renderer) Capabilities() Capabilities { return r.caps }
func (r *Renderer) Scene() *Scene              { return r.scene }
func (r *Renderer) Camera() *Camera            { return r.camera }
func (r *Renderer) Viewport() *Viewport        { return r.vp }
func (r *Renderer) Window() Window             { return r.window }
func (r *Renderer) Textures() *TextureManager  { return r.tex }
func (r *Renderer) TimeFactor() float32        { return r.timeFactor }
func (r *Renderer) SetTimeFactor(f float32)    { r.timeFactor = f }
func (r *Renderer) ControllerTime() float64    { return r.elapsed }
func (r *Renderer) SetFov(fov float32)         { r.camera.FOV = fov }
func (r *Renderer) QueueEndRendering()         { r.stopping = true }
func (r *Renderer) EndRenderingQueued() bool   { return r.stopping }

// Update advances the controller clock. Controllers run scaled by the time
// factor so a zero factor freezes every animated material.
func (r *Renderer) Update(dt float32) error {
	if dt < 0 {
		return fmt.Errorf("negative frame duration %f", dt)
	}
	r.elapsed += float64(dt * r.timeFactor)
	return nil
}

// AdjustViewport syncs viewport size and camera aspect with the window.
func (r *Renderer) AdjustViewport() {
	r.vp.Width = r.window.Width()
	r.vp.Height = r.window.Height()
	r.camera.SetViewport(r.vp.Width, r.vp.Height)
}
