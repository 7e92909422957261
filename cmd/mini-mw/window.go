package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glWindow implements graphics.Window on top of a GLFW window
type glWindow struct {
	win *glfw.Window

	// windowed placement restored when leaving fullscreen
	x, y int

	triangles uint
	batches   uint
}

func newWindow(width, height int, fullscreen bool) (*glWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	var monitor *glfw.Monitor
	if fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(width, height, "mini-mw", monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	win.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(0)

	w := &glWindow{win: win}
	w.x, w.y = win.GetPos()
	return w, nil
}

func (w *glWindow) Width() int {
	width, _ := w.win.GetFramebufferSize()
	return width
}

func (w *glWindow) Height() int {
	_, height := w.win.GetFramebufferSize()
	return height
}

func (w *glWindow) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", width, height)
	}
	w.win.SetSize(width, height)
	return nil
}

func (w *glWindow) SetFullscreen(fullscreen bool, width, height int) error {
	if fullscreen == w.Fullscreen() {
		return nil
	}
	if fullscreen {
		w.x, w.y = w.win.GetPos()
		w.win.SetMonitor(glfw.GetPrimaryMonitor(), 0, 0, width, height, glfw.DontCare)
		return nil
	}
	w.win.SetMonitor(nil, w.x, w.y, width, height, glfw.DontCare)
	return nil
}

func (w *glWindow) Fullscreen() bool    { return w.win.GetMonitor() != nil }
func (w *glWindow) TriangleCount() uint { return w.triangles }
func (w *glWindow) BatchCount() uint    { return w.batches }

// recordFrame stores the draw statistics of the frame just presented.
func (w *glWindow) recordFrame(triangles, batches uint) {
	w.triangles, w.batches = triangles, batches
}
