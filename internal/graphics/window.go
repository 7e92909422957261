package graphics

import "fmt"

// Window is the render target the host owns. Implementations wrap the
// platform window; HeadlessWindow serves tests and offscreen runs.
type Window interface {
	Width() int
	Height() int
	Resize(width, height int) error
	SetFullscreen(fullscreen bool, width, height int) error
	Fullscreen() bool
	TriangleCount() uint
	BatchCount() uint
}

// HeadlessWindow is an in-memory Window.
type HeadlessWindow struct {
	width, height int
	fullscreen    bool

	Triangles uint
	Batches   uint
	Resizes   int
}

func NewHeadlessWindow(width, height int) *HeadlessWindow {
	return &HeadlessWindow{width: width, height: height}
}

func (w *HeadlessWindow) Width() int  { return w.width }
func (w *HeadlessWindow) Height() int { return w.height }

func (w *HeadlessWindow) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", width, height)
	}
	w.width, w.height = width, height
	w.Resizes++
	return nil
}

func (w *HeadlessWindow) SetFullscreen(fullscreen bool, width, height int) error {
	w.fullscreen = fullscreen
	return nil
}

func (w *HeadlessWindow) Fullscreen() bool    { return w.fullscreen }
func (w *HeadlessWindow) TriangleCount() uint { return w.Triangles }
func (w *HeadlessWindow) BatchCount() uint    { return w.Batches }
