package graphics

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Viewport is the window region the scene camera renders into.
type Viewport struct {
	Width           int
	Height          int
	Background      colorful.Color
	ClearEveryFrame bool
}

func (v *Viewport) SetBackgroundColour(c colorful.Color) { v.Background = c }
func (v *Viewport) SetClearEveryFrame(clear bool)        { v.ClearEveryFrame = clear }
