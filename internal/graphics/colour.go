package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	Black = colorful.Color{R: 0, G: 0, B: 0}
	White = colorful.Color{R: 1, G: 1, B: 1}
)

// FromABGR decodes a colour packed as 0xAABBGGRR, the layout cell ambience
// records use on disk. Alpha is dropped.
func FromABGR(packed uint32) colorful.Color {
	return colorful.Color{
		R: float64(packed&0xff) / 255.0,
		G: float64((packed>>8)&0xff) / 255.0,
		B: float64((packed>>16)&0xff) / 255.0,
	}
}

// ToABGR packs a colour back into the cell record layout with full alpha.
func ToABGR(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return 0xff000000 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Vec3 converts a colour into the shader-facing vector form.
func Vec3(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
