package video

import (
	"fmt"
	"image"
	"image/color"

	"mini-mw/internal/graphics"
	"mini-mw/internal/log"

	"golang.org/x/image/draw"
)

// TextureName is the texture the overlay draws the current frame into.
const TextureName = "VideoTexture"

// Decoder opens movie files.
type Decoder interface {
	Open(name string) (Stream, error)
}

// Stream yields decoded frames; ok is false once the movie ended.
type Stream interface {
	Next() (frame image.Image, ok bool, err error)
	Close() error
}

// Player implements the full screen movie overlay
type Player struct {
	decoder Decoder
	tex     *graphics.TextureManager

	stream    Stream
	name      string
	allowSkip bool
	width     int
	height    int
	frames    int
}

func New(decoder Decoder, tex *graphics.TextureManager, width, height int) *Player {
	return &Player{decoder: decoder, tex: tex, width: width, height: height}
}

// PlayVideo starts a movie, stopping the current one.
func (p *Player) PlayVideo(name string, allowSkip bool) error {
	if p.decoder == nil {
		return fmt.Errorf("no video decoder to play %s", name)
	}
	p.StopVideo()
	s, err := p.decoder.Open(name)
	if err != nil {
		return fmt.Errorf("could not open video %s: %w", name, err)
	}
	p.stream, p.name, p.allowSkip, p.frames = s, name, allowSkip, 0
	p.blank()
	log.Infof("playing video %s", name)
	return nil
}

// Update decodes the next frame into the video texture.
func (p *Player) Update() error {
	if p.stream == nil {
		return nil
	}
	frame, ok, err := p.stream.Next()
	if err != nil {
		p.StopVideo()
		return fmt.Errorf("video %s: %w", p.name, err)
	}
	if !ok {
		p.StopVideo()
		return nil
	}
	dst := p.tex.Texture(TextureName, p.width, p.height)
	draw.ApproxBiLinear.Scale(dst, letterbox(dst.Bounds(), frame.Bounds()), frame, frame.Bounds(), draw.Src, nil)
	p.frames++
	return nil
}

// letterbox fits src into dst keeping its aspect ratio.
func letterbox(dst, src image.Rectangle) image.Rectangle {
	dw, dh := dst.Dx(), dst.Dy()
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	w, h := dw, dw*sh/sw
	if h > dh {
		w, h = dh*sw/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// StopVideo ends playback.
func (p *Player) StopVideo() {
	if p.stream == nil {
		return
	}
	if err := p.stream.Close(); err != nil {
		log.Warnf("closing video %s: %v", p.name, err)
	}
	p.stream = nil
	p.tex.Remove(TextureName)
}

// Skip stops the movie if the player may skip it.
func (p *Player) Skip() bool {
	if p.stream == nil || !p.allowSkip {
		return false
	}
	p.StopVideo()
	return true
}

func (p *Player) IsPlaying() bool { return p.stream != nil }
func (p *Player) Frames() int     { return p.frames }

// SetResolution resizes the overlay to the new window size.
func (p *Player) SetResolution(width, height int) {
	p.width, p.height = width, height
	if p.stream != nil {
		p.blank()
	}
}

// blank reallocates the video texture at the overlay size, filled black.
func (p *Player) blank() {
	p.tex.Remove(TextureName)
	p.tex.Texture(TextureName, p.width, p.height)
	p.tex.Fill(TextureName, color.NRGBA{A: 255})
}

func (p *Player) Resolution() (int, int) { return p.width, p.height }

func (p *Player) Dispose() { p.StopVideo() }
