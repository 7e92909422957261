package graphics

import (
	"image"
	"image/color"
	"sync"
)

// TextureManager keeps named CPU-side textures the backend uploads lazily.
type TextureManager struct {
	mu       sync.RWMutex
	textures map[string]*image.NRGBA
}

func NewTextureManager() *TextureManager {
	return &TextureManager{textures: make(map[string]*image.NRGBA)}
}

// Texture returns the named texture, creating a blank one of the given size
// if it does not exist yet.
func (tm *TextureManager) Texture(name string, width, height int) *image.NRGBA {
	tm.mu.RLock()
	if tex, ok := tm.textures[name]; ok {
		tm.mu.RUnlock()
		return tex
	}
	tm.mu.RUnlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Double check locking
	if tex, ok := tm.textures[name]; ok {
		return tex
	}
	tex := image.NewNRGBA(image.Rect(0, 0, width, height))
	tm.textures[name] = tex
	return tex
}

// Lookup returns the named texture if it exists.
func (tm *TextureManager) Lookup(name string) (*image.NRGBA, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	tex, ok := tm.textures[name]
	return tex, ok
}

// Fill overwrites every texel of the named texture.
func (tm *TextureManager) Fill(name string, c color.NRGBA) {
	tex := tm.Texture(name, 1, 1)
	tm.mu.Lock()
	defer tm.mu.Unlock()
	b := tex.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			tex.SetNRGBA(x, y, c)
		}
	}
}

// Remove drops the named texture.
func (tm *TextureManager) Remove(name string) {
	tm.mu.Lock()
	delete(tm.textures, name)
	tm.mu.Unlock()
}
