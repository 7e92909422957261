package localmap

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

// ErrNoFog is returned when no fog-of-war was recorded for a tile.
var ErrNoFog = errors.New("localmap: no fog of war recorded")

// Store persists fog-of-war bitmaps.
type Store interface {
	Save(key TileKey, fog *image.Gray) error
	Load(key TileKey) (*image.Gray, error)
}

// DirStore keeps one PNG per tile in a directory.
type DirStore struct {
	Dir string
}

var fileNameReplacer = strings.NewReplacer(" ", "_", ",", "", "'", "", "/", "_", "\\", "_", ":", "_")

func (s DirStore) path(key TileKey) string {
	return filepath.Join(s.Dir, fileNameReplacer.Replace(key.String())+".png")
}

func (s DirStore) Save(key TileKey, fog *image.Gray) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create fog directory: %w", err)
	}
	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("could not save fog of war %s: %w", key, err)
	}
	if err := writePNG(f, fog); err != nil {
		return fmt.Errorf("could not save fog of war %s: %w", key, err)
	}
	return nil
}

// writePNG encodes fog into w and closes it. A failed close is reported,
// it may be the only sign of a short write.
func writePNG(w io.WriteCloser, fog *image.Gray) error {
	if err := png.Encode(w, fog); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s DirStore) Load(key TileKey) (*image.Gray, error) {
	f, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoFog
	}
	if err != nil {
		return nil, fmt.Errorf("could not load fog of war %s: %w", key, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode fog of war %s: %w", key, err)
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	g := image.NewGray(img.Bounds())
	draw.Draw(g, g.Bounds(), img, img.Bounds().Min, draw.Src)
	return g, nil
}

// MemoryStore keeps fog-of-war in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	tiles map[TileKey]*image.Gray
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tiles: make(map[TileKey]*image.Gray)}
}

func (s *MemoryStore) Save(key TileKey, fog *image.Gray) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles[key] = cloneGray(fog)
	return nil
}

func (s *MemoryStore) Load(key TileKey) (*image.Gray, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fog, ok := s.tiles[key]
	if !ok {
		return nil, ErrNoFog
	}
	return cloneGray(fog), nil
}

// Len returns the number of stored tiles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tiles)
}

func cloneGray(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
