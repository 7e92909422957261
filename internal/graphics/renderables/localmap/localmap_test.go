package localmap

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"mini-mw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func newMap(t *testing.T, store Store) *LocalMap {
	t.Helper()
	m, err := New(store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(m.Dispose)
	return m
}

func TestExteriorExploration(t *testing.T) {
	m := newMap(t, NewMemoryStore())
	cell := world.NewExterior(1, 2)
	if err := m.RequestExteriorMap(cell); err != nil {
		t.Fatal(err)
	}

	key := TileKey{X: 1, Y: 2}
	if m.IsPositionExplored(0.5, 0.5, 1, 2, false) {
		t.Fatalf("Expected fresh tile to be unexplored")
	}

	// centre of cell (1,2)
	m.UpdatePlayer(mgl32.Vec3{1.5 * CellSize, 2.5 * CellSize, 0}, mgl32.QuatIdent())
	if !m.IsPositionExplored(0.5, 0.5, 1, 2, false) {
		t.Errorf("Expected centre explored")
	}
	if m.IsPositionExplored(0.01, 0.01, 1, 2, false) {
		t.Errorf("Expected corner still unexplored")
	}
	fog, _ := m.Tile(key)
	if fog.GrayAt(16, 16).Y > 10 {
		t.Errorf("Expected texels near the player cleared, got %d", fog.GrayAt(16, 16).Y)
	}
}

func TestUpdatePlayerHeading(t *testing.T) {
	m := newMap(t, NewMemoryStore())
	q := mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{0, 0, 1})
	m.UpdatePlayer(mgl32.Vec3{1, 2, 3}, q)
	pos, yaw := m.PlayerMarker()
	if pos != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected marker at (1,2,3), got %v", pos)
	}
	// rotating -90 degrees about Z turns north (+Y) into east (+X)
	if yaw < 1.56 || yaw > 1.58 {
		t.Errorf("Expected heading pi/2, got %f", yaw)
	}
}

func TestSaveAndReload(t *testing.T) {
	store := DirStore{Dir: t.TempDir()}
	cell := world.NewInterior("Caldera, Ghorak Manor")

	m := newMap(t, store)
	if err := m.RequestInteriorMap(cell, mgl32.Vec2{-100, -100}, mgl32.Vec2{9000, 100}); err != nil {
		t.Fatal(err)
	}
	if m.Tiles() != 2 {
		t.Fatalf("Expected 2 segments, got %d", m.Tiles())
	}
	m.UpdatePlayer(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	if err := m.SaveFogOfWar(cell); err != nil {
		t.Fatalf("SaveFogOfWar failed: %v", err)
	}

	nX, nY, x, y := m.InteriorMapPosition(mgl32.Vec2{0, 0})
	if x != 0 || y != 0 {
		t.Fatalf("Expected segment (0,0), got (%d,%d)", x, y)
	}

	other := newMap(t, store)
	if err := other.RequestInteriorMap(cell, mgl32.Vec2{-100, -100}, mgl32.Vec2{9000, 100}); err != nil {
		t.Fatal(err)
	}
	if !other.IsPositionExplored(nX, nY, x, y, true) {
		t.Errorf("Expected exploration restored from disk")
	}
}

func TestStoreMissingTile(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"dir":    DirStore{Dir: t.TempDir()},
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(TileKey{X: 9, Y: 9}); !errors.Is(err, ErrNoFog) {
				t.Errorf("Expected ErrNoFog, got %v", err)
			}
		})
	}
}

type failingCloser struct {
	bytes.Buffer
	err    error
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.err
}

func TestWritePNGReportsClose(t *testing.T) {
	fog := image.NewGray(image.Rect(0, 0, 4, 4))

	ok := &failingCloser{}
	if err := writePNG(ok, fog); err != nil || !ok.closed || ok.Len() == 0 {
		t.Fatalf("Expected an encoded and closed file, got %v", err)
	}

	diskFull := errors.New("no space left on device")
	bad := &failingCloser{err: diskFull}
	if err := writePNG(bad, fog); !errors.Is(err, diskFull) {
		t.Errorf("Expected the close error, got %v", err)
	}
}

func TestTextureScales(t *testing.T) {
	m := newMap(t, NewMemoryStore())
	if _, err := m.Texture(TileKey{}, 64); !errors.Is(err, ErrNoFog) {
		t.Errorf("Expected ErrNoFog for unknown tile, got %v", err)
	}
	_ = m.RequestExteriorMap(world.NewExterior(0, 0))
	img, err := m.Texture(TileKey{}, 128)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 128 || img.GrayAt(64, 64).Y != unexplored {
		t.Errorf("Expected 128px unexplored texture, got %v %d", img.Bounds(), img.GrayAt(64, 64).Y)
	}
}

func BenchmarkUpdatePlayer(b *testing.B) {
	m, err := New(NewMemoryStore())
	if err != nil {
		b.Fatal(err)
	}
	defer m.Dispose()
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			_ = m.RequestExteriorMap(world.NewExterior(x, y))
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.UpdatePlayer(mgl32.Vec3{float32(i % CellSize), 100, 0}, mgl32.QuatIdent())
	}
}
