package localmap

import (
	"errors"
	"fmt"
	"image"
	"math"

	"mini-mw/internal/log"
	"mini-mw/internal/world"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

const (
	// CellSize is the world size covered by one map tile.
	CellSize = 8192
	// FogResolution is the fog-of-war texel count per tile edge.
	FogResolution = 32

	// Explored texels are cleared within 0.3 tiles of the player.
	sqrExploreRadius = 0.09 * FogResolution * FogResolution

	unexplored = 255
	// Texels below this alpha count as explored.
	exploredThreshold = 200
)

// TileKey addresses one fog-of-war tile. Exterior tiles have an empty Cell
// and grid coordinates; interior tiles are segments of the named cell.
type TileKey struct {
	Cell string
	X, Y int
}

func (k TileKey) String() string {
	if k.Cell == "" {
		return fmt.Sprintf("Cell_%d_%d", k.X, k.Y)
	}
	return fmt.Sprintf("%s_%d_%d", k.Cell, k.X, k.Y)
}

// LocalMap records explored areas around the player per tile
type LocalMap struct {
	store Store
	cache *ristretto.Cache[string, *image.Gray]
	tiles map[TileKey]*image.Gray
	// revision invalidates cached minimap textures of a tile
	revision map[TileKey]int

	interior  bool
	cellName  string
	boundsMin mgl32.Vec2
	boundsMax mgl32.Vec2

	playerPos mgl32.Vec3
	playerYaw float32
}

// New creates a local map persisting through store.
func New(store Store) (*LocalMap, error) {
	cache, err := ristretto.NewCache[string, *image.Gray](&ristretto.Config[string, *image.Gray]{
		NumCounters: 1000,
		MaxCost:     16 * 1024 * 1024,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minimap cache: %w", err)
	}
	return &LocalMap{
		store:    store,
		cache:    cache,
		tiles:    make(map[TileKey]*image.Gray),
		revision: make(map[TileKey]int),
	}, nil
}

// RequestExteriorMap loads the fog of an exterior cell.
func (m *LocalMap) RequestExteriorMap(cell *world.Cell) error {
	m.interior = false
	m.cellName = ""
	return m.loadTile(TileKey{X: cell.GridX, Y: cell.GridY})
}

// RequestInteriorMap loads every segment covering the interior bounds.
func (m *LocalMap) RequestInteriorMap(cell *world.Cell, lo, hi mgl32.Vec2) error {
	m.interior = true
	m.cellName = cell.Name
	m.boundsMin, m.boundsMax = lo, hi

	segX := int(math.Ceil(float64(hi.X()-lo.X()) / CellSize))
	segY := int(math.Ceil(float64(hi.Y()-lo.Y()) / CellSize))
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	for x := 0; x < segX; x++ {
		for y := 0; y < segY; y++ {
			if err := m.loadTile(TileKey{Cell: cell.Name, X: x, Y: y}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *LocalMap) loadTile(key TileKey) error {
	if _, ok := m.tiles[key]; ok {
		return nil
	}
	fog, err := m.store.Load(key)
	if errors.Is(err, ErrNoFog) {
		fog = newFog()
	} else if err != nil {
		return err
	}
	m.tiles[key] = fog
	return nil
}

func newFog() *image.Gray {
	fog := image.NewGray(image.Rect(0, 0, FogResolution, FogResolution))
	for i := range fog.Pix {
		fog.Pix[i] = unexplored
	}
	return fog
}

// tileOf returns the tile containing the world position and the position in
// tile units relative to that tile's origin.
func (m *LocalMap) tileOf(pos mgl32.Vec3) (TileKey, mgl32.Vec2) {
	x, y := pos.X(), pos.Y()
	if m.interior {
		x -= m.boundsMin.X()
		y -= m.boundsMin.Y()
	}
	fx := x / CellSize
	fy := y / CellSize
	tx := int(math.Floor(float64(fx)))
	ty := int(math.Floor(float64(fy)))
	return TileKey{Cell: m.cellName, X: tx, Y: ty}, mgl32.Vec2{fx - float32(tx), fy - float32(ty)}
}

// UpdatePlayer moves the player marker and clears the fog around it.
func (m *LocalMap) UpdatePlayer(pos mgl32.Vec3, dir mgl32.Quat) {
	m.playerPos = pos
	fwd := dir.Rotate(mgl32.Vec3{0, 1, 0})
	m.playerYaw = float32(math.Atan2(float64(fwd.X()), float64(fwd.Y())))

	key, local := m.tileOf(pos)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			k := TileKey{Cell: key.Cell, X: key.X + dx, Y: key.Y + dy}
			fog, ok := m.tiles[k]
			if !ok {
				continue
			}
			// player in this tile's texel space, image Y grows southwards
			px := (local.X() - float32(dx)) * FogResolution
			py := (1 - (local.Y() - float32(dy))) * FogResolution
			if m.explore(fog, px, py) {
				m.revision[k]++
			}
		}
	}
}

func (m *LocalMap) explore(fog *image.Gray, px, py float32) bool {
	changed := false
	for ty := 0; ty < FogResolution; ty++ {
		for tx := 0; tx < FogResolution; tx++ {
			ddx := float32(tx) + 0.5 - px
			ddy := float32(ty) + 0.5 - py
			sqrDist := ddx*ddx + ddy*ddy
			if sqrDist >= sqrExploreRadius {
				continue
			}
			alpha := uint8(sqrDist / sqrExploreRadius * unexplored)
			i := fog.PixOffset(tx, ty)
			if alpha < fog.Pix[i] {
				fog.Pix[i] = alpha
				changed = true
			}
		}
	}
	return changed
}

// PlayerMarker returns the last player position and heading in radians.
func (m *LocalMap) PlayerMarker() (mgl32.Vec3, float32) { return m.playerPos, m.playerYaw }

// InteriorMapPosition converts a world position of the current interior to a
// segment and normalised coordinates inside it (nY grows southwards).
func (m *LocalMap) InteriorMapPosition(pos mgl32.Vec2) (nX, nY float32, x, y int) {
	key, local := m.tileOf(mgl32.Vec3{pos.X(), pos.Y(), 0})
	return local.X(), 1 - local.Y(), key.X, key.Y
}

// IsPositionExplored checks the fog texel at normalised (nX, nY) of tile
// (x, y). Unknown tiles count as unexplored.
func (m *LocalMap) IsPositionExplored(nX, nY float32, x, y int, interior bool) bool {
	key := TileKey{X: x, Y: y}
	if interior {
		key.Cell = m.cellName
	}
	fog, ok := m.tiles[key]
	if !ok {
		return false
	}
	tx := clampTexel(int(nX * FogResolution))
	ty := clampTexel(int(nY * FogResolution))
	return fog.GrayAt(tx, ty).Y < exploredThreshold
}

func clampTexel(v int) int {
	if v < 0 {
		return 0
	}
	if v >= FogResolution {
		return FogResolution - 1
	}
	return v
}

// SaveFogOfWar persists the tiles of cell.
func (m *LocalMap) SaveFogOfWar(cell *world.Cell) error {
	for key, fog := range m.tiles {
		if !belongsTo(key, cell) {
			continue
		}
		if err := m.store.Save(key, fog); err != nil {
			return err
		}
	}
	log.Debugf("localmap: saved fog of war for %s", cell)
	return nil
}

func belongsTo(key TileKey, cell *world.Cell) bool {
	if cell.Exterior {
		return key.Cell == "" && key.X == cell.GridX && key.Y == cell.GridY
	}
	return key.Cell == cell.Name
}

// Tile returns the in-memory fog of a tile.
func (m *LocalMap) Tile(key TileKey) (*image.Gray, bool) {
	fog, ok := m.tiles[key]
	return fog, ok
}

func (m *LocalMap) Tiles() int { return len(m.tiles) }

// Texture returns the fog of a tile scaled to size x size for the minimap.
func (m *LocalMap) Texture(key TileKey, size int) (*image.Gray, error) {
	fog, ok := m.tiles[key]
	if !ok {
		return nil, ErrNoFog
	}
	cacheKey := fmt.Sprintf("%s@%d#%d", key, size, m.revision[key])
	if img, ok := m.cache.Get(cacheKey); ok {
		return img, nil
	}
	img := image.NewGray(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(img, img.Bounds(), fog, fog.Bounds(), draw.Src, nil)
	m.cache.Set(cacheKey, img, int64(size*size))
	return img, nil
}

// Dispose drops every tile and stops the cache.
func (m *LocalMap) Dispose() {
	m.tiles = make(map[TileKey]*image.Gray)
	m.revision = make(map[TileKey]int)
	m.cache.Close()
}
