package pixelciv

import (
	"image"
	"image/color"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Tile classifies one terrain cell.
type Tile uint8

const (
	TileBlocked Tile = iota
	TileWalkable
)

// TerrainMask is the static walkable/blocked classification of the map. It is
// immutable for the lifetime of a simulation and safe to share across workers.
type TerrainMask struct {
	w, h  int
	tiles []Tile
}

// NewTerrainMask returns an all-blocked mask of the given dimensions.
func NewTerrainMask(w, h int) *TerrainMask {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &TerrainMask{w: w, h: h, tiles: make([]Tile, w*h)}
}

// Size reports the mask dimensions.
func (m *TerrainMask) Size() (int, int) { return m.w, m.h }

// Tiles exposes the backing slice, mainly for mask construction.
func (m *TerrainMask) Tiles() []Tile { return m.tiles }

// Walkable reports whether the tile at (x, y) permits occupancy. Coordinates
// outside the mask are blocked.
func (m *TerrainMask) Walkable(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.tiles[y*m.w+x] == TileWalkable
}

// MaskFromImage classifies every pixel of img: a pixel equal to walkable
// becomes a walkable tile, everything else is blocked. Terrain art marks land
// with pure green.
func MaskFromImage(img image.Image, walkable color.Color) *TerrainMask {
	bounds := img.Bounds()
	m := NewTerrainMask(bounds.Dx(), bounds.Dy())
	wr, wg, wb, _ := walkable.RGBA()
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if r == wr && g == wg && b == wb {
				m.tiles[y*m.w+x] = TileWalkable
			}
		}
	}
	return m
}

// GenerateMask builds a procedural land/water mask from layered simplex noise.
// Elevation below seaLevel becomes water. Used when no terrain image is
// supplied.
func GenerateMask(w, h int, seed int64, seaLevel float64) *TerrainMask {
	m := NewTerrainMask(w, h)
	noise := opensimplex.NewNormalized(seed)
	detail := opensimplex.NewNormalized(seed + 1)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			nx := float64(x) / float64(m.w)
			ny := float64(y) / float64(m.h)
			elev := 0.7*noise.Eval2(nx*4, ny*4) + 0.3*detail.Eval2(nx*16, ny*16)
			if elev >= seaLevel {
				m.tiles[y*m.w+x] = TileWalkable
			}
		}
	}
	return m
}
