// Package world holds the static wall geometry the fog engine ray casts
// against and the viewers that walk through it.
package world

import (
	"math"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// Tile is the content of one map cell. One cell is one world unit.
type Tile uint8

const (
	TileFloor Tile = iota
	TileWall
)

// TileMap is a rectangular grid of tiles. Everything outside it is wall.
type TileMap struct {
	width, height int
	tiles         []Tile
}

// NewTileMap creates an all-floor map.
func NewTileMap(width, height int) *TileMap {
	width = max(width, 0)
	height = max(height, 0)
	return &TileMap{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

// Width returns the map width in cells.
func (m *TileMap) Width() int { return m.width }

// Height returns the map height in cells.
func (m *TileMap) Height() int { return m.height }

// InBounds reports whether (x, y) is on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At returns the tile at (x, y); TileWall off the map.
func (m *TileMap) At(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.tiles[y*m.width+x]
}

// Set places a tile. Out of bounds writes are ignored.
func (m *TileMap) Set(x, y int, t Tile) {
	if m.InBounds(x, y) {
		m.tiles[y*m.width+x] = t
	}
}

// FillRect sets every tile in the inclusive rectangle.
func (m *TileMap) FillRect(x1, y1, x2, y2 int, t Tile) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			m.Set(x, y, t)
		}
	}
}

// IsWall reports whether (x, y) blocks sight and movement.
func (m *TileMap) IsWall(x, y int) bool {
	return m.At(x, y) == TileWall
}

// IsWallAt reports whether the cell containing p is a wall.
func (m *TileMap) IsWallAt(p core.Vec2) bool {
	return m.IsWall(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// FloorCount returns the number of non-wall cells.
func (m *TileMap) FloorCount() int {
	n := 0
	for _, t := range m.tiles {
		if t != TileWall {
			n++
		}
	}
	return n
}

// Raycast walks the cells along the ray with a DDA traversal and returns
// the distance to the first wall boundary within maxDist. A ray starting
// inside a wall hits at distance 0.
func (m *TileMap) Raycast(origin, dir core.Vec2, maxDist float64) (float64, bool) {
	dir = dir.Normalize()
	if dir.LenSq() == 0 || !(maxDist >= 0) {
		return 0, false
	}

	cx := int(math.Floor(origin.X))
	cy := int(math.Floor(origin.Y))
	if m.IsWall(cx, cy) {
		return 0, true
	}

	stepX, tMaxX, tDeltaX := axisSetup(origin.X, dir.X, cx)
	stepY, tMaxY, tDeltaY := axisSetup(origin.Y, dir.Y, cy)

	for {
		var t float64
		if tMaxX < tMaxY {
			t = tMaxX
			cx += stepX
			tMaxX += tDeltaX
		} else {
			t = tMaxY
			cy += stepY
			tMaxY += tDeltaY
		}
		if t > maxDist {
			return 0, false
		}
		if m.IsWall(cx, cy) {
			return t, true
		}
	}
}

// axisSetup returns the DDA step direction, the distance to the first cell
// boundary and the distance between boundaries along one axis.
func axisSetup(origin, dir float64, cell int) (step int, tMax, tDelta float64) {
	switch {
	case dir > 0:
		return 1, (float64(cell+1) - origin) / dir, 1 / dir
	case dir < 0:
		return -1, (origin - float64(cell)) / -dir, -1 / dir
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

// LineOfSight reports whether nothing blocks the segment from a to b.
func (m *TileMap) LineOfSight(a, b core.Vec2) bool {
	d := b.Sub(a)
	dist := d.Len()
	if dist == 0 {
		return !m.IsWallAt(a)
	}
	_, hit := m.Raycast(a, d, dist)
	return !hit
}
