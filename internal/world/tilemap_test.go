package world

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-fog/internal/core"
)

func TestTileMapBounds(t *testing.T) {
	m := NewTileMap(3, 2)
	if m.IsWall(1, 1) {
		t.Error("new map should be floor")
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		if !m.IsWall(c[0], c[1]) {
			t.Errorf("(%d,%d) off the map should be wall", c[0], c[1])
		}
	}
	m.Set(5, 5, TileFloor)
	m.FillRect(2, 1, 0, 1, TileWall)
	if m.FloorCount() != 3 {
		t.Errorf("FloorCount = %d, want 3", m.FloorCount())
	}
}

func TestRaycast(t *testing.T) {
	m := NewTileMap(8, 8)
	m.FillRect(4, 0, 4, 7, TileWall)

	tests := []struct {
		name     string
		origin   core.Vec2
		dir      core.Vec2
		maxDist  float64
		wantHit  bool
		wantDist float64
	}{
		{"east into wall", core.V(1.5, 1.5), core.V(1, 0), 10, true, 2.5},
		{"unnormalized dir", core.V(1.5, 1.5), core.V(3, 0), 10, true, 2.5},
		{"wall beyond reach", core.V(1.5, 1.5), core.V(1, 0), 2, false, 0},
		{"diagonal", core.V(2, 2), core.V(1, 1), 10, true, 2 * math.Sqrt2},
		{"west to map edge", core.V(1.5, 1.5), core.V(-1, 0), 10, true, 1.5},
		{"south along the wall", core.V(2.5, 0.5), core.V(0, 1), 20, true, 7.5},
		{"starts in wall", core.V(4.5, 3), core.V(1, 0), 10, true, 0},
		{"zero dir", core.V(1.5, 1.5), core.V(0, 0), 10, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := m.Raycast(tt.origin, tt.dir, tt.maxDist)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if math.Abs(dist-tt.wantDist) > 1e-9 {
				t.Errorf("dist = %v, want %v", dist, tt.wantDist)
			}
		})
	}
}

func TestLineOfSight(t *testing.T) {
	m := NewTileMap(6, 6)
	m.Set(3, 3, TileWall)

	if !m.LineOfSight(core.V(0.5, 0.5), core.V(5.5, 0.5)) {
		t.Error("open row should have line of sight")
	}
	if m.LineOfSight(core.V(0.5, 3.5), core.V(5.5, 3.5)) {
		t.Error("wall at (3,3) should block")
	}
	if m.LineOfSight(core.V(3.5, 3.5), core.V(3.5, 3.5)) {
		t.Error("a point inside a wall has no line of sight")
	}
}
