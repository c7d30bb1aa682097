package world

import (
	"math"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// Walker defaults, in world units and radians per second.
const (
	DefaultWalkSpeed = 3.0
	DefaultTurnRate  = math.Pi
	DefaultBodySize  = 0.2
)

// Walker is a viewer that moves through a TileMap and cannot enter walls.
type Walker struct {
	pos   core.Vec2
	angle float64

	Speed    float64 // Units per second
	TurnRate float64 // Radians per second
	Body     float64 // Half extent of the collision box
}

// NewWalker places a walker at pos facing angle (radians, 0 = +X, Y down).
func NewWalker(pos core.Vec2, angle float64) *Walker {
	return &Walker{
		pos:      pos,
		angle:    normalizeAngle(angle),
		Speed:    DefaultWalkSpeed,
		TurnRate: DefaultTurnRate,
		Body:     DefaultBodySize,
	}
}

// Position returns the walker's eye position.
func (w *Walker) Position() core.Vec2 { return w.pos }

// Facing returns the unit view direction.
func (w *Walker) Facing() core.Vec2 { return core.FromAngle(w.angle) }

// Angle returns the view direction in radians, in [0, 2π).
func (w *Walker) Angle() float64 { return w.angle }

// SetPosition teleports the walker.
func (w *Walker) SetPosition(p core.Vec2) { w.pos = p }

// SetAngle sets the view direction.
func (w *Walker) SetAngle(a float64) { w.angle = normalizeAngle(a) }

// Turn rotates by dir*TurnRate*dt; dir is -1 (left) or +1 (right).
func (w *Walker) Turn(dir, dt float64) {
	w.SetAngle(w.angle + dir*w.TurnRate*dt)
}

// Walk moves dir*Speed*dt units along the facing (dir -1 walks backwards).
// It returns false if a wall stopped all movement.
func (w *Walker) Walk(m *TileMap, dir, dt float64) bool {
	return w.Step(m, w.Facing().Scale(dir*w.Speed*dt))
}

// Step moves by delta, sliding along walls one axis at a time.
func (w *Walker) Step(m *TileMap, delta core.Vec2) bool {
	moved := false
	if delta.X != 0 {
		next := core.V(w.pos.X+delta.X, w.pos.Y)
		if !w.blocked(m, next) {
			w.pos = next
			moved = true
		}
	}
	if delta.Y != 0 {
		next := core.V(w.pos.X, w.pos.Y+delta.Y)
		if !w.blocked(m, next) {
			w.pos = next
			moved = true
		}
	}
	return moved
}

func (w *Walker) blocked(m *TileMap, p core.Vec2) bool {
	b := w.Body
	return m.IsWallAt(core.V(p.X-b, p.Y-b)) ||
		m.IsWallAt(core.V(p.X+b, p.Y-b)) ||
		m.IsWallAt(core.V(p.X-b, p.Y+b)) ||
		m.IsWallAt(core.V(p.X+b, p.Y+b))
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
