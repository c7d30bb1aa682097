package world

import (
	"math"
	"math/rand"
)

// Autopilot steers a Walker around a map with seeded random headings.
// The same seed, map and tick sequence always produce the same path.
type Autopilot struct {
	rng       *rand.Rand
	target    float64 // Heading to turn towards
	stepsLeft int     // Ticks before picking a new heading
}

// NewAutopilot creates an autopilot seeded with seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))}
}

// Drive turns the walker towards its current heading and walks forward.
// Blocked moves pick a new heading; after five failed attempts the walker
// stays put for this tick.
func (a *Autopilot) Drive(w *Walker, m *TileMap, dt float64) {
	for attempts := 0; attempts < 5; attempts++ {
		if a.stepsLeft <= 0 {
			a.randomizeHeading(w)
		}

		diff := angleDiff(a.target, w.Angle())
		maxTurn := w.TurnRate * dt
		if math.Abs(diff) > maxTurn {
			w.Turn(math.Copysign(1, diff), dt)
			a.stepsLeft--
			return
		}
		w.SetAngle(a.target)

		if w.Walk(m, 1, dt) {
			a.stepsLeft--
			return
		}
		a.stepsLeft = 0
	}
}

func (a *Autopilot) randomizeHeading(w *Walker) {
	// Prefer headings close to the current one so the path looks like a patrol.
	a.target = normalizeAngle(w.Angle() + (a.rng.Float64()-0.5)*math.Pi*1.5)
	a.stepsLeft = 20 + a.rng.Intn(50)
}

// angleDiff returns the signed shortest rotation from b to a.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}
