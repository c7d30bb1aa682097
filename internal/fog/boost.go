package fog

// Boost is a timed bonus added to the cone and ambient radii.
type Boost struct {
	bonus     float64
	remaining float64
}

// Apply replaces any running boost. Negative values count as zero.
func (b *Boost) Apply(bonus, seconds float64) {
	b.bonus = max(bonus, 0)
	b.remaining = max(seconds, 0)
	if b.remaining == 0 {
		b.bonus = 0
	}
}

// Update advances the timer by dt seconds. It returns true on the tick the
// boost runs out.
func (b *Boost) Update(dt float64) bool {
	if b.remaining <= 0 || !(dt > 0) {
		return false
	}
	b.remaining -= dt
	if b.remaining > 0 {
		return false
	}
	b.remaining = 0
	b.bonus = 0
	return true
}

// Bonus returns the radius bonus currently in effect.
func (b *Boost) Bonus() float64 { return b.bonus }

// Remaining returns the seconds left.
func (b *Boost) Remaining() float64 { return b.remaining }

// Active reports whether a boost is running.
func (b *Boost) Active() bool { return b.remaining > 0 }
