package fog

import "testing"

func TestBoostLifecycle(t *testing.T) {
	var b Boost
	b.Apply(2, 1)
	if !b.Active() || b.Bonus() != 2 {
		t.Fatalf("after Apply: active=%v bonus=%v", b.Active(), b.Bonus())
	}

	if b.Update(0.5) {
		t.Error("boost expired too early")
	}
	if r := b.Remaining(); r != 0.5 {
		t.Errorf("Remaining = %v, want 0.5", r)
	}
	if !b.Update(0.6) {
		t.Error("boost should expire when crossing zero")
	}
	if b.Active() || b.Bonus() != 0 || b.Remaining() != 0 {
		t.Errorf("after expiry: active=%v bonus=%v remaining=%v", b.Active(), b.Bonus(), b.Remaining())
	}
	if b.Update(1) {
		t.Error("expiry should only be reported once")
	}
}

func TestBoostOverwrite(t *testing.T) {
	var b Boost
	b.Apply(5, 10)
	b.Apply(1, 2)
	if b.Bonus() != 1 || b.Remaining() != 2 {
		t.Errorf("overwrite: bonus=%v remaining=%v, want 1/2", b.Bonus(), b.Remaining())
	}
}

func TestBoostNegativeValues(t *testing.T) {
	tests := []struct {
		name          string
		bonus, secs   float64
		wantBonus     float64
		wantRemaining float64
	}{
		{"negative bonus", -3, 2, 0, 2},
		{"negative duration", 3, -2, 0, 0},
		{"zero duration", 3, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Boost
			b.Apply(tt.bonus, tt.secs)
			if b.Bonus() != tt.wantBonus || b.Remaining() != tt.wantRemaining {
				t.Errorf("bonus=%v remaining=%v, want %v/%v", b.Bonus(), b.Remaining(), tt.wantBonus, tt.wantRemaining)
			}
		})
	}
}

func TestBoostIgnoresNonPositiveDelta(t *testing.T) {
	var b Boost
	b.Apply(1, 1)
	b.Update(0)
	b.Update(-5)
	if b.Remaining() != 1 {
		t.Errorf("Remaining = %v, want 1", b.Remaining())
	}
}
