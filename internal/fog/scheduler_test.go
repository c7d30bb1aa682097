package fog

import (
	"testing"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
)

func testScheduler(throttle int) *Scheduler {
	return NewScheduler(config.SchedulerConfig{
		MoveThreshold:    0.5,
		TurnDotThreshold: 0.99,
		ThrottleTicks:    throttle,
	})
}

var east = core.V(1, 0)

func TestSchedulerInitialThenIdle(t *testing.T) {
	s := testScheduler(0)
	if r := s.Evaluate(core.V(1, 1), east); r != ReasonInitial {
		t.Fatalf("first evaluation = %v, want initial", r)
	}
	if s.State() != StateRecomputing {
		t.Error("state should be recomputing after a trigger")
	}
	for i := 0; i < 100; i++ {
		if r := s.Evaluate(core.V(1, 1), east); r != ReasonIdle {
			t.Fatalf("tick %d = %v, want idle with throttling disabled", i, r)
		}
	}
	if s.State() != StateIdle {
		t.Error("state should be idle")
	}
}

func TestSchedulerReasons(t *testing.T) {
	tests := []struct {
		name   string
		pos    core.Vec2
		facing core.Vec2
		force  bool
		want   Reason
	}{
		{"small move", core.V(1.3, 1), east, false, ReasonIdle},
		{"large move", core.V(1.6, 1), east, false, ReasonMoved},
		{"diagonal move", core.V(1.4, 1.4), east, false, ReasonMoved},
		{"small turn", core.V(1, 1), core.FromAngle(0.1), false, ReasonIdle},
		{"large turn", core.V(1, 1), core.FromAngle(0.2), false, ReasonTurned},
		{"zero facing", core.V(1, 1), core.V(0, 0), false, ReasonIdle},
		{"force wins", core.V(5, 5), core.FromAngle(2), true, ReasonForced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScheduler(0)
			s.Evaluate(core.V(1, 1), east)
			if tt.force {
				s.RequestForce()
			}
			if got := s.Evaluate(tt.pos, tt.facing); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchedulerBaselineMoves(t *testing.T) {
	s := testScheduler(0)
	s.Evaluate(core.V(0, 0), east)
	s.Evaluate(core.V(0.6, 0), east)

	// 0.4 from the new baseline, 1.0 from the old one.
	if r := s.Evaluate(core.V(1, 0), east); r != ReasonIdle {
		t.Errorf("Evaluate = %v, want idle relative to the new baseline", r)
	}
}

func TestSchedulerThrottle(t *testing.T) {
	s := testScheduler(3)
	var got []Reason
	for i := 0; i < 7; i++ {
		got = append(got, s.Evaluate(core.V(2, 2), east))
	}
	want := []Reason{ReasonInitial, ReasonIdle, ReasonIdle, ReasonThrottled, ReasonIdle, ReasonIdle, ReasonThrottled}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSchedulerForceClears(t *testing.T) {
	s := testScheduler(0)
	s.RequestForce()
	if !s.ForcePending() {
		t.Fatal("force not pending")
	}
	if r := s.Evaluate(core.V(0, 0), east); r != ReasonForced {
		t.Errorf("Evaluate = %v, want forced", r)
	}
	if s.ForcePending() {
		t.Error("force should clear after a recompute")
	}
	if r := s.Evaluate(core.V(0, 0), east); r != ReasonIdle {
		t.Errorf("Evaluate = %v, want idle", r)
	}

	s.Reset()
	if r := s.Evaluate(core.V(0, 0), east); r != ReasonInitial {
		t.Errorf("after Reset = %v, want initial", r)
	}
}

func TestReasonString(t *testing.T) {
	for r := ReasonIdle; r <= ReasonThrottled; r++ {
		if s := r.String(); s == "unknown" {
			t.Errorf("reason %d has no name", r)
		}
	}
	if ReasonIdle.Recompute() || !ReasonTurned.Recompute() {
		t.Error("Recompute mismatch")
	}
}
