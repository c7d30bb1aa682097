package fog

import (
	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
)

// Reason explains a scheduler decision.
type Reason uint8

const (
	ReasonIdle Reason = iota
	ReasonForced
	ReasonInitial
	ReasonMoved
	ReasonTurned
	ReasonThrottled
)

func (r Reason) String() string {
	switch r {
	case ReasonIdle:
		return "idle"
	case ReasonForced:
		return "forced"
	case ReasonInitial:
		return "initial"
	case ReasonMoved:
		return "moved"
	case ReasonTurned:
		return "turned"
	case ReasonThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// Recompute reports whether the reason asks for a recompute.
func (r Reason) Recompute() bool {
	return r != ReasonIdle
}

// SchedulerState is the scheduler's state for the current tick.
type SchedulerState uint8

const (
	StateIdle SchedulerState = iota
	StateRecomputing
)

// Scheduler decides per tick whether visibility must be recomputed.
type Scheduler struct {
	moveThresholdSq float64
	turnDot         float64
	throttle        int

	basePos     core.Vec2
	baseFacing  core.Vec2
	hasBaseline bool
	force       bool
	sinceLast   int
	state       SchedulerState
}

// NewScheduler creates a scheduler with no baseline, so the first
// evaluation always recomputes.
func NewScheduler(cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		moveThresholdSq: cfg.MoveThreshold * cfg.MoveThreshold,
		turnDot:         cfg.TurnDotThreshold,
		throttle:        max(cfg.ThrottleTicks, 0),
	}
}

// RequestForce makes the next evaluation recompute.
func (s *Scheduler) RequestForce() {
	s.force = true
}

// ForcePending reports whether a forced recompute is queued.
func (s *Scheduler) ForcePending() bool {
	return s.force
}

// Reset drops the baseline.
func (s *Scheduler) Reset() {
	s.hasBaseline = false
	s.sinceLast = 0
}

// State returns the outcome of the last evaluation.
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// Evaluate checks the viewer pose against the baseline. Checks run in
// order forced, initial, moved, turned, throttled; the first match wins.
// On a recompute the pose becomes the new baseline.
func (s *Scheduler) Evaluate(pos, facing core.Vec2) Reason {
	s.sinceLast++

	reason := ReasonIdle
	switch {
	case s.force:
		reason = ReasonForced
	case !s.hasBaseline:
		reason = ReasonInitial
	case pos.Sub(s.basePos).LenSq() > s.moveThresholdSq:
		reason = ReasonMoved
	case s.turned(facing):
		reason = ReasonTurned
	case s.throttle > 0 && s.sinceLast >= s.throttle:
		reason = ReasonThrottled
	}

	if reason == ReasonIdle {
		s.state = StateIdle
		return reason
	}

	s.state = StateRecomputing
	s.basePos = pos
	s.baseFacing = facing
	s.hasBaseline = true
	s.force = false
	s.sinceLast = 0
	return reason
}

func (s *Scheduler) turned(facing core.Vec2) bool {
	a := facing.Normalize()
	b := s.baseFacing.Normalize()
	if a.LenSq() == 0 || b.LenSq() == 0 {
		return false
	}
	return a.Dot(b) < s.turnDot
}
