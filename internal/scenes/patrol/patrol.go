// Package patrol is the unattended fog scene: a seeded autopilot walks
// the level until its tick budget runs out. Used for demos, the SSH and
// stream hosts, and benchmarks.
package patrol

import (
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/scenes"
	"github.com/vovakirdan/tui-fog/internal/world"
)

// ID is the registry identifier.
const ID = "patrol"

// DefaultBudgetSeconds is how long a patrol runs before finishing.
const DefaultBudgetSeconds = 90

const help = "f boost  m reveal  g ghost  x forget  p pause  r restart  q quit"

// Scene implements registry.Scene.
type Scene struct {
	scenes.Base
	pilot  *world.Autopilot
	budget int // Ticks; 0 = unlimited
	fixed  bool
}

// New creates a patrol scene with the default budget.
func New(env registry.Env) *Scene {
	return &Scene{Base: scenes.NewBase(ID, "Patrol", help, env)}
}

func init() {
	registry.Register(ID, func(env registry.Env) registry.Scene {
		return New(env)
	})
}

// SetBudget fixes the run length in ticks. 0 runs forever.
func (s *Scene) SetBudget(ticks int) {
	s.budget = max(ticks, 0)
	s.fixed = true
}

// Budget returns the run length in ticks.
func (s *Scene) Budget() int { return s.budget }

// Reset starts a new patrol seeded from cfg.Seed.
func (s *Scene) Reset(cfg core.RuntimeConfig) error {
	if err := s.Load(cfg); err != nil {
		return err
	}
	s.pilot = world.NewAutopilot(cfg.Seed)
	if !s.fixed {
		rate := cfg.TickRate
		if rate <= 0 {
			rate = core.DefaultConfig().TickRate
		}
		s.budget = DefaultBudgetSeconds * rate
	}
	return nil
}

// Step drives the autopilot and advances the engine by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if !s.HandleCommon(in) {
		return core.StepResult{State: s.State()}
	}

	sess := s.Session()
	s.pilot.Drive(sess.Walker(), sess.TileMap(), s.Config().TickSeconds())
	sess.Tick()

	if s.budget > 0 && sess.Ticks() >= s.budget {
		s.Finish()
	}
	return core.StepResult{State: s.State()}
}
