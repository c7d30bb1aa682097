// Package explore is the keyboard-driven fog scene: walk a level, drop
// lights, spend boosts and watch the map fill in.
package explore

import (
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/scenes"
)

// ID is the registry identifier.
const ID = "explore"

const help = "wasd/arrows move  l light  f boost  m reveal  g ghost  x forget  p pause  r restart  q quit"

// Scene implements registry.Scene.
type Scene struct {
	scenes.Base
}

// New creates an explore scene.
func New(env registry.Env) *Scene {
	return &Scene{Base: scenes.NewBase(ID, "Explore", help, env)}
}

func init() {
	registry.Register(ID, func(env registry.Env) registry.Scene {
		return New(env)
	})
}

// Reset starts a new run on the configured level.
func (s *Scene) Reset(cfg core.RuntimeConfig) error {
	return s.Load(cfg)
}

// Step applies the input and advances the engine by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if !s.HandleCommon(in) {
		return core.StepResult{State: s.State()}
	}

	sess := s.Session()
	if in.Has(core.ActionTurnLeft) {
		sess.Turn(-1)
	}
	if in.Has(core.ActionTurnRight) {
		sess.Turn(1)
	}
	if in.Has(core.ActionForward) {
		sess.Walk(1)
	}
	if in.Has(core.ActionBackward) {
		sess.Walk(-1)
	}
	if in.Has(core.ActionLight) {
		sess.ToggleLight()
	}

	sess.Tick()
	return core.StepResult{State: s.State()}
}
