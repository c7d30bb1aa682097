// Package sim glues a level, the fog engine and a walking viewer into a
// session that scenes drive one tick at a time and render into a
// core.Screen.
package sim

import (
	"math"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/fog"
	"github.com/vovakirdan/tui-fog/internal/levels"
	"github.com/vovakirdan/tui-fog/internal/world"
)

// Manual control step sizes per key press.
const (
	MoveStep = 0.35         // World units
	TurnStep = math.Pi / 12 // Radians

	// BoostCharges is the number of boosts a session starts with.
	BoostCharges = 3
)

// TickEvent is reported to an Observer after every session tick.
type TickEvent struct {
	SceneID  string
	LevelID  string
	Tick     int
	Result   fog.TickResult
	Explored float64
	Viewer   core.Vec2
}

// Observer receives tick events.
type Observer interface {
	ObserveTick(ev TickEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev TickEvent)

// ObserveTick calls f(ev).
func (f ObserverFunc) ObserveTick(ev TickEvent) { f(ev) }

// Setup describes a session.
type Setup struct {
	SceneID  string
	Runtime  core.RuntimeConfig
	Engine   config.EngineConfig
	Level    levels.Level
	Targets  []fog.RenderTarget // Extra render targets after the terminal layer
	Observer Observer
}

type cell struct{ x, y int }

// Session owns one run through a level.
type Session struct {
	setup  Setup
	tiles  *world.TileMap
	walker *world.Walker
	engine *fog.Engine
	layer  *FogLayer

	levelLights []*fog.Light
	placed      map[cell]*fog.Light
	boosts      int

	dt         float64
	ticks      int
	recomputes int
	last       fog.TickResult
}

// NewSession builds the map, viewer and engine for a level. A grid size of
// zero in the engine config takes the level size.
func NewSession(setup Setup) *Session {
	tiles := setup.Level.ToTileMap()
	walker := world.NewWalker(setup.Level.Spawn, setup.Level.SpawnAngle())
	layer := NewFogLayer()

	cfg := setup.Engine
	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		cfg.Grid.Width = float64(tiles.Width())
		cfg.Grid.Height = float64(tiles.Height())
	}

	targets := make(fog.MultiTarget, 0, 1+len(setup.Targets))
	targets = append(targets, layer)
	targets = append(targets, setup.Targets...)

	engine := fog.New(cfg,
		fog.WithViewer(walker),
		fog.WithOccluder(tiles),
		fog.WithRenderTarget(targets),
	)

	s := &Session{
		setup:  setup,
		tiles:  tiles,
		walker: walker,
		engine: engine,
		layer:  layer,
		placed: make(map[cell]*fog.Light),
		boosts: BoostCharges,
		dt:     setup.Runtime.TickSeconds(),
	}
	s.levelLights = setup.Level.NewLights(engine.Config().Lights)
	for _, l := range s.levelLights {
		engine.RegisterLight(l)
	}
	return s
}

// Tick advances the engine by one fixed tick.
func (s *Session) Tick() fog.TickResult {
	res := s.engine.Tick(s.dt)
	s.ticks++
	if res.Recomputed() {
		s.recomputes++
	}
	s.last = res

	if s.setup.Observer != nil {
		s.setup.Observer.ObserveTick(TickEvent{
			SceneID:  s.setup.SceneID,
			LevelID:  s.setup.Level.ID,
			Tick:     s.ticks,
			Result:   res,
			Explored: s.engine.ExploredFraction(),
			Viewer:   s.walker.Position(),
		})
	}
	return res
}

// Walk moves the viewer one step forward (dir 1) or backward (dir -1).
func (s *Session) Walk(dir float64) bool {
	return s.walker.Step(s.tiles, s.walker.Facing().Scale(dir*MoveStep))
}

// Turn rotates the viewer one step left (dir -1) or right (dir 1).
func (s *Session) Turn(dir float64) {
	s.walker.SetAngle(s.walker.Angle() + dir*TurnStep)
}

// ToggleLight places a light in the viewer's cell, or picks up the one
// already there. It returns true if a light was placed.
func (s *Session) ToggleLight() bool {
	p := s.walker.Position()
	c := cell{int(math.Floor(p.X)), int(math.Floor(p.Y))}

	if l, ok := s.placed[c]; ok {
		s.engine.UnregisterLight(l)
		delete(s.placed, c)
		s.engine.ForceUpdate()
		return false
	}

	l := fog.NewLight(core.V(float64(c.x)+0.5, float64(c.y)+0.5), s.engine.Config().Lights)
	s.engine.RegisterLight(l)
	s.placed[c] = l
	s.engine.ForceUpdate()
	return true
}

// PlacedLights returns the number of lights placed by the viewer.
func (s *Session) PlacedLights() int {
	return len(s.placed)
}

// Boost spends a boost charge. It returns false when none are left.
func (s *Session) Boost() bool {
	if s.boosts <= 0 {
		return false
	}
	cfg := s.engine.Config().Boost
	s.engine.ApplyBoost(cfg.Bonus, cfg.DurationSeconds)
	s.boosts--
	return true
}

// BoostsLeft returns the remaining boost charges.
func (s *Session) BoostsLeft() int {
	return s.boosts
}

// ToggleReveal flips revealed mode.
func (s *Session) ToggleReveal() {
	if s.engine.Revealed() {
		s.engine.ClearReveal()
	} else {
		s.engine.RevealAll()
	}
}

// ToggleGhost flips wall pass-through vision.
func (s *Session) ToggleGhost() {
	s.engine.SetPassThrough(!s.engine.PassThrough())
}

// ResetExploration forgets everything seen so far.
func (s *Session) ResetExploration() {
	s.engine.ResetExploration()
}

// Engine returns the fog engine.
func (s *Session) Engine() *fog.Engine { return s.engine }

// Walker returns the viewer.
func (s *Session) Walker() *world.Walker { return s.walker }

// TileMap returns the wall geometry.
func (s *Session) TileMap() *world.TileMap { return s.tiles }

// Layer returns the terminal render target.
func (s *Session) Layer() *FogLayer { return s.layer }

// Level returns the level being played.
func (s *Session) Level() levels.Level { return s.setup.Level }

// Last returns the result of the most recent tick.
func (s *Session) Last() fog.TickResult { return s.last }

// Ticks returns the number of ticks run.
func (s *Session) Ticks() int { return s.ticks }

// State reports the session counters as a scene state.
func (s *Session) State() core.SceneState {
	return core.SceneState{
		LevelID:    s.setup.Level.ID,
		Ticks:      s.ticks,
		Recomputes: s.recomputes,
		Explored:   s.engine.ExploredFraction(),
	}
}
