// Package scenes holds the behavior shared by the fog scenes: level
// loading, the mode toggles every scene supports, HUD rendering and
// determinism snapshots.
package scenes

import (
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/levels"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/sim"
)

// Base implements the parts of registry.Scene common to all scenes.
type Base struct {
	id    string
	title string
	help  string
	env   registry.Env

	cfg      core.RuntimeConfig
	session  *sim.Session
	paused   bool
	finished bool
}

// NewBase creates a scene base. help is the key hint line shown in the HUD.
func NewBase(id, title, help string, env registry.Env) Base {
	return Base{id: id, title: title, help: help, env: env}
}

// ID returns the scene identifier.
func (b *Base) ID() string { return b.id }

// Title returns the display name.
func (b *Base) Title() string { return b.title }

// Load resolves the level and starts a new session.
func (b *Base) Load(cfg core.RuntimeConfig) error {
	lvl, err := levels.Find(b.env.LevelsDir, cfg.LevelID)
	if err != nil {
		return err
	}

	b.cfg = cfg
	b.cfg.LevelID = lvl.ID
	b.paused = false
	b.finished = false
	b.session = sim.NewSession(sim.Setup{
		SceneID:  b.id,
		Runtime:  cfg,
		Engine:   b.env.Engine,
		Level:    lvl,
		Targets:  b.env.Targets,
		Observer: b.env.Observer,
	})
	return nil
}

// Session returns the running session; nil before Load.
func (b *Base) Session() *sim.Session { return b.session }

// Config returns the runtime config of the current run.
func (b *Base) Config() core.RuntimeConfig { return b.cfg }

// Paused reports whether the scene is paused.
func (b *Base) Paused() bool { return b.paused }

// Finished reports whether the run has ended.
func (b *Base) Finished() bool { return b.finished }

// Finish ends the run.
func (b *Base) Finish() { b.finished = true }

// HandleCommon applies the toggles every scene supports. It returns true
// when the scene should advance the simulation this tick.
func (b *Base) HandleCommon(in core.InputFrame) bool {
	if b.session == nil {
		return false
	}
	if in.Has(core.ActionPause) {
		b.paused = !b.paused
	}
	if b.finished || b.paused {
		return false
	}

	if in.Has(core.ActionReveal) {
		b.session.ToggleReveal()
	}
	if in.Has(core.ActionGhost) {
		b.session.ToggleGhost()
	}
	if in.Has(core.ActionResetMap) {
		b.session.ResetExploration()
	}
	if in.Has(core.ActionBoost) {
		b.session.Boost()
	}
	return true
}

// State returns the current scene state.
func (b *Base) State() core.SceneState {
	if b.session == nil {
		return core.SceneState{LevelID: b.cfg.LevelID}
	}
	st := b.session.State()
	st.Finished = b.finished
	st.Paused = b.paused
	return st
}

// Render draws the session with the HUD and key hints.
func (b *Base) Render(dst *core.Screen) {
	dst.Clear()
	if b.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "loading...")
		return
	}

	hud := b.session.HUD(b.title, b.paused)
	if b.finished {
		hud[0] += "  [finished]"
	}
	if b.help != "" {
		hud = append(hud, b.help)
	}
	b.session.Render(dst, hud)
}

// Snapshot captures the scene state for determinism testing.
type Snapshot struct {
	Tick       int
	ViewerX    float64
	ViewerY    float64
	Angle      float64
	Explored   float64
	Recomputes int
	Lights     int
	Revealed   bool
	Ghost      bool
	Finished   bool
}

// Snapshot returns the current snapshot.
func (b *Base) Snapshot() Snapshot {
	if b.session == nil {
		return Snapshot{}
	}
	p := b.session.Walker().Position()
	e := b.session.Engine()
	st := b.session.State()
	return Snapshot{
		Tick:       st.Ticks,
		ViewerX:    p.X,
		ViewerY:    p.Y,
		Angle:      b.session.Walker().Angle(),
		Explored:   st.Explored,
		Recomputes: st.Recomputes,
		Lights:     len(e.Lights()),
		Revealed:   e.Revealed(),
		Ghost:      e.PassThrough(),
		Finished:   b.finished,
	}
}
