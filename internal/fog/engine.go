// Package fog implements a grid visibility engine: a directional cone, an
// ambient circle and placed lights are ray cast against walls once per
// tick into a dense buffer of current and explored visibility, and only
// the changed part of the buffer is re-encoded for rendering.
//
// The engine is single threaded. Hosts that share one Engine between
// goroutines must serialise calls themselves.
package fog

import (
	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
)

// Viewer is the entity whose eyes the cone and ambient circle follow.
type Viewer interface {
	Position() core.Vec2
	Facing() core.Vec2
}

// RenderTarget receives the encoded mirrors after every recompute.
// Only cells inside span are guaranteed to have changed hands; the mirror
// must not be retained past the call.
type RenderTarget interface {
	Upload(m *Mirror, span Region)
}

// TargetFunc adapts a function to RenderTarget.
type TargetFunc func(m *Mirror, span Region)

// Upload calls f(m, span).
func (f TargetFunc) Upload(m *Mirror, span Region) { f(m, span) }

// MultiTarget fans one upload out to several targets in order.
type MultiTarget []RenderTarget

// Upload forwards to every non-nil target.
func (mt MultiTarget) Upload(m *Mirror, span Region) {
	for _, t := range mt {
		if t != nil {
			t.Upload(m, span)
		}
	}
}

// SkipCause says why a tick did nothing.
type SkipCause uint8

const (
	SkipNone SkipCause = iota
	SkipUninitialized
	SkipNoViewer
)

func (c SkipCause) String() string {
	switch c {
	case SkipNone:
		return "none"
	case SkipUninitialized:
		return "grid not initialised"
	case SkipNoViewer:
		return "no viewer"
	default:
		return "unknown"
	}
}

// TickResult describes what one Tick did.
type TickResult struct {
	Reason       Reason
	Skipped      bool
	Cause        SkipCause
	Rays         int
	Samples      int
	Span         Region // Re-encoded cells; invalid when nothing was uploaded
	BoostExpired bool
}

// Recomputed reports whether visibility was recomputed this tick.
func (r TickResult) Recomputed() bool {
	return !r.Skipped && r.Reason.Recompute()
}

// Stats are running counters since the engine was created.
type Stats struct {
	Ticks         int
	Recomputes    int
	Skipped       int
	Rays          int64
	Samples       int64
	CellsUploaded int64 // Cells handed to the render target
	LastReason    Reason
}

// Option configures an Engine.
type Option func(*Engine)

// WithViewer sets the viewer.
func WithViewer(v Viewer) Option {
	return func(e *Engine) { e.viewer = v }
}

// WithOccluder sets the wall query.
func WithOccluder(o Occluder) Option {
	return func(e *Engine) { e.occluder = o }
}

// WithRenderTarget sets the render target.
func WithRenderTarget(t RenderTarget) Option {
	return func(e *Engine) { e.target = t }
}

// WithGrid initialises the buffer for a width x height world.
func WithGrid(width, height float64) Option {
	return func(e *Engine) {
		e.cfg.Grid.Width = width
		e.cfg.Grid.Height = height
	}
}

// Engine owns the visibility buffer and drives it once per tick.
type Engine struct {
	cfg config.EngineConfig

	buffer    *Buffer
	caster    RayCaster
	sources   *Sources
	scheduler *Scheduler
	boost     Boost

	viewer      Viewer
	occluder    Occluder
	target      RenderTarget
	passThrough bool

	stats Stats
}

// New creates an engine. The config is normalised first; the grid is
// initialised when the config (or WithGrid) gives it a positive size,
// otherwise ticks are skipped until SetGridDimensions.
func New(cfg config.EngineConfig, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg.Validate()

	e.buffer = NewBuffer(e.cfg.Raycast.Footprint)
	e.caster = RayCaster{Step: e.cfg.Raycast.Step, Softness: e.cfg.Raycast.Softness}
	e.sources = NewSources(e.cfg.Lights.MaxRays)
	e.scheduler = NewScheduler(e.cfg.Scheduler)

	if e.cfg.Grid.Width > 0 && e.cfg.Grid.Height > 0 {
		e.buffer.Init(e.cfg.Grid.Width, e.cfg.Grid.Height, e.cfg.Grid.TexelsPerUnit)
	}
	return e
}

// Config returns the normalised configuration in use.
func (e *Engine) Config() config.EngineConfig {
	return e.cfg
}

// SetViewer replaces the viewer and forces a recompute.
func (e *Engine) SetViewer(v Viewer) {
	e.viewer = v
	e.scheduler.Reset()
}

// SetOccluder replaces the wall query and forces a recompute.
func (e *Engine) SetOccluder(o Occluder) {
	e.occluder = o
	e.scheduler.RequestForce()
}

// SetRenderTarget replaces the render target. The next commit re-encodes
// the whole grid so the new target starts from a complete frame.
func (e *Engine) SetRenderTarget(t RenderTarget) {
	e.target = t
	if e.buffer.Ready() {
		e.buffer.fullRefresh = true
		e.scheduler.RequestForce()
	}
}

// SetGridDimensions resizes the world. All visibility and exploration is
// discarded; revealed mode survives.
func (e *Engine) SetGridDimensions(width, height float64) {
	e.cfg.Grid.Width = max(width, 0)
	e.cfg.Grid.Height = max(height, 0)
	e.buffer.Init(e.cfg.Grid.Width, e.cfg.Grid.Height, e.cfg.Grid.TexelsPerUnit)
	e.scheduler.Reset()
}

// SetPassThrough toggles ignoring walls. Takes effect on the next recompute.
func (e *Engine) SetPassThrough(on bool) {
	if e.passThrough != on {
		e.passThrough = on
		e.scheduler.RequestForce()
	}
}

// PassThrough reports whether walls are ignored.
func (e *Engine) PassThrough() bool {
	return e.passThrough
}

// Tick advances the engine by dt seconds and recomputes visibility if the
// scheduler asks for it.
func (e *Engine) Tick(dt float64) TickResult {
	e.stats.Ticks++

	var res TickResult
	if e.boost.Update(dt) {
		res.BoostExpired = true
		e.scheduler.RequestForce()
	}

	switch {
	case !e.buffer.Ready():
		res.Skipped, res.Cause = true, SkipUninitialized
	case e.viewer == nil:
		res.Skipped, res.Cause = true, SkipNoViewer
	}
	if res.Skipped {
		e.stats.Skipped++
		return res
	}

	pos := e.viewer.Position()
	facing := e.viewer.Facing().Normalize()
	res.Reason = e.scheduler.Evaluate(pos, facing)
	e.stats.LastReason = res.Reason
	if !res.Reason.Recompute() {
		return res
	}

	e.recompute(pos, facing, &res)

	e.stats.Recomputes++
	e.stats.Rays += int64(res.Rays)
	e.stats.Samples += int64(res.Samples)
	return res
}

func (e *Engine) recompute(pos, facing core.Vec2, res *TickResult) {
	e.buffer.BeginTick()

	if e.buffer.Revealed() {
		e.buffer.FillVisible()
	} else {
		e.caster.Occluder = e.occluder
		e.caster.PassThrough = e.passThrough

		ambient := Ambient{Origin: pos, Radius: e.AmbientRadius(), RayCount: e.cfg.Ambient.RayCount}
		cone := Cone{
			Origin:    pos,
			Facing:    facing.Angle(),
			HalfAngle: core.Radians(e.cfg.Cone.AngleDeg) / 2,
			Radius:    e.ConeRadius(),
			RayCount:  e.cfg.Cone.RayCount,
		}
		rays := e.sources.Enumerate(ambient, cone)
		for _, r := range rays {
			res.Samples += e.caster.CastAndMark(e.buffer, r.Origin, r.Dir, r.Radius)
		}
		res.Rays = len(rays)
	}

	res.Span = e.buffer.CommitTick()
	if e.target != nil && res.Span.Valid {
		e.target.Upload(e.buffer.Mirror(), res.Span)
		e.stats.CellsUploaded += int64(res.Span.Area())
	}
}

// IsVisible reports whether p is currently lit at least to threshold.
// Positions off the grid are never visible.
func (e *Engine) IsVisible(p core.Vec2, threshold float64) bool {
	if !e.buffer.InBounds(p) {
		return false
	}
	return e.buffer.Sample(p) >= threshold
}

// VisibilityAt returns the current visibility at p.
func (e *Engine) VisibilityAt(p core.Vec2) float64 {
	return e.buffer.Sample(p)
}

// ExploredAt returns the explored visibility at p.
func (e *Engine) ExploredAt(p core.Vec2) float64 {
	return e.buffer.ExploredAt(p)
}

// ExploredFraction returns the share of cells ever seen.
func (e *Engine) ExploredFraction() float64 {
	return e.buffer.ExploredFraction()
}

// ApplyBoost grows the cone and ambient radii by bonus for the given
// number of seconds, replacing any running boost.
func (e *Engine) ApplyBoost(bonus, seconds float64) {
	e.boost.Apply(bonus, seconds)
	e.scheduler.RequestForce()
}

// BoostTimeRemaining returns the seconds left on the running boost.
func (e *Engine) BoostTimeRemaining() float64 {
	return e.boost.Remaining()
}

// ConeRadius returns the cone radius including any boost.
func (e *Engine) ConeRadius() float64 {
	return e.cfg.Cone.Radius + e.boost.Bonus()
}

// AmbientRadius returns the ambient radius including any boost.
func (e *Engine) AmbientRadius() float64 {
	return e.cfg.Ambient.Radius + e.boost.Bonus()
}

// ForceUpdate makes the next tick recompute.
func (e *Engine) ForceUpdate() {
	e.scheduler.RequestForce()
}

// ResetExploration forgets everything explored and leaves revealed mode.
func (e *Engine) ResetExploration() {
	e.buffer.Reset()
	e.scheduler.RequestForce()
}

// RevealAll marks the whole map explored and lights it on every recompute
// until ClearReveal.
func (e *Engine) RevealAll() {
	e.buffer.RevealAll()
	e.scheduler.RequestForce()
}

// ClearReveal leaves revealed mode. Exploration is kept.
func (e *Engine) ClearReveal() {
	e.buffer.ClearReveal()
	e.scheduler.RequestForce()
}

// Revealed reports whether revealed mode is on.
func (e *Engine) Revealed() bool {
	return e.buffer.Revealed()
}

// RegisterLight adds a placed light. It returns false for nil or
// already registered lights. The light is picked up on the next recompute.
func (e *Engine) RegisterLight(l *Light) bool {
	return e.sources.Register(l)
}

// UnregisterLight removes a placed light. It returns false if unknown.
func (e *Engine) UnregisterLight(l *Light) bool {
	return e.sources.Unregister(l)
}

// Lights returns the registered lights in registration order.
func (e *Engine) Lights() []*Light {
	return e.sources.Lights()
}

// Buffer exposes the visibility buffer for read-only inspection.
func (e *Engine) Buffer() *Buffer {
	return e.buffer
}

// Stats returns the running counters.
func (e *Engine) Stats() Stats {
	return e.stats
}
