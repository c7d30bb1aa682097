// Package config provides YAML-based engine configuration loading and
// quality presets for the fog engine and its hosts.
package config

import "math"

// EngineConfig contains all tunables of the visibility engine.
type EngineConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Cone      ConeConfig      `yaml:"cone"`
	Ambient   AmbientConfig   `yaml:"ambient"`
	Lights    LightsConfig    `yaml:"lights"`
	Raycast   RaycastConfig   `yaml:"raycast"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Boost     BoostConfig     `yaml:"boost"`
}

// GridConfig sizes the visibility buffer.
// Width and Height of zero mean "take the size of the loaded level".
type GridConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	TexelsPerUnit float64 `yaml:"texels_per_unit"` // Oversampling factor
}

// ConeConfig defines the viewer's directional vision cone.
type ConeConfig struct {
	AngleDeg float64 `yaml:"angle_deg"` // Total cone width
	Radius   float64 `yaml:"radius"`
	RayCount int     `yaml:"ray_count"`
}

// AmbientConfig defines the small omnidirectional circle around the viewer.
type AmbientConfig struct {
	Radius   float64 `yaml:"radius"`
	RayCount int     `yaml:"ray_count"`
}

// LightsConfig defines placed light defaults and the per-light ray cap.
type LightsConfig struct {
	DefaultRadius float64 `yaml:"default_radius"`
	DefaultRays   int     `yaml:"default_rays"`
	MaxRays       int     `yaml:"max_rays"`
}

// RaycastConfig defines ray marching parameters.
type RaycastConfig struct {
	Step      float64 `yaml:"step"`      // Distance between samples, world units
	Softness  float64 `yaml:"softness"`  // Falloff distance; 0 disables falloff
	Footprint int     `yaml:"footprint"` // Half-size of the marked neighborhood (1 = 3x3)
}

// SchedulerConfig defines when visibility is recomputed.
type SchedulerConfig struct {
	MoveThreshold    float64 `yaml:"move_threshold"`     // World units moved before recompute
	TurnDotThreshold float64 `yaml:"turn_dot_threshold"` // Recompute when dot(facing, last) drops below
	ThrottleTicks    int     `yaml:"throttle_ticks"`     // Recompute at least every N ticks; 0 disables
}

// BoostConfig defines the consumable vision boost used by interactive scenes.
type BoostConfig struct {
	Bonus           float64 `yaml:"bonus"`
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// Hard limits enforced by Validate.
const (
	MaxLightRays = 32
	MaxFootprint = 3
)

// Validate normalises degenerate values in place.
// Negative radii become zero, missing step/oversampling fall back to defaults.
func (c *EngineConfig) Validate() {
	def := DefaultEngineConfig()

	if c.Grid.Width < 0 {
		c.Grid.Width = 0
	}
	if c.Grid.Height < 0 {
		c.Grid.Height = 0
	}
	if c.Grid.TexelsPerUnit <= 0 {
		c.Grid.TexelsPerUnit = def.Grid.TexelsPerUnit
	}

	c.Cone.AngleDeg = clampF(c.Cone.AngleDeg, 0, 360)
	c.Cone.Radius = max(c.Cone.Radius, 0)
	c.Cone.RayCount = max(c.Cone.RayCount, 0)

	c.Ambient.Radius = max(c.Ambient.Radius, 0)
	c.Ambient.RayCount = max(c.Ambient.RayCount, 0)

	c.Lights.DefaultRadius = max(c.Lights.DefaultRadius, 0)
	c.Lights.DefaultRays = max(c.Lights.DefaultRays, 0)
	if c.Lights.MaxRays <= 0 || c.Lights.MaxRays > MaxLightRays {
		c.Lights.MaxRays = MaxLightRays
	}

	if c.Raycast.Step <= 0 {
		c.Raycast.Step = def.Raycast.Step
	}
	c.Raycast.Softness = max(c.Raycast.Softness, 0)
	// A footprint wider than one wall tile in texels spills past thin walls.
	c.Raycast.Footprint = min(max(c.Raycast.Footprint, 0), MaxFootprint, int(math.Floor(c.Grid.TexelsPerUnit)))

	c.Scheduler.MoveThreshold = max(c.Scheduler.MoveThreshold, 0)
	c.Scheduler.TurnDotThreshold = clampF(c.Scheduler.TurnDotThreshold, -1, 1)
	c.Scheduler.ThrottleTicks = max(c.Scheduler.ThrottleTicks, 0)

	c.Boost.Bonus = max(c.Boost.Bonus, 0)
	c.Boost.DurationSeconds = max(c.Boost.DurationSeconds, 0)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
