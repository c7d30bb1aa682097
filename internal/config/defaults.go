package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
// It mirrors defaults/engine.yaml and is used when the embedded file
// cannot be parsed.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Grid: GridConfig{
			TexelsPerUnit: 2,
		},
		Cone: ConeConfig{
			AngleDeg: 90,
			Radius:   9,
			RayCount: 64,
		},
		Ambient: AmbientConfig{
			Radius:   2.5,
			RayCount: 32,
		},
		Lights: LightsConfig{
			DefaultRadius: 5,
			DefaultRays:   24,
			MaxRays:       MaxLightRays,
		},
		Raycast: RaycastConfig{
			Step:      0.25,
			Softness:  1.0,
			Footprint: 1,
		},
		Scheduler: SchedulerConfig{
			MoveThreshold:    0.05,
			TurnDotThreshold: 0.9995,
			ThrottleTicks:    15,
		},
		Boost: BoostConfig{
			Bonus:           3,
			DurationSeconds: 5,
		},
	}
}
