package config

import "fmt"

// QualityPreset trades visual resolution for per-tick cost.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
	QualityUltra  QualityPreset = "ultra"
)

// ParseQuality converts a flag value into a preset.
// The empty string means "keep the loaded config".
func ParseQuality(s string) (QualityPreset, error) {
	switch QualityPreset(s) {
	case "", QualityLow, QualityMedium, QualityHigh, QualityUltra:
		return QualityPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown quality preset %q (want low, medium, high or ultra)", s)
}

// ApplyQualityPreset adjusts oversampling, ray density and march step.
// Ray density has to grow with oversampling or the footprint stops
// closing the gaps between neighbouring rays at the cone edge.
func ApplyQualityPreset(cfg *EngineConfig, preset QualityPreset) {
	switch preset {
	case QualityLow:
		cfg.Grid.TexelsPerUnit = 1
		cfg.Cone.RayCount = 32
		cfg.Ambient.RayCount = 16
		cfg.Lights.DefaultRays = 12
		cfg.Raycast.Step = 0.5
		cfg.Scheduler.ThrottleTicks = 30
	case QualityMedium:
		def := DefaultEngineConfig()
		cfg.Grid.TexelsPerUnit = def.Grid.TexelsPerUnit
		cfg.Cone.RayCount = def.Cone.RayCount
		cfg.Ambient.RayCount = def.Ambient.RayCount
		cfg.Lights.DefaultRays = def.Lights.DefaultRays
		cfg.Raycast.Step = def.Raycast.Step
		cfg.Scheduler.ThrottleTicks = def.Scheduler.ThrottleTicks
	case QualityHigh:
		cfg.Grid.TexelsPerUnit = 3
		cfg.Cone.RayCount = 96
		cfg.Ambient.RayCount = 48
		cfg.Lights.DefaultRays = 32
		cfg.Raycast.Step = 0.2
		cfg.Scheduler.ThrottleTicks = 10
	case QualityUltra:
		cfg.Grid.TexelsPerUnit = 4
		cfg.Cone.RayCount = 128
		cfg.Ambient.RayCount = 64
		cfg.Lights.DefaultRays = 32
		cfg.Raycast.Step = 0.125
		cfg.Scheduler.ThrottleTicks = 5
	}
}
