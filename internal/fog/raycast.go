package fog

import (
	"math"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// Occluder answers wall queries. Raycast returns the distance along the
// unit vector dir to the first wall within maxDist, and whether one was hit.
type Occluder interface {
	Raycast(origin, dir core.Vec2, maxDist float64) (float64, bool)
}

// Marker receives visibility samples. *Buffer implements it.
type Marker interface {
	MarkVisible(p core.Vec2, value float64)
}

// RayCaster marches single rays and writes falloff-weighted samples.
type RayCaster struct {
	Step     float64 // Distance between samples
	Softness float64 // Falloff band width at walls and at the radius
	Occluder Occluder

	// PassThrough skips the occlusion query. The engine copies it once
	// per recompute so a tick is never half occluded.
	PassThrough bool
}

// wallInset keeps the last sample of a blocked ray on the open side of the
// wall boundary, so its footprint is centred in front of the wall.
const wallInset = 1e-6

// StopDistance returns how far a ray may travel before a wall or its radius
// stops it. A blocked ray stops just short of the wall.
func (rc *RayCaster) StopDistance(origin, dir core.Vec2, maxRadius float64) float64 {
	if !(maxRadius > 0) {
		return 0
	}
	if rc.PassThrough || rc.Occluder == nil {
		return maxRadius
	}
	dist, hit := rc.Occluder.Raycast(origin, dir, maxRadius)
	if !hit {
		return maxRadius
	}
	return core.ClampF(dist-wallInset, 0, maxRadius)
}

// CastAndMark marches one ray from origin along dir and marks every sample
// up to the stop distance. It returns the number of samples written.
func (rc *RayCaster) CastAndMark(m Marker, origin, dir core.Vec2, maxRadius float64) int {
	if !(maxRadius > 0) || !(rc.Step > 0) {
		return 0
	}
	dir = dir.Normalize()
	if dir.LenSq() == 0 {
		return 0
	}

	stop := rc.StopDistance(origin, dir, maxRadius)
	n := int(math.Floor(stop/rc.Step + 1e-9))
	for i := 0; i <= n; i++ {
		d := math.Min(float64(i)*rc.Step, stop)
		m.MarkVisible(origin.Add(dir.Scale(d)), Falloff(d, stop, maxRadius, rc.Softness))
	}
	return n + 1
}

// Falloff returns the visibility of a sample at distance d on a ray that
// stops at stop and may reach at most maxRadius. Visibility fades out over
// the last softness units before either limit.
func Falloff(d, stop, maxRadius, softness float64) float64 {
	if !(softness > 0) {
		return 1
	}
	edge := core.Clamp01((stop - d) / softness)
	radial := 1 - core.Clamp01((d-(maxRadius-softness))/softness)
	return math.Min(edge, radial)
}
