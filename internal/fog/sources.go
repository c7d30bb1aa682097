package fog

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
)

// SourceKind tells which source produced a ray.
type SourceKind uint8

const (
	SourceAmbient SourceKind = iota
	SourceCone
	SourceLight
)

func (k SourceKind) String() string {
	switch k {
	case SourceAmbient:
		return "ambient"
	case SourceCone:
		return "cone"
	case SourceLight:
		return "light"
	default:
		return "unknown"
	}
}

// Ray is one unit of ray casting work.
type Ray struct {
	Origin core.Vec2
	Dir    core.Vec2
	Radius float64
	Kind   SourceKind
}

// Ambient is the small omnidirectional circle around the viewer.
type Ambient struct {
	Origin   core.Vec2
	Radius   float64
	RayCount int
}

// AppendRays appends RayCount evenly spaced rays starting at angle 0.
func (a Ambient) AppendRays(dst []Ray) []Ray {
	return appendCircle(dst, a.Origin, a.Radius, a.RayCount, SourceAmbient)
}

// Cone is the viewer's directional vision cone.
type Cone struct {
	Origin    core.Vec2
	Facing    float64 // Radians
	HalfAngle float64 // Radians
	Radius    float64
	RayCount  int
}

// AppendRays appends RayCount rays spread from Facing-HalfAngle to
// Facing+HalfAngle inclusive. A single ray points along Facing.
func (c Cone) AppendRays(dst []Ray) []Ray {
	if c.RayCount <= 0 {
		return dst
	}
	r := max(c.Radius, 0)
	if c.RayCount == 1 {
		return append(dst, Ray{Origin: c.Origin, Dir: core.FromAngle(c.Facing), Radius: r, Kind: SourceCone})
	}
	start := c.Facing - c.HalfAngle
	step := 2 * c.HalfAngle / float64(c.RayCount-1)
	for i := 0; i < c.RayCount; i++ {
		dst = append(dst, Ray{
			Origin: c.Origin,
			Dir:    core.FromAngle(start + float64(i)*step),
			Radius: r,
			Kind:   SourceCone,
		})
	}
	return dst
}

// Light is a placed point light. Lights are registered by pointer, so
// moving or resizing a registered light takes effect on the next recompute.
type Light struct {
	Position core.Vec2
	Radius   float64
	RayCount int
}

// NewLight creates a light using the configured defaults.
func NewLight(pos core.Vec2, cfg config.LightsConfig) *Light {
	return &Light{Position: pos, Radius: cfg.DefaultRadius, RayCount: cfg.DefaultRays}
}

// EffectiveRays returns the ray count after applying the cap.
func (l *Light) EffectiveRays(limit int) int {
	if limit <= 0 || limit > config.MaxLightRays {
		limit = config.MaxLightRays
	}
	return min(max(l.RayCount, 0), limit)
}

// AppendRays appends the light's rays using the hard cap.
func (l *Light) AppendRays(dst []Ray) []Ray {
	return appendCircle(dst, l.Position, l.Radius, l.EffectiveRays(config.MaxLightRays), SourceLight)
}

func appendCircle(dst []Ray, origin core.Vec2, radius float64, n int, kind SourceKind) []Ray {
	if n <= 0 {
		return dst
	}
	r := max(radius, 0)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		dst = append(dst, Ray{Origin: origin, Dir: core.FromAngle(float64(i) * step), Radius: r, Kind: kind})
	}
	return dst
}

// Sources is the set of registered lights plus the per-tick enumeration of
// every ray the engine casts.
type Sources struct {
	lights       []*Light
	maxLightRays int
	rays         []Ray
}

// NewSources creates an empty set. maxLightRays caps each light's rays and
// is itself capped at config.MaxLightRays.
func NewSources(maxLightRays int) *Sources {
	if maxLightRays <= 0 || maxLightRays > config.MaxLightRays {
		maxLightRays = config.MaxLightRays
	}
	return &Sources{maxLightRays: maxLightRays}
}

// Register adds l. It returns false if l is nil or already registered.
func (s *Sources) Register(l *Light) bool {
	if l == nil || slices.Contains(s.lights, l) {
		return false
	}
	s.lights = append(s.lights, l)
	return true
}

// Unregister removes l. It returns false if l was not registered.
func (s *Sources) Unregister(l *Light) bool {
	i := slices.Index(s.lights, l)
	if i < 0 {
		return false
	}
	s.lights = slices.Delete(s.lights, i, i+1)
	return true
}

// Has reports whether l is registered.
func (s *Sources) Has(l *Light) bool {
	return slices.Contains(s.lights, l)
}

// Lights returns the registered lights in registration order.
func (s *Sources) Lights() []*Light {
	return slices.Clone(s.lights)
}

// Len returns the number of registered lights.
func (s *Sources) Len() int {
	return len(s.lights)
}

// Enumerate lists every ray for one recompute: ambient first, then the
// cone, then each light in registration order. The returned slice is
// reused by the next call.
func (s *Sources) Enumerate(ambient Ambient, cone Cone) []Ray {
	rays := s.rays[:0]
	rays = ambient.AppendRays(rays)
	rays = cone.AppendRays(rays)
	for _, l := range s.lights {
		rays = appendCircle(rays, l.Position, l.Radius, l.EffectiveRays(s.maxLightRays), SourceLight)
	}
	s.rays = rays
	return rays
}
