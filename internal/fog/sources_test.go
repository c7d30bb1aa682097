package fog

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
)

func angleOf(r Ray) float64 {
	return math.Atan2(r.Dir.Y, r.Dir.X)
}

func TestConeRays(t *testing.T) {
	c := Cone{Origin: core.V(1, 1), Facing: 0, HalfAngle: math.Pi / 4, Radius: 5, RayCount: 3}
	rays := c.AppendRays(nil)

	want := []float64{-math.Pi / 4, 0, math.Pi / 4}
	if len(rays) != len(want) {
		t.Fatalf("got %d rays, want %d", len(rays), len(want))
	}
	for i, r := range rays {
		if math.Abs(angleOf(r)-want[i]) > 1e-9 {
			t.Errorf("ray %d angle = %v, want %v", i, angleOf(r), want[i])
		}
		if r.Kind != SourceCone || r.Radius != 5 || r.Origin != c.Origin {
			t.Errorf("ray %d = %+v", i, r)
		}
	}
}

func TestConeSingleRayFollowsFacing(t *testing.T) {
	c := Cone{Facing: math.Pi / 2, HalfAngle: math.Pi / 3, Radius: 2, RayCount: 1}
	rays := c.AppendRays(nil)
	if len(rays) != 1 || math.Abs(angleOf(rays[0])-math.Pi/2) > 1e-9 {
		t.Errorf("single ray = %+v, want facing", rays)
	}
}

func TestCircleRaysStartAtZero(t *testing.T) {
	rays := Ambient{Radius: 1, RayCount: 4}.AppendRays(nil)
	want := []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}
	for i, r := range rays {
		if d := math.Abs(math.Remainder(angleOf(r)-want[i], 2*math.Pi)); d > 1e-9 {
			t.Errorf("ray %d angle = %v, want %v", i, angleOf(r), want[i])
		}
	}
}

func TestDegenerateSources(t *testing.T) {
	if rays := (Ambient{Radius: 3}).AppendRays(nil); len(rays) != 0 {
		t.Errorf("zero-ray ambient produced %d rays", len(rays))
	}
	if rays := (Cone{Radius: 3, RayCount: -2}).AppendRays(nil); len(rays) != 0 {
		t.Errorf("negative-ray cone produced %d rays", len(rays))
	}
	rays := (Ambient{Radius: -1, RayCount: 2}).AppendRays(nil)
	for _, r := range rays {
		if r.Radius != 0 {
			t.Errorf("negative radius ray has radius %v, want 0", r.Radius)
		}
	}
}

func TestSourcesRegistration(t *testing.T) {
	s := NewSources(32)
	a := &Light{Radius: 1, RayCount: 4}
	b := &Light{Radius: 1, RayCount: 4}

	if s.Register(nil) {
		t.Error("Register(nil) should fail")
	}
	if !s.Register(a) || s.Register(a) {
		t.Error("second Register of the same light should be a no-op")
	}
	if s.Unregister(b) {
		t.Error("Unregister of an unknown light should be a no-op")
	}
	s.Register(b)
	if got := s.Lights(); !slices.Equal(got, []*Light{a, b}) {
		t.Errorf("Lights = %v, want registration order", got)
	}
	if !s.Unregister(a) || s.Has(a) || s.Len() != 1 {
		t.Error("Unregister did not remove the light")
	}
}

func TestEnumerateOrder(t *testing.T) {
	s := NewSources(32)
	near := &Light{Position: core.V(3, 3), Radius: 2, RayCount: 2}
	bright := &Light{Position: core.V(7, 7), Radius: 4, RayCount: 40}
	off := &Light{Position: core.V(9, 9), Radius: 4, RayCount: 0}
	s.Register(near)
	s.Register(bright)
	s.Register(off)

	ambient := Ambient{Origin: core.V(1, 1), Radius: 1, RayCount: 4}
	cone := Cone{Origin: core.V(1, 1), HalfAngle: 0.5, Radius: 6, RayCount: 3}
	rays := s.Enumerate(ambient, cone)

	if len(rays) != 4+3+2+config.MaxLightRays {
		t.Fatalf("got %d rays, want %d", len(rays), 4+3+2+config.MaxLightRays)
	}

	var kinds []SourceKind
	for _, r := range rays {
		if len(kinds) == 0 || kinds[len(kinds)-1] != r.Kind {
			kinds = append(kinds, r.Kind)
		}
	}
	if !slices.Equal(kinds, []SourceKind{SourceAmbient, SourceCone, SourceLight}) {
		t.Errorf("kind order = %v", kinds)
	}
	if rays[7].Origin != near.Position || rays[9].Origin != bright.Position {
		t.Error("lights not enumerated in registration order")
	}

	again := slices.Clone(rays)
	if !slices.Equal(again, s.Enumerate(ambient, cone)) {
		t.Error("enumeration is not deterministic")
	}
}

func TestSourcesConfiguredCap(t *testing.T) {
	s := NewSources(8)
	s.Register(&Light{Radius: 1, RayCount: 20})
	if rays := s.Enumerate(Ambient{}, Cone{}); len(rays) != 8 {
		t.Errorf("got %d light rays, want 8", len(rays))
	}

	l := &Light{Radius: 1, RayCount: 100}
	if rays := l.AppendRays(nil); len(rays) != 32 {
		t.Errorf("hard cap: got %d rays, want 32", len(rays))
	}
}
