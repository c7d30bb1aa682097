package explore

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
)

func newScene(t *testing.T) *Scene {
	t.Helper()
	s := New(registry.DefaultEnv())
	cfg := core.DefaultConfig()
	cfg.LevelID = "halls"
	if err := s.Reset(cfg); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return s
}

func script(i int) core.InputFrame {
	in := core.NewInputFrame()
	switch {
	case i%10 < 6:
		in.Set(core.ActionForward)
	case i%10 == 7:
		in.Set(core.ActionTurnRight)
	}
	if i == 30 {
		in.Set(core.ActionLight)
	}
	if i == 45 {
		in.Set(core.ActionBoost)
	}
	return in
}

func TestDeterminism(t *testing.T) {
	s1, s2 := newScene(t), newScene(t)
	for i := 0; i < 120; i++ {
		s1.Step(script(i))
		s2.Step(script(i))
	}

	if a, b := s1.Snapshot(), s2.Snapshot(); a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestExploreMovesAndExplores(t *testing.T) {
	s := newScene(t)
	start := s.Snapshot()

	in := core.NewInputFrame()
	in.Set(core.ActionForward)
	for i := 0; i < 10; i++ {
		s.Step(in)
	}

	snap := s.Snapshot()
	if snap.ViewerX <= start.ViewerX {
		t.Errorf("viewer did not move east: %v -> %v", start.ViewerX, snap.ViewerX)
	}
	if snap.Explored <= 0 || snap.Tick != 10 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestExploreToggles(t *testing.T) {
	s := newScene(t)
	press := func(a core.Action) {
		in := core.NewInputFrame()
		in.Set(a)
		s.Step(in)
	}

	lights := s.Snapshot().Lights
	press(core.ActionLight)
	if s.Snapshot().Lights != lights+1 {
		t.Error("light was not placed")
	}

	press(core.ActionReveal)
	if snap := s.Snapshot(); !snap.Revealed || snap.Explored != 1 {
		t.Errorf("reveal: %+v", snap)
	}

	press(core.ActionResetMap)
	if s.Snapshot().Revealed {
		t.Error("forgetting the map should leave reveal mode")
	}

	press(core.ActionGhost)
	if !s.Snapshot().Ghost {
		t.Error("ghost mode not enabled")
	}
}

func TestExplorePause(t *testing.T) {
	s := newScene(t)
	s.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)
	if !s.State().Paused {
		t.Fatal("scene should be paused")
	}

	ticks := s.State().Ticks
	fwd := core.NewInputFrame()
	fwd.Set(core.ActionForward)
	s.Step(fwd)
	if s.State().Ticks != ticks {
		t.Error("paused scene should not tick")
	}

	s.Step(pause)
	if s.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestExploreRender(t *testing.T) {
	s := newScene(t)
	s.Step(core.NewInputFrame())

	scr := core.NewScreen(80, 24)
	s.Render(scr)
	if !strings.HasPrefix(scr.Row(23), help[:40]) {
		t.Errorf("help row = %q", scr.Row(23))
	}
	if !strings.HasPrefix(scr.Row(21), "Explore  Halls") {
		t.Errorf("hud row = %q", scr.Row(21))
	}
}

func TestExploreUnknownLevel(t *testing.T) {
	s := New(registry.DefaultEnv())
	cfg := core.DefaultConfig()
	cfg.LevelID = "missing"
	if err := s.Reset(cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatal("explore not registered")
	}
	sc, err := registry.Create(ID, registry.DefaultEnv())
	if err != nil || sc.Title() != "Explore" {
		t.Errorf("Create = %v, %v", sc, err)
	}
}
