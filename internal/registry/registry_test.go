package registry

import (
	"testing"

	"github.com/vovakirdan/tui-fog/internal/core"
)

type stubScene struct{ env Env }

func (s *stubScene) ID() string                           { return "stub" }
func (s *stubScene) Title() string                        { return "Stub" }
func (s *stubScene) Reset(core.RuntimeConfig) error       { return nil }
func (s *stubScene) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubScene) Render(*core.Screen)                  {}
func (s *stubScene) State() core.SceneState               { return core.SceneState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func(env Env) Scene { return &stubScene{env: env} })

	if !Exists("stub") {
		t.Fatal("stub not registered")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub" {
			found = info.Title == "Stub"
		}
	}
	if !found {
		t.Error("List does not report the stub title")
	}

	env := DefaultEnv()
	env.LevelsDir = "/tmp/levels"
	sc, err := Create("stub", env)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sc.(*stubScene).env.LevelsDir != "/tmp/levels" {
		t.Error("factory did not receive the environment")
	}

	if _, err := Create("missing", env); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(Env) Scene { return &stubScene{} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", func(Env) Scene { return &stubScene{} })
}
