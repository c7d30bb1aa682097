package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
	_ "github.com/vovakirdan/tui-fog/internal/scenes/explore"
	_ "github.com/vovakirdan/tui-fog/internal/scenes/patrol"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type stubScene struct {
	ticks     int
	finishAt  int
	resetErr  error
	seeds     []int64
	lastInput core.InputFrame
}

func (s *stubScene) ID() string    { return "stub" }
func (s *stubScene) Title() string { return "Stub" }

func (s *stubScene) Reset(cfg core.RuntimeConfig) error {
	s.seeds = append(s.seeds, cfg.Seed)
	s.ticks = 0
	return s.resetErr
}

func (s *stubScene) Step(in core.InputFrame) core.StepResult {
	s.lastInput = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			s.lastInput.Set(a)
		}
	}
	if s.finishAt == 0 || s.ticks < s.finishAt {
		s.ticks++
	}
	return core.StepResult{State: s.State()}
}

func (s *stubScene) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (s *stubScene) State() core.SceneState {
	return core.SceneState{
		LevelID:    "maze",
		Ticks:      s.ticks,
		Recomputes: s.ticks / 2,
		Explored:   float64(s.ticks) / 10,
		Finished:   s.finishAt > 0 && s.ticks >= s.finishAt,
	}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("w"), core.ActionForward, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward, false},
		{runes("s"), core.ActionBackward, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTurnLeft, false},
		{runes("d"), core.ActionTurnRight, false},
		{runes("l"), core.ActionLight, false},
		{runes("f"), core.ActionBoost, false},
		{runes("m"), core.ActionReveal, false},
		{runes("g"), core.ActionGhost, false},
		{runes("x"), core.ActionResetMap, false},
		{runes("p"), core.ActionPause, false},
		{runes("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionPrevLevel},
		{runes("l"), MenuActionNextLevel},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionBoard},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestANSIColor(t *testing.T) {
	tests := []struct {
		c    core.Color
		want string
	}{
		{core.ColorDefault, ""},
		{core.ColorRed, "1"},
		{core.ColorWhite, "7"},
		{core.ColorBrightRed, "9"},
		{core.ColorBrightWhite, "15"},
		{core.ColorOrange, "208"},
		{core.ColorGray, "245"},
		{core.Gray(0), "232"},
		{core.Gray(core.GraySteps - 1), "255"},
	}
	for _, tt := range tests {
		if got := ANSIColor(tt.c); got != tt.want {
			t.Errorf("ANSIColor(%d) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextColor(0, 0, "ab", core.Gray(3))
	scr.DrawTextColor(2, 0, "cd", core.ColorRed)
	scr.DrawText(0, 1, "ef")

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "ef") {
		t.Errorf("line 1 %q missing ef", lines[1])
	}
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store := testStore(t)
	scene := &stubScene{finishAt: 3}
	m := NewModel(scene, store, testConfig())
	if m.Init() == nil {
		t.Fatal("Init() should start the tick loop")
	}

	for i := 0; i < 5; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.State().Finished || !m.RunSaved() {
		t.Fatalf("state = %+v saved = %v, want finished and saved", m.State(), m.RunSaved())
	}

	runs, err := store.AllRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.SceneID != "stub" || r.LevelID != "maze" || r.Ticks != 3 || r.Recomputes != 1 || r.ExploredPermille != 300 {
		t.Errorf("run = %+v", r)
	}
}

func TestModelRestartKeepsFixedSeed(t *testing.T) {
	store := testStore(t)
	scene := &stubScene{}
	m := NewModel(scene, store, testConfig())

	m = step(t, m, TickMsg{})
	m = step(t, m, runes("r"))
	m = step(t, m, TickMsg{})

	if len(scene.seeds) != 2 || scene.seeds[0] != 42 || scene.seeds[1] != 42 {
		t.Errorf("seeds = %v, want [42 42]", scene.seeds)
	}
	if m.State().Ticks != 0 || m.RunSaved() {
		t.Errorf("after restart state = %+v saved = %v", m.State(), m.RunSaved())
	}
	runs, _ := store.AllRuns()
	if len(runs) != 1 || runs[0].Ticks != 1 {
		t.Errorf("restart should save the abandoned run, got %+v", runs)
	}
}

func TestModelForwardsInput(t *testing.T) {
	scene := &stubScene{}
	m := NewModel(scene, nil, testConfig())

	m = step(t, m, runes("w"))
	m = step(t, m, runes("l"))
	m = step(t, m, TickMsg{})
	if !scene.lastInput.Has(core.ActionForward) || !scene.lastInput.Has(core.ActionLight) {
		t.Errorf("scene input = %v", scene.lastInput.Actions)
	}

	m = step(t, m, TickMsg{})
	if len(scene.lastInput.Actions) != 0 {
		t.Errorf("input should clear after a tick, got %v", scene.lastInput.Actions)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("View() should render the scene")
	}
}

func TestModelBack(t *testing.T) {
	tests := []struct {
		name     string
		embedded bool
		wantQuit bool
	}{
		{"standalone", false, true},
		{"embedded", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(&stubScene{}, nil, testConfig())
			m.embedded = tt.embedded
			m = step(t, m, TickMsg{})
			m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.IsQuitting() != tt.wantQuit || m.BackToMenu() == tt.wantQuit {
				t.Errorf("quitting = %v back = %v", m.IsQuitting(), m.BackToMenu())
			}
			if !m.RunSaved() {
				t.Error("leaving should record the run")
			}
		})
	}
}

func TestModelResetError(t *testing.T) {
	scene := &stubScene{resetErr: errors.New("no such level")}
	m := NewModel(scene, nil, testConfig())
	if m.Err() == nil {
		t.Fatal("Err() should report the reset failure")
	}
	if m.Init() != nil {
		t.Error("Init() should not tick a failed scene")
	}
	if !strings.Contains(m.View(), "no such level") {
		t.Errorf("View() = %q, want the error", m.View())
	}
	m = step(t, m, runes("w"))
	if !m.IsQuitting() {
		t.Error("any key should leave a failed scene")
	}
}

func TestMenuSelectsSceneAndLevel(t *testing.T) {
	cfg := testConfig()
	menu := NewMenuModel(nil, cfg, "")
	if len(menu.items) < 2 || len(menu.levels) < 3 {
		t.Fatalf("menu has %d scenes and %d levels", len(menu.items), len(menu.levels))
	}

	next, _ := menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	menu = next.(MenuModel)
	next, _ = menu.Update(tea.KeyMsg{Type: tea.KeyRight})
	menu = next.(MenuModel)
	next, cmd := menu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu = next.(MenuModel)

	sel := menu.Selected()
	if sel == nil || cmd == nil {
		t.Fatal("enter should select and close the menu")
	}
	if sel.SceneID != "patrol" || sel.LevelID != "maze" {
		t.Errorf("selection = %+v, want patrol on maze", *sel)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 80, 24
	s := NewSessionModel(testStore(t), cfg, registry.DefaultEnv())

	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewScene || s.scene == nil {
		t.Fatalf("enter should start a scene, view = %v", s.view)
	}
	update(TickMsg{})
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Fatalf("esc should return to the menu, view = %v", s.view)
	}
	runs, _ := s.store.AllRuns()
	if len(runs) != 1 || runs[0].SceneID != "explore" || runs[0].LevelID != "halls" {
		t.Errorf("runs = %+v, want one explore run on halls", runs)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewBoard {
		t.Fatalf("tab should open the board, view = %v", s.view)
	}
	if s.board.CurrentLevel() != "cavern" {
		t.Errorf("board starts on %q, want the first level", s.board.CurrentLevel())
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Fatalf("esc should leave the board, view = %v", s.view)
	}

	update(runes("q"))
	if !s.quitting || s.View() != "" {
		t.Error("q should end the session")
	}
}

func TestBoardShowsRuns(t *testing.T) {
	store := testStore(t)
	store.SaveRun(storage.Run{SceneID: "patrol", LevelID: "maze", Ticks: 900, Recomputes: 120, ExploredPermille: 655})
	store.SaveRun(storage.Run{SceneID: "explore", LevelID: "maze", Ticks: 400, Recomputes: 80, ExploredPermille: 200})

	board := NewBoardModel(store, "", "maze", 100, 30)
	if board.CurrentLevel() != "maze" {
		t.Fatalf("CurrentLevel() = %q, want maze", board.CurrentLevel())
	}
	rows := RunRows(board.Runs())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"#1", "65.5%", "900", "120", "patrol"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}

	next, _ := board.Update(tea.KeyMsg{Type: tea.KeyTab})
	board = next.(BoardModel)
	if board.CurrentLevel() == "maze" || len(board.Runs()) != 0 {
		t.Errorf("tab should move to another level with no runs, got %q", board.CurrentLevel())
	}
	if !strings.Contains(board.View(), "No runs recorded yet") {
		t.Error("empty level should show the placeholder")
	}
}
