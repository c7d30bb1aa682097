package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

// Model is the Bubble Tea model for running one fog scene.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	fixedSeed  bool
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	state      core.SceneState
	err        error
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates a model and starts the scene. A zero seed is replaced by
// the current time and re-rolled on every restart.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		fixedSeed:  fixed,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	if err := scene.Reset(cfg); err != nil {
		m.err = err
		return m
	}
	m.state = scene.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) || m.err != nil {
		m.inputFrame.Clear()
		m.saveRun()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.err != nil || m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.saveRun()
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		if err := m.scene.Reset(m.config); err != nil {
			m.err = err
			return m, nil
		}
		m.state = m.scene.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.scene.Step(m.inputFrame)
	m.state = result.State
	if m.state.Finished {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run once. Runs that never ticked are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.state.Ticks == 0 || m.state.LevelID == "" {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, the scene continues regardless
	m.store.SaveRun(storage.Run{
		SceneID:          m.scene.ID(),
		LevelID:          m.state.LevelID,
		Ticks:            m.state.Ticks,
		Recomputes:       m.state.Recomputes,
		ExploredPermille: storage.Permille(m.state.Explored),
	})
}

func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".fog", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Cannot start %s: %v\n\n  Press any key to continue.\n", m.scene.Title(), m.err)
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last reported scene state.
func (m Model) State() core.SceneState { return m.state }

// Err returns the error that stopped the scene, if any.
func (m Model) Err() error { return m.err }

// RunSaved reports whether the current run has been recorded.
func (m Model) RunSaved() bool { return m.runSaved }

// IsQuitting returns true if the user asked to exit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run starts the Bubble Tea program for one scene and returns its final state.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) (core.SceneState, error) {
	model := NewModel(scene, store, cfg)
	if model.err != nil {
		return core.SceneState{}, model.err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return model.state, err
	}
	if fm, ok := final.(Model); ok {
		return fm.state, fm.err
	}
	return model.state, nil
}
