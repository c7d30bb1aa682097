package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/levels"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

// MenuItem is a selectable scene.
type MenuItem struct {
	SceneID string
	Title   string
}

// LevelItem is a selectable level.
type LevelItem struct {
	ID   string
	Name string
}

// Selection is what the user picked in the menu.
type Selection struct {
	SceneID string
	LevelID string
}

// MenuModel is the Bubble Tea model for the scene and level picker.
type MenuModel struct {
	items     []MenuItem
	levels    []LevelItem
	cursor    int
	levelIdx  int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *Selection
	openBoard bool
	loadErr   error
	bestByID  map[string]int
}

// NewMenuModel creates a menu listing every registered scene and every
// level in the catalog (built-ins plus levelsDir).
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, levelsDir string) MenuModel {
	scenes := registry.List()
	items := make([]MenuItem, 0, len(scenes))
	for _, s := range scenes {
		items = append(items, MenuItem{SceneID: s.ID, Title: s.Title})
	}

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	catalog, err := levels.Catalog(levelsDir)
	if err != nil {
		m.loadErr = err
	}
	for i, lvl := range catalog {
		m.levels = append(m.levels, LevelItem{ID: lvl.ID, Name: lvl.Name})
		if lvl.ID == cfg.LevelID || (cfg.LevelID == "" && lvl.ID == levels.DefaultLevelID) {
			m.levelIdx = i
		}
	}
	m.loadBest()
	return m
}

// loadBest fetches the best coverage per level for the menu footer.
func (m *MenuModel) loadBest() {
	if m.store == nil {
		return
	}
	stats, err := m.store.LevelStats()
	if err != nil {
		return
	}
	m.bestByID = make(map[string]int, len(stats))
	for id, st := range stats {
		m.bestByID[id] = st.BestPermille
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionPrevLevel:
		if len(m.levels) > 0 {
			m.levelIdx = (m.levelIdx - 1 + len(m.levels)) % len(m.levels)
		}

	case MenuActionNextLevel:
		if len(m.levels) > 0 {
			m.levelIdx = (m.levelIdx + 1) % len(m.levels)
		}

	case MenuActionSelect:
		if len(m.items) > 0 && len(m.levels) > 0 {
			m.selected = &Selection{
				SceneID: m.items[m.cursor].SceneID,
				LevelID: m.levels[m.levelIdx].ID,
			}
			return m, tea.Quit
		}

	case MenuActionBoard:
		m.openBoard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F O G  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scene", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.levels) == 0 {
		b.WriteString(centerText("no levels found", m.width))
	} else {
		lvl := m.levels[m.levelIdx]
		line := fmt.Sprintf("< %s >", lvl.Name)
		if best, ok := m.bestByID[lvl.ID]; ok {
			line += fmt.Sprintf("  best %.1f%%", float64(best)/10)
		}
		b.WriteString(centerText(line, m.width))
	}
	b.WriteString("\n")
	if m.loadErr != nil {
		b.WriteString(centerText(dimStyle.Render("levels: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Scene  |  Left/Right: Level  |  Enter: Start  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBoard returns true if user asked for the run board.
func (m MenuModel) WantsBoard() bool {
	return m.openBoard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
