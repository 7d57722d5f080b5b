package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/santa-delivery/internal/config"
	"github.com/vovakirdan/santa-delivery/internal/core"
)

// MenuChoice is an entry of the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceClassic
	ChoiceSelectStage
	ChoiceStats
	ChoiceQuit
)

type menuItem struct {
	choice MenuChoice
	label  string
}

var menuItems = []menuItem{
	{ChoicePlay, "Deliver presents"},
	{ChoiceClassic, "Deliver presents (classic tap)"},
	{ChoiceSelectStage, "Select stage..."},
	{ChoiceStats, "Delivery log"},
	{ChoiceQuit, "Quit"},
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	cursor     int
	difficulty int // index into config.Presets()
	width      int
	height     int
	cfg        core.RuntimeConfig
	keys       *KeyMapper
	chosen     MenuChoice
}

// NewMenuModel creates the title menu with the difficulty preset from cfg
// preselected.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		cfg:    cfg,
		keys:   NewKeyMapper(),
	}
	preset, err := config.ParsePreset(cfg.Difficulty)
	if err != nil {
		preset = config.DifficultyNormal
	}
	for i, p := range config.Presets() {
		if p == preset {
			m.difficulty = i
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keys.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cfg.ScreenW, m.cfg.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	presets := config.Presets()

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.chosen = ChoiceQuit
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(menuItems)
	case MenuActionLeft:
		m.difficulty = (m.difficulty + len(presets) - 1) % len(presets)
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % len(presets)
	case MenuActionSelect:
		m.chosen = menuItems[m.cursor].choice
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.chosen == ChoiceQuit {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("S A N T A   D E L I V E R Y"),
		"",
		"Tap to fly. Dodge the ice. Reach the tree.",
		"",
	}
	for i, item := range menuItems {
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+item.label))
		} else {
			lines = append(lines, "  "+item.label)
		}
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Difficulty: < %s >", m.Difficulty()),
		"",
		menuHintStyle.Render("Up/Down: navigate  |  Left/Right: difficulty  |  Enter: select  |  Q: quit"),
	)

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Choice returns the chosen entry, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice { return m.chosen }

// Difficulty returns the selected preset name.
func (m MenuModel) Difficulty() string {
	return string(config.Presets()[m.difficulty])
}

// Config returns the runtime config with the menu's screen size and
// difficulty applied.
func (m MenuModel) Config() core.RuntimeConfig {
	cfg := m.cfg
	cfg.Difficulty = m.Difficulty()
	return cfg
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player picked and the config to play it with.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu shows the title menu until the player picks an entry.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
