package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/stage"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

// StageSelectModel lets the player pick the stage to start from.
type StageSelectModel struct {
	stages    []stage.Definition
	stats     map[int]storage.StageStat
	cursor    int
	width     int
	keyMapper *KeyMapper
	selected  int
	done      bool
}

// NewStageSelectModel lists the stages of catalog. stats may be nil.
func NewStageSelectModel(catalog *stage.Catalog, stats []storage.StageStat, width int) StageSelectModel {
	byStage := make(map[int]storage.StageStat, len(stats))
	for _, s := range stats {
		byStage[s.Stage] = s
	}
	return StageSelectModel{
		stages:    catalog.All(),
		stats:     byStage,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m StageSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m StageSelectModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.done = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.stages)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.stages) > 0 {
			m.selected = m.stages[m.cursor].Number
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the stage list.
func (m StageSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT STAGE"), m.width))
	b.WriteString("\n\n")

	for i, def := range m.stages {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%sStage %2d  %d ice blocks, up to %3.0f px/s  %s",
			cursor, def.Number, def.ObstacleCount(), def.MaxObstacleSpeed(), m.badge(def.Number))
		if i == m.cursor {
			line = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: start  |  Esc: back"), m.width))
	return b.String()
}

func (m StageSelectModel) badge(n int) string {
	s, ok := m.stats[n]
	switch {
	case !ok || s.Attempts == 0:
		return "    "
	case s.Clears > 0:
		return "[ok]"
	default:
		return "[..]"
	}
}

// Selected returns the chosen stage number, or 0 if the player backed out.
func (m StageSelectModel) Selected() int { return m.selected }

// RunStageSelect shows the stage picker and returns the chosen stage, or 0.
func RunStageSelect(catalog *stage.Catalog, stats []storage.StageStat, cfg core.RuntimeConfig) (int, error) {
	p := tea.NewProgram(NewStageSelectModel(catalog, stats, cfg.ScreenW), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(StageSelectModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
