// Package tui provides the Bubble Tea front end: the play loop, the title
// menu, the stage picker and the stats board.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/registry"
)

// EventHandler receives the events produced by each step.
type EventHandler interface {
	Handle(events []core.Event)
}

// TickMsg asks the model to advance the game by one fixed step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	events EventHandler
	cfg    core.RuntimeConfig
	keys   *KeyMapper

	pending core.InputFrame // actions since the last tick
	last    core.GameState

	quitting  bool
	wantsBack bool
}

// NewModel creates a model for game. events may be nil.
func NewModel(game registry.Game, events EventHandler, cfg core.RuntimeConfig) *Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		events:  events,
		cfg:     cfg,
		keys:    NewKeyMapper(),
		pending: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.cfg)
	m.last = m.game.State()
	return tickCmd(m.cfg.TickRate)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.step()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cfg.ScreenW, m.cfg.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.pending) {
		m.quitting = true
		return m, tea.Quit
	}
	leave := m.pending.Has(core.ActionBack) ||
		(m.last.Over && m.pending.Has(core.ActionConfirm))
	if leave {
		m.wantsBack = true
		return m, tea.Quit
	}
	return m, nil
}

// step runs one game tick with the pending actions, then schedules the next.
func (m *Model) step() (tea.Model, tea.Cmd) {
	res := m.game.Step(m.pending)
	m.pending.Clear()
	m.last = res.State
	if len(res.Events) > 0 && m.events != nil {
		m.events.Handle(res.Events)
	}
	return m, tickCmd(m.cfg.TickRate)
}

// saveScreenshot writes the current frame as plain text under
// ~/.santa/screenshots.
// Failures are ignored; a missing screenshot never interrupts play.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".santa", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	m.game.Render(m.screen)
	name := fmt.Sprintf("%s-%s.txt", m.game.ID(), time.Now().Format("20060102-150405"))
	_ = os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m *Model) State() core.GameState { return m.last }

// WantsBack reports whether the player left the game for the menu.
func (m *Model) WantsBack() bool { return m.wantsBack }

// Run plays game until the player quits or goes back. It reports whether
// the player asked to return to the menu.
func Run(game registry.Game, events EventHandler, cfg core.RuntimeConfig) (bool, error) {
	model := NewModel(game, events, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(*Model); ok {
		return fm.WantsBack(), nil
	}
	return false, nil
}
