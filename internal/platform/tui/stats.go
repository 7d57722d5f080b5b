package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/santa-delivery/internal/registry"
	"github.com/vovakirdan/santa-delivery/internal/storage"
)

// Stats board layout constants.
const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	recentAttempts     = 200
)

// StatsView selects what the stats table shows.
type StatsView int

const (
	StatsByStage StatsView = iota
	StatsRecent
)

// StatsKeyMap defines the key bindings for the stats board.
type StatsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextGame   key.Binding
	PrevGame   key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.ToggleView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.ToggleView, k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		PrevGame:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "stages/recent")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// StatsModel is the Bubble Tea model for the delivery log.
type StatsModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	view       StatsView
	stats      []storage.StageStat
	attempts   []storage.Attempt
	loadErr    error
	table      table.Model
	help       help.Model
	keys       StatsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewStatsModel creates the stats board. store may be nil.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	m := StatsModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultStatsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *StatsModel) columns() []table.Column {
	if m.view == StatsRecent {
		return []table.Column{
			{Title: "When", Width: 14},
			{Title: "Stage", Width: 6},
			{Title: "Outcome", Width: 9},
			{Title: "Ticks", Width: 8},
			{Title: "Seed", Width: 20},
		}
	}
	return []table.Column{
		{Title: "Stage", Width: 6},
		{Title: "Tries", Width: 7},
		{Title: "Fails", Width: 7},
		{Title: "Clears", Width: 7},
		{Title: "Clear %", Width: 8},
		{Title: "Best", Width: 8},
	}
}

func (m *StatsModel) createTable() table.Model {
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *StatsModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload queries the store for the selected variant and view.
func (m *StatsModel) reload() {
	m.stats, m.attempts, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		if m.view == StatsRecent {
			m.attempts, m.loadErr = m.store.RecentAttempts(m.currentGame(), recentAttempts)
		} else {
			m.stats, m.loadErr = m.store.StageStats(m.currentGame())
		}
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *StatsModel) rows() []table.Row {
	if m.view == StatsRecent {
		rows := make([]table.Row, len(m.attempts))
		for i, a := range m.attempts {
			rows[i] = table.Row{
				a.CreatedAt.Local().Format("Jan 02 15:04"),
				fmt.Sprintf("%d", a.Stage),
				a.Outcome,
				fmt.Sprintf("%d", a.Ticks),
				fmt.Sprintf("%d", a.Seed),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.stats))
	for i, s := range m.stats {
		best := "-"
		if s.BestTicks > 0 {
			best = fmt.Sprintf("%d", s.BestTicks)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.Stage),
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Fails),
			fmt.Sprintf("%d", s.Clears),
			fmt.Sprintf("%.0f%%", s.ClearRate()*100),
			best,
		}
	}
	return rows
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats board.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.ToggleView):
			m.view = 1 - m.view
			m.table = m.createTable()
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats board.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "DELIVERY LOG"
	if len(m.games) > 0 {
		title = fmt.Sprintf("DELIVERY LOG - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.width >= minWidthForSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(centerText(boxStyle().Render(m.renderTableContent()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

func (m StatsModel) renderWideLayout() string {
	var side strings.Builder
	side.WriteString("Variants\n")
	side.WriteString(strings.Repeat("-", sidebarWidth-4))
	side.WriteString("\n")
	for i, g := range m.games {
		line := "  " + g.ID
		if i == m.gameCursor {
			line = menuCursorStyle.Render("> " + g.ID)
		}
		side.WriteString(line)
		side.WriteString("\n")
	}
	side.WriteString("\nView: ")
	if m.view == StatsRecent {
		side.WriteString("recent")
	} else {
		side.WriteString("by stage")
	}

	sidebar := boxStyle().Width(sidebarWidth).Render(side.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", boxStyle().Render(m.renderTableContent()))
}

func (m StatsModel) renderTableContent() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("The attempt log is unavailable.")
	case m.loadErr != nil:
		return empty.Render("Cannot read the attempt log:\n" + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		return empty.Render("No deliveries yet.\nPlay a stage to fill the log!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player wants the menu again.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// RunStats shows the stats board. It returns true if the player went back
// to the menu rather than quitting.
func RunStats(store *storage.Store, width, height int) (bool, error) {
	p := tea.NewProgram(NewStatsModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
