package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/rank"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// Leaderboard layout constants
const (
	tableMinHeight = 5
	maxEntries     = 100 // Max leaderboard rows to display
)

// LeaderboardKeyMap defines the key bindings for the leaderboard screen.
type LeaderboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Filter, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle daily/all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel is the Bubble Tea model for the leaderboard screen.
type LeaderboardModel struct {
	store    *storage.Store
	daily    bool
	entries  []rank.Entry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     LeaderboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewLeaderboardModel creates a new leaderboard model.
func NewLeaderboardModel(store *storage.Store, daily bool, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		store:  store,
		daily:  daily,
		keys:   DefaultLeaderboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadEntries()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Max Level", Width: 10},
		{Title: "Total Score", Width: 12},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < tableMinHeight {
		height = tableMinHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEntries fetches records for the active scope and aggregates them.
func (m *LeaderboardModel) loadEntries() {
	m.entries = nil
	m.loadErr = nil

	if m.store == nil {
		m.updateTableRows()
		return
	}

	var (
		records []rank.Record
		filter  = rank.All()
		err     error
	)
	if m.daily {
		filter = rank.Today()
		records, err = m.store.ScoresOn(filter.DateKey)
	} else {
		records, err = m.store.AllScores()
	}
	if err != nil {
		m.loadErr = err
		m.updateTableRows()
		return
	}

	entries, err := rank.Aggregate(records, filter)
	if err != nil {
		m.loadErr = err
		m.updateTableRows()
		return
	}

	m.entries = entries
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *LeaderboardModel) updateTableRows() {
	n := len(m.entries)
	if n > maxEntries {
		n = maxEntries
	}

	rows := make([]table.Row, n)
	for i, e := range m.entries[:n] {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Username,
			fmt.Sprintf("%d", e.MaxLevel),
			fmt.Sprintf("%d", e.TotalScore),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.daily = !m.daily
			m.loadEntries()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "LEADERBOARD - ALL TIME"
	if m.daily {
		title = "LEADERBOARD - TODAY"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table, a load error, or an empty message.
// A read failure must look different from an empty board.
func (m LeaderboardModel) renderTableContent() string {
	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(2, 4)
		return errStyle.Render("Leaderboard unavailable:\n" + m.loadErr.Error())
	}

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nWin a level to get on the board!")
	}

	return m.table.View()
}

// centerText centers a possibly multi-line block within the given width.
func centerText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunLeaderboard runs the leaderboard screen.
func RunLeaderboard(store *storage.Store, daily bool, width, height int) error {
	model := NewLeaderboardModel(store, daily, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
