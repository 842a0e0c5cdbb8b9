// Package tui provides the Bubble Tea presentation for the memory game:
// the interactive play screen, the leaderboard screen, and the SSH
// server that serves both to remote players.
package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/game/board"
	"github.com/vovakirdan/tui-memory/internal/game/engine"
	"github.com/vovakirdan/tui-memory/internal/game/level"
	"github.com/vovakirdan/tui-memory/internal/game/score"
	"github.com/vovakirdan/tui-memory/internal/identity"
	"github.com/vovakirdan/tui-memory/internal/rank"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// Play screen layout constants.
const (
	maxGridCols        = 6  // matches the widest comfortable terminal grid
	minWidthForRanking = 70 // below this the leaderboard pane is hidden
)

var (
	playTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	playStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardHiddenStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("241"))
	cardRevealedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cardCursorStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("205"))
	wonBannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	lostBannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	rankTitleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	rankSelfStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// PlayOptions bundles everything needed to start a play session.
type PlayOptions struct {
	Game       config.GameConfig
	StartLevel int   // first level of the session, usually max won + 1
	Seed       int64 // 0 means seed from the clock
	Width      int
	Height     int
}

// Messages driving the play screen.
type (
	clockTickMsg  time.Time
	unflipMsg     struct{ attempt int }
	scoreSavedMsg struct {
		attempt int
		err     error
	}
	rankingMsg struct {
		entries []rank.Entry
		err     error
	}
)

// PlayModel is the Bubble Tea model for a play session. It owns the
// match engine and translates key presses into flip commands; all game
// rules live in the engine.
type PlayModel struct {
	store *storage.Store // nil plays without persistence
	ident identity.Provider
	opts  PlayOptions
	keys  PlayKeyMap
	help  help.Model

	rng      *rand.Rand
	eng      *engine.Engine
	attempt  int // guards stale unflip/save messages after a reset
	levelNum int
	cursor   int

	daily   bool
	ranking []rank.Entry
	rankErr error

	width    int
	height   int
	status   string
	quitting bool
}

// NewPlayModel creates a play session starting at opts.StartLevel.
func NewPlayModel(store *storage.Store, ident identity.Provider, opts PlayOptions) (PlayModel, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.StartLevel < 1 {
		opts.StartLevel = 1
	}
	if ident == nil {
		ident = identity.Anonymous{}
	}

	m := PlayModel{
		store:  store,
		ident:  ident,
		opts:   opts,
		keys:   DefaultPlayKeyMap(),
		help:   help.New(),
		rng:    rand.New(rand.NewSource(seed)),
		daily:  opts.Game.Leaderboard.DefaultFilter != "all",
		width:  opts.Width,
		height: opts.Height,
	}

	if err := m.startAttempt(opts.StartLevel); err != nil {
		return PlayModel{}, err
	}
	return m, nil
}

// startAttempt builds a fresh board for the given level and resets the
// engine onto it.
func (m *PlayModel) startAttempt(lvl int) error {
	cfg, err := level.Configure(lvl)
	if err != nil {
		return err
	}
	cards, err := board.Generate(cfg, m.rng, m.opts.Game.Board.IconRunes())
	if err != nil {
		return err
	}

	if m.eng == nil {
		m.eng = engine.New(cfg, cards, engine.Events{})
	} else {
		m.eng.Reset(cfg, cards)
	}

	m.levelNum = lvl
	m.attempt++
	m.cursor = 0
	m.status = ""
	return nil
}

// Init starts the clock and the first leaderboard refresh.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(clockCmd(), m.refreshRankingCmd())
}

// clockCmd ticks once per second to feed the engine's elapsed clock.
func clockCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// unflipCmd schedules the mismatch unflip after the configured delay.
func (m PlayModel) unflipCmd() tea.Cmd {
	attempt := m.attempt
	return tea.Tick(m.opts.Game.Gameplay.UnflipDelay(), func(time.Time) tea.Msg {
		return unflipMsg{attempt: attempt}
	})
}

// refreshRankingCmd fetches records and aggregates the leaderboard off
// the UI loop.
func (m PlayModel) refreshRankingCmd() tea.Cmd {
	store := m.store
	daily := m.daily
	return func() tea.Msg {
		if store == nil {
			return rankingMsg{}
		}

		var (
			records []rank.Record
			filter  = rank.All()
			err     error
		)
		if daily {
			filter = rank.Today()
			records, err = store.ScoresOn(filter.DateKey)
		} else {
			records, err = store.AllScores()
		}
		if err != nil {
			return rankingMsg{err: err}
		}

		entries, err := rank.Aggregate(records, filter)
		if err != nil {
			return rankingMsg{err: err}
		}
		return rankingMsg{entries: entries}
	}
}

// Update handles messages for the play session.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		m.eng.Tick()
		return m, clockCmd()

	case unflipMsg:
		// Ignore unflips scheduled for an attempt that was reset away.
		if msg.attempt == m.attempt {
			m.eng.CompleteUnflip()
		}
		return m, nil

	case scoreSavedMsg:
		// An in-flight save always completes, but it never touches the
		// attempt that superseded it; only the status line reacts.
		if msg.attempt != m.attempt {
			return m, m.refreshRankingCmd()
		}
		if msg.err != nil {
			m.status = fmt.Sprintf("score save failed: %v", msg.err)
			return m, nil
		}
		m.status = "score saved"
		return m, m.refreshRankingCmd()

	case rankingMsg:
		m.ranking = msg.entries
		m.rankErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.daily = !m.daily
		return m, m.refreshRankingCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.gridCols())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.gridCols())
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Flip):
		return m.flip()

	case key.Matches(msg, m.keys.Next):
		if m.eng.Phase() == engine.PhaseWon {
			if err := m.startAttempt(m.levelNum + 1); err != nil {
				m.status = err.Error()
			}
		}
	case key.Matches(msg, m.keys.Retry):
		if m.eng.Phase() == engine.PhaseWon || m.eng.Phase() == engine.PhaseLost {
			if err := m.startAttempt(m.levelNum); err != nil {
				m.status = err.Error()
			}
		}
	case key.Matches(msg, m.keys.Restart):
		if err := m.startAttempt(1); err != nil {
			m.status = err.Error()
		}
	}

	return m, nil
}

// flip sends the cursor's card to the engine and reacts to the result.
func (m PlayModel) flip() (tea.Model, tea.Cmd) {
	res := m.eng.Flip(m.cursor)

	switch res.Outcome {
	case engine.OutcomeMismatch:
		return m, m.unflipCmd()

	case engine.OutcomeWon:
		return m.handleWin()

	case engine.OutcomeLost:
		m.status = "out of moves"
	}

	return m, nil
}

// handleWin records the winning run. Persistence is best-effort and
// asynchronous: the win stands whether or not the save succeeds.
func (m PlayModel) handleWin() (tea.Model, tea.Cmd) {
	who, ok := m.ident.Current()
	if !ok || m.store == nil {
		m.status = "win not recorded: playing without a profile"
		return m, nil
	}

	points, err := score.ComputePoints(m.levelNum, m.eng.Moves(), m.eng.Elapsed())
	if err != nil {
		// Engine output is always in the score domain; this is a bug.
		m.status = fmt.Sprintf("cannot score run: %v", err)
		return m, nil
	}

	rec := rank.Record{
		Username:       who.Username,
		Level:          m.levelNum,
		Moves:          m.eng.Moves(),
		ElapsedSeconds: m.eng.Elapsed(),
		Points:         points,
		DateKey:        time.Now().Format(rank.DateLayout),
	}

	store := m.store
	attempt := m.attempt
	return m, func() tea.Msg {
		_, err := store.AppendScore(rec)
		return scoreSavedMsg{attempt: attempt, err: err}
	}
}

// gridCols returns how many columns the card grid uses, the original
// square-ish layout capped at maxGridCols.
func (m PlayModel) gridCols() int {
	n := len(m.eng.Cards())
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols > maxGridCols {
		cols = maxGridCols
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// moveCursor shifts the selection, clamped to the board.
func (m *PlayModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.eng.Cards()) {
		return
	}
	m.cursor = next
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	game := m.viewGrid()
	if m.width >= minWidthForRanking {
		game = lipgloss.JoinHorizontal(lipgloss.Top, game, "   ", m.viewRanking())
	}
	b.WriteString(game)
	b.WriteString("\n")

	switch m.eng.Phase() {
	case engine.PhaseWon:
		b.WriteString(wonBannerStyle.Render(fmt.Sprintf(
			"Level %d complete! %d moves, %s — n: next level, r: retry",
			m.levelNum, m.eng.Moves(), formatClock(m.eng.Elapsed()))))
		b.WriteString("\n")
	case engine.PhaseLost:
		b.WriteString(lostBannerStyle.Render(fmt.Sprintf(
			"Out of moves on level %d — r: retry, R: restart from level 1",
			m.levelNum)))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(playStatusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewHeader renders the level/moves/time status line.
func (m PlayModel) viewHeader() string {
	title := playTitleStyle.Render("Memory Match")
	user := "anonymous"
	if who, ok := m.ident.Current(); ok {
		user = who.Username
	}

	return fmt.Sprintf("%s  level %d · moves %d/%d · pairs %d/%d · time %s · %s",
		title,
		m.levelNum,
		m.eng.Moves(), m.eng.MoveBudget(),
		m.eng.Matched(), m.eng.PairCount(),
		formatClock(m.eng.Elapsed()),
		user,
	)
}

// viewGrid renders the card grid with the cursor highlight.
func (m PlayModel) viewGrid() string {
	cards := m.eng.Cards()
	cols := m.gridCols()

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}

		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, m.viewCard(cards[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// viewCard renders one card cell.
func (m PlayModel) viewCard(c board.Card, selected bool) string {
	face := " ? "
	style := cardHiddenStyle
	if c.FaceUp {
		face = string(c.Token)
		style = cardRevealedStyle
	}
	if selected {
		style = cardCursorStyle
	}
	return style.Render(face)
}

// viewRanking renders the leaderboard side pane.
func (m PlayModel) viewRanking() string {
	var b strings.Builder

	scope := "All Time"
	if m.daily {
		scope = "Today"
	}
	b.WriteString(rankTitleStyle.Render("Leaderboard · " + scope))
	b.WriteString("\n")

	if m.rankErr != nil {
		b.WriteString(playStatusStyle.Render("leaderboard unavailable"))
		return b.String()
	}
	if len(m.ranking) == 0 {
		b.WriteString(playStatusStyle.Render("no scores yet"))
		return b.String()
	}

	self := ""
	if who, ok := m.ident.Current(); ok {
		self = who.Username
	}

	limit := m.opts.Game.Leaderboard.Limit
	if limit <= 0 {
		limit = 10
	}
	for i, e := range m.ranking {
		if i >= limit {
			break
		}
		line := fmt.Sprintf("#%-2d %-12s lvl %d · %d pts", i+1, e.Username, e.MaxLevel, e.TotalScore)
		if e.Username == self {
			line = rankSelfStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// formatClock renders elapsed seconds as mm:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RunPlay runs a play session in the local terminal.
func RunPlay(store *storage.Store, ident identity.Provider, opts PlayOptions) error {
	m, err := NewPlayModel(store, ident, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
