package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/storage"
)

const (
	minWidthForPanel = 80  // Below this the records panel is hidden
	panelWidth       = 28
	maxScores        = 100
	allLevels        = -1
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Tuning    key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tuning, k.NextLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tuning},
		{k.PrevLevel, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Tuning:    key.NewBinding(key.WithKeys("tab", "t"), key.WithHelp("tab", "default/dev")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the leaderboard of one tuning, optionally narrowed
// to one level, next to the per-level records and the player's best run.
type ScoreboardModel struct {
	launcher  Launcher
	dev       bool
	level     int // allLevels or a level index
	scores    []storage.ScoreEntry
	shown     []storage.ScoreEntry
	stats     *storage.GameStats
	best      *snake.GhostRun
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard on the default tuning and all levels.
func NewScoreboardModel(l Launcher, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		launcher: l,
		level:    allLevels,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) showPanel() bool {
	return m.width >= minWidthForPanel
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 14},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
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

func (m *ScoreboardModel) gameID() string {
	return SnakeSelection{Dev: m.dev}.GameID()
}

// load fetches the scores, stats and best run of the selected tuning.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.best = nil, nil, nil
	if store := m.launcher.Store; store != nil {
		if scores, err := store.TopScores(m.gameID(), maxScores); err == nil {
			m.scores = scores
		}
		m.stats, _ = store.GetGameStats(m.gameID())
	}
	if run, ok := m.launcher.BestRun(m.dev); ok {
		m.best = &run
	}
	m.filter()
}

// filter narrows the loaded scores to the selected level and refreshes the table.
func (m *ScoreboardModel) filter() {
	shown := make([]storage.ScoreEntry, 0, len(m.scores))
	for _, s := range m.scores {
		if m.level == allLevels || s.Level == m.level {
			shown = append(shown, s)
		}
	}
	m.shown = shown
	rows := make([]table.Row, len(m.shown))
	for i, s := range m.shown {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			levelLabel(s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func levelLabel(index int) string {
	if l := snake.GetLevel(index); l != nil {
		return l.Name
	}
	return "?"
}

// stepLevel cycles allLevels -> 0 -> ... -> last -> allLevels.
func (m *ScoreboardModel) stepLevel(delta int) {
	n := snake.LevelCount() + 1
	pos := (m.level + 1 + delta + n) % n
	m.level = pos - 1
	m.filter()
}

// levelBests returns the best loaded score of every level, -1 when unplayed.
func (m ScoreboardModel) levelBests() []int {
	bests := make([]int, snake.LevelCount())
	for i := range bests {
		bests[i] = -1
	}
	for _, s := range m.scores {
		if s.Level >= 0 && s.Level < len(bests) && s.Score > bests[s.Level] {
			bests[s.Level] = s.Score
		}
	}
	return bests
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Tuning):
			m.dev = !m.dev
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.NextLevel):
			m.stepLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.stepLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.filter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tuning := "Default tuning"
	if m.dev {
		tuning = "Dev tuning"
	}
	filter := "All levels"
	if m.level != allLevels {
		filter = levelLabel(m.level)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("< %s  |  %s >", tuning, filter), m.width)))
	b.WriteString("\n\n")

	board := boxStyle.Render(m.renderTable())
	if m.showPanel() {
		panel := boxStyle.Width(panelWidth).Render(m.renderRecords())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", panel))
	} else {
		b.WriteString(centerText(board, m.width))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTable() string {
	if len(m.shown) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return empty.Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	view := m.table.View()
	if m.stats != nil && m.stats.GamesCount > 0 {
		summary := fmt.Sprintf("%d runs  |  best %d  |  avg %.1f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
		view += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(summary)
	}
	return view
}

// renderRecords lists the best score per level and the stored best run.
func (m ScoreboardModel) renderRecords() string {
	var b strings.Builder
	b.WriteString("Level records\n")
	b.WriteString(strings.Repeat("-", panelWidth-4))
	b.WriteString("\n")
	for i, best := range m.levelBests() {
		score := "-"
		if best >= 0 {
			score = fmt.Sprintf("%d", best)
		}
		line := fmt.Sprintf("%-*s%6s", panelWidth-10, levelLabel(i), score)
		if i == m.level {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\nBest run\n")
	b.WriteString(strings.Repeat("-", panelWidth-4))
	b.WriteString("\n")
	if m.best == nil {
		b.WriteString("none yet")
		return b.String()
	}
	fmt.Fprintf(&b, "score   %d\n", m.best.Score)
	fmt.Fprintf(&b, "level   %s\n", levelLabel(m.best.LevelIndex))
	fmt.Fprintf(&b, "turns   %d\n", len(m.best.Inputs))
	fmt.Fprintf(&b, "picks   %d", len(m.best.Choices))
	if t := m.best.Tuning; t.Recorded() {
		fmt.Fprintf(&b, "\nboard   %dx%d", t.Session.Width, t.Session.Height)
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for the launcher's player.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(l Launcher, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(l, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
