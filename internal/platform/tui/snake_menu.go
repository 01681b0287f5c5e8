package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-rogue/internal/core"
	"github.com/vovakirdan/snake-rogue/internal/games/snake"
)

type menuItem int

const (
	itemNewRun menuItem = iota
	itemResume
	itemWatchBest
	itemSelectLevel
	itemProfile
	itemScores
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Snake Rogue start menu: new run, resume, watch the best
// run, level select and the tuning profile toggle.
type MenuModel struct {
	launcher      Launcher
	items         []menuItem
	cursor        int
	levelCursor   int
	inLevelSelect bool
	dev           bool
	level         int
	scoreboard    bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *SnakeSelection
	quitting      bool
	openScores    bool
}

// NewMenuModel creates the start menu. scoreboard enables the scores entry.
func NewMenuModel(l Launcher, width, height int, scoreboard bool) MenuModel {
	m := MenuModel{
		launcher:   l,
		width:      width,
		height:     height,
		scoreboard: scoreboard,
		keyMapper:  NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh rebuilds the item list from what the profile has stored.
func (m *MenuModel) refresh() {
	items := []menuItem{itemNewRun}
	if m.launcher.HasSaved(m.dev) {
		items = append(items, itemResume)
	}
	if _, ok := m.launcher.BestRun(m.dev); ok {
		items = append(items, itemWatchBest)
	}
	items = append(items, itemSelectLevel, itemProfile)
	if m.scoreboard {
		items = append(items, itemScores)
	}
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMenuKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) choose(kind RunKind) (tea.Model, tea.Cmd) {
	m.selection = &SnakeSelection{Kind: kind, Level: m.level, Dev: m.dev}
	return m, tea.Quit
}

func (m MenuModel) handleMenuKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
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
	case MenuActionScoreboard:
		if m.scoreboard {
			m.openScores = true
			return m, tea.Quit
		}
	case MenuActionSelect:
		switch m.items[m.cursor] {
		case itemNewRun:
			return m.choose(RunNew)
		case itemResume:
			return m.choose(RunResume)
		case itemWatchBest:
			return m.choose(RunWatchBest)
		case itemSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = max(m.level-1, 0)
		case itemProfile:
			m.dev = !m.dev
			m.refresh()
		case itemScores:
			m.openScores = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < snake.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.level = m.levelCursor + 1
		m.inLevelSelect = false
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

func (m MenuModel) itemLabel(it menuItem) string {
	switch it {
	case itemNewRun:
		return "New Run"
	case itemResume:
		return "Resume Saved Run"
	case itemWatchBest:
		if run, ok := m.launcher.BestRun(m.dev); ok {
			return fmt.Sprintf("Watch Best Run (%d)", run.Score)
		}
		return "Watch Best Run"
	case itemSelectLevel:
		name := snake.LevelNames()[max(m.level-1, 0)]
		return "Level: " + name
	case itemProfile:
		if m.dev {
			return "Tuning: dev"
		}
		return "Tuning: default"
	case itemScores:
		return "High Scores"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S N A K E   R O G U E"), m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		line := "  " + m.itemLabel(it)
		if i == m.cursor {
			line = menuPickStyle.Render("> " + m.itemLabel(it))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "Enter: Select  |  Esc/Q: Quit"
	if m.scoreboard {
		hint = "Enter: Select  |  Tab: Scores  |  Esc/Q: Quit"
	}
	b.WriteString(centerText(menuHintStyle.Render(hint), m.width))
	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, name := range snake.LevelNames() {
		line := fmt.Sprintf("  %d. %s", i+1, name)
		if i == m.levelCursor {
			line = menuPickStyle.Render(fmt.Sprintf("> %d. %s", i+1, name))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the selection, or nil if the menu was left without one.
func (m MenuModel) Selected() *SnakeSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScores
}

// centerText centers text within given width, measuring styled text by its
// printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *SnakeSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the start menu and returns the selection result.
func RunMenu(l Launcher, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(l, cfg.ScreenW, cfg.ScreenH, true), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	cfg.ScreenW, cfg.ScreenH = max(m.width, 1), max(m.height, 1)
	result := MenuResult{Config: cfg, Selection: m.Selected()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	}
	return result, nil
}
