package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
)

func TestScoreboardLevelFilter(t *testing.T) {
	l := testLauncher(t)
	for _, row := range []struct{ score, level int }{{12, 0}, {30, 2}, {18, 2}, {7, 1}} {
		if _, err := l.Store.SaveScore("snake", row.score, row.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := l.Store.SaveScore("snake_dev", 99, 0); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewScoreboardModel(l, 100, 30)
	if got := len(m.(ScoreboardModel).table.Rows()); got != 4 {
		t.Fatalf("all levels: %d rows, want 4", got)
	}

	// All levels -> level 1 -> level 2 -> level 3.
	for i := 0; i < 3; i++ {
		m, _ = m.Update(runeKey('l'))
	}
	rows := m.(ScoreboardModel).table.Rows()
	if len(rows) != 2 || rows[0][1] != "30" || rows[1][1] != "18" {
		t.Fatalf("level 3 rows = %v, want scores 30 and 18", rows)
	}
	if rows[0][0] != "#1" || rows[0][2] != snake.GetLevel(2).Name {
		t.Errorf("first row = %v", rows[0])
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb := m.(ScoreboardModel)
	if !sb.dev || len(sb.table.Rows()) != 0 {
		t.Errorf("dev tuning on level 3: dev %v rows %v", sb.dev, sb.table.Rows())
	}
	if !strings.Contains(sb.View(), "Dev tuning") {
		t.Error("header should name the dev tuning")
	}
}

func TestScoreboardLevelCycleWraps(t *testing.T) {
	var m tea.Model = NewScoreboardModel(Launcher{}, 60, 20)
	m, _ = m.Update(runeKey('h'))
	if got := m.(ScoreboardModel).level; got != snake.LevelCount()-1 {
		t.Fatalf("prev from all levels = %d, want last level", got)
	}
	m, _ = m.Update(runeKey('l'))
	if got := m.(ScoreboardModel).level; got != allLevels {
		t.Fatalf("next from last level = %d, want all levels", got)
	}
}

func TestScoreboardLevelBests(t *testing.T) {
	l := testLauncher(t)
	for _, row := range []struct{ score, level int }{{5, 0}, {9, 0}, {4, 3}} {
		if _, err := l.Store.SaveScore("snake", row.score, row.level); err != nil {
			t.Fatal(err)
		}
	}
	m := NewScoreboardModel(l, 100, 30)
	bests := m.levelBests()
	if bests[0] != 9 || bests[1] != -1 || bests[3] != 4 {
		t.Errorf("levelBests() = %v", bests)
	}
	if !strings.Contains(m.renderRecords(), "none yet") {
		t.Error("records panel should report a missing best run")
	}
}
