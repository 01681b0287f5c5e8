package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-rogue/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "snake")
	s.SetColored(2, 1, '@', core.ColorBrightGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lipgloss.Width(lines[0]) != 6 || lipgloss.Width(lines[1]) != 6 {
		t.Errorf("line widths %d/%d, want 6", lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	}
	if !strings.Contains(lines[0], "snake") {
		t.Errorf("first line %q lost its text", lines[0])
	}
	if !strings.Contains(lines[1], "@") {
		t.Errorf("second line %q lost the head", lines[1])
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText overflow = %q", got)
	}
}
