package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rogue/internal/config"
	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels and tunings",
	Long:  `Shows the built-in levels and the registered tuning profiles.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	board := config.DefaultSnakeConfig().Board
	levels := snake.BuiltinLevels{Width: board.Width, Height: board.Height}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-14s  %s\n", "#", "Name", "Obstacles")
	fmt.Printf("  %-3s  %-14s  %s\n", "-", "----", "---------")
	for i, name := range snake.LevelNames() {
		fmt.Printf("  %-3d  %-14s  %d\n", i+1, name, len(levels.Obstacles(i)))
	}

	games := registry.List()
	maxIDLen := 2
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Println()
	fmt.Println("Tunings:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'snake-rogue play --level <n>' to start on a level.")
}

func levelName(index int) string {
	if l := snake.GetLevel(index); l != nil {
		return l.Name
	}
	return fmt.Sprintf("level %d", index+1)
}
