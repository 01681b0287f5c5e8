// snake-rogue is a roguelike Snake for the terminal with deterministic
// replays of every run.
//
// Usage:
//
//	snake-rogue menu               - Start menu (new run, resume, best run, levels)
//	snake-rogue play               - Start a run directly
//	snake-rogue replay <file>      - Watch or verify an exported run
//	snake-rogue export <file>      - Export the best run of a profile
//	snake-rogue scores             - Show high scores
//	snake-rogue list               - List levels and tunings
//	snake-rogue serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Platform frame rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Profile database (default: ~/.snake-rogue/snake.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-rogue/internal/core"
	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "snake-rogue",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake-rogue",
	Short: "Snake Rogue - a roguelike snake in your terminal",
	Long: `Snake Rogue is Snake on a wrap-around board with power-ups, upgrade
choices and obstacle levels. Every run is deterministic and can be replayed.

Available commands:
  menu     - Interactive start menu
  play     - Start a run directly
  replay   - Watch or verify an exported run
  export   - Export a best run to a file
  scores   - View high scores
  list     - Show levels and tunings
  serve    - Start SSH server for remote play

Examples:
  snake-rogue menu
  snake-rogue play --level 3 --difficulty hard
  snake-rogue export best.ghost.zst
  snake-rogue replay best.ghost.zst --headless --trace run.csv
  snake-rogue serve --ssh :2222 --ws :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		snake.SetConfigPath(flagConfig)
		snake.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Platform frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake-rogue/snake.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Profile name for saves and best runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}

func defaultPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the profile database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open profile database, playing without saves", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
