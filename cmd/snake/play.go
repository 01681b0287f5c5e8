package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/platform/tui"
	"github.com/vovakirdan/snake-rogue/internal/spectate"
	"github.com/vovakirdan/snake-rogue/internal/telemetry"
)

var (
	flagLevel  int
	flagDev    bool
	flagResume bool
	flagTrace  string
	flagWatch  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the menu.

Controls:
  Arrows/WASD/hjkl - Turn
  1 2 3            - Pick an upgrade when offered
  P/Space          - Pause
  R                - Restart after game over
  Q/Ctrl+C         - Quit (an unfinished run is saved)

Difficulty options:
  easy   - Start slow, speeds up with score
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression

Examples:
  snake-rogue play
  snake-rogue play --level 4 --difficulty hard
  snake-rogue play --resume
  snake-rogue play --dev --trace run.csv
  snake-rogue play --ws :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, fmt.Sprintf("Start level 1-%d (0 = first)", snake.LevelCount()))
	playCmd.Flags().BoolVar(&flagDev, "dev", false, "Use the dev tuning (frequent power-ups)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved run if there is one")
	playCmd.Flags().StringVar(&flagTrace, "trace", "", "Write a per-tick CSV trace to this file")
	playCmd.Flags().StringVar(&flagWatch, "ws", "", "Serve a WebSocket spectator feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagLevel < 0 || flagLevel > snake.LevelCount() {
		return fmt.Errorf("--level must be between 0 and %d", snake.LevelCount())
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var observers []func(*snake.Runner, snake.TickResult)

	if flagTrace != "" {
		f, err := os.Create(flagTrace)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		w := telemetry.NewTraceWriter(f)
		observers = append(observers, func(r *snake.Runner, res snake.TickResult) {
			if err := w.Write(telemetry.RowFrom(r, res)); err != nil {
				logger.Debug("trace write failed", "error", err)
			}
		})
	}

	if flagWatch != "" {
		hub, stop, err := serveSpectators(flagWatch)
		if err != nil {
			return err
		}
		defer stop()
		observers = append(observers, func(r *snake.Runner, res snake.TickResult) {
			//nolint:errcheck // Frames are best-effort
			hub.Publish(spectate.FrameFrom(flagPlayer, r, res))
		})
	}

	launcher := tui.Launcher{Store: store, Player: flagPlayer, Logger: logger}
	if len(observers) > 0 {
		launcher.Observe = func(r *snake.Runner, res snake.TickResult) {
			for _, fn := range observers {
				fn(r, res)
			}
		}
	}

	kind := tui.RunNew
	if flagResume {
		kind = tui.RunResume
	}
	game, err := launcher.Launch(tui.SnakeSelection{Kind: kind, Level: flagLevel, Dev: flagDev})
	if err != nil {
		return err
	}
	return tui.Run(game, store, runtimeConfig(), logger)
}
