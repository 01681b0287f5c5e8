package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rogue/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Snake Rogue with the start menu.

From the menu you can start a new run, resume a saved run, watch your best
run, pick a level, switch between the default and dev tunings and view the
high scores. After a run you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q/Esc        - Quit`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	launcher := tui.Launcher{Store: store, Player: flagPlayer, Logger: logger}
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(launcher, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(launcher, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := launcher.Launch(*result.Selection)
		if err != nil {
			logger.Warn("cannot start run", "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, logger); err != nil {
			return err
		}
	}
}
