package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rogue/internal/platform/tui"
	"github.com/vovakirdan/snake-rogue/internal/savefile"
)

var flagExportDev bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the best run of a profile",
	Long: `Write the best run of --player to a compressed ghost file that
'snake-rogue replay' can play back on any machine with the same tuning.

Examples:
  snake-rogue export best.ghost.zst
  snake-rogue export --player alice --dev alice-dev`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportDev, "dev", false, "Export the dev tuning's best run")
}

func runExport(_ *cobra.Command, args []string) error {
	store := openStore()
	if store == nil {
		return fmt.Errorf("no profile database at %s", flagDBPath)
	}
	defer store.Close()

	launcher := tui.Launcher{Store: store, Player: flagPlayer, Logger: logger}
	run, ok := launcher.BestRun(flagExportDev)
	if !ok {
		return fmt.Errorf("player %q has no best run yet", flagPlayer)
	}

	path := args[0]
	if !strings.HasSuffix(path, savefile.GhostFileExt) && filepath.Ext(path) == "" {
		path += savefile.GhostFileExt
	}
	if err := savefile.WriteGhostFile(path, run); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Exported best run (score %d, %d inputs, %d choices) to %s\n", run.Score, len(run.Inputs), len(run.Choices), path)
	return nil
}
