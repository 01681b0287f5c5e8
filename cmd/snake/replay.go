package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rogue/internal/config"
	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/platform/tui"
	"github.com/vovakirdan/snake-rogue/internal/savefile"
	"github.com/vovakirdan/snake-rogue/internal/telemetry"
)

// maxReplayTicks bounds a headless replay of a corrupt or hand-made file.
const maxReplayTicks = 10_000_000

var (
	flagHeadless  bool
	flagReplayDev bool
	flagReplayOut string
)

var replayCmd = &cobra.Command{
	Use:   "replay <file.ghost.zst>",
	Short: "Watch or verify an exported run",
	Long: `Replay a run exported with 'snake-rogue export'.

By default the run is shown in the terminal. With --headless it is simulated
as fast as possible and the final score is compared with the recorded one,
which verifies that the run replays bit-exactly. Runs replay under the rules
they were recorded with; --dev only picks the rules for files that carry none.

Examples:
  snake-rogue replay best.ghost.zst
  snake-rogue replay best.ghost.zst --headless
  snake-rogue replay best.ghost.zst --headless --trace replay.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without a terminal UI and verify the score")
	replayCmd.Flags().BoolVar(&flagReplayDev, "dev", false, "Use the dev tuning for runs recorded without rules")
	replayCmd.Flags().StringVar(&flagReplayOut, "trace", "", "Write a per-tick CSV trace to this file (headless only)")
}

func runReplay(_ *cobra.Command, args []string) error {
	run, err := savefile.ReadGhostFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	profile := config.ProfileDefault
	if flagReplayDev {
		profile = config.ProfileDev
	}

	if !flagHeadless {
		return tui.Run(snake.NewGhostViewer(run, profile), nil, runtimeConfig(), logger)
	}

	var trace *telemetry.TraceWriter
	if flagReplayOut != "" {
		f, err := os.Create(flagReplayOut)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		trace = telemetry.NewTraceWriter(f)
	}

	res, err := replayHeadless(run, profile, trace)
	if err != nil {
		return err
	}
	fmt.Printf("Level:    %s\n", levelName(run.LevelIndex))
	if run.Tuning.Recorded() {
		fmt.Printf("Board:    %dx%d (recorded rules)\n", run.Tuning.Session.Width, run.Tuning.Session.Height)
	}
	fmt.Printf("Ticks:    %d\n", res.ticks)
	fmt.Printf("Score:    %d (recorded %d)\n", res.score, run.Score)
	if trace != nil {
		fmt.Printf("Trace:    %d rows -> %s\n", trace.Rows(), flagReplayOut)
	}
	switch {
	case res.desynced:
		return errors.New("replay desynced: the timeline does not match the rules")
	case res.score != run.Score:
		return fmt.Errorf("replay score %d differs from recorded %d", res.score, run.Score)
	}
	fmt.Println("Replay verified.")
	return nil
}

type replayResult struct {
	ticks    int
	score    int
	desynced bool
}

func replayHeadless(run snake.GhostRun, profile config.Profile, trace *telemetry.TraceWriter) (replayResult, error) {
	cfg, err := snake.ResolveConfig(profile)
	if err != nil {
		logger.Warn("tuning file ignored", "error", err)
	}
	levels := snake.BuiltinLevels{Width: cfg.Board.Width, Height: cfg.Board.Height}
	r := snake.NewRunner(snake.NewRunnerConfig(cfg), levels, snake.WithLogger(logger))
	if err := r.StartReplay(run); err != nil {
		return replayResult{}, fmt.Errorf("start replay: %w", err)
	}

	for i := 0; i < maxReplayTicks && !r.Mode().Ended(); i++ {
		res := r.Tick()
		if err := trace.Write(telemetry.RowFrom(r, res)); err != nil {
			return replayResult{}, err
		}
	}
	switch r.Mode() {
	case snake.ModeReplayFinished:
	case snake.ModeGameOver:
		return replayResult{}, errors.New("replay ended as a live game")
	default:
		return replayResult{}, errors.New("replay did not finish")
	}
	st := r.Session().State()
	return replayResult{ticks: st.Tick, score: st.Score, desynced: r.Desynced()}, nil
}
