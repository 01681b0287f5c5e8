package snake

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/snake-rogue/internal/config"
	"github.com/vovakirdan/snake-rogue/internal/core"
)

func testRunnerConfig() RunnerConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.PowerUps.SpawnPercent = config.MaxSpawnPercent
	return NewRunnerConfig(cfg)
}

func testLevels() BuiltinLevels {
	return BuiltinLevels{Width: 20, Height: 18}
}

// memProfile is an in-memory Profile.
type memProfile struct {
	saved   *SavedSession
	best    *GhostRun
	failErr error
}

func (p *memProfile) SaveSession(s SavedSession) error {
	if p.failErr != nil {
		return p.failErr
	}
	s.Snapshot = s.Snapshot.Clone()
	p.saved = &s
	return nil
}

func (p *memProfile) LoadSession() (SavedSession, bool, error) {
	if p.saved == nil {
		return SavedSession{}, false, nil
	}
	return *p.saved, true, nil
}

func (p *memProfile) ClearSession() error {
	p.saved = nil
	return nil
}

func (p *memProfile) BestRun() (GhostRun, bool, error) {
	if p.best == nil {
		return GhostRun{}, false, nil
	}
	return *p.best, true, nil
}

func (p *memProfile) SaveBestRun(run GhostRun) error {
	run = run.Clone()
	p.best = &run
	return nil
}

// headTrace maps each committed tick to the head position after it.
type headTrace map[int]core.Point

func (h headTrace) record(r *Runner) {
	st := r.Session().State()
	h[st.Tick] = r.Session().Head()
}

// playScripted drives a live run with pseudo-random turns, always taking a
// choice as soon as it is offered.
func playScripted(t *testing.T, level int, seed int64, maxTicks int) (*Runner, headTrace) {
	t.Helper()
	return playScriptedWith(t, testRunnerConfig(), level, seed, maxTicks)
}

func playScriptedWith(t *testing.T, cfg RunnerConfig, level int, seed int64, maxTicks int) (*Runner, headTrace) {
	t.Helper()
	r := NewRunner(cfg, testLevels())
	if err := r.StartSession(level, seed); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	driver := NewSimpleRNG(seed * 31)
	dirs := []Direction{Up, Down, Left, Right}
	trace := headTrace{}
	trace.record(r)

	for i := 0; i < maxTicks && !r.Mode().Ended(); i++ {
		if r.Mode() == ModeChoiceSelection {
			choices := r.Choices()
			if !r.SelectChoice(i % len(choices)) {
				t.Fatal("SelectChoice rejected a valid index")
			}
			trace.record(r)
			continue
		}
		if i%5 == 0 {
			r.EnqueueDirection(dirs[driver.Intn(len(dirs))])
		}
		r.Tick()
		trace.record(r)
	}
	for r.Mode() == ModeChoiceSelection {
		r.SelectChoice(0)
		trace.record(r)
	}
	return r, trace
}

// recordedRun captures the timelines of a live runner, finished or not.
func recordedRun(r *Runner) GhostRun {
	return GhostRun{
		Seed:       r.Seed(),
		LevelIndex: r.Level(),
		Score:      r.Session().State().Score,
		Tuning:     r.Tuning(),
		Inputs:     r.inputs,
		Choices:    r.choices,
	}
}

// replayAlongside replays run on a runner built with cfg, stopping at the
// live run's tick when the live run has not ended.
func replayAlongside(t *testing.T, cfg RunnerConfig, run GhostRun, live *Runner) (*Runner, headTrace) {
	t.Helper()
	replay := NewRunner(cfg, testLevels())
	if err := replay.StartReplay(run); err != nil {
		t.Fatalf("StartReplay failed: %v", err)
	}
	liveTick := live.Session().State().Tick
	liveEnded := live.Mode().Ended()

	trace := headTrace{}
	trace.record(replay)
	for i := 0; i < 5000 && !replay.Mode().Ended(); i++ {
		if !liveEnded && replay.Session().State().Tick >= liveTick {
			break
		}
		replay.Tick()
		trace.record(replay)
	}
	return replay, trace
}

func noPauseRunnerConfig() RunnerConfig {
	cfg := testRunnerConfig()
	cfg.PauseOnChoice = false
	return cfg
}

func easyRunnerConfig() RunnerConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.PowerUps.SpawnPercent = config.MaxSpawnPercent
	config.ApplySnakePreset(&cfg, config.DifficultyEasy)
	return NewRunnerConfig(cfg)
}

func TestReplayMatchesLiveRun(t *testing.T) {
	tests := []struct {
		name   string
		record RunnerConfig
		replay RunnerConfig
	}{
		{"pause on choice", testRunnerConfig(), testRunnerConfig()},
		{"choice after commit", noPauseRunnerConfig(), noPauseRunnerConfig()},
		{"easy run replayed by default runner", easyRunnerConfig(), testRunnerConfig()},
		{"default run replayed by no-pause runner", testRunnerConfig(), noPauseRunnerConfig()},
	}
	seeds := []int64{1, 42, 2024, 987654321}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, seed := range seeds {
				for level := 0; level < LevelCount(); level++ {
					live, liveTrace := playScriptedWith(t, tt.record, level, seed, 1500)
					replay, replayTrace := replayAlongside(t, tt.replay, recordedRun(live), live)

					if replay.Desynced() {
						t.Fatalf("seed %d level %d: replay desynced", seed, level)
					}
					if live.Mode().Ended() && replay.Mode() != ModeReplayFinished {
						t.Errorf("seed %d level %d: replay mode %s, expected replay_finished", seed, level, replay.Mode())
					}
					liveSnap, _ := live.Snapshot()
					replaySnap, _ := replay.Snapshot()
					if !reflect.DeepEqual(liveSnap, replaySnap) {
						t.Errorf("seed %d level %d: final snapshots differ\nlive:   %+v\nreplay: %+v", seed, level, liveSnap.State, replaySnap.State)
					}
					if !reflect.DeepEqual(liveTrace, replayTrace) {
						t.Errorf("seed %d level %d: head traces differ (%d vs %d ticks)", seed, level, len(liveTrace), len(replayTrace))
					}
				}
			}
		})
	}
}

func TestReplayRestoresRunnerTuning(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	live, _ := playScriptedWith(t, easyRunnerConfig(), 0, 3, 50)
	if err := r.StartReplay(recordedRun(live)); err != nil {
		t.Fatal(err)
	}
	if got := r.Tuning().Session.BuffDurationTicks; got != easyRunnerConfig().Session.BuffDurationTicks {
		t.Errorf("replay buff duration = %d, want the recorded %d", got, easyRunnerConfig().Session.BuffDurationTicks)
	}
	if err := r.StartSession(0, 3); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Tuning(), testRunnerConfig()) {
		t.Error("a live session after a replay should use the runner's own tuning")
	}
}

func TestGhostCarriesTuning(t *testing.T) {
	r := NewRunner(easyRunnerConfig(), testLevels())
	if err := r.StartPreview(0, PreviewSeed{
		State: SessionState{Food: NoPosition, PowerUpPos: NoPosition, Heading: Right},
		Body:  row(5, 5, 4, 3),
	}, 1); err != nil {
		t.Fatal(err)
	}
	r.eligible = true
	r.session.state.Obstacles = []core.Point{{X: 6, Y: 5}}
	r.Tick()
	run, ok := r.Ghost()
	if !ok {
		t.Fatalf("mode %s: expected a ghost after the crash", r.Mode())
	}
	if !reflect.DeepEqual(run.Tuning, easyRunnerConfig()) {
		t.Errorf("ghost tuning = %+v, want the easy tuning", run.Tuning)
	}
	run.Tuning.Session.Weights[0].Weight = 99
	if reflect.DeepEqual(r.Tuning(), run.Tuning) {
		t.Error("ghost tuning must not alias the runner's weights")
	}
}

// magnetPreview is a session whose next move lets the magnet pull food onto
// the head and cross 20 points.
func magnetPreview() PreviewSeed {
	return PreviewSeed{
		State: SessionState{
			Food:               core.Point{X: 7, Y: 5},
			PowerUpPos:         NoPosition,
			Heading:            Right,
			ActiveBuff:         BuffMagnet,
			BuffTicksRemaining: 20,
			BuffTicksTotal:     20,
			Score:              19,
			Tick:               50,
		},
		Body: row(5, 5, 4, 3, 2),
	}
}

func TestReplayMagnetMealChoice(t *testing.T) {
	for _, cfg := range []RunnerConfig{testRunnerConfig(), noPauseRunnerConfig()} {
		live := NewRunner(cfg, testLevels())
		if err := live.StartPreview(0, magnetPreview(), 21); err != nil {
			t.Fatal(err)
		}
		res := live.Tick()
		if res.Mode != ModeChoiceSelection || !res.Step.Grew {
			t.Fatalf("pause=%v: mode %s grew %v, expected a magnet meal offering a choice", cfg.PauseOnChoice, res.Mode, res.Step.Grew)
		}
		if !live.SelectChoice(1) {
			t.Fatal("SelectChoice rejected a valid index")
		}
		for i := 0; i < 10 && live.Mode() == ModePlaying; i++ {
			live.Tick()
		}

		replay := NewRunner(cfg, testLevels())
		if err := replay.StartPreview(0, magnetPreview(), 21); err != nil {
			t.Fatal(err)
		}
		replay.choices = append([]ChoiceRecord(nil), live.choices...)
		replay.mode = ModeReplaying
		for i := 0; i < 11 && replay.Mode() == ModeReplaying; i++ {
			replay.Tick()
			if replay.Session().State().Tick >= live.Session().State().Tick {
				break
			}
		}
		if replay.Desynced() {
			t.Fatalf("pause=%v: replay desynced", cfg.PauseOnChoice)
		}
		liveSnap, _ := live.Snapshot()
		replaySnap, _ := replay.Snapshot()
		if !reflect.DeepEqual(liveSnap, replaySnap) {
			t.Errorf("pause=%v: snapshots differ\nlive:   %+v\nreplay: %+v", cfg.PauseOnChoice, liveSnap.State, replaySnap.State)
		}
	}
}

func TestLiveRunsAreDeterministic(t *testing.T) {
	a, traceA := playScripted(t, 1, 77, 800)
	b, traceB := playScripted(t, 1, 77, 800)

	snapA, _ := a.Snapshot()
	snapB, _ := b.Snapshot()
	if !reflect.DeepEqual(snapA, snapB) || !reflect.DeepEqual(traceA, traceB) {
		t.Error("Same seed and inputs produced different runs")
	}
	if !reflect.DeepEqual(a.inputs, b.inputs) || !reflect.DeepEqual(a.choices, b.choices) {
		t.Error("Recorded timelines differ")
	}
}

// pityPreview is a session one meal away from crossing 20 points.
func pityPreview() PreviewSeed {
	return PreviewSeed{
		State: SessionState{
			Food:       core.Point{X: 6, Y: 5},
			PowerUpPos: NoPosition,
			Heading:    Right,
			Score:      19,
			Tick:       50,
		},
		Body: row(5, 5, 4, 3, 2),
	}
}

func TestRunnerChoiceFlow(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.StartPreview(0, pityPreview(), 9); err != nil {
		t.Fatal(err)
	}

	res := r.Tick()
	if res.Mode != ModeChoiceSelection {
		t.Fatalf("Mode = %s, expected choice", res.Mode)
	}
	choices := r.Choices()
	if len(choices) != 3 {
		t.Fatalf("Expected 3 choices, got %d", len(choices))
	}
	if r.Session().State().Score != 19 {
		t.Error("Score must not change before the choice is made")
	}
	if r.EnqueueDirection(Up) {
		t.Error("Input must be rejected during choice selection")
	}
	if r.Tick().Step.Moved {
		t.Error("Tick must not advance during choice selection")
	}

	if r.SelectChoice(3) || r.SelectChoice(-1) {
		t.Error("Out-of-range choice should be rejected")
	}
	if r.Mode() != ModeChoiceSelection {
		t.Error("Rejected choice changed the mode")
	}

	if !r.SelectChoice(1) {
		t.Fatal("SelectChoice(1) failed")
	}
	st := r.Session().State()
	if r.Mode() != ModePlaying || st.Score != 20 || st.Tick != 51 {
		t.Errorf("After choice mode %s score %d tick %d", r.Mode(), st.Score, st.Tick)
	}
	if !reflect.DeepEqual(r.choices, []ChoiceRecord{{Tick: 50, Index: 1}}) {
		t.Errorf("Recorded choices %v", r.choices)
	}

	duration := testRunnerConfig().Session.BuffDurationTicks * testRunnerConfig().ChoiceDurationMultiplier
	switch picked := choices[1].ID; picked {
	case BuffShield:
		if !st.ShieldActive {
			t.Error("Shield choice should activate the shield")
		}
	case BuffMini:
		if r.Session().Length() != 3 {
			t.Errorf("Mini choice length %d, expected 3", r.Session().Length())
		}
	default:
		if st.ActiveBuff != picked || st.BuffTicksRemaining != duration {
			t.Errorf("Buff %s/%d, expected %s/%d", st.ActiveBuff, st.BuffTicksRemaining, picked, duration)
		}
	}

	next := r.Tick()
	if !hasEvent(next.Events, EventChoiceTaken) {
		t.Error("Choice events should be delivered with the next tick")
	}
}

func TestReplayWithoutChoiceRecordDesyncs(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.StartPreview(0, pityPreview(), 9); err != nil {
		t.Fatal(err)
	}
	r.mode = ModeReplaying

	res := r.Tick()
	if res.Mode != ModeReplayFinished || !r.Desynced() {
		t.Errorf("Mode %s desynced %v, expected replay_finished and true", res.Mode, r.Desynced())
	}
}

func TestRunnerCollisionEndsRun(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	seed := PreviewSeed{
		State: SessionState{Food: NoPosition, PowerUpPos: NoPosition, Heading: Right, Obstacles: []core.Point{{X: 6, Y: 5}}},
		Body:  row(5, 5, 4, 3),
	}
	if err := r.StartPreview(0, seed, 1); err != nil {
		t.Fatal(err)
	}

	if res := r.Tick(); res.Mode != ModeGameOver || !res.Step.Collision {
		t.Fatalf("Expected game over, got %+v", res)
	}
	before, _ := r.Snapshot()
	r.Tick()
	after, _ := r.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("Tick after game over changed the session")
	}
	if _, ok := r.Ghost(); ok {
		t.Error("Preview runs are not ghost eligible")
	}
}

func TestRunnerRecordsOnlyAcceptedInputs(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.StartSession(0, 5); err != nil {
		t.Fatal(err)
	}

	if r.EnqueueDirection(Left) {
		t.Error("Reversal should be rejected")
	}
	if !r.EnqueueDirection(Up) {
		t.Fatal("Up should be accepted")
	}
	if !reflect.DeepEqual(r.inputs, []ReplayFrame{{Tick: 0, DX: 0, DY: -1}}) {
		t.Errorf("Recorded inputs %v", r.inputs)
	}
}

func TestRunnerPause(t *testing.T) {
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.StartSession(0, 5); err != nil {
		t.Fatal(err)
	}

	if !r.TogglePause() || r.Mode() != ModePaused {
		t.Fatal("Pause failed")
	}
	r.Tick()
	if r.Session().State().Tick != 0 {
		t.Error("Paused runner advanced")
	}
	if r.EnqueueDirection(Up) {
		t.Error("Input should be rejected while paused")
	}
	if !r.TogglePause() || r.Mode() != ModePlaying {
		t.Error("Unpause failed")
	}
}

func TestRunnerProfile(t *testing.T) {
	p := &memProfile{}
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.StartSession(2, 11); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		r.Tick()
	}

	if err := r.SaveTo(p); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	saved, _ := r.Snapshot()

	resumed := NewRunner(testRunnerConfig(), testLevels())
	ok, err := resumed.ResumeFrom(p, 99)
	if err != nil || !ok {
		t.Fatalf("ResumeFrom = %v, %v", ok, err)
	}
	got, _ := resumed.Snapshot()
	if !reflect.DeepEqual(saved, got) {
		t.Error("Resumed snapshot differs from saved one")
	}
	if resumed.Mode() != ModePaused || resumed.Level() != 2 {
		t.Errorf("Resumed mode %s level %d", resumed.Mode(), resumed.Level())
	}

	if err := r.ClearSaved(p); err != nil {
		t.Fatal(err)
	}
	if ok, _ := NewRunner(testRunnerConfig(), testLevels()).ResumeFrom(p, 1); ok {
		t.Error("Nothing should be resumable after ClearSaved")
	}
}

func TestRunnerSaveRequiresLiveRun(t *testing.T) {
	p := &memProfile{}
	r := NewRunner(testRunnerConfig(), testLevels())
	if err := r.SaveTo(p); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession before start, got %v", err)
	}

	p.failErr = errors.New("disk full")
	if err := r.StartSession(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := r.SaveTo(p); !errors.Is(err, p.failErr) {
		t.Errorf("Expected wrapped profile error, got %v", err)
	}
}

func TestRunnerFinishKeepsBestRun(t *testing.T) {
	p := &memProfile{}

	finish := func(score int) bool {
		t.Helper()
		r := NewRunner(testRunnerConfig(), testLevels())
		seed := PreviewSeed{
			State: SessionState{Food: NoPosition, PowerUpPos: NoPosition, Heading: Right, Score: score, Obstacles: []core.Point{{X: 6, Y: 5}}},
			Body:  row(5, 5, 4, 3),
		}
		if err := r.StartPreview(0, seed, 1); err != nil {
			t.Fatal(err)
		}
		r.eligible = true // preview runs are otherwise excluded
		r.Tick()
		best, err := r.Finish(p)
		if err != nil {
			t.Fatal(err)
		}
		return best
	}

	if !finish(10) {
		t.Error("First finished run should become the best run")
	}
	if finish(5) {
		t.Error("Lower score should not replace the best run")
	}
	if !finish(12) {
		t.Error("Higher score should replace the best run")
	}
	if p.best.Score != 12 {
		t.Errorf("Best score = %d, expected 12", p.best.Score)
	}
}
