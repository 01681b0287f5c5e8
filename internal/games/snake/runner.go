package snake

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-rogue/internal/config"
	"github.com/vovakirdan/snake-rogue/internal/core"
)

// Mode is the lifecycle state of a Runner.
type Mode int

const (
	ModeIdle Mode = iota
	ModePlaying
	ModePaused
	ModeChoiceSelection
	ModeGameOver
	ModeReplaying
	ModeReplayFinished
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeChoiceSelection:
		return "choice"
	case ModeGameOver:
		return "game_over"
	case ModeReplaying:
		return "replaying"
	case ModeReplayFinished:
		return "replay_finished"
	}
	return "unknown"
}

// Ended reports whether the run can no longer advance.
func (m Mode) Ended() bool {
	return m == ModeGameOver || m == ModeReplayFinished
}

// RunnerConfig holds everything a Runner needs besides the level.
type RunnerConfig struct {
	Session                  SessionConfig
	ChoiceCount              int
	ChoiceDurationMultiplier int
	PauseOnChoice            bool
	HalveRichPickup          bool
}

// Recorded reports whether c carries a board, which every real tuning has.
func (c RunnerConfig) Recorded() bool {
	return c.Session.Width > 0 && c.Session.Height > 0
}

// Clone returns a copy that shares no memory with c.
func (c RunnerConfig) Clone() RunnerConfig {
	out := c
	if c.Session.Weights != nil {
		out.Session.Weights = append([]BuffWeight(nil), c.Session.Weights...)
	}
	return out
}

// NewRunnerConfig builds a RunnerConfig from the tuning file.
func NewRunnerConfig(cfg config.SnakeConfig) RunnerConfig {
	return RunnerConfig{
		Session: SessionConfig{
			Width:             cfg.Board.Width,
			Height:            cfg.Board.Height,
			BuffDurationTicks: cfg.Rules.BuffDurationTicks,
			MinimumLength:     cfg.Rules.MinimumLength,
			SpawnPercent:      cfg.PowerUps.SpawnPercent,
			Weights:           WeightTable(cfg.PowerUps.Weights),
		},
		ChoiceCount:              cfg.Rules.ChoiceCount,
		ChoiceDurationMultiplier: cfg.Rules.ChoiceDurationMultiplier,
		PauseOnChoice:            cfg.Rules.PauseOnChoice,
		HalveRichPickup:          cfg.Rules.HalveRichPickup,
	}
}

// TickResult reports what a Runner tick did.
type TickResult struct {
	Mode        Mode
	Step        StepResult
	Expired     BuffID
	BuffExpired bool
	Events      []Event
}

// SavedSession is a resumable run as stored by a Profile.
type SavedSession struct {
	LevelIndex int
	Snapshot   Snapshot
}

// Profile persists sessions and the best run. The runner only reaches
// storage through this port.
type Profile interface {
	SaveSession(s SavedSession) error
	LoadSession() (SavedSession, bool, error)
	ClearSession() error
	BestRun() (GhostRun, bool, error)
	SaveBestRun(run GhostRun) error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger logs mode transitions at debug level.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// Runner drives a Session through its lifecycle and records the timelines
// needed to replay it.
type Runner struct {
	cfg      RunnerConfig
	levels   ObstacleProvider
	base     RunnerConfig
	baseLvls ObstacleProvider
	logger   *log.Logger
	mode     Mode
	paused   Mode // mode to return to from ModePaused
	session  *Session
	rng      *SimpleRNG
	seed     int64
	level    int
	inputs   []ReplayFrame
	choices  []ChoiceRecord
	inCur    int
	choCur   int
	offered  []ChoiceSpec
	carry    []Event
	eligible bool // run may become the best ghost
	desynced bool
}

// NewRunner creates an idle runner.
func NewRunner(cfg RunnerConfig, levels ObstacleProvider, opts ...RunnerOption) *Runner {
	if cfg.ChoiceDurationMultiplier <= 0 {
		cfg.ChoiceDurationMultiplier = 1
	}
	r := &Runner{cfg: cfg, levels: levels, base: cfg, baseLvls: levels}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the current lifecycle state.
func (r *Runner) Mode() Mode { return r.mode }

// Session returns the active session, or nil before the first start.
func (r *Runner) Session() *Session { return r.session }

// Seed returns the run seed.
func (r *Runner) Seed() int64 { return r.seed }

// Level returns the level index of the run.
func (r *Runner) Level() int { return r.level }

// Choices returns the options of the pending choice event.
func (r *Runner) Choices() []ChoiceSpec {
	return append([]ChoiceSpec(nil), r.offered...)
}

// Desynced reports whether a replay hit a choice it had no record for.
func (r *Runner) Desynced() bool { return r.desynced }

func (r *Runner) setMode(m Mode) {
	if r.logger != nil && m != r.mode {
		r.logger.Debug("mode change", "from", r.mode, "to", m, "tick", r.tick(), "score", r.score())
	}
	r.mode = m
}

func (r *Runner) tick() int {
	if r.session == nil {
		return 0
	}
	return r.session.state.Tick
}

func (r *Runner) score() int {
	if r.session == nil {
		return 0
	}
	return r.session.state.Score
}

// Tuning returns the rules of the current run.
func (r *Runner) Tuning() RunnerConfig { return r.cfg.Clone() }

// useTuning switches the rules for the next start. A zero cfg restores the
// rules the runner was built with.
func (r *Runner) useTuning(cfg RunnerConfig) {
	if !cfg.Recorded() {
		r.cfg, r.levels = r.base, r.baseLvls
		return
	}
	if cfg.ChoiceDurationMultiplier <= 0 {
		cfg.ChoiceDurationMultiplier = 1
	}
	r.cfg, r.levels = cfg, r.baseLvls
	sameBoard := cfg.Session.Width == r.base.Session.Width && cfg.Session.Height == r.base.Session.Height
	if b, ok := r.baseLvls.(BoardLevels); ok && !sameBoard {
		r.levels = b.ForBoard(cfg.Session.Width, cfg.Session.Height)
	}
}

func (r *Runner) begin(level int, seed int64) error {
	r.session = NewSession(r.cfg.Session)
	r.rng = NewSimpleRNG(seed)
	r.seed = seed
	r.level = level
	r.inputs, r.choices = nil, nil
	r.inCur, r.choCur = 0, 0
	r.offered, r.carry = nil, nil
	r.desynced = false

	var obstacles []core.Point
	if r.levels != nil {
		obstacles = r.levels.Obstacles(level)
	}
	if err := r.session.Bootstrap(obstacles, r.rng.Intn); err != nil {
		r.setMode(ModeIdle)
		return fmt.Errorf("start level %d: %w", level, err)
	}
	return nil
}

// StartSession begins a live run.
func (r *Runner) StartSession(level int, seed int64) error {
	r.useTuning(RunnerConfig{})
	if err := r.begin(level, seed); err != nil {
		return err
	}
	r.eligible = true
	r.setMode(ModePlaying)
	return nil
}

// StartReplay begins re-simulating a recorded run under the rules it was
// recorded with.
func (r *Runner) StartReplay(run GhostRun) error {
	r.useTuning(run.Tuning.Clone())
	if err := r.begin(run.LevelIndex, run.Seed); err != nil {
		return err
	}
	run = run.Clone()
	r.inputs, r.choices = run.Inputs, run.Choices
	r.eligible = false
	r.setMode(ModeReplaying)
	return nil
}

// StartPreview begins a live run from a prepared state. Preview runs are
// never recorded as the best run.
func (r *Runner) StartPreview(level int, seed PreviewSeed, rngSeed int64) error {
	r.useTuning(RunnerConfig{})
	r.session = NewSession(r.cfg.Session)
	if err := r.session.Seed(seed); err != nil {
		return err
	}
	r.rng = NewSimpleRNG(rngSeed)
	r.seed = rngSeed
	r.level = level
	r.inputs, r.choices = nil, nil
	r.inCur, r.choCur = 0, 0
	r.offered, r.carry = nil, nil
	r.eligible = false
	r.desynced = false
	r.setMode(ModePlaying)
	return nil
}

func (r *Runner) advanceConfig() AdvanceConfig {
	return AdvanceConfig{
		ConsumeInput:    true,
		PauseOnChoice:   r.cfg.PauseOnChoice,
		HalveRichPickup: r.cfg.HalveRichPickup,
	}
}

// Tick advances the run by one simulation step. It does nothing outside
// ModePlaying and ModeReplaying.
func (r *Runner) Tick() TickResult {
	if r.mode != ModePlaying && r.mode != ModeReplaying {
		return TickResult{Mode: r.mode}
	}
	replay := r.mode == ModeReplaying
	res := TickResult{Events: r.carry}
	r.carry = nil

	if replay {
		ApplyInputsForTick(r.inputs, r.session.state.Tick, &r.inCur, func(d Direction) {
			r.session.EnqueueDirection(d)
		})
	}

	if b, ok := r.session.TickBuff(); ok {
		res.Expired, res.BuffExpired = b, true
		res.Events = append(res.Events, Event{Kind: EventBuffExpired, Buff: b})
	}

	step := r.session.Advance(r.advanceConfig(), r.rng.Intn)
	res.Step = step
	res.Events = append(res.Events, step.Events...)

	switch {
	case step.Collision:
		if replay {
			r.setMode(ModeReplayFinished)
		} else {
			r.setMode(ModeGameOver)
		}
	case step.TriggerChoice:
		r.offerChoices()
		if replay {
			res.Events = append(res.Events, r.replayChoices()...)
		} else {
			r.setMode(ModeChoiceSelection)
		}
	}

	res.Mode = r.mode
	return res
}

func (r *Runner) offerChoices() {
	st := r.session.state
	r.offered = PickChoices(ChoiceSeed(r.seed, st.Tick, st.Score), r.cfg.ChoiceCount)
}

// replayChoices applies recorded choices until no choice is pending.
func (r *Runner) replayChoices() []Event {
	var events []Event
	for len(r.offered) > 0 {
		idx := -1
		if !ApplyChoiceForTick(r.choices, r.session.state.Tick, &r.choCur, func(i int) { idx = i }) ||
			idx < 0 || idx >= len(r.offered) {
			r.desynced = true
			r.offered = nil
			r.setMode(ModeReplayFinished)
			return events
		}
		events = append(events, r.applyChoice(idx)...)
	}
	return events
}

// applyChoice commits any parked step, then grants the chosen upgrade. If
// the committed step offered another choice, r.offered holds it.
func (r *Runner) applyChoice(idx int) []Event {
	spec := r.offered[idx]
	r.offered = nil

	cfg := r.advanceConfig()
	step := r.session.ResumeDeferred(cfg, r.rng.Intn)
	events := append([]Event(nil), step.Events...)

	duration := r.cfg.Session.BuffDurationTicks * r.cfg.ChoiceDurationMultiplier
	events = append(events, Event{Kind: EventChoiceTaken, Buff: spec.ID, Pos: r.session.Head()})
	events = append(events, r.session.ApplyAcquisition(spec.ID, duration)...)

	if step.TriggerChoice {
		r.offerChoices()
	}
	return events
}

// SelectChoice resolves the pending choice event with the option at index.
// It returns false and changes nothing if no choice is pending or index is
// out of range.
func (r *Runner) SelectChoice(index int) bool {
	if r.mode != ModeChoiceSelection || index < 0 || index >= len(r.offered) {
		return false
	}
	r.choices = append(r.choices, ChoiceRecord{Tick: r.session.state.Tick, Index: index})
	r.carry = append(r.carry, r.applyChoice(index)...)
	if len(r.offered) == 0 {
		r.setMode(ModePlaying)
	}
	return true
}

// EnqueueDirection queues a heading change during live play and records it
// for replay when accepted.
func (r *Runner) EnqueueDirection(d Direction) bool {
	if r.mode != ModePlaying {
		return false
	}
	if !r.session.EnqueueDirection(d) {
		return false
	}
	r.inputs = append(r.inputs, ReplayFrame{Tick: r.session.state.Tick, DX: d.DX, DY: d.DY})
	return true
}

// TogglePause switches between playing (or replaying) and paused.
func (r *Runner) TogglePause() bool {
	switch r.mode {
	case ModePlaying, ModeReplaying:
		r.paused = r.mode
		r.setMode(ModePaused)
		return true
	case ModePaused:
		r.setMode(r.paused)
		return true
	}
	return false
}

// Snapshot returns a copy of the session, or false before the first start.
func (r *Runner) Snapshot() (Snapshot, bool) {
	if r.session == nil {
		return Snapshot{}, false
	}
	return r.session.Snapshot(), true
}

// Ghost returns the recorded run once a live, eligible session is over.
func (r *Runner) Ghost() (GhostRun, bool) {
	if r.mode != ModeGameOver || !r.eligible {
		return GhostRun{}, false
	}
	return GhostRun{
		Seed:       r.seed,
		LevelIndex: r.level,
		Score:      r.session.state.Score,
		Tuning:     r.cfg.Clone(),
		Inputs:     append([]ReplayFrame(nil), r.inputs...),
		Choices:    append([]ChoiceRecord(nil), r.choices...),
	}, true
}

// live reports whether a live run is in progress and can be saved.
func (r *Runner) live() bool {
	switch {
	case r.session == nil:
		return false
	case r.mode == ModePlaying:
		return true
	case r.mode == ModePaused:
		return r.paused == ModePlaying
	}
	return false
}

// SaveTo stores the live session so it can be resumed later.
func (r *Runner) SaveTo(p Profile) error {
	if !r.live() {
		return ErrNoSession
	}
	if err := p.SaveSession(SavedSession{LevelIndex: r.level, Snapshot: r.session.Snapshot()}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ResumeFrom restores a saved session and pauses it. The RNG state is not
// part of a save, so the resumed run is reseeded and cannot become the best
// ghost. Returns false when nothing was saved.
func (r *Runner) ResumeFrom(p Profile, seed int64) (bool, error) {
	saved, ok, err := p.LoadSession()
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := r.StartPreview(saved.LevelIndex, PreviewSeed(saved.Snapshot), seed); err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	r.paused = ModePlaying
	r.setMode(ModePaused)
	return true, nil
}

// ClearSaved drops any stored session.
func (r *Runner) ClearSaved(p Profile) error {
	if err := p.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Finish settles a finished live run with the profile: the saved session is
// cleared and the run replaces the best ghost if it scored higher. Returns
// true when a new best run was stored.
func (r *Runner) Finish(p Profile) (bool, error) {
	if r.mode != ModeGameOver {
		return false, nil
	}
	if err := r.ClearSaved(p); err != nil {
		return false, err
	}
	run, ok := r.Ghost()
	if !ok {
		return false, nil
	}
	best, have, err := p.BestRun()
	if err != nil {
		return false, fmt.Errorf("load best run: %w", err)
	}
	if have && best.Score >= run.Score {
		return false, nil
	}
	if err := p.SaveBestRun(run); err != nil {
		return false, fmt.Errorf("save best run: %w", err)
	}
	if r.logger != nil {
		r.logger.Info("new best run", "score", run.Score, "level", run.LevelIndex, "inputs", len(run.Inputs))
	}
	return true, nil
}
