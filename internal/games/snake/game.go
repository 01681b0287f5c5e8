package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-rogue/internal/config"
	"github.com/vovakirdan/snake-rogue/internal/core"
	"github.com/vovakirdan/snake-rogue/internal/registry"
)

// Platform-wide options, set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom tuning file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}


const (
	hudHeight    = 2
	messageTicks = 120
)

// Game adapts a Runner to the terminal platform: it paces simulation ticks
// against platform frames, maps actions to runner calls and draws the board.
type Game struct {
	id         string
	title      string
	profile    config.Profile
	ghost      *GhostRun
	startLevel int // 1-based, 0 = first level

	cfg    config.SnakeConfig
	runner *Runner
	pacer  *config.Pacer
	store  Profile
	resume bool

	moveTicker int
	settled    bool
	newBest    bool
	message    string
	messageTTL int

	screenW, screenH int
	loadErr          error
	runErr           error

	observer func(*Runner, TickResult)
}

// New creates a Snake game with the default tuning profile.
func New() *Game {
	return &Game{id: "snake", title: "Snake Rogue", profile: config.ProfileDefault}
}

// NewDev creates a Snake game with the dev tuning profile (frequent power-ups).
func NewDev() *Game {
	return &Game{id: "snake_dev", title: "Snake Rogue (Dev)", profile: config.ProfileDev}
}

// NewGhostViewer creates a game that replays run instead of taking input.
// profile must be the tuning the run was recorded with.
func NewGhostViewer(run GhostRun, profile config.Profile) *Game {
	run = run.Clone()
	return &Game{id: "snake_ghost", title: "Snake Rogue (Best Run)", profile: profile, ghost: &run}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_dev", func() registry.Game {
		return NewDev()
	})
}

// AttachProfile connects persistence. When resume is set the next Reset
// continues the saved session if there is one.
func (g *Game) AttachProfile(p Profile, resume bool) {
	g.store = p
	g.resume = resume
}

// Observe registers fn to be called after every simulation tick. Used for
// spectating and traces; fn must not mutate the runner.
func (g *Game) Observe(fn func(*Runner, TickResult)) {
	g.observer = fn
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Runner exposes the underlying runner.
func (g *Game) Runner() *Runner { return g.runner }

// Config returns the tuning in effect since the last Reset.
func (g *Game) Config() config.SnakeConfig { return g.cfg }

// Reset loads tuning and starts a new run (or replay) with cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.moveTicker = 0
	g.settled, g.newBest = false, false
	g.message, g.messageTTL = "", 0
	g.runErr = nil

	g.cfg, g.loadErr = ResolveConfig(g.profile)
	g.pacer = config.NewPacer(g.cfg.Pacing, g.cfg.Difficulty)

	levels := BuiltinLevels{Width: g.cfg.Board.Width, Height: g.cfg.Board.Height}
	g.runner = NewRunner(NewRunnerConfig(g.cfg), levels)

	switch {
	case g.ghost != nil:
		g.runErr = g.runner.StartReplay(*g.ghost)
	case g.resume && g.store != nil:
		g.resume = false
		resumed, err := g.runner.ResumeFrom(g.store, cfg.Seed)
		if err == nil && resumed {
			g.flash("Resumed saved run")
			return
		}
		g.runErr = g.runner.StartSession(g.firstLevel(), cfg.Seed)
	default:
		g.runErr = g.runner.StartSession(g.firstLevel(), cfg.Seed)
	}
}

// ResolveConfig loads the tuning for profile the way Reset does: the
// configured file (or embedded defaults on error) plus the difficulty preset.
// The returned config is always usable; the error reports a bad file.
func ResolveConfig(profile config.Profile) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(configPath, profile)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
		config.ApplySnakeProfile(&cfg, profile)
		config.NormalizeSnake(&cfg)
	}
	config.ApplySnakePreset(&cfg, config.DifficultyPreset(difficultyPreset))
	return cfg, err
}

// TuningProfile returns the config profile the game loads on Reset.
func (g *Game) TuningProfile() config.Profile { return g.profile }

// LoadError reports a tuning file that failed to load on the last Reset.
func (g *Game) LoadError() error { return g.loadErr }

// LevelIndex returns the level of the current run.
func (g *Game) LevelIndex() int {
	if g.runner == nil {
		return 0
	}
	return g.runner.Level()
}

// SetStartLevel sets the level new runs start on (1-based). 0 or an unknown
// level means the first level.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

func (g *Game) firstLevel() int {
	if g.startLevel > 0 && g.startLevel <= LevelCount() {
		return g.startLevel - 1
	}
	return 0
}

// Step advances the game by one platform frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.runErr != nil {
		return core.StepResult{State: g.State()}
	}
	if g.messageTTL > 0 {
		g.messageTTL--
	}

	mode := g.runner.Mode()
	if in.Has(core.ActionRestart) && mode.Ended() {
		g.Reset(core.RuntimeConfig{
			Seed:    int64(g.runner.rng.Next() >> 1), //#nosec G115 -- top bit dropped
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.runner.TogglePause()
	}

	var messages []string
	for _, a := range in.Order {
		if idx, ok := a.ChoiceIndex(); ok {
			if g.runner.SelectChoice(idx) {
				g.moveTicker = 0
			}
			continue
		}
		if d, ok := actionDirection(a); ok {
			g.runner.EnqueueDirection(d)
		}
	}

	g.moveTicker++
	st := g.runner.session.state
	if g.moveTicker >= g.pacer.MoveEveryTicks(st.Score, st.Tick, st.ActiveBuff == BuffSlow) {
		g.moveTicker = 0
		res := g.runner.Tick()
		if g.observer != nil {
			g.observer(g.runner, res)
		}
		for _, e := range res.Events {
			if m := e.Message(); m != "" {
				messages = append(messages, m)
				g.flash(m)
			}
		}
	}

	if g.runner.Mode() == ModeGameOver && !g.settled && g.store != nil {
		g.settled = true
		best, err := g.runner.Finish(g.store)
		if err == nil && best {
			g.newBest = true
			messages = append(messages, "New best run")
		}
	}

	return core.StepResult{State: g.State(), Messages: messages}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

// SaveProgress stores the live run in the attached profile, if any.
func (g *Game) SaveProgress() error {
	if g.store == nil || g.runner == nil {
		return ErrNoSession
	}
	return g.runner.SaveTo(g.store)
}

func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	}
	return Direction{}, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.runner == nil || g.runner.session == nil {
		return core.GameState{GameOver: g.runErr != nil}
	}
	mode := g.runner.Mode()
	return core.GameState{
		Score:    g.runner.session.state.Score,
		GameOver: mode.Ended() || g.runErr != nil,
		Paused:   mode == ModePaused,
	}
}

// buffGlyph returns the rune and color used to draw a power-up.
func buffGlyph(b BuffID) (rune, core.Color) {
	switch b {
	case BuffGhost:
		return 'G', core.ColorBrightWhite
	case BuffSlow:
		return 'S', core.ColorBrightBlue
	case BuffMagnet:
		return 'M', core.ColorBrightMagenta
	case BuffShield:
		return 'H', core.ColorCyan
	case BuffPortal:
		return 'P', core.ColorMagenta
	case BuffDouble:
		return 'D', core.ColorBrightYellow
	case BuffRich:
		return 'R', core.ColorOrange
	case BuffLaser:
		return 'L', core.ColorBrightRed
	case BuffMini:
		return 'm', core.ColorGreen
	}
	return '?', core.ColorDefault
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.runErr != nil || g.runner == nil || g.runner.session == nil {
		msg := "No run"
		if g.runErr != nil {
			msg = g.runErr.Error()
		}
		g.renderOverlay(dst, "Cannot start", msg)
		return
	}

	s := g.runner.session
	w, h := s.Width(), s.Height()
	if dst.Width() < w+2 || dst.Height() < h+hudHeight+2 {
		dst.DrawTextCentered(dst.Height()/2, "Too small")
		return
	}

	g.renderHUD(dst)

	ox := (dst.Width() - w) / 2
	oy := hudHeight + 1
	dst.DrawBox(core.NewRect(ox-1, oy-1, w+2, h+2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetColored(ox+x, oy+y, '·', core.ColorGray)
		}
	}

	st := s.state
	for _, o := range st.Obstacles {
		dst.SetColored(ox+o.X, oy+o.Y, '#', core.ColorWhite)
	}
	if st.Food != NoPosition {
		dst.SetColored(ox+st.Food.X, oy+st.Food.Y, '*', core.ColorBrightRed)
	}
	if st.HasPowerUp() {
		r, c := buffGlyph(st.PowerUpType)
		dst.SetColored(ox+st.PowerUpPos.X, oy+st.PowerUpPos.Y, r, c)
	}

	bodyColor := core.ColorGreen
	if st.ActiveBuff != BuffNone {
		_, bodyColor = buffGlyph(st.ActiveBuff)
	}
	for i := s.body.Len() - 1; i >= 0; i-- {
		p := s.body.At(i)
		if i == 0 {
			dst.SetColored(ox+p.X, oy+p.Y, '@', core.ColorBrightGreen)
		} else {
			dst.SetColored(ox+p.X, oy+p.Y, 'o', bodyColor)
		}
	}

	switch g.runner.Mode() {
	case ModeChoiceSelection:
		g.renderChoices(dst)
	case ModePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case ModeGameOver:
		line := fmt.Sprintf("Score: %d  R to restart", st.Score)
		if g.newBest {
			line = fmt.Sprintf("New best run: %d  R to restart", st.Score)
		}
		g.renderOverlay(dst, "Game Over", line)
	case ModeReplayFinished:
		title := "Replay finished"
		if g.runner.Desynced() {
			title = "Replay desynced"
		}
		g.renderOverlay(dst, title, fmt.Sprintf("Score: %d  R to watch again", st.Score))
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.runner.session.state
	level := "?"
	if l := GetLevel(g.runner.Level()); l != nil {
		level = l.Name
	}
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d  Level: %s", g.title, st.Score, g.runner.session.Length(), level)
	dst.DrawText(0, 0, hud)

	x := len([]rune(hud)) + 2
	if st.ShieldActive {
		dst.DrawTextColored(x, 0, "[shield]", core.ColorCyan)
		x += 9
	}
	if st.ActiveBuff != BuffNone {
		_, c := buffGlyph(st.ActiveBuff)
		dst.DrawTextColored(x, 0, fmt.Sprintf("[%s %d]", st.ActiveBuff, st.BuffTicksRemaining), c)
	}

	if g.messageTTL > 0 {
		dst.DrawTextColored(1, 1, g.message, core.ColorYellow)
	} else if g.ghost != nil {
		dst.DrawTextColored(1, 1, "Watching best run", core.ColorGray)
	}
}

func (g *Game) renderChoices(dst *core.Screen) {
	choices := g.runner.Choices()
	lines := make([]string, len(choices))
	width := len("Choose an upgrade")
	for i, c := range choices {
		lines[i] = fmt.Sprintf("%d) %s: %s", i+1, c.Name, c.Description)
		width = max(width, len([]rune(lines[i])))
	}

	boxW := width + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+2, box.Y+1, "Choose an upgrade", core.ColorBrightYellow)
	for i, line := range lines {
		_, c := buffGlyph(choices[i].ID)
		dst.DrawTextColored(box.X+2, box.Y+3+i, line, c)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
