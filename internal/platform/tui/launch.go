package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/storage"
)

// RunKind is what a menu selection starts.
type RunKind int

const (
	RunNew RunKind = iota
	RunResume
	RunWatchBest
)

// SnakeSelection holds the user's selection from the Snake menu.
type SnakeSelection struct {
	Kind  RunKind
	Level int // 0 = first level, otherwise 1-based
	Dev   bool
}

// GameID returns the registry id of the selected tuning profile.
func (s SnakeSelection) GameID() string {
	if s.Dev {
		return "snake_dev"
	}
	return "snake"
}

// Launcher builds games for menu selections and wires them to the
// player's profile. A nil Store plays without persistence.
type Launcher struct {
	Store   *storage.Store
	Player  string
	Logger  *log.Logger
	Observe func(*snake.Runner, snake.TickResult)
}

func newTuned(dev bool) *snake.Game {
	if dev {
		return snake.NewDev()
	}
	return snake.New()
}

// profileFor returns the persistence port of gameID for this player.
func (l Launcher) profileFor(g *snake.Game) *storage.ProfileStore {
	if l.Store == nil {
		return nil
	}
	cfg, _ := snake.ResolveConfig(g.TuningProfile())
	player := l.Player
	if player == "" {
		player = "local"
	}
	return l.Store.Profile(player+"/"+g.ID(), cfg.Board.Width, cfg.Board.Height)
}

// HasSaved reports whether a resumable run exists for the profile.
func (l Launcher) HasSaved(dev bool) bool {
	p := l.profileFor(newTuned(dev))
	if p == nil {
		return false
	}
	_, ok, err := p.LoadSession()
	return err == nil && ok
}

// BestRun returns the stored best run of the profile.
func (l Launcher) BestRun(dev bool) (snake.GhostRun, bool) {
	p := l.profileFor(newTuned(dev))
	if p == nil {
		return snake.GhostRun{}, false
	}
	run, ok, err := p.BestRun()
	if err != nil {
		if l.Logger != nil {
			l.Logger.Warn("could not load best run", "error", err)
		}
		return snake.GhostRun{}, false
	}
	return run, ok
}

// Launch creates the game for sel. Reset has not been called yet.
func (l Launcher) Launch(sel SnakeSelection) (*snake.Game, error) {
	var g *snake.Game
	switch sel.Kind {
	case RunWatchBest:
		run, ok := l.BestRun(sel.Dev)
		if !ok {
			return nil, fmt.Errorf("no best run recorded for %s", sel.GameID())
		}
		g = snake.NewGhostViewer(run, newTuned(sel.Dev).TuningProfile())
	default:
		g = newTuned(sel.Dev)
		g.SetStartLevel(sel.Level)
		if p := l.profileFor(g); p != nil {
			g.AttachProfile(p, sel.Kind == RunResume)
		}
	}
	if l.Observe != nil {
		g.Observe(l.Observe)
	}
	return g, nil
}
