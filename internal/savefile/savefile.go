// Package savefile encodes saved sessions and ghost runs as JSON documents,
// validated against embedded JSON Schemas, with optional zstd compression.
package savefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/snake-rogue/internal/core"
	"github.com/vovakirdan/snake-rogue/internal/games/snake"
)

// Version is the document format version written by this package.
const Version = 1

var (
	//go:embed schemas/session.schema.json
	sessionSchemaJSON string

	//go:embed schemas/ghost.schema.json
	ghostSchemaJSON string
)

// ErrInvalid wraps schema violations.
var ErrInvalid = errors.New("savefile: invalid document")

var (
	schemasOnce   sync.Once
	sessionSchema *jsonschema.Schema
	ghostSchema   *jsonschema.Schema
	schemasErr    error
)

func compileSchemas() error {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("session.schema.json", bytes.NewReader([]byte(sessionSchemaJSON))); err != nil {
			schemasErr = err
			return
		}
		if err := c.AddResource("ghost.schema.json", bytes.NewReader([]byte(ghostSchemaJSON))); err != nil {
			schemasErr = err
			return
		}
		if sessionSchema, schemasErr = c.Compile("session.schema.json"); schemasErr != nil {
			return
		}
		ghostSchema, schemasErr = c.Compile("ghost.schema.json")
	})
	if schemasErr != nil {
		return fmt.Errorf("savefile: compile schemas: %w", schemasErr)
	}
	return nil
}

func validate(s *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Point is a board cell in a document.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Heading is a unit direction in a document.
type Heading struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// PowerUp is the power-up on the board, if any.
type PowerUp struct {
	Pos  Point  `json:"pos"`
	Type string `json:"type"`
}

// SessionDoc is the on-disk form of a resumable session.
type SessionDoc struct {
	Version            int      `json:"version"`
	Level              int      `json:"level"`
	Width              int      `json:"width"`
	Height             int      `json:"height"`
	Score              int      `json:"score"`
	Tick               int      `json:"tick"`
	LastChoiceScore    int      `json:"lastChoiceScore"`
	Food               Point    `json:"food"`
	Heading            Heading  `json:"heading"`
	PowerUp            *PowerUp `json:"powerUp,omitempty"`
	ActiveBuff         string   `json:"activeBuff,omitempty"`
	BuffTicksRemaining int      `json:"buffTicksRemaining"`
	BuffTicksTotal     int      `json:"buffTicksTotal"`
	ShieldActive       bool     `json:"shieldActive"`
	Obstacles          []Point  `json:"obstacles"`
	Body               []Point  `json:"body"`
}

// Weight is one row of a recorded power-up table.
type Weight struct {
	Buff   string `json:"buff"`
	Weight int    `json:"weight"`
}

// TuningDoc is the rule set a ghost run was recorded with.
type TuningDoc struct {
	Width                    int      `json:"width"`
	Height                   int      `json:"height"`
	BuffDurationTicks        int      `json:"buffDurationTicks"`
	MinimumLength            int      `json:"minimumLength"`
	SpawnPercent             int      `json:"spawnPercent"`
	Weights                  []Weight `json:"weights"`
	ChoiceCount              int      `json:"choiceCount"`
	ChoiceDurationMultiplier int      `json:"choiceDurationMultiplier"`
	PauseOnChoice            bool     `json:"pauseOnChoice"`
	HalveRichPickup          bool     `json:"halveRichPickup"`
}

func newTuningDoc(c snake.RunnerConfig) *TuningDoc {
	if !c.Recorded() {
		return nil
	}
	weights := make([]Weight, 0, len(c.Session.Weights))
	for _, w := range c.Session.Weights {
		weights = append(weights, Weight{Buff: w.Buff.String(), Weight: w.Weight})
	}
	return &TuningDoc{
		Width:                    c.Session.Width,
		Height:                   c.Session.Height,
		BuffDurationTicks:        c.Session.BuffDurationTicks,
		MinimumLength:            c.Session.MinimumLength,
		SpawnPercent:             c.Session.SpawnPercent,
		Weights:                  weights,
		ChoiceCount:              c.ChoiceCount,
		ChoiceDurationMultiplier: c.ChoiceDurationMultiplier,
		PauseOnChoice:            c.PauseOnChoice,
		HalveRichPickup:          c.HalveRichPickup,
	}
}

// RunnerConfig converts the document back. Unknown buff names are rejected.
func (d TuningDoc) RunnerConfig() (snake.RunnerConfig, error) {
	var weights []snake.BuffWeight
	for _, w := range d.Weights {
		id, ok := snake.ParseBuff(w.Buff)
		if !ok {
			return snake.RunnerConfig{}, fmt.Errorf("%w: unknown buff %q in weights", ErrInvalid, w.Buff)
		}
		weights = append(weights, snake.BuffWeight{Buff: id, Weight: w.Weight})
	}
	return snake.RunnerConfig{
		Session: snake.SessionConfig{
			Width:             d.Width,
			Height:            d.Height,
			BuffDurationTicks: d.BuffDurationTicks,
			MinimumLength:     d.MinimumLength,
			SpawnPercent:      d.SpawnPercent,
			Weights:           weights,
		},
		ChoiceCount:              d.ChoiceCount,
		ChoiceDurationMultiplier: d.ChoiceDurationMultiplier,
		PauseOnChoice:            d.PauseOnChoice,
		HalveRichPickup:          d.HalveRichPickup,
	}, nil
}

// GhostDoc is the on-disk form of a best run. Tuning is absent in runs
// recorded without a known rule set.
type GhostDoc struct {
	Version       int                  `json:"version"`
	RandomSeed    int64                `json:"randomSeed"`
	LevelIndex    int                  `json:"levelIndex"`
	Score         int                  `json:"score"`
	Tuning        *TuningDoc           `json:"tuning,omitempty"`
	InputHistory  []snake.ReplayFrame  `json:"inputHistory"`
	ChoiceHistory []snake.ChoiceRecord `json:"choiceHistory"`
}

func toPoints(ps []core.Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func fromPoints(ps []Point) []core.Point {
	out := make([]core.Point, len(ps))
	for i, p := range ps {
		out[i] = core.Point{X: p.X, Y: p.Y}
	}
	return out
}

// NewSessionDoc converts a saved session on a w×h board into a document.
func NewSessionDoc(s snake.SavedSession, w, h int) SessionDoc {
	st := s.Snapshot.State
	doc := SessionDoc{
		Version:            Version,
		Level:              s.LevelIndex,
		Width:              w,
		Height:             h,
		Score:              st.Score,
		Tick:               st.Tick,
		LastChoiceScore:    st.LastChoiceScore,
		Food:               Point{X: st.Food.X, Y: st.Food.Y},
		Heading:            Heading{DX: st.Heading.DX, DY: st.Heading.DY},
		BuffTicksRemaining: st.BuffTicksRemaining,
		BuffTicksTotal:     st.BuffTicksTotal,
		ShieldActive:       st.ShieldActive,
		Obstacles:          toPoints(st.Obstacles),
		Body:               toPoints(s.Snapshot.Body),
	}
	if st.ActiveBuff != snake.BuffNone {
		doc.ActiveBuff = st.ActiveBuff.String()
	}
	if st.HasPowerUp() {
		doc.PowerUp = &PowerUp{Pos: Point{X: st.PowerUpPos.X, Y: st.PowerUpPos.Y}, Type: st.PowerUpType.String()}
	}
	return doc
}

// Saved converts the document back into a saved session.
func (d SessionDoc) Saved() (snake.SavedSession, error) {
	if len(d.Body) == 0 {
		return snake.SavedSession{}, snake.ErrEmptyBody
	}
	st := snake.SessionState{
		Food:               core.Point{X: d.Food.X, Y: d.Food.Y},
		PowerUpPos:         snake.NoPosition,
		Heading:            snake.Direction{DX: d.Heading.DX, DY: d.Heading.DY},
		Score:              d.Score,
		Tick:               d.Tick,
		LastChoiceScore:    d.LastChoiceScore,
		BuffTicksRemaining: d.BuffTicksRemaining,
		BuffTicksTotal:     d.BuffTicksTotal,
		ShieldActive:       d.ShieldActive,
		Obstacles:          fromPoints(d.Obstacles),
	}
	if d.ActiveBuff != "" {
		b, ok := snake.ParseBuff(d.ActiveBuff)
		if !ok {
			return snake.SavedSession{}, fmt.Errorf("%w: unknown buff %q", ErrInvalid, d.ActiveBuff)
		}
		st.ActiveBuff = b
	}
	if d.PowerUp != nil {
		b, ok := snake.ParseBuff(d.PowerUp.Type)
		if !ok {
			return snake.SavedSession{}, fmt.Errorf("%w: unknown power-up %q", ErrInvalid, d.PowerUp.Type)
		}
		st.PowerUpPos = core.Point{X: d.PowerUp.Pos.X, Y: d.PowerUp.Pos.Y}
		st.PowerUpType = b
	}
	return snake.SavedSession{
		LevelIndex: d.Level,
		Snapshot:   snake.Snapshot{State: st, Body: fromPoints(d.Body)},
	}, nil
}

// EncodeSession marshals a saved session.
func EncodeSession(s snake.SavedSession, w, h int) ([]byte, error) {
	data, err := json.Marshal(NewSessionDoc(s, w, h))
	if err != nil {
		return nil, fmt.Errorf("savefile: encode session: %w", err)
	}
	return data, nil
}

// DecodeSession validates and unmarshals a saved session document. The board
// size it was saved on is returned alongside.
func DecodeSession(data []byte) (snake.SavedSession, SessionDoc, error) {
	if err := compileSchemas(); err != nil {
		return snake.SavedSession{}, SessionDoc{}, err
	}
	if err := validate(sessionSchema, data); err != nil {
		return snake.SavedSession{}, SessionDoc{}, err
	}
	var doc SessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return snake.SavedSession{}, SessionDoc{}, fmt.Errorf("savefile: decode session: %w", err)
	}
	saved, err := doc.Saved()
	if err != nil {
		return snake.SavedSession{}, SessionDoc{}, err
	}
	return saved, doc, nil
}

// EncodeGhost marshals a ghost run.
func EncodeGhost(run snake.GhostRun) ([]byte, error) {
	doc := GhostDoc{
		Version:       Version,
		RandomSeed:    run.Seed,
		LevelIndex:    run.LevelIndex,
		Score:         run.Score,
		Tuning:        newTuningDoc(run.Tuning),
		InputHistory:  run.Inputs,
		ChoiceHistory: run.Choices,
	}
	if doc.InputHistory == nil {
		doc.InputHistory = []snake.ReplayFrame{}
	}
	if doc.ChoiceHistory == nil {
		doc.ChoiceHistory = []snake.ChoiceRecord{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("savefile: encode ghost: %w", err)
	}
	return data, nil
}

// DecodeGhost validates and unmarshals a ghost run document.
func DecodeGhost(data []byte) (snake.GhostRun, error) {
	if err := compileSchemas(); err != nil {
		return snake.GhostRun{}, err
	}
	if err := validate(ghostSchema, data); err != nil {
		return snake.GhostRun{}, err
	}
	var doc GhostDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return snake.GhostRun{}, fmt.Errorf("savefile: decode ghost: %w", err)
	}
	run := snake.GhostRun{
		Seed:       doc.RandomSeed,
		LevelIndex: doc.LevelIndex,
		Score:      doc.Score,
		Inputs:     doc.InputHistory,
		Choices:    doc.ChoiceHistory,
	}
	if doc.Tuning != nil {
		tuning, err := doc.Tuning.RunnerConfig()
		if err != nil {
			return snake.GhostRun{}, err
		}
		run.Tuning = tuning
	}
	return run, nil
}
