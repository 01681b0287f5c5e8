package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// SessionConfig holds the board size and rule constants of a session.
type SessionConfig struct {
	Width             int
	Height            int
	BuffDurationTicks int
	MinimumLength     int
	SpawnPercent      int
	Weights           []BuffWeight
}

// AdvanceConfig selects optional behavior of a single step.
type AdvanceConfig struct {
	ConsumeInput    bool
	PauseOnChoice   bool
	HalveRichPickup bool
}

// StepResult reports what one Advance did.
type StepResult struct {
	Moved         bool // movement committed and Tick incremented
	Collision     bool
	Grew          bool
	TriggerChoice bool
	Deferred      bool // movement parked until ResumeDeferred
	SlowMode      bool
	Events        []Event
}

// pendingStep is a movement whose outcome is decided but not yet committed.
type pendingStep struct {
	heading   Direction
	next      core.Point
	collision CollisionOutcome
	mods      Modifiers
	grew      bool
	food      *FoodOutcome
	resumed   bool // choice already reported when the step was parked
}

// Session owns the state, body and input queue of one run.
type Session struct {
	cfg      SessionConfig
	state    SessionState
	body     *Body
	queue    InputQueue
	deferred *pendingStep
}

// NewSession creates an empty session. Call Bootstrap, Seed or Restore before Advance.
func NewSession(cfg SessionConfig) *Session {
	if len(cfg.Weights) == 0 {
		cfg.Weights = WeightTable(nil)
	}
	return &Session{
		cfg:   cfg,
		state: emptyState(),
		body:  NewBody(),
	}
}

func emptyState() SessionState {
	return SessionState{
		Food:       NoPosition,
		PowerUpPos: NoPosition,
		Heading:    Right,
	}
}

// Width returns the board width.
func (s *Session) Width() int { return s.cfg.Width }

// Height returns the board height.
func (s *Session) Height() int { return s.cfg.Height }

// State returns a copy of the session state.
func (s *Session) State() SessionState {
	return s.state.Clone()
}

// Body returns a copy of the body cells, head first.
func (s *Session) Body() []core.Point {
	return s.body.Cells()
}

// Length returns the body length.
func (s *Session) Length() int {
	return s.body.Len()
}

// Head returns the head cell, or NoPosition for an empty body.
func (s *Session) Head() core.Point {
	if s.body.Len() == 0 {
		return NoPosition
	}
	return s.body.Head()
}

// HasDeferred reports whether a step is waiting for ResumeDeferred.
func (s *Session) HasDeferred() bool {
	return s.deferred != nil
}

// PendingInputs returns the number of queued heading changes.
func (s *Session) PendingInputs() int {
	return s.queue.Len()
}

// Bootstrap starts a fresh run on the given obstacles: a three-cell body
// heading right at the first clear spot, then food from one draw.
func (s *Session) Bootstrap(obstacles []core.Point, rnd RandomFunc) error {
	s.state = emptyState()
	s.state.Obstacles = append([]core.Point(nil), obstacles...)
	s.queue.Clear()
	s.deferred = nil

	start, ok := s.findStart()
	if !ok {
		s.body.Reset(nil)
		return ErrNoStart
	}
	s.body.Reset([]core.Point{
		core.WrapPoint(start.Add(2, 0), s.cfg.Width, s.cfg.Height),
		core.WrapPoint(start.Add(1, 0), s.cfg.Width, s.cfg.Height),
		start,
	})
	s.SpawnFood(rnd)
	return nil
}

// findStart scans the board row by row from (W/4, H/2) for a tail cell with
// three body cells and two cells of runway to the right free of obstacles.
func (s *Session) findStart() (core.Point, bool) {
	w, h := s.cfg.Width, s.cfg.Height
	if w < 5 || h < 1 {
		return core.Point{}, false
	}
	origin := (h/2)*w + w/4
	for i := 0; i < w*h; i++ {
		idx := (origin + i) % (w * h)
		p := core.Point{X: idx % w, Y: idx / w}
		clear := true
		for dx := 0; dx < 5; dx++ {
			if s.isObstacle(core.WrapPoint(p.Add(dx, 0), w, h)) {
				clear = false
				break
			}
		}
		if clear {
			return p, true
		}
	}
	return core.Point{}, false
}

// Seed installs a preview state, bypassing bootstrap.
func (s *Session) Seed(p PreviewSeed) error {
	return s.Restore(Snapshot(p))
}

// Snapshot returns a deep copy of the state and body.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{State: s.state.Clone(), Body: s.body.Cells()}
}

// Restore replaces the session with snap. The session keeps no reference to snap.
func (s *Session) Restore(snap Snapshot) error {
	if len(snap.Body) == 0 {
		return ErrEmptyBody
	}
	s.state = snap.State.Clone()
	s.body.Reset(snap.Body)
	s.queue.Clear()
	s.deferred = nil
	return nil
}

// EnqueueDirection queues a heading change. It is rejected when the queue is
// full, when d is not a unit step, or when d reverses or repeats the last
// queued heading (the current heading if nothing is queued).
func (s *Session) EnqueueDirection(d Direction) bool {
	if !d.Valid() || s.queue.Full() {
		return false
	}
	ref, ok := s.queue.Last()
	if !ok {
		ref = s.state.Heading
	}
	if d == ref || d.Opposite(ref) {
		return false
	}
	return s.queue.Push(d)
}

// TickBuff counts down the active buff. It returns the buff that expired on
// this call, if any.
func (s *Session) TickBuff() (BuffID, bool) {
	if s.state.ActiveBuff == BuffNone {
		return BuffNone, false
	}
	if !TickBuffCountdown(&s.state.BuffTicksRemaining) {
		return BuffNone, false
	}
	expired := s.state.ActiveBuff
	s.state.ActiveBuff = BuffNone
	s.state.BuffTicksTotal = 0
	return expired, true
}

func (s *Session) modifiers() Modifiers {
	return Modifiers{
		Ghost:  s.state.ActiveBuff == BuffGhost,
		Portal: s.state.ActiveBuff == BuffPortal,
		Laser:  s.state.ActiveBuff == BuffLaser,
		Shield: s.state.ShieldActive,
	}
}

// Advance runs one simulation step. It stops without touching state or body
// on a collision, and when a choice triggers with PauseOnChoice set, in which
// case the decided movement is parked for ResumeDeferred.
func (s *Session) Advance(cfg AdvanceConfig, rnd RandomFunc) StepResult {
	if s.deferred != nil || s.body.Len() == 0 {
		return StepResult{Deferred: s.deferred != nil}
	}

	heading := s.state.Heading
	if cfg.ConsumeInput {
		if d, ok := s.queue.Pop(); ok {
			heading = d
		}
	}

	head := s.body.Head()
	next := core.WrapPoint(head.Add(heading.DX, heading.DY), s.cfg.Width, s.cfg.Height)

	mods := s.modifiers()
	col := Resolve(next, s.cfg.Width, s.cfg.Height, s.state.Obstacles, s.body, mods)
	if col.Collision {
		return StepResult{
			Collision: true,
			Events:    []Event{{Kind: EventCollision, Pos: next}},
		}
	}

	step := pendingStep{
		heading:   heading,
		next:      next,
		collision: col,
		mods:      mods,
		grew:      next == s.state.Food,
	}

	if step.grew {
		food := PlanFood(s.foodInput(), rnd)
		step.food = &food
		if food.TriggerChoice && cfg.PauseOnChoice {
			s.deferred = &step
			return StepResult{
				TriggerChoice: true,
				Deferred:      true,
				Events:        []Event{{Kind: EventChoiceOffered, Pos: next}},
			}
		}
	}

	return s.commit(step, cfg, rnd)
}

// ResumeDeferred commits a step parked by Advance.
func (s *Session) ResumeDeferred(cfg AdvanceConfig, rnd RandomFunc) StepResult {
	if s.deferred == nil {
		return StepResult{}
	}
	step := *s.deferred
	step.resumed = true
	s.deferred = nil
	return s.commit(step, cfg, rnd)
}

func (s *Session) foodInput() FoodInput {
	return FoodInput{
		Score:           s.state.Score,
		LastChoiceScore: s.state.LastChoiceScore,
		ActiveBuff:      s.state.ActiveBuff,
		PowerUpPresent:  s.state.HasPowerUp(),
		SpawnPercent:    s.cfg.SpawnPercent,
	}
}

func (s *Session) commit(step pendingStep, cfg AdvanceConfig, rnd RandomFunc) StepResult {
	res := StepResult{Moved: true, Grew: step.grew}
	s.state.Heading = step.heading

	col := step.collision
	switch {
	case col.ConsumeLaser:
		s.state.Obstacles = append(s.state.Obstacles[:col.ObstacleIndex], s.state.Obstacles[col.ObstacleIndex+1:]...)
		if s.state.ActiveBuff == BuffLaser {
			s.clearBuff()
		}
		res.Events = append(res.Events, Event{Kind: EventLaserCut, Pos: step.next})
	case col.ObstacleIndex >= 0 && step.mods.Portal:
		res.Events = append(res.Events, Event{Kind: EventPortalPass, Pos: step.next})
	}
	if col.ConsumeShield {
		s.state.ShieldActive = false
		res.Events = append(res.Events, Event{Kind: EventShieldSpent, Pos: step.next})
	}

	var pickup *PowerUpOutcome
	if !step.grew && s.state.HasPowerUp() && step.next == s.state.PowerUpPos {
		out := PlanPowerUp(s.state.PowerUpType, s.cfg.BuffDurationTicks, cfg.HalveRichPickup)
		pickup = &out
		s.state.PowerUpPos = NoPosition
		s.state.PowerUpType = BuffNone
	}

	if step.food != nil {
		s.applyFood(*step.food, step.next, !step.resumed, &res)
	}

	s.body.PushFront(step.next)
	var popped core.Point
	havePopped := false
	if !step.grew {
		popped, havePopped = s.body.PopBack()
	}

	if step.food != nil {
		s.spawnAfterMeal(*step.food, rnd, &res)
	}
	if pickup != nil {
		res.Events = append(res.Events, Event{Kind: EventPowerUpCollected, Pos: step.next, Buff: pickup.Acquired})
		res.Events = append(res.Events, s.applyPowerUp(*pickup)...)
		res.SlowMode = pickup.SlowMode
	}

	s.state.Tick++

	if s.state.ActiveBuff == BuffMagnet {
		s.applyMagnet(popped, havePopped, rnd, &res)
	}
	return res
}

func (s *Session) applyFood(food FoodOutcome, at core.Point, report bool, res *StepResult) {
	s.state.Score = food.NewScore
	if food.TriggerChoice {
		s.state.LastChoiceScore = food.NewScore
		res.TriggerChoice = report
	}
	res.Events = append(res.Events, Event{Kind: EventAteFood, Pos: at, Points: food.Points})
}

func (s *Session) spawnAfterMeal(food FoodOutcome, rnd RandomFunc, res *StepResult) {
	s.SpawnFood(rnd)
	if food.SpawnPowerUp && s.SpawnPowerUp(rnd) {
		res.Events = append(res.Events, Event{Kind: EventPowerUpSpawned, Pos: s.state.PowerUpPos, Buff: s.state.PowerUpType})
	}
}

// applyPowerUp applies a resolved acquisition to the state and body.
func (s *Session) applyPowerUp(out PowerUpOutcome) []Event {
	var events []Event
	if out.ShieldActivated {
		s.state.ShieldActive = true
	}
	if out.SetsBuff {
		s.state.ActiveBuff = out.BuffAfter
		s.state.BuffTicksRemaining = out.Duration
		s.state.BuffTicksTotal = out.Duration
	}
	if out.MiniApplied {
		target := MiniShrinkTargetLength(s.body.Len(), s.cfg.MinimumLength)
		if target < s.body.Len() {
			s.body.Truncate(target)
			events = append(events, Event{Kind: EventMiniShrink, Pos: s.Head()})
		}
	}
	return events
}

// ApplyAcquisition grants a buff outside of a pickup, as a choice does.
func (s *Session) ApplyAcquisition(b BuffID, duration int) []Event {
	return s.applyPowerUp(PlanPowerUp(b, duration, false))
}

func (s *Session) clearBuff() {
	s.state.ActiveBuff = BuffNone
	s.state.BuffTicksRemaining = 0
	s.state.BuffTicksTotal = 0
}

// applyMagnet pulls food one cell toward the head. Food pulled onto the head
// is eaten at once; that meal is resolved without a further magnet pass.
func (s *Session) applyMagnet(popped core.Point, havePopped bool, rnd RandomFunc, res *StepResult) {
	head := s.body.Head()
	food := s.state.Food
	if food == NoPosition {
		return
	}

	if food != head {
		moved := false
		for _, c := range MagnetCandidates(head, food, s.cfg.Width, s.cfg.Height) {
			if c == s.state.PowerUpPos || s.isObstacle(c) {
				continue
			}
			// The head counts as free; food pulled onto it is eaten below.
			if c != head && s.body.Contains(c) {
				continue
			}
			s.state.Food = c
			moved = true
			res.Events = append(res.Events, Event{Kind: EventMagnetPull, Pos: c})
			break
		}
		if !moved || s.state.Food != head {
			return
		}
	}

	// Immediate eat: grow by restoring the tail cell this step dropped.
	if !havePopped {
		popped = s.body.Tail()
	}
	s.body.PushBack(popped)
	res.Grew = true

	meal := PlanFood(s.foodInput(), rnd)
	s.applyFood(meal, head, true, res)
	s.spawnAfterMeal(meal, rnd, res)
}

func (s *Session) isObstacle(p core.Point) bool {
	for _, o := range s.state.Obstacles {
		if o == p {
			return true
		}
	}
	return false
}

// freeCells lists cells, row by row, not covered by an obstacle, the body,
// the food or the power-up.
func (s *Session) freeCells() []core.Point {
	var cells []core.Point
	for y := 0; y < s.cfg.Height; y++ {
		for x := 0; x < s.cfg.Width; x++ {
			p := core.Point{X: x, Y: y}
			if p == s.state.Food || p == s.state.PowerUpPos {
				continue
			}
			if s.isObstacle(p) || s.body.Contains(p) {
				continue
			}
			cells = append(cells, p)
		}
	}
	return cells
}

// SpawnFood moves food to a random free cell with one draw. On a full board
// it returns false and leaves food where it was.
func (s *Session) SpawnFood(rnd RandomFunc) bool {
	cells := s.freeCells()
	if len(cells) == 0 {
		return false
	}
	s.state.Food = cells[rnd(len(cells))]
	return true
}

// SpawnPowerUp places a power-up on a free cell (one draw) and picks its type
// from the weight table (one more draw). On a full board it returns false.
func (s *Session) SpawnPowerUp(rnd RandomFunc) bool {
	cells := s.freeCells()
	if len(cells) == 0 {
		return false
	}
	s.state.PowerUpPos = cells[rnd(len(cells))]
	s.state.PowerUpType = WeightedRandomBuffID(s.cfg.Weights, rnd)
	return true
}
