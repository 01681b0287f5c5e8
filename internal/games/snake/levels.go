package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// ObstacleProvider supplies the ordered obstacle list of a level.
type ObstacleProvider interface {
	Obstacles(level int) []core.Point
	LevelCount() int
}

// Level is a named obstacle layout that scales with the board.
type Level struct {
	Name   string
	Layout func(w, h int) []core.Point
}

// Levels is the built-in level list.
var Levels = []Level{
	{Name: "Open Field", Layout: func(int, int) []core.Point { return nil }},
	{Name: "Four Pillars", Layout: fourPillars},
	{Name: "Crossroads", Layout: crossroads},
	{Name: "Cage", Layout: cage},
	{Name: "Zigzag", Layout: zigzag},
}

// LevelCount returns the number of built-in levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at index, or nil if out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, level := range Levels {
		names[i] = level.Name
	}
	return names
}

// BoardLevels is an ObstacleProvider whose layouts follow the board size.
type BoardLevels interface {
	ObstacleProvider
	ForBoard(w, h int) ObstacleProvider
}

// BuiltinLevels provides Levels for a fixed board size.
type BuiltinLevels struct {
	Width, Height int
}

// Obstacles returns the layout of level wrapped onto the board, with
// duplicates removed and order preserved. Unknown levels have no obstacles.
func (b BuiltinLevels) Obstacles(level int) []core.Point {
	l := GetLevel(level)
	if l == nil {
		return nil
	}
	seen := make(map[core.Point]bool)
	var out []core.Point
	for _, p := range l.Layout(b.Width, b.Height) {
		p = core.WrapPoint(p, b.Width, b.Height)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// LevelCount returns the number of built-in levels.
func (b BuiltinLevels) LevelCount() int {
	return LevelCount()
}

// ForBoard returns the built-in levels for a w x h board.
func (b BuiltinLevels) ForBoard(w, h int) ObstacleProvider {
	return BuiltinLevels{Width: w, Height: h}
}

func fourPillars(w, h int) []core.Point {
	var out []core.Point
	for _, c := range []core.Point{{X: w / 4, Y: h / 4}, {X: 3 * w / 4, Y: h / 4}, {X: w / 4, Y: 3 * h / 4}, {X: 3 * w / 4, Y: 3 * h / 4}} {
		out = append(out, c, c.Add(1, 0), c.Add(0, 1), c.Add(1, 1))
	}
	return out
}

// crossroads draws a plus through the middle with a gap at the center and at each end.
func crossroads(w, h int) []core.Point {
	var out []core.Point
	cx, cy := w/2, h/2
	for x := 2; x < w-2; x++ {
		if core.Abs(x-cx) > 1 {
			out = append(out, core.Point{X: x, Y: cy})
		}
	}
	for y := 2; y < h-2; y++ {
		if core.Abs(y-cy) > 1 {
			out = append(out, core.Point{X: cx, Y: y})
		}
	}
	return out
}

// cage is a wall around the board edge with a door in the middle of each side.
func cage(w, h int) []core.Point {
	var out []core.Point
	for x := 0; x < w; x++ {
		if core.Abs(x-w/2) > 1 {
			out = append(out, core.Point{X: x, Y: 0}, core.Point{X: x, Y: h - 1})
		}
	}
	for y := 1; y < h-1; y++ {
		if core.Abs(y-h/2) > 1 {
			out = append(out, core.Point{X: 0, Y: y}, core.Point{X: w - 1, Y: y})
		}
	}
	return out
}

// zigzag places short vertical walls alternating between top and bottom.
func zigzag(w, h int) []core.Point {
	var out []core.Point
	span := h / 2
	for i, x := 0, w/6; x < w-1; i, x = i+1, x+w/6 {
		if w/6 == 0 {
			break
		}
		y0 := 0
		if i%2 == 1 {
			y0 = h - span
		}
		for y := y0; y < y0+span; y++ {
			out = append(out, core.Point{X: x, Y: y})
		}
	}
	return out
}
