package types

import (
	"strings"
	"time"
)

// Point is a cell on the game grid
type Point struct {
	X, Y int
}

// Add returns p shifted by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions. The playfield is square.
type Grid struct {
	Size int
}

// Contains reports whether p lies inside [0, Size) on both axes
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Cells returns the number of cells in the grid
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Game constants
const (
	DefaultGridSize = 20
	MinInterval     = 50 * time.Millisecond
	BoostDuration   = 5 * time.Second
	BoostPercent    = 80
	BestScoreKey    = "snakeHighScore"
)

// Direction is one of the four axis-aligned headings
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionNames = [...]string{"up", "right", "down", "left"}

// ToPoint converts a Direction into a one-cell offset
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return d
	}
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// FoodType classifies a food item
type FoodType int

const (
	FoodNormal FoodType = iota
	FoodBonus
	FoodSpeed
)

// FoodTypes lists every food type in spawn order
var FoodTypes = []FoodType{FoodNormal, FoodBonus, FoodSpeed}

var foodTypeNames = [...]string{"normal", "bonus", "speed"}

func (f FoodType) String() string {
	if f < FoodNormal || f > FoodSpeed {
		return "unknown"
	}
	return foodTypeNames[f]
}

// ParseFoodType maps a name back to its FoodType
func ParseFoodType(s string) (FoodType, bool) {
	for i, name := range foodTypeNames {
		if strings.EqualFold(s, name) {
			return FoodType(i), true
		}
	}
	return FoodNormal, false
}

// Difficulty selects the tick interval and the score multiplier
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Difficulties lists every difficulty from slowest to fastest
var Difficulties = []Difficulty{Easy, Normal, Hard}

var difficultyNames = [...]string{"easy", "normal", "hard"}

func (d Difficulty) String() string {
	if d < Easy || d > Hard {
		return "unknown"
	}
	return difficultyNames[d]
}

// ParseDifficulty maps a name back to its Difficulty
func ParseDifficulty(s string) (Difficulty, bool) {
	for i, name := range difficultyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Difficulty(i), true
		}
	}
	return Normal, false
}

// Color is an opaque RGB colour
type Color struct {
	R, G, B uint8
}

// State is the controller's lifecycle state
type State int

const (
	Ready State = iota
	Running
	Paused
	GameOver
)

var stateNames = [...]string{"ready", "running", "paused", "game over"}

func (s State) String() string {
	if s < Ready || s > GameOver {
		return "unknown"
	}
	return stateNames[s]
}

// Rules is the tuning table a game is played with
type Rules struct {
	GridSize      int
	Intervals     map[Difficulty]time.Duration
	Multipliers   map[Difficulty]int
	Points        map[FoodType]int
	BoostPercent  int // tick interval during a speed boost, as a percentage
	MinInterval   time.Duration
	BoostDuration time.Duration
}

// DefaultRules returns the classic tuning: 200/150/100ms ticks with 1x/2x/3x
// scoring, foods worth 10/30/20 and an 80% speed boost lasting five seconds.
func DefaultRules() Rules {
	return Rules{
		GridSize: DefaultGridSize,
		Intervals: map[Difficulty]time.Duration{
			Easy:   200 * time.Millisecond,
			Normal: 150 * time.Millisecond,
			Hard:   100 * time.Millisecond,
		},
		Multipliers: map[Difficulty]int{
			Easy:   1,
			Normal: 2,
			Hard:   3,
		},
		Points: map[FoodType]int{
			FoodNormal: 10,
			FoodBonus:  30,
			FoodSpeed:  20,
		},
		BoostPercent:  BoostPercent,
		MinInterval:   MinInterval,
		BoostDuration: BoostDuration,
	}
}

// Clone returns a deep copy so callers can mutate their own tables
func (r Rules) Clone() Rules {
	out := r
	out.Intervals = make(map[Difficulty]time.Duration, len(r.Intervals))
	for k, v := range r.Intervals {
		out.Intervals[k] = v
	}
	out.Multipliers = make(map[Difficulty]int, len(r.Multipliers))
	for k, v := range r.Multipliers {
		out.Multipliers[k] = v
	}
	out.Points = make(map[FoodType]int, len(r.Points))
	for k, v := range r.Points {
		out.Points[k] = v
	}
	return out
}

// Boosted applies the speed boost to interval, floored at MinInterval
func (r Rules) Boosted(interval time.Duration) time.Duration {
	boosted := interval * time.Duration(r.BoostPercent) / 100
	if boosted < r.MinInterval {
		return r.MinInterval
	}
	return boosted
}
