package game

import (
	"fmt"
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

// Frame is an immutable snapshot of everything a frontend needs to draw
type Frame struct {
	Grid       types.Grid
	Segments   []types.Point // head first
	Direction  types.Direction
	Food       entity.Food
	Score      int
	Multiplier int
	BestScore  int
	Difficulty types.Difficulty
	State      types.State
	Interval   time.Duration
	Boosted    bool
	Session    manager.SessionSummary
}

// Head returns the head segment
func (f Frame) Head() types.Point {
	if len(f.Segments) == 0 {
		return types.Point{}
	}
	return f.Segments[0]
}

// ScoreLine formats the running score with its multiplier
func (f Frame) ScoreLine() string {
	return fmt.Sprintf("Score: %d (x%d)", f.Score, f.Multiplier)
}

// SessionLines summarises the games finished in this session
func (f Frame) SessionLines() []string {
	s := f.Session
	if s.GamesPlayed == 0 {
		return []string{"No games yet"}
	}
	return []string{
		fmt.Sprintf("Games: %d", s.GamesPlayed),
		fmt.Sprintf("Avg: %.1f", s.AverageScore),
		fmt.Sprintf("Max: %d", s.MaxScore),
		fmt.Sprintf("Avg time: %s", s.AverageDuration.Round(100*time.Millisecond)),
	}
}

// Summary is the terminal result of a game
type Summary struct {
	FinalScore int
	BestScore  int
}

// Renderer draws frames. Draw is called after every tick and state change,
// DrawPause when the game is paused.
type Renderer interface {
	Draw(f Frame)
	DrawPause(f Frame)
}

// Sounds receives gameplay cues
type Sounds interface {
	FoodEaten(t types.FoodType)
	GameOver()
}

type nopRenderer struct{}

func (nopRenderer) Draw(Frame)      {}
func (nopRenderer) DrawPause(Frame) {}

type nopSounds struct{}

func (nopSounds) FoodEaten(types.FoodType) {}
func (nopSounds) GameOver()                {}
