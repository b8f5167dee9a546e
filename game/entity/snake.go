package entity

import (
	"snake-arcade/game/types"
)

// Snake is the player's body, head first, with the heading it moves along
// and the heading requested since the last tick.
type Snake struct {
	body      []types.Point
	direction types.Direction
	pending   types.Direction
	grid      types.Grid
}

// NewSnake creates a snake in its starting layout for the given grid
func NewSnake(grid types.Grid) *Snake {
	s := &Snake{grid: grid}
	s.Reset()
	return s
}

// Reset restores the three-segment starting body heading right.
// On the default 20x20 grid the body is (10,10),(9,10),(8,10).
func (s *Snake) Reset() {
	cx, cy := s.grid.Size/2, s.grid.Size/2
	s.body = []types.Point{
		{X: cx, Y: cy},
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}
	s.direction = types.Right
	s.pending = types.Right
}

// RequestDirectionChange records dir as the heading for the next tick.
// Reversing onto the neck is refused.
func (s *Snake) RequestDirectionChange(dir types.Direction) {
	if !dir.Valid() || dir == s.direction.Opposite() {
		return
	}
	s.pending = dir
}

// CommitDirection applies the pending heading
func (s *Snake) CommitDirection() {
	s.direction = s.pending
}

// Advance moves the head one cell along the current heading. When the new
// head lands on food the tail is kept and the snake grows by one.
func (s *Snake) Advance(food types.Point) bool {
	newHead := s.Head().Add(s.direction.ToPoint())

	s.body = append(s.body, types.Point{})
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = newHead

	if newHead == food {
		return true
	}

	s.body = s.body[:len(s.body)-1]
	return false
}

// HasCollision reports whether the head left the grid or hit the body
func (s *Snake) HasCollision(gridSize int) bool {
	head := s.Head()
	if head.X < 0 || head.X >= gridSize || head.Y < 0 || head.Y >= gridSize {
		return true
	}
	return s.HitsBody()
}

// HitsBody reports whether the head overlaps any non-head segment
func (s *Snake) HitsBody() bool {
	head := s.Head()
	for _, segment := range s.body[1:] {
		if segment == head {
			return true
		}
	}
	return false
}

func (s *Snake) Head() types.Point {
	return s.body[0]
}

// Segments returns a copy of the body, head first
func (s *Snake) Segments() []types.Point {
	out := make([]types.Point, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) Len() int {
	return len(s.body)
}

func (s *Snake) Direction() types.Direction {
	return s.direction
}

func (s *Snake) PendingDirection() types.Direction {
	return s.pending
}

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p types.Point) bool {
	for _, segment := range s.body {
		if segment == p {
			return true
		}
	}
	return false
}

// SetBody replaces the body and heading. Used to stage positions in tests
// and tools; an empty body is ignored.
func (s *Snake) SetBody(body []types.Point, dir types.Direction) {
	if len(body) == 0 {
		return
	}
	s.body = make([]types.Point, len(body))
	copy(s.body, body)
	s.direction = dir
	s.pending = dir
}
