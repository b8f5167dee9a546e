package manager

import (
	"errors"

	"golang.org/x/exp/rand"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// Rejection sampling attempts before falling back to scanning free cells
const maxSpawnAttempts = 64

// ErrNoFreeCell is returned when the snake covers every cell of the grid
var ErrNoFreeCell = errors.New("no free cell for food")

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, rng *rand.Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a uniformly random free cell and a uniformly random type
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (entity.Food, error) {
	pos, err := fm.freeCell(snake)
	if err != nil {
		return entity.Food{}, err
	}
	return entity.Food{
		Pos:  pos,
		Type: types.FoodTypes[fm.rng.Intn(len(types.FoodTypes))],
	}, nil
}

func (fm *FoodManager) freeCell(snake *entity.Snake) (types.Point, error) {
	for i := 0; i < maxSpawnAttempts; i++ {
		pos := types.Point{
			X: fm.rng.Intn(fm.grid.Size),
			Y: fm.rng.Intn(fm.grid.Size),
		}
		if fm.collisionMgr.ValidateSpawnPosition(pos, snake) {
			return pos, nil
		}
	}

	// Crowded board: choose among the cells that are actually free
	free := make([]types.Point, 0, max(fm.grid.Cells()-snake.Len(), 0))
	for y := 0; y < fm.grid.Size; y++ {
		for x := 0; x < fm.grid.Size; x++ {
			pos := types.Point{X: x, Y: y}
			if !snake.Occupies(pos) {
				free = append(free, pos)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, ErrNoFreeCell
	}
	return free[fm.rng.Intn(len(free))], nil
}
