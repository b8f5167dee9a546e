package entity

import "snake-arcade/game/types"

// Food is the single item on the board
type Food struct {
	Pos  types.Point
	Type types.FoodType
}
