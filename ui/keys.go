package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

var keyBindings = map[int32]game.Event{
	rl.KeyUp:    game.DirectionEvent(types.Up),
	rl.KeyW:     game.DirectionEvent(types.Up),
	rl.KeyDown:  game.DirectionEvent(types.Down),
	rl.KeyS:     game.DirectionEvent(types.Down),
	rl.KeyLeft:  game.DirectionEvent(types.Left),
	rl.KeyA:     game.DirectionEvent(types.Left),
	rl.KeyRight: game.DirectionEvent(types.Right),
	rl.KeyD:     game.DirectionEvent(types.Right),

	rl.KeySpace:  game.CommandEvent(game.EventPause),
	rl.KeyEnter:  game.CommandEvent(game.EventStart),
	rl.KeyR:      game.CommandEvent(game.EventRestart),
	rl.KeyOne:    game.DifficultyEvent(types.Easy),
	rl.KeyTwo:    game.DifficultyEvent(types.Normal),
	rl.KeyThree:  game.DifficultyEvent(types.Hard),
	rl.KeyQ:      game.CommandEvent(game.EventQuit),
	rl.KeyEscape: game.CommandEvent(game.EventQuit),
}

// KeyEvent maps a raylib key code to its game event
func KeyEvent(key int32) (game.Event, bool) {
	ev, ok := keyBindings[key]
	return ev, ok
}
