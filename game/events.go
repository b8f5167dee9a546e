package game

import (
	"context"

	"snake-arcade/game/types"
)

// EventKind identifies a semantic input command
type EventKind int

const (
	EventDirection EventKind = iota
	EventStart
	EventPause
	EventRestart
	EventDifficulty
	EventQuit
)

var eventKindNames = [...]string{"direction", "start", "pause", "restart", "difficulty", "quit"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is one input command, independent of the key or button that produced it
type Event struct {
	Kind       EventKind
	Direction  types.Direction
	Difficulty types.Difficulty
}

func DirectionEvent(d types.Direction) Event {
	return Event{Kind: EventDirection, Direction: d}
}

func DifficultyEvent(d types.Difficulty) Event {
	return Event{Kind: EventDifficulty, Difficulty: d}
}

func CommandEvent(k EventKind) Event {
	return Event{Kind: k}
}

// Handle applies an event. It reports false when the event asks to quit.
// Unknown events are ignored.
func (g *Game) Handle(ev Event) bool {
	switch ev.Kind {
	case EventDirection:
		g.ChangeDirection(ev.Direction)
	case EventStart:
		g.Start()
	case EventPause:
		g.TogglePause()
	case EventRestart:
		g.Restart()
	case EventDifficulty:
		g.SetDifficulty(ev.Difficulty)
	case EventQuit:
		return false
	default:
		g.log.Debug().Int("kind", int(ev.Kind)).Msg("ignoring unknown event")
	}
	return true
}

// callbackSource is a scheduler whose fired callbacks must be run by the caller
type callbackSource interface {
	C() <-chan func()
}

// Run drives the game until ctx is done, events is closed or a quit event
// arrives. Ticks and input are applied on the calling goroutine.
func (g *Game) Run(ctx context.Context, events <-chan Event) error {
	var callbacks <-chan func()
	if src, ok := g.sched.(callbackSource); ok {
		callbacks = src.C()
	}

	defer func() {
		g.cancelTick()
		if g.revert != nil {
			g.revert.Cancel()
			g.revert = nil
		}
	}()

	g.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !g.Handle(ev) {
				g.log.Info().Msg("quit requested")
				return nil
			}
		case fn := <-callbacks:
			fn()
		}
	}
}
