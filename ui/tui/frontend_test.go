package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(80, 30)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	cell := cells[y*w+x]
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := cells[y*w+x]
			if len(cell.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(cell.Runes[0])
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func testFrame(state types.State) game.Frame {
	return game.Frame{
		Grid:       types.Grid{Size: types.DefaultGridSize},
		Segments:   []types.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Direction:  types.Right,
		Food:       entity.Food{Pos: types.Point{X: 3, Y: 4}, Type: types.FoodBonus},
		Score:      40,
		Multiplier: 2,
		BestScore:  90,
		Difficulty: types.Normal,
		State:      state,
		Interval:   150 * time.Millisecond,
	}
}

func TestDrawBoard(t *testing.T) {
	s := newTestScreen(t)
	f := New(s, config.Default().Palette(), zerolog.Nop())
	f.Draw(testFrame(types.Running))

	if r := runeAt(s, 1+10*cellWidth, 2+10); r != '▶' {
		t.Errorf("head rune = %q", r)
	}
	if r := runeAt(s, 1+9*cellWidth+1, 2+10); r != '█' {
		t.Errorf("body rune = %q", r)
	}
	if r := runeAt(s, 1+3*cellWidth, 2+4); r != '●' {
		t.Errorf("food rune = %q", r)
	}
	if r := runeAt(s, 0, 1); r != tcell.RuneULCorner {
		t.Errorf("corner rune = %q", r)
	}

	text := screenText(s)
	for _, want := range []string{"Score: 40 (x2)", "Best: 90", "normal", "Speed: 150ms", "No games yet"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
	if strings.Contains(text, "PAUSED") || strings.Contains(text, "GAME OVER") {
		t.Error("overlay drawn while running")
	}
}

func TestDrawStyles(t *testing.T) {
	s := newTestScreen(t)
	palette := config.Default().Palette()
	f := New(s, palette, zerolog.Nop())
	f.Draw(testFrame(types.Running))

	cells, w, _ := s.GetContents()
	fg, _, _ := cells[(2+10)*w+1+10*cellWidth].Style.Decompose()
	if fg != rgb(palette.Head) {
		t.Errorf("head colour = %v, want %v", fg, rgb(palette.Head))
	}
	fg, _, _ = cells[(2+4)*w+1+3*cellWidth].Style.Decompose()
	if fg != rgb(palette.Food[types.FoodBonus]) {
		t.Errorf("food colour = %v", fg)
	}
}

func TestDrawOverlays(t *testing.T) {
	s := newTestScreen(t)
	f := New(s, config.Default().Palette(), zerolog.Nop())

	f.DrawPause(testFrame(types.Paused))
	if !strings.Contains(screenText(s), "PAUSED") {
		t.Error("pause overlay missing")
	}

	f.Draw(testFrame(types.GameOver))
	text := screenText(s)
	for _, want := range []string{"GAME OVER", "Final score: 40", "Best score: 90"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}

	f.Draw(testFrame(types.Ready))
	if !strings.Contains(screenText(s), "READY") {
		t.Error("ready overlay missing")
	}
}

func TestHeadRuneFollowsDirection(t *testing.T) {
	s := newTestScreen(t)
	f := New(s, config.Default().Palette(), zerolog.Nop())
	fr := testFrame(types.Running)
	fr.Segments = []types.Point{{X: 10, Y: 9}, {X: 10, Y: 10}}
	fr.Direction = types.Up
	f.Draw(fr)
	if r := runeAt(s, 1+10*cellWidth, 2+9); r != '▲' {
		t.Errorf("head rune = %q, want ▲", r)
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want game.Event
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.DirectionEvent(types.Up)},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.DirectionEvent(types.Left)},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.DirectionEvent(types.Right)},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModShift), game.DirectionEvent(types.Down)},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.CommandEvent(game.EventPause)},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.CommandEvent(game.EventStart)},
		{tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModShift), game.CommandEvent(game.EventRestart)},
		{tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), game.DifficultyEvent(types.Easy)},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), game.DifficultyEvent(types.Hard)},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.CommandEvent(game.EventQuit)},
	}
	for _, tt := range tests {
		got, ok := KeyEvent(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("KeyEvent(%s) = %+v, %v; want %+v", tt.ev.Name(), got, ok, tt.want)
		}
	}

	if _, ok := KeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Error("unbound rune produced an event")
	}
	if _, ok := KeyEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("unbound key produced an event")
	}
}

func TestListenForwardsKeys(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	f := New(s, config.Default().Palette(), zerolog.Nop())

	events := make(chan game.Event, 4)
	done := make(chan struct{})
	go func() {
		f.Listen(context.Background(), events)
		close(done)
	}()

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	for _, want := range []game.Event{game.DirectionEvent(types.Up), game.CommandEvent(game.EventStart)} {
		select {
		case got := <-events:
			if got != want {
				t.Errorf("event = %+v, want %+v", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("key never forwarded")
		}
	}

	s.Fini()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after Fini")
	}
}
