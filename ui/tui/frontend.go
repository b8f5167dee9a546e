// Package tui is the terminal frontend: it draws frames into a tcell screen
// and turns key presses into game events.
package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/types"
)

// Each grid cell is two columns wide so cells look square
const cellWidth = 2

type styles struct {
	base   tcell.Style
	border tcell.Style
	head   tcell.Style
	body   tcell.Style
	text   tcell.Style
	banner tcell.Style
	food   map[types.FoodType]tcell.Style
}

func newStyles(p config.Palette) styles {
	bg := rgb(p.Background)
	s := styles{
		base:   tcell.StyleDefault.Background(bg),
		border: tcell.StyleDefault.Foreground(rgb(p.Grid)).Background(bg),
		head:   tcell.StyleDefault.Foreground(rgb(p.Head)).Background(bg),
		body:   tcell.StyleDefault.Foreground(rgb(p.Body)).Background(bg),
		text:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg),
		banner: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true),
		food:   make(map[types.FoodType]tcell.Style),
	}
	for ft, c := range p.Food {
		s.food[ft] = tcell.StyleDefault.Foreground(rgb(c)).Background(bg)
	}
	return s
}

func rgb(c types.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Frontend renders into a tcell screen. Draw and DrawPause are called by the
// game loop; Listen runs the input loop.
type Frontend struct {
	mu     sync.Mutex
	screen tcell.Screen
	styles styles
	log    zerolog.Logger
	last   game.Frame
	paused bool
}

// New wraps an initialised screen
func New(screen tcell.Screen, palette config.Palette, log zerolog.Logger) *Frontend {
	st := newStyles(palette)
	screen.SetStyle(st.base)
	screen.HideCursor()
	return &Frontend{
		screen: screen,
		styles: st,
		log:    log,
	}
}

func (f *Frontend) Draw(fr game.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last, f.paused = fr, false
	f.render()
}

func (f *Frontend) DrawPause(fr game.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last, f.paused = fr, true
	f.render()
}

// redraw repeats the last frame, after a resize
func (f *Frontend) redraw() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen.Sync()
	f.render()
}

func (f *Frontend) render() {
	s := f.screen
	fr := f.last
	s.Clear()

	size := fr.Grid.Size
	if size <= 0 {
		s.Show()
		return
	}

	// Status line above the board
	drawText(s, 0, 0, f.styles.text, fmt.Sprintf("%s   Best: %d   %s", fr.ScoreLine(), fr.BestScore, fr.Difficulty))

	// Board: border at row 1, cells from row 2
	left, top := 0, 1
	right, bottom := left+size*cellWidth+1, top+size+1
	drawBox(s, left, top, right, bottom, f.styles.border)

	f.setCell(fr.Food.Pos, '●', f.foodStyle(fr.Food.Type))
	for i := len(fr.Segments) - 1; i >= 0; i-- {
		if i == 0 {
			f.setCell(fr.Segments[i], headRune(fr.Direction), f.styles.head)
			continue
		}
		f.setCell(fr.Segments[i], '█', f.styles.body)
	}

	// Side panel
	x, y := right+2, top
	lines := []string{
		fmt.Sprintf("State: %s", fr.State),
		fmt.Sprintf("Speed: %dms", fr.Interval.Milliseconds()),
		fmt.Sprintf("Length: %d", len(fr.Segments)),
	}
	if fr.Boosted {
		lines = append(lines, "Speed boost!")
	}
	lines = append(lines, "", "Session")
	lines = append(lines, fr.SessionLines()...)
	lines = append(lines, "", "Enter start  Space pause", "R restart  1/2/3 difficulty", "Q quit")
	for _, line := range lines {
		drawText(s, x, y, f.styles.text, line)
		y++
	}

	switch {
	case f.paused:
		f.overlay(size, "PAUSED", "Space to resume")
	case fr.State == types.GameOver:
		f.overlay(size, "GAME OVER",
			fmt.Sprintf("Final score: %d", fr.Score),
			fmt.Sprintf("Best score: %d", fr.BestScore),
			"R to restart")
	case fr.State == types.Ready:
		f.overlay(size, "READY", "Enter to start")
	}

	s.Show()
}

func (f *Frontend) foodStyle(ft types.FoodType) tcell.Style {
	if st, ok := f.styles.food[ft]; ok {
		return st
	}
	return f.styles.text
}

// setCell fills both columns of a grid cell
func (f *Frontend) setCell(p types.Point, r rune, style tcell.Style) {
	col, row := 1+p.X*cellWidth, 2+p.Y
	f.screen.SetContent(col, row, r, nil, style)
	f.screen.SetContent(col+1, row, r, nil, style)
}

func (f *Frontend) overlay(size int, title string, lines ...string) {
	centre := 1 + size*cellWidth/2
	row := 2 + size/2 - (len(lines)+1)/2
	drawCentred(f.screen, centre, row, f.styles.banner, " "+title+" ")
	for i, line := range lines {
		drawCentred(f.screen, centre, row+1+i, f.styles.text, line)
	}
}

func headRune(d types.Direction) rune {
	switch d {
	case types.Up:
		return '▲'
	case types.Down:
		return '▼'
	case types.Left:
		return '◀'
	default:
		return '▶'
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentred(s tcell.Screen, centre, y int, style tcell.Style, text string) {
	drawText(s, centre-len([]rune(text))/2, y, style, text)
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}

// Listen forwards key presses as events until ctx is done or the screen is
// finalised. It blocks; run it on its own goroutine.
func (f *Frontend) Listen(ctx context.Context, events chan<- game.Event) {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			f.redraw()
		case *tcell.EventKey:
			gev, ok := KeyEvent(ev)
			if !ok {
				continue
			}
			select {
			case events <- gev:
			case <-ctx.Done():
				return
			}
		}
	}
}

var keyBindings = map[tcell.Key]game.Event{
	tcell.KeyUp:     game.DirectionEvent(types.Up),
	tcell.KeyDown:   game.DirectionEvent(types.Down),
	tcell.KeyLeft:   game.DirectionEvent(types.Left),
	tcell.KeyRight:  game.DirectionEvent(types.Right),
	tcell.KeyEnter:  game.CommandEvent(game.EventStart),
	tcell.KeyEscape: game.CommandEvent(game.EventQuit),
	tcell.KeyCtrlC:  game.CommandEvent(game.EventQuit),
}

var runeBindings = map[rune]game.Event{
	'w': game.DirectionEvent(types.Up),
	's': game.DirectionEvent(types.Down),
	'a': game.DirectionEvent(types.Left),
	'd': game.DirectionEvent(types.Right),
	' ': game.CommandEvent(game.EventPause),
	'r': game.CommandEvent(game.EventRestart),
	'1': game.DifficultyEvent(types.Easy),
	'2': game.DifficultyEvent(types.Normal),
	'3': game.DifficultyEvent(types.Hard),
	'q': game.CommandEvent(game.EventQuit),
}

// KeyEvent maps a key press to its game event. Letters match in either case.
func KeyEvent(ev *tcell.EventKey) (game.Event, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		gev, ok := runeBindings[r]
		return gev, ok
	}
	gev, ok := keyBindings[ev.Key()]
	return gev, ok
}
