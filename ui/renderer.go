package ui

import (
	"context"
	"fmt"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/types"
)

const (
	borderPadding = 10
	headerHeight  = 40
	buttonHeight  = 36
	buttonWidth   = 110
	buttonGap     = 10
	minPanelWidth = 180
)

// Renderer is the raylib frontend. Draw and DrawPause may be called from any
// goroutine; they only store the frame. Run owns the window and must be
// called from the main OS thread.
type Renderer struct {
	mu       sync.Mutex
	frame    game.Frame
	hasFrame bool
	paused   bool

	palette config.Palette
	events  chan<- game.Event
	log     zerolog.Logger
	layout  layout
}

func NewRenderer(palette config.Palette, events chan<- game.Event, log zerolog.Logger) *Renderer {
	return &Renderer{
		palette: palette,
		events:  events,
		log:     log,
	}
}

func (r *Renderer) Draw(f game.Frame) {
	r.mu.Lock()
	r.frame, r.hasFrame, r.paused = f, true, false
	r.mu.Unlock()
}

func (r *Renderer) DrawPause(f game.Frame) {
	r.mu.Lock()
	r.frame, r.hasFrame, r.paused = f, true, true
	r.mu.Unlock()
}

func (r *Renderer) snapshot() (game.Frame, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame, r.hasFrame, r.paused
}

// Run opens the window and draws the latest frame until the window is
// closed or ctx is done. Closing the window sends a quit event.
func (r *Renderer) Run(ctx context.Context, width, height int32, title string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	// Esc is bound to quit through the event channel
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, ok, paused := r.snapshot()
		r.layout = computeLayout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), frame.Grid.Size)
		r.pollInput(frame)

		rl.BeginDrawing()
		rl.ClearBackground(toRL(r.palette.Background))
		if ok {
			r.drawFrame(frame, paused)
		}
		rl.EndDrawing()
	}

	r.send(game.CommandEvent(game.EventQuit))
	return nil
}

func (r *Renderer) send(ev game.Event) {
	select {
	case r.events <- ev:
	default:
		r.log.Warn().Stringer("event", ev.Kind).Msg("event queue full, dropping input")
	}
}

func (r *Renderer) pollInput(frame game.Frame) {
	for key := range keyBindings {
		if rl.IsKeyPressed(key) {
			ev, _ := KeyEvent(key)
			r.send(ev)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		if ev, ok := r.layout.buttonAt(frame, pos.X, pos.Y); ok {
			r.send(ev)
		}
	}
}

func (r *Renderer) drawFrame(f game.Frame, paused bool) {
	l := r.layout

	// Grid background and lines
	rl.DrawRectangle(l.offsetX-1, l.offsetY-1, l.gridPx+2, l.gridPx+2, toRL(r.palette.Grid))
	for x := 0; x < f.Grid.Size; x++ {
		for y := 0; y < f.Grid.Size; y++ {
			rl.DrawRectangleLines(l.cellX(x), l.cellY(y), l.cell, l.cell, toRL(r.palette.Background))
		}
	}

	// Food
	foodColor, ok := r.palette.Food[f.Food.Type]
	if !ok {
		foodColor = types.Color{R: 255, G: 82, B: 82}
	}
	rl.DrawRectangle(l.cellX(f.Food.Pos.X)+1, l.cellY(f.Food.Pos.Y)+1, l.cell-1, l.cell-1, toRL(foodColor))

	// Snake, tail first so the head stays on top
	for i := len(f.Segments) - 1; i >= 0; i-- {
		p := f.Segments[i]
		color := r.palette.Body
		if i == 0 {
			color = r.palette.Head
		}
		rl.DrawRectangle(l.cellX(p.X)+1, l.cellY(p.Y)+1, l.cell-1, l.cell-1, toRL(color))
	}
	if len(f.Segments) > 0 {
		r.drawHeading(f.Head(), f.Direction)
	}

	r.drawHeader(f)
	r.drawButtons(f)
	r.drawStatsPanel(f)

	switch {
	case paused:
		r.drawOverlay("Paused", "Press Space to resume")
	case f.State == types.GameOver:
		r.drawOverlay("Game Over",
			fmt.Sprintf("Final score: %d", f.Score),
			fmt.Sprintf("Best score: %d", f.BestScore),
			"Press R to restart")
	case f.State == types.Ready:
		r.drawOverlay("Ready", "Press Enter to start")
	}
}

func (r *Renderer) drawHeading(head types.Point, dir types.Direction) {
	l := r.layout
	headX := float32(l.cellX(head.X))
	headY := float32(l.cellY(head.Y))
	cell := float32(l.cell)
	half := cell / 2
	indicator := rl.Yellow

	switch dir {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: headX + cell, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX + half, Y: headY + cell},
			indicator)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY + cell},
			rl.Vector2{X: headX + half, Y: headY},
			indicator)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY + cell},
			rl.Vector2{X: headX + cell, Y: headY + half},
			rl.Vector2{X: headX, Y: headY + half},
			indicator)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + cell, Y: headY + half},
			indicator)
	}
}

func (r *Renderer) drawHeader(f game.Frame) {
	l := r.layout
	y := (headerHeight - l.fontSize) / 2
	rl.DrawText(f.ScoreLine(), l.offsetX, y, l.fontSize, rl.White)

	best := fmt.Sprintf("Best: %d", f.BestScore)
	width := rl.MeasureText(best, l.fontSize)
	rl.DrawText(best, l.offsetX+l.gridPx-width, y, l.fontSize, rl.White)
}

func (r *Renderer) drawButtons(f game.Frame) {
	for _, b := range r.layout.buttons(f) {
		bg := rl.DarkGray
		if b.active {
			bg = toRL(r.palette.Head)
		}
		rl.DrawRectangleRec(b.rect, bg)
		rl.DrawRectangleLinesEx(b.rect, 1, rl.LightGray)
		width := rl.MeasureText(b.label, r.layout.fontSize)
		rl.DrawText(b.label,
			int32(b.rect.X)+(int32(b.rect.Width)-width)/2,
			int32(b.rect.Y)+(int32(b.rect.Height)-r.layout.fontSize)/2,
			r.layout.fontSize, rl.White)
	}
}

func (r *Renderer) drawStatsPanel(f game.Frame) {
	l := r.layout
	x := l.panelX + buttonGap
	y := int32(borderPadding)

	rl.DrawRectangle(l.panelX, 0, l.panelWidth, l.screenHeight, rl.Color{R: 40, G: 40, B: 40, A: 255})
	rl.DrawText("Difficulty", x, y, l.fontSize, rl.White)

	// Difficulty buttons are drawn by drawButtons, below this heading
	y = l.panelButtonsBottom + l.lineHeight
	lines := []string{
		fmt.Sprintf("Speed: %dms", f.Interval.Milliseconds()),
		fmt.Sprintf("Multiplier: x%d", f.Multiplier),
		fmt.Sprintf("Length: %d", len(f.Segments)),
	}
	if f.Boosted {
		lines = append(lines, "Speed boost!")
	}
	lines = append(lines, "", "Session")
	lines = append(lines, f.SessionLines()...)

	for _, line := range lines {
		rl.DrawText(line, x, y, l.fontSize, rl.White)
		y += l.lineHeight
	}
}

func (r *Renderer) drawOverlay(title string, lines ...string) {
	l := r.layout
	rl.DrawRectangle(l.offsetX, l.offsetY, l.gridPx, l.gridPx, rl.Fade(rl.Black, 0.5))

	titleSize := l.fontSize * 2
	y := l.offsetY + l.gridPx/2 - titleSize - int32(len(lines))*l.lineHeight/2
	width := rl.MeasureText(title, titleSize)
	rl.DrawText(title, l.offsetX+(l.gridPx-width)/2, y, titleSize, rl.White)

	y += titleSize + l.lineHeight/2
	for _, line := range lines {
		width := rl.MeasureText(line, l.fontSize)
		rl.DrawText(line, l.offsetX+(l.gridPx-width)/2, y, l.fontSize, rl.White)
		y += l.lineHeight
	}
}

func toRL(c types.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
