package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// layout places the grid, the control buttons and the side panel for one
// window size
type layout struct {
	screenWidth  int32
	screenHeight int32

	cell    int32
	gridPx  int32
	offsetX int32
	offsetY int32

	panelX             int32
	panelWidth         int32
	panelButtonsBottom int32

	fontSize   int32
	lineHeight int32
}

func computeLayout(screenWidth, screenHeight int32, gridSize int) layout {
	if gridSize <= 0 {
		gridSize = types.DefaultGridSize
	}
	l := layout{screenWidth: screenWidth, screenHeight: screenHeight}

	l.panelWidth = max(screenWidth/4, minPanelWidth)
	l.panelX = screenWidth - l.panelWidth
	gameWidth := l.panelX

	availableWidth := gameWidth - borderPadding*2
	availableHeight := screenHeight - headerHeight - buttonHeight - borderPadding*3
	l.cell = max(min(availableWidth, availableHeight)/int32(gridSize), 1)
	l.gridPx = l.cell * int32(gridSize)

	l.offsetX = max((gameWidth-l.gridPx)/2, borderPadding)
	l.offsetY = headerHeight

	l.fontSize = max(min(screenHeight/36, 24), 10)
	l.lineHeight = l.fontSize + l.fontSize/2

	// Heading, then one button per difficulty
	l.panelButtonsBottom = borderPadding + l.lineHeight + int32(len(types.Difficulties))*(buttonHeight+buttonGap)
	return l
}

func (l layout) cellX(x int) int32 {
	return l.offsetX + int32(x)*l.cell
}

func (l layout) cellY(y int) int32 {
	return l.offsetY + int32(y)*l.cell
}

type button struct {
	label  string
	rect   rl.Rectangle
	event  game.Event
	active bool
}

// buttons lists the clickable controls for the frame's state. Start is only
// offered before a game begins.
func (l layout) buttons(f game.Frame) []button {
	var out []button

	x := float32(l.offsetX)
	y := float32(l.offsetY + l.gridPx + borderPadding)
	add := func(label string, ev game.Event) {
		out = append(out, button{
			label: label,
			rect:  rl.Rectangle{X: x, Y: y, Width: buttonWidth, Height: buttonHeight},
			event: ev,
		})
		x += buttonWidth + buttonGap
	}

	if f.State == types.Ready {
		add("Start", game.CommandEvent(game.EventStart))
	}
	pauseLabel := "Pause"
	if f.State == types.Paused {
		pauseLabel = "Resume"
	}
	add(pauseLabel, game.CommandEvent(game.EventPause))
	add("Restart", game.CommandEvent(game.EventRestart))

	x = float32(l.panelX + buttonGap)
	y = float32(borderPadding + l.lineHeight)
	for _, d := range types.Difficulties {
		out = append(out, button{
			label:  difficultyLabels[d],
			rect:   rl.Rectangle{X: x, Y: y, Width: float32(l.panelWidth - 2*buttonGap), Height: buttonHeight},
			event:  game.DifficultyEvent(d),
			active: d == f.Difficulty,
		})
		y += buttonHeight + buttonGap
	}
	return out
}

var difficultyLabels = map[types.Difficulty]string{
	types.Easy:   "Easy",
	types.Normal: "Normal",
	types.Hard:   "Hard",
}

// buttonAt returns the event of the button under (x, y)
func (l layout) buttonAt(f game.Frame, x, y float32) (game.Event, bool) {
	for _, b := range l.buttons(f) {
		if x >= b.rect.X && x < b.rect.X+b.rect.Width && y >= b.rect.Y && y < b.rect.Y+b.rect.Height {
			return b.event, true
		}
	}
	return game.Event{}, false
}
