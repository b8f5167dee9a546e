package game

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/store"
	"snake-arcade/game/timer"
	"snake-arcade/game/types"
)

// Options configures a Game. Zero fields get working defaults.
type Options struct {
	Rules      types.Rules
	Difficulty types.Difficulty
	Store      store.Store
	Scheduler  timer.Scheduler
	Rand       *rand.Rand
	Renderer   Renderer
	Sounds     Sounds
	Logger     zerolog.Logger
	Now        func() time.Time
}

// Game is the controller: it owns the snake, the food, the score and the
// tick schedule, and applies input events. It is not safe for concurrent
// use; Run serialises events and ticks on one goroutine.
type Game struct {
	rules types.Rules
	grid  types.Grid

	snake *entity.Snake
	food  entity.Food
	state types.State

	difficulty types.Difficulty
	interval   time.Duration
	boosted    bool

	sched  timer.Scheduler
	tick   timer.Task
	revert timer.Task

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	statsMgr     *manager.StatsManager

	renderer Renderer
	sounds   Sounds
	log      zerolog.Logger
	now      func() time.Time

	gameID    string
	startedAt time.Time
	summary   Summary
}

func NewGame(opts Options) *Game {
	rules := opts.Rules
	if rules.GridSize == 0 {
		rules = types.DefaultRules()
	}
	rules = rules.Clone()

	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timer.NewLoop(1)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.Sounds == nil {
		opts.Sounds = nopSounds{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if _, ok := rules.Intervals[opts.Difficulty]; !ok {
		opts.Difficulty = types.Normal
	}

	grid := types.Grid{Size: rules.GridSize}
	collisionMgr := manager.NewCollisionManager(grid)

	g := &Game{
		rules:        rules,
		grid:         grid,
		snake:        entity.NewSnake(grid),
		state:        types.Ready,
		difficulty:   opts.Difficulty,
		interval:     rules.Intervals[opts.Difficulty],
		sched:        opts.Scheduler,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, opts.Rand, collisionMgr),
		stateMgr:     manager.NewStateManager(rules, opts.Store, opts.Logger),
		statsMgr:     manager.NewStatsManager(),
		renderer:     opts.Renderer,
		sounds:       opts.Sounds,
		log:          opts.Logger,
		now:          opts.Now,
	}
	g.placeFood()
	return g
}

// Start begins a game from the Ready state
func (g *Game) Start() {
	if g.state != types.Ready {
		return
	}
	g.state = types.Running
	g.gameID = g.statsMgr.NewGameID()
	g.startedAt = g.now()
	g.restartTick()

	g.log.Info().
		Str("game", g.gameID).
		Stringer("difficulty", g.difficulty).
		Dur("interval", g.interval).
		Msg("game started")
	g.render()
}

// TogglePause switches between Running and Paused
func (g *Game) TogglePause() {
	switch g.state {
	case types.Running:
		g.state = types.Paused
		g.cancelTick()
		g.renderer.DrawPause(g.Frame())
		g.log.Debug().Str("game", g.gameID).Msg("paused")
	case types.Paused:
		g.state = types.Running
		g.restartTick()
		g.log.Debug().Str("game", g.gameID).Msg("resumed")
		g.render()
	}
}

// Restart discards the current game and returns to Ready. The best score is kept.
func (g *Game) Restart() {
	g.cancelTick()
	g.cancelBoost()

	g.snake.Reset()
	g.stateMgr.ResetScore()
	g.state = types.Ready
	g.summary = Summary{}
	g.gameID = ""
	g.placeFood()

	g.renderer.Draw(g.Frame())
	g.log.Debug().Msg("restarted")
}

// SetDifficulty switches difficulty. A running game keeps its state and
// continues at the new tick interval. An active speed boost ends.
func (g *Game) SetDifficulty(d types.Difficulty) {
	if _, ok := g.rules.Intervals[d]; !ok {
		return
	}

	g.cancelBoost()
	g.difficulty = d
	g.interval = g.rules.Intervals[d]
	if g.state == types.Running {
		g.restartTick()
	}

	g.log.Info().Stringer("difficulty", d).Dur("interval", g.interval).Msg("difficulty changed")
	g.render()
}

// ChangeDirection queues a heading for the next tick
func (g *Game) ChangeDirection(d types.Direction) {
	if g.state == types.GameOver {
		return
	}
	g.snake.RequestDirectionChange(d)
}

// Update runs one tick: move, eat, check collisions, redraw
func (g *Game) Update() {
	if g.state != types.Running {
		return
	}

	g.snake.CommitDirection()
	if g.snake.Advance(g.food.Pos) {
		g.handleFoodEaten()
	}

	if g.state == types.Running && g.snake.HasCollision(g.grid.Size) {
		g.endGame(g.collisionMgr.Check(g.snake).String())
	}

	g.renderer.Draw(g.Frame())
}

func (g *Game) handleFoodEaten() {
	eaten := g.food
	points, newBest := g.stateMgr.Award(eaten.Type, g.difficulty)
	g.sounds.FoodEaten(eaten.Type)

	g.log.Debug().
		Stringer("food", eaten.Type).
		Int("points", points).
		Int("score", g.stateMgr.GetScore()).
		Msg("food eaten")
	if newBest {
		g.log.Info().Int("best", g.stateMgr.GetBestScore()).Msg("new best score")
	}

	if eaten.Type == types.FoodSpeed {
		g.applyBoost()
	}

	if !g.placeFood() {
		g.endGame("board full")
	}
}

// placeFood spawns the next food item. It reports false when no cell is free.
func (g *Game) placeFood() bool {
	food, err := g.foodMgr.GenerateFood(g.snake)
	if err != nil {
		if !errors.Is(err, manager.ErrNoFreeCell) {
			g.log.Error().Err(err).Msg("food generation failed")
		}
		return false
	}
	g.food = food
	return true
}

// applyBoost shortens the active interval for the boost duration. A boost
// taken while boosted compounds and restarts the countdown.
func (g *Game) applyBoost() {
	g.interval = g.rules.Boosted(g.interval)
	g.boosted = true
	g.restartTick()

	if g.revert != nil {
		g.revert.Cancel()
	}
	g.revert = g.sched.After(g.rules.BoostDuration, g.endBoost)

	g.log.Debug().Dur("interval", g.interval).Msg("speed boost")
}

func (g *Game) endBoost() {
	g.revert = nil
	if !g.boosted || g.state == types.GameOver {
		return
	}
	g.boosted = false
	g.interval = g.rules.Intervals[g.difficulty]
	if g.state == types.Running {
		g.restartTick()
	}
	g.log.Debug().Dur("interval", g.interval).Msg("speed boost over")
}

func (g *Game) cancelBoost() {
	if g.revert != nil {
		g.revert.Cancel()
		g.revert = nil
	}
	if g.boosted {
		g.boosted = false
		g.interval = g.rules.Intervals[g.difficulty]
	}
}

func (g *Game) endGame(cause string) {
	g.state = types.GameOver
	g.cancelTick()
	if g.revert != nil {
		g.revert.Cancel()
		g.revert = nil
	}

	g.summary = Summary{
		FinalScore: g.stateMgr.GetScore(),
		BestScore:  g.stateMgr.GetBestScore(),
	}
	g.statsMgr.AddGame(manager.GameRecord{
		ID:         g.gameID,
		Difficulty: g.difficulty,
		Score:      g.summary.FinalScore,
		StartTime:  g.startedAt,
		EndTime:    g.now(),
	})
	g.sounds.GameOver()

	g.log.Info().
		Str("game", g.gameID).
		Str("cause", cause).
		Int("score", g.summary.FinalScore).
		Int("best", g.summary.BestScore).
		Msg("game over")
}

// restartTick replaces the tick task with one at the active interval
func (g *Game) restartTick() {
	g.cancelTick()
	if g.state == types.Running {
		g.tick = g.sched.Every(g.interval, g.Update)
	}
}

func (g *Game) cancelTick() {
	if g.tick != nil {
		g.tick.Cancel()
		g.tick = nil
	}
}

func (g *Game) render() {
	if g.state == types.Paused {
		g.renderer.DrawPause(g.Frame())
		return
	}
	g.renderer.Draw(g.Frame())
}

// Frame snapshots the current state for rendering
func (g *Game) Frame() Frame {
	return Frame{
		Grid:       g.grid,
		Segments:   g.snake.Segments(),
		Direction:  g.snake.Direction(),
		Food:       g.food,
		Score:      g.stateMgr.GetScore(),
		Multiplier: g.Multiplier(),
		BestScore:  g.stateMgr.GetBestScore(),
		Difficulty: g.difficulty,
		State:      g.state,
		Interval:   g.interval,
		Boosted:    g.boosted,
		Session:    g.statsMgr.Summary(),
	}
}

func (g *Game) Score() int {
	return g.stateMgr.GetScore()
}

func (g *Game) BestScore() int {
	return g.stateMgr.GetBestScore()
}

func (g *Game) Multiplier() int {
	return g.stateMgr.Multiplier(g.difficulty)
}

func (g *Game) State() types.State {
	return g.state
}

func (g *Game) Difficulty() types.Difficulty {
	return g.difficulty
}

// Interval returns the active tick interval, including any speed boost
func (g *Game) Interval() time.Duration {
	return g.interval
}

func (g *Game) Boosted() bool {
	return g.boosted
}

func (g *Game) Food() entity.Food {
	return g.food
}

// Snake exposes the snake model
func (g *Game) Snake() *entity.Snake {
	return g.snake
}

// Summary returns the final and best score once the game is over
func (g *Game) Summary() (Summary, bool) {
	return g.summary, g.state == types.GameOver
}

// Session returns the records of games finished in this process
func (g *Game) Session() []manager.GameRecord {
	return g.statsMgr.GetStats()
}

// PlaceFood puts the food at a specific cell. Used to stage scenarios.
func (g *Game) PlaceFood(food entity.Food) {
	g.food = food
}
