package manager

import (
	"strconv"

	"github.com/rs/zerolog"

	"snake-arcade/game/store"
	"snake-arcade/game/types"
)

// StateManager tracks the running score and the persisted best score
type StateManager struct {
	rules     types.Rules
	store     store.Store
	log       zerolog.Logger
	score     int
	bestScore int
}

// NewStateManager loads the best score from st. A missing or unreadable
// value starts the best score at zero.
func NewStateManager(rules types.Rules, st store.Store, log zerolog.Logger) *StateManager {
	sm := &StateManager{
		rules: rules,
		store: st,
		log:   log,
	}
	sm.bestScore = sm.loadBestScore()
	return sm
}

func (sm *StateManager) loadBestScore() int {
	raw, ok, err := sm.store.Get(types.BestScoreKey)
	if err != nil {
		sm.log.Warn().Err(err).Msg("could not read best score")
		return 0
	}
	if !ok {
		return 0
	}
	best, err := strconv.Atoi(raw)
	if err != nil || best < 0 {
		sm.log.Warn().Str("value", raw).Msg("ignoring malformed best score")
		return 0
	}
	return best
}

// Award adds the points for eating food under difficulty and reports the
// points awarded and whether a new best score was set.
func (sm *StateManager) Award(food types.FoodType, difficulty types.Difficulty) (int, bool) {
	points := sm.rules.Points[food] * sm.Multiplier(difficulty)
	sm.score += points

	if sm.score <= sm.bestScore {
		return points, false
	}
	sm.bestScore = sm.score
	if err := sm.store.Set(types.BestScoreKey, strconv.Itoa(sm.bestScore)); err != nil {
		sm.log.Error().Err(err).Int("best", sm.bestScore).Msg("could not persist best score")
	}
	return points, true
}

func (sm *StateManager) Multiplier(difficulty types.Difficulty) int {
	return sm.rules.Multipliers[difficulty]
}

// ResetScore zeroes the running score. The best score is kept.
func (sm *StateManager) ResetScore() {
	sm.score = 0
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetBestScore() int {
	return sm.bestScore
}
