package manager

import (
	"time"

	"github.com/google/uuid"

	"snake-arcade/game/types"
)

// GameRecord describes one finished game of the current session
type GameRecord struct {
	ID         string
	Difficulty types.Difficulty
	Score      int
	StartTime  time.Time
	EndTime    time.Time
}

func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// SessionSummary aggregates the records of the session
type SessionSummary struct {
	GamesPlayed     int
	AverageScore    float64
	MaxScore        int
	AverageDuration time.Duration
}

// StatsManager keeps session statistics in memory. Nothing here is persisted.
type StatsManager struct {
	games []GameRecord
}

func NewStatsManager() *StatsManager {
	return &StatsManager{
		games: make([]GameRecord, 0),
	}
}

// NewGameID returns the identifier for a game about to start
func (st *StatsManager) NewGameID() string {
	return uuid.New().String()
}

// AddGame records a finished game
func (st *StatsManager) AddGame(record GameRecord) {
	if record.ID == "" {
		record.ID = st.NewGameID()
	}
	st.games = append(st.games, record)
}

// GetStats returns a copy of the recorded games, oldest first
func (st *StatsManager) GetStats() []GameRecord {
	out := make([]GameRecord, len(st.games))
	copy(out, st.games)
	return out
}

func (st *StatsManager) Summary() SessionSummary {
	s := SessionSummary{GamesPlayed: len(st.games)}
	if len(st.games) == 0 {
		return s
	}

	var totalScore int
	var totalDuration time.Duration
	for _, g := range st.games {
		totalScore += g.Score
		totalDuration += g.Duration()
		if g.Score > s.MaxScore {
			s.MaxScore = g.Score
		}
	}
	s.AverageScore = float64(totalScore) / float64(len(st.games))
	s.AverageDuration = totalDuration / time.Duration(len(st.games))
	return s
}
