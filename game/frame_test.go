package game

import (
	"testing"
	"time"

	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

func TestFrameScoreLine(t *testing.T) {
	f := Frame{Score: 40, Multiplier: 2}
	if got := f.ScoreLine(); got != "Score: 40 (x2)" {
		t.Errorf("ScoreLine = %q", got)
	}
}

func TestFrameSessionLines(t *testing.T) {
	if got := (Frame{}).SessionLines(); len(got) != 1 {
		t.Errorf("empty session = %v", got)
	}

	f := Frame{Session: manager.SessionSummary{
		GamesPlayed:     3,
		AverageScore:    46.666,
		MaxScore:        80,
		AverageDuration: 12340 * time.Millisecond,
	}}
	want := []string{"Games: 3", "Avg: 46.7", "Max: 80", "Avg time: 12.3s"}
	got := f.SessionLines()
	if len(got) != len(want) {
		t.Fatalf("SessionLines = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrameHead(t *testing.T) {
	if (Frame{}).Head() != (types.Point{}) {
		t.Error("empty frame head not zero")
	}
	f := Frame{Segments: []types.Point{{X: 3, Y: 4}, {X: 2, Y: 4}}}
	if f.Head() != (types.Point{X: 3, Y: 4}) {
		t.Errorf("Head = %v", f.Head())
	}
}
