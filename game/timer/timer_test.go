package timer

import (
	"testing"
	"time"
)

func TestManualEvery(t *testing.T) {
	m := NewManual()
	var fired []time.Duration
	m.Every(150*time.Millisecond, func() { fired = append(fired, m.Now()) })

	m.Advance(100 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	m.Advance(350 * time.Millisecond)
	want := []time.Duration{150 * time.Millisecond, 300 * time.Millisecond, 450 * time.Millisecond}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fire %d at %v, want %v", i, fired[i], want[i])
		}
	}
}

func TestManualAfterRunsOnce(t *testing.T) {
	m := NewManual()
	calls := 0
	m.After(time.Second, func() { calls++ })
	m.Advance(5 * time.Second)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d after one-shot ran", m.Pending())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	calls := 0
	task := m.Every(10*time.Millisecond, func() { calls++ })
	m.Advance(25 * time.Millisecond)
	task.Cancel()
	task.Cancel()
	m.Advance(time.Second)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestManualCancelFromCallback(t *testing.T) {
	m := NewManual()
	var tick Task
	ticks := 0
	tick = m.Every(10*time.Millisecond, func() { ticks++ })
	m.After(15*time.Millisecond, func() {
		tick.Cancel()
		tick = m.Every(5*time.Millisecond, func() { ticks += 100 })
	})
	m.Advance(30 * time.Millisecond)
	// 10ms: old tick; 15ms: replaced; 20, 25, 30ms: new tick
	if ticks != 301 {
		t.Errorf("ticks = %d, want 301", ticks)
	}
}

func TestManualNextIn(t *testing.T) {
	m := NewManual()
	if _, ok := m.NextIn(); ok {
		t.Fatal("idle scheduler reported a task")
	}
	m.Every(120*time.Millisecond, func() {})
	m.Advance(20 * time.Millisecond)
	if d, ok := m.NextIn(); !ok || d != 100*time.Millisecond {
		t.Errorf("NextIn = %v, %v; want 100ms", d, ok)
	}
}

func TestLoopDeliversOnChannel(t *testing.T) {
	l := NewLoop(4)
	done := make(chan struct{})
	l.After(5*time.Millisecond, func() { close(done) })

	select {
	case fn := <-l.C():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("callback never queued")
	}
	select {
	case <-done:
	default:
		t.Fatal("queued callback did not run the function")
	}
}

func TestLoopCancelledCallbackIsDropped(t *testing.T) {
	l := NewLoop(4)
	ran := false
	task := l.Every(time.Millisecond, func() { ran = true })

	var fn func()
	select {
	case fn = <-l.C():
	case <-time.After(2 * time.Second):
		t.Fatal("tick never queued")
	}
	// Cancelled after firing but before being run by the owner
	task.Cancel()
	fn()
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestLoopCancelBeforeFire(t *testing.T) {
	l := NewLoop(1)
	task := l.After(20*time.Millisecond, func() {})
	task.Cancel()
	select {
	case <-l.C():
		t.Error("cancelled one-shot was queued")
	case <-time.After(60 * time.Millisecond):
	}
}
