package timer

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by Advance, for deterministic tests.
// Callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	interval  time.Duration // zero for one-shot tasks
	seq       int
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.cancelled = true
}

func NewManual() *Manual {
	return &Manual{}
}

// Now returns the time elapsed since the Manual was created
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) Task {
	return m.add(interval, interval, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Task {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) *manualTask {
	m.seq++
	t := &manualTask{
		due:      m.now + delay,
		interval: interval,
		seq:      m.seq,
		fn:       fn,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves time forward by d, running every task that falls due in
// order of due time, then scheduling order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.cancelled = true
		}
		next.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	m.compact()
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if len(m.tasks) == 0 || m.tasks[0].due > limit {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
}

// Pending returns the number of tasks that can still run
func (m *Manual) Pending() int {
	m.compact()
	return len(m.tasks)
}

// NextIn returns the delay until the next task runs, or false when idle
func (m *Manual) NextIn() (time.Duration, bool) {
	next := m.nextDue(1<<62 - 1)
	if next == nil {
		return 0, false
	}
	return next.due - m.now, true
}
