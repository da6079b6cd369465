package reveal

import (
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The browser build backs it with setTimeout.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc implements Scheduler.
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer { return fn(d, f) }

// RealScheduler schedules with the runtime timer heap.
var RealScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// Stagger reveals count items one at a time, delay apart, once the parent
// becomes visible. Hiding the parent hides every item.
type Stagger struct {
	mu       sync.Mutex
	sched    Scheduler
	delay    time.Duration
	items    []bool
	pending  []Timer
	parent   bool
	gen      uint64
	closed   bool
	onChange func(index int, visible bool)
}

// NewStagger creates a sequencer for count items. A nil scheduler uses
// RealScheduler.
func NewStagger(count int, delay time.Duration, sched Scheduler) *Stagger {
	if count < 0 {
		count = 0
	}
	if delay < 0 {
		delay = 0
	}
	if sched == nil {
		sched = RealScheduler
	}
	return &Stagger{
		sched: sched,
		delay: delay,
		items: make([]bool, count),
	}
}

// OnChange registers fn for per-item flips.
func (s *Stagger) OnChange(fn func(index int, visible bool)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetParent updates the parent flag. Every call clears timers left over from
// the previous cycle; a stale timer that already fired is discarded by the
// generation check.
func (s *Stagger) SetParent(visible bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelLocked()
	s.parent = visible
	s.gen++

	var hidden []int
	if !visible {
		for i, v := range s.items {
			if v {
				s.items[i] = false
				hidden = append(hidden, i)
			}
		}
		fn := s.onChange
		s.mu.Unlock()
		if fn != nil {
			for _, i := range hidden {
				fn(i, false)
			}
		}
		return
	}

	gen := s.gen
	for i := range s.items {
		idx := i
		t := s.sched.AfterFunc(time.Duration(idx)*s.delay, func() { s.reveal(gen, idx) })
		s.pending = append(s.pending, t)
	}
	s.mu.Unlock()
}

func (s *Stagger) reveal(gen uint64, idx int) {
	s.mu.Lock()
	if s.closed || gen != s.gen || !s.parent || idx >= len(s.items) || s.items[idx] {
		s.mu.Unlock()
		return
	}
	s.items[idx] = true
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(idx, true)
	}
}

func (s *Stagger) cancelLocked() {
	for _, t := range s.pending {
		if t != nil {
			t.Stop()
		}
	}
	s.pending = s.pending[:0]
}

// Items returns a snapshot of the per-item flags.
func (s *Stagger) Items() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bool, len(s.items))
	copy(out, s.items)
	return out
}

// Close cancels all pending reveals. The stagger ignores later calls.
func (s *Stagger) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
	s.gen++
}
