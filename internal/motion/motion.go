// Package motion decides how much animation the current device should get.
package motion

import (
	"fmt"
	"sync"
	"time"
)

// MobileBreakpoint is the first viewport width treated as desktop.
const MobileBreakpoint = 768

var (
	// MobileQuery matches viewports narrower than MobileBreakpoint.
	MobileQuery = fmt.Sprintf("(max-width: %dpx)", MobileBreakpoint-1)
	// ReducedMotionQuery matches the OS-level reduced motion setting.
	ReducedMotionQuery = "(prefers-reduced-motion: reduce)"
)

// MediaQuery is a live media query result.
type MediaQuery interface {
	Matches() bool
	// Listen calls fn on every change and returns a func that removes it.
	Listen(fn func(matches bool)) (cancel func())
}

// Environment answers capability queries about the host. The browser build
// wraps window.matchMedia; tests and non-browser runtimes use Static.
type Environment interface {
	MatchMedia(query string) MediaQuery
	TouchCapable() bool
}

// Snapshot is a read-only view of the motion-relevant capabilities.
type Snapshot struct {
	IsMobile               bool
	PrefersReducedMotion   bool
	IsTouchDevice          bool
	ShouldReduceAnimations bool
}

func newSnapshot(mobile, reduced, touch bool) Snapshot {
	return Snapshot{
		IsMobile:               mobile,
		PrefersReducedMotion:   reduced,
		IsTouchDevice:          touch,
		ShouldReduceAnimations: mobile || reduced || touch,
	}
}

// Monitor keeps a Snapshot current as media queries change.
type Monitor struct {
	mu      sync.RWMutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextID  int
	cancels []func()
}

// NewMonitor reads the environment once and subscribes to breakpoint and
// reduced-motion changes. A nil env yields a desktop, full-motion snapshot.
func NewMonitor(env Environment) *Monitor {
	m := &Monitor{subs: map[int]func(Snapshot){}}
	if env == nil {
		m.snap = newSnapshot(false, false, false)
		return m
	}
	mobileQ := env.MatchMedia(MobileQuery)
	motionQ := env.MatchMedia(ReducedMotionQuery)
	touch := env.TouchCapable()
	m.snap = newSnapshot(matches(mobileQ), matches(motionQ), touch)

	if mobileQ != nil {
		m.cancels = append(m.cancels, mobileQ.Listen(func(v bool) {
			m.update(func(s Snapshot) Snapshot {
				return newSnapshot(v, s.PrefersReducedMotion, s.IsTouchDevice)
			})
		}))
	}
	if motionQ != nil {
		m.cancels = append(m.cancels, motionQ.Listen(func(v bool) {
			m.update(func(s Snapshot) Snapshot {
				return newSnapshot(s.IsMobile, v, s.IsTouchDevice)
			})
		}))
	}
	return m
}

func matches(q MediaQuery) bool {
	return q != nil && q.Matches()
}

func (m *Monitor) update(fn func(Snapshot) Snapshot) {
	m.mu.Lock()
	prev := m.snap
	m.snap = fn(prev)
	next := m.snap
	subs := make([]func(Snapshot), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()
	if next == prev {
		return
	}
	for _, s := range subs {
		s(next)
	}
}

// Snapshot returns the current capabilities.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Subscribe registers fn for snapshot changes. The returned func removes it.
func (m *Monitor) Subscribe(fn func(Snapshot)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Close removes the media query listeners and all subscribers.
func (m *Monitor) Close() {
	m.mu.Lock()
	cancels := m.cancels
	m.cancels = nil
	m.subs = map[int]func(Snapshot){}
	m.mu.Unlock()
	for _, c := range cancels {
		if c != nil {
			c()
		}
	}
}

// AnimationClass picks the reduced variant when animations should be cut.
func AnimationClass(reduce bool, full, reduced string) string {
	if reduce {
		return reduced
	}
	return full
}

// AnimationDuration halves base when animations should be cut.
func AnimationDuration(reduce bool, base time.Duration) time.Duration {
	if reduce {
		return base / 2
	}
	return base
}
