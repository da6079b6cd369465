package reveal

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock fires scheduled callbacks when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.due <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.fn()
	}
}

func (c *fakeClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, 0.1, opts.Threshold)
	require.Equal(t, "0px 0px -50px 0px", opts.RootMargin)
	require.True(t, opts.TriggerOnce)

	require.False(t, opts.Replay().TriggerOnce)
	require.Equal(t, 1.0, opts.WithThreshold(3).Threshold)
	require.Equal(t, 0.2, opts.WithThreshold(0.2).Threshold)
}

func TestOptionsForThresholdAttr(t *testing.T) {
	tests := []struct {
		attr string
		want float64
	}{
		{"", 0.1},
		{"abc", 0.1},
		{"0.02", 0.02},
		{" 0.5 ", 0.5},
		{"-1", 0},
		{"2", 1},
	}
	for _, tc := range tests {
		opts := OptionsFor(tc.attr)
		require.Equal(t, tc.want, opts.Threshold, tc.attr)
		require.True(t, opts.TriggerOnce)
		require.Equal(t, DefaultOptions().RootMargin, opts.RootMargin)
	}
}

func TestObserverTriggerOnceFlipsExactlyOnce(t *testing.T) {
	o := NewObserver(DefaultOptions())
	flips := 0
	o.OnChange(func(bool) { flips++ })

	v, changed := o.Observe(false)
	require.False(t, v)
	require.False(t, changed)

	v, changed = o.Observe(true)
	require.True(t, v)
	require.True(t, changed)
	require.True(t, o.Done())

	for i := 0; i < 10; i++ {
		v, changed = o.Observe(i%2 == 0)
		require.True(t, v)
		require.False(t, changed)
	}
	require.Equal(t, 1, flips)
}

func TestObserverReplayFollowsIntersection(t *testing.T) {
	o := NewObserver(DefaultOptions().Replay())
	var seen []bool
	o.OnChange(func(v bool) { seen = append(seen, v) })

	o.Observe(true)
	o.Observe(true)
	o.Observe(false)
	o.Observe(true)

	require.Equal(t, []bool{true, false, true}, seen)
	require.False(t, o.Done())
	require.True(t, o.Visible())
}

func TestStaggerRevealsInOrder(t *testing.T) {
	clock := &fakeClock{}
	s := NewStagger(4, 100*time.Millisecond, clock)
	defer s.Close()

	s.SetParent(true)
	// item 0 is scheduled at zero delay
	clock.Advance(0)
	require.Equal(t, []bool{true, false, false, false}, s.Items())

	clock.Advance(99 * time.Millisecond)
	require.Equal(t, []bool{true, false, false, false}, s.Items())

	clock.Advance(time.Millisecond)
	require.Equal(t, []bool{true, true, false, false}, s.Items())

	clock.Advance(200 * time.Millisecond)
	require.Equal(t, []bool{true, true, true, true}, s.Items())
}

func TestStaggerParentHiddenResetsItems(t *testing.T) {
	clock := &fakeClock{}
	s := NewStagger(3, 50*time.Millisecond, clock)
	defer s.Close()

	var events []int
	s.OnChange(func(i int, v bool) {
		if v {
			events = append(events, i)
		} else {
			events = append(events, -i-1)
		}
	})

	s.SetParent(true)
	clock.Advance(50 * time.Millisecond)
	require.Equal(t, []bool{true, true, false}, s.Items())

	s.SetParent(false)
	require.Equal(t, []bool{false, false, false}, s.Items())
	require.Zero(t, clock.active(), "pending reveals must be cancelled")

	clock.Advance(time.Second)
	require.Equal(t, []bool{false, false, false}, s.Items())
	require.Equal(t, []int{0, 1, -1, -2}, events)
}

func TestStaggerRapidFlipDropsStaleTimers(t *testing.T) {
	clock := &fakeClock{}
	s := NewStagger(3, 100*time.Millisecond, clock)
	defer s.Close()

	s.SetParent(true)
	clock.Advance(10 * time.Millisecond)
	s.SetParent(false)
	s.SetParent(true)

	// Only the second cycle's timers are live: item 1 is due 100ms after the
	// second SetParent, not 90ms.
	require.Equal(t, 3, clock.active())
	clock.Advance(90 * time.Millisecond)
	require.Equal(t, []bool{true, false, false}, s.Items())
	clock.Advance(10 * time.Millisecond)
	require.Equal(t, []bool{true, true, false}, s.Items())
}

func TestStaggerStaleCallbackIgnored(t *testing.T) {
	var captured []func()
	sched := SchedulerFunc(func(d time.Duration, f func()) Timer {
		captured = append(captured, f)
		return time.NewTimer(time.Hour)
	})
	s := NewStagger(2, time.Millisecond, sched)
	defer s.Close()

	s.SetParent(true)
	s.SetParent(true)
	require.Len(t, captured, 4)

	// callbacks from the first cycle fire late, after Stop lost the race
	captured[0]()
	captured[1]()
	require.Equal(t, []bool{false, false}, s.Items())

	captured[2]()
	require.Equal(t, []bool{true, false}, s.Items())
}

func TestStaggerRealSchedulerCloses(t *testing.T) {
	s := NewStagger(3, 5*time.Millisecond, nil)
	s.SetParent(true)
	require.Eventually(t, func() bool {
		items := s.Items()
		return items[0] && items[1] && items[2]
	}, time.Second, 5*time.Millisecond)

	s.SetParent(false)
	s.SetParent(true)
	s.Close()
	s.SetParent(true)
}
