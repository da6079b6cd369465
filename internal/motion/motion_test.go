package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotCombinesSignals(t *testing.T) {
	cases := []struct {
		name string
		env  *Static
		want Snapshot
	}{
		{"desktop", NewStatic(false), Snapshot{}},
		{"mobile", NewStatic(false, MobileQuery), Snapshot{IsMobile: true, ShouldReduceAnimations: true}},
		{"reduced", NewStatic(false, ReducedMotionQuery), Snapshot{PrefersReducedMotion: true, ShouldReduceAnimations: true}},
		{"touch", NewStatic(true), Snapshot{IsTouchDevice: true, ShouldReduceAnimations: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMonitor(tc.env)
			defer m.Close()
			require.Equal(t, tc.want, m.Snapshot())
		})
	}
}

func TestMobileQueryUsesBreakpoint(t *testing.T) {
	require.Equal(t, "(max-width: 767px)", MobileQuery)
}

func TestMonitorReactsToChanges(t *testing.T) {
	env := NewStatic(false)
	m := NewMonitor(env)
	defer m.Close()

	var got []Snapshot
	cancel := m.Subscribe(func(s Snapshot) { got = append(got, s) })

	env.Set(ReducedMotionQuery, true)
	require.True(t, m.Snapshot().PrefersReducedMotion)
	require.True(t, m.Snapshot().ShouldReduceAnimations)

	env.Set(MobileQuery, true)
	env.Set(ReducedMotionQuery, false)
	snap := m.Snapshot()
	require.True(t, snap.IsMobile)
	require.False(t, snap.PrefersReducedMotion)
	require.True(t, snap.ShouldReduceAnimations)

	env.Set(MobileQuery, false)
	require.False(t, m.Snapshot().ShouldReduceAnimations)
	require.Len(t, got, 4)

	cancel()
	env.Set(MobileQuery, true)
	require.Len(t, got, 4)
}

func TestMonitorCloseRemovesListeners(t *testing.T) {
	env := NewStatic(false)
	m := NewMonitor(env)
	require.Equal(t, 1, env.Listeners(MobileQuery))
	require.Equal(t, 1, env.Listeners(ReducedMotionQuery))

	m.Close()
	require.Zero(t, env.Listeners(MobileQuery))
	require.Zero(t, env.Listeners(ReducedMotionQuery))
}

func TestNilEnvironment(t *testing.T) {
	m := NewMonitor(nil)
	require.Equal(t, Snapshot{}, m.Snapshot())
	m.Close()
}

func TestAnimationHelpers(t *testing.T) {
	require.Equal(t, "animate-pulse", AnimationClass(false, "animate-pulse", ""))
	require.Equal(t, "", AnimationClass(true, "animate-pulse", ""))
	require.Equal(t, 350*time.Millisecond, AnimationDuration(true, 700*time.Millisecond))
	require.Equal(t, 700*time.Millisecond, AnimationDuration(false, 700*time.Millisecond))
}
