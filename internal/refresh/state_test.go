package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/swiperefresh/internal/mutator"
)

func newTestState(t *testing.T, ext Extents) (*State, *manualClock) {
	t.Helper()
	clock := newManualClock()
	s := NewState(DefaultConfig(), clock.Now)
	s.setExtents(ext)
	return s, clock
}

func TestState_Thresholds(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 80, Footer: 40})
	snap := s.Snapshot()
	require.Equal(t, 80.0, snap.RefreshTrigger)
	require.Equal(t, -40.0, snap.LoadMoreTrigger)
	require.Equal(t, 160.0, snap.HeaderMax)
	require.Equal(t, -80.0, snap.FooterMin)
}

func TestState_UnknownExtentsDegradeToRest(t *testing.T) {
	s, _ := newTestState(t, Extents{})
	snap := s.Snapshot()
	require.Equal(t, 1.0, snap.RefreshTrigger)
	require.Equal(t, -1.0, snap.LoadMoreTrigger)
	require.Zero(t, snap.HeaderMax)
	require.Zero(t, snap.FooterMin)

	require.True(t, s.DispatchScrollDelta(30))
	require.Zero(t, s.Offset())
	require.True(t, s.DispatchScrollDelta(-30))
	require.Zero(t, s.Offset())
}

func TestState_NegativeExtentsTreatedAsZero(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: -10, Footer: -5})
	require.Equal(t, Extents{}, s.Snapshot().Extents)
}

func TestDispatchScrollDelta_Clamping(t *testing.T) {
	cases := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"header clamps at max", []float64{100, 100}, 160},
		{"footer clamps at min", []float64{-50, -50}, -80},
		{"header side cannot cross into footer", []float64{20, -50}, 0},
		{"footer side cannot cross into header", []float64{-20, 50}, 0},
		{"rest moves either way", []float64{-10}, -10},
		{"snaps sub-epsilon residue", []float64{10, -9.7}, 0},
		{"keeps values at epsilon", []float64{10, -9.5}, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestState(t, Extents{Header: 80, Footer: 40})
			for _, d := range tc.deltas {
				require.True(t, s.DispatchScrollDelta(d))
			}
			require.InDelta(t, tc.want, s.Offset(), 1e-9)
		})
	}
}

func TestDispatchScrollDelta_ZeroIsNoop(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 50, Footer: 50})
	s.swiping = true
	require.True(t, s.DispatchScrollDelta(60))
	before := s.Snapshot()
	require.Equal(t, ReleaseToRefresh, before.Header)

	// A state change that has not been recomputed yet must survive.
	s.swiping = false
	require.True(t, s.DispatchScrollDelta(0))
	after := s.Snapshot()
	require.Equal(t, before.Header, after.Header)
	require.Equal(t, before.Footer, after.Footer)
	require.Equal(t, before.Offset, after.Offset)
}

func TestDispatchScrollDelta_FrozenWhileFinishing(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 50, Footer: 50})
	s.refreshing = true
	s.updateStates()
	s.refreshing = false
	s.finishing = true
	require.True(t, s.DispatchScrollDelta(10))
	require.Equal(t, Refreshing, s.Snapshot().Header)
}

func TestAnimateOffsetTo_ReachesTargetExactly(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 80, Footer: 40})
	done := 0
	require.True(t, s.AnimateOffsetTo(80, mutator.Default, func(completed bool) {
		require.True(t, completed)
		done++
	}))
	require.True(t, s.Animating())

	require.True(t, s.Tick(clock.Advance(100*time.Millisecond)))
	mid := s.Offset()
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 80.0)

	require.False(t, s.Tick(clock.Advance(150*time.Millisecond)))
	require.Equal(t, 80.0, s.Offset())
	require.Equal(t, 1, done)
	require.False(t, s.Animating())
}

func TestAnimateOffsetTo_ClampsTarget(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 10, Footer: 10})
	require.True(t, s.AnimateOffsetTo(500, mutator.Default, nil))
	s.Tick(clock.Advance(time.Second))
	require.Equal(t, 20.0, s.Offset())
}

func TestAnimateOffsetTo_ZeroDistanceCompletesSynchronously(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 80})
	completed := false
	require.True(t, s.AnimateOffsetTo(0, mutator.Default, func(ok bool) { completed = ok }))
	require.True(t, completed)
	require.False(t, s.Animating())
}

func TestAnimateOffsetTo_ClearsFinishingAtRest(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(40))
	s.finishing = true
	s.header = Refreshing

	require.True(t, s.AnimateOffsetTo(0, mutator.PreventUserInput, nil))
	require.Equal(t, Refreshing, s.Snapshot().Header)
	s.Tick(clock.Advance(time.Second))

	snap := s.Snapshot()
	require.False(t, snap.Finishing)
	require.Equal(t, PullToRefresh, snap.Header)
}

func TestDragPreemptsSettleAnimation(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(40))

	var results []bool
	require.True(t, s.AnimateOffsetTo(0, mutator.Default, func(ok bool) { results = append(results, ok) }))
	s.Tick(clock.Advance(100 * time.Millisecond))
	mid := s.Offset()
	require.Greater(t, mid, 0.0)

	require.True(t, s.DispatchScrollDelta(5))
	require.InDelta(t, mid+5, s.Offset(), 1e-9)
	require.False(t, s.Animating())
	require.Equal(t, []bool{false}, results)

	// The cancelled animation no longer moves the offset.
	s.Tick(clock.Advance(time.Second))
	require.InDelta(t, mid+5, s.Offset(), 1e-9)
}

func TestCollapseRejectsDrag(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(80))
	require.True(t, s.AnimateOffsetTo(0, mutator.PreventUserInput, nil))
	s.Tick(clock.Advance(50 * time.Millisecond))
	at := s.Offset()

	require.False(t, s.DispatchScrollDelta(10))
	require.Equal(t, at, s.Offset())
	require.True(t, s.Animating())
}

func TestLowerPriorityAnimationRejected(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(80))
	require.True(t, s.AnimateOffsetTo(0, mutator.PreventUserInput, nil))

	called := false
	require.False(t, s.AnimateOffsetTo(80, mutator.Default, func(bool) { called = true }))
	require.False(t, called)
}

func TestCancelIgnoresPriority(t *testing.T) {
	s, clock := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(80))
	completed := true
	require.True(t, s.AnimateOffsetTo(0, mutator.PreventUserInput, func(ok bool) { completed = ok }))
	s.Tick(clock.Advance(50 * time.Millisecond))

	s.Cancel()
	require.False(t, completed)
	require.False(t, s.Animating())
	require.True(t, s.AnimateOffsetTo(80, mutator.Default, nil))
}

func TestShrinkingExtentsReclampOffset(t *testing.T) {
	s, _ := newTestState(t, Extents{Header: 80})
	require.True(t, s.DispatchScrollDelta(150))
	s.setExtents(Extents{Header: 20})
	require.Equal(t, 40.0, s.Offset())
}
