package refresh

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScenario_DragPastTriggerRefreshesOnce(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50, Footer: 50})
	for range 10 {
		consumed := h.drag(20)
		require.Equal(t, 20.0, consumed.Y)
	}
	snap := h.e.Snapshot()
	require.Equal(t, 100.0, snap.Offset)
	require.Equal(t, ReleaseToRefresh, snap.Header)
	require.True(t, snap.Swiping)

	h.release()
	require.Equal(t, 1, h.refreshes)
	require.Zero(t, h.loads)
	require.False(t, h.e.Snapshot().Swiping)
}

func TestScenario_DragClampsAtHeaderMax(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 30})
	for range 10 {
		h.drag(20)
	}
	require.Equal(t, 60.0, h.e.Offset())
	require.Equal(t, ReleaseToRefresh, h.e.Snapshot().Header)
}

func TestScenario_FooterDragRejectedWhenLoadMoreDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LoadMoreEnabled = false
	h := newHarness(t, cfg, Extents{Header: 50, Footer: 50})
	for range 5 {
		consumed := h.drag(-20)
		require.Zero(t, consumed.Y)
	}
	snap := h.e.Snapshot()
	require.Zero(t, snap.Offset)
	require.Equal(t, PullToLoad, snap.Footer)
	require.False(t, snap.Swiping)
}

func TestScenario_AlwaysScrollableWhileLoading(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlwaysScrollable = true
	h := newHarness(t, cfg, Extents{Header: 50, Footer: 50})
	h.e.SetLoading(true)
	h.settle(time.Second)
	require.Equal(t, -50.0, h.e.Offset())

	in := Vec{X: 3, Y: 12}
	require.Equal(t, Vec{}, h.e.PreScroll(in, SourceDrag))
	require.Equal(t, Vec{}, h.e.PostScroll(Vec{}, in, SourceDrag))
	require.Equal(t, Vec{}, h.e.PreFling(in))
	require.Equal(t, Vec{}, h.e.PostFling(Vec{}, in))
	require.Equal(t, -50.0, h.e.Offset())
}

func TestBusyLocksContentWithoutOverride(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50, Footer: 50})
	h.e.SetRefreshing(true)

	in := Vec{Y: -12}
	require.Equal(t, in, h.e.PreScroll(in, SourceDrag))
	require.Equal(t, Vec{}, h.e.PostScroll(Vec{}, in, SourceDrag))
	require.Equal(t, in, h.e.PreFling(in))
	require.Equal(t, in, h.e.PostFling(Vec{}, in))
}

func TestBothDisabledPassesEverythingThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshEnabled = false
	cfg.LoadMoreEnabled = false
	h := newHarness(t, cfg, Extents{Header: 50, Footer: 50})
	require.Equal(t, Vec{}, h.drag(40))
	require.Equal(t, Vec{}, h.drag(-40))
	require.Zero(t, h.e.Offset())
}

func TestFlingSourceIsNotIntercepted(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50, Footer: 50})
	h.drag(20)
	require.Equal(t, Vec{}, h.e.PreScroll(Vec{Y: 20}, SourceFling))
	require.Equal(t, Vec{}, h.e.PostScroll(Vec{}, Vec{Y: 20}, SourceFling))
	require.Equal(t, 10.0, h.e.Offset())
}

func TestHorizontalComponentNeverConsumed(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50})
	consumed := h.e.PostScroll(Vec{}, Vec{X: 7, Y: 10}, SourceDrag)
	require.Equal(t, Vec{Y: 10}, consumed)
}

func TestThresholdCrossedOnceWhileDragging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VibrationEnabled = true
	h := newHarness(t, cfg, Extents{Header: 50})

	transitions := 0
	prev := h.e.Snapshot().Header
	for range 100 {
		h.drag(2)
		snap := h.e.Snapshot()
		if snap.Header != prev {
			transitions++
			require.Equal(t, ReleaseToRefresh, snap.Header)
			require.Equal(t, snap.RefreshTrigger, snap.Offset)
		}
		prev = snap.Header
	}
	require.Equal(t, 1, transitions)
	require.Equal(t, 100.0, h.e.Offset())
	require.Equal(t, []time.Duration{25 * time.Millisecond}, h.vibrations)
	require.Equal(t, 1, h.count(EventThreshold))
}

func TestThresholdSignalWithoutVibration(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Footer: 20})
	for range 10 {
		h.drag(-10)
	}
	require.Equal(t, ReleaseToLoad, h.e.Snapshot().Footer)
	require.Empty(t, h.vibrations)
	require.Equal(t, 1, h.count(EventThreshold))
}

func TestReleaseBelowTriggerSettlesToRest(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 80})
	h.drag(40)
	h.release()
	require.Zero(t, h.refreshes)
	require.True(t, h.e.Pending())

	h.settle(time.Second)
	require.Zero(t, h.e.Offset())
	require.Equal(t, PullToRefresh, h.e.Snapshot().Header)
	require.False(t, h.e.Pending())
}

func TestDragPreemptsInFlightSettle(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 80})
	h.drag(40)
	h.release()
	h.step(100 * time.Millisecond)
	mid := h.e.Offset()
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 20.0)

	h.drag(10)
	require.InDelta(t, mid+5, h.e.Offset(), 1e-9)
	require.False(t, h.e.Pending())
	require.Equal(t, 1, h.count(EventPreempted))

	h.step(time.Second)
	require.InDelta(t, mid+5, h.e.Offset(), 1e-9)
}

func TestRefreshPinsHeaderOpen(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50})
	h.refreshOnRelease = true
	for range 10 {
		h.drag(20)
	}
	h.release()
	snap := h.e.Snapshot()
	require.Equal(t, Refreshing, snap.Header)
	require.True(t, snap.Refreshing)

	h.settle(time.Second)
	require.Equal(t, 50.0, h.e.Offset())
}

func TestCompletionSequence(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, Extents{Header: 80})
	h.e.SetRefreshing(true)
	h.step(250 * time.Millisecond)
	require.Equal(t, 80.0, h.e.Offset())
	require.False(t, h.e.Pending())

	h.e.SetRefreshing(false)
	snap := h.e.Snapshot()
	require.True(t, snap.Finishing)
	require.Equal(t, Refreshing, snap.Header)
	require.Equal(t, 80.0, snap.Offset)
	require.Equal(t, SideHeader, h.e.FinishingSide())

	for range 4 {
		h.step(100 * time.Millisecond)
		require.True(t, h.e.Snapshot().Finishing)
		require.Equal(t, 80.0, h.e.Offset())
	}
	h.step(99 * time.Millisecond)
	require.Equal(t, 80.0, h.e.Offset())
	require.Empty(t, h.collapses)

	h.step(time.Millisecond)
	require.Equal(t, []float64{-80}, h.collapses)
	require.True(t, h.e.Snapshot().Finishing)

	h.step(100 * time.Millisecond)
	mid := h.e.Snapshot()
	require.True(t, mid.Finishing)
	require.Greater(t, mid.Offset, 0.0)
	require.Less(t, mid.Offset, 80.0)

	h.step(150 * time.Millisecond)
	done := h.e.Snapshot()
	require.Zero(t, done.Offset)
	require.False(t, done.Finishing)
	require.Equal(t, PullToRefresh, done.Header)
	require.False(t, h.e.Pending())
	require.Equal(t, SideNone, h.e.FinishingSide())
	require.Equal(t, 2, h.count(EventFinishing))
}

func TestFooterCompletionCompensatesScroll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FinishDelay = 0
	h := newHarness(t, cfg, Extents{Header: 80, Footer: 40})
	h.e.SetLoading(true)
	h.settle(time.Second)
	require.Equal(t, -40.0, h.e.Offset())
	require.Equal(t, Loading, h.e.Snapshot().Footer)

	h.e.SetLoading(false)
	require.Equal(t, []float64{40}, h.collapses)
	h.settle(time.Second)
	snap := h.e.Snapshot()
	require.Zero(t, snap.Offset)
	require.Equal(t, PullToLoad, snap.Footer)
	require.False(t, snap.Finishing)
}

func TestCollapseIgnoresDrag(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 80})
	h.e.SetRefreshing(true)
	h.settle(time.Second)
	h.e.SetRefreshing(false)
	h.step(500 * time.Millisecond)
	h.step(50 * time.Millisecond)
	at := h.e.Offset()

	require.Equal(t, Vec{Y: 30}, h.drag(30))
	require.Equal(t, at, h.e.Offset())
	h.settle(time.Second)
	require.Zero(t, h.e.Offset())
}

func TestRetriggerDuringHoldCancelsCollapse(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 80})
	h.e.SetRefreshing(true)
	h.settle(time.Second)
	h.e.SetRefreshing(false)
	h.step(200 * time.Millisecond)

	h.e.SetRefreshing(true)
	snap := h.e.Snapshot()
	require.False(t, snap.Finishing)
	require.Equal(t, Refreshing, snap.Header)

	h.step(time.Second)
	require.Empty(t, h.collapses)
	require.Equal(t, 80.0, h.e.Offset())
}

func TestRetriggerDuringCollapseReopens(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 80})
	h.e.SetRefreshing(true)
	h.settle(time.Second)
	h.e.SetRefreshing(false)
	h.step(500 * time.Millisecond)
	h.step(100 * time.Millisecond)
	require.Less(t, h.e.Offset(), 80.0)

	h.e.SetRefreshing(true)
	require.False(t, h.e.Snapshot().Finishing)
	h.settle(time.Second)
	require.Equal(t, 80.0, h.e.Offset())
	require.Equal(t, Refreshing, h.e.Snapshot().Header)
}

func TestInitialFlagsPinOnceMeasured(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{}, WithInitialFlags(true, false))
	require.Equal(t, Refreshing, h.e.Snapshot().Header)
	require.Zero(t, h.e.Offset())

	h.e.SetExtents(Extents{Header: 60})
	h.settle(time.Second)
	require.Equal(t, 60.0, h.e.Offset())
}

func TestSetConfigRecomputesThresholds(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 40, Footer: 40})
	cfg := DefaultConfig()
	cfg.RefreshTriggerRate = 0.5
	cfg.HeaderMaxOffsetRate = 3
	h.e.SetConfig(cfg)

	snap := h.e.Snapshot()
	require.Equal(t, 20.0, snap.RefreshTrigger)
	require.Equal(t, 120.0, snap.HeaderMax)
}

func TestUnsubscribeStopsEvents(t *testing.T) {
	h := newHarness(t, DefaultConfig(), Extents{Header: 50})
	var got []EventKind
	unsubscribe := h.e.Subscribe(func(ev Event) { got = append(got, ev.Kind) })
	for range 10 {
		h.drag(20)
	}
	require.Contains(t, got, EventHeaderState)

	unsubscribe()
	n := len(got)
	h.release()
	h.settle(time.Second)
	require.Len(t, got, n)
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	h := newHarness(t, DefaultConfig(), Extents{Header: 60, Footer: 40})
	h.refreshOnRelease = true
	h.loadOnRelease = true

	for i := range 2000 {
		switch rng.IntN(8) {
		case 0, 1, 2:
			h.drag(rng.Float64()*60 - 30)
		case 3:
			h.release()
		case 4:
			h.step(time.Duration(rng.IntN(120)) * time.Millisecond)
		case 5:
			h.e.SetRefreshing(rng.IntN(2) == 0)
		case 6:
			h.e.SetLoading(rng.IntN(2) == 0)
		case 7:
			h.e.SetExtents(Extents{Header: float64(rng.IntN(80)), Footer: float64(rng.IntN(80))})
		}

		s := h.e.Snapshot()
		require.GreaterOrEqual(t, s.Offset, s.FooterMin, "op %d", i)
		require.LessOrEqual(t, s.Offset, s.HeaderMax, "op %d", i)
		require.LessOrEqual(t, s.FooterMin, 0.0)
		require.GreaterOrEqual(t, s.HeaderMax, 0.0)
		require.Greater(t, s.RefreshTrigger, 0.0)
		require.Less(t, s.LoadMoreTrigger, 0.0)
		if s.Finishing {
			require.False(t, s.Refreshing || s.Loading, "op %d", i)
		}
	}
}

func TestTickTimelineWithoutClock(t *testing.T) {
	var collapses []float64
	e := New(DefaultConfig(), Callbacks{
		OnCollapseScroll: func(amount float64) { collapses = append(collapses, amount) },
	})
	e.SetExtents(Extents{Header: 80})
	e.SetRefreshing(true)
	e.SetRefreshing(false)

	now := time.Unix(0, 0)
	for i := 0; i < 1000 && e.Pending(); i++ {
		now = now.Add(16 * time.Millisecond)
		e.Tick(now)
	}
	snap := e.Snapshot()
	require.False(t, e.Pending())
	require.False(t, snap.Finishing)
	require.Zero(t, snap.Offset)
	require.Equal(t, []float64{-80}, collapses)
}

func TestTickTimelineOverridesClockAfterFirstTick(t *testing.T) {
	wall := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := New(DefaultConfig(), Callbacks{}, WithClock(func() time.Time { return wall }))
	e.SetExtents(Extents{Header: 80})

	now := time.Unix(0, 0)
	e.Tick(now)
	e.SetRefreshing(true)
	require.True(t, e.Pending())

	e.Tick(now.Add(100 * time.Millisecond))
	mid := e.Offset()
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 80.0)

	e.Tick(now.Add(time.Second))
	require.Equal(t, 80.0, e.Offset())
	require.False(t, e.Pending())
}
