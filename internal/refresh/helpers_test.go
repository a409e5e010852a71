package refresh

import (
	"testing"
	"time"
)

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// harness wires an engine to a manual clock and records every outbound call.
type harness struct {
	t     *testing.T
	clock *manualClock
	e     *Engine

	refreshes  int
	loads      int
	collapses  []float64
	vibrations []time.Duration
	events     []Event

	// refreshOnRelease makes OnRefresh set the refreshing flag synchronously,
	// the way most hosts wire it.
	refreshOnRelease bool
	loadOnRelease    bool
}

func newHarness(t *testing.T, cfg Config, ext Extents, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t, clock: newManualClock()}
	cb := Callbacks{
		OnRefresh: func() {
			h.refreshes++
			if h.refreshOnRelease {
				h.e.SetRefreshing(true)
			}
		},
		OnLoadMore: func() {
			h.loads++
			if h.loadOnRelease {
				h.e.SetLoading(true)
			}
		},
		OnCollapseScroll: func(amount float64) {
			h.collapses = append(h.collapses, amount)
		},
	}
	base := []Option{
		WithClock(h.clock.Now),
		WithHaptics(HapticsFunc(func(d time.Duration) {
			h.vibrations = append(h.vibrations, d)
		})),
	}
	h.e = New(cfg, cb, append(base, opts...)...)
	h.e.Subscribe(func(ev Event) { h.events = append(h.events, ev) })
	h.e.SetExtents(ext)
	return h
}

// drag delivers one drag delta the way a host with content pinned at its
// boundary would: pre-scroll, then the untouched remainder as post-scroll.
// It returns what the refresh layer consumed in total.
func (h *harness) drag(dy float64) Vec {
	pre := h.e.PreScroll(Vec{Y: dy}, SourceDrag)
	left := Vec{Y: dy - pre.Y}
	post := h.e.PostScroll(Vec{}, left, SourceDrag)
	return Vec{Y: pre.Y + post.Y}
}

func (h *harness) release() {
	v := h.e.PreFling(Vec{})
	h.e.PostFling(v, Vec{})
}

func (h *harness) step(d time.Duration) bool {
	return h.e.Tick(h.clock.Advance(d))
}

// settle ticks at 10ms until nothing is pending or limit elapses.
func (h *harness) settle(limit time.Duration) {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += 10 * time.Millisecond {
		if !h.step(10 * time.Millisecond) {
			return
		}
	}
}

func (h *harness) count(kind EventKind) int {
	n := 0
	for _, ev := range h.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
