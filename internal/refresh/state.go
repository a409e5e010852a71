package refresh

import (
	"math"
	"time"

	"github.com/five82/swiperefresh/internal/anim"
	"github.com/five82/swiperefresh/internal/mutator"
)

// snapEpsilon is the offset magnitude below which a drag result snaps to rest.
const snapEpsilon = 0.5

// Snapshot is a read-only copy of the offset state.
type Snapshot struct {
	Offset float64
	Header HeaderState
	Footer FooterState

	Refreshing bool
	Loading    bool
	Finishing  bool
	Swiping    bool

	RefreshTrigger  float64
	LoadMoreTrigger float64
	HeaderMax       float64
	FooterMin       float64

	Extents Extents
}

// ExceededRefreshTrigger reports whether releasing now would refresh.
func (s Snapshot) ExceededRefreshTrigger() bool {
	return s.Offset >= s.RefreshTrigger
}

// ExceededLoadMoreTrigger reports whether releasing now would load more.
func (s Snapshot) ExceededLoadMoreTrigger() bool {
	return s.Offset <= s.LoadMoreTrigger
}

// Busy reports whether a refresh, load or completion sequence is active.
func (s Snapshot) Busy() bool {
	return s.Refreshing || s.Loading || s.Finishing
}

// Side returns the indicator the offset currently displaces.
func (s Snapshot) Side() Side {
	switch {
	case s.Offset > 0:
		return SideHeader
	case s.Offset < 0:
		return SideFooter
	default:
		return SideNone
	}
}

// State owns the offset and the discrete states derived from it. Writers
// compete through a priority mutex: drag deltas are synchronous UserInput
// mutations, animations hold the mutex until they complete or are preempted.
//
// State is not safe for concurrent use.
type State struct {
	mu       mutator.Mutex
	clock    func() time.Time
	lastTick time.Time
	ticked   bool
	duration time.Duration
	easing   anim.EasingFunc

	offset     float64
	header     HeaderState
	footer     FooterState
	refreshing bool
	loading    bool
	finishing  bool
	swiping    bool

	refreshTrigger  float64
	loadMoreTrigger float64
	headerMax       float64
	footerMin       float64
	extents         Extents
	rates           Config

	active *animation
}

type animation struct {
	target float64
	tween  *anim.Tween // nil until the animation has a start time
	lease *mutator.Lease
	done  func(completed bool)
}

// NewState returns a resting state configured by cfg. Animations start at
// the time of the latest Tick. Before the first Tick they start at clock, or
// on the first Tick when clock is nil.
func NewState(cfg Config, clock func() time.Time) *State {
	s := &State{clock: clock}
	s.configure(cfg.Clamped())
	return s
}

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Offset:          s.offset,
		Header:          s.header,
		Footer:          s.footer,
		Refreshing:      s.refreshing,
		Loading:         s.loading,
		Finishing:       s.finishing,
		Swiping:         s.swiping,
		RefreshTrigger:  s.refreshTrigger,
		LoadMoreTrigger: s.loadMoreTrigger,
		HeaderMax:       s.headerMax,
		FooterMin:       s.footerMin,
		Extents:         s.extents,
	}
}

// Offset returns the signed indicator offset.
func (s *State) Offset() float64 { return s.offset }

// Animating reports whether an animation owns the offset.
func (s *State) Animating() bool { return s.active != nil }

// DispatchScrollDelta applies a damped drag delta at UserInput priority. It
// returns false when a higher priority mutation owns the offset. A zero delta
// changes nothing.
func (s *State) DispatchScrollDelta(delta float64) bool {
	if delta == 0 || math.IsNaN(delta) {
		return true
	}
	return s.mu.Mutate(mutator.UserInput, func() {
		next := s.offset + delta
		switch {
		case s.offset > 0:
			next = clamp(next, 0, s.headerMax)
		case s.offset < 0:
			next = clamp(next, s.footerMin, 0)
		default:
			next = clamp(next, s.footerMin, s.headerMax)
		}
		if math.Abs(next) < snapEpsilon {
			next = 0
		}
		s.offset = next
		if !s.finishing {
			s.updateStates()
		}
	})
}

// AnimateOffsetTo starts an animation toward target at priority p. It returns
// false, and never calls done, when a higher priority mutation is active.
// done runs once with completed=false if the animation is preempted or
// cancelled. A zero-distance animation completes before AnimateOffsetTo
// returns.
func (s *State) AnimateOffsetTo(target float64, p mutator.Priority, done func(completed bool)) bool {
	a := &animation{done: done}
	lease, ok := s.mu.TryLock(p, func() { s.stop(a) })
	if !ok {
		return false
	}
	a.lease = lease

	if !s.finishing {
		s.updateStates()
	}
	target = clamp(target, s.footerMin, s.headerMax)
	if target == s.offset || s.duration <= 0 {
		s.offset = target
		s.complete(a)
		return true
	}
	a.target = target
	if now, ok := s.now(); ok {
		a.tween = anim.New(s.offset, target, now, s.duration, s.easing)
	}
	s.active = a
	return true
}

// now returns the time new animations start at, if one is known yet.
func (s *State) now() (time.Time, bool) {
	switch {
	case s.ticked:
		return s.lastTick, true
	case s.clock != nil:
		return s.clock(), true
	default:
		return time.Time{}, false
	}
}

// Tick advances the active animation to now. It reports whether an animation
// is still running afterward.
func (s *State) Tick(now time.Time) bool {
	s.lastTick, s.ticked = now, true
	a := s.active
	if a == nil {
		return false
	}
	if a.tween == nil {
		a.tween = anim.New(s.offset, a.target, now, s.duration, s.easing)
	}
	s.setOffset(a.tween.Value(now))
	if a.tween.Done(now) {
		s.complete(a)
	}
	return s.active != nil
}

// Cancel stops the active animation regardless of priority, leaving the
// offset where it is.
func (s *State) Cancel() {
	a := s.active
	if a == nil {
		return
	}
	a.lease.Unlock()
	s.stop(a)
}

func (s *State) complete(a *animation) {
	if s.active == a {
		s.active = nil
	}
	a.lease.Unlock()
	if s.finishing && s.offset == 0 {
		s.finishing = false
		s.updateStates()
	}
	if a.done != nil {
		a.done(true)
	}
}

func (s *State) stop(a *animation) {
	if s.active == a {
		s.active = nil
	}
	if a.tween != nil {
		a.tween.Cancel()
	}
	if a.done != nil {
		a.done(false)
	}
}

func (s *State) updateStates() {
	switch {
	case s.refreshing:
		s.header = Refreshing
	case s.swiping && s.offset >= s.refreshTrigger:
		s.header = ReleaseToRefresh
	default:
		s.header = PullToRefresh
	}
	switch {
	case s.loading:
		s.footer = Loading
	case s.swiping && s.offset <= s.loadMoreTrigger:
		s.footer = ReleaseToLoad
	default:
		s.footer = PullToLoad
	}
}

// configure applies animation settings and recomputes thresholds from the
// current extents.
func (s *State) configure(cfg Config) {
	s.duration = cfg.AnimationDuration
	s.easing = cfg.Easing
	s.rates = cfg
	s.recompute()
}

func (s *State) setExtents(e Extents) {
	s.extents = Extents{Header: nonNegative(e.Header), Footer: nonNegative(e.Footer)}
	s.recompute()
}

func (s *State) recompute() {
	h, f := s.extents.Header, s.extents.Footer
	s.refreshTrigger = math.Max(h*s.rates.RefreshTriggerRate, 1)
	s.loadMoreTrigger = -math.Max(f*s.rates.LoadMoreTriggerRate, 1)
	s.headerMax = h * s.rates.HeaderMaxOffsetRate
	s.footerMin = -f * s.rates.FooterMaxOffsetRate
	s.setOffset(s.offset)
}

func (s *State) setOffset(v float64) {
	s.offset = clamp(v, s.footerMin, s.headerMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
