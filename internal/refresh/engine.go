package refresh

import (
	"fmt"
	"time"

	"github.com/five82/swiperefresh/internal/mutator"
)

// maxSettleRounds bounds how often one call may re-plan after observers or
// callbacks change the inputs again.
const maxSettleRounds = 8

// Callbacks are the outbound hooks. Any of them may be nil.
type Callbacks struct {
	// OnRefresh runs when a drag is released past the refresh trigger.
	OnRefresh func()
	// OnLoadMore runs when a drag is released past the load more trigger.
	OnLoadMore func()
	// OnCollapseScroll runs right before a completed indicator collapses,
	// with the negated offset, so the content can shift by the same amount.
	OnCollapseScroll func(amount float64)
}

// EventKind identifies an Event.
type EventKind int

const (
	EventHeaderState EventKind = iota
	EventFooterState
	EventFinishing
	EventPreempted
	EventThreshold
)

func (k EventKind) String() string {
	switch k {
	case EventHeaderState:
		return "header-state"
	case EventFooterState:
		return "footer-state"
	case EventFinishing:
		return "finishing"
	case EventPreempted:
		return "preempted"
	case EventThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event describes a transition observed at the end of an engine call.
type Event struct {
	Kind     EventKind
	Previous Snapshot
	Current  Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to start animations and holds before
// the first Tick. Afterward the latest Tick time is used.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithHaptics sets the collaborator that receives threshold vibrations.
func WithHaptics(h Haptics) Option {
	return func(e *Engine) { e.haptics = h }
}

// WithInitialFlags starts the engine already refreshing or loading.
func WithInitialFlags(refreshing, loading bool) Option {
	return func(e *Engine) {
		e.initRefreshing = refreshing
		e.initLoading = loading
	}
}

// Engine runs the offset state, the scroll interception policy and the
// completion choreography for one scroll surface. All methods must be called
// from the host's event loop goroutine.
type Engine struct {
	cfg     Config
	cb      Callbacks
	clock   func() time.Time
	haptics Haptics

	st   *State
	conn connection

	finish  *finishSequence
	planned Snapshot
	replan  bool
	depth   int

	published Snapshot
	edge      releaseEdge
	pending   []Event
	subs      []*subscriber

	initRefreshing bool
	initLoading    bool
}

type subscriber struct {
	fn func(Event)
}

type finishStep int

const (
	stepOpen finishStep = iota
	stepHold
	stepCollapse
)

type finishSequence struct {
	side      Side
	step      finishStep
	holdUntil time.Time
}

// New builds an engine. cfg is clamped into its legal ranges.
func New(cfg Config, cb Callbacks, opts ...Option) *Engine {
	e := &Engine{cfg: cfg.Clamped(), cb: cb}
	for _, opt := range opts {
		opt(e)
	}
	e.st = NewState(e.cfg, e.clock)
	e.st.refreshing = e.initRefreshing
	e.st.loading = e.initLoading
	e.conn = connection{
		st:         e.st,
		cfg:        &e.cfg,
		onRefresh:  func() { e.call(e.cb.OnRefresh) },
		onLoadMore: func() { e.call(e.cb.OnLoadMore) },
	}
	e.published = e.st.Snapshot()
	e.replan = true
	e.settle()
	return e
}

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration. Thresholds are recomputed
// immediately; the new animation settings apply to the next animation.
func (e *Engine) SetConfig(cfg Config) {
	defer e.enter()()
	e.cfg = cfg.Clamped()
	e.st.configure(e.cfg)
}

// SetExtents records the measured indicator heights.
func (e *Engine) SetExtents(ext Extents) {
	defer e.enter()()
	e.st.setExtents(ext)
}

// SetRefreshing sets the caller-driven refreshing flag. Clearing it runs the
// completion sequence.
func (e *Engine) SetRefreshing(v bool) {
	defer e.enter()()
	e.st.refreshing = v
}

// SetLoading sets the caller-driven loading flag.
func (e *Engine) SetLoading(v bool) {
	defer e.enter()()
	e.st.loading = v
}

// PreScroll offers a delta before the content scrolls and returns the part
// this layer consumed.
func (e *Engine) PreScroll(available Vec, source Source) Vec {
	defer e.enter()()
	return e.conn.preScroll(available, source)
}

// PostScroll offers what the content left over and returns the part this
// layer consumed.
func (e *Engine) PostScroll(consumed, available Vec, source Source) Vec {
	defer e.enter()()
	return e.conn.postScroll(available, source)
}

// PreFling resolves a released gesture and returns the velocity this layer
// consumed.
func (e *Engine) PreFling(available Vec) Vec {
	defer e.enter()()
	return e.conn.preFling(available)
}

// PostFling returns the part of the leftover velocity this layer consumed.
func (e *Engine) PostFling(consumed, available Vec) Vec {
	defer e.enter()()
	return e.conn.postFling(available)
}

// Tick advances animations and the completion hold to now. It reports whether
// more frames are needed.
func (e *Engine) Tick(now time.Time) bool {
	func() {
		defer e.enter()()
		e.st.Tick(now)
		e.advanceFinish(now)
	}()
	return e.Pending()
}

// Pending reports whether an animation or completion sequence is running.
func (e *Engine) Pending() bool {
	return e.st.Animating() || e.finish != nil
}

// Snapshot returns the current offset state.
func (e *Engine) Snapshot() Snapshot { return e.st.Snapshot() }

// Offset returns the signed indicator offset.
func (e *Engine) Offset() float64 { return e.st.offset }

// FinishingSide returns the indicator whose completion sequence is running.
func (e *Engine) FinishingSide() Side {
	if e.finish == nil {
		return SideNone
	}
	return e.finish.side
}

// Busy reports whether a refresh, load or completion sequence is active.
func (e *Engine) Busy() bool { return e.st.Snapshot().Busy() }

// Placement resolves layer translations for the current offset.
func (e *Engine) Placement() Layout {
	return Placement(e.st.offset, e.st.extents, e.cfg.HeaderScrollMode, e.cfg.FooterScrollMode)
}

// Subscribe registers fn for transition events and returns a func that
// removes it. Observers must not retain the engine across goroutines.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	s := &subscriber{fn: fn}
	e.subs = append(e.subs, s)
	return func() {
		for i, candidate := range e.subs {
			if candidate == s {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				break
			}
		}
		s.fn = nil
	}
}

// enter marks the start of a public call. The returned func settles the
// engine once the outermost call returns.
func (e *Engine) enter() func() {
	e.depth++
	return func() {
		e.depth--
		if e.depth == 0 {
			e.settle()
		}
	}
}

// settle runs the choreographer until the inputs stop changing, then
// publishes events.
func (e *Engine) settle() {
	e.depth++
	defer func() { e.depth-- }()

	for range maxSettleRounds {
		next := e.st.Snapshot()
		var cmds []Command
		if e.replan {
			e.replan = false
			cmds = Decide(next)
		} else {
			cmds = Plan(e.planned, next)
		}
		e.planned = next
		if len(cmds) > 0 {
			e.execute(cmds)
			continue
		}
		if !e.publish() {
			return
		}
	}
}

func (e *Engine) execute(cmds []Command) {
	for _, c := range cmds {
		e.cancelFinish()
		switch c := c.(type) {
		case AnimateTo:
			e.st.AnimateOffsetTo(c.Target, c.Priority, e.watch)
		case Finish:
			e.startFinish(c.Side)
		}
	}
}

func (e *Engine) watch(completed bool) {
	if !completed {
		e.pending = append(e.pending, Event{Kind: EventPreempted})
	}
}

func (e *Engine) startFinish(side Side) {
	seq := &finishSequence{side: side}
	e.finish = seq
	e.st.finishing = true

	open := e.st.extents.Header
	if side == SideFooter {
		open = -e.st.extents.Footer
	}
	if !e.st.AnimateOffsetTo(open, mutator.Default, e.stepDone(seq)) {
		e.abortFinish(seq)
	}
}

func (e *Engine) stepDone(seq *finishSequence) func(bool) {
	return func(completed bool) {
		if e.finish != seq {
			return
		}
		if !completed {
			e.abortFinish(seq)
			return
		}
		switch seq.step {
		case stepOpen:
			seq.step = stepHold
			if now, ok := e.st.now(); ok {
				seq.holdUntil = now.Add(e.cfg.FinishDelay)
			}
			if e.cfg.FinishDelay <= 0 {
				e.collapse(seq)
			}
		case stepCollapse:
			e.finish = nil
		}
	}
}

func (e *Engine) advanceFinish(now time.Time) {
	seq := e.finish
	if seq == nil || seq.step != stepHold {
		return
	}
	if seq.holdUntil.IsZero() {
		seq.holdUntil = now.Add(e.cfg.FinishDelay)
	}
	if now.Before(seq.holdUntil) {
		return
	}
	e.collapse(seq)
}

func (e *Engine) collapse(seq *finishSequence) {
	if e.cb.OnCollapseScroll != nil {
		e.cb.OnCollapseScroll(-e.st.offset)
	}
	if e.finish != seq {
		return
	}
	seq.step = stepCollapse
	if !e.st.AnimateOffsetTo(0, mutator.PreventUserInput, e.stepDone(seq)) {
		e.abortFinish(seq)
	}
}

// abortFinish ends a sequence whose animation was taken away and asks the
// choreographer to decide again from the current state.
func (e *Engine) abortFinish(seq *finishSequence) {
	if e.finish != seq {
		return
	}
	e.finish = nil
	e.st.finishing = false
	e.replan = true
	e.pending = append(e.pending, Event{Kind: EventPreempted})
}

// cancelFinish ends the running sequence on behalf of a new plan.
func (e *Engine) cancelFinish() {
	seq := e.finish
	if seq == nil {
		return
	}
	e.finish = nil
	e.st.finishing = false
	if seq.step != stepHold {
		e.st.Cancel()
	}
}

func (e *Engine) publish() bool {
	cur := e.st.Snapshot()
	prev := e.published
	events := e.pending
	e.pending = nil

	if cur.Header != prev.Header {
		events = append(events, Event{Kind: EventHeaderState})
	}
	if cur.Footer != prev.Footer {
		events = append(events, Event{Kind: EventFooterState})
	}
	if cur.Finishing != prev.Finishing {
		events = append(events, Event{Kind: EventFinishing})
	}
	if e.edge.observe(cur) {
		events = append(events, Event{Kind: EventThreshold})
		if e.cfg.VibrationEnabled && e.haptics != nil {
			e.haptics.Vibrate(time.Duration(e.cfg.VibrationMillis) * time.Millisecond)
		}
	}
	e.published = cur
	if len(events) == 0 {
		return false
	}

	subs := append([]*subscriber(nil), e.subs...)
	for _, ev := range events {
		ev.Previous = prev
		ev.Current = cur
		for _, s := range subs {
			if s.fn != nil {
				s.fn(ev)
			}
		}
	}
	return true
}

func (e *Engine) call(fn func()) {
	if fn != nil {
		fn()
	}
}
