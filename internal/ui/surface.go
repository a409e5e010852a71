package ui

import (
	"log"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/swiperefresh/internal/anim"
	"github.com/five82/swiperefresh/internal/refresh"
)

// surface hosts the refresh engine above a scrollable list. All offsets and
// scroll positions are in units, rowHeight units per terminal row. It is held
// by pointer so engine callbacks can queue commands for the model.
type surface struct {
	engine *refresh.Engine
	clock  func() time.Time

	rowHeight     float64
	indicatorRows int
	viewport      float64 // list height in units
	contentRows   int

	scroll       float64
	compensation *anim.Tween

	pressed bool
	lastY   int
	wheel   int // bumps on every wheel event; idle release matches it

	frameScheduled bool
	vibrateUntil   time.Time

	// fetch bookkeeping
	refreshInFlight bool
	loadInFlight    bool
	loadIsAuto      bool

	pending []tea.Cmd
	unsub   func()

	requestRefresh  func() tea.Cmd
	requestLoadMore func() tea.Cmd
}

func newSurface(cfg refresh.Config, rowHeight, indicatorRows int, clock func() time.Time, initialRefresh bool) *surface {
	if clock == nil {
		clock = time.Now
	}
	s := &surface{
		clock:         clock,
		rowHeight:     float64(rowHeight),
		indicatorRows: indicatorRows,
	}
	s.engine = refresh.New(cfg, refresh.Callbacks{
		OnRefresh:        s.onRefresh,
		OnLoadMore:       s.onLoadMore,
		OnCollapseScroll: s.onCollapseScroll,
	},
		refresh.WithClock(clock),
		refresh.WithHaptics(refresh.HapticsFunc(s.vibrate)),
		refresh.WithInitialFlags(initialRefresh, false),
	)
	s.refreshInFlight = initialRefresh
	s.unsub = s.engine.Subscribe(logEvent)
	s.engine.SetExtents(s.extents())
	return s
}

func logEvent(ev refresh.Event) {
	switch ev.Kind {
	case refresh.EventHeaderState:
		log.Printf("header %s -> %s at %.1f", ev.Previous.Header, ev.Current.Header, ev.Current.Offset)
	case refresh.EventFooterState:
		log.Printf("footer %s -> %s at %.1f", ev.Previous.Footer, ev.Current.Footer, ev.Current.Offset)
	case refresh.EventFinishing:
		log.Printf("finishing=%t at %.1f", ev.Current.Finishing, ev.Current.Offset)
	default:
		log.Printf("%s at %.1f", ev.Kind, ev.Current.Offset)
	}
}

func (s *surface) extents() refresh.Extents {
	h := float64(s.indicatorRows) * s.rowHeight
	return refresh.Extents{Header: h, Footer: h}
}

// resize records the list viewport height in rows.
func (s *surface) resize(rows int) {
	s.viewport = float64(max(rows, 0)) * s.rowHeight
	s.scroll = s.clampScroll(s.scroll)
}

// setContentRows records how many list rows exist.
func (s *surface) setContentRows(n int) {
	s.contentRows = n
	s.scroll = s.clampScroll(s.scroll)
}

func (s *surface) maxScroll() float64 {
	return math.Max(0, float64(s.contentRows)*s.rowHeight-s.viewport)
}

func (s *surface) clampScroll(v float64) float64 {
	return math.Min(math.Max(v, 0), s.maxScroll())
}

// drag routes one gesture step through the nested scroll chain: the engine
// sees it first, the list takes what is left, and the engine gets the rest.
// Positive dy moves the finger down.
func (s *surface) drag(dy float64) {
	s.stopCompensation()
	pre := s.engine.PreScroll(refresh.Vec{Y: dy}, refresh.SourceDrag)
	left := dy - pre.Y
	used := s.scrollContent(left)
	left -= used
	s.engine.PostScroll(refresh.Vec{Y: used}, refresh.Vec{Y: left}, refresh.SourceDrag)
}

// release ends the gesture. The terminal has no velocity, so the fling is
// zero; the engine still resolves triggers on it.
func (s *surface) release() {
	s.pressed = false
	consumed := s.engine.PreFling(refresh.Vec{})
	s.engine.PostFling(consumed, refresh.Vec{})
}

// scrollContent moves the list for a finger delta and returns the part of
// the delta it used.
func (s *surface) scrollContent(dy float64) float64 {
	next := s.clampScroll(s.scroll - dy)
	used := s.scroll - next
	s.scroll = next
	return used
}

// scrollRows moves the list directly, outside any gesture.
func (s *surface) scrollRows(rows int) {
	s.stopCompensation()
	s.scroll = s.clampScroll(s.scroll + float64(rows)*s.rowHeight)
}

func (s *surface) scrollTo(v float64) {
	s.stopCompensation()
	s.scroll = s.clampScroll(v)
}

// beginRefresh starts a refresh from code, as if the user had pulled.
func (s *surface) beginRefresh() {
	if s.engine.Snapshot().Refreshing {
		return
	}
	s.onRefresh()
}

// beginLoadMore starts a load from code.
func (s *surface) beginLoadMore() {
	if snap := s.engine.Snapshot(); snap.Loading || !s.engine.Config().LoadMoreEnabled {
		return
	}
	s.onLoadMore()
}

func (s *surface) onRefresh() {
	s.engine.SetRefreshing(true)
	if s.refreshInFlight || s.requestRefresh == nil {
		return
	}
	s.refreshInFlight = true
	s.queue(s.requestRefresh())
}

func (s *surface) onLoadMore() {
	s.engine.SetLoading(true)
	if s.loadInFlight {
		// An automatic load is already fetching this page; the indicator
		// finishes when it lands.
		s.loadIsAuto = false
		return
	}
	s.startLoad(false)
}

// autoLoad fetches the next page without showing the footer indicator.
func (s *surface) autoLoad() {
	if s.loadInFlight {
		return
	}
	s.startLoad(true)
}

func (s *surface) startLoad(auto bool) {
	if s.requestLoadMore == nil {
		return
	}
	s.loadInFlight = true
	s.loadIsAuto = auto
	s.queue(s.requestLoadMore())
}

// refreshDone clears the refreshing flag, which starts the completion
// sequence.
func (s *surface) refreshDone() {
	s.refreshInFlight = false
	s.engine.SetRefreshing(false)
}

func (s *surface) loadDone() {
	s.loadInFlight = false
	s.loadIsAuto = false
	if s.engine.Snapshot().Loading {
		s.engine.SetLoading(false)
	}
}

// onCollapseScroll shifts the list along with a collapsing footer so the
// freshly loaded rows slide into the space it leaves.
func (s *surface) onCollapseScroll(amount float64) {
	if s.engine.FinishingSide() != refresh.SideFooter {
		return
	}
	cfg := s.engine.Config()
	now := s.clock()
	s.compensation = anim.New(s.scroll, s.scroll+amount, now, cfg.AnimationDuration, cfg.Easing)
	s.applyCompensation(now)
}

func (s *surface) applyCompensation(now time.Time) {
	if s.compensation == nil {
		return
	}
	s.scroll = s.clampScroll(s.compensation.Value(now))
	if s.compensation.Done(now) {
		s.compensation = nil
	}
}

func (s *surface) stopCompensation() {
	if s.compensation != nil {
		s.compensation.Cancel()
		s.compensation = nil
	}
}

func (s *surface) vibrate(d time.Duration) {
	s.vibrateUntil = s.clock().Add(d)
}

func (s *surface) vibrating() bool {
	return s.clock().Before(s.vibrateUntil)
}

// tick advances the engine and the list compensation to now.
func (s *surface) tick(now time.Time) {
	s.frameScheduled = false
	s.engine.Tick(now)
	s.applyCompensation(now)
}

// sync brings the engine up to the current time between frames, so input
// that starts an animation after an idle stretch starts it now.
func (s *surface) sync() {
	s.engine.Tick(s.clock())
}

// animating reports whether another frame is needed.
func (s *surface) animating() bool {
	return s.engine.Pending() || s.compensation != nil
}

// nextFrame schedules a frame when something is moving and none is queued.
func (s *surface) nextFrame() tea.Cmd {
	if s.frameScheduled || !s.animating() {
		return nil
	}
	s.frameScheduled = true
	return frameCmd()
}

func (s *surface) queue(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// drain returns the commands queued by engine callbacks since the last call.
func (s *surface) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}

// firstVisibleRow is the list row at the top of the viewport.
func (s *surface) firstVisibleRow() int {
	return int(s.scroll / s.rowHeight)
}

// lastVisibleRow is the list row at the bottom of the viewport.
func (s *surface) lastVisibleRow() int {
	if s.contentRows == 0 {
		return -1
	}
	last := int(math.Ceil((s.scroll+s.viewport)/s.rowHeight)) - 1
	return min(last, s.contentRows-1)
}

func (s *surface) close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}
