package refresh

import "github.com/five82/swiperefresh/internal/mutator"

// connection is the scroll interception policy. Every method returns the
// part of the input consumed by this layer; the host hands the remainder to
// the content.
type connection struct {
	st  *State
	cfg *Config

	onRefresh  func()
	onLoadMore func()
}

func (c *connection) enabled() bool {
	return c.cfg.RefreshEnabled || c.cfg.LoadMoreEnabled
}

func (c *connection) busy() bool {
	return c.st.refreshing || c.st.loading || c.st.finishing
}

// lockedOut is what a busy layer consumes: everything, unless the content
// stays scrollable.
func (c *connection) lockedOut(available Vec) Vec {
	if c.cfg.AlwaysScrollable {
		return Vec{}
	}
	return available
}

func (c *connection) preScroll(available Vec, source Source) Vec {
	switch {
	case !c.enabled():
		return Vec{}
	case c.busy():
		return c.lockedOut(available)
	case c.st.offset == 0:
		return Vec{}
	case source == SourceDrag:
		return c.scroll(available)
	default:
		return Vec{}
	}
}

func (c *connection) postScroll(available Vec, source Source) Vec {
	switch {
	case !c.enabled():
		return Vec{}
	case c.busy():
		return Vec{}
	case source == SourceDrag:
		return c.scroll(available)
	default:
		return Vec{}
	}
}

// scroll applies drag resistance and feeds the damped delta into the state.
// The horizontal component is never consumed.
func (c *connection) scroll(available Vec) Vec {
	if available.Y == 0 {
		return Vec{}
	}
	if c.st.offset <= 0 && available.Y < 0 && !c.cfg.LoadMoreEnabled {
		return Vec{}
	}
	if c.st.offset >= 0 && available.Y > 0 && !c.cfg.RefreshEnabled {
		return Vec{}
	}
	c.st.swiping = true
	c.st.DispatchScrollDelta(available.Y * c.cfg.DragMultiplier)
	return Vec{Y: available.Y}
}

func (c *connection) preFling(available Vec) Vec {
	if c.busy() {
		c.st.swiping = false
		return c.lockedOut(available)
	}
	snap := c.st.Snapshot()
	switch {
	case c.cfg.RefreshEnabled && snap.ExceededRefreshTrigger():
		c.call(c.onRefresh)
	case c.cfg.LoadMoreEnabled && snap.ExceededLoadMoreTrigger():
		c.call(c.onLoadMore)
	case snap.Offset != 0 && !snap.Swiping:
		c.st.AnimateOffsetTo(0, mutator.Default, nil)
	}
	c.st.swiping = false
	return Vec{}
}

func (c *connection) postFling(available Vec) Vec {
	if c.busy() {
		return c.lockedOut(available)
	}
	return Vec{}
}

func (c *connection) call(fn func()) {
	if fn != nil {
		fn()
	}
}
