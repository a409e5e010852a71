// Package ui provides the terminal host for the refresh engine.
//
// # Architecture Overview
//
// The UI is a single bubbletea Model. It owns one refresh.Engine through a
// surface, which also owns the list scroll position, so the nested scroll
// chain (engine first, list second, engine again) runs in one place:
//
//	mouse / wheel / keys ──> surface.drag ──> Engine.PreScroll
//	                                      ──> list scroll
//	                                      ──> Engine.PostScroll
//	release / wheel idle ──> surface.release ──> Engine.PreFling, PostFling
//	frameMsg (16ms, only while Pending) ──> Engine.Tick
//
// Offsets are in units of RowHeight per terminal row, so a drag of one row
// feeds RowHeight units into the engine before the drag multiplier.
//
// # Callbacks and Fetches
//
// Engine callbacks run inside Update. OnRefresh and OnLoadMore set the
// engine flags and queue a fetch tea.Cmd; the queue is drained at the end of
// every Update. A fetchDoneMsg clears the flag again, which starts the
// completion sequence. OnCollapseScroll tweens the list by the collapse
// amount when the footer collapses, so fresh rows slide in under it.
//
// Automatic loading fetches the next page when the last visible row is
// within three rows of the end, without showing the footer. A manual pull
// during that fetch only shows the indicator; it does not fetch twice.
//
// # Rendering
//
// Each frame places the list and both indicators from Engine.Placement. An
// indicator only draws inside the band its offset reveals; layers flagged as
// on top draw after the list. The status bar names the scroll mode, the
// offset, and any fetch error.
//
// # Key Bindings
//
//   - j/k, g/G: scroll the list, go to top/bottom
//   - K/J: drag one row down/up; Space releases
//   - r/L: programmatic refresh / load more
//   - m: cycle the scroll mode for both indicators
//   - a: toggle always scrollable; A: toggle auto load
//   - T: cycle theme; h/?: help; e or Ctrl+C: exit
package ui
