// Package refresh implements the gesture-to-state engine behind
// pull-to-refresh and push-to-load-more.
//
// # Overview
//
// A scroll surface owns one Engine. The host forwards nested scroll events
// to it (PreScroll, PostScroll, PreFling, PostFling), reports measured
// indicator heights with SetExtents, drives caller intent with SetRefreshing
// and SetLoading, and calls Tick once per frame. Renderers read Snapshot and
// Placement; they never write.
//
// # Architecture
//
//	host scroll events
//	      ↓
//	connection (interception policy, drag resistance)
//	      ↓
//	State (offset, discrete states, priority mutex)
//	      ↓
//	Plan / Decide (completion choreography)
//	      ↓
//	AnimateTo / Finish commands → State
//
// State holds the signed offset: positive pulls the header down, negative
// pulls the footer up. Drag deltas are synchronous UserInput mutations.
// Animations run at Default priority and hold the mutex until they finish,
// so a drag always cuts a settle animation short. The terminal collapse
// after a completed refresh runs at PreventUserInput and cannot be
// interrupted by a drag.
//
// # Choreography
//
// After every call the engine compares the inputs the choreographer reacts
// to (swipe flag, refreshing, loading, extents) with the last planned
// snapshot. When they differ, Decide picks the next step:
//
//	swiping                → nothing
//	refreshing             → animate to the header extent
//	loading                → animate to the negated footer extent
//	finishing              → nothing
//	header Refreshing      → finish the header
//	footer Loading         → finish the footer
//	otherwise              → animate to rest
//
// Finishing holds the indicator open for Config.FinishDelay, calls
// Callbacks.OnCollapseScroll with the negated offset, then collapses. Any
// new plan ends a running sequence, so flipping a flag back on restarts
// cleanly from the top of the table.
//
// # Time
//
// The engine never starts goroutines or timers. Animations and the finishing
// hold advance only inside Tick, and they start at the time of the latest
// Tick. Before the first Tick they start at the WithClock time, or on the
// first Tick when no clock is set. Hosts that stop ticking while idle should
// Tick once before delivering input so new animations start on time. Tests
// use a manual clock.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Call it from the goroutine that
// delivers input events and frames.
package refresh
