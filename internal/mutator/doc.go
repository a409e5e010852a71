// Package mutator arbitrates writers competing for one mutable value.
//
// # Overview
//
// A Mutex holds at most one active mutation. Every request carries a
// Priority. A request whose priority is greater than or equal to the active
// one cancels the active mutation and takes ownership immediately; a request
// with strictly lower priority is rejected and must not proceed.
//
// There is no waiting queue. Rejection is not an error, it is the expected
// outcome when a more important writer owns the value, and callers simply
// abandon their work.
//
// # Priorities
//
// Priorities are ordered from lowest to highest:
//
//   - Default: programmatic settle animations
//   - UserInput: live drag deltas, always beat a settle animation
//   - PreventUserInput: un-interruptible terminal animations
//
// # Concurrency
//
// A Mutex is not safe for concurrent use. It models exclusivity between
// logical writers that all run on one event loop goroutine, so a sync.Mutex
// would add nothing but the possibility of deadlocking that loop.
//
// # Usage Example
//
//	var m mutator.Mutex
//
//	// Long-lived mutation: keep the lease until the animation ends.
//	lease, ok := m.TryLock(mutator.Default, anim.Cancel)
//	if !ok {
//		return
//	}
//	defer lease.Unlock()
//
//	// Synchronous mutation.
//	m.Mutate(mutator.UserInput, func() { offset += delta })
package mutator
