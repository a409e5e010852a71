package refresh

import "time"

// Haptics receives the threshold-crossed signal. The engine only calls it
// when vibration is enabled.
type Haptics interface {
	Vibrate(d time.Duration)
}

// HapticsFunc adapts a function to Haptics.
type HapticsFunc func(d time.Duration)

func (f HapticsFunc) Vibrate(d time.Duration) { f(d) }

// releaseEdge detects the moment either indicator enters its release state.
type releaseEdge struct {
	released bool
}

// observe reports true only on the first snapshot of a release.
func (r *releaseEdge) observe(s Snapshot) bool {
	released := s.Header == ReleaseToRefresh || s.Footer == ReleaseToLoad
	rising := released && !r.released
	r.released = released
	return rising
}
