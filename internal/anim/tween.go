// Package anim provides time-based interpolation for scalar values.
//
// A Tween never reads the clock itself. Callers pass the current time to
// Value and Done, which keeps every animation deterministic under a manual
// clock and lets a single scheduler advance many tweens per frame.
package anim

import "time"

// Tween interpolates a scalar from From to To over Duration.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Easing   EasingFunc

	cancelled bool
}

// New creates a tween starting at start. A nil easing uses OutCubic.
func New(from, to float64, start time.Time, duration time.Duration, easing EasingFunc) *Tween {
	if easing == nil {
		easing = OutCubic
	}
	if duration < 0 {
		duration = 0
	}
	return &Tween{From: from, To: to, Start: start, Duration: duration, Easing: easing}
}

// Progress returns linear time progress clamped to 0-1.
func (t *Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Value returns the eased value at now. The final value is exactly To.
func (t *Tween) Value(now time.Time) float64 {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	return lerp(t.From, t.To, t.Easing(p))
}

// Done reports whether the tween has reached its end at now.
func (t *Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Cancel stops the tween. Callers keep whatever value they last applied.
func (t *Tween) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (t *Tween) Cancelled() bool {
	return t.cancelled
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}
