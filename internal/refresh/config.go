package refresh

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/five82/swiperefresh/internal/anim"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid refresh config")

const (
	defaultTriggerRate       = 1.0
	defaultMaxOffsetRate     = 2.0
	defaultDragMultiplier    = 0.5
	defaultFinishDelay       = 500 * time.Millisecond
	maxFinishDelay           = 2000 * time.Millisecond
	defaultVibrationMillis   = 25
	minVibrationMillis       = 1
	maxVibrationMillis       = 50
	defaultAnimationDuration = 250 * time.Millisecond
	maxAnimationDuration     = 2 * time.Second
)

// Config is the explicit engine configuration. It is passed at construction
// and replaced with Engine.SetConfig; there is no process-wide default.
type Config struct {
	HeaderScrollMode ScrollMode
	FooterScrollMode ScrollMode

	RefreshEnabled  bool
	LoadMoreEnabled bool

	// Trigger distance = extent × rate, at least one offset unit.
	RefreshTriggerRate  float64
	LoadMoreTriggerRate float64

	// Max drag distance = extent × rate. Must be at least 1.
	HeaderMaxOffsetRate float64
	FooterMaxOffsetRate float64

	// DragMultiplier damps raw gesture deltas. Smaller is more resistance.
	DragMultiplier float64

	// FinishDelay holds the completed indicator open before collapsing.
	FinishDelay time.Duration

	VibrationEnabled bool
	VibrationMillis  int

	// AlwaysScrollable lets the content keep scrolling while a refresh or
	// load is in progress.
	AlwaysScrollable bool

	AnimationDuration time.Duration
	Easing            anim.EasingFunc
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		HeaderScrollMode:    Translate,
		FooterScrollMode:    Translate,
		RefreshEnabled:      true,
		LoadMoreEnabled:     true,
		RefreshTriggerRate:  defaultTriggerRate,
		LoadMoreTriggerRate: defaultTriggerRate,
		HeaderMaxOffsetRate: defaultMaxOffsetRate,
		FooterMaxOffsetRate: defaultMaxOffsetRate,
		DragMultiplier:      defaultDragMultiplier,
		FinishDelay:         defaultFinishDelay,
		VibrationMillis:     defaultVibrationMillis,
		AnimationDuration:   defaultAnimationDuration,
		Easing:              anim.OutCubic,
	}
}

// Validate reports every out-of-range field. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !(c.RefreshTriggerRate > 0) || math.IsInf(c.RefreshTriggerRate, 0) {
		bad("refresh trigger rate %v must be > 0", c.RefreshTriggerRate)
	}
	if !(c.LoadMoreTriggerRate > 0) || math.IsInf(c.LoadMoreTriggerRate, 0) {
		bad("load more trigger rate %v must be > 0", c.LoadMoreTriggerRate)
	}
	if !(c.HeaderMaxOffsetRate >= 1) || math.IsInf(c.HeaderMaxOffsetRate, 0) {
		bad("header max offset rate %v must be >= 1", c.HeaderMaxOffsetRate)
	}
	if !(c.FooterMaxOffsetRate >= 1) || math.IsInf(c.FooterMaxOffsetRate, 0) {
		bad("footer max offset rate %v must be >= 1", c.FooterMaxOffsetRate)
	}
	if !(c.DragMultiplier > 0 && c.DragMultiplier <= 1) {
		bad("drag multiplier %v must be in (0, 1]", c.DragMultiplier)
	}
	if c.FinishDelay < 0 || c.FinishDelay > maxFinishDelay {
		bad("finish delay %v must be in [0, %v]", c.FinishDelay, maxFinishDelay)
	}
	if c.VibrationMillis < minVibrationMillis || c.VibrationMillis > maxVibrationMillis {
		bad("vibration millis %d must be in [%d, %d]", c.VibrationMillis, minVibrationMillis, maxVibrationMillis)
	}
	if c.AnimationDuration < 0 || c.AnimationDuration > maxAnimationDuration {
		bad("animation duration %v must be in [0, %v]", c.AnimationDuration, maxAnimationDuration)
	}
	return errors.Join(errs...)
}

// Clamped returns a copy with every field coerced into its legal range.
// Non-positive or NaN rates fall back to their defaults.
func (c Config) Clamped() Config {
	out := c
	out.RefreshTriggerRate = positiveOr(c.RefreshTriggerRate, defaultTriggerRate)
	out.LoadMoreTriggerRate = positiveOr(c.LoadMoreTriggerRate, defaultTriggerRate)
	out.HeaderMaxOffsetRate = atLeastOne(c.HeaderMaxOffsetRate)
	out.FooterMaxOffsetRate = atLeastOne(c.FooterMaxOffsetRate)

	switch {
	case math.IsNaN(c.DragMultiplier) || c.DragMultiplier <= 0:
		out.DragMultiplier = defaultDragMultiplier
	case c.DragMultiplier > 1:
		out.DragMultiplier = 1
	}

	out.FinishDelay = clampDuration(c.FinishDelay, 0, maxFinishDelay)
	out.AnimationDuration = clampDuration(c.AnimationDuration, 0, maxAnimationDuration)

	switch {
	case c.VibrationMillis < minVibrationMillis:
		out.VibrationMillis = minVibrationMillis
	case c.VibrationMillis > maxVibrationMillis:
		out.VibrationMillis = maxVibrationMillis
	}

	if out.Easing == nil {
		out.Easing = anim.OutCubic
	}
	return out
}

func positiveOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fallback
	}
	return v
}

func atLeastOne(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return defaultMaxOffsetRate
	case math.IsNaN(v) || v < 1:
		return 1
	}
	return v
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
