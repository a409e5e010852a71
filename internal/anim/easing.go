package anim

// EasingFunc maps time progress to value progress. Input and output are 0-1.
// Curves must not overshoot: callers rely on values staying between the
// endpoints.
type EasingFunc func(t float64) float64

var (
	// Linear moves at constant speed.
	Linear EasingFunc = func(t float64) float64 { return t }

	// OutQuad decelerates to zero.
	OutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// OutCubic is a smooth deceleration. Default for offset settling.
	OutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// InOutCubic accelerates then decelerates.
	InOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}
)

// ByName returns the easing function for a config name, or nil when unknown.
func ByName(name string) EasingFunc {
	switch name {
	case "linear":
		return Linear
	case "ease-out":
		return OutQuad
	case "", "cubic", "ease-out-cubic":
		return OutCubic
	case "ease-in-out":
		return InOutCubic
	default:
		return nil
	}
}
