package refresh

import (
	"fmt"
	"strings"
)

// HeaderState is the discrete state of the pull-to-refresh header.
type HeaderState int

const (
	PullToRefresh HeaderState = iota
	ReleaseToRefresh
	Refreshing
)

func (s HeaderState) String() string {
	switch s {
	case PullToRefresh:
		return "pull-to-refresh"
	case ReleaseToRefresh:
		return "release-to-refresh"
	case Refreshing:
		return "refreshing"
	default:
		return fmt.Sprintf("header(%d)", int(s))
	}
}

// FooterState is the discrete state of the push-to-load footer.
type FooterState int

const (
	PullToLoad FooterState = iota
	ReleaseToLoad
	Loading
)

func (s FooterState) String() string {
	switch s {
	case PullToLoad:
		return "pull-to-load"
	case ReleaseToLoad:
		return "release-to-load"
	case Loading:
		return "loading"
	default:
		return fmt.Sprintf("footer(%d)", int(s))
	}
}

// Source identifies what produced a scroll delta.
type Source int

const (
	// SourceDrag is direct manipulation by the user.
	SourceDrag Source = iota
	// SourceFling is programmatic motion such as fling deceleration.
	SourceFling
)

func (s Source) String() string {
	if s == SourceDrag {
		return "drag"
	}
	return "fling"
}

// Vec is a two-dimensional scroll delta or velocity. Positive Y moves
// content down, which pulls the header into view.
type Vec struct {
	X float64
	Y float64
}

// Side names the indicator a completion sequence belongs to.
type Side int

const (
	SideNone Side = iota
	SideHeader
	SideFooter
)

func (s Side) String() string {
	switch s {
	case SideHeader:
		return "header"
	case SideFooter:
		return "footer"
	default:
		return "none"
	}
}

// ScrollMode controls how an indicator and the content move together while
// the offset is nonzero.
type ScrollMode int

const (
	// Translate moves the indicator and the content together.
	Translate ScrollMode = iota
	// FixedContent keeps the content still and slides the indicator over it.
	FixedContent
	// FixedBehind keeps the indicator still behind the moving content.
	FixedBehind
	// FixedFront keeps both still; only the indicator state changes.
	FixedFront
)

var scrollModeNames = []string{"translate", "fixed-content", "fixed-behind", "fixed-front"}

func (m ScrollMode) String() string {
	if m < 0 || int(m) >= len(scrollModeNames) {
		return fmt.Sprintf("scroll-mode(%d)", int(m))
	}
	return scrollModeNames[m]
}

// Next returns the following mode, wrapping after FixedFront.
func (m ScrollMode) Next() ScrollMode {
	return ScrollMode((int(m) + 1) % len(scrollModeNames))
}

// ParseScrollMode parses a mode name. Matching ignores case and surrounding
// space; an empty name is Translate.
func ParseScrollMode(name string) (ScrollMode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Translate, nil
	}
	for i, candidate := range scrollModeNames {
		if n == candidate {
			return ScrollMode(i), nil
		}
	}
	return Translate, fmt.Errorf("unknown scroll mode %q", name)
}

// Extents are the measured indicator heights. Unknown extents are zero.
type Extents struct {
	Header float64
	Footer float64
}
