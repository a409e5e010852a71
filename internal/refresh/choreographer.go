package refresh

import (
	"fmt"

	"github.com/five82/swiperefresh/internal/mutator"
)

// Command is a step the engine executes on behalf of the choreographer.
type Command interface {
	command()
}

// AnimateTo animates the offset to Target at Priority.
type AnimateTo struct {
	Target   float64
	Priority mutator.Priority
}

// Finish runs the completion sequence for Side: hold the indicator open,
// then collapse it at PreventUserInput.
type Finish struct {
	Side Side
}

func (AnimateTo) command() {}
func (Finish) command()    {}

func (c AnimateTo) String() string { return fmt.Sprintf("animate-to(%g, %s)", c.Target, c.Priority) }
func (c Finish) String() string    { return fmt.Sprintf("finish(%s)", c.Side) }

// Plan is the completion transition function. It returns nothing unless one
// of the inputs the choreographer reacts to changed between prev and next:
// the swipe flag, the refreshing and loading flags, or the measured extents.
func Plan(prev, next Snapshot) []Command {
	if prev.Swiping == next.Swiping &&
		prev.Refreshing == next.Refreshing &&
		prev.Loading == next.Loading &&
		prev.Extents == next.Extents {
		return nil
	}
	return Decide(next)
}

// Decide returns the commands that bring the offset in line with s.
func Decide(s Snapshot) []Command {
	switch {
	case s.Swiping:
		return nil
	case s.Refreshing:
		return []Command{AnimateTo{Target: s.Extents.Header, Priority: mutator.Default}}
	case s.Loading:
		return []Command{AnimateTo{Target: -s.Extents.Footer, Priority: mutator.Default}}
	case s.Finishing:
		return nil
	case s.Header == Refreshing:
		return []Command{Finish{Side: SideHeader}}
	case s.Footer == Loading:
		return []Command{Finish{Side: SideFooter}}
	default:
		return []Command{AnimateTo{Target: 0, Priority: mutator.Default}}
	}
}
