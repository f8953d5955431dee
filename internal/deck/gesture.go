package deck

import (
	"math"
	"time"
)

// DefaultTapSlop is the largest travel still counted as a tap.
const DefaultTapSlop = 4.0

type sample struct {
	x, y float64
	at   time.Time
}

// Release summarizes a finished pointer gesture.
type Release struct {
	DX  float64
	DY  float64
	VX  float64
	Tap bool
}

// Gesture tracks one pointer from press to release.
type Gesture struct {
	Slop float64

	active bool
	start  sample
	prev   sample
	last   sample
}

// NewGesture returns a tracker with the default tap slop.
func NewGesture() *Gesture {
	return &Gesture{Slop: DefaultTapSlop}
}

// Active reports whether a press is being tracked.
func (g *Gesture) Active() bool {
	return g.active
}

// Press starts tracking at the given point.
func (g *Gesture) Press(x, y float64, at time.Time) {
	s := sample{x: x, y: y, at: at}
	g.active = true
	g.start = s
	g.prev = s
	g.last = s
}

// Move records an intermediate point. Moves without a press are ignored.
func (g *Gesture) Move(x, y float64, at time.Time) {
	if !g.active {
		return
	}
	g.prev = g.last
	g.last = sample{x: x, y: y, at: at}
}

// End finishes the gesture. ok is false when no press was tracked.
func (g *Gesture) End(x, y float64, at time.Time) (Release, bool) {
	if !g.active {
		return Release{}, false
	}
	if x != g.last.x || y != g.last.y {
		g.Move(x, y, at)
	}
	g.active = false

	r := Release{
		DX: g.last.x - g.start.x,
		DY: g.last.y - g.start.y,
		VX: velocity(g.prev, g.last),
	}
	r.Tap = math.Abs(r.DX) <= g.Slop && math.Abs(r.DY) <= g.Slop
	return r, true
}

// Cancel drops the tracked press.
func (g *Gesture) Cancel() {
	g.active = false
}

func velocity(from, to sample) float64 {
	ms := float64(to.at.Sub(from.at)) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return (to.x - from.x) / ms
}
