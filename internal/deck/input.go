package deck

import "math"

const (
	// DefaultDragDistance is the horizontal travel that qualifies a drag.
	DefaultDragDistance = 60.0
	// DefaultDragVelocity is the release speed (units/ms) that qualifies a drag.
	DefaultDragVelocity = 0.5
)

// Thresholds tune drag interpretation.
type Thresholds struct {
	Distance float64
	Velocity float64
}

// DefaultThresholds returns the stock drag thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Distance: DefaultDragDistance, Velocity: DefaultDragVelocity}
}

// DragIntent interprets a finished horizontal drag. Vertical travel is never
// considered so drags do not fight with scrolling.
func DragIntent(dx, vx float64, th Thresholds) Intent {
	if dx == 0 {
		return None
	}
	if math.Abs(dx) <= th.Distance && math.Abs(vx) <= th.Velocity {
		return None
	}
	if dx < 0 {
		return Advance
	}
	return Retreat
}

// Key is a navigation-relevant key name.
type Key string

// Navigation keys.
const (
	KeyArrowRight Key = "ArrowRight"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeySpace      Key = "Space"
)

// KeyIntent maps a key to an intent. handled reports whether the key belongs
// to navigation and must not be passed on to anything else.
func KeyIntent(k Key) (intent Intent, handled bool) {
	switch k {
	case KeyArrowRight, KeyArrowDown, KeySpace:
		return Advance, true
	case KeyArrowLeft, KeyArrowUp:
		return Retreat, true
	default:
		return None, false
	}
}

// Target is what a tap landed on.
type Target int

const (
	// Surface is the presentation background.
	Surface Target = iota
	// Control is any interactive element with its own action.
	Control
)

// TapIntent interprets a tap at the given slide position. Taps on controls
// never navigate, and the intro and closing slides ignore surface taps
// because they carry their own call-to-action controls.
func TapIntent(target Target, position int) Intent {
	if target == Control {
		return None
	}
	if position <= FirstSlide || position >= LastSlide {
		return None
	}
	return Advance
}
