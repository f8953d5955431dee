// Package deck implements the slide presentation state machine and the
// interpretation of raw input into navigation intents.
package deck

// Intent is a normalized navigation instruction.
type Intent int

const (
	// None means the input did not ask for navigation.
	None Intent = iota
	// Advance moves to the next slide.
	Advance
	// Retreat moves to the previous slide.
	Retreat
)

func (i Intent) String() string {
	switch i {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "none"
	}
}

// Direction is the sign of the most recent transition.
type Direction int

const (
	// Still is the direction before any transition happened.
	Still Direction = iota
	// Forward follows an advance.
	Forward
	// Backward follows a retreat.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Sign returns +1 for Forward, -1 for Backward and 0 otherwise.
func (d Direction) Sign() int {
	switch d {
	case Forward:
		return 1
	case Backward:
		return -1
	default:
		return 0
	}
}
