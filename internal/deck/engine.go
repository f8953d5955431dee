package deck

import (
	"fmt"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

// Slide bounds.
const (
	TotalSlides = 11
	FirstSlide  = 0
	LastSlide   = TotalSlides - 1
)

// State is the navigation state of a deck.
type State struct {
	Position  int
	Direction Direction
	// Seq increments on every applied transition.
	Seq int
}

// Reduce applies one intent. Out-of-range moves are no-ops that keep the
// previous direction.
func Reduce(s State, intent Intent) State {
	switch intent {
	case Advance:
		if s.Position < LastSlide {
			s.Position++
			s.Direction = Forward
			s.Seq++
		}
	case Retreat:
		if s.Position > FirstSlide {
			s.Position--
			s.Direction = Backward
			s.Seq++
		}
	}
	return s
}

// Engine owns the position of one presentation session.
type Engine struct {
	state    State
	data     *model.WrappedDataset
	registry *Registry
}

// NewEngine builds an engine positioned on the intro slide.
func NewEngine(data *model.WrappedDataset, registry *Registry) (*Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return &Engine{data: data, registry: registry}, nil
}

// Apply applies an intent and reports whether the position changed.
func (e *Engine) Apply(intent Intent) bool {
	next := Reduce(e.state, intent)
	changed := next.Position != e.state.Position
	e.state = next
	return changed
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Position returns the current slide index.
func (e *Engine) Position() int {
	return e.state.Position
}

// Direction returns the direction of the latest transition.
func (e *Engine) Direction() Direction {
	return e.state.Direction
}

// Dataset returns the read-only dataset.
func (e *Engine) Dataset() *model.WrappedDataset {
	return e.data
}

// View resolves the data needed by the current slide.
func (e *Engine) View() (View, error) {
	return e.ViewAt(e.state.Position)
}

// ViewAt resolves the data needed by the slide at pos.
func (e *Engine) ViewAt(pos int) (View, error) {
	entry, err := e.registry.Lookup(pos)
	if err != nil {
		return nil, err
	}
	return entry.Select(e.data), nil
}

// Indicator returns the progress dot index and total. visible is false on
// the intro and closing slides.
func Indicator(position int) (current, total int, visible bool) {
	if position <= FirstSlide || position >= LastSlide {
		return 0, 0, false
	}
	return position - 1, TotalSlides - 2, true
}
