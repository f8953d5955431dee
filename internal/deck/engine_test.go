package deck

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/wrapdeck/internal/dataset"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := dataset.Sample()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	e, err := NewEngine(ds, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestReduceBoundsAndSingleStep(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	s := State{}
	for i := 0; i < 5000; i++ {
		intent := Advance
		if rnd.Intn(2) == 0 {
			intent = Retreat
		}
		next := Reduce(s, intent)
		if next.Position < FirstSlide || next.Position > LastSlide {
			t.Fatalf("position out of range: %d", next.Position)
		}
		delta := next.Position - s.Position
		if delta < -1 || delta > 1 {
			t.Fatalf("position jumped by %d", delta)
		}
		s = next
	}
}

func TestReduceClampsAtEdges(t *testing.T) {
	s := Reduce(State{Position: LastSlide, Direction: Forward}, Advance)
	if s.Position != LastSlide {
		t.Fatalf("expected position %d, got %d", LastSlide, s.Position)
	}
	s = Reduce(State{Position: FirstSlide}, Retreat)
	if s.Position != FirstSlide {
		t.Fatalf("expected position %d, got %d", FirstSlide, s.Position)
	}
}

func TestReduceDirection(t *testing.T) {
	s := Reduce(State{Position: 3}, Advance)
	if s.Direction != Forward {
		t.Fatalf("expected forward after advance, got %v", s.Direction)
	}
	s = Reduce(s, Retreat)
	if s.Direction != Backward {
		t.Fatalf("expected backward after retreat, got %v", s.Direction)
	}

	edge := Reduce(State{Position: LastSlide, Direction: Backward, Seq: 4}, Advance)
	if edge.Direction != Backward || edge.Seq != 4 {
		t.Fatalf("no-op advance changed state: %+v", edge)
	}
	edge = Reduce(State{Position: FirstSlide, Direction: Forward, Seq: 2}, Retreat)
	if edge.Direction != Forward || edge.Seq != 2 {
		t.Fatalf("no-op retreat changed state: %+v", edge)
	}
	if got := Reduce(State{Position: 5, Direction: Forward}, None); got.Position != 5 || got.Direction != Forward {
		t.Fatalf("none intent changed state: %+v", got)
	}
}

func TestEngineEndToEnd(t *testing.T) {
	e := newTestEngine(t)
	if e.Position() != 0 || e.Direction() != Still {
		t.Fatalf("unexpected initial state: %+v", e.State())
	}
	for i := 0; i < 10; i++ {
		if !e.Apply(Advance) {
			t.Fatalf("advance %d did not move", i)
		}
	}
	if e.Position() != 10 || e.Direction() != Forward {
		t.Fatalf("expected 10/forward, got %d/%v", e.Position(), e.Direction())
	}
	if e.Apply(Advance) {
		t.Fatalf("advance past last slide moved")
	}
	if !e.Apply(Retreat) {
		t.Fatalf("retreat did not move")
	}
	if e.Position() != 9 || e.Direction() != Backward {
		t.Fatalf("expected 9/backward, got %d/%v", e.Position(), e.Direction())
	}
}

func TestEngineSeqTracksLatestTransition(t *testing.T) {
	e := newTestEngine(t)
	e.Apply(Advance)
	e.Apply(Advance)
	e.Apply(Retreat)
	s := e.State()
	if s.Seq != 3 || s.Direction != Backward {
		t.Fatalf("expected seq 3 backward, got %+v", s)
	}
}

func TestIndicator(t *testing.T) {
	for pos := FirstSlide; pos <= LastSlide; pos++ {
		current, total, visible := Indicator(pos)
		if pos == FirstSlide || pos == LastSlide {
			if visible {
				t.Fatalf("indicator visible at %d", pos)
			}
			continue
		}
		if !visible || total != 9 || current != pos-1 {
			t.Fatalf("position %d: got current=%d total=%d visible=%v", pos, current, total, visible)
		}
	}
}

func TestNewEngineRejectsIncompleteRegistry(t *testing.T) {
	ds, err := dataset.Sample()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	reg := NewRegistry(DefaultRegistry().entries[0])
	if _, err := NewEngine(ds, reg); err == nil {
		t.Fatalf("expected registry validation error")
	}
	if _, err := NewEngine(nil, nil); err == nil {
		t.Fatalf("expected error for nil dataset")
	}
}
