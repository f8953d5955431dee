package deck

import (
	"testing"
	"time"
)

func TestGestureDragVelocity(t *testing.T) {
	g := NewGesture()
	t0 := time.Unix(0, 0)
	g.Press(200, 50, t0)
	g.Move(190, 52, t0.Add(10*time.Millisecond))
	g.Move(170, 80, t0.Add(20*time.Millisecond))
	r, ok := g.End(170, 80, t0.Add(25*time.Millisecond))
	if !ok {
		t.Fatalf("expected release")
	}
	if r.DX != -30 {
		t.Fatalf("expected dx -30, got %v", r.DX)
	}
	if r.VX != -2 {
		t.Fatalf("expected vx -2, got %v", r.VX)
	}
	if r.Tap {
		t.Fatalf("drag reported as tap")
	}
	if got := DragIntent(r.DX, r.VX, DefaultThresholds()); got != Advance {
		t.Fatalf("expected advance from fast flick, got %v", got)
	}
	if g.Active() {
		t.Fatalf("gesture still active after release")
	}
}

func TestGestureTap(t *testing.T) {
	g := NewGesture()
	t0 := time.Unix(0, 0)
	g.Press(10, 10, t0)
	r, ok := g.End(12, 11, t0.Add(80*time.Millisecond))
	if !ok || !r.Tap {
		t.Fatalf("expected tap, got %+v ok=%v", r, ok)
	}
}

func TestGestureVerticalMotionIgnored(t *testing.T) {
	g := NewGesture()
	t0 := time.Unix(0, 0)
	g.Press(100, 0, t0)
	g.Move(100, 200, t0.Add(5*time.Millisecond))
	r, _ := g.End(100, 300, t0.Add(10*time.Millisecond))
	if got := DragIntent(r.DX, r.VX, DefaultThresholds()); got != None {
		t.Fatalf("expected vertical drag to be ignored, got %v", got)
	}
}

func TestGestureEndWithoutPress(t *testing.T) {
	g := NewGesture()
	if _, ok := g.End(0, 0, time.Now()); ok {
		t.Fatalf("expected no release without press")
	}
}
