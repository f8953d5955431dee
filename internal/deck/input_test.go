package deck

import "testing"

func TestDragIntent(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name   string
		dx, vx float64
		want   Intent
	}{
		{name: "below both thresholds", dx: -40, vx: 0.1, want: None},
		{name: "distance advance", dx: -70, vx: 0, want: Advance},
		{name: "velocity retreat", dx: 70, vx: 0.9, want: Retreat},
		{name: "velocity only", dx: 10, vx: 0.9, want: Retreat},
		{name: "fast flick left", dx: -5, vx: -0.8, want: Advance},
		{name: "exact distance is not enough", dx: -60, vx: 0, want: None},
		{name: "distance retreat", dx: 61, vx: 0, want: Retreat},
		{name: "no horizontal motion", dx: 0, vx: 2, want: None},
	}
	for _, tc := range tests {
		if got := DragIntent(tc.dx, tc.vx, th); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestKeyIntent(t *testing.T) {
	tests := []struct {
		key     Key
		want    Intent
		handled bool
	}{
		{KeyArrowRight, Advance, true},
		{KeyArrowDown, Advance, true},
		{KeySpace, Advance, true},
		{KeyArrowLeft, Retreat, true},
		{KeyArrowUp, Retreat, true},
		{Key("Enter"), None, false},
		{Key("a"), None, false},
	}
	for _, tc := range tests {
		got, handled := KeyIntent(tc.key)
		if got != tc.want || handled != tc.handled {
			t.Fatalf("%s: expected %v/%v, got %v/%v", tc.key, tc.want, tc.handled, got, handled)
		}
	}
}

func TestTapIntent(t *testing.T) {
	if got := TapIntent(Surface, 4); got != Advance {
		t.Fatalf("expected surface tap to advance, got %v", got)
	}
	if got := TapIntent(Control, 4); got != None {
		t.Fatalf("expected control tap to be ignored, got %v", got)
	}
	if got := TapIntent(Surface, FirstSlide); got != None {
		t.Fatalf("expected tap on intro to be ignored, got %v", got)
	}
	if got := TapIntent(Surface, LastSlide); got != None {
		t.Fatalf("expected tap on closing to be ignored, got %v", got)
	}
}
