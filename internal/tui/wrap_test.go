package tui

import (
	"reflect"
	"testing"
)

func TestWrapTextBreaksOnWords(t *testing.T) {
	got := wrapText("the heartbeat of every conversation", 12)
	want := []string{"the", "heartbeat of", "every", "conversation"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij xy", 4)
	want := []string{"abcd", "efgh", "ij", "xy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	got := wrapText("🔥🔥🔥 ok", 4)
	want := []string{"🔥🔥", "🔥", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("   ", 10); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Beach Crew", 6); got != "Beach…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("ok", 6); got != "ok" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
