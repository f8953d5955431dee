package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/export"
	"github.com/verte-zerg/wrapdeck/internal/model"
)

var testNow = time.Unix(1700000000, 0)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	ds, err := dataset.Sample()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	engine, err := deck.NewEngine(ds, opts.Registry)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	m := NewModel(context.Background(), engine, opts)
	t.Cleanup(m.shutdown)
	send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tap(m *Model, x, y int) tea.Cmd {
	send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func goTo(t *testing.T, m *Model, pos int) {
	t.Helper()
	for m.Position() < pos {
		send(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Position() != pos {
		t.Fatalf("expected position %d, got %d", pos, m.Position())
	}
}

func TestKeyNavigation(t *testing.T) {
	m := newTestModel(t, Options{})
	if cmd := send(m, tea.KeyMsg{Type: tea.KeyLeft}); cmd != nil || m.Position() != 0 {
		t.Fatalf("expected retreat at intro to be a no-op")
	}
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	send(m, tea.KeyMsg{Type: tea.KeySpace})
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Position() != 3 {
		t.Fatalf("expected position 3, got %d", m.Position())
	}
	send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Position() != 2 {
		t.Fatalf("expected position 2, got %d", m.Position())
	}
	send(m, keyRunes("x"))
	if m.Position() != 2 {
		t.Fatalf("unrelated key moved the deck")
	}
}

func TestEnterStartsOnlyFromIntro(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Position() != 1 {
		t.Fatalf("expected enter to start the deck, got %d", m.Position())
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Position() != 1 {
		t.Fatalf("expected enter to be ignored after the intro, got %d", m.Position())
	}
}

func TestDragNavigation(t *testing.T) {
	m := newTestModel(t, Options{})
	goTo(t, m, 2)

	send(m, tea.MouseMsg{X: 60, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionRelease})
	if m.Position() != 3 {
		t.Fatalf("expected left drag to advance, got %d", m.Position())
	}

	send(m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 70, Y: 10, Action: tea.MouseActionRelease})
	if m.Position() != 2 {
		t.Fatalf("expected right drag to retreat, got %d", m.Position())
	}

	// 5 cells is 40 units, below the distance threshold.
	send(m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 35, Y: 30, Action: tea.MouseActionRelease})
	if m.Position() != 2 {
		t.Fatalf("expected short drag to be ignored, got %d", m.Position())
	}
}

func TestTapNavigation(t *testing.T) {
	m := newTestModel(t, Options{})
	tap(m, 50, 10)
	if m.Position() != 0 {
		t.Fatalf("expected surface tap on intro to be ignored, got %d", m.Position())
	}

	goTo(t, m, 1)
	tap(m, 50, 10)
	if m.Position() != 2 {
		t.Fatalf("expected surface tap to advance, got %d", m.Position())
	}

	mid := m.bodyHeight() / 2
	tap(m, 1, mid)
	if m.Position() != 1 {
		t.Fatalf("expected prev control to retreat, got %d", m.Position())
	}
	tap(m, 98, mid)
	if m.Position() != 2 {
		t.Fatalf("expected next control to advance once, got %d", m.Position())
	}

	goTo(t, m, deck.LastSlide)
	tap(m, 50, 10)
	if m.Position() != deck.LastSlide {
		t.Fatalf("expected surface tap on closing slide to be ignored")
	}
}

func TestStartButtonTap(t *testing.T) {
	m := newTestModel(t, Options{})
	var start zone
	for _, z := range m.zones() {
		if z.ctrl == ctrlStart {
			start = z
		}
	}
	if start.ctrl != ctrlStart {
		t.Fatalf("expected a start control on the intro")
	}
	tap(m, (start.x0+start.x1)/2, start.y0)
	if m.Position() != 1 {
		t.Fatalf("expected start to advance, got %d", m.Position())
	}
}

func TestControlsHiddenAtEdges(t *testing.T) {
	m := newTestModel(t, Options{})
	for _, z := range m.zones() {
		if z.ctrl == ctrlPrev || z.ctrl == ctrlNext {
			t.Fatalf("expected no arrows on intro, got %v", z.ctrl)
		}
	}
	goTo(t, m, deck.LastSlide)
	var hasPrev, hasNext bool
	for _, z := range m.zones() {
		hasPrev = hasPrev || z.ctrl == ctrlPrev
		hasNext = hasNext || z.ctrl == ctrlNext
	}
	if !hasPrev || hasNext {
		t.Fatalf("expected only prev arrow on closing slide, prev=%v next=%v", hasPrev, hasNext)
	}
}

func TestTransitionFollowsDirection(t *testing.T) {
	m := newTestModel(t, Options{Transitions: true})
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.offset != 1 {
		t.Fatalf("expected forward transition to enter from the right, got %v", m.offset)
	}
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.offset != -1 {
		t.Fatalf("expected backward transition to enter from the left, got %v", m.offset)
	}

	plain := newTestModel(t, Options{})
	send(plain, tea.KeyMsg{Type: tea.KeyRight})
	if plain.offset != 0 {
		t.Fatalf("expected no offset without transitions, got %v", plain.offset)
	}
}

func TestCountersReachTarget(t *testing.T) {
	m := newTestModel(t, Options{})
	goTo(t, m, 1)
	if got := m.counters.Display(cntMessages, 0); got != "0" {
		t.Fatalf("expected counter to start at 0, got %q", got)
	}
	send(m, frameMsg{gen: m.gen, at: testNow.Add(10 * time.Second)})
	if got := m.counters.Display(cntMessages, 0); got != "48.2K" {
		t.Fatalf("expected final value 48.2K, got %q", got)
	}
	if !m.counters.Done() {
		t.Fatalf("expected counters to be done")
	}
}

func TestStaleFramesDropped(t *testing.T) {
	m := newTestModel(t, Options{})
	old := m.gen
	oldCtx := m.slideCtx
	goTo(t, m, 1)
	if oldCtx.Err() == nil {
		t.Fatalf("expected previous slide context to be cancelled")
	}
	if cmd := send(m, frameMsg{gen: old, at: testNow.Add(10 * time.Second)}); cmd != nil {
		t.Fatalf("expected stale frame to schedule nothing")
	}
	if m.counters.Done() {
		t.Fatalf("stale frame advanced the mounted counters")
	}
}

func TestExportFlow(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{Bridge: export.NewBridge(dir, nil, nil, nil)})
	goTo(t, m, deck.LastSlide)

	cmd := send(m, keyRunes("s"))
	if cmd == nil || !m.exporting {
		t.Fatalf("expected export to start")
	}
	if again := send(m, keyRunes("s")); again != nil {
		t.Fatalf("expected duplicate share to be ignored while exporting")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch command")
	}
	var done exportDoneMsg
	for _, c := range batch {
		if msg, ok := c().(exportDoneMsg); ok {
			done = msg
		}
	}
	if done.err != nil {
		t.Fatalf("export failed: %v", done.err)
	}
	send(m, done)
	if m.exporting {
		t.Fatalf("expected exporting to end")
	}
	if !strings.HasPrefix(m.flag, "Saved!") || !m.flagOK {
		t.Fatalf("unexpected flag: %q", m.flag)
	}
	if _, err := os.Stat(filepath.Join(dir, export.Filename)); err != nil {
		t.Fatalf("expected exported file: %v", err)
	}

	send(m, flagExpiredMsg{gen: m.gen, id: m.flagID})
	if m.flag != "" {
		t.Fatalf("expected flag to clear, got %q", m.flag)
	}
}

func TestExportResultIgnoredAfterLeaving(t *testing.T) {
	m := newTestModel(t, Options{Bridge: export.NewBridge(t.TempDir(), nil, nil, nil)})
	goTo(t, m, deck.LastSlide)
	send(m, keyRunes("s"))
	gen := m.gen
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	send(m, exportDoneMsg{gen: gen, res: export.Result{Path: "x"}})
	if m.flag != "" || m.exporting {
		t.Fatalf("expected late export result to be ignored, flag=%q", m.flag)
	}
}

func TestExportUnavailable(t *testing.T) {
	m := newTestModel(t, Options{})
	goTo(t, m, deck.LastSlide)
	send(m, keyRunes("s"))
	if m.flag == "" || m.flagOK {
		t.Fatalf("expected failure flag without a bridge, got %q", m.flag)
	}
}

func TestRestartAndProgress(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, keyRunes("r"))
	if m.Restarts() != 0 {
		t.Fatalf("expected restart to be ignored before the closing slide")
	}
	goTo(t, m, deck.LastSlide)
	viewed, completed := m.Progress()
	if viewed != deck.TotalSlides || !completed {
		t.Fatalf("unexpected progress: %d %v", viewed, completed)
	}
	send(m, keyRunes("r"))
	if m.Position() != deck.FirstSlide || m.Restarts() != 1 {
		t.Fatalf("expected restart to return to the intro")
	}
	if _, completed := m.Progress(); !completed {
		t.Fatalf("expected completion to survive a restart")
	}
}

func TestQuitCancelsSlide(t *testing.T) {
	m := newTestModel(t, Options{})
	goTo(t, m, 1)
	ctx := m.slideCtx
	cmd := send(m, keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
	if ctx.Err() == nil {
		t.Fatalf("expected slide context to be cancelled")
	}
}

func TestViewRendersEverySlide(t *testing.T) {
	m := newTestModel(t, Options{})
	titles := []string{
		"WhatsApp Wrapped",
		"Your WhatsApp Year",
		"When You Were Most Alive",
		"Who Carried the Group",
		"What You Talked About",
		"Media & Chaos",
		"Code & Geek Energy",
		"The Vibe Check",
		"Chat Personalities",
		"Emoji Wrapped",
		"Beach Crew",
	}
	for pos, title := range titles {
		goTo(t, m, pos)
		out := m.View()
		if !strings.Contains(out, title) {
			t.Fatalf("slide %d missing %q:\n%s", pos, title, out)
		}
		if lines := strings.Count(out, "\n") + 1; lines != 40 {
			t.Fatalf("slide %d rendered %d lines, expected 40", pos, lines)
		}
	}
}

type brokenView struct{}

func (brokenView) Kind() deck.Kind { return deck.KindOverview }

func TestRenderFailureShowsPlaceholder(t *testing.T) {
	base := deck.DefaultRegistry()
	entries := make([]deck.Entry, 0, deck.TotalSlides)
	for pos := deck.FirstSlide; pos <= deck.LastSlide; pos++ {
		e, err := base.Lookup(pos)
		if err != nil {
			t.Fatalf("lookup %d: %v", pos, err)
		}
		if pos == 1 {
			e.Select = func(*model.WrappedDataset) deck.View { return brokenView{} }
		}
		entries = append(entries, e)
	}
	m := newTestModel(t, Options{Registry: deck.NewRegistry(entries...)})
	goTo(t, m, 1)
	out := m.View()
	if !strings.Contains(out, "This slide could not be shown.") {
		t.Fatalf("expected placeholder:\n%s", out)
	}
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Position() != 2 {
		t.Fatalf("expected navigation to continue after a failed slide")
	}
}
