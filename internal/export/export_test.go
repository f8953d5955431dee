package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSharer struct {
	available bool
	err       error
	paths     []string
}

func (f *fakeSharer) Available() bool { return f.available }

func (f *fakeSharer) Share(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []model.ExportRecord
}

func (f *fakeRecorder) InsertExport(_ context.Context, rec model.ExportRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func sampleCard(t *testing.T) Card {
	t.Helper()
	ds, err := dataset.Sample()
	require.NoError(t, err)
	e, err := deck.NewEngine(ds, nil)
	require.NoError(t, err)
	v, err := e.ViewAt(deck.LastSlide)
	require.NoError(t, err)
	return CardFromView(v.(deck.ClosingView))
}

func TestCardFromView(t *testing.T) {
	card := sampleCard(t)
	require.Equal(t, "Beach Crew", card.Title)
	require.Equal(t, "WRAPPED 2024", card.Subtitle)
	require.Equal(t, []Stat{
		{Value: "48.2K", Label: "messages"},
		{Value: "6", Label: "people"},
		{Value: "341", Label: "days"},
	}, card.Stats)
	require.Len(t, card.Highlights, 2)
}

func TestEncodePNGFixedSize(t *testing.T) {
	data, err := EncodePNG(sampleCard(t))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, CardWidth*Scale, img.Bounds().Dx())
	require.Equal(t, CardHeight*Scale, img.Bounds().Dy())
}

func TestExportShares(t *testing.T) {
	dir := t.TempDir()
	sharer := &fakeSharer{available: true}
	rec := &fakeRecorder{}
	b := NewBridge(dir, sharer, rec, nil)
	b.PresentationID = "p1"

	res, err := b.Export(context.Background(), sampleCard(t))
	require.NoError(t, err)
	require.True(t, res.Shared)
	require.Equal(t, filepath.Join(dir, Filename), res.Path)
	require.Equal(t, []string{res.Path}, sharer.paths)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	require.Equal(t, res.Bytes, info.Size())

	require.Len(t, rec.records, 1)
	require.Equal(t, "p1", rec.records[0].PresentationID)
	require.True(t, rec.records[0].Shared)
}

func TestExportFallsBackToDownload(t *testing.T) {
	dir := t.TempDir()
	sharer := &fakeSharer{available: true, err: errors.New("dismissed")}
	b := NewBridge(dir, sharer, nil, nil)

	res, err := b.Export(context.Background(), sampleCard(t))
	require.NoError(t, err)
	require.False(t, res.Shared)
	_, err = os.Stat(res.Path)
	require.NoError(t, err)
}

func TestExportWithoutSharer(t *testing.T) {
	dir := t.TempDir()
	b := NewBridge(dir, &fakeSharer{available: false}, nil, nil)
	res, err := b.Export(context.Background(), sampleCard(t))
	require.NoError(t, err)
	require.False(t, res.Shared)
}

func TestExportCancelled(t *testing.T) {
	dir := t.TempDir()
	b := NewBridge(dir, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Export(ctx, sampleCard(t))
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, Filename))
	require.True(t, os.IsNotExist(statErr))
}

// gateSharer blocks Share until release is closed and remembers whether the
// run's context was still live when it finished.
type gateSharer struct {
	entered chan struct{}
	release chan struct{}
	ctxErr  error
}

func (g *gateSharer) Available() bool { return true }

func (g *gateSharer) Share(ctx context.Context, _ string) error {
	close(g.entered)
	<-g.release
	g.ctxErr = ctx.Err()
	return nil
}

func TestExportSurvivesFirstCallerLeaving(t *testing.T) {
	dir := t.TempDir()
	sharer := &gateSharer{entered: make(chan struct{}), release: make(chan struct{})}
	b := NewBridge(dir, sharer, nil, nil)
	card := sampleCard(t)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := b.Export(firstCtx, card)
		firstErr <- err
	}()
	<-sharer.entered

	type outcome struct {
		res Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := b.Export(context.Background(), card)
		second <- outcome{res, err}
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	// Give the second caller time to join the run still in flight.
	time.Sleep(50 * time.Millisecond)
	close(sharer.release)

	got := <-second
	require.NoError(t, got.err)
	require.True(t, got.res.Shared)
	require.FileExists(t, got.res.Path)
	require.NoError(t, sharer.ctxErr)
}

func TestExportRetryAfterFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	b := NewBridge(filepath.Join(blocker, "out"), nil, nil, nil)
	_, err := b.Export(context.Background(), sampleCard(t))
	require.Error(t, err)

	b.Dir = dir
	res, err := b.Export(context.Background(), sampleCard(t))
	require.NoError(t, err)
	require.FileExists(t, res.Path)
}

func TestPrintableDropsEmoji(t *testing.T) {
	require.Equal(t, "Top emoji", printable("Top emoji 😂"))
	require.Equal(t, "", printable("🔥"))
}
