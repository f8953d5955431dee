package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "wrapdeck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPresentationLifecycle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(1700000000, 0).UTC()

	for i, id := range []string{"a", "b"} {
		rec := model.PresentationRecord{
			ID:          id,
			DatasetPath: "data.json",
			ChatName:    "Beach Crew",
			StartedAt:   start.Add(time.Duration(i) * time.Minute),
		}
		if err := st.StartPresentation(ctx, rec); err != nil {
			t.Fatalf("start presentation: %v", err)
		}
	}
	if err := st.FinishPresentation(ctx, "b", start.Add(5*time.Minute), 11, true); err != nil {
		t.Fatalf("finish presentation: %v", err)
	}
	if err := st.FinishPresentation(ctx, "missing", start, 1, false); err == nil {
		t.Fatalf("expected error for unknown presentation")
	}

	recs, err := st.ListPresentations(ctx, 10)
	if err != nil {
		t.Fatalf("list presentations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 presentations, got %d", len(recs))
	}
	if recs[0].ID != "b" || !recs[0].Completed || recs[0].SlidesViewed != 11 {
		t.Fatalf("unexpected newest presentation: %+v", recs[0])
	}
	if !recs[1].EndedAt.IsZero() {
		t.Fatalf("expected unfinished presentation to have zero end time")
	}
}

func TestExportHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()
	for i := 0; i < 3; i++ {
		rec := model.ExportRecord{
			ID:             string(rune('x' + i)),
			PresentationID: "a",
			Path:           "/tmp/whatsapp-wrapped.png",
			Shared:         i%2 == 0,
			Bytes:          int64(1000 + i),
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		if err := st.InsertExport(ctx, rec); err != nil {
			t.Fatalf("insert export: %v", err)
		}
	}
	recs, err := st.ListExports(ctx, 2)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(recs))
	}
	if recs[0].ID != "z" || !recs[0].Shared || recs[0].Bytes != 1002 {
		t.Fatalf("unexpected newest export: %+v", recs[0])
	}
	if !recs[0].CreatedAt.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("unexpected created_at: %v", recs[0].CreatedAt)
	}
}
