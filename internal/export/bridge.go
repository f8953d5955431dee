package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

// Filename is the name of the exported image.
const Filename = "whatsapp-wrapped.png"

// Recorder persists export history.
type Recorder interface {
	InsertExport(ctx context.Context, rec model.ExportRecord) error
}

// Result describes a finished export.
type Result struct {
	Path   string
	Shared bool
	Bytes  int64
}

// Bridge exports cards. A Bridge is safe for concurrent use; overlapping
// exports of the same bridge share one run.
type Bridge struct {
	Dir            string
	Sharer         Sharer
	Recorder       Recorder
	PresentationID string
	Logger         *zap.Logger

	flight singleflight.Group
}

// NewBridge returns a bridge writing into dir.
func NewBridge(dir string, sharer Sharer, recorder Recorder, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{Dir: dir, Sharer: sharer, Recorder: recorder, Logger: logger}
}

// Export renders card, saves it and offers it to the sharer. A failed share
// falls back to the saved download. Callers that overlap join one run; the
// run is detached from any single caller, and each caller stops waiting when
// its own ctx ends.
func (b *Bridge) Export(ctx context.Context, card Card) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	ch := b.flight.DoChan("export", func() (any, error) {
		return b.export(context.WithoutCancel(ctx), card)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

func (b *Bridge) export(ctx context.Context, card Card) (Result, error) {
	data, err := EncodePNG(card)
	if err != nil {
		return Result{}, err
	}

	path := filepath.Join(b.Dir, Filename)
	if err := writeFileAtomic(path, data); err != nil {
		return Result{}, err
	}
	res := Result{Path: path, Bytes: int64(len(data))}

	if b.Sharer != nil && b.Sharer.Available() {
		if err := b.Sharer.Share(ctx, path); err != nil {
			b.Logger.Warn("share failed, keeping download", zap.String("path", path), zap.Error(err))
		} else {
			res.Shared = true
		}
	}

	if b.Recorder != nil {
		rec := model.ExportRecord{
			ID:             ulid.Make().String(),
			PresentationID: b.PresentationID,
			Path:           path,
			Shared:         res.Shared,
			Bytes:          res.Bytes,
			CreatedAt:      time.Now(),
		}
		if err := b.Recorder.InsertExport(ctx, rec); err != nil {
			b.Logger.Warn("failed to record export", zap.Error(err))
		}
	}
	b.Logger.Info("card exported",
		zap.String("path", path),
		zap.Bool("shared", res.Shared),
		zap.Int64("bytes", res.Bytes))
	return res, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "wrapdeck-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp image: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
