package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrShareUnavailable reports that no share target exists on this platform.
var ErrShareUnavailable = errors.New("share is not available")

// Sharer hands an exported file to the platform.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, path string) error
}

// ClipboardSharer shares by placing the exported file path on the system clipboard.
type ClipboardSharer struct{}

// Available reports whether a clipboard backend exists.
func (ClipboardSharer) Available() bool {
	return !clipboard.Unsupported
}

// Share copies path to the clipboard.
func (s ClipboardSharer) Share(ctx context.Context, path string) error {
	if !s.Available() {
		return ErrShareUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(path); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
