package counter

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is cancelled. ok is false on cancellation,
// in which case the caller must not touch the slide that scheduled it.
func Wait(ctx context.Context, d time.Duration) (at time.Time, ok bool) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false
	}
	if d <= 0 {
		return time.Now(), true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return time.Time{}, false
	case at := <-timer.C:
		return at, true
	}
}

// Frame returns the frame interval for fps.
func Frame(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
