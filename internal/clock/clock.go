// Package clock provides the blocking delay primitive used at every
// suspension point of the monitor. Sleeps return early when the context is
// cancelled so an external shutdown signal is honored mid-wait.
package clock

import (
	"context"
	"time"
)

// Clock abstracts blocking delays for testability
type Clock interface {
	// Sleep blocks for d or until ctx is cancelled, returning ctx.Err()
	// in the latter case
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is the wall-clock implementation of Clock
type Real struct{}

// New returns the wall-clock Clock
func New() Real {
	return Real{}
}

// Sleep blocks for d or until ctx is cancelled
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
