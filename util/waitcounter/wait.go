package waitcounter

import (
	"context"

	"github.com/pkg/errors"
)

// Waiter waits for the live count of a counter to reach zero. It holds no
// unit of the count itself. Abandoning a Waiter at any point is safe.
type Waiter struct {
	s *state
}

// Poll checks the count once. It returns true if the count is zero.
// Otherwise it returns a channel that is closed the next time the count drops
// to zero, after which Poll must be called again: the count may have been
// raised in between.
func (w *Waiter) Poll() (bool, <-chan struct{}) {
	return w.s.poll()
}

// Wait blocks until the count is observed at zero or ctx is done.
func (w *Waiter) Wait(ctx context.Context) error {
	for {
		empty, ch := w.s.poll()
		if empty {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for counter to empty")
		}
	}
}
