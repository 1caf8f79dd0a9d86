// Package waitcounter provides a reference counter whose holders can be
// awaited: a WeakCounter (or any Counter) can block until every Counter
// sharing its state has been released.
//
//	weak := waitcounter.NewWeak()
//	for _, job := range jobs {
//		c := weak.SpawnUpgrade()
//		go func(job Job) {
//			defer c.Release()
//			job.Run()
//		}(job)
//	}
//	err := weak.WaitForEmpty(ctx)
package waitcounter

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Counter owns size units of a shared live count. The units are given back
// by Release, which should be deferred right after the Counter is obtained so
// that it runs on every return path, including panics.
//
// Waiting on a Counter's own state while still holding it never finishes on
// its own; only the context passed to WaitForEmpty can end such a wait.
type Counter struct {
	s        *state
	size     uint
	released atomic.Bool
}

// New returns a Counter on a fresh state with a count of 1.
func New() *Counter {
	return NewWithSize(1)
}

// NewWithSize returns a Counter on a fresh state owning size units.
func NewWithSize(size uint) *Counter {
	return &Counter{s: newState(size), size: size}
}

func newCounter(s *state, size uint) *Counter {
	s.increment(size)
	return &Counter{s: s, size: size}
}

// Clone returns another Counter of the same size on the same state.
func (c *Counter) Clone() *Counter {
	c.mustBeLive()
	return newCounter(c.s, c.size)
}

// Release gives this Counter's units back. It panics if called twice.
func (c *Counter) Release() {
	if c.released.Swap(true) {
		panic(errors.Wrap(ErrAlreadyReleased, "release"))
	}
	c.s.decrement(c.size)
}

// Weak returns a WeakCounter on the same state. The count is unchanged.
func (c *Counter) Weak() *WeakCounter {
	return &WeakCounter{s: c.s}
}

// Downgrade releases c and returns a WeakCounter on its state.
func (c *Counter) Downgrade() *WeakCounter {
	w := c.Weak()
	c.Release()
	return w
}

// Count is a snapshot of the live count; it may be stale by the time it is
// read.
func (c *Counter) Count() int {
	return c.s.load()
}

// Waiter returns a Waiter on c's state.
func (c *Counter) Waiter() *Waiter {
	return c.s.waiter()
}

// WaitForEmpty blocks until the live count is zero or ctx is done. See the
// Counter docs about waiting while holding c.
func (c *Counter) WaitForEmpty(ctx context.Context) error {
	return c.s.waiter().Wait(ctx)
}

func (c *Counter) String() string {
	return fmt.Sprintf("Counter(count=%d)", c.Count())
}

func (c *Counter) mustBeLive() {
	if c.released.Load() {
		panic(errors.Wrap(ErrAlreadyReleased, "clone"))
	}
}
