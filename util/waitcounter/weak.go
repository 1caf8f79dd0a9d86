package waitcounter

import (
	"context"
	"fmt"
)

// WeakCounter refers to a counter's state without owning any of its count.
// Unlike weak pointers, upgrading never fails: the state stays valid for as
// long as any handle refers to it, even at a count of zero.
type WeakCounter struct {
	s *state
}

// NewWeak returns a WeakCounter on a fresh state with a count of 0.
func NewWeak() *WeakCounter {
	return &WeakCounter{s: newState(0)}
}

func (w *WeakCounter) Clone() *WeakCounter {
	return &WeakCounter{s: w.s}
}

// Upgrade returns a new Counter of size 1 on w's state.
func (w *WeakCounter) Upgrade() *Counter {
	return newCounter(w.s, 1)
}

// SpawnUpgrade is Upgrade, for handing the Counter to a goroutine that is
// about to be started. Take it before the go statement, not inside it, or a
// concurrent WaitForEmpty may return before the goroutine runs.
func (w *WeakCounter) SpawnUpgrade() *Counter {
	return w.Upgrade()
}

// SpawnUpgradeWithSize returns a new Counter owning size units.
func (w *WeakCounter) SpawnUpgradeWithSize(size uint) *Counter {
	return newCounter(w.s, size)
}

func (w *WeakCounter) Count() int {
	return w.s.load()
}

func (w *WeakCounter) Waiter() *Waiter {
	return w.s.waiter()
}

// WaitForEmpty blocks until the live count is zero or ctx is done.
func (w *WeakCounter) WaitForEmpty(ctx context.Context) error {
	return w.s.waiter().Wait(ctx)
}

func (w *WeakCounter) String() string {
	return fmt.Sprintf("WeakCounter(count=%d)", w.Count())
}
