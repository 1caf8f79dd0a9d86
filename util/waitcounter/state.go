package waitcounter

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

var (
	// ErrNegativeCount is the panic value (wrapped) when a release takes the
	// live count below zero.
	ErrNegativeCount = errors.New("negative counter")
	// ErrAlreadyReleased is the panic value (wrapped) when a Counter handle is
	// used after Release.
	ErrAlreadyReleased = errors.New("counter already released")
)

// state is shared by every handle minted from the same origin.
type state struct {
	count atomic.Int64

	mu sync.Mutex
	// gen is closed on the next transition to zero; nil when nobody waits.
	gen chan struct{}
}

func newState(count uint) *state {
	s := &state{}
	s.count.Store(int64(count))
	return s
}

func (s *state) increment(n uint) {
	s.count.Add(int64(n))
}

func (s *state) decrement(n uint) {
	v := s.count.Sub(int64(n))
	if v < 0 {
		panic(errors.Wrapf(ErrNegativeCount, "count=%d", v))
	}
	if v == 0 {
		s.notify()
	}
}

func (s *state) load() int {
	return int(s.count.Load())
}

func (s *state) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != nil {
		close(s.gen)
		s.gen = nil
	}
}

// poll reports whether the count is zero. If it isn't, it returns the channel
// that the next transition to zero will close.
func (s *state) poll() (bool, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count.Load() == 0 {
		return true, nil
	}
	if s.gen == nil {
		s.gen = make(chan struct{})
	}
	return false, s.gen
}

func (s *state) waiter() *Waiter {
	return &Waiter{s: s}
}
