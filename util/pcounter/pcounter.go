package pcounter

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/earthly/waitcounter/util/waitcounter"
)

var defaultGate = NewGate()

// Gate tracks in-flight ref funcs and lets shutdown wait for them.
type Gate struct {
	mu      sync.Mutex
	closed  bool
	holders *waitcounter.WeakCounter
}

func NewGate() *Gate {
	return &Gate{holders: waitcounter.NewWeak()}
}

// CanDoRefFunc reports whether a ref func may start. If ok, release must be
// called exactly once when it is done.
func (g *Gate) CanDoRefFunc() (ok bool, release func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false, func() {}
	}
	c := g.holders.SpawnUpgrade()
	var once sync.Once
	return true, func() {
		called := true
		once.Do(func() {
			called = false
			c.Release()
		})
		if called {
			panic("releaser already called")
		}
	}
}

// Active is the number of ref funcs currently in flight.
func (g *Gate) Active() int {
	return g.holders.Count()
}

// WaitUntilShutdownIsSafe stops new ref funcs from starting and waits for the
// in-flight ones to release.
func (g *Gate) WaitUntilShutdownIsSafe(ctx context.Context) error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	if n := g.holders.Count(); n > 0 {
		logrus.WithField("active", n).Info("waiting for ref funcs to finish before shutdown")
	}
	if err := g.holders.WaitForEmpty(ctx); err != nil {
		return errors.Wrapf(err, "shutting down while %d ref funcs are in progress", g.holders.Count())
	}
	logrus.Debug("no ref funcs in progress, shutdown is safe")
	return nil
}

func CanDoRefFunc() (ok bool, release func()) {
	return defaultGate.CanDoRefFunc()
}

func WaitUntilShutdownIsSafe(ctx context.Context) error {
	return defaultGate.WaitUntilShutdownIsSafe(ctx)
}
