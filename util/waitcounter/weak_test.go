package waitcounter

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeakDroppedAtZero(t *testing.T) {
	w := NewWeak()
	clone := w.Clone()
	require.Equal(t, 0, clone.Count())

	w = nil
	runtime.GC()
	require.Equal(t, 0, clone.Count())
}

func TestWeakUpgradeFromZero(t *testing.T) {
	c := New()
	w := c.Downgrade()
	require.Equal(t, 0, w.Count())

	up := w.Upgrade()
	require.Equal(t, 1, w.Count())
	up.Release()
	require.Equal(t, 0, w.Count())
}

func TestWeakConcurrentUpgrades(t *testing.T) {
	w := NewWeak()

	var (
		start    = make(chan struct{})
		wg       sync.WaitGroup
		counters = make([]*Counter, 3)
	)
	for i := range counters {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			counters[i] = w.Clone().Upgrade()
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, 3, w.Count())
	require.NotSame(t, counters[0], counters[1])
	require.NotSame(t, counters[1], counters[2])
	require.NotSame(t, counters[0], counters[2])

	for _, c := range counters {
		c.Release()
	}
	require.Equal(t, 0, w.Count())
}
