package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/earthly/waitcounter/util/waitcounter"
)

type report struct {
	Workers int
	Units   int
	Elapsed time.Duration
}

// drain starts cfg.Workers workers, each holding a counter for a random time
// up to cfg.Hold, and waits for all of them to release.
func drain(ctx context.Context, cfg config) (report, error) {
	weak := waitcounter.NewWeak()
	workCtx, stop := context.WithCancel(ctx)
	defer stop()

	start := time.Now()
	g, gctx := errgroup.WithContext(workCtx)
	for i := 0; i < cfg.Workers; i++ {
		c := weak.SpawnUpgradeWithSize(cfg.Weight)
		hold := time.Duration(rand.Int63n(int64(cfg.Hold) + 1))
		log := logrus.WithFields(logrus.Fields{"worker": i, "hold": hold})
		g.Go(func() error {
			defer c.Release()
			log.Debug("worker holding counter")
			select {
			case <-time.After(hold):
			case <-gctx.Done():
				log.Debug("worker cancelled")
			}
			return nil
		})
	}
	rep := report{Workers: cfg.Workers, Units: weak.Count()}
	logrus.WithField("units", humanize.Comma(int64(rep.Units))).Info("waiting for counter to drain")

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	err := weak.WaitForEmpty(waitCtx)
	rep.Elapsed = time.Since(start)
	if err != nil {
		remaining := weak.Count()
		stop()
		_ = g.Wait()
		return rep, errors.Wrapf(err, "%s units still held after %s", humanize.Comma(int64(remaining)), durafmt.Parse(rep.Elapsed).LimitFirstN(2))
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	logrus.WithField("elapsed", durafmt.Parse(rep.Elapsed).LimitFirstN(2).String()).Info("counter drained")
	return rep, nil
}
