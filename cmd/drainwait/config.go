package main

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

type config struct {
	Workers int
	Hold    time.Duration
	Weight  uint
	Timeout time.Duration
	Verbose bool
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"DRAINWAIT_WORKERS"},
			Value:   8,
			Usage:   "Number of workers holding a counter",
		},
		&cli.DurationFlag{
			Name:    "hold",
			EnvVars: []string{"DRAINWAIT_HOLD"},
			Value:   100 * time.Millisecond,
			Usage:   "Maximum time a worker holds its counter",
		},
		&cli.UintFlag{
			Name:    "weight",
			EnvVars: []string{"DRAINWAIT_WEIGHT"},
			Value:   1,
			Usage:   "Units of the count each worker holds",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			EnvVars: []string{"DRAINWAIT_TIMEOUT"},
			Value:   10 * time.Second,
			Usage:   "How long to wait for the counter to drain",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			EnvVars: []string{"DRAINWAIT_VERBOSE"},
			Usage:   "Enable debug logging",
		},
	}
}

func configFromContext(c *cli.Context) config {
	return config{
		Workers: c.Int("workers"),
		Hold:    c.Duration("hold"),
		Weight:  c.Uint("weight"),
		Timeout: c.Duration("timeout"),
		Verbose: c.Bool("verbose"),
	}
}

func (cfg config) validate() error {
	var result *multierror.Error
	if cfg.Workers < 1 {
		result = multierror.Append(result, errors.Errorf("workers must be at least 1, got %d", cfg.Workers))
	}
	if cfg.Hold < 0 {
		result = multierror.Append(result, errors.Errorf("hold must not be negative, got %s", cfg.Hold))
	}
	if cfg.Weight == 0 {
		result = multierror.Append(result, errors.New("weight must be at least 1"))
	}
	if cfg.Timeout <= 0 {
		result = multierror.Append(result, errors.Errorf("timeout must be positive, got %s", cfg.Timeout))
	}
	return result.ErrorOrNil()
}
