package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "drainwait",
		Usage: "Spawn workers holding a shared counter and wait for it to drain",
		Flags: flags(),
		Action: func(c *cli.Context) error {
			cfg := configFromContext(c)
			if err := cfg.validate(); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if cfg.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			_, err := drain(c.Context, cfg)
			return err
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logrus.Error(err)
		cancel()
		os.Exit(1)
	}
}
