package main

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := config{Workers: 1, Hold: 0, Weight: 1, Timeout: time.Second}
	require.NoError(t, valid.validate())

	err := config{Workers: 0, Hold: -time.Second, Weight: 0, Timeout: 0}.validate()
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 4)
}

func TestDrain(t *testing.T) {
	cfg := config{Workers: 6, Hold: 20 * time.Millisecond, Weight: 3, Timeout: 5 * time.Second}

	rep, err := drain(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Workers)
	assert.Equal(t, 18, rep.Units)
	assert.Less(t, rep.Elapsed, cfg.Timeout)
}

func TestDrainTimeout(t *testing.T) {
	cfg := config{Workers: 2, Hold: time.Hour, Weight: 1, Timeout: 20 * time.Millisecond}

	_, err := drain(context.Background(), cfg)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestApp(t *testing.T) {
	app := newApp()
	err := app.RunContext(context.Background(), []string{"drainwait", "--workers", "3", "--hold", "5ms", "--timeout", "5s"})
	require.NoError(t, err)
}
