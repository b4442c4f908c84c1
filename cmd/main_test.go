package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingRunner returns from Run only after release is closed, like a pass stuck on a slow panel call.
type blockingRunner struct {
	release     chan struct{}
	runReturned atomic.Bool
	shutdown    chan struct{}
	deadline    time.Time
	err         error
}

func newBlockingRunner(err error) *blockingRunner {
	return &blockingRunner{
		release:  make(chan struct{}),
		shutdown: make(chan struct{}),
		err:      err,
	}
}

func (r *blockingRunner) Run(ctx context.Context) {
	<-ctx.Done()
	<-r.release
	r.runReturned.Store(true)
}

func (r *blockingRunner) Shutdown(ctx context.Context) error {
	r.deadline, _ = ctx.Deadline()
	close(r.shutdown)
	return r.err
}

func TestRunWatchdog_ShutdownStartsBeforeRunReturns(t *testing.T) {
	r := newBlockingRunner(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runWatchdog(ctx, r, time.Minute) }()

	cancel()
	select {
	case <-r.shutdown:
	case <-time.After(time.Second):
		t.Fatal("shutdown did not start while Run was still unwinding")
	}
	assert.False(t, r.runReturned.Load())
	assert.WithinDuration(t, time.Now().Add(time.Minute), r.deadline, 5*time.Second)

	close(r.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runWatchdog did not return")
	}
	assert.True(t, r.runReturned.Load())
}

func TestRunWatchdog_ReturnsShutdownError(t *testing.T) {
	shutdownErr := errors.New("kills still in flight")
	r := newBlockingRunner(shutdownErr)
	close(r.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runWatchdog(ctx, r, time.Second)
	assert.ErrorIs(t, err, shutdownErr)
}
