package kratos

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeServer struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Bool
	block    chan struct{}
}

func (f *fakeServer) Start(ctx context.Context) error {
	f.started.Store(true)
	if f.startErr != nil {
		return f.startErr
	}
	select {
	case <-f.block:
	case <-ctx.Done():
	}
	return nil
}

func (f *fakeServer) Stop(ctx context.Context) error {
	f.stopped.Store(true)
	close(f.block)
	return nil
}

func newFakeServer() *fakeServer {
	return &fakeServer{block: make(chan struct{})}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := newFakeServer()
	app := New(StopTimeout(time.Second), Server(srv))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	for !srv.started.Load() {
		time.Sleep(time.Millisecond)
	}
	app.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.True(t, srv.stopped.Load())
}

func TestRunPropagatesStartError(t *testing.T) {
	srv := newFakeServer()
	srv.startErr = errors.New("boom")
	app := New(StopTimeout(time.Second), Server(srv))

	err := app.Run()
	assert.ErrorContains(t, err, "boom")
}
