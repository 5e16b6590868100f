package socket

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"vehicle_dashboard/internal/logger"
)

func noDelays() func() {
	origRetrySleep := retrySleep
	retrySleep = 0
	return func() {
		retrySleep = origRetrySleep
	}
}

type retryable struct {
	mu          sync.Mutex
	open        bool
	hasClosed   bool
	openErrs    []error
	startedChan chan struct{}
	stopChan    chan error
}

func (r *retryable) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.openErrs) > 0 {
		err := r.openErrs[0]
		r.openErrs = r.openErrs[1:]
		return err
	}
	r.open = true
	return nil
}

func (r *retryable) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = false
	r.hasClosed = true
	return nil
}

func (r *retryable) Start(ctx context.Context) error {
	r.startedChan <- struct{}{}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-r.stopChan:
		return err
	}
}

func (r *retryable) Name() string {
	return "retryable-test"
}

func (r *retryable) state() (open, closed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open, r.hasClosed
}

func TestRetry(t *testing.T) {
	defer noDelays()()
	r := retryable{
		startedChan: make(chan struct{}),
		stopChan:    make(chan error),
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	var runErr error
	go func() {
		runErr = retry(ctx, &r, logger.Nop())
		wg.Done()
	}()
	<-r.startedChan
	open, closed := r.state()
	assert.True(t, open)
	assert.False(t, closed)

	// a clean return from start still cycles the connection
	r.stopChan <- nil
	<-r.startedChan
	open, closed = r.state()
	assert.True(t, open)
	assert.True(t, closed)

	r.stopChan <- errors.New("fake error")
	<-r.startedChan
	open, _ = r.state()
	assert.True(t, open)

	cancel()
	wg.Wait()
	assert.ErrorIs(t, runErr, context.Canceled)
}

func TestRetryOpenFailures(t *testing.T) {
	defer noDelays()()
	r := retryable{
		openErrs:    []error{errors.New("refused"), errors.New("refused")},
		startedChan: make(chan struct{}),
		stopChan:    make(chan error),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = retry(ctx, &r, logger.Nop()) }()

	<-r.startedChan
	open, closed := r.state()
	assert.True(t, open)
	assert.True(t, closed, "failed opens are followed by a close before the next attempt")
}

func TestRetryCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := retryable{startedChan: make(chan struct{}), stopChan: make(chan error)}
	assert.ErrorIs(t, retry(ctx, &r, logger.Nop()), context.Canceled)
}
