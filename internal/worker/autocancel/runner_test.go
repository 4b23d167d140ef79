package autocancel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/logger"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *fakeSweeper) Execute(_ context.Context, now time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, now)
	return []int64{1}, s.err
}

func (s *fakeSweeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type busyLocker struct{}

func (busyLocker) TryAcquire(context.Context) (func(context.Context) error, error) {
	return nil, lock.ErrNotAcquired
}

type countingLocker struct {
	released int
}

func (l *countingLocker) TryAcquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestRunner_RunOnceUsesInjectedClock(t *testing.T) {
	sweeper := &fakeSweeper{}
	locker := &countingLocker{}
	r := NewRunner(sweeper, locker, time.Minute, logger.Nop())
	fixed := time.Date(2025, 1, 1, 14, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	assert.True(t, r.RunOnce(context.Background()))
	require.Len(t, sweeper.calls, 1)
	assert.Equal(t, fixed, sweeper.calls[0])
	assert.Equal(t, 1, locker.released)
}

func TestRunner_SkipsWhenLockHeld(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := NewRunner(sweeper, busyLocker{}, time.Minute, logger.Nop())

	assert.False(t, r.RunOnce(context.Background()))
	assert.Zero(t, sweeper.count())
}

func TestRunner_ReleasesLockOnSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db down")}
	locker := &countingLocker{}
	r := NewRunner(sweeper, locker, time.Minute, logger.Nop())

	assert.False(t, r.RunOnce(context.Background()))
	assert.Equal(t, 1, locker.released)
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := NewRunner(sweeper, lock.NopLocker{}, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}
