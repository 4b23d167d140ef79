package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLocker(rdb, "chalet-booking:sweeper", ttl), mr
}

func TestRedisLocker_ExclusiveUntilReleased(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)
	ctx := context.Background()

	release, err := l.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("chalet-booking:sweeper"))

	_, err = l.TryAcquire(ctx)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("chalet-booking:sweeper"))

	release, err = l.TryAcquire(ctx)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	ctx := context.Background()

	_, err := l.TryAcquire(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = l.TryAcquire(ctx)
	assert.NoError(t, err)
}

func TestRedisLocker_ReleaseDoesNotDropForeignLock(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	ctx := context.Background()

	staleRelease, err := l.TryAcquire(ctx)
	require.NoError(t, err)

	// блокировка истекла, её взял другой экземпляр
	mr.FastForward(2 * time.Second)
	_, err = l.TryAcquire(ctx)
	require.NoError(t, err)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("chalet-booking:sweeper"))
}

func TestRedisLocker_RedisDown(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	mr.Close()

	_, err := l.TryAcquire(context.Background())
	assert.ErrorIs(t, err, ErrRedis)
}

func TestNopLocker(t *testing.T) {
	release, err := NopLocker{}.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
