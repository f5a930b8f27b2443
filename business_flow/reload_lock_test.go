package businessflow

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMutexReloadLock(t *testing.T) {
	lock := NewReloadLock(nil, "ignored:", time.Minute, zap.NewNop())
	ctx := context.Background()

	release, err := lock.Acquire(ctx)
	require.NoError(t, err)

	_, err = lock.Acquire(ctx)
	assert.ErrorIs(t, err, ErrReloadInProgress)

	release()
	// a second release must not unlock someone else's hold
	again, err := lock.Acquire(ctx)
	require.NoError(t, err)
	release()
	_, err = lock.Acquire(ctx)
	assert.ErrorIs(t, err, ErrReloadInProgress)
	again()
}

func TestRedisReloadLock(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	prefix := "test:" + uuid.NewString() + ":"
	lock := NewReloadLock(client, prefix, time.Minute, zap.NewNop())

	release, err := lock.Acquire(ctx)
	require.NoError(t, err)

	_, err = lock.Acquire(ctx)
	assert.ErrorIs(t, err, ErrReloadInProgress)

	release()
	n, err := client.Exists(ctx, prefix+reloadLockKey).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	release, err = lock.Acquire(ctx)
	require.NoError(t, err)
	release()
}
