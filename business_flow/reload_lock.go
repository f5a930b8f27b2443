package businessflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const reloadLockKey = "fixtures:lock"

// ReloadLock serializes fixture reloads; Acquire fails fast with ErrReloadInProgress
type ReloadLock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// NewReloadLock uses redis when a client is given and an in-process mutex otherwise
func NewReloadLock(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) ReloadLock {
	if client == nil {
		return &mutexReloadLock{}
	}
	return &redisReloadLock{client: client, key: prefix + reloadLockKey, ttl: ttl, logger: logger}
}

type mutexReloadLock struct {
	mu sync.Mutex
}

func (l *mutexReloadLock) Acquire(context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, ErrReloadInProgress
	}
	var once sync.Once
	return func() { once.Do(l.mu.Unlock) }, nil
}

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisReloadLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

func (l *redisReloadLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reload lock: %w", err)
	}
	if !ok {
		return nil, ErrReloadInProgress
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			// the caller's context may already be cancelled
			rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.client, []string{l.key}, token).Err(); err != nil {
				l.logger.Warn("failed to release reload lock", zap.String("key", l.key), zap.Error(err))
			}
		})
	}
	return release, nil
}
