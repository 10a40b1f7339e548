package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker 多副本同时启动时，保证同一时刻只有一个副本在播种
type Locker interface {
	// Lock 阻塞直到拿到锁或超时，返回释放函数
	Lock(ctx context.Context, key string) (unlock func(context.Context) error, err error)
}

// NopLocker 单实例部署 (未配置 Redis) 时使用
type NopLocker struct{}

func (NopLocker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// ErrLockTimeout 在等待时间内没有拿到锁
var ErrLockTimeout = errors.New("seed lock wait timed out")

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 基于 SET NX PX 的简单互斥锁
type RedisLocker struct {
	rdb  redis.UniversalClient
	ttl  time.Duration
	wait time.Duration
	poll time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient, wait time.Duration) *RedisLocker {
	if wait <= 0 {
		wait = 30 * time.Second
	}
	return &RedisLocker{
		rdb:  rdb,
		ttl:  2 * time.Minute,
		wait: wait,
		poll: 200 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}

	unlock := func(ctx context.Context) error {
		if err := unlockScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("releasing %s: %w", key, err)
		}
		return nil
	}
	return unlock, nil
}
