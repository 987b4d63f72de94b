package repository

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ==================== TokenBlocklist 已注销 Token 黑名单 ====================

// TokenBlocklist 黑名单接口，按 jti 记录已注销的 Token。
// 条目带 TTL（等于 Token 剩余有效期），过期自动失效，避免无限增长。
type TokenBlocklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context) (int, error)
}

// ==================== 内存实现 ====================

// memoryBlocklist 进程内黑名单，单实例部署用。
// 所有请求线程并发读写；过期条目由定时任务清理。
type memoryBlocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> 过期时刻
}

// NewMemoryBlocklist 创建内存黑名单
func NewMemoryBlocklist() TokenBlocklist {
	return &memoryBlocklist{entries: make(map[string]time.Time)}
}

// Add 加入黑名单，重复加入幂等
func (b *memoryBlocklist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token 已过期，无需记录
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = time.Now().Add(ttl)
	return nil
}

// Contains 是否在黑名单内（已过期的条目视为不在）
func (b *memoryBlocklist) Contains(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	expiry, ok := b.entries[jti]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiry), nil
}

// PurgeExpired 清理过期条目，返回清理数量
func (b *memoryBlocklist) PurgeExpired(_ context.Context) (int, error) {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	purged := 0
	for jti, expiry := range b.entries {
		if now.After(expiry) {
			delete(b.entries, jti)
			purged++
		}
	}
	return purged, nil
}

// ==================== Redis 实现 ====================

// redisBlocklist 共享黑名单，多副本部署用。TTL 交给 Redis。
type redisBlocklist struct {
	client *redis.Client
}

const redisBlocklistPrefix = "blocklist:"

// NewRedisBlocklist 创建 Redis 黑名单
func NewRedisBlocklist(client *redis.Client) TokenBlocklist {
	return &redisBlocklist{client: client}
}

// Add 加入黑名单
func (b *redisBlocklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, redisBlocklistPrefix+jti, "1", ttl).Err()
}

// Contains 是否在黑名单内
func (b *redisBlocklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, redisBlocklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired Redis 自带 TTL，无需清理
func (b *redisBlocklist) PurgeExpired(_ context.Context) (int, error) {
	return 0, nil
}
