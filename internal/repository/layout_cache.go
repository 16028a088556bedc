package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const layoutKeyPrefix = "attempt:layout"

func layoutKey(userID, testID string) string {
	return fmt.Sprintf("%s:%s:%s", layoutKeyPrefix, testID, userID)
}

// RedisLayoutCache stores attempt seeds with a TTL so abandoned attempts expire.
type RedisLayoutCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisLayoutCache(rdb *redis.Client, ttl time.Duration) *RedisLayoutCache {
	return &RedisLayoutCache{Redis: rdb, TTL: ttl}
}

func (c *RedisLayoutCache) Get(ctx context.Context, userID, testID string) (int64, bool, error) {
	val, err := c.Redis.Get(ctx, layoutKey(userID, testID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	seed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt layout seed %q: %w", val, err)
	}
	return seed, true, nil
}

// Claim stores seed unless the attempt already has one and returns the seed
// that is stored afterwards.
func (c *RedisLayoutCache) Claim(ctx context.Context, userID, testID string, seed int64) (int64, error) {
	key := layoutKey(userID, testID)
	for attempt := 0; attempt < 2; attempt++ {
		stored, err := c.Redis.SetNX(ctx, key, strconv.FormatInt(seed, 10), c.TTL).Result()
		if err != nil {
			return 0, err
		}
		if stored {
			return seed, nil
		}
		existing, ok, err := c.Get(ctx, userID, testID)
		if err != nil {
			return 0, err
		}
		if ok {
			return existing, nil
		}
		// expired between SETNX and GET
	}
	return 0, fmt.Errorf("layout seed for %s kept changing", key)
}

func (c *RedisLayoutCache) Delete(ctx context.Context, userID, testID string) error {
	return c.Redis.Del(ctx, layoutKey(userID, testID)).Err()
}

func (c *RedisLayoutCache) DeleteTest(ctx context.Context, testID string) error {
	pattern := fmt.Sprintf("%s:%s:*", layoutKeyPrefix, testID)
	iter := c.Redis.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Redis.Del(ctx, keys...).Err()
}

// MemoryLayoutCache is used when redis is disabled. Seeds never expire.
type MemoryLayoutCache struct {
	mu    sync.Mutex
	seeds map[string]map[string]int64
}

func NewMemoryLayoutCache() *MemoryLayoutCache {
	return &MemoryLayoutCache{seeds: make(map[string]map[string]int64)}
}

func (c *MemoryLayoutCache) Get(_ context.Context, userID, testID string) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seed, ok := c.seeds[testID][userID]
	return seed, ok, nil
}

func (c *MemoryLayoutCache) Claim(_ context.Context, userID, testID string, seed int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.seeds[testID][userID]; ok {
		return existing, nil
	}
	if c.seeds[testID] == nil {
		c.seeds[testID] = make(map[string]int64)
	}
	c.seeds[testID][userID] = seed
	return seed, nil
}

func (c *MemoryLayoutCache) Delete(_ context.Context, userID, testID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seeds[testID], userID)
	return nil
}

func (c *MemoryLayoutCache) DeleteTest(_ context.Context, testID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seeds, testID)
	return nil
}
