// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"hoardify/config"

	"github.com/go-redis/redis/v8"
)

// InitCache connects the Redis client used for authorization caching.
func InitCache(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return client, nil
}

// CacheAdminToken stores a verified token key for uid and indexes it under the
// uid so EvictAdminTokens can drop it.
func CacheAdminToken(ctx context.Context, cache redis.Cmdable, tokenKey, uid string, ttl time.Duration) error {
	if err := cache.Set(ctx, tokenKey, uid, ttl).Err(); err != nil {
		return err
	}
	sessionKey := AuthSessionPrefix + uid
	if err := cache.SAdd(ctx, sessionKey, tokenKey).Err(); err != nil {
		return err
	}
	return cache.Expire(ctx, sessionKey, ttl).Err()
}

// EvictAdminTokens deletes every cached token key of uid.
func EvictAdminTokens(ctx context.Context, cache redis.Cmdable, uid string) error {
	sessionKey := AuthSessionPrefix + uid
	keys, err := cache.SMembers(ctx, sessionKey).Result()
	if err != nil {
		return err
	}
	return cache.Del(ctx, append(keys, sessionKey)...).Err()
}
