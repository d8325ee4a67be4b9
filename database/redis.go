package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"signal/analytics/config"
	"signal/analytics/logger"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// rateLimitKeyPrefix namespaces the fixed-window counters.
const rateLimitKeyPrefix = "signal_rl:"

// RateLimitRedis holds the shared fixed-window rate-limit counters used when
// multiple ingest instances must agree on per-IP admission.
type RateLimitRedis struct {
	*redis.Client
	window time.Duration
	max    int
}

// Allow counts the request against the caller's current fixed window and
// reports whether it stays within the threshold. Window boundaries come from
// bucketing wall-clock time, so all instances roll over together. Errors are
// returned to the caller, which admits the request (fail-open).
func (r RateLimitRedis) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().UTC().Unix() / int64(r.window.Seconds())
	counterKey := rateLimitKeyPrefix + key + ":" + strconv.FormatInt(bucket, 10)

	count, err := r.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	if count == 1 {
		// First hit in this window owns setting the TTL. One extra second
		// covers clock skew between instances. A counter without a TTL
		// never leaves the keyspace, so a failed set is worth surfacing.
		if err := r.Expire(ctx, counterKey, r.window+time.Second).Err(); err != nil {
			logger.Get().Warnw("rate limit counter TTL not set",
				"key", counterKey,
				"error", err,
			)
		}
	}
	return count <= int64(r.max), nil
}

// InitRedis initializes the Redis client connection
func InitRedis(cfg *config.RedisConfig) error {
	opts := &redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       0, // default DB
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	redisClient = client
	return nil
}

// CloseRedis closes the Redis client connection
func CloseRedis() error {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	return nil
}

// RedisHealthCheck verifies that the Redis connection is alive
func RedisHealthCheck(ctx context.Context) error {
	if redisClient == nil {
		return fmt.Errorf("Redis connection is not initialized")
	}
	return redisClient.Ping(ctx).Err()
}

// GetRateLimitRedis returns the shared counters bound to the configured
// window and threshold.
func GetRateLimitRedis(window time.Duration, max int) RateLimitRedis {
	return RateLimitRedis{redisClient, window, max}
}
