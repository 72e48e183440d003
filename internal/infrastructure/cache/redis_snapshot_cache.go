package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	"go.uber.org/zap"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100

	// snapshotKeyPattern matches every key the snapshot service writes.
	// SnapshotQuery.CacheKey places all keys under the snapshot: namespace,
	// so Purge can drop the lot in one scan.
	snapshotKeyPattern = "snapshot:*"
)

// RedisSnapshotCache implements the ledger SnapshotCache using Redis.
// Entries are kept for the configured retention, well past the freshness
// window, so a stale copy can still be served when the upstream database
// is unreachable.
type RedisSnapshotCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisSnapshotCacheOption is a functional option for configuring the cache
type RedisSnapshotCacheOption func(*RedisSnapshotCache)

// WithSnapshotLogger sets the logger for the cache
func WithSnapshotLogger(logger *zap.Logger) RedisSnapshotCacheOption {
	return func(c *RedisSnapshotCache) {
		c.logger = logger
	}
}

// NewRedisSnapshotCache creates a new Redis-backed snapshot cache whose
// entries expire after ttl
func NewRedisSnapshotCache(cfg RedisConfig, ttl time.Duration, opts ...RedisSnapshotCacheOption) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSnapshotCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		ttl:        ttl,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSnapshotCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisSnapshotCacheWithClient(client *redis.Client, ttl time.Duration, opts ...RedisSnapshotCacheOption) *RedisSnapshotCache {
	cache := &RedisSnapshotCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		ttl:        ttl,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves a cached snapshot. It returns (nil, nil) on a miss.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (*ledgerapp.Snapshot, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for snapshot", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get snapshot from cache",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	var snap ledgerapp.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Error("Failed to unmarshal cached snapshot",
			zap.String("key", key),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	c.logger.Debug("Cache hit for snapshot",
		zap.String("key", key),
		zap.Duration("age", snap.Age()))
	return &snap, nil
}

// Set stores a snapshot in cache with the retention TTL
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, snap *ledgerapp.Snapshot) error {
	if snap == nil {
		return nil
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to set snapshot in cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}

	c.logger.Debug("Cached snapshot",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Duration("ttl", c.ttl))
	return nil
}

// Purge removes every cached snapshot. The change listener calls this when
// the upstream ledger changes so the next read rebuilds from the database.
func (c *RedisSnapshotCache) Purge(ctx context.Context) error {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, snapshotKeyPattern, defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan snapshot keys", zap.Error(err))
			return fmt.Errorf("failed to scan snapshot keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete snapshot keys", zap.Error(err))
				return fmt.Errorf("failed to delete snapshot keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Purged snapshot cache", zap.Int64("deleted", deletedCount))
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisSnapshotCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSnapshotCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisSnapshotCache implements SnapshotCache
var _ ledgerapp.SnapshotCache = (*RedisSnapshotCache)(nil)
