package cache

import (
	"fmt"
	"time"

	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	"github.com/teakhata/backend/internal/domain/shared"
	"github.com/teakhata/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates the Redis-backed caches, falling back to in-memory
// replacements when Redis is unavailable
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory caches when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// connConfig maps the application Redis settings onto this package's
// connection config.
func (f *Factory) connConfig() RedisConfig {
	return RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}
}

// CreateIdempotencyStore creates the reminder dedup store. It tries Redis
// first and falls back to an in-memory store when fallback is allowed.
// WARNING: In-memory stores lose state on restart and do not share it
// across instances, so a reminder may be sent twice in those setups
func (f *Factory) CreateIdempotencyStore() (shared.IdempotencyStore, error) {
	store, err := NewRedisIdempotencyStore(f.connConfig())
	if err == nil {
		f.logger.Info("using Redis idempotency store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for idempotency but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}

// CreateSnapshotCache creates the ledger snapshot cache with the given
// retention TTL. It tries Redis first and falls back to an in-memory cache
// when fallback is allowed
func (f *Factory) CreateSnapshotCache(ttl time.Duration) (ledgerapp.SnapshotCache, error) {
	cache, err := NewRedisSnapshotCache(f.connConfig(), ttl, WithSnapshotLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis snapshot cache", zap.Duration("retention", ttl))
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for snapshot cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory snapshot cache",
		zap.Error(err),
	)
	return NewInMemorySnapshotCache(ttl), nil
}
