package cache

import (
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates an idempotency store based on configuration.
// Falls back to the in-memory store when Redis is disabled or unreachable,
// which is fine for single-instance deployments.
func NewIdempotencyStore(cfg config.RedisConfig, log *zap.Logger) shared.IdempotencyStore {
	if !cfg.Enabled {
		log.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory idempotency store",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}

	log.Info("using redis idempotency store",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port))
	return store
}
