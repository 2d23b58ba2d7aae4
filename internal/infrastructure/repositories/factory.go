package repositories

import (
	"context"

	"stockroom/internal/core/ports"
	"stockroom/internal/infrastructure/repositories/memory"
	redisrepo "stockroom/internal/infrastructure/repositories/redis"
	"stockroom/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RepositoryFactory creates repositories with fallback support
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

// NewRepositoryFactory creates a new repository factory. When Redis is
// enabled but unreachable, it falls back to in-memory repositories.
func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory repositories",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

func (f *RepositoryFactory) CreateInventoryRepository() ports.InventoryRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisInventoryRepository(f.redisClient)
	}
	return memory.NewMemoryInventoryRepository()
}

func (f *RepositoryFactory) CreateRoleRepository() ports.RoleRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisRoleRepository(f.redisClient)
	}
	return memory.NewMemoryRoleRepository()
}

func (f *RepositoryFactory) CreateSessionRepository() ports.SessionRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisSessionRepository(f.redisClient)
	}
	return memory.NewMemorySessionRepository()
}

// Close closes Redis connection if used
func (f *RepositoryFactory) Close() error {
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

// HealthCheck checks Redis connection health
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
