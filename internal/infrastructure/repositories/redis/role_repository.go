package redis

import (
	"context"
	"fmt"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisRoleRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRoleRepository(client *redis.Client) ports.RoleRepository {
	return &RedisRoleRepository{
		client: client,
		prefix: "stockroom:user:",
	}
}

func (r *RedisRoleRepository) roleKey(uid domain.UserID) string {
	return r.prefix + string(uid) + ":role"
}

func (r *RedisRoleRepository) Get(ctx context.Context, uid domain.UserID) (domain.Role, error) {
	value, err := r.client.Get(ctx, r.roleKey(uid)).Result()
	if err == redis.Nil {
		return "", domain.ErrRoleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get role from Redis: %w", err)
	}
	return domain.Role(value), nil
}

func (r *RedisRoleRepository) Set(ctx context.Context, uid domain.UserID, role domain.Role) error {
	if err := r.client.Set(ctx, r.roleKey(uid), string(role), 0).Err(); err != nil {
		return fmt.Errorf("failed to set role in Redis: %w", err)
	}
	return nil
}
